package store

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// keyAttribute is the partition key attribute of every backing table.
const keyAttribute = "id"

// DynamoStore implements Store on DynamoDB. One table per collection, named
// TablePrefix+collection, keyed by the "id" attribute. Live subscriptions are
// driven by an in-process change hub: after each write the affected watchers
// reload and re-deliver, so local writers observe their own changes the way a
// snapshot listener would.
type DynamoStore struct {
	Client      *dynamodb.Client
	TablePrefix string
	hub         hub
}

// InitializeDynamoDBClient initializes the DynamoDB client for a region
func InitializeDynamoDBClient(ctx context.Context, region string) (*dynamodb.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return dynamodb.NewFromConfig(cfg), nil
}

func NewDynamoStore(client *dynamodb.Client, tablePrefix string) *DynamoStore {
	return &DynamoStore{Client: client, TablePrefix: tablePrefix}
}

func (ds *DynamoStore) table(collection string) string {
	return ds.TablePrefix + collection
}

func (ds *DynamoStore) Get(ctx context.Context, collection, key string) (Document, error) {
	tableName := ds.table(collection)
	output, err := ds.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: &tableName,
		Key: map[string]types.AttributeValue{
			keyAttribute: &types.AttributeValueMemberS{Value: key},
		},
	})
	if err != nil {
		return Document{}, fmt.Errorf("%w: failed to get item from table '%s': %v", ErrUnavailable, tableName, err)
	}
	if output.Item == nil {
		return Document{}, fmt.Errorf("get %s/%s: %w", collection, key, ErrNotFound)
	}
	return ds.decodeItem(output.Item)
}

func (ds *DynamoStore) Put(ctx context.Context, collection, key string, data map[string]interface{}) error {
	tableName := ds.table(collection)

	doc := make(map[string]interface{}, len(data))
	for k, v := range data {
		switch t := v.(type) {
		case serverTimestamp:
			doc[k] = time.Now().UTC().Format(time.RFC3339)
		case time.Time:
			doc[k] = t.UTC().Format(time.RFC3339)
		default:
			doc[k] = v
		}
	}

	item, err := attributevalue.MarshalMap(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal item for table '%s': %w", tableName, err)
	}
	item[keyAttribute] = &types.AttributeValueMemberS{Value: key}

	_, err = ds.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: &tableName,
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to put item in table '%s': %v", ErrUnavailable, tableName, err)
	}

	ds.hub.notify(collection)
	return nil
}

// Query scans the collection's table with equality filters, then applies
// ordering and limit locally. The candidate feed is bounded (limit 80), so a
// filtered scan keeps the table schema free of per-query indexes.
func (ds *DynamoStore) Query(ctx context.Context, spec QuerySpec) ([]Document, error) {
	tableName := ds.table(spec.Collection)

	input := &dynamodb.ScanInput{TableName: &tableName}
	if len(spec.Filters) > 0 {
		expressionAttributeNames := map[string]string{}
		expressionAttributeValues := map[string]types.AttributeValue{}
		filterExpression := ""
		for i, f := range spec.Filters {
			name := fmt.Sprintf("#f%d", i)
			value := fmt.Sprintf(":v%d", i)
			expressionAttributeNames[name] = f.Field
			av, err := attributevalue.Marshal(f.Value)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal filter value for '%s': %w", f.Field, err)
			}
			expressionAttributeValues[value] = av
			if i > 0 {
				filterExpression += " AND "
			}
			filterExpression += fmt.Sprintf("%s = %s", name, value)
		}
		input.FilterExpression = aws.String(filterExpression)
		input.ExpressionAttributeNames = expressionAttributeNames
		input.ExpressionAttributeValues = expressionAttributeValues
	}

	output, err := ds.Client.Scan(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to scan table '%s': %v", ErrUnavailable, tableName, err)
	}

	docs := make([]Document, 0, len(output.Items))
	for _, item := range output.Items {
		doc, err := ds.decodeItem(item)
		if err != nil {
			log.Printf("skipping undecodable item in table '%s': %v", tableName, err)
			continue
		}
		docs = append(docs, doc)
	}
	return sortAndLimit(docs, spec), nil
}

// BatchPut writes documents in DynamoDB batches of 25. Used by the bulk
// profile importer; not part of the Store interface.
func (ds *DynamoStore) BatchPut(ctx context.Context, collection string, docs []Document) error {
	const maxBatchSize = 25
	tableName := ds.table(collection)

	var writeRequests []types.WriteRequest
	for _, doc := range docs {
		item, err := attributevalue.MarshalMap(doc.Data)
		if err != nil {
			return fmt.Errorf("failed to marshal item '%s': %w", doc.Key, err)
		}
		item[keyAttribute] = &types.AttributeValueMemberS{Value: doc.Key}
		writeRequests = append(writeRequests, types.WriteRequest{
			PutRequest: &types.PutRequest{Item: item},
		})
	}

	for i := 0; i < len(writeRequests); i += maxBatchSize {
		end := i + maxBatchSize
		if end > len(writeRequests) {
			end = len(writeRequests)
		}
		_, err := ds.Client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{
				tableName: writeRequests[i:end],
			},
		})
		if err != nil {
			return fmt.Errorf("%w: failed to batch write to table '%s': %v", ErrUnavailable, tableName, err)
		}
	}

	ds.hub.notify(collection)
	return nil
}

func (ds *DynamoStore) WatchDoc(collection, key string, fn func(Document)) Unsubscribe {
	return ds.hub.watchDoc(collection, key, func() (Document, bool) {
		doc, err := ds.Get(context.Background(), collection, key)
		return doc, err == nil
	}, fn)
}

func (ds *DynamoStore) WatchQuery(spec QuerySpec, fn func(Snapshot)) Unsubscribe {
	return ds.hub.watchQuery(spec.Collection, func() ([]Document, error) {
		return ds.Query(context.Background(), spec)
	}, fn)
}

func (ds *DynamoStore) decodeItem(item map[string]types.AttributeValue) (Document, error) {
	var data map[string]interface{}
	if err := attributevalue.UnmarshalMap(item, &data); err != nil {
		return Document{}, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	key, _ := data[keyAttribute].(string)
	delete(data, keyAttribute)
	return Document{Key: key, Data: data}, nil
}
