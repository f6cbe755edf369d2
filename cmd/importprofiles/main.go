// Command importprofiles bulk-loads profile documents from a JSON file into
// the profiles table, normalizing historical field variants on the way in.
// With -upload-images it mirrors each remote photo into S3 so imported
// profiles get a stable photo reference.
//
// Usage:
//
//	importprofiles -input profiles.json [-upload-images] [-use-name-as-id]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"

	"meetx_server/config"
	"meetx_server/models"
	"meetx_server/services"
	"meetx_server/store"
	"meetx_server/utils"
)

func main() {
	inputFile := flag.String("input", "profiles.json", "path to the JSON array of profiles")
	uploadImages := flag.Bool("upload-images", false, "mirror remote photos into S3")
	useNameAsID := flag.Bool("use-name-as-id", false, "derive document ids from display names")
	prefix := flag.String("prefix", "profiles", "S3 key prefix for mirrored photos")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	client, err := store.InitializeDynamoDBClient(ctx, cfg.AWS.Region)
	if err != nil {
		log.Fatalf("Failed to initialize DynamoDB: %v", err)
	}
	ds := store.NewDynamoStore(client, cfg.Store.TablePrefix)

	var s3Service *services.S3Service
	if *uploadImages {
		if cfg.AWS.S3Bucket == "" {
			log.Fatal("S3_BUCKET_NAME is required with -upload-images")
		}
		s3Service, err = services.NewS3Service(ctx, cfg.AWS.Region, cfg.AWS.S3Bucket)
		if err != nil {
			log.Fatalf("Failed to initialize S3: %v", err)
		}
	}

	raw, err := os.ReadFile(*inputFile)
	if err != nil {
		log.Fatalf("Input file not found: %v", err)
	}
	var entries []map[string]interface{}
	if err := json.Unmarshal(raw, &entries); err != nil {
		log.Fatalf("Invalid JSON in %s: %v", *inputFile, err)
	}

	log.Printf("Importing %d profiles into '%s%s'...", len(entries), cfg.Store.TablePrefix, models.ProfilesCollection)

	now := time.Now().UTC()
	var docs []store.Document
	for _, entry := range entries {
		profile := models.ProfileFromDocument("", entry)
		if profile.FullName == "" {
			log.Printf("⚠️ Skipping entry without a name: %v", entry)
			continue
		}

		docID := uuid.NewString()
		if *useNameAsID {
			if slug := utils.Slugify(profile.FullName); slug != "" {
				docID = slug
			}
		}

		if s3Service != nil && profile.PhotoURL != "" {
			key := fmt.Sprintf("%s/%s/photo.jpg", *prefix, docID)
			if mirrored, err := mirrorPhoto(ctx, s3Service, profile.PhotoURL, key); err != nil {
				log.Printf("⚠️ Photo upload failed for %s, keeping original URL: %v", profile.FullName, err)
			} else {
				profile.PhotoURL = mirrored
			}
		}

		data := profile.Document()
		data["updatedAt"] = now.Format(time.RFC3339)
		docs = append(docs, store.Document{Key: docID, Data: data})
		log.Printf("Prepared: %s -> %s", profile.FullName, docID)
	}

	if err := ds.BatchPut(ctx, models.ProfilesCollection, docs); err != nil {
		log.Fatalf("Batch write failed: %v", err)
	}
	log.Printf("✅ Import finished: %d profiles written.", len(docs))
}

// mirrorPhoto downloads a remote image and stores it under our bucket,
// returning the stable URL.
func mirrorPhoto(ctx context.Context, s3Service *services.S3Service, srcURL, key string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srcURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: %s", srcURL, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return "", err
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return s3Service.UploadFromBytes(ctx, key, contentType, body)
}
