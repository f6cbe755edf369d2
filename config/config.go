package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Server        ServerConfig
	AWS           AWSConfig
	JWT           JWTConfig
	Store         StoreConfig
	Deck          DeckConfig
	Notifications NotificationConfig
}

type ServerConfig struct {
	Port string
}

type AWSConfig struct {
	Region   string
	S3Bucket string
}

type JWTConfig struct {
	Secret string
}

type StoreConfig struct {
	// Type selects the store backend: "dynamo" or "memory".
	Type        string
	TablePrefix string
}

type DeckConfig struct {
	QueryLimit int
}

type NotificationConfig struct {
	TTLSeconds int
}

// Load loads configuration from environment variables or a .env file
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Try to read from .env file, but don't fail if it doesn't exist
	_ = viper.ReadInConfig()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("STORE_TYPE", "dynamo")
	viper.SetDefault("STORE_TABLE_PREFIX", "meetx_")
	viper.SetDefault("DECK_QUERY_LIMIT", 80)
	viper.SetDefault("NOTIFICATION_TTL_SECONDS", 6)

	return &Config{
		Server: ServerConfig{
			Port: viper.GetString("PORT"),
		},
		AWS: AWSConfig{
			Region:   viper.GetString("AWS_REGION"),
			S3Bucket: viper.GetString("S3_BUCKET_NAME"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
		},
		Store: StoreConfig{
			Type:        viper.GetString("STORE_TYPE"),
			TablePrefix: viper.GetString("STORE_TABLE_PREFIX"),
		},
		Deck: DeckConfig{
			QueryLimit: viper.GetInt("DECK_QUERY_LIMIT"),
		},
		Notifications: NotificationConfig{
			TTLSeconds: viper.GetInt("NOTIFICATION_TTL_SECONDS"),
		},
	}, nil
}
