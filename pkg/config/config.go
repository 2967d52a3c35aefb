package config

import (
	"fmt"
	"strings"

	"itemshare/domain"

	"github.com/spf13/viper"
)

type AppConfig struct {
	Port             string `mapstructure:"PORT"`
	GRPCPort         string `mapstructure:"GRPC_PORT"`
	Environment      string `mapstructure:"ENVIRONMENT"`
	ServiceName      string `mapstructure:"SERVICE_NAME"`
	StoreDriver      string `mapstructure:"STORE_DRIVER"`
	PostgresUsername string `mapstructure:"POSTGRES_USERNAME"`
	PostgresPassword string `mapstructure:"POSTGRES_PASSWORD"`
	PostgresDatabase string `mapstructure:"POSTGRES_DATABASE"`
	PostgresSSLMode  string `mapstructure:"POSTGRES_SSLMODE"`
	PostgresHost     string `mapstructure:"POSTGRES_HOST"`
	PostgresPort     string `mapstructure:"POSTGRES_PORT"`
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	RedisPassword    string `mapstructure:"REDIS_PASSWORD"`
	RedisDB          int    `mapstructure:"REDIS_DB"`
	RabbitMQURL      string `mapstructure:"RABBITMQ_URL"`
	AWSEndpoint      string `mapstructure:"AWS_ENDPOINT"`
	AWSBucket        string `mapstructure:"AWS_BUCKET"`
	AWSDefaultRegion string `mapstructure:"AWS_DEFAULT_REGION"`
	AWSAccessKey     string `mapstructure:"AWS_ACCESS_KEY"`
	AWSSecretKey     string `mapstructure:"AWS_SECRET_KEY"`
	Categories       string `mapstructure:"CATEGORIES"`
	SeedBaseline     bool   `mapstructure:"SEED_BASELINE"`
	MaxImageBytes    int    `mapstructure:"MAX_IMAGE_BYTES"`
	AdminJWTSecret   string `mapstructure:"ADMIN_JWT_SECRET"`
	// bcrypt hash; login is disabled while empty
	AdminPasswordHash string `mapstructure:"ADMIN_PASSWORD_HASH"`
}

const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
	StoreDriverS3       = "s3"
	StoreDriverRedis    = "redis"
)

func Read() *AppConfig {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()

	bindEnvVariables()
	setDefaults()

	var appConfig AppConfig
	err := viper.Unmarshal(&appConfig)
	if err != nil {
		panic(fmt.Errorf("fatal error unmarshalling config: %w", err))
	}

	return &appConfig
}

// CategoryList returns the allowed item categories, trimmed and without blanks.
func (c *AppConfig) CategoryList() []string {
	var categories []string
	for _, category := range strings.Split(c.Categories, ",") {
		if category = strings.TrimSpace(category); category != "" {
			categories = append(categories, category)
		}
	}
	return categories
}

func bindEnvVariables() {
	_ = viper.BindEnv("PORT")
	_ = viper.BindEnv("GRPC_PORT")
	_ = viper.BindEnv("ENVIRONMENT")
	_ = viper.BindEnv("SERVICE_NAME")
	_ = viper.BindEnv("STORE_DRIVER")
	_ = viper.BindEnv("POSTGRES_USERNAME")
	_ = viper.BindEnv("POSTGRES_PASSWORD")
	_ = viper.BindEnv("POSTGRES_DATABASE")
	_ = viper.BindEnv("POSTGRES_SSLMODE")
	_ = viper.BindEnv("POSTGRES_HOST")
	_ = viper.BindEnv("POSTGRES_PORT")
	_ = viper.BindEnv("REDIS_ADDR")
	_ = viper.BindEnv("REDIS_PASSWORD")
	_ = viper.BindEnv("REDIS_DB")
	_ = viper.BindEnv("RABBITMQ_URL")
	_ = viper.BindEnv("AWS_ENDPOINT")
	_ = viper.BindEnv("AWS_BUCKET")
	_ = viper.BindEnv("AWS_DEFAULT_REGION")
	_ = viper.BindEnv("AWS_ACCESS_KEY")
	_ = viper.BindEnv("AWS_SECRET_KEY")
	_ = viper.BindEnv("CATEGORIES")
	_ = viper.BindEnv("SEED_BASELINE")
	_ = viper.BindEnv("MAX_IMAGE_BYTES")
	_ = viper.BindEnv("ADMIN_JWT_SECRET")
	_ = viper.BindEnv("ADMIN_PASSWORD_HASH")
}

func setDefaults() {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("GRPC_PORT", "9090")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("SERVICE_NAME", "itemshare")
	viper.SetDefault("STORE_DRIVER", StoreDriverMemory)
	viper.SetDefault("POSTGRES_SSLMODE", "disable")
	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", "5432")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CATEGORIES", strings.Join(domain.DefaultCategories, ","))
	viper.SetDefault("SEED_BASELINE", true)
	viper.SetDefault("MAX_IMAGE_BYTES", 5*1024*1024)
}
