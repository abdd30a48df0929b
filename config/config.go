package config

import (
	"os"

	"github.com/joho/godotenv"
)

const (
	EnvironmentDev  = "dev"
	EnvironmentProd = "prod"
)

type Config struct {
	ServicePort      string
	MetricsPort      string
	Environment      string
	PostgreSQLConfig PostgreSQLConfig
	JWTSecret        string
	TracingConfig    TracingConfig
	CloudinaryConfig CloudinaryConfig
	LogDir           string
	UploadDir        string
	// SeedPassword is the initial password given to the built-in users.
	SeedPassword     string
}

type PostgreSQLConfig struct {
	DBHost     string
	DBPort     string
	DBUsername string
	DBPassword string
	DBName     string
}

type TracingConfig struct {
	CollectorHost string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

// Enabled reports whether all three credentials are present.
func (c CloudinaryConfig) Enabled() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

func (c *Config) IsProd() bool {
	return c.Environment == EnvironmentProd
}

func CreateNewConfig() *Config {
	godotenv.Load(".env")

	conf := Config{
		ServicePort: getEnv("3000", "PORT"),
		MetricsPort: getEnv("9090", "METRICS_PORT"),
		Environment: getEnv(EnvironmentDev, "NODE_ENV"),
		PostgreSQLConfig: PostgreSQLConfig{
			DBHost:     getEnv("localhost", "DB_HOST"),
			DBPort:     getEnv("5432", "DB_PORT"),
			DBUsername: getEnv("postgres", "DB_USERNAME", "DB_USER"),
			DBPassword: getEnv("postgres", "DB_PASSWORD"),
			DBName:     getEnv("ict-meetup", "DB_NAME", "DB_DATABASE"),
		},
		JWTSecret: os.Getenv("JWT_SECRET"),
		TracingConfig: TracingConfig{
			CollectorHost: os.Getenv("COLLECTOR_HOST"),
		},
		CloudinaryConfig: CloudinaryConfig{
			CloudName: getEnv("", "CLOUDINARY_CLOUD_NAME", "cloudinary_cloud_name"),
			APIKey:    getEnv("", "CLOUDINARY_API_KEY", "cloudinary_api_key"),
			APISecret: getEnv("", "CLOUDINARY_API_SECRET", "cloudinary_api_secret"),
		},
		LogDir:    getEnv("logs", "LOG_DIR"),
		UploadDir: getEnv("public", "UPLOAD_DIR"),

		SeedPassword: getEnv("ChangeMe@123", "SEED_USER_PASSWORD"),
	}

	if conf.Environment != EnvironmentProd {
		conf.Environment = EnvironmentDev
	}

	return &conf
}

// getEnv returns the first non-empty variable among keys, or fallback.
func getEnv(fallback string, keys ...string) string {
	for _, key := range keys {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}

	return fallback
}
