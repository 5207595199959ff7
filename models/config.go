package models

import "time"

// Config holds all configuration for the application
type Config struct {
	// Application
	AppName    string `mapstructure:"app_name"`
	AppVersion string `mapstructure:"app_version"`
	AppEnv     string `mapstructure:"app_env"`
	AppHost    string `mapstructure:"app_host"`
	AppPort    string `mapstructure:"app_port"`

	// JWT
	JWTSecret    string        `mapstructure:"jwt_secret"`
	JWTExpiresIn time.Duration `mapstructure:"jwt_expires_in"`

	// Store selection: "dynamodb" or "mongo"
	StoreDriver string `mapstructure:"store_driver"`

	// AWS
	AWSRegion           string `mapstructure:"aws_region"`
	AWSAccessKeyID      string `mapstructure:"aws_access_key_id"`
	AWSSecretAccessKey  string `mapstructure:"aws_secret_access_key"`
	DynamoDBEndpoint    string `mapstructure:"dynamodb_endpoint"`
	DynamoDBTablePrefix string `mapstructure:"dynamodb_table_prefix"`

	// MongoDB
	MongoURI      string `mapstructure:"mongo_uri"`
	MongoDatabase string `mapstructure:"mongo_database"`

	// Logging
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// CORS
	CORSOrigins []string `mapstructure:"cors_origins"`

	// Rate Limiting
	RateLimitRequestsPerMinute int `mapstructure:"rate_limit_requests_per_minute"`

	// Base Path
	BasePath string `mapstructure:"basePath"`

	// Workflow
	PasswordResetTTL        time.Duration `mapstructure:"password_reset_ttl"`
	StrictStatusTransitions bool          `mapstructure:"strict_status_transitions"`

	// Background worker
	SweepEnabled bool   `mapstructure:"sweep_enabled"`
	SweepCron    string `mapstructure:"sweep_cron"`
	LockFilePath string `mapstructure:"lock_file_path"`

	// Setup
	SeedFile string   `mapstructure:"seed_file"`
	Tables   []string `mapstructure:"tables"`
}

// TableName returns the physical table or collection name for an entity
func (c *Config) TableName(name string) string {
	if c.DynamoDBTablePrefix == "" {
		return name
	}
	return c.DynamoDBTablePrefix + "_" + name
}
