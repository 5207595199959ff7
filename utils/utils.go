package utils

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gearguard-backend/models"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

const (
	// DateLayout is the calendar-day format used for all date-only fields
	DateLayout = "2006-01-02"

	defaultJWTSecret = "change-me-gearguard-jwt-secret"
)

// GetConfig read the configuration from environment variables or config files
func GetConfig() (*models.Config, error) {
	config, err := Load()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	return config, nil
}

// Load reads .env, then config.json from the usual locations, then the environment
func Load() (*models.Config, error) {
	return LoadFrom(os.Getenv("GEARGUARD_CONFIG"))
}

// LoadFrom loads configuration using an explicit config file when path is not empty
func LoadFrom(path string) (*models.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("json")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("../")
		v.AddConfigPath("../../")
	}

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if v.IsSet("app") {
		flattenNestedConfig(v)
	}

	var config models.Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "GearGuard Backend")
	v.SetDefault("app_version", "1.0.0")
	v.SetDefault("app_env", "development")
	v.SetDefault("app_host", "0.0.0.0")
	v.SetDefault("app_port", "4000")

	v.SetDefault("jwt_secret", defaultJWTSecret)
	v.SetDefault("jwt_expires_in", 8*time.Hour)

	v.SetDefault("store_driver", "dynamodb")

	v.SetDefault("aws_region", "us-east-1")
	v.SetDefault("aws_access_key_id", "")
	v.SetDefault("aws_secret_access_key", "")
	v.SetDefault("dynamodb_endpoint", "")
	v.SetDefault("dynamodb_table_prefix", "dev")

	v.SetDefault("mongo_uri", "mongodb://localhost:27017")
	v.SetDefault("mongo_database", "gearguard")

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	v.SetDefault("cors_origins", []string{"*"})

	v.SetDefault("rate_limit_requests_per_minute", 60)

	v.SetDefault("basePath", "/api")

	v.SetDefault("password_reset_ttl", time.Hour)
	v.SetDefault("strict_status_transitions", false)

	v.SetDefault("sweep_enabled", false)
	v.SetDefault("sweep_cron", "0 0 * * * *")
	v.SetDefault("lock_file_path", "")

	v.SetDefault("seed_file", "configs/seed.yaml")
	v.SetDefault("tables", []string{"users", "user_emails", "equipment", "maintenance_requests", "teams", "calendar_events"})
}

// validate checks if all required configuration is provided
func validate(c *models.Config) error {
	if c.JWTSecret == defaultJWTSecret && c.AppEnv == "production" {
		return fmt.Errorf("JWT_SECRET must be set in production environment")
	}

	switch c.StoreDriver {
	case "dynamodb", "mongo":
	default:
		return fmt.Errorf("unsupported store_driver %q (expected dynamodb or mongo)", c.StoreDriver)
	}

	if c.PasswordResetTTL <= 0 {
		return fmt.Errorf("password_reset_ttl must be positive")
	}

	return nil
}

// flattenNestedConfig flattens the nested JSON structure to flat keys for easier mapping
func flattenNestedConfig(v *viper.Viper) {
	nested := map[string]string{
		"app.name":                       "app_name",
		"app.version":                    "app_version",
		"app.env":                        "app_env",
		"app.host":                       "app_host",
		"app.port":                       "app_port",
		"jwt.secret":                     "jwt_secret",
		"jwt.expires_in":                 "jwt_expires_in",
		"store.driver":                   "store_driver",
		"aws.region":                     "aws_region",
		"aws.access_key_id":              "aws_access_key_id",
		"aws.secret_access_key":          "aws_secret_access_key",
		"aws.dynamodb_endpoint":          "dynamodb_endpoint",
		"aws.dynamodb_table_prefix":      "dynamodb_table_prefix",
		"mongo.uri":                      "mongo_uri",
		"mongo.database":                 "mongo_database",
		"logging.level":                  "log_level",
		"logging.format":                 "log_format",
		"rate_limit.requests_per_minute": "rate_limit_requests_per_minute",
		"workflow.password_reset_ttl":    "password_reset_ttl",
		"workflow.strict_status":         "strict_status_transitions",
		"worker.enabled":                 "sweep_enabled",
		"worker.cron":                    "sweep_cron",
		"worker.lock_file_path":          "lock_file_path",
		"setup.seed_file":                "seed_file",
	}

	for from, to := range nested {
		// environment variables win over the config file
		if v.IsSet(from) && os.Getenv(strings.ToUpper(to)) == "" {
			v.Set(to, v.Get(from))
		}
	}

	if v.IsSet("cors.origins") && os.Getenv("CORS_ORIGINS") == "" {
		v.Set("cors_origins", v.GetStringSlice("cors.origins"))
	}
	if v.IsSet("setup.tables") {
		v.Set("tables", v.GetStringSlice("setup.tables"))
	}
}

// PrintPrettyJSON takes any struct or map and prints it as pretty JSON
func PrintPrettyJSON(data interface{}) string {
	prettyJSON, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		return ""
	}
	return string(prettyJSON)
}

// GenerateUUID returns a new UUID string
func GenerateUUID() string {
	return uuid.New().String()
}

// HashPassword hashes a plain text password using bcrypt.
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// CheckPassword compares a hashed password with a plain text password.
func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// GenerateResetToken returns 20 random bytes, hex encoded
func GenerateResetToken() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// StartOfDay truncates t to local midnight
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// FormatDate renders the calendar day of t
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate accepts YYYY-MM-DD or an RFC3339 timestamp. Date-only values are
// interpreted as local midnight.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.ParseInLocation(DateLayout, value, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.In(time.Local), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC3339", value)
}

// IsBeforeToday reports whether the calendar day of value is earlier than the day of now
func IsBeforeToday(value string, now time.Time) (bool, error) {
	t, err := ParseDate(value)
	if err != nil {
		return false, err
	}
	return t.Before(StartOfDay(now)), nil
}
