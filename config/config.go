package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment `yaml:"-"`

	// Server configuration
	ServerPort  string   `yaml:"server_port"`
	ServerHost  string   `yaml:"server_host"`
	FrontendURL string   `yaml:"frontend_url"`
	CORSOrigins []string `yaml:"cors_origins"`
	LogLevel    string   `yaml:"log_level"`

	// Database configuration. DBDriver is "postgres" or "sqlite"; DBPath is
	// only used by sqlite.
	DBDriver      string `yaml:"db_driver"`
	DBHost        string `yaml:"db_host"`
	DBPort        string `yaml:"db_port"`
	DBUser        string `yaml:"db_user"`
	DBPassword    string `yaml:"db_password"`
	DBName        string `yaml:"db_name"`
	DBSSLMode     string `yaml:"db_ssl_mode"`
	DBPath        string `yaml:"db_path"`
	MigrationsDir string `yaml:"migrations_dir"`

	// Redis configuration
	RedisHost     string `yaml:"redis_host"`
	RedisPort     string `yaml:"redis_port"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
	RedisURL      string `yaml:"redis_url"`

	// Session tokens
	JWTSecret  string        `yaml:"jwt_secret"`
	SessionTTL time.Duration `yaml:"session_ttl"`

	// Outgoing mail for password resets
	SMTPHost      string `yaml:"smtp_host"`
	SMTPPort      string `yaml:"smtp_port"`
	SMTPUsername  string `yaml:"smtp_username"`
	SMTPPassword  string `yaml:"smtp_password"`
	EmailFrom     string `yaml:"email_from"`
	EmailFromName string `yaml:"email_from_name"`

	// Recipe image storage. Uploads are disabled when S3Bucket is empty.
	S3Bucket  string `yaml:"s3_bucket"`
	AWSRegion string `yaml:"aws_region"`

	// Rate limits on recipe writes
	RateLimitCreate int           `yaml:"rate_limit_create"`
	RateLimitModify int           `yaml:"rate_limit_modify"`
	RateLimitWindow time.Duration `yaml:"rate_limit_window"`

	// StrictSearch rejects malformed numeric search filters with 400
	// instead of ignoring them.
	StrictSearch bool `yaml:"strict_search"`
}

// field binds one configuration value to its environment variable and
// Docker secret name.
type field struct {
	env    string
	secret string
	dest   any
}

func (c *Config) fields() []field {
	return []field{
		{"SERVER_PORT", "server_port", &c.ServerPort},
		{"SERVER_HOST", "server_host", &c.ServerHost},
		{"FRONTEND_URL", "frontend_url", &c.FrontendURL},
		{"CORS_ORIGINS", "cors_origins", &c.CORSOrigins},
		{"LOG_LEVEL", "log_level", &c.LogLevel},
		{"DB_DRIVER", "db_driver", &c.DBDriver},
		{"DB_HOST", "db_host", &c.DBHost},
		{"DB_PORT", "db_port", &c.DBPort},
		{"DB_USER", "db_user", &c.DBUser},
		{"DB_PASSWORD", "db_password", &c.DBPassword},
		{"DB_NAME", "db_name", &c.DBName},
		{"DB_SSL_MODE", "db_ssl_mode", &c.DBSSLMode},
		{"DB_PATH", "db_path", &c.DBPath},
		{"MIGRATIONS_DIR", "migrations_dir", &c.MigrationsDir},
		{"REDIS_HOST", "redis_host", &c.RedisHost},
		{"REDIS_PORT", "redis_port", &c.RedisPort},
		{"REDIS_PASSWORD", "redis_password", &c.RedisPassword},
		{"REDIS_DB", "redis_db", &c.RedisDB},
		{"REDIS_URL", "redis_url", &c.RedisURL},
		{"JWT_SECRET", "jwt_secret", &c.JWTSecret},
		{"SESSION_TTL", "session_ttl", &c.SessionTTL},
		{"SMTP_HOST", "smtp_host", &c.SMTPHost},
		{"SMTP_PORT", "smtp_port", &c.SMTPPort},
		{"SMTP_USERNAME", "smtp_username", &c.SMTPUsername},
		{"SMTP_PASSWORD", "smtp_password", &c.SMTPPassword},
		{"EMAIL_FROM", "email_from", &c.EmailFrom},
		{"EMAIL_FROM_NAME", "email_from_name", &c.EmailFromName},
		{"S3_BUCKET_NAME", "s3_bucket_name", &c.S3Bucket},
		{"AWS_REGION", "aws_region", &c.AWSRegion},
		{"RATE_LIMIT_CREATE", "rate_limit_create", &c.RateLimitCreate},
		{"RATE_LIMIT_MODIFY", "rate_limit_modify", &c.RateLimitModify},
		{"RATE_LIMIT_WINDOW", "rate_limit_window", &c.RateLimitWindow},
		{"STRICT_SEARCH", "strict_search", &c.StrictSearch},
	}
}

// DevelopmentJWTSecret signs session tokens when no secret is configured.
// It is rejected in production.
const DevelopmentJWTSecret = "cookatlas-development-secret"

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Environment:     Development,
		ServerPort:      "8080",
		ServerHost:      "0.0.0.0",
		FrontendURL:     "http://localhost:5173",
		CORSOrigins:     []string{"http://localhost:5173"},
		LogLevel:        "info",
		DBDriver:        "postgres",
		DBHost:          "localhost",
		DBPort:          "5432",
		DBUser:          "postgres",
		DBName:          "cookatlas",
		DBSSLMode:       "disable",
		DBPath:          "cookatlas.db",
		MigrationsDir:   "migrations",
		RedisPort:       "6379",
		JWTSecret:       DevelopmentJWTSecret,
		SessionTTL:      24 * time.Hour,
		EmailFromName:   "CookAtlas",
		AWSRegion:       "us-east-1",
		RateLimitCreate: 20,
		RateLimitModify: 10,
		RateLimitWindow: time.Hour,
	}
}

// LoadConfig builds the configuration from defaults, the optional YAML file
// named by CONFIG_FILE, Docker secrets and environment variables, in that
// order of increasing precedence. CI reads environment variables only.
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := Default()
	cfg.Environment = env

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	for _, f := range cfg.fields() {
		if env != CI {
			if value := readSecret(f.secret); value != "" {
				if err := assign(f.dest, value); err != nil {
					return nil, fmt.Errorf("secret %s: %w", f.secret, err)
				}
			}
		}
		if value, ok := os.LookupEnv(f.env); ok && value != "" {
			if err := assign(f.dest, value); err != nil {
				return nil, fmt.Errorf("environment variable %s: %w", f.env, err)
			}
		}
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func assign(dest any, raw string) error {
	raw = strings.TrimSpace(raw)
	switch d := dest.(type) {
	case *string:
		*d = raw
	case *int:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid integer %q", raw)
		}
		*d = n
	case *bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid boolean %q", raw)
		}
		*d = b
	case *time.Duration:
		dur, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid duration %q", raw)
		}
		*d = dur
	case *[]string:
		var out []string
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		*d = out
	default:
		return fmt.Errorf("unsupported config type %T", dest)
	}
	return nil
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// DSN returns the PostgreSQL connection string. The password is included.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// SMTPEnabled reports whether outgoing mail is configured.
func (c *Config) SMTPEnabled() bool {
	return c.SMTPHost != "" && c.SMTPPort != ""
}
