package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points secret lookup at an empty directory and clears the
// variables the tests touch.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("CI", "")
	t.Setenv("ENV", "test")
	t.Setenv("CONFIG_FILE", "")
	for _, f := range Default().fields() {
		t.Setenv(f.env, "")
	}
}

func TestLoadConfig(t *testing.T) {
	isolate(t)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_USER", "atlas")
	t.Setenv("DB_PASSWORD", "hunter22")
	t.Setenv("DB_NAME", "recipes")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("RATE_LIMIT_WINDOW", "30m")
	t.Setenv("STRICT_SEARCH", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Test, cfg.Environment)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "6543", cfg.DBPort)
	assert.Equal(t, "atlas", cfg.DBUser)
	assert.Equal(t, "hunter22", cfg.DBPassword)
	assert.Equal(t, "recipes", cfg.DBName)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, 30*time.Minute, cfg.RateLimitWindow)
	assert.True(t, cfg.StrictSearch)
}

func TestLoadConfigWithDefaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "cookatlas", cfg.DBName)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, DevelopmentJWTSecret, cfg.JWTSecret)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.False(t, cfg.StrictSearch)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
}

func TestLoadConfigLayering(t *testing.T) {
	isolate(t)

	dir := t.TempDir()
	file := filepath.Join(dir, "cookatlas.yaml")
	require.NoError(t, os.WriteFile(file, []byte("server_port: \"9000\"\ndb_name: from_file\ndb_user: file_user\nlog_level: debug\n"), 0o600))
	t.Setenv("CONFIG_FILE", file)

	secrets := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(secrets, "db_name"), []byte("from_secret\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(secrets, "db_user"), []byte("secret_user"), 0o600))
	t.Setenv("SECRETS_DIR", secrets)

	t.Setenv("DB_USER", "env_user")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.ServerPort, "file overrides defaults")
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "from_secret", cfg.DBName, "secrets override the file")
	assert.Equal(t, "env_user", cfg.DBUser, "environment overrides secrets")
}

func TestLoadConfigCIIgnoresSecrets(t *testing.T) {
	isolate(t)
	secrets := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(secrets, "db_name"), []byte("from_secret"), 0o600))
	t.Setenv("SECRETS_DIR", secrets)
	t.Setenv("CI", "true")
	t.Setenv("JWT_SECRET", "ci-secret")
	t.Setenv("DB_PASSWORD", "ci")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, CI, cfg.Environment)
	assert.Equal(t, "cookatlas", cfg.DBName)
}

func TestLoadConfigRejectsMalformedValues(t *testing.T) {
	isolate(t)
	t.Setenv("RATE_LIMIT_CREATE", "lots")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "RATE_LIMIT_CREATE")
}

func TestValidateConfig(t *testing.T) {
	t.Run("sqlite needs a path", func(t *testing.T) {
		cfg := Default()
		cfg.DBDriver = "sqlite"
		cfg.DBPath = ""
		err := ValidateConfig(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DB_PATH")
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := Default()
		cfg.DBDriver = "mysql"
		assert.ErrorContains(t, ValidateConfig(cfg), "DB_DRIVER")
	})

	t.Run("production rejects development secret", func(t *testing.T) {
		cfg := Default()
		cfg.Environment = Production
		cfg.DBPassword = "pw"
		err := ValidateConfig(cfg)
		require.Error(t, err)

		var errs ValidationErrors
		require.ErrorAs(t, err, &errs)
		assert.Len(t, errs, 1)
		assert.Equal(t, "JWT_SECRET", errs[0].Field)
	})

	t.Run("collects every problem", func(t *testing.T) {
		cfg := Default()
		cfg.ServerPort = ""
		cfg.DBHost = ""
		cfg.SessionTTL = 0
		var errs ValidationErrors
		require.ErrorAs(t, ValidateConfig(cfg), &errs)
		assert.Len(t, errs, 3)
	})

	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, ValidateConfig(Default()))
	})
}

func TestParseEnvironment(t *testing.T) {
	tests := []struct {
		value string
		want  Environment
	}{
		{"", Development},
		{"development", Development},
		{"staging", Development},
		{" Production ", Production},
		{"test", Test},
		{"CI", CI},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			env := ParseEnvironment(tt.value)
			assert.Equal(t, tt.want, env)
			assert.Equal(t, tt.want == Development, env.IsDevelopment())
			assert.Equal(t, tt.want != Production, env.ConsoleLogs())
		})
	}
}

func TestGetEnvironmentPrefersCI(t *testing.T) {
	t.Setenv("CI", "true")
	t.Setenv("ENV", "production")
	assert.Equal(t, CI, GetEnvironment())

	t.Setenv("CI", "")
	assert.Equal(t, Production, GetEnvironment())
}
