package logger

import (
	"io"
	"os"
	"strconv"
)

// EnvConfig is the logger configuration read from the process environment.
type EnvConfig struct {
	Level       string    // debug, info, warn, error
	Format      string    // json or text
	Output      io.Writer // overrides every other output setting when set
	ServiceName string

	// Environment is local, dev or prod. Anything but local also writes to LogFile.
	Environment string
	LogFile     string
	LogFileOnly bool

	// Rotation settings for LogFile, in MB and days.
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

// LoadFromEnv reads EnvConfig from LOG_* and APP_ENV variables.
func LoadFromEnv() *EnvConfig {
	return &EnvConfig{
		Level:       envString("LOG_LEVEL", "info"),
		Format:      envString("LOG_FORMAT", "json"),
		ServiceName: envString("SERVICE_NAME", "contentflow"),
		Environment: envString("APP_ENV", "local"),
		LogFile:     envString("LOG_FILE", "/var/log/contentflow/app.log"),
		LogFileOnly: envBool("LOG_FILE_ONLY", false),
		MaxSize:     envInt("LOG_MAX_SIZE", 100),
		MaxBackups:  envInt("LOG_MAX_BACKUPS", 7),
		MaxAge:      envInt("LOG_MAX_AGE", 30),
		Compress:    envBool("LOG_COMPRESS", true),
	}
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}
	return b
}

func envInt(key string, def int) int {
	i, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return i
}
