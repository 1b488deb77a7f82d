package config

import "os"

type Config struct {
	BotToken      string
	CommandPrefix string
	DBDriver      string
	DatabasePath  string
	DatabaseURL   string
	LogLevel      string
}

func Load() *Config {
	return &Config{
		BotToken:      getEnv("BOT_TOKEN", ""),
		CommandPrefix: getEnv("COMMAND_PREFIX", "c."),
		DBDriver:      getEnv("DB_DRIVER", "sqlite3"),
		DatabasePath:  getEnv("DATABASE_PATH", "./checkin.db"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}
}

// DSN returns the connection string for the configured driver: the file path
// for sqlite3, DATABASE_URL for postgres.
func (c *Config) DSN() string {
	if c.DBDriver == "postgres" {
		return c.DatabaseURL
	}
	return c.DatabasePath
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
