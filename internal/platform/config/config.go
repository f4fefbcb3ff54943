package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreMongo    = "mongo"
)

type Config struct {
	Port       string
	Production bool

	SessionSecret     []byte
	SessionCookieName string
	SessionMaxAge     time.Duration

	ClientURL      string
	AllowedOrigins []string

	StoreDriver        string
	DBConnectionString string
	MongoDatabase      string
	PgConnStr          string
	DBHost             string
	DBPort             string
	DBUser             string
	DBPassword         string
	DBName             string
	DBSslMode          string

	PasswordHashing string
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	AppConfig = FromEnv()
}

// FromEnv builds a Config from the current environment without touching
// AppConfig.
func FromEnv() *Config {
	cfg := &Config{
		Port:       getEnv("PORT", "4000"),
		Production: getEnv("NODE_ENV", "development") == "production",

		SessionSecret:     []byte(getEnv("SESSION_SECRET", "kambaz")),
		SessionCookieName: getEnv("SESSION_COOKIE_NAME", "kambaz_session"),
		SessionMaxAge:     time.Duration(getEnvAsInt("SESSION_MAX_AGE_HOURS", 168)) * time.Hour,

		ClientURL:      getEnv("CLIENT_URL", ""),
		AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS"),

		StoreDriver:        strings.ToLower(getEnv("STORE_DRIVER", StoreMemory)),
		DBConnectionString: getEnv("DATABASE_CONNECTION_STRING", ""),
		MongoDatabase:      getEnv("MONGO_DATABASE", "kambaz"),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBUser:             getEnv("DB_USER", "user"),
		DBPassword:         getEnv("DB_PASSWORD", "password"),
		DBName:             getEnv("DB_NAME", "kambaz"),
		DBSslMode:          getEnv("DB_SSLMODE", "disable"),
		PasswordHashing:    strings.ToLower(getEnv("PASSWORD_HASHING", "plain")),
	}

	// An explicit connection string wins over the DB_* parts.
	cfg.PgConnStr = cfg.DBConnectionString
	if cfg.PgConnStr == "" {
		cfg.PgConnStr = "host=" + cfg.DBHost +
			" port=" + cfg.DBPort +
			" user=" + cfg.DBUser +
			" password=" + cfg.DBPassword +
			" dbname=" + cfg.DBName +
			" sslmode=" + cfg.DBSslMode
	}

	if string(cfg.SessionSecret) == "kambaz" && cfg.Production {
		log.Println("WARN: SESSION_SECRET is not set; using the built-in default in production")
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
