package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const defaultTokenTTLMinutes = 60

// Config holds the application's configuration values.
type Config struct {
	AppName         string   `json:"appname"`
	AppEnv          string   `json:"appenv"`
	AppPort         uint16   `json:"appport"`
	GinMode         string   `json:"ginmode"`
	DatabaseURL     string   `json:"databaseurl"`
	DBHost          string   `json:"dbhost"`
	DBPort          uint16   `json:"dbport"`
	DBName          string   `json:"dbname"`
	DBUser          string   `json:"dbuser"`
	DBPass          string   `json:"dbpass"`
	JWTSecret       string   `json:"-"`
	TokenTTLMinutes int      `json:"tokenttlminutes"`
	AllowedOrigins  []string `json:"allowedorigins"`
}

var config *Config
var once sync.Once

func getEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback
	}
	return value
}

// LoadConfig loads the environment variables from a .env file, and returns a singleton Config instance.
func LoadConfig() *Config {
	once.Do(func() {
		// Load environment variables from a .env file when present.
		if err := godotenv.Load(); err != nil {
			log.Printf("No .env file loaded: %v", err)
		}

		appPort, _ := strconv.ParseUint(getEnv("APPPORT", "8080"), 10, 16)
		dbPort, _ := strconv.ParseUint(getEnv("DBPORT", "3306"), 10, 16)
		ttl, err := strconv.Atoi(getEnv("TOKENTTLMINUTES", strconv.Itoa(defaultTokenTTLMinutes)))
		if err != nil || ttl <= 0 {
			ttl = defaultTokenTTLMinutes
		}

		// Initialize the Config struct with values from environment variables.
		config = &Config{
			AppName:         getEnv("APPNAME", "patients-api"),
			AppEnv:          os.Getenv("APPENV"),
			AppPort:         uint16(appPort),
			GinMode:         os.Getenv("GINMODE"),
			DatabaseURL:     os.Getenv("DATABASE_URL"),
			DBHost:          getEnv("DBHOST", "127.0.0.1"),
			DBPort:          uint16(dbPort),
			DBName:          os.Getenv("DBNAME"),
			DBUser:          os.Getenv("DBUSER"),
			DBPass:          os.Getenv("DBPASS"),
			JWTSecret:       os.Getenv("JWTSECRET"),
			TokenTTLMinutes: ttl,
			AllowedOrigins:  parseOrigins(os.Getenv("ALLOWEDORIGINS")),
		}
	})
	return config
}

// TokenTTL returns the configured access token lifetime.
func (c *Config) TokenTTL() time.Duration {
	minutes := c.TokenTTLMinutes
	if minutes <= 0 {
		minutes = defaultTokenTTLMinutes
	}
	return time.Duration(minutes) * time.Minute
}

// parseOrigins splits a comma-separated origin list, falling back to the
// local development origins when unset.
func parseOrigins(raw string) []string {
	if raw == "" {
		return []string{"http://localhost:3000", "http://localhost:8080"}
	}
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// ConnectDatabase establishes the database connection for the singleton configuration.
func ConnectDatabase() (*gorm.DB, error) {
	return OpenDatabase(LoadConfig())
}

// OpenDatabase opens a gorm connection for the given configuration. A
// DATABASE_URL of the form "sqlite://<path>" selects the SQLite driver; any
// other non-empty value is treated as a MySQL DSN. When DATABASE_URL is not
// set the DSN is built from the DBHOST/DBPORT/DBNAME/DBUSER/DBPASS parts.
func OpenDatabase(cfg *Config) (*gorm.DB, error) {
	if url := cfg.DatabaseURL; url != "" {
		if path, ok := strings.CutPrefix(url, "sqlite://"); ok {
			return gorm.Open(sqlite.Open(path), &gorm.Config{})
		}
		return gorm.Open(mysql.Open(url), &gorm.Config{})
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	return gorm.Open(mysql.Open(dsn), &gorm.Config{})
}
