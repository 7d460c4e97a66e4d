package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the runtime settings of the service and the CLI
type Config struct {
	Port            string
	GinMode         string
	DatabaseURL     string
	DataPath        string
	JWTSecret       string
	APIMasterSecret string
	AdminUsername   string
	AdminPassword   string
	ExamAPIBaseURL  string
	ExamAPITimeout  time.Duration
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	CacheTTL        time.Duration
}

// LoadDotEnv loads the first .env found in the working directory or its parents
func LoadDotEnv() {
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			break
		}
	}
}

// New builds a viper instance with defaults, bound to the environment
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("PORT", "8000")
	v.SetDefault("GIN_MODE", "")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DATA_PATH", "seatplan.db")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("API_MASTER_SECRET", "")
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_PASSWORD", "admin123")
	v.SetDefault("EXAM_API_BASE_URL", "http://localhost:8081/api")
	v.SetDefault("EXAM_API_TIMEOUT", 10*time.Second)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", 5*time.Minute)
	v.AutomaticEnv()
	return v
}

// Load reads .env (if any) and the environment into a Config
func Load() Config {
	LoadDotEnv()
	return FromViper(New())
}

// FromViper converts viper settings into a Config
func FromViper(v *viper.Viper) Config {
	return Config{
		Port:            v.GetString("PORT"),
		GinMode:         v.GetString("GIN_MODE"),
		DatabaseURL:     v.GetString("DATABASE_URL"),
		DataPath:        v.GetString("DATA_PATH"),
		JWTSecret:       v.GetString("JWT_SECRET"),
		APIMasterSecret: v.GetString("API_MASTER_SECRET"),
		AdminUsername:   v.GetString("ADMIN_USERNAME"),
		AdminPassword:   v.GetString("ADMIN_PASSWORD"),
		ExamAPIBaseURL:  v.GetString("EXAM_API_BASE_URL"),
		ExamAPITimeout:  v.GetDuration("EXAM_API_TIMEOUT"),
		RedisAddr:       v.GetString("REDIS_ADDR"),
		RedisPassword:   v.GetString("REDIS_PASSWORD"),
		RedisDB:         v.GetInt("REDIS_DB"),
		CacheTTL:        v.GetDuration("CACHE_TTL"),
	}
}
