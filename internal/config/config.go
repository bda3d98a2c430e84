// config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI        string
	MongoDBName     string
	AuthURL         string
	RabbitURL       string
	DNAServiceURL   string
	DNAServiceToken string
	Port            string
	MockData        bool
	MockLatencyMin  time.Duration
	MockLatencyMax  time.Duration
	StatusMaxAge    time.Duration
	CleanupInterval time.Duration
}

func Load() *Config {
	// El .env es opcional; si no está, valen las variables del entorno.
	_ = godotenv.Load()

	return &Config{
		MongoURI:        getEnv("MONGO_URI", "mongodb://host.docker.internal:27017"),
		MongoDBName:     getEnv("MONGO_DB_NAME", "dna_status_db"),
		AuthURL:         getEnv("AUTH_URL", "http://host.docker.internal:3000"),
		RabbitURL:       getEnv("RABBIT_URL", "amqp://host.docker.internal"),
		DNAServiceURL:   getEnv("DNA_SERVICE_URL", "http://host.docker.internal:3004"),
		DNAServiceToken: getEnv("DNA_SERVICE_TOKEN", ""),
		Port:            getEnv("PORT", "8080"),
		MockData:        getBool("MOCK_DATA", false),
		MockLatencyMin:  getDuration("MOCK_LATENCY_MIN", 200*time.Millisecond),
		MockLatencyMax:  getDuration("MOCK_LATENCY_MAX", time.Second),
		StatusMaxAge:    getDuration("STATUS_MAX_AGE", 7*24*time.Hour),
		CleanupInterval: getDuration("STATUS_CLEANUP_INTERVAL", time.Hour),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
