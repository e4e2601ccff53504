package config

import "os"

// Config carries the environment-driven settings of the service.
type Config struct {
	Port        string
	StoreAPIURL string
	RateAPIURL  string
	RedisAddr   string
	JWTSecret   string
}

func Load() Config {
	return Config{
		Port:        getenv("PORT", "8084"),
		StoreAPIURL: getenv("STORE_API_URL", "http://localhost:8000/api"),
		RateAPIURL:  getenv("RATE_API_URL", "http://localhost:8000/api"),
		RedisAddr:   getenv("REDIS_ADDR", "localhost:6379"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
