package server

import (
	"errors"
	"os"
	"strings"
)

type Config struct {
	Addr            string
	MongoURI        string
	MongoDB         string
	TestsCollection string
	DefaultSecret   string
	Debug           bool
}

// FromEnv builds a Config from the process environment. MONGO_URI is the
// one hard requirement; everything else has a default.
func FromEnv() (Config, error) {
	cfg := Config{
		Addr:            getEnv("ADDR", ""),
		MongoURI:        os.Getenv("MONGO_URI"),
		MongoDB:         getEnv("MONGO_DB", ""),
		TestsCollection: getEnv("MONGO_COLLECTION", ""),
		DefaultSecret:   getEnv("APP_SECRET", ""),
		Debug:           parseBool(getEnv("DEBUG", "")),
	}
	if cfg.MongoURI == "" {
		return Config{}, errors.New("MONGO_URI is required")
	}
	cfg.setDefaults()
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.MongoDB == "" {
		c.MongoDB = "lf_jwt"
	}
	if c.TestsCollection == "" {
		c.TestsCollection = "test_cases"
	}
	if c.DefaultSecret == "" {
		c.DefaultSecret = "dev_secret_change_this"
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

// MaskMongoURI hides credentials so the URI can be logged at startup.
func MaskMongoURI(uri string) string {
	if uri == "" {
		return "<not set>"
	}
	scheme, rest, found := strings.Cut(uri, "://")
	if !found {
		return "<set>"
	}
	if _, host, hasCreds := strings.Cut(rest, "@"); hasCreds {
		return scheme + "://***:***@" + host
	}
	return uri
}
