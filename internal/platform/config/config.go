package config

import (
	"os"
	"strings"
	"time"
)

// RegistryCacheTTL bounds how long a doctor registry row may be served from
// cache before a fresh lookup is forced.
var RegistryCacheTTL = 5 * time.Minute

// Server captures all process configuration so main stays lean.
type Server struct {
	Addr             string
	PostgresDSN      string
	RedisURL         string
	KafkaBrokers     []string
	KafkaTopic       string
	AnalyzerEndpoint string
	AnalyzerKey      string
	AnalyzerID       string
	JWTSigningKey    string
	DefaultLanguage  string
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	addr := os.Getenv("ATTESTGUARD_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	analyzerID := os.Getenv("UNDERSTANDING_ANALYZER_ID")
	if analyzerID == "" {
		analyzerID = "prebuilt-layout"
	}

	topic := os.Getenv("KAFKA_AUDIT_TOPIC")
	if topic == "" {
		topic = "attestguard.fraud-cases"
	}

	language := os.Getenv("DEFAULT_LANGUAGE")
	if language == "" {
		language = "nl"
	}

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}

	return Server{
		Addr:             addr,
		PostgresDSN:      os.Getenv("POSTGRES_DSN"),
		RedisURL:         os.Getenv("REDIS_URL"),
		KafkaBrokers:     brokers,
		KafkaTopic:       topic,
		AnalyzerEndpoint: os.Getenv("UNDERSTANDING_ENDPOINT"),
		AnalyzerKey:      os.Getenv("UNDERSTANDING_KEY"),
		AnalyzerID:       analyzerID,
		JWTSigningKey:    os.Getenv("JWT_SIGNING_KEY"),
		DefaultLanguage:  language,
	}
}
