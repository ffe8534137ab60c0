package inits

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Form
	StudentAPIURL  string
	GateOnValidity bool
	PaymentURI     string

	// Local add-student service
	Port               string
	AllowedHosts       []string
	RateLimitPerMinute float64
	RecordRetention    time.Duration
	CleanupInterval    time.Duration
}

// LoadEnv reads a .env file into the environment. A missing file is fine.
func LoadEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		log.Printf("No env file, using environment: path=%s", path)
		return nil
	}
	return err
}

func LoadConfig() *Config {
	return &Config{
		StudentAPIURL:  getEnv("STUDENT_API_URL", "http://localhost:3002/api/student/add"),
		GateOnValidity: getEnvAsBool("FORM_GATE_ON_VALIDITY", true),
		PaymentURI:     getEnv("PAYMENT_URI", "upi://pay?pa=payments@okaxis&pn=Student%20Fees&cu=INR"),

		Port:               getEnv("PORT", "3002"),
		AllowedHosts:       getEnvAsList("ALLOWED_HOSTS"),
		RateLimitPerMinute: getEnvAsFloat("RATE_LIMIT_PER_MINUTE", 60),
		RecordRetention:    getEnvAsDuration("RECORD_RETENTION", "336h"),
		CleanupInterval:    getEnvAsDuration("CLEANUP_INTERVAL", "24h"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsDuration falls back to defaultValue for unparseable or non-positive
// values.
func getEnvAsDuration(key string, defaultValue string) time.Duration {
	if duration, err := time.ParseDuration(getEnv(key, defaultValue)); err == nil && duration > 0 {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

// getEnvAsList splits a comma separated value. Empty means no restriction.
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
