package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"time"    // time expresses the session lifetime as a duration
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. The session lifetime and the pricing weight
// threshold are deliberate product decisions surfaced here instead of being
// buried as literals: the same SessionTTLHours value feeds both the session
// row expiry and the auth cookie max-age so the two can never drift apart.
type Config struct {
	Env               string  // application environment (e.g. "dev", "prod")
	Port              string  // HTTP port to listen on
	DBUser            string  // database username
	DBPass            string  // database password (optional)
	DBHost            string  // database host address
	DBPort            string  // database port number
	DBName            string  // database name
	BcryptCost        int     // bcrypt cost for password hashing
	SessionTTLHours   int     // session lifetime in hours (row expiry and cookie max-age)
	WeightThresholdKg float64 // weight up to which the base cost alone applies
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:               must("APP_ENV"),
		Port:              must("APP_PORT"),
		DBUser:            must("DB_USER"),
		DBPass:            os.Getenv("DB_PASS"), // empty allowed
		DBHost:            must("DB_HOST"),
		DBPort:            must("DB_PORT"),
		DBName:            must("DB_NAME"),
		BcryptCost:        mustInt("BCRYPT_COST"),
		SessionTTLHours:   mustInt("SESSION_TTL_HOURS"),
		WeightThresholdKg: envFloat("PRICING_WEIGHT_THRESHOLD_KG", 25),
	}
}

// SessionTTL returns the configured session lifetime as a duration.
func (c Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}

// CookieMaxAge returns the auth cookie max-age in seconds. It is derived
// from the same knob as the session row expiry on purpose.
func (c Config) CookieMaxAge() int {
	return c.SessionTTLHours * 3600
}

// IsProd reports whether the service runs in production, which controls the
// Secure flag on the auth cookie.
func (c Config) IsProd() bool { return c.Env == "prod" }

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// envFloat reads an optional float variable, falling back to def when the
// variable is unset or malformed.
func envFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
