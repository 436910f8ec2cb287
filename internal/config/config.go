package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string

	// DBUrl is the service-role connection string (inserts are not blocked
	// by row-level security). DBUrlRestricted is the anon fallback.
	DBUrl           string
	DBUrlRestricted string

	AdminPassword string
	CookieSecure  bool

	WebhookURL string

	ShopTimezone string

	SlotMinutes     int
	LeadTimeMinutes int
	DayStart        string
	DayEnd          string

	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	CacheTTLSeconds int

	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string

	LogLevel  string
	LogFormat string
}

func Load() *Config {
	// Optional; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),

		DBUrl:           getEnv("DATABASE_URL", ""),
		DBUrlRestricted: getEnv("DATABASE_URL_RESTRICTED", ""),

		AdminPassword: getEnv("ADMIN_PASSWORD", "1234"),
		CookieSecure:  getEnvBool("COOKIE_SECURE", false),

		WebhookURL: getEnv("BOOKING_WEBHOOK_URL", ""),

		ShopTimezone: getEnv("SHOP_TIMEZONE", "Europe/Belgrade"),

		SlotMinutes:     getEnvInt("SLOT_MINUTES", 30),
		LeadTimeMinutes: getEnvInt("LEAD_TIME_MINUTES", 120),
		DayStart:        getEnv("WORKING_HOURS_START", "09:00"),
		DayEnd:          getEnv("WORKING_HOURS_END", "17:00"),

		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		CacheTTLSeconds: getEnvInt("CACHE_TTL_SECONDS", 60),

		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3Region:    getEnv("S3_REGION", "eu-central-1"),
		S3Bucket:    getEnv("S3_BUCKET", ""),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),
		S3PublicURL: getEnv("S3_PUBLIC_URL", ""),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

// DatabaseURL picks the elevated credential when available and falls back to
// the restricted one. Missing both is a startup misconfiguration.
func (c *Config) DatabaseURL() (string, error) {
	if c.DBUrl != "" {
		return c.DBUrl, nil
	}
	if c.DBUrlRestricted != "" {
		return c.DBUrlRestricted, nil
	}
	return "", errors.New("config: set DATABASE_URL (service role) or DATABASE_URL_RESTRICTED")
}

func (c *Config) GalleryEnabled() bool {
	return c.S3Endpoint != "" && c.S3Bucket != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}
