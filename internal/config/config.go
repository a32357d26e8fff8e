package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath     string
	RawFeedDir string
	OutputDir  string

	FeedAPIBaseURL         string
	FeedAPIToken           string
	FeedRateLimitRPS       int
	FeedTimeoutMs          int
	IncrementalLookbackHrs int
	IncrementalLookbackDay int

	IndexSkipMalformed bool
	StripCaptainMarker bool

	GmailClientID     string
	GmailClientSecret string
	GmailRedirectURI  string
	GmailRefreshToken string

	IMAPHost     string
	IMAPPort     int
	IMAPSecure   bool
	IMAPUser     string
	IMAPPassword string
	IMAPMarkSeen bool

	FeedListenerProvider     string
	FeedListenerLabel        string
	FeedListenerIntervalSec  int
	FeedListenerFetchMax     int
	FeedListenerProcessBatch int
	FeedListenerAutoExport   bool
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:     getEnv("DB_PATH", filepath.Join(cwd, "data", "app.db")),
		RawFeedDir: getEnv("FEED_RAW_DIR", filepath.Join(cwd, "data", "raw")),
		OutputDir:  getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),

		FeedAPIBaseURL:         getEnv("FEED_API_BASE_URL", "https://api.statsfeed.example/v1"),
		FeedAPIToken:           getEnv("FEED_API_TOKEN", ""),
		FeedRateLimitRPS:       getEnvInt("FEED_RATE_LIMIT_RPS", 5),
		FeedTimeoutMs:          getEnvInt("FEED_TIMEOUT_MS", 30000),
		IncrementalLookbackHrs: getEnvInt("FEED_INCREMENTAL_HOURS", 24),
		IncrementalLookbackDay: getEnvInt("FEED_INCREMENTAL_DAYS", 2),

		IndexSkipMalformed: getEnvBool("INDEX_SKIP_MALFORMED", false),
		StripCaptainMarker: getEnvBool("STRIP_CAPTAIN_MARKER", false),

		GmailClientID:     getEnv("GMAIL_CLIENT_ID", ""),
		GmailClientSecret: getEnv("GMAIL_CLIENT_SECRET", ""),
		GmailRedirectURI:  getEnv("GMAIL_REDIRECT_URI", "https://developers.google.com/oauthplayground"),
		GmailRefreshToken: getEnv("GMAIL_REFRESH_TOKEN", ""),

		IMAPHost:     getEnv("IMAP_HOST", ""),
		IMAPPort:     getEnvInt("IMAP_PORT", 993),
		IMAPSecure:   getEnvBool("IMAP_SECURE", true),
		IMAPUser:     getEnv("IMAP_USER", ""),
		IMAPPassword: getEnv("IMAP_PASSWORD", ""),
		IMAPMarkSeen: getEnvBool("IMAP_MARK_SEEN", false),

		FeedListenerProvider:     getEnv("FEED_LISTENER_PROVIDER", "gmail"),
		FeedListenerLabel:        getEnv("FEED_LISTENER_LABEL", "INBOX"),
		FeedListenerIntervalSec:  getEnvInt("FEED_LISTENER_INTERVAL_SEC", 30),
		FeedListenerFetchMax:     getEnvInt("FEED_LISTENER_FETCH_MAX", 20),
		FeedListenerProcessBatch: getEnvInt("FEED_LISTENER_PROCESS_BATCH", 20),
		FeedListenerAutoExport:   getEnvBool("FEED_LISTENER_AUTO_EXPORT", true),
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}
