package config

import (
	"encoding/hex"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

var (
	JwtSecret      string
	ServerPort     string
	Issuer         string
	SessionFile    string
	SessionKey     []byte
	GatewayTimeout time.Duration
	Sites          map[string]string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	MinioBucket    string
	MinioEnabled   bool
)

func LoadConfig() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	JwtSecret = getEnv("JWT_SECRET", "defaultsecret")
	ServerPort = getEnv("SERVER_PORT", "8080")
	Issuer = getEnv("Issuer", "checkin")
	SessionFile = getEnv("SESSION_FILE", "session.dat")
	SessionKey = parseSessionKey(getEnv("SESSION_KEY", ""))
	GatewayTimeout = parseDuration(getEnv("GATEWAY_TIMEOUT", "30s"))
	Sites = loadSites(getEnv("SITES_FILE", "sites.yaml"))

	MinioEndpoint = getEnv("MINIO_ENDPOINT", "localhost:9000")
	MinioAccessKey = getEnv("MINIO_ACCESS_KEY", "minioadmin")
	MinioSecretKey = getEnv("MINIO_SECRET_KEY", "minioadmin")
	MinioBucket = getEnv("MINIO_BUCKET", "checkin-reports")
	MinioUseSSL, _ = strconv.ParseBool(getEnv("MINIO_USE_SSL", "false"))
	MinioEnabled, _ = strconv.ParseBool(getEnv("MINIO_ENABLED", "false"))
}

// parseSessionKey decodes a hex-encoded 32 byte key. An empty value means
// the session file is stored unencrypted.
func parseSessionKey(value string) []byte {
	if value == "" {
		return nil
	}
	key, err := hex.DecodeString(value)
	if err != nil || len(key) != 32 {
		log.Println("SESSION_KEY is not 32 hex-encoded bytes, storing session unencrypted")
		return nil
	}
	return key
}

func parseDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// loadSites reads the site registry mapping short site codes to backend base
// URLs. A missing file falls back to the built-in default.
func loadSites(path string) map[string]string {
	sites := map[string]string{
		"AU": "https://ticketwave.com.au/",
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Printf("No site registry at %s, using defaults", path)
		return sites
	}
	parsed := map[string]string{}
	if err := yaml.Unmarshal(raw, &parsed); err != nil {
		log.Printf("Invalid site registry %s: %v, using defaults", path, err)
		return sites
	}
	for code, url := range parsed {
		sites[code] = url
	}
	return sites
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
