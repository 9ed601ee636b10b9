package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port                    string
	Env                     string
	Storage                 string
	PostgresConnStr         string
	MongoURI                string
	MongoDatabase           string
	MetricsPort             string
	AuthProvider            string
	FirebaseCredentialsPath string
	JWTSecret               string
	SessionCookie           string
	Community               CommunityConfig
}

// CommunityConfig holds the board rules. It can be loaded from the YAML file named
// by COMMUNITY_CONFIG; environment variables override the file.
type CommunityConfig struct {
	EditWindow       time.Duration `yaml:"edit_window"`
	CommentMaxLength int           `yaml:"comment_max_length"`
	AdminEmails      []string      `yaml:"admin_emails"`
	Cities           []CitySeed    `yaml:"cities"`
}

// CitySeed is reference data upserted at boot.
type CitySeed struct {
	ID         string          `yaml:"id"`
	Name       string          `yaml:"name"`
	NameKo     string          `yaml:"name_ko"`
	Apartments []ApartmentSeed `yaml:"apartments"`
}

type ApartmentSeed struct {
	ID        string  `yaml:"id"`
	Name      string  `yaml:"name"`
	Address   string  `yaml:"address"`
	Latitude  float64 `yaml:"lat"`
	Longitude float64 `yaml:"lng"`
}

func defaultCommunity() CommunityConfig {
	return CommunityConfig{
		EditWindow:       24 * time.Hour,
		CommentMaxLength: 1000,
	}
}

// Load reads configuration from the environment, loading .env first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	community := defaultCommunity()
	if path := os.Getenv("COMMUNITY_CONFIG"); path != "" {
		if err := loadCommunityFile(path, &community); err != nil {
			return nil, err
		}
	}
	if err := applyCommunityEnv(&community); err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		Storage:                 strings.ToLower(getEnv("STORAGE", "postgres")),
		PostgresConnStr:         getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:                getEnv("MONGO_URI", ""),
		MongoDatabase:           getEnv("MONGO_DATABASE", "vinahome"),
		MetricsPort:             getEnv("METRICS_PORT", "9090"),
		AuthProvider:            strings.ToLower(getEnv("AUTH_PROVIDER", "jwt")),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		JWTSecret:               getEnv("JWT_SECRET", ""),
		SessionCookie:           getEnv("SESSION_COOKIE", "session"),
		Community:               community,
	}
	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	switch c.Storage {
	case "postgres":
		if c.PostgresConnStr == "" || c.MongoURI == "" {
			return fmt.Errorf("POSTGRES_CONN_STR and MONGO_URI must be set when STORAGE=postgres")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown STORAGE %q", c.Storage)
	}
	switch c.AuthProvider {
	case "firebase":
		if c.FirebaseCredentialsPath == "" {
			return fmt.Errorf("FIREBASE_CREDENTIALS_PATH must be set when AUTH_PROVIDER=firebase")
		}
	case "jwt":
		if c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET must be set when AUTH_PROVIDER=jwt")
		}
	default:
		return fmt.Errorf("unknown AUTH_PROVIDER %q", c.AuthProvider)
	}
	if c.Community.EditWindow <= 0 {
		return fmt.Errorf("edit window must be positive")
	}
	if c.Community.CommentMaxLength <= 0 {
		return fmt.Errorf("comment max length must be positive")
	}
	return nil
}

func loadCommunityFile(path string, dst *CommunityConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read community config: %w", err)
	}
	if err := yaml.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("parse community config %s: %w", path, err)
	}
	return nil
}

func applyCommunityEnv(dst *CommunityConfig) error {
	if v := os.Getenv("EDIT_WINDOW"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("EDIT_WINDOW: %w", err)
		}
		dst.EditWindow = d
	}
	if v := os.Getenv("COMMENT_MAX_LENGTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("COMMENT_MAX_LENGTH: %w", err)
		}
		dst.CommentMaxLength = n
	}
	if v := os.Getenv("ADMIN_EMAILS"); v != "" {
		dst.AdminEmails = strings.Split(v, ",")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
