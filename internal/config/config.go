package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 2333
	defaultEnv        = "development"
	defaultDBHost     = "127.0.0.1"
	defaultDBPort     = 3306
	defaultDBUser     = "root"
	defaultDBPassword = "password"
	defaultDBName     = "studyforge"
	defaultDBCharset  = "utf8mb4"
)

// AppConfig holds runtime startup configuration loaded from YAML.
type AppConfig struct {
	Port           int            `yaml:"port"`
	DSN            string         `yaml:"dsn"` // MySQL DSN
	RedisURL       string         `yaml:"redis_url"`
	Database       DatabaseConfig `yaml:"database"`
	Env            string         `yaml:"env"` // "development" | "production"
	AllowedOrigins []string       `yaml:"allowed_origins"`
	JWTSecret      string         `yaml:"jwt_secret"`
	Gemini         GeminiConfig   `yaml:"gemini"`
	Deepgram       DeepgramConfig `yaml:"deepgram"`
	S3             S3Config       `yaml:"s3"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Charset  string `yaml:"charset"`
}

// GeminiConfig configures the generative text service.
type GeminiConfig struct {
	APIKey     string `yaml:"api_key"`
	Model      string `yaml:"model"`       // file/inline runs
	VideoModel string `yaml:"video_model"` // transcript runs
}

// DeepgramConfig configures the speech synthesis service.
type DeepgramConfig struct {
	APIKey     string `yaml:"api_key"`
	VoiceModel string `yaml:"voice_model"`
	Endpoint   string `yaml:"endpoint"`
}

// S3Config configures durable object storage.
type S3Config struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Endpoint        string `yaml:"endpoint"`
	CustomDomain    string `yaml:"custom_domain"`
	PathStyleAccess bool   `yaml:"path_style_access"`
}

// Load reads the YAML config file, applies environment overrides, and fills
// in defaults. A missing file is not an error; env vars alone can configure
// the service.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// fall through to env + defaults
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	setIfEnv(&cfg.DSN, "DSN", "DATABASE_DSN")
	setIfEnv(&cfg.RedisURL, "REDIS_URL")
	setIfEnv(&cfg.Env, "ENV", "GO_ENV")
	setIfEnv(&cfg.JWTSecret, "JWT_SECRET")
	setIfEnv(&cfg.Gemini.APIKey, "GEMINI_API_KEY")
	setIfEnv(&cfg.Gemini.Model, "GEMINI_MODEL")
	setIfEnv(&cfg.Gemini.VideoModel, "GEMINI_VIDEO_MODEL")
	setIfEnv(&cfg.Deepgram.APIKey, "DEEPGRAM_API_KEY")
	setIfEnv(&cfg.Deepgram.VoiceModel, "DEEPGRAM_VOICE_MODEL")
	setIfEnv(&cfg.S3.Bucket, "S3_BUCKET")
	setIfEnv(&cfg.S3.Region, "S3_REGION")
	setIfEnv(&cfg.S3.AccessKeyID, "S3_ACCESS_KEY_ID")
	setIfEnv(&cfg.S3.SecretAccessKey, "S3_SECRET_ACCESS_KEY")
	setIfEnv(&cfg.S3.Endpoint, "S3_ENDPOINT")
	setIfEnv(&cfg.S3.CustomDomain, "S3_CUSTOM_DOMAIN")
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		parts := strings.Split(v, ",")
		origins := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				origins = append(origins, p)
			}
		}
		cfg.AllowedOrigins = origins
	}
}

func setIfEnv(dst *string, keys ...string) {
	for _, key := range keys {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
			return
		}
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = "redis://127.0.0.1:6379/0"
	}
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = "gemini-1.5-flash"
	}
	if cfg.Gemini.VideoModel == "" {
		cfg.Gemini.VideoModel = "gemini-1.5-pro"
	}
	if cfg.Deepgram.VoiceModel == "" {
		cfg.Deepgram.VoiceModel = "aura-arcas-en"
	}
	if cfg.DSN == "" {
		cfg.DSN = buildDSN(cfg.Database)
	}
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool {
	return strings.ToLower(strings.TrimSpace(c.Env)) != "production"
}
