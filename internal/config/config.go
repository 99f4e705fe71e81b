package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port        int    `yaml:"port"`
	GinMode     string `yaml:"gin_mode"`
	Environment string `yaml:"environment"`
	PublicURL   string `yaml:"public_url"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	Issuer     string `yaml:"issuer"`
	AccessTTL  string `yaml:"access_ttl"`
	RefreshTTL string `yaml:"refresh_ttl"`
}

type OTPConfig struct {
	TTL      string `yaml:"ttl"`
	EchoCode bool   `yaml:"echo_code"`
}

type ResetConfig struct {
	TTL string `yaml:"ttl"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	OTP      OTPConfig      `yaml:"otp"`
	Reset    ResetConfig    `yaml:"reset"`
	Twilio   TwilioConfig   `yaml:"twilio"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	Casbin   CasbinConfig   `yaml:"casbin"`
}

type Config struct {
	Port            string
	GinMode         string
	Environment     string
	PublicURL       string
	DSN             string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	JWTSecret       string
	JWTIssuer       string
	AccessTTL       time.Duration
	RefreshTTL      time.Duration
	OTPTTL          time.Duration
	OTPEchoCode     bool
	ResetTTL        time.Duration
	TwilioSID       string
	TwilioToken     string
	TwilioFrom      string
	SMTPHost        string
	SMTPPort        string
	SMTPUsername    string
	SMTPPassword    string
	SMTPFrom        string
	CasbinModelPath string
}

const defaultConfigPath = "config/config.yml"

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads the yaml file named by CONFIG_PATH (default config/config.yml)
// and applies environment overrides, including any found in a .env file.
func Load() (*Config, error) {
	// A missing .env is normal outside local development
	_ = godotenv.Load()

	configFile, err := loadConfigFile(env("CONFIG_PATH", defaultConfigPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	return FromFile(configFile)
}

// FromFile builds a Config from parsed yaml plus environment overrides
func FromFile(configFile *ConfigFile) (*Config, error) {
	durations := []struct {
		name string
		raw  string
		dst  *time.Duration
	}{
		{"JWT access TTL", configFile.JWT.AccessTTL, new(time.Duration)},
		{"JWT refresh TTL", configFile.JWT.RefreshTTL, new(time.Duration)},
		{"OTP TTL", configFile.OTP.TTL, new(time.Duration)},
		{"reset TTL", configFile.Reset.TTL, new(time.Duration)},
	}
	for _, d := range durations {
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", d.name, err)
		}
		if v <= 0 {
			return nil, fmt.Errorf("invalid %s: must be positive", d.name)
		}
		*d.dst = v
	}

	redisDB := configFile.Redis.DB
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		redisDB = n
	}

	cfg := &Config{
		Port:            env("APP_PORT", strconv.Itoa(configFile.App.Port)),
		GinMode:         env("GIN_MODE", configFile.App.GinMode),
		Environment:     env("APP_ENV", configFile.App.Environment),
		PublicURL:       env("APP_PUBLIC_URL", configFile.App.PublicURL),
		DSN:             env("DATABASE_DSN", configFile.Database.DSN),
		RedisAddr:       env("REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword:   env("REDIS_PASSWORD", configFile.Redis.Password),
		RedisDB:         redisDB,
		JWTSecret:       env("JWT_SECRET", configFile.JWT.Secret),
		JWTIssuer:       env("JWT_ISSUER", configFile.JWT.Issuer),
		AccessTTL:       *durations[0].dst,
		RefreshTTL:      *durations[1].dst,
		OTPTTL:          *durations[2].dst,
		OTPEchoCode:     env("OTP_ECHO_CODE", strconv.FormatBool(configFile.OTP.EchoCode)) == "true",
		ResetTTL:        *durations[3].dst,
		TwilioSID:       env("TWILIO_ACCOUNT_SID", configFile.Twilio.AccountSID),
		TwilioToken:     env("TWILIO_AUTH_TOKEN", configFile.Twilio.AuthToken),
		TwilioFrom:      env("TWILIO_FROM_NUMBER", configFile.Twilio.FromNumber),
		SMTPHost:        env("SMTP_HOST", configFile.SMTP.Host),
		SMTPPort:        env("SMTP_PORT", configFile.SMTP.Port),
		SMTPUsername:    env("SMTP_USERNAME", configFile.SMTP.Username),
		SMTPPassword:    env("SMTP_PASSWORD", configFile.SMTP.Password),
		SMTPFrom:        env("SMTP_FROM", configFile.SMTP.From),
		CasbinModelPath: env("CASBIN_MODEL_PATH", configFile.Casbin.ModelPath),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the service cannot start with
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("jwt secret is required"))
	}
	if c.DSN == "" {
		errs = append(errs, errors.New("database dsn is required"))
	}
	if c.RedisAddr == "" {
		errs = append(errs, errors.New("redis addr is required"))
	}
	if c.AccessTTL >= c.RefreshTTL {
		errs = append(errs, errors.New("access ttl must be shorter than refresh ttl"))
	}
	return errors.Join(errs...)
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}
	return ParseConfigFile(bytes)
}

// ParseConfigFile decodes yaml configuration
func ParseConfigFile(data []byte) (*ConfigFile, error) {
	var config ConfigFile
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}
	return &config, nil
}
