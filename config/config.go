package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Minio    MinioConfig    `yaml:"minio"`
	Email    EmailConfig    `yaml:"email"`
	Pricing  PricingConfig  `yaml:"pricing"`
	Admin    AdminConfig    `yaml:"admin"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type DatabaseConfig struct {
	// DSN selects the dialector: postgres:// URLs open postgres,
	// anything else is treated as a sqlite path.
	DSN string `yaml:"dsn"`
}

type AuthConfig struct {
	JWTSecret        string `yaml:"jwt_secret"`
	TokenExpireHours int    `yaml:"token_expire_hours"`
}

type MinioConfig struct {
	Endpoint   string `yaml:"endpoint"`
	AccessKey  string `yaml:"access_key"`
	SecretKey  string `yaml:"secret_key"`
	Bucket     string `yaml:"bucket"`
	UseSSL     bool   `yaml:"use_ssl"`
	ExpireDays int    `yaml:"expire_days"`
}

type EmailConfig struct {
	APIURL    string `yaml:"api_url"`
	APIKey    string `yaml:"api_key"`
	FromEmail string `yaml:"from_email"`
}

type PricingConfig struct {
	// CommissionBps is the platform fee in basis points (1000 = 10%).
	CommissionBps int `yaml:"commission_bps"`
}

type AdminConfig struct {
	// Operator account that gives final payment approval.
	Email       string `yaml:"email"`
	Phone       string `yaml:"phone"`
	BankDetails string `yaml:"bank_details"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

var GlobalConfig *Config

func Load(path string) (*Config, error) {
	// Optional .env for local development; deployments set real env vars.
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Environment overrides for secrets
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		cfg.Database.DSN = dsn
	}
	if secret := os.Getenv("RENTGO_JWT_SECRET"); secret != "" {
		cfg.Auth.JWTSecret = secret
	}
	if key := os.Getenv("RENTGO_MAIL_API_KEY"); key != "" {
		cfg.Email.APIKey = key
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "rentgo.db"
	}
	if cfg.Auth.TokenExpireHours == 0 {
		cfg.Auth.TokenExpireHours = 24
	}
	if cfg.Minio.ExpireDays == 0 {
		cfg.Minio.ExpireDays = 7
	}
	if cfg.Pricing.CommissionBps == 0 {
		cfg.Pricing.CommissionBps = 1000 // 10%
	}
	if cfg.Email.FromEmail == "" {
		cfg.Email.FromEmail = "system@rantgo.com"
	}

	GlobalConfig = &cfg
	return &cfg, nil
}
