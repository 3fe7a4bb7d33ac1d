package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Storage     StorageConfig     `mapstructure:"storage"`
	DB          DBConfig          `mapstructure:"database"`
	Redis       RedisConfig       `mapstructure:"redis"`
	CORS        CORSConfig        `mapstructure:"cors"`
	JWT         JWTConfig         `mapstructure:"jwt"`
	Email       EmailConfig       `mapstructure:"email"`
	Uploads     UploadsConfig     `mapstructure:"uploads"`
	SideEffects SideEffectsConfig `mapstructure:"side_effects"`
	Bootstrap   BootstrapConfig   `mapstructure:"bootstrap"`
}

// ServerConfig holds server specific configuration
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Driver string `mapstructure:"driver"` // "postgres" or "memory"
}

// DBConfig holds database specific configuration
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	Migrate  bool   `mapstructure:"migrate"`
}

// RedisConfig holds redis connection settings. An empty Addr disables redis
// and falls back to the in-process cache.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// CORSConfig holds CORS specific configuration
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// JWTConfig holds session token settings
type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Issuer string        `mapstructure:"issuer"`
	TTL    time.Duration `mapstructure:"ttl"`
}

// EmailConfig holds mailer settings. Mode is only the initial value of the
// persisted email_mode setting.
type EmailConfig struct {
	Mode            string        `mapstructure:"mode"` // "live" or "development"
	From            string        `mapstructure:"from"`
	SMTPHost        string        `mapstructure:"smtp_host"`
	SMTPPort        int           `mapstructure:"smtp_port"`
	SMTPUser        string        `mapstructure:"smtp_user"`
	SMTPPassword    string        `mapstructure:"smtp_password"`
	DevCode         string        `mapstructure:"dev_code"`
	VerificationTTL time.Duration `mapstructure:"verification_ttl"`
}

// UploadsConfig holds blob store settings
type UploadsConfig struct {
	Dir       string `mapstructure:"dir"`
	PublicURL string `mapstructure:"public_url"`
	MaxBytes  int64  `mapstructure:"max_bytes"`
}

// SideEffectsConfig sizes the notification/audit/email dispatcher.
// Workers == 0 runs side effects inline after the primary write.
type SideEffectsConfig struct {
	Workers   int `mapstructure:"workers"`
	QueueSize int `mapstructure:"queue_size"`
}

// BootstrapConfig seeds the first super admin when both fields are set.
type BootstrapConfig struct {
	AdminEmail    string `mapstructure:"admin_email"`
	AdminPassword string `mapstructure:"admin_password"`
	AdminName     string `mapstructure:"admin_name"`
}

// Load configuration from .env, file and environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on process environment.")
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/app/config")
	v.AddConfigPath("/app")

	// --- Set Default Values ---
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("storage.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "recruit_db")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.migrate", true)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000", "http://127.0.0.1:3000"})
	v.SetDefault("jwt.issuer", "recruit-api")
	v.SetDefault("jwt.ttl", 24*time.Hour)
	v.SetDefault("email.mode", "development")
	v.SetDefault("email.from", "no-reply@recruit.local")
	v.SetDefault("email.smtp_port", 587)
	v.SetDefault("email.dev_code", "123456")
	v.SetDefault("email.verification_ttl", 15*time.Minute)
	v.SetDefault("uploads.dir", "./uploads")
	v.SetDefault("uploads.public_url", "/uploads")
	v.SetDefault("uploads.max_bytes", 5<<20)
	v.SetDefault("side_effects.workers", 2)
	v.SetDefault("side_effects.queue_size", 256)
	v.SetDefault("bootstrap.admin_name", "Super Admin")

	// --- Read Config File (Optional) ---
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Config file not found, using defaults and environment variables.")
		} else {
			log.Printf("Error reading config file: %v", err)
		}
	}

	// --- Bind Environment Variables ---
	v.SetEnvPrefix("API") // Example: API_JWT_SECRET
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(&cfg)

	log.Printf("Configuration loaded: Server Port=%d, Storage=%s, DB Host=%s, Redis=%q, Allowed Origins=%v",
		cfg.Server.Port, cfg.Storage.Driver, cfg.DB.Host, cfg.Redis.Addr, cfg.CORS.AllowedOrigins)

	return &cfg, nil
}

// applyEnvOverrides reads the unprefixed variables used by the container
// setup. They win over everything else.
func applyEnvOverrides(cfg *Config) {
	if portStr := os.Getenv("SERVER_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			cfg.Server.Port = port
		}
	}
	if host := os.Getenv("SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.DB.Host = host
	}
	if portStr := os.Getenv("DB_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			cfg.DB.Port = port
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.DB.User = user
	}
	if pass := os.Getenv("DB_PASSWORD"); pass != "" {
		cfg.DB.Password = pass
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.DB.Name = name
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.JWT.Secret = secret
	}

	// comma-separated string -> slice
	if originsStr := os.Getenv("CORS_ALLOWED_ORIGINS"); originsStr != "" {
		cfg.CORS.AllowedOrigins = strings.Split(originsStr, ",")
		for i, origin := range cfg.CORS.AllowedOrigins {
			cfg.CORS.AllowedOrigins[i] = strings.TrimSpace(origin)
		}
	}
}
