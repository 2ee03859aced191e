package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env     string        `yaml:"env" env:"ENV" env-default:"local"`
	Storage StorageConfig `yaml:"storage"`
	HTTP    HTTPConfig    `yaml:"http"`
	Redis   RedisConfig   `yaml:"redis"`
	Auth    AuthConfig    `yaml:"auth"`
	Polls   PollsConfig   `yaml:"polls"`
}

type StorageConfig struct {
	Driver      string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"postgres"`
	DSN         string `yaml:"dsn" env:"STORAGE_DSN" env-required:"true"`
	AutoMigrate bool   `yaml:"auto_migrate" env:"STORAGE_AUTO_MIGRATE" env-default:"false"`
}

type HTTPConfig struct {
	Port           int           `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	AllowedOrigins []string      `yaml:"allowed_origins" env:"HTTP_ALLOWED_ORIGINS" env-separator:","`
	ReadTimeout    time.Duration `yaml:"read_timeout" env-default:"10s"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env-default:"10s"`
}

type RedisConfig struct {
	Address  string `yaml:"address" env:"REDIS_ADDRESS" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type AuthConfig struct {
	Secret             string        `yaml:"secret" env:"AUTH_SECRET" env-required:"true"`
	TokenTTL           time.Duration `yaml:"token_ttl" env:"AUTH_TOKEN_TTL" env-default:"24h"`
	CookieName         string        `yaml:"cookie_name" env-default:"sessionid"`
	DefaultPermissions []string      `yaml:"default_permissions" env-default:"polls.add_poll" env-separator:","`
}

type PollsConfig struct {
	PageSize     int `yaml:"page_size" env-default:"6"`
	MinePageSize int `yaml:"mine_page_size" env-default:"7"`
	MinChoices   int `yaml:"min_choices" env-default:"0"`
}

func LoadConfig(path string) (*Config, error) {
	var config Config
	if err := cleanenv.ReadConfig(path, &config); err != nil {
		return nil, fmt.Errorf("cannot read config %q: %w", path, err)
	}

	if config.Storage.Driver != "postgres" && config.Storage.Driver != "sqlite" {
		return nil, fmt.Errorf("unsupported storage driver %q", config.Storage.Driver)
	}

	return &config, nil
}

func Load(path string) *Config {
	config, err := LoadConfig(path)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return config
}

// MustLoad reads .env if present and loads the config named by the -config
// flag or CONFIG_PATH.
func MustLoad() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("cannot load .env: %s", err)
	}

	path := fetchConfigPath()
	if path == "" {
		log.Fatal("config path is empty")
	}

	return Load(path)
}

func fetchConfigPath() string {
	var res string

	if !flag.Parsed() {
		flag.StringVar(&res, "config", "", "path to config file")
		flag.Parse()
	}

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
