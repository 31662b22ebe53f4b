// Package config предоставляет структуры и функции для парсинга и загрузки конфига.
//
// Конфиг читается из переменных окружения; при заданном CONFIG_PATH
// дополнительно читается yaml-файл.
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек.
type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"local"`
	Database   `yaml:"database"`
	HTTPServer `yaml:"http_server"`
	UPIGateway `yaml:"upi_gateway"`
	Lookup     `yaml:"lookup"`
	JWTToken   `yaml:"jwttoken"`
}

// Database структура для настройки подключения к PostgreSQL.
type Database struct {
	Host string `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"DB_PORT" env-default:"5432"`
	Name string `yaml:"name" env:"DB_NAME" env-default:"osint"`
	User string `yaml:"user" env:"DB_USER" env-default:"postgres"`
	Pass string `yaml:"pass" env:"DB_PASS"`
}

// ConnectionString собирает строку подключения к PostgreSQL из отдельных полей.
func (d Database) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		d.User, d.Pass, d.Host, d.Port, d.Name)
}

// HTTPServer структура для настройки сервера.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env:"HTTP_TIMEOUT" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// UPIGateway структура для настройки платежного шлюза UPI.
//
// SecretKey используется для проверки подписи callback-ов шлюза;
// пустое значение отключает проверку.
type UPIGateway struct {
	APIKey      string `yaml:"api_key" env:"UPI_API_KEY"`
	SecretKey   string `yaml:"secret_key" env:"UPI_SECRET_KEY"`
	APIURL      string `yaml:"api_url" env:"UPI_API_URL" env-default:"https://merchant.upigateway.com/api"`
	RedirectURL string `yaml:"redirect_url" env:"UPI_REDIRECT_URL" env-default:"https://osint-zevk.onrender.com/payment-success"`
}

// Lookup структура для настройки upstream OSINT API.
type Lookup struct {
	BaseURL string `yaml:"base_url" env:"LOOKUP_BASE_URL" env-default:"https://osint-zevk.onrender.com"`
}

// JWTToken структура для работы с jwt-токеном.
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY" env-default:"change-me"`
	TokenTTL     time.Duration `yaml:"token_ttl" env:"JWT_TOKEN_TTL" env-default:"24h"`
}

// Load загружает конфиг из окружения и, при наличии CONFIG_PATH, из yaml-файла.
func Load() (*Config, error) {
	var cfg Config

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file %s does not exist", configPath)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("cannot read config: %w", err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("cannot read config from environment: %w", err)
	}
	return &cfg, nil
}

// MustLoad загружает конфиг и завершает процесс при ошибке.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}
