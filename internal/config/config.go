package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/akulinich/foodgram-backend/internal/logger"
	"github.com/akulinich/foodgram-backend/internal/utils"
)

type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// ExportConfig carries everything the shopping-list renderer and the
// download endpoint need. The geometry values are points on a US-letter
// page, measured the way the PDF canvas measures them: X from the left
// edge, Y up from the bottom edge.
type ExportConfig struct {
	FontPath         string  `yaml:"font_path"`
	FontSize         float64 `yaml:"font_size"`
	TextX            float64 `yaml:"text_x"`
	TextY            float64 `yaml:"text_y"`
	BottomMargin     float64 `yaml:"bottom_margin"`
	TimeFormat       string  `yaml:"time_format"`
	FilenameTemplate string  `yaml:"filename_template"`
	TimeZone         string  `yaml:"time_zone"`
}

type Config struct {
	Port            string         `yaml:"port"`
	Postgres        PostgresConfig `yaml:"postgres"`
	JWTSecretKey    string         `yaml:"jwt_secret_key"`
	AccessTokenTTL  int            `yaml:"access_token_ttl"`
	RefreshTokenTTL int            `yaml:"refresh_token_ttl"`
	RedisAddr       string         `yaml:"redis_addr"`
	MediaRoot       string         `yaml:"media_root"`
	AvatarFontPath  string         `yaml:"avatar_font_path"`
	Export          ExportConfig   `yaml:"export"`

	PageSize       int `yaml:"page_size"`
	MinAmount      int `yaml:"min_amount"`
	MaxAmount      int `yaml:"max_amount"`
	MinCookingTime int `yaml:"min_cooking_time"`
	MaxCookingTime int `yaml:"max_cooking_time"`
}

func defaults() Config {
	return Config{
		Port: "8080",
		Postgres: PostgresConfig{
			Host: "localhost",
			Port: "5432",
			User: "postgres",
			Name: "foodgram",
		},
		JWTSecretKey:    "defaultsecret",
		AccessTokenTTL:  3600,
		RefreshTokenTTL: 86400,
		RedisAddr:       "",
		MediaRoot:       "media",
		AvatarFontPath:  "static/fonts/Roboto-Medium.ttf",
		Export: ExportConfig{
			FontPath:         "static/fonts/Roboto-Medium.ttf",
			FontSize:         24,
			TextX:            70,
			TextY:            700,
			BottomMargin:     40,
			TimeFormat:       "02/01 - 15:04",
			FilenameTemplate: "Список покупок от %s.pdf",
			TimeZone:         "Europe/Moscow",
		},
		PageSize:       6,
		MinAmount:      1,
		MaxAmount:      10000,
		MinCookingTime: 1,
		MaxCookingTime: 20161,
	}
}

// Load reads the optional YAML config file named by CONFIG_PATH, then lets
// environment variables override the connection-level settings. Everything
// downstream receives the resulting struct explicitly; nothing reads the
// environment after startup.
func Load(log *logger.Logger) (Config, error) {
	cfg := defaults()

	if path := utils.GetEnv("CONFIG_PATH", "", log); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.Port = utils.GetEnv("PORT", cfg.Port, log)
	cfg.Postgres.Host = utils.GetEnv("POSTGRES_HOST", cfg.Postgres.Host, log)
	cfg.Postgres.Port = utils.GetEnv("POSTGRES_PORT", cfg.Postgres.Port, log)
	cfg.Postgres.User = utils.GetEnv("POSTGRES_USER", cfg.Postgres.User, log)
	cfg.Postgres.Password = utils.GetEnv("POSTGRES_PASSWORD", cfg.Postgres.Password, log)
	cfg.Postgres.Name = utils.GetEnv("POSTGRES_NAME", cfg.Postgres.Name, log)
	cfg.JWTSecretKey = utils.GetEnv("JWT_SECRET_KEY", cfg.JWTSecretKey, log)
	cfg.AccessTokenTTL = utils.GetEnvAsInt("ACCESS_TOKEN_TTL", cfg.AccessTokenTTL, log)
	cfg.RefreshTokenTTL = utils.GetEnvAsInt("REFRESH_TOKEN_TTL", cfg.RefreshTokenTTL, log)
	cfg.RedisAddr = utils.GetEnv("REDIS_ADDR", cfg.RedisAddr, log)
	cfg.MediaRoot = utils.GetEnv("MEDIA_ROOT", cfg.MediaRoot, log)
	cfg.AvatarFontPath = utils.GetEnv("AVATAR_FONT", cfg.AvatarFontPath, log)
	cfg.Export.FontPath = utils.GetEnv("EXPORT_FONT", cfg.Export.FontPath, log)

	return cfg, nil
}
