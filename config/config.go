// Package config loads and persists the application configuration.
// Configuration lives in a TOML file under the resolved config dir; API keys
// may additionally be supplied through the environment (optionally via .env).
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"shortfactory/internal/appdirs"
)

type AppConfig struct {
	Proxy       string   `toml:"proxy"`
	ParsedProxy *url.URL `toml:"-"`
}

type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type LlmConfig struct {
	BaseUrl string `toml:"base_url"`
	ApiKey  string `toml:"api_key"`
	Model   string `toml:"model"`
}

type PexelsConfig struct {
	ApiKey string `toml:"api_key"`
}

type PixabayConfig struct {
	ApiKey string `toml:"api_key"`
}

type OssConfig struct {
	Enabled         bool   `toml:"enabled"`
	AccessKeyId     string `toml:"access_key_id"`
	AccessKeySecret string `toml:"access_key_secret"`
	Bucket          string `toml:"bucket"`
	Region          string `toml:"region"`
}

type VideoConfig struct {
	FfmpegPath     string `toml:"ffmpeg_path"`
	FfprobePath    string `toml:"ffprobe_path"`
	DefaultStyle   string `toml:"default_style"`
	DefaultQuality string `toml:"default_quality"`
}

type QueueConfig struct {
	UseRedis      bool   `toml:"use_redis"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	Concurrency   int    `toml:"concurrency"`
}

type Config struct {
	App     AppConfig     `toml:"app"`
	Server  ServerConfig  `toml:"server"`
	Llm     LlmConfig     `toml:"llm"`
	Pexels  PexelsConfig  `toml:"pexels"`
	Pixabay PixabayConfig `toml:"pixabay"`
	Oss     OssConfig     `toml:"oss"`
	Video   VideoConfig   `toml:"video"`
	Queue   QueueConfig   `toml:"queue"`
}

var Conf Config

var appDirsResolver = appdirs.Resolve

var resolveConfigPath = func() (string, error) {
	dirs, err := appDirsResolver()
	if err != nil {
		return "", err
	}
	return dirs.ConfigFile, nil
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8888,
		},
		Llm: LlmConfig{
			Model: "gpt-4o-mini",
		},
		Video: VideoConfig{
			FfmpegPath:     "ffmpeg",
			FfprobePath:    "ffprobe",
			DefaultStyle:   "modern",
			DefaultQuality: "standard",
		},
		Queue: QueueConfig{
			RedisAddr:   "localhost:6379",
			Concurrency: 2,
		},
	}
}

// LoadOrCreateConfig reads the config file, creating it with defaults when it
// does not exist. The returned bool reports whether a new file was created.
func LoadOrCreateConfig() (bool, error) {
	configPath, err := resolveConfigPath()
	if err != nil {
		return false, fmt.Errorf("resolve config path: %w", err)
	}

	if _, err = os.Stat(configPath); os.IsNotExist(err) {
		Conf = defaultConfig()
		applyEnvOverrides(&Conf)
		if err = SaveConfig(); err != nil {
			return false, err
		}
		return true, nil
	}

	Conf = defaultConfig()
	if _, err = toml.DecodeFile(configPath, &Conf); err != nil {
		return false, fmt.Errorf("decode config %s: %w", configPath, err)
	}
	applyEnvOverrides(&Conf)

	if Conf.App.Proxy != "" {
		parsed, err := url.Parse(Conf.App.Proxy)
		if err != nil {
			return false, fmt.Errorf("parse proxy url: %w", err)
		}
		Conf.App.ParsedProxy = parsed
	}

	return false, nil
}

// SaveConfig writes the current Conf to the config file, creating parent
// directories as needed.
func SaveConfig() error {
	configPath, err := resolveConfigPath()
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}

	if err = os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("create config file: %w", err)
	}
	defer file.Close()

	return toml.NewEncoder(file).Encode(Conf)
}

// CheckConfig validates settings required before serving.
func CheckConfig() error {
	if Conf.Server.Port <= 0 || Conf.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", Conf.Server.Port)
	}
	if strings.TrimSpace(Conf.Video.FfmpegPath) == "" {
		return fmt.Errorf("ffmpeg path must not be empty")
	}
	if strings.TrimSpace(Conf.Video.FfprobePath) == "" {
		return fmt.Errorf("ffprobe path must not be empty")
	}
	return nil
}

// applyEnvOverrides lets environment variables win over file values for
// secrets, so deployments can keep keys out of the config file.
func applyEnvOverrides(c *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("PEXELS_API_KEY"); v != "" {
		c.Pexels.ApiKey = v
	}
	if v := os.Getenv("PIXABAY_API_KEY"); v != "" {
		c.Pixabay.ApiKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.Llm.ApiKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		c.Llm.BaseUrl = v
	}
}
