package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"port" default:"8080"`
	Debug       bool   `envconfig:"debug"`
	DatabaseURL string `envconfig:"database_url"`
	JWTSecret   string `envconfig:"jwt_secret"`

	ChatAPIURL   string `envconfig:"chat_api_url"`
	ChatAPIToken string `envconfig:"chat_api_token"`

	RedisHost     string `envconfig:"redis_host" default:"localhost"`
	RedisPort     string `envconfig:"redis_port" default:"6379"`
	RedisUsername string `envconfig:"redis_username"`
	RedisPassword string `envconfig:"redis_password"`
}

func Load() (*Config, error) {
	if os.Getenv("ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("couldn't load .env file: %v", err)
		}
	}

	c := &Config{}
	if err := envconfig.Process("console", c); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}
