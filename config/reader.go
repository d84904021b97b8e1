package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"name"`
}

type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type ConfigSchema struct {
	Databases struct {
		Master   DBConfig   `yaml:"master"`
		Replicas []DBConfig `yaml:"replicas"`
	} `yaml:"databases"`
	Backend struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"backend"`
	Redis    RedisConfig `yaml:"redis"`
	RabbitMQ struct {
		URL string `yaml:"url"`
	} `yaml:"rabbitmq"`
	Cache struct {
		FriendsTTLMinutes int `yaml:"friends_ttl_minutes"`
	} `yaml:"cache"`
	FriendRequests struct {
		MaxPerMinute  int `yaml:"max_per_minute"`
		CooldownHours int `yaml:"cooldown_hours"`
	} `yaml:"friend_requests"`
	Logs struct {
		Level string `yaml:"level"`
	} `yaml:"logs"`
}

var AppConfig *ConfigSchema

func LoadConfig(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	var conf ConfigSchema
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return err
	}
	AppConfig = &conf
	return nil
}

// FriendsCacheTTL - TTL кеша списка друзей (по умолчанию 30 минут)
func FriendsCacheTTL() time.Duration {
	if AppConfig == nil || AppConfig.Cache.FriendsTTLMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(AppConfig.Cache.FriendsTTLMinutes) * time.Minute
}

// MaxRequestsPerMinute - лимит отправленных заявок в минуту (по умолчанию 3)
func MaxRequestsPerMinute() int {
	if AppConfig == nil || AppConfig.FriendRequests.MaxPerMinute <= 0 {
		return 3
	}
	return AppConfig.FriendRequests.MaxPerMinute
}

// RejectionCooldown - пауза после отклоненной заявки (по умолчанию 24 часа)
func RejectionCooldown() time.Duration {
	if AppConfig == nil || AppConfig.FriendRequests.CooldownHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(AppConfig.FriendRequests.CooldownHours) * time.Hour
}
