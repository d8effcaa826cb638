package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ClientConfig настройки консольного клиента доски, только из окружения
type ClientConfig struct {
	APIURL  string        `mapstructure:"api_url"`
	Timeout time.Duration `mapstructure:"api_timeout"`
}

// LoadClient читает KANBAN_API_URL и KANBAN_API_TIMEOUT
func LoadClient() (*ClientConfig, error) {
	v := viper.New()
	v.SetDefault("api_url", "http://localhost:5555")
	v.SetDefault("api_timeout", 15*time.Second)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg ClientConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора конфига клиента: %w", err)
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	if cfg.APIURL == "" {
		return nil, errors.New("KANBAN_API_URL не задан")
	}
	return &cfg, nil
}
