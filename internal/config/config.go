package config

import (
	"fmt"

	"github.com/RodrigoRavpro/purple-vet-whatsapp/internal/session"
	"github.com/RodrigoRavpro/purple-vet-whatsapp/pkg/cloudapi"
	"github.com/spf13/viper"
)

const (
	ProviderCloud   = "cloud"
	ProviderSession = "session"
)

type Config struct {
	API      API      `mapstructure:"api"`
	Provider Provider `mapstructure:"provider"`
	Phone    Phone    `mapstructure:"phone"`
}

type API struct {
	Port string `mapstructure:"port"`
	Key  string `mapstructure:"key"`
}

type Provider struct {
	Mode    string          `mapstructure:"mode"`
	Cloud   cloudapi.Config `mapstructure:"cloud"`
	Session session.Config  `mapstructure:"session"`
}

type Phone struct {
	DefaultCountryCode string `mapstructure:"default_country_code"`
}

func Load() (cfg *Config, err error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath("./config")

	err = viper.ReadInConfig()
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
