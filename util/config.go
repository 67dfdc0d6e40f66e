package util

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds the service configuration, loaded from an app.env file
// and/or environment variables.
type Config struct {
	Environment       string        `mapstructure:"ENVIRONMENT"`
	HTTPServerAddress string        `mapstructure:"HTTP_SERVER_ADDRESS"`
	RedisAddress      string        `mapstructure:"REDIS_ADDRESS"`
	AllowedOrigins    []string      `mapstructure:"ALLOWED_ORIGINS"`
	ResultTTL         time.Duration `mapstructure:"RESULT_TTL"`
	MaxDocumentBytes  int64         `mapstructure:"MAX_DOCUMENT_BYTES"`
}

// LoadConfig reads configuration from the app.env file in the given path
// and from matching environment variables, which take precedence.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	return
}
