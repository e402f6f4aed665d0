package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port              string        `mapstructure:"PORT"`
	LearningSvcUrl    string        `mapstructure:"LEARNING_SVC_URL"`
	AllowedOrigins    string        `mapstructure:"ALLOWED_ORIGINS"`
	REDIS_ADDR        string        `mapstructure:"REDIS_ADDR"`
	AccessSecret      string        `mapstructure:"ACCESS_SECRET"`
	RPCTimeout        time.Duration `mapstructure:"RPC_TIMEOUT"`
	LogMode           string        `mapstructure:"LOG_MODE"`
	PurchaseRateLimit int           `mapstructure:"PURCHASE_RATE_LIMIT"`
}

func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.AutomaticEnv()

	v.SetDefault("PORT", ":8080")
	v.SetDefault("LEARNING_SVC_URL", "localhost:50053")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("RPC_TIMEOUT", 5*time.Second)
	v.SetDefault("LOG_MODE", "production")
	v.SetDefault("PURCHASE_RATE_LIMIT", 10)

	// ВАЖНО: Явно биндим
	v.BindEnv("PORT")
	v.BindEnv("LEARNING_SVC_URL")
	v.BindEnv("ALLOWED_ORIGINS")
	v.BindEnv("REDIS_ADDR")
	v.BindEnv("ACCESS_SECRET")
	v.BindEnv("RPC_TIMEOUT")
	v.BindEnv("LOG_MODE")
	v.BindEnv("PURCHASE_RATE_LIMIT")

	err = v.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
	}

	err = v.Unmarshal(&config)
	return
}

// Origins разбирает ALLOWED_ORIGINS, список через запятую.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
