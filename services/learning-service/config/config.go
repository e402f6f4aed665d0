package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DBHost         string        `mapstructure:"DB_HOST"`
	DBPort         string        `mapstructure:"DB_PORT"`
	DBUser         string        `mapstructure:"DB_USER"`
	DBPassword     string        `mapstructure:"DB_PASSWORD"`
	DBName         string        `mapstructure:"DB_NAME"`
	RedisAddr      string        `mapstructure:"REDIS_ADDR"`
	GRPCPort       string        `mapstructure:"GRPC_PORT"`
	LogMode        string        `mapstructure:"LOG_MODE"`
	CourseCacheTTL time.Duration `mapstructure:"COURSE_CACHE_TTL"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	SeedDemo       bool          `mapstructure:"SEED_DEMO"`
}

func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("GRPC_PORT", ":50053")
	v.SetDefault("LOG_MODE", "production")
	v.SetDefault("COURSE_CACHE_TTL", time.Hour)
	v.SetDefault("REQUEST_TIMEOUT", 5*time.Second)
	v.SetDefault("SEED_DEMO", false)

	v.BindEnv("DB_HOST")
	v.BindEnv("DB_PORT")
	v.BindEnv("DB_USER")
	v.BindEnv("DB_PASSWORD")
	v.BindEnv("DB_NAME")
	v.BindEnv("REDIS_ADDR")
	v.BindEnv("GRPC_PORT")
	v.BindEnv("LOG_MODE")
	v.BindEnv("COURSE_CACHE_TTL")
	v.BindEnv("REQUEST_TIMEOUT")
	v.BindEnv("SEED_DEMO")

	err = v.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
	}
	err = v.Unmarshal(&config)
	return
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}
