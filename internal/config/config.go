package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "QUIZ"

type Config struct {
	Storage StorageConfig
	Quiz    QuizConfig
	Logger  LoggerConfig
	Redis   RedisConfig
	History HistoryConfig
}

type StorageConfig struct {
	UsersPath     string
	QuestionsPath string
}

type QuizConfig struct {
	RandomSampleSize int
	Admins           []string
}

type LoggerConfig struct {
	Env    string
	Level  string
	Output string
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type HistoryConfig struct {
	TTL time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.users_path", "users.json")
	v.SetDefault("storage.questions_path", "questions.json")
	v.SetDefault("quiz.random_sample_size", 20)
	v.SetDefault("quiz.admins", []string{})
	v.SetDefault("logger.env", "development")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.output", "stderr")
	v.SetDefault("redis.address", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("history.ttl", "720h")
}

// LoadConfig reads config.yaml from the given directories (or "." and
// "./configs" when none are given), then environment overrides such as
// QUIZ_STORAGE_USERS_PATH. A missing config file is not an error.
func LoadConfig(paths ...string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{".", "./configs"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Storage: StorageConfig{
			UsersPath:     v.GetString("storage.users_path"),
			QuestionsPath: v.GetString("storage.questions_path"),
		},
		Quiz: QuizConfig{
			RandomSampleSize: v.GetInt("quiz.random_sample_size"),
			Admins:           v.GetStringSlice("quiz.admins"),
		},
		Logger: LoggerConfig{
			Env:    v.GetString("logger.env"),
			Level:  v.GetString("logger.level"),
			Output: v.GetString("logger.output"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		History: HistoryConfig{
			TTL: v.GetDuration("history.ttl"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would make the program misbehave.
func (c *Config) Validate() error {
	if c.Storage.UsersPath == "" {
		return fmt.Errorf("storage.users_path is empty")
	}
	if c.Storage.QuestionsPath == "" {
		return fmt.Errorf("storage.questions_path is empty")
	}
	if filepath.Clean(c.Storage.UsersPath) == filepath.Clean(c.Storage.QuestionsPath) {
		return fmt.Errorf("users and questions must be stored in different files")
	}
	if c.Quiz.RandomSampleSize <= 0 {
		return fmt.Errorf("quiz.random_sample_size must be positive, got %d", c.Quiz.RandomSampleSize)
	}
	return nil
}

// IsAdmin reports whether nickname is listed in quiz.admins.
func (c *Config) IsAdmin(nickname string) bool {
	for _, admin := range c.Quiz.Admins {
		if admin == nickname {
			return true
		}
	}
	return false
}
