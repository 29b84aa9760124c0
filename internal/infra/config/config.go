package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
)

const (
	BackendTelebot  = "telebot"
	BackendTgBotAPI = "tgbotapi"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	PracticumToken string `envconfig:"PRACTICUM_TOKEN" validate:"required"`
	TelegramToken  string `envconfig:"TELEGRAM_TOKEN" validate:"required"`
	TelegramChatID string `envconfig:"TELEGRAM_CHAT_ID" validate:"required"` // numeric id or @channel

	Endpoint     string        `envconfig:"PRACTICUM_ENDPOINT" default:"https://practicum.yandex.ru/api/user_api/homework_statuses/" validate:"required,url"`
	RetryTime    time.Duration `envconfig:"RETRY_TIME" default:"600s" validate:"gt=0"`
	LookBack     time.Duration `envconfig:"LOOK_BACK" default:"599s" validate:"gte=0"`
	PollSchedule string        `envconfig:"POLL_SCHEDULE" validate:"omitempty,cron"` // overrides RetryTime when set
	HTTPTimeout  time.Duration `envconfig:"HTTP_TIMEOUT" default:"0s" validate:"gte=0"`
	BotBackend   string        `envconfig:"BOT_BACKEND" default:"telebot" validate:"oneof=telebot tgbotapi"`

	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogFile     string `envconfig:"LOG_FILE" default:"main.log"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
}

// MissingError lists required environment variables that are unset or empty.
type MissingError struct {
	Vars []string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("required environment variables are not set: %s", strings.Join(e.Vars, ", "))
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	cfg.TelegramChatID = strings.TrimSpace(cfg.TelegramChatID)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.Environment = strings.ToLower(cfg.Environment)

	if err := newValidator().Struct(cfg); err != nil {
		return nil, translate(err)
	}
	return cfg, nil
}

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their environment variable name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("envconfig"); name != "" {
			return name
		}
		return fld.Name
	})
	_ = v.RegisterValidation("cron", func(fl validator.FieldLevel) bool {
		_, err := cron.ParseStandard(fl.Field().String())
		return err == nil
	})
	return v
}

func translate(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	var missing []string
	var invalid []string
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
			continue
		}
		invalid = append(invalid, fmt.Sprintf("%s (%s=%s)", fe.Field(), fe.Tag(), fe.Param()))
	}
	if len(missing) > 0 {
		return &MissingError{Vars: missing}
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(invalid, ", "))
}
