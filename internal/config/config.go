// Package config provides configuration loading, validation, and management
// for the support bot. It handles reading from YAML files, BOT_* environment
// variables, setting default values, and validating configuration parameters.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-telegram/bot/models"
	"github.com/spf13/viper"
)

// Config defines the application configuration parameters for all components
// of the support bot: logging, Telegram transport, the subscription
// management API, user-facing message strings, and scheduled tasks.
type Config struct {
	Logger    LoggerConfig    `mapstructure:"logger"`
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	API       APIConfig       `mapstructure:"api"`
	Messages  MessagesConfig  `mapstructure:"messages"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// LoggerConfig controls log verbosity and output format.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// TelegramConfig holds the bot token and the static admin allow-list.
// The allow-list is loaded once at startup and never mutated afterwards.
type TelegramConfig struct {
	Token    string  `mapstructure:"token"     validate:"required"`
	AdminIDs []int64 `mapstructure:"admin_ids" validate:"required,min=1,dive,gt=0"`

	// BotInfo is populated at runtime from GetMe, not from the config file.
	BotInfo *models.User `mapstructure:"-"`
}

// IsAdmin reports whether the given Telegram user ID is on the admin allow-list.
func (t TelegramConfig) IsAdmin(userID int64) bool {
	for _, id := range t.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// APIConfig describes the remote subscription-management API. BaseURL is the
// user-scoped base (e.g. https://example.com/api/users); the active-users
// listing lives one path segment above it.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout"  validate:"min=1s,max=5m"`
}

// MessagesConfig holds the user-facing message strings that operators may
// want to override without rebuilding the bot.
type MessagesConfig struct {
	UserWelcome  string `mapstructure:"user_welcome"`
	AdminWelcome string `mapstructure:"admin_welcome"`
	UserAck      string `mapstructure:"user_ack"`
	ReplyPrefix  string `mapstructure:"reply_prefix"`
	GeneralError string `mapstructure:"general_error"`
}

// SchedulerConfig holds the scheduled task table, keyed by task name, plus
// task-specific tuning.
type SchedulerConfig struct {
	Tasks    map[string]TaskConfig `mapstructure:"tasks"`
	Reminder ReminderConfig        `mapstructure:"reminder"`
}

// TaskConfig enables a single scheduled task and sets its cron schedule
// (standard 5-field crontab expression).
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// ReminderConfig tunes the open-ticket reminder task: tickets younger than
// MinAge are not included in the reminder digest.
type ReminderConfig struct {
	MinAge time.Duration `mapstructure:"min_age" validate:"min=1m"`
}

// LoadConfig loads configuration in order of precedence:
// 1. Default values
// 2. The YAML file at path (a missing file is allowed)
// 3. BOT_* environment variables
// The resulting configuration is validated before being returned.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// With SetConfigFile viper surfaces a bare *fs.PathError for a
		// missing file rather than ConfigFileNotFoundError.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
		// Missing config file is fine, env vars and defaults still apply.
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.json", true)

	v.SetDefault("api.timeout", 30*time.Second)

	v.SetDefault("messages.user_welcome",
		"Привет! Это бот техподдержки SvoiVPN. Напишите ваш вопрос, и мы обязательно вам ответим в скором времени!")
	v.SetDefault("messages.admin_welcome",
		"Вы админ. Используйте /help для списка команд.")
	v.SetDefault("messages.user_ack",
		"✅ Ваше сообщение получено и будет обработано в ближайшее время.")
	v.SetDefault("messages.reply_prefix", "✉️ Ответ поддержки:")
	v.SetDefault("messages.general_error", "⚠️ Произошла ошибка. Попробуйте позже.")

	v.SetDefault("scheduler.tasks.open_ticket_reminder.enabled", false)
	v.SetDefault("scheduler.tasks.open_ticket_reminder.schedule", "0 */4 * * *")
	v.SetDefault("scheduler.reminder.min_age", time.Hour)
}
