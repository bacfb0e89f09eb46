// Package tasks implements scheduled tasks for the support bot.
// It includes task definitions, dependencies, and registration mechanisms.
package tasks

import (
	"log/slog"

	"github.com/kirillqa17/tech-support-bot/internal/bot/handlers"
	"github.com/kirillqa17/tech-support-bot/internal/config"
	"github.com/kirillqa17/tech-support-bot/internal/ticket"
)

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger *slog.Logger
	Store  *ticket.Store
	TG     handlers.Transport
	Config *config.Config
}
