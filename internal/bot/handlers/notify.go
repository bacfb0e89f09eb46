package handlers

import (
	"context"
	"log/slog"
)

// forEachAdmin runs fn once per admin ID. A failure for one admin is logged
// and never prevents delivery to the remaining admins.
func forEachAdmin(ctx context.Context, log *slog.Logger, adminIDs []int64, action string, fn func(adminID int64) error) {
	for _, adminID := range adminIDs {
		if err := fn(adminID); err != nil {
			log.ErrorContext(ctx, "Failed to notify admin",
				"action", action, "admin_id", adminID, "error", err)
		}
	}
}
