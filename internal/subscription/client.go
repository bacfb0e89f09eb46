// Package subscription implements the client for the remote
// subscription-management REST API: account lookups, subscription extension,
// PRO toggling, device-limit overrides, and the bulk compensation flow.
package subscription

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/kirillqa17/tech-support-bot/internal/config"
)

// ErrNotFound indicates a 404 from the management API: no account exists
// for the requested Telegram ID.
var ErrNotFound = errors.New("user not found")

// StatusError is returned for any non-200, non-404 response. The status
// code and body are surfaced verbatim to the invoking admin.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

// UserInfo is the account shape returned by GET /{id}/info.
type UserInfo struct {
	Plan            string  `json:"plan"`
	IsPro           bool    `json:"is_pro"`
	SubscriptionEnd string  `json:"subscription_end"`
	IsActive        int     `json:"is_active"`
	Username        string  `json:"username"`
	UUID            string  `json:"uuid"`
	Referrals       []int64 `json:"referrals"`
	ReferralID      *int64  `json:"referral_id"`
	DeviceLimit     int     `json:"device_limit"`
	AutoRenew       bool    `json:"auto_renew"`
	PayedRefs       int     `json:"payed_refs"`
	IsUsedTrial     bool    `json:"is_used_trial"`
	SubLink         string  `json:"sub_link"`
}

// Squad is one group membership entry from GET /{id}/squads.
type Squad struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
}

// ActiveUser is one entry from GET /users/active.
type ActiveUser struct {
	TelegramID int64  `json:"telegram_id"`
	Plan       string `json:"plan"`
}

// CompensationResult aggregates the outcome of a bulk compensation run.
type CompensationResult struct {
	Total   int
	Success int
	Skipped int
	Failed  int
}

// Client talks to the subscription-management API. One method per admin
// command; every call is a single synchronous HTTP request.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates an API client from the given configuration.
func NewClient(cfg config.APIConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		logger:     logger.With("component", "subscription_client"),
	}
}

// UserInfo fetches account details for the given Telegram ID.
func (c *Client) UserInfo(ctx context.Context, tgID int64) (*UserInfo, error) {
	var info UserInfo
	if err := c.call(ctx, http.MethodGet, fmt.Sprintf("%s/%d/info", c.baseURL, tgID), nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Squads fetches the user's current group memberships.
func (c *Client) Squads(ctx context.Context, tgID int64) ([]Squad, error) {
	var resp struct {
		Squads []Squad `json:"squads"`
	}
	if err := c.call(ctx, http.MethodGet, fmt.Sprintf("%s/%d/squads", c.baseURL, tgID), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Squads, nil
}

// Extend extends the user's subscription by the given number of days on the
// given plan.
func (c *Client) Extend(ctx context.Context, tgID int64, plan string, days int) error {
	body := map[string]any{"days": days, "plan": plan}
	return c.call(ctx, http.MethodPatch, fmt.Sprintf("%s/%d/extend", c.baseURL, tgID), body, nil)
}

// SetPro enables or disables PRO mode for the user.
func (c *Client) SetPro(ctx context.Context, tgID int64, enabled bool) error {
	body := map[string]any{"is_pro": enabled}
	return c.call(ctx, http.MethodPatch, fmt.Sprintf("%s/%d/pro", c.baseURL, tgID), body, nil)
}

// DisableDeviceLimit issues the one-shot device-limit override for the user.
func (c *Client) DisableDeviceLimit(ctx context.Context, tgID int64) error {
	return c.call(ctx, http.MethodPost, fmt.Sprintf("%s/%d/disable_device", c.baseURL, tgID), nil, nil)
}

// ActiveUsers lists currently active accounts. The listing endpoint lives
// one path segment above the user-scoped base URL.
func (c *Client) ActiveUsers(ctx context.Context) ([]ActiveUser, error) {
	var users []ActiveUser
	if err := c.call(ctx, http.MethodGet, c.rootURL()+"/users/active", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Compensate extends every paying account in users by the given number of
// days on its current plan. Accounts on trial/free/unset plans are skipped.
// Calls are issued sequentially; failures are counted and logged, not
// retried. The loop stops early only on context cancellation.
func (c *Client) Compensate(ctx context.Context, users []ActiveUser, days int) (CompensationResult, error) {
	res := CompensationResult{Total: len(users)}
	for _, u := range users {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if !Compensable(u.Plan) {
			res.Skipped++
			continue
		}
		if err := c.Extend(ctx, u.TelegramID, u.Plan, days); err != nil {
			res.Failed++
			c.logger.WarnContext(ctx, "Compensation failed for user",
				"user_id", u.TelegramID, "plan", u.Plan, "error", err)
			continue
		}
		res.Success++
	}

	c.logger.InfoContext(ctx, "Compensation finished",
		"days", days, "total", res.Total, "success", res.Success,
		"skipped", res.Skipped, "failed", res.Failed)
	return res, nil
}

// rootURL strips the last path segment off the base URL, matching how the
// active-users listing is addressed relative to the user-scoped base.
func (c *Client) rootURL() string {
	if idx := strings.LastIndex(c.baseURL, "/"); idx != -1 {
		return c.baseURL[:idx]
	}
	return c.baseURL
}

// call performs one HTTP request, mapping status codes to the error
// taxonomy: 200 decodes into out (when non-nil), 404 becomes ErrNotFound,
// anything else becomes a *StatusError carrying the body verbatim.
func (c *Client) call(ctx context.Context, method, url string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil || method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.WarnContext(ctx, "Failed to close response body", "error", closeErr)
		}
	}()

	switch resp.StatusCode {
	case http.StatusOK:
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response from %s: %w", url, err)
		}
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	default:
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}
}
