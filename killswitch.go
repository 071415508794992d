package cipherfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// killSwitchTimeout keeps the Init-time check from stalling startup.
const killSwitchTimeout = 5 * time.Second

// KillSwitchStatus is the remote kill-switch document. Operators host
// it as a static JSON file; flipping Active to true stops clients at
// their next Init.
type KillSwitchStatus struct {
	Active           bool   `json:"killSwitchActive"`
	MinClientVersion string `json:"minClientVersion,omitempty"`
	Message          string `json:"message,omitempty"`
}

// CheckKillSwitch fetches the configured kill-switch document. It
// returns a nil status when no URL is configured. An unreachable or
// malformed endpoint is reported as an error but does not imply the
// switch is active; Init applies the fail-open or fail-closed policy
// on top of this.
func (c *Client) CheckKillSwitch(ctx context.Context) (*KillSwitchStatus, error) {
	if c.cfg.killSwitchURL == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, killSwitchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.killSwitchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building kill-switch request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching kill-switch status: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("kill-switch endpoint returned status %d", resp.StatusCode)
	}

	var status KillSwitchStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("decoding kill-switch status: %w", err)
	}
	return &status, nil
}

// checkKillSwitch applies policy to the remote status during Init: an
// active switch always stops the client, while an unreachable endpoint
// stops it only under fail-closed.
func (c *Client) checkKillSwitch(ctx context.Context) error {
	status, err := c.CheckKillSwitch(ctx)
	if err != nil {
		if c.cfg.failClosed {
			return fmt.Errorf("%w: status check failed: %v", ErrKillSwitchActive, err)
		}
		c.log.Warn("kill-switch status unavailable, continuing",
			zap.Error(err))
		return nil
	}
	if status != nil && status.Active {
		return &KillSwitchError{
			Message:          status.Message,
			MinClientVersion: status.MinClientVersion,
		}
	}
	return nil
}
