package tasks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// ControllerDispatcher pushes MAC authorization changes to the external
// network controller. The controller itself (RADIUS, captive portal,
// router API) is outside this system; it only needs to receive the
// allow/deny webhook.
type ControllerDispatcher struct {
	url    string
	client *http.Client
	log    zerolog.Logger
}

func NewControllerDispatcher(url string, log zerolog.Logger) *ControllerDispatcher {
	return &ControllerDispatcher{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

type macAuthorization struct {
	TenantID string `json:"tenantId"`
	MAC      string `json:"mac"`
	Allow    bool   `json:"allow"`
}

func (d *ControllerDispatcher) Dispatch(ctx context.Context, tenantID, mac string, allow bool) error {
	if d.url == "" {
		// No controller configured: record the intent and move on so a
		// bare deployment still drains the stream.
		d.log.Info().Str("mac", mac).Bool("allow", allow).Msg("wifi sync (no controller configured)")
		return nil
	}

	body, err := json.Marshal(macAuthorization{TenantID: tenantID, MAC: mac, Allow: allow})
	if err != nil {
		return fmt.Errorf("marshal authorization: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("controller request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("controller responded %d", resp.StatusCode)
	}
	return nil
}
