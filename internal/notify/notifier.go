// Package notify delivers fire-and-forget notifications to an external
// webhook. Delivery failures are logged and never affect the triggering
// request.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Notifier announces events that an external system acts on.
type Notifier interface {
	// NewCustomerCredentials asks the notification service to send account
	// credentials to a customer created during checkout.
	NewCustomerCredentials(ctx context.Context, email, fullName string)
}

// webhookNotifier posts JSON events to a configured webhook URL.
type webhookNotifier struct {
	url    string
	client *http.Client
	logger zerolog.Logger
}

// NewWebhookNotifier creates a webhook-backed notifier.
func NewWebhookNotifier(url string, logger zerolog.Logger) Notifier {
	return &webhookNotifier{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger.With().Str("component", "notifier").Logger(),
	}
}

type credentialEvent struct {
	Event    string `json:"event"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

// NewCustomerCredentials posts the event in the background. The caller's
// context is deliberately not reused: the order is already committed and
// the notification must not be cancelled with the request.
func (n *webhookNotifier) NewCustomerCredentials(_ context.Context, email, fullName string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		body, err := json.Marshal(credentialEvent{
			Event:    "customer.created",
			Email:    email,
			FullName: fullName,
		})
		if err != nil {
			n.logger.Error().Err(err).Msg("failed to encode notification")
			return
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
		if err != nil {
			n.logger.Error().Err(err).Msg("failed to build notification request")
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := n.client.Do(req)
		if err != nil {
			n.logger.Warn().Err(err).Str("email", email).Msg("notification delivery failed")
			return
		}
		resp.Body.Close()

		n.logger.Debug().Str("email", email).Int("status", resp.StatusCode).Msg("notification delivered")
	}()
}

// nopNotifier drops all notifications; used when no webhook is configured.
type nopNotifier struct{}

// NewNopNotifier creates a notifier that does nothing.
func NewNopNotifier() Notifier {
	return nopNotifier{}
}

func (nopNotifier) NewCustomerCredentials(context.Context, string, string) {}
