package shipping

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"roastery/internal/model"

	"github.com/rs/zerolog"
)

// RuleLookup resolves a shipping rule for an order. Implementations may
// fail; the calculator swallows failures and applies the fallback rate.
type RuleLookup interface {
	Lookup(ctx context.Context, req model.ShippingQuoteRequest) (*model.ShippingRule, error)
}

// httpRuleLookup calls the remote shipping rule service over HTTP.
type httpRuleLookup struct {
	url    string
	client *http.Client
	logger zerolog.Logger
}

// NewHTTPRuleLookup creates a rule lookup against the given service URL.
func NewHTTPRuleLookup(url string, timeout time.Duration, logger zerolog.Logger) RuleLookup {
	return &httpRuleLookup{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logger.With().Str("component", "shipping-rule-lookup").Logger(),
	}
}

// lookupResponse is the rule service's wire format.
type lookupResponse struct {
	ShippingRule *model.ShippingRule `json:"shippingRule"`
}

// Lookup posts the order summary to the rule service and returns the
// matched rule. A nil rule with nil error means the service answered but
// matched nothing.
func (l *httpRuleLookup) Lookup(ctx context.Context, req model.ShippingQuoteRequest) (*model.ShippingRule, error) {
	if l.url == "" {
		return nil, fmt.Errorf("shipping rule service not configured")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode rule lookup request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, l.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build rule lookup request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := l.client.Do(httpReq)
	if err != nil {
		l.logger.Warn().Err(err).Msg("shipping rule service unreachable")
		return nil, fmt.Errorf("shipping rule service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		l.logger.Warn().Int("status", resp.StatusCode).Msg("shipping rule service returned non-OK status")
		return nil, fmt.Errorf("shipping rule service returned status %d", resp.StatusCode)
	}

	var decoded lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode rule lookup response: %w", err)
	}

	return decoded.ShippingRule, nil
}
