// File: internal/notifier/notifier.go
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"customer_support_backend/internal/config"

	"go.uber.org/zap"
)

// Message is a single outbound notification on behalf of a user.
type Message struct {
	Body     string
	SenderID string
}

// Channel delivers a message to the external messaging service. Delivery is
// best-effort from the caller's point of view: an error means this one
// attempt failed, nothing more.
type Channel interface {
	Deliver(ctx context.Context, msg Message) error
}

// messagePayload is the wire format of the messages API.
type messagePayload struct {
	MessageType string      `json:"message_type"`
	Body        string      `json:"body"`
	From        messageFrom `json:"from"`
}

type messageFrom struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type httpChannel struct {
	endpoint    string
	accessToken string
	client      *http.Client
	logger      *zap.Logger
}

// NewHTTPChannel creates a Channel speaking the Intercom-style messages API.
// With no access token configured the channel delivers to nowhere, which
// keeps local development working without external credentials.
func NewHTTPChannel(cfg *config.Config, logger *zap.Logger) Channel {
	return &httpChannel{
		endpoint:    cfg.NotifierMessagesURL,
		accessToken: cfg.NotifierAccessToken,
		client:      &http.Client{},
		logger:      logger.Named("Notifier"),
	}
}

func (ch *httpChannel) Deliver(ctx context.Context, msg Message) error {
	if ch.accessToken == "" {
		ch.logger.Debug("Notification channel disabled, skipping delivery",
			zap.String("senderID", msg.SenderID))
		return nil
	}

	payload := messagePayload{
		MessageType: "inapp",
		Body:        msg.Body,
		From:        messageFrom{Type: "user", ID: msg.SenderID},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode notification payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ch.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build notification request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+ch.accessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := ch.client.Do(req)
	if err != nil {
		return fmt.Errorf("notification delivery failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("notification service returned status %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
