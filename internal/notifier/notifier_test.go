// File: internal/notifier/notifier_test.go
package notifier_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"customer_support_backend/internal/config"
	"customer_support_backend/internal/notifier"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDeliver_SendsMessagesAPIPayload(t *testing.T) {
	var gotAuth, gotContentType string
	var gotPayload map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := &config.Config{
		NotifierMessagesURL: server.URL,
		NotifierAccessToken: "test-token",
	}
	channel := notifier.NewHTTPChannel(cfg, zap.NewNop())

	err := channel.Deliver(context.Background(), notifier.Message{
		Body:     "Category: Billing, Comments: double charge",
		SenderID: "6b1f6e58-0000-4000-8000-000000000001",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "inapp", gotPayload["message_type"])
	assert.Equal(t, "Category: Billing, Comments: double charge", gotPayload["body"])

	from, ok := gotPayload["from"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "user", from["type"])
	assert.Equal(t, "6b1f6e58-0000-4000-8000-000000000001", from["id"])
}

func TestDeliver_NonSuccessStatusIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"errors":[{"message":"upstream broke"}]}`))
	}))
	defer server.Close()

	cfg := &config.Config{
		NotifierMessagesURL: server.URL,
		NotifierAccessToken: "test-token",
	}
	channel := notifier.NewHTTPChannel(cfg, zap.NewNop())

	err := channel.Deliver(context.Background(), notifier.Message{Body: "x", SenderID: "y"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestDeliver_WithoutTokenIsANoOp(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	cfg := &config.Config{NotifierMessagesURL: server.URL}
	channel := notifier.NewHTTPChannel(cfg, zap.NewNop())

	err := channel.Deliver(context.Background(), notifier.Message{Body: "x", SenderID: "y"})
	require.NoError(t, err)
	assert.False(t, called, "an unconfigured channel must not call out")
}

func TestDeliver_CanceledContextIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := &config.Config{
		NotifierMessagesURL: server.URL,
		NotifierAccessToken: "test-token",
	}
	channel := notifier.NewHTTPChannel(cfg, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := channel.Deliver(ctx, notifier.Message{Body: "x", SenderID: "y"})
	require.Error(t, err)
}
