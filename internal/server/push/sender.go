// Package push delivers notifications to registered device tokens.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrTokenGone means the provider no longer knows the token; the caller
// should drop the registration.
var ErrTokenGone = errors.New("push token no longer registered")

// Message is one notification.
type Message struct {
	Title string
	Body  string
}

// Sender delivers a message to a single token.
type Sender interface {
	Send(ctx context.Context, token string, msg Message) error
}

// HTTPSender posts to an FCM-style legacy HTTP endpoint.
type HTTPSender struct {
	endpoint string
	key      string
	http     *http.Client
}

func NewHTTPSender(endpoint, key string) *HTTPSender {
	return &HTTPSender{
		endpoint: endpoint,
		key:      key,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

type sendRequest struct {
	To           string           `json:"to"`
	Notification sendNotification `json:"notification"`
}

type sendNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (s *HTTPSender) Send(ctx context.Context, token string, msg Message) error {
	body, err := json.Marshal(sendRequest{
		To:           token,
		Notification: sendNotification{Title: msg.Title, Body: msg.Body},
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+s.key)

	resp, err := s.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		return ErrTokenGone
	}
	if resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("push endpoint replied %d: %s", resp.StatusCode, data)
	}

	return nil
}
