// Package slack implements the ChatNotifier port against the Slack Web API.
package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/GoshPosh/slack-pull-reminder/internal/adapter/driven/httplog"
	"github.com/GoshPosh/slack-pull-reminder/internal/domain/model"
	"github.com/GoshPosh/slack-pull-reminder/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.ChatNotifier = (*Notifier)(nil)

const (
	senderName = "Pull Request Reminder"
	senderIcon = ":bell:"
)

// postMessageResponse is the subset of the chat.postMessage acknowledgement
// the notifier reads.
type postMessageResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// Notifier posts messages to a single Slack channel via chat.postMessage.
type Notifier struct {
	httpClient *http.Client
	postURL    string
	token      string
	channel    string
}

// NewNotifier creates a Notifier using a logging HTTP client with a 30-second timeout.
func NewNotifier(postURL, token, channel string) *Notifier {
	return NewNotifierWithHTTPClient(httplog.NewClient(30*time.Second), postURL, token, channel)
}

// NewNotifierWithHTTPClient creates a Notifier with a custom http.Client.
// This constructor is intended for testing.
func NewNotifierWithHTTPClient(httpClient *http.Client, postURL, token, channel string) *Notifier {
	return &Notifier{
		httpClient: httpClient,
		postURL:    postURL,
		token:      token,
		channel:    channel,
	}
}

// Post sends text to the configured channel. The returned error covers
// transport and decoding failures only; a message Slack refuses comes back as
// a DeliveryResult with OK false.
func (n *Notifier) Post(ctx context.Context, text string) (model.DeliveryResult, error) {
	form := url.Values{}
	form.Set("token", n.token)
	form.Set("channel", n.channel)
	form.Set("username", senderName)
	form.Set("icon_emoji", senderIcon)
	form.Set("text", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.postURL, strings.NewReader(form.Encode()))
	if err != nil {
		return model.DeliveryResult{}, fmt.Errorf("creating slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return model.DeliveryResult{}, fmt.Errorf("posting to slack: %w", err)
	}
	defer resp.Body.Close()

	var answer postMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		return model.DeliveryResult{}, fmt.Errorf("decoding slack response (status %d): %w", resp.StatusCode, err)
	}

	return model.DeliveryResult{OK: answer.OK, Error: answer.Error}, nil
}
