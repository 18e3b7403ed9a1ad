// Package config loads application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultSlackAPIURL is the Slack Web API endpoint used to post messages.
const DefaultSlackAPIURL = "https://slack.com/api/chat.postMessage"

// ErrMissingEnv is wrapped by Load when a required variable is unset or empty.
var ErrMissingEnv = errors.New("missing required environment variable")

// Config holds the application configuration loaded from environment variables.
// It is resolved once at startup and never mutated afterwards.
type Config struct {
	SlackAPIToken  string
	GitHubAPIToken string
	Organization   string
	SlackChannel   string

	// Lower-cased, trimmed lists. Empty means no filtering.
	IgnoreWords  []string
	Repositories []string
	Usernames    []string

	SendToSlack  bool
	GitHubAPIURL string // Empty targets github.com.
	SlackAPIURL  string
}

// Load reads configuration from environment variables and returns a validated Config.
// Required variables: SLACK_API_TOKEN, GITHUB_API_TOKEN, ORGANIZATION.
// Optional variables with defaults: SLACK_CHANNEL (#general), SEND_TO_SLACK (false),
// SLACK_API_URL (DefaultSlackAPIURL). IGNORE_WORDS, REPOSITORIES and USERNAMES are
// comma-separated lists.
func Load() (*Config, error) {
	slackToken, err := required("SLACK_API_TOKEN")
	if err != nil {
		return nil, err
	}
	githubToken, err := required("GITHUB_API_TOKEN")
	if err != nil {
		return nil, err
	}
	organization, err := required("ORGANIZATION")
	if err != nil {
		return nil, err
	}

	channel := "#general"
	if v, ok := os.LookupEnv("SLACK_CHANNEL"); ok {
		channel = v
	}

	send := false
	if v, ok := os.LookupEnv("SEND_TO_SLACK"); ok && v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("SEND_TO_SLACK has invalid boolean %q: %w", v, err)
		}
		send = parsed
	}

	slackURL := DefaultSlackAPIURL
	if v, ok := os.LookupEnv("SLACK_API_URL"); ok && v != "" {
		slackURL = v
	}

	return &Config{
		SlackAPIToken:  slackToken,
		GitHubAPIToken: githubToken,
		Organization:   organization,
		SlackChannel:   channel,
		IgnoreWords:    splitList(os.Getenv("IGNORE_WORDS")),
		Repositories:   splitList(os.Getenv("REPOSITORIES")),
		Usernames:      splitList(os.Getenv("USERNAMES")),
		SendToSlack:    send,
		GitHubAPIURL:   os.Getenv("GITHUB_API_URL"),
		SlackAPIURL:    slackURL,
	}, nil
}

func required(key string) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return "", fmt.Errorf("please set the environment variable %s: %w", key, ErrMissingEnv)
	}
	return v, nil
}

// splitList parses a comma-separated value into lower-cased, trimmed entries.
// Blank entries are dropped; an empty substring would match every title.
func splitList(raw string) []string {
	items := []string{}
	for _, item := range strings.Split(raw, ",") {
		item = strings.ToLower(strings.TrimSpace(item))
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
