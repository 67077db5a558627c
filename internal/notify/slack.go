package notify

import (
	"context"
	"fmt"
	"sync"

	slackapi "github.com/slack-go/slack"
)

// severityColors maps announcement severities to Slack sidebar colors.
var severityColors = map[string]string{
	"info":    "#439fe0",
	"warning": "#daa038",
}

// slackClient abstracts the Slack API methods we use, enabling test mocks.
type slackClient interface {
	AuthTest() (*slackapi.AuthTestResponse, error)
	PostMessage(channelID string, options ...slackapi.MsgOption) (string, string, error)
}

// SlackAdapter posts announcements to a Slack channel via the Web API.
type SlackAdapter struct {
	client    slackClient
	channelID string

	mu        sync.Mutex
	connected bool
}

// SlackOpts holds parameters for creating a SlackAdapter.
type SlackOpts struct {
	BotToken  string // xoxb-... Slack bot token
	ChannelID string // channel to post to
	// For testing: inject a mock client instead of the real Slack API.
	Client slackClient
}

// NewSlack creates a Slack adapter.
func NewSlack(opts SlackOpts) (*SlackAdapter, error) {
	if opts.Client == nil && opts.BotToken == "" {
		return nil, fmt.Errorf("slack: bot token is required")
	}
	client := opts.Client
	if client == nil {
		client = slackapi.New(opts.BotToken)
	}
	return &SlackAdapter{client: client, channelID: opts.ChannelID}, nil
}

// Connect verifies the token with an auth test.
func (a *SlackAdapter) Connect(ctx context.Context) error {
	if _, err := a.client.AuthTest(); err != nil {
		return fmt.Errorf("slack: auth test: %w", err)
	}
	a.mu.Lock()
	a.connected = true
	a.mu.Unlock()
	return nil
}

// Send posts the announcement as a single attachment message.
func (a *SlackAdapter) Send(ctx context.Context, ann Announcement) error {
	a.mu.Lock()
	connected := a.connected
	a.mu.Unlock()
	if !connected {
		return fmt.Errorf("slack: not connected")
	}

	fields := make([]slackapi.AttachmentField, 0, len(ann.Fields))
	for _, f := range ann.Fields {
		fields = append(fields, slackapi.AttachmentField{
			Title: f.Name,
			Value: f.Value,
			Short: true,
		})
	}
	attachment := slackapi.Attachment{
		Title:  ann.Title,
		Text:   ann.Body,
		Color:  severityColors[ann.Severity],
		Fields: fields,
	}

	_, _, err := a.client.PostMessage(a.channelID, slackapi.MsgOptionAttachments(attachment))
	if err != nil {
		return fmt.Errorf("slack: post message: %w", err)
	}
	return nil
}

// Close marks the adapter disconnected. The Web API client holds no
// persistent connection.
func (a *SlackAdapter) Close() error {
	a.mu.Lock()
	a.connected = false
	a.mu.Unlock()
	return nil
}
