// Package notify bridges complaint events to chat platforms (Slack,
// Discord). The watch command announces newly registered complaints and
// posts a scheduled daily digest through a platform Adapter.
package notify

import (
	"context"
	"fmt"

	"github.com/ravshan77/shikoyatlar-web/internal/config"
	"github.com/ravshan77/shikoyatlar-web/internal/models"
)

// Adapter is the interface platform-specific implementations satisfy.
type Adapter interface {
	// Connect establishes a connection to the chat platform.
	Connect(ctx context.Context) error

	// Send delivers an announcement to the platform.
	Send(ctx context.Context, a Announcement) error

	// Close gracefully shuts down the adapter connection.
	Close() error
}

// Announcement is a complaint event formatted for chat display.
type Announcement struct {
	Title    string  // headline, e.g. "Yangi shikoyat #118"
	Body     string  // detail text
	Severity string  // "info" or "warning"
	Fields   []Field // key-value metadata pairs
}

// Field is a key-value pair displayed alongside an announcement.
type Field struct {
	Name  string
	Value string
}

// NewComplaint formats the announcement for a freshly registered
// complaint.
func NewComplaint(c models.Complaint) Announcement {
	return Announcement{
		Title:    fmt.Sprintf("Yangi shikoyat #%d", c.ID),
		Body:     c.ComplaintText,
		Severity: "warning",
		Fields: []Field{
			{Name: "Mijoz", Value: c.ClientName},
			{Name: "Telefon", Value: c.ClientPhoneOne},
			{Name: "Filial", Value: c.BranchName},
		},
	}
}

// Digest formats the scheduled summary announcement.
func Digest(total, inProgress int) Announcement {
	return Announcement{
		Title:    "Shikoyatlar kunlik hisoboti",
		Body:     fmt.Sprintf("Jami: %d, jarayonda: %d", total, inProgress),
		Severity: "info",
	}
}

// FromConfig builds the adapter named by cfg.Platform. An empty
// platform returns (nil, nil): notifications disabled.
func FromConfig(cfg config.NotifyConfig) (Adapter, error) {
	switch cfg.Platform {
	case "":
		return nil, nil
	case "slack":
		return NewSlack(SlackOpts{
			BotToken:  cfg.Slack.BotToken,
			ChannelID: cfg.Slack.ChannelID,
		})
	case "discord":
		return NewDiscord(DiscordOpts{
			BotToken:  cfg.Discord.BotToken,
			ChannelID: cfg.Discord.ChannelID,
		})
	default:
		return nil, fmt.Errorf("notify: unknown platform %q", cfg.Platform)
	}
}
