package notify

import (
	"context"
	"fmt"
	"sync"

	"github.com/bwmarrin/discordgo"
)

// severityColorsInt maps announcement severities to Discord embed colors.
var severityColorsInt = map[string]int{
	"info":    0x439fe0,
	"warning": 0xdaa038,
}

// discordSession abstracts the discordgo.Session methods we use,
// enabling test mocks.
type discordSession interface {
	Open() error
	Close() error
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// DiscordAdapter posts announcements to a Discord channel as embeds.
type DiscordAdapter struct {
	sess      discordSession
	channelID string

	mu        sync.Mutex
	connected bool
}

// DiscordOpts holds parameters for creating a DiscordAdapter.
type DiscordOpts struct {
	BotToken  string // Discord bot token
	ChannelID string // channel to post to
	// For testing: inject a mock session instead of the real gateway.
	Session discordSession
}

// NewDiscord creates a Discord adapter.
func NewDiscord(opts DiscordOpts) (*DiscordAdapter, error) {
	if opts.Session == nil && opts.BotToken == "" {
		return nil, fmt.Errorf("discord: bot token is required")
	}
	sess := opts.Session
	if sess == nil {
		s, err := discordgo.New("Bot " + opts.BotToken)
		if err != nil {
			return nil, fmt.Errorf("discord: new session: %w", err)
		}
		sess = s
	}
	return &DiscordAdapter{sess: sess, channelID: opts.ChannelID}, nil
}

// Connect opens the gateway connection.
func (a *DiscordAdapter) Connect(ctx context.Context) error {
	if err := a.sess.Open(); err != nil {
		return fmt.Errorf("discord: open: %w", err)
	}
	a.mu.Lock()
	a.connected = true
	a.mu.Unlock()
	return nil
}

// Send posts the announcement as an embed.
func (a *DiscordAdapter) Send(ctx context.Context, ann Announcement) error {
	a.mu.Lock()
	connected := a.connected
	a.mu.Unlock()
	if !connected {
		return fmt.Errorf("discord: not connected")
	}

	fields := make([]*discordgo.MessageEmbedField, 0, len(ann.Fields))
	for _, f := range ann.Fields {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: true,
		})
	}
	embed := &discordgo.MessageEmbed{
		Title:       ann.Title,
		Description: ann.Body,
		Color:       severityColorsInt[ann.Severity],
		Fields:      fields,
	}

	if _, err := a.sess.ChannelMessageSendEmbed(a.channelID, embed); err != nil {
		return fmt.Errorf("discord: send embed: %w", err)
	}
	return nil
}

// Close shuts down the gateway connection.
func (a *DiscordAdapter) Close() error {
	a.mu.Lock()
	connected := a.connected
	a.connected = false
	a.mu.Unlock()
	if !connected {
		return nil
	}
	return a.sess.Close()
}
