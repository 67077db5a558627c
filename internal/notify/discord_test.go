package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
)

// mockDiscordSession records sent embeds.
type mockDiscordSession struct {
	openErr error
	sent    []*discordgo.MessageEmbed
	sentTo  []string
	closed  bool
}

func (m *mockDiscordSession) Open() error { return m.openErr }
func (m *mockDiscordSession) Close() error {
	m.closed = true
	return nil
}

func (m *mockDiscordSession) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	m.sent = append(m.sent, embed)
	m.sentTo = append(m.sentTo, channelID)
	return &discordgo.Message{}, nil
}

func TestDiscordAdapter_Send(t *testing.T) {
	mock := &mockDiscordSession{}
	a, err := NewDiscord(DiscordOpts{Session: mock, ChannelID: "D42"})
	if err != nil {
		t.Fatalf("NewDiscord: %v", err)
	}

	if err := a.Send(context.Background(), Digest(1, 1)); err == nil {
		t.Error("expected error before Connect")
	}

	if err := a.Connect(context.Background()); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	ann := Announcement{
		Title:    "Yangi shikoyat #5",
		Body:     "matn",
		Severity: "warning",
		Fields:   []Field{{Name: "Mijoz", Value: "Aziz"}},
	}
	if err := a.Send(context.Background(), ann); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if len(mock.sent) != 1 || mock.sentTo[0] != "D42" {
		t.Fatalf("sent = %d to %v", len(mock.sent), mock.sentTo)
	}
	embed := mock.sent[0]
	if embed.Title != "Yangi shikoyat #5" || embed.Color != 0xdaa038 {
		t.Errorf("embed = %+v", embed)
	}
	if len(embed.Fields) != 1 || embed.Fields[0].Value != "Aziz" {
		t.Errorf("embed fields = %+v", embed.Fields)
	}

	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !mock.closed {
		t.Error("session not closed")
	}
}

func TestDiscordAdapter_ConnectFailure(t *testing.T) {
	mock := &mockDiscordSession{openErr: errors.New("gateway down")}
	a, _ := NewDiscord(DiscordOpts{Session: mock})
	if err := a.Connect(context.Background()); err == nil {
		t.Fatal("expected connect error")
	}
}

func TestNewDiscord_RequiresToken(t *testing.T) {
	if _, err := NewDiscord(DiscordOpts{}); err == nil {
		t.Fatal("expected error without token or session")
	}
}
