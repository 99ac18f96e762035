package notify

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/mklimuk/life-pilot/pkg/engine"
)

// DiscordNotifier sends run reports to one Discord channel.
type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
}

var _ Notifier = (*DiscordNotifier)(nil)

// NewDiscordNotifier creates a Discord notifier.
func NewDiscordNotifier(token, channelID string) (*DiscordNotifier, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	return &DiscordNotifier{session: session, channelID: channelID}, nil
}

// Notify sends the report to the configured channel.
func (n *DiscordNotifier) Notify(report *engine.Report) error {
	if _, err := n.session.ChannelMessageSend(n.channelID, FormatReport(report)); err != nil {
		return fmt.Errorf("failed to send Discord message: %w", err)
	}
	return nil
}

// Close closes the underlying session.
func (n *DiscordNotifier) Close() error {
	return n.session.Close()
}
