package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"ats-backend/internal/shared/telemetry"
)

// Discord posts events to a single channel through the bot REST API.
type Discord struct {
	channelID string
	send      func(channelID, content string) error
}

// NewDiscord builds a Discord notifier for a bot token and channel.
func NewDiscord(token, channelID string) (*Discord, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	return &Discord{
		channelID: channelID,
		send: func(channelID, content string) error {
			_, err := session.ChannelMessageSend(channelID, content)
			return err
		},
	}, nil
}

// New returns a Discord notifier when both settings are present and Nop otherwise.
func New(token, channelID string) Notifier {
	if strings.TrimSpace(token) == "" || strings.TrimSpace(channelID) == "" {
		return Nop{}
	}
	d, err := NewDiscord(token, channelID)
	if err != nil {
		telemetry.Warn("notify.discord_unavailable", map[string]any{"error": err})
		return Nop{}
	}
	return d
}

func (d *Discord) ApplicationSubmitted(ctx context.Context, ev Event) {
	eligible := "below threshold"
	if ev.IsEligible {
		eligible = "eligible"
	}
	msg := fmt.Sprintf("New application for **%s**: %s <%s>, score %d%% (%s)",
		jobLabel(ev), ev.CandidateName, ev.CandidateEmail, ev.Score, eligible)
	d.post(ctx, "application_submitted", ev, msg)
}

func (d *Discord) StageChanged(ctx context.Context, ev Event) {
	msg := fmt.Sprintf("%s moved from %s to **%s** on %s", ev.CandidateName, ev.FromStage, ev.ToStage, jobLabel(ev))
	if ev.Notes != "" {
		msg += "\n> " + ev.Notes
	}
	d.post(ctx, "stage_changed", ev, msg)
}

func (d *Discord) post(ctx context.Context, kind string, ev Event, msg string) {
	if ctx.Err() != nil {
		return
	}
	if err := d.send(d.channelID, msg); err != nil {
		telemetry.Warn("notify.send_failed", map[string]any{
			"kind":           kind,
			"application_id": ev.ApplicationID,
			"error":          err,
		})
	}
}

func jobLabel(ev Event) string {
	if ev.JobTitle != "" {
		return ev.JobTitle
	}
	return ev.JobID
}
