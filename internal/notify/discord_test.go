package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sent struct {
	channel string
	content string
}

func captureDiscord(fail bool) (*Discord, *[]sent) {
	var out []sent
	return &Discord{
		channelID: "chan-1",
		send: func(channelID, content string) error {
			out = append(out, sent{channelID, content})
			if fail {
				return errors.New("discord down")
			}
			return nil
		},
	}, &out
}

func TestNewFallsBackToNop(t *testing.T) {
	_, ok := New("", "chan").(Nop)
	assert.True(t, ok)
	_, ok = New("token", " ").(Nop)
	assert.True(t, ok)
}

func TestApplicationSubmittedMessage(t *testing.T) {
	d, out := captureDiscord(false)
	d.ApplicationSubmitted(context.Background(), Event{
		JobTitle: "Frontend Developer", CandidateName: "Ada", CandidateEmail: "ada@example.com",
		Score: 84, IsEligible: true,
	})
	require.Len(t, *out, 1)
	assert.Equal(t, "chan-1", (*out)[0].channel)
	assert.Contains(t, (*out)[0].content, "Frontend Developer")
	assert.Contains(t, (*out)[0].content, "84%")
}

func TestStageChangedIncludesNotesAndSwallowsErrors(t *testing.T) {
	d, out := captureDiscord(true)
	d.StageChanged(context.Background(), Event{JobID: "j1", CandidateName: "Ada", FromStage: "Applied", ToStage: "Screening", Notes: "call booked"})
	require.Len(t, *out, 1)
	assert.True(t, strings.HasSuffix((*out)[0].content, "> call booked"))
}

func TestCanceledContextSkipsSend(t *testing.T) {
	d, out := captureDiscord(false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.StageChanged(ctx, Event{})
	assert.Empty(t, *out)
}
