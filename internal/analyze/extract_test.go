package analyze

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vocalnotes/internal/note/model"
)

type stubClient struct {
	reply string
	err   error
	calls int
}

func (c *stubClient) Complete(ctx context.Context, system, user string) (string, error) {
	c.calls++
	return c.reply, c.err
}

func TestExtractWellFormedReply(t *testing.T) {
	client := &stubClient{reply: `{"title":"Client meeting","category":"appointment","content":"Meeting with client tomorrow at 3pm","priority":"normal"}`}
	res, err := NewExtractor(client).Extract(context.Background(), "Meeting with client tomorrow at 3pm")
	require.NoError(t, err)

	assert.False(t, res.Fallback)
	assert.Equal(t, model.NoteDraft{
		Title:    "Client meeting",
		Category: model.CategoryAppointment,
		Content:  "Meeting with client tomorrow at 3pm",
		Priority: model.PriorityNormal,
	}, res.Draft)
}

func TestExtractMalformedReplyFallsBack(t *testing.T) {
	long := strings.Repeat("word ", 20) // 100 chars
	client := &stubClient{reply: "Sure! Here is the JSON you asked for..."}

	res, err := NewExtractor(client).Extract(context.Background(), long)
	require.NoError(t, err, "parse failures are absorbed, never surfaced")

	assert.True(t, res.Fallback)
	assert.Equal(t, long[:60], res.Draft.Title)
	assert.Equal(t, long, res.Draft.Content)
	assert.Equal(t, model.CategoryIntervention, res.Draft.Category)
	assert.Equal(t, model.PriorityNormal, res.Draft.Priority)
}

func TestExtractInvalidEnumFallsBack(t *testing.T) {
	client := &stubClient{reply: `{"title":"t","category":"errand","content":"c","priority":"normal"}`}
	res, err := NewExtractor(client).Extract(context.Background(), "some text")
	require.NoError(t, err)
	assert.True(t, res.Fallback)
	assert.Equal(t, model.CategoryIntervention, res.Draft.Category)
}

func TestExtractEmptyInputMakesNoRemoteCall(t *testing.T) {
	client := &stubClient{}
	_, err := NewExtractor(client).Extract(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyTranscription)
	assert.Zero(t, client.calls)
}

func TestExtractTransportFailure(t *testing.T) {
	client := &stubClient{err: errors.New("connection refused")}
	_, err := NewExtractor(client).Extract(context.Background(), "some text")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmptyTranscription)
}

func TestFallbackDraftShortInput(t *testing.T) {
	d := FallbackDraft("short")
	assert.Equal(t, "short", d.Title)
	assert.Equal(t, "short", d.Content)
}
