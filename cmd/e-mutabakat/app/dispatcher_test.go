package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatcherStartsClosed(t *testing.T) {
	d := NewDispatcher()
	assert.Equal(t, Closed{}, d.State())
	assert.Equal(t, ActionNone, d.Pending())
}

func TestDispatcherOpenSetsPromptCopy(t *testing.T) {
	d := NewDispatcher()

	prompt, err := d.Open(ActionKdv)
	require.NoError(t, err)
	assert.Equal(t, "Mükellef VKN (Opsiyonel)", prompt.Title)
	assert.False(t, prompt.Required)
	assert.Equal(t, AwaitingInput{Action: ActionKdv}, d.State())

	prompt, err = d.Open(ActionSatis)
	require.NoError(t, err)
	assert.Equal(t, "Mükellef VKN (Zorunlu)", prompt.Title)
	assert.True(t, prompt.Required)
	assert.Equal(t, ActionSatis, d.Pending())
}

func TestDispatcherRejectsUnknownAction(t *testing.T) {
	d := NewDispatcher()
	_, err := d.Open(ActionNone)
	assert.ErrorIs(t, err, ErrNoAction)
	assert.Equal(t, Closed{}, d.State())
}

func TestDispatcherSalesRequiresVkn(t *testing.T) {
	d := NewDispatcher()
	_, err := d.Open(ActionSatis)
	require.NoError(t, err)

	for _, input := range []string{"", "   ", "\t\n"} {
		_, err := d.Submit(input)
		assert.ErrorIs(t, err, ErrVknRequired)
		assert.Equal(t, AwaitingInput{Action: ActionSatis}, d.State())
	}

	sub, err := d.Submit(" 1234567890 ")
	require.NoError(t, err)
	assert.Equal(t, Submission{Action: ActionSatis, Vkn: "1234567890"}, sub)
	assert.Equal(t, Closed{}, d.State())
}

func TestDispatcherKdvAcceptsEmptyVkn(t *testing.T) {
	d := NewDispatcher()
	_, err := d.Open(ActionKdv)
	require.NoError(t, err)

	sub, err := d.Submit("  ")
	require.NoError(t, err)
	assert.Equal(t, Submission{Action: ActionKdv, Vkn: ""}, sub)
	assert.Equal(t, Closed{}, d.State())
}

func TestDispatcherSubmitWhileClosed(t *testing.T) {
	d := NewDispatcher()
	_, err := d.Submit("1234567890")
	assert.ErrorIs(t, err, ErrNoAction)
}

func TestDispatcherCancel(t *testing.T) {
	d := NewDispatcher()
	_, err := d.Open(ActionSatis)
	require.NoError(t, err)

	d.Cancel()
	assert.Equal(t, Closed{}, d.State())
	_, err = d.Submit("1234567890")
	assert.ErrorIs(t, err, ErrNoAction)
}
