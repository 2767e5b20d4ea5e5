package app

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func messages(entries []LogEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Message)
	}
	return out
}

func TestLogPanelKeepsArrivalOrder(t *testing.T) {
	panel := NewLogPanel(10)
	panel.Append("first", Info)
	panel.Append("second", Error)

	entries := panel.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, []string{"first", "second"}, messages(entries))
	assert.Equal(t, Error, entries[1].Severity)
	assert.Equal(t, "error", entries[1].Severity.String())
}

func TestLogPanelDropsOldestWhenFull(t *testing.T) {
	panel := NewLogPanel(3)
	for i := 1; i <= 5; i++ {
		panel.Append(fmt.Sprintf("entry %d", i), Info)
	}

	assert.Equal(t, 3, panel.Len())
	assert.Equal(t, []string{"entry 3", "entry 4", "entry 5"}, messages(panel.Entries()))
}

func TestLogPanelClearLeavesMarker(t *testing.T) {
	panel := NewLogPanel(3)
	for i := 0; i < 4; i++ {
		panel.Append("x", Info)
	}
	var notified []string
	panel.Subscribe(func(e LogEntry) { notified = append(notified, e.Message) })

	panel.Clear(LogClearedMessage)
	panel.Append("after", Info)

	assert.Equal(t, []string{LogClearedMessage, "after"}, messages(panel.Entries()))
	assert.Equal(t, []string{LogClearedMessage, "after"}, notified)
}

func TestLogEntryLineMarksErrors(t *testing.T) {
	assert.Equal(t, "✅ 2 dosya yüklendi", LogEntry{Message: "✅ 2 dosya yüklendi", Severity: Info}.Line())
	assert.Equal(t, "[HATA] ❌ Hata: Dosya yüklenmedi", LogEntry{Message: "❌ Hata: Dosya yüklenmedi", Severity: Error}.Line())
	assert.Equal(t, "\n[HATA] ❌ Hata: x", LogEntry{Message: "\n❌ Hata: x", Severity: Error}.Line())
}
