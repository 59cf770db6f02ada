package activity

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studiowebux/apiconsole/internal/types"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(filepath.Join(t.TempDir(), "nested", "apiconsole.db"))
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	return m
}

func TestSaveAndLoad(t *testing.T) {
	m := newTestManager(t)

	saved, err := m.Save(types.ActivityEntry{
		Server:     "http://localhost:5000",
		Operation:  types.OpCreateResource,
		TargetID:   "r1",
		TargetName: "Users",
		Outcome:    types.OutcomeSuccess,
		Message:    "API created successfully",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.False(t, saved.Timestamp.IsZero())

	entries, err := m.Load(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, saved.ID, entries[0].ID)
	assert.Equal(t, types.OpCreateResource, entries[0].Operation)
	assert.Equal(t, "Users", entries[0].TargetName)
	assert.WithinDuration(t, saved.Timestamp, entries[0].Timestamp, time.Millisecond)
}

func TestLoad_NewestFirstWithLimit(t *testing.T) {
	m := newTestManager(t)
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := m.Save(types.ActivityEntry{
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Server:    "s",
			Operation: types.OpDeleteResource,
			TargetID:  string(rune('a' + i)),
			Outcome:   types.OutcomeSuccess,
		})
		require.NoError(t, err)
	}

	entries, err := m.Load(3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "e", entries[0].TargetID)
	assert.Equal(t, "c", entries[2].TargetID)
}

func TestClear(t *testing.T) {
	m := newTestManager(t)
	_, err := m.Save(types.ActivityEntry{Server: "s", Operation: types.OpUpdateProfile, Outcome: types.OutcomeFailure})
	require.NoError(t, err)

	require.NoError(t, m.Clear())
	n, err := m.Count()
	require.NoError(t, err)
	assert.Zero(t, n)

	entries, err := m.Load(0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestJournalStampsServerAndUser(t *testing.T) {
	m := newTestManager(t)
	j := NewJournal(m, "https://apis.example.com", func() string { return "alice" }, nil)

	require.NoError(t, j.Record(types.ActivityEntry{
		Operation: types.OpChangePassword,
		Outcome:   types.OutcomeSuccess,
	}))

	entries, err := m.Load(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "https://apis.example.com", entries[0].Server)
	assert.Equal(t, "alice", entries[0].Username)
}

func TestReopenKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apiconsole.db")
	m, err := NewManager(path)
	require.NoError(t, err)
	_, err = m.Save(types.ActivityEntry{Server: "s", Operation: types.OpCreateResource, Outcome: types.OutcomeSuccess})
	require.NoError(t, err)
	require.NoError(t, m.Close())

	m, err = NewManager(path)
	require.NoError(t, err)
	defer m.Close()
	n, err := m.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
