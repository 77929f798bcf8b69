package lap

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(filepath.Join(t.TempDir(), "laps.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestCreateAndBySession(t *testing.T) {
	repo := newTestRepository(t)
	session := NewSessionID()
	base := time.Date(2024, 3, 22, 9, 0, 0, 0, time.UTC)

	for i, ms := range []int64{1500, 3200, 4100} {
		l := &Lap{
			SessionID:  session,
			Number:     i + 1,
			Elapsed:    time.Duration(ms) * time.Millisecond,
			Display:    "x",
			RecordedAt: base.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, repo.Create(l))
		assert.NotZero(t, l.ID)
	}

	laps, err := repo.BySession(session)
	require.NoError(t, err)
	require.Len(t, laps, 3)

	assert.Equal(t, 3, laps[0].Number)
	assert.Equal(t, 4100*time.Millisecond, laps[0].Elapsed)
	assert.Equal(t, 1, laps[2].Number)
	assert.True(t, laps[2].RecordedAt.Equal(base))

	other, err := repo.BySession(NewSessionID())
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestAllAcrossSessions(t *testing.T) {
	repo := newTestRepository(t)
	first, second := NewSessionID(), NewSessionID()
	base := time.Date(2024, 3, 22, 9, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(&Lap{SessionID: first, Number: 1, Tag: "warmup", RecordedAt: base}))
	require.NoError(t, repo.Create(&Lap{SessionID: second, Number: 1, Tag: "run", RecordedAt: base.Add(time.Minute)}))

	laps, err := repo.All()
	require.NoError(t, err)
	require.Len(t, laps, 2)
	assert.Equal(t, "run", laps[0].Tag)
	assert.Equal(t, "warmup", laps[1].Tag)
}

func TestDeleteSession(t *testing.T) {
	repo := newTestRepository(t)
	keep, drop := NewSessionID(), NewSessionID()
	now := time.Now()

	require.NoError(t, repo.Create(&Lap{SessionID: keep, Number: 1, RecordedAt: now}))
	require.NoError(t, repo.Create(&Lap{SessionID: drop, Number: 1, RecordedAt: now}))
	require.NoError(t, repo.Create(&Lap{SessionID: drop, Number: 2, RecordedAt: now}))

	require.NoError(t, repo.DeleteSession(drop))

	laps, err := repo.All()
	require.NoError(t, err)
	require.Len(t, laps, 1)
	assert.Equal(t, keep, laps[0].SessionID)
}

func TestReopenKeepsLaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "laps.db")
	session := NewSessionID()

	repo, err := NewRepository(path)
	require.NoError(t, err)
	require.NoError(t, repo.Create(&Lap{SessionID: session, Number: 1, Display: "00:01:50", RecordedAt: time.Now()}))
	require.NoError(t, repo.Close())

	repo, err = NewRepository(path)
	require.NoError(t, err)
	defer repo.Close()

	laps, err := repo.BySession(session)
	require.NoError(t, err)
	require.Len(t, laps, 1)
	assert.Equal(t, "00:01:50", laps[0].Display)
}

func TestSplit(t *testing.T) {
	s := "session"
	laps := []Lap{
		{SessionID: s, Number: 2, Elapsed: 3 * time.Second},
		{SessionID: s, Number: 1, Elapsed: time.Second},
	}

	assert.Equal(t, time.Second, Split(laps[1], laps))
	assert.Equal(t, 2*time.Second, Split(laps[0], laps))

	next := Lap{SessionID: s, Number: 3, Elapsed: 7 * time.Second}
	assert.Equal(t, 4*time.Second, Split(next, laps))
}

func TestNewSessionIDUnique(t *testing.T) {
	assert.NotEqual(t, NewSessionID(), NewSessionID())
	assert.Len(t, NewSessionID(), 36)
}
