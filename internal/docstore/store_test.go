package docstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HendryAvila/focusmate/internal/config"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "user::chris", Key("chris"))
	assert.Equal(t, "user::", Key(""))
}

func TestUnavailable_WrapsBoth(t *testing.T) {
	cause := errors.New("boom")
	err := unavailable("fetch", "user::x", cause)

	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), `"user::x"`)
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	_, err := m.Fetch(ctx, "chris")
	assert.ErrorIs(t, err, ErrNotFound)

	doc := []byte(`{"a":1}`)
	require.NoError(t, m.Write(ctx, "chris", doc))
	doc[2] = 'z' // caller mutation must not leak into the store

	got, err := m.Fetch(ctx, "chris")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(got))
}

func TestOpen_Backends(t *testing.T) {
	ctx := context.Background()

	h, err := Open(ctx, &config.Config{Store: config.Store{Backend: config.BackendMemory}})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, h)

	h, err = Open(ctx, &config.Config{
		Store:  config.Store{Backend: config.BackendSQLite},
		SQLite: config.SQLite{Dir: t.TempDir()},
	})
	require.NoError(t, err)
	assert.IsType(t, &SQLStore{}, h)
	require.NoError(t, h.Close())

	_, err = Open(ctx, &config.Config{Store: config.Store{Backend: "couchbase"}})
	assert.Error(t, err)
}

type recordedCall struct {
	op, outcome string
}

type fakeRecorder struct {
	calls []recordedCall
}

func (r *fakeRecorder) ObserveStoreCall(op, outcome string, _ time.Duration) {
	r.calls = append(r.calls, recordedCall{op: op, outcome: outcome})
}

type brokenStore struct{}

func (brokenStore) Fetch(context.Context, string) ([]byte, error) {
	return nil, unavailable("fetch", "k", errors.New("down"))
}
func (brokenStore) Write(context.Context, string, []byte) error {
	return unavailable("write", "k", errors.New("down"))
}

func TestInstrument_ReportsOutcomes(t *testing.T) {
	rec := &fakeRecorder{}
	s := Instrument(NewMemoryStore(), rec)
	ctx := context.Background()

	_, _ = s.Fetch(ctx, "chris")
	_ = s.Write(ctx, "chris", []byte(`{}`))
	_, _ = s.Fetch(ctx, "chris")

	broken := Instrument(brokenStore{}, rec)
	_, _ = broken.Fetch(ctx, "chris")
	_ = broken.Write(ctx, "chris", nil)

	assert.Equal(t, []recordedCall{
		{"fetch", OutcomeNotFound},
		{"write", OutcomeOK},
		{"fetch", OutcomeOK},
		{"fetch", OutcomeError},
		{"write", OutcomeError},
	}, rec.calls)
}

func TestInstrument_NilRecorderIsPassthrough(t *testing.T) {
	m := NewMemoryStore()
	assert.Same(t, m, Instrument(m, nil))
}
