package sqlite

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Writes raw rows under the store's key to exercise the absent-on-bad-value
// contract against stored values Save can never produce.
func TestLoad_BadStoredValuesAreAbsent(t *testing.T) {
	s, err := New(":memory:", zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	seed := func(raw string) {
		_, err := s.db.Exec(`
			INSERT INTO period_records (key, record, updated_at)
			VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET record = excluded.record`,
			"week-2025-03-03", raw, "2025-03-03T00:00:00Z")
		require.NoError(t, err)
	}

	for name, raw := range map[string]string{
		"unparseable":    `{not json`,
		"foreign object": `{"foo": 1}`,
		"empty object":   `{}`,
		"bad type tag":   `{"type": "fortnight", "periodStart": "2025-03-03T00:00:00Z"}`,
		"zero start":     `{"type": "week"}`,
	} {
		seed(raw)

		got, ok, loadErr := s.Load(context.Background(), "week-2025-03-03")
		require.NoError(t, loadErr, name)
		assert.False(t, ok, name)
		assert.Nil(t, got, name)
	}
}
