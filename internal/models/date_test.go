package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/prepdeck/prepdeck/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOf_TruncatesTimeOfDay(t *testing.T) {
	d := models.DateOf(time.Date(2026, 3, 14, 23, 59, 59, 0, time.UTC))
	assert.Equal(t, "2026-03-14", d.String())
}

func TestDate_AddDaysAcrossMonthBoundary(t *testing.T) {
	d, err := models.ParseDate("2026-07-20")
	require.NoError(t, err)

	assert.Equal(t, "2026-08-05", d.AddDays(16).String())
	assert.Equal(t, "2026-07-19", d.AddDays(-1).String())
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d, err := models.ParseDate("2026-06-01")
	require.NoError(t, err)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-06-01"`, string(b))

	var parsed models.Date
	require.NoError(t, json.Unmarshal(b, &parsed))
	assert.Equal(t, d, parsed)
}

func TestDate_UnmarshalRejectsGarbage(t *testing.T) {
	var d models.Date
	assert.Error(t, json.Unmarshal([]byte(`"not-a-date"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`42`), &d))
}

func TestDate_ScanSources(t *testing.T) {
	var d models.Date
	require.NoError(t, d.Scan("2026-06-01"))
	assert.Equal(t, "2026-06-01", d.String())

	require.NoError(t, d.Scan([]byte("2026-12-31")))
	assert.Equal(t, "2026-12-31", d.String())

	require.NoError(t, d.Scan(time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2026-01-02", d.String())

	assert.Error(t, d.Scan(42))
}

func TestDate_Ordering(t *testing.T) {
	earlier, err := models.ParseDate("2026-06-01")
	require.NoError(t, err)
	later := earlier.AddDays(1)

	assert.True(t, earlier.Before(later))
	assert.True(t, later.After(earlier))
	assert.False(t, earlier.Before(earlier))

	// TEXT storage relies on string order matching date order.
	assert.Equal(t, earlier.Before(later), earlier.String() < later.String())
}
