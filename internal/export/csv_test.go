package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/structura-app/structura-cli/internal/models"
)

func TestWriteEventsCSV_QuotesCommaInTitle(t *testing.T) {
	start := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)
	events := []models.Event{
		{ID: "e1", Title: "Lecture: glass, steel and concrete", Location: "Hall A", StartTime: start, EndTime: start.Add(time.Hour)},
		{ID: "e2", Title: "Plain title", Location: "Hall B", StartTime: start, EndTime: start.Add(time.Hour)},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteEventsCSV(&buf, events))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus two rows")

	header := rows[0]
	for i, row := range rows[1:] {
		assert.Len(t, row, len(header), "row %d column count must match header", i+1)
	}
	assert.Equal(t, "Lecture: glass, steel and concrete", rows[1][1], "comma-bearing field survives a round trip")
}

func TestWriteEventsCSV_EmptyListStillHasHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteEventsCSV(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, eventHeader, rows[0])
}

func TestSaveEventsCSV(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	path, err := SaveEventsCSV(dir, []models.Event{{ID: "e1", Title: "t"}}, now)
	require.NoError(t, err)
	assert.Contains(t, path, "events-2026-08-28.csv")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
