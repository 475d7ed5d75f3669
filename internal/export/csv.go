// Package export writes client-generated downloads, currently the CSV
// export of an event list.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/structura-app/structura-cli/internal/models"
)

// eventHeader is the CSV header row. Every data row has the same number of
// logical columns; encoding/csv quotes fields containing commas.
var eventHeader = []string{"id", "title", "description", "location", "startTime", "endTime"}

// WriteEventsCSV writes the event list as CSV to w.
func WriteEventsCSV(w io.Writer, events []models.Event) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(eventHeader); err != nil {
		return err
	}
	for _, e := range events {
		row := []string{
			e.ID,
			e.Title,
			e.Description,
			e.Location,
			e.StartTime.Format(time.RFC3339),
			e.EndTime.Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveEventsCSV writes the event list into dir as events-<date>.csv and
// returns the file path.
func SaveEventsCSV(dir string, events []models.Event, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, "events-"+now.Format("2006-01-02")+".csv")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := WriteEventsCSV(f, events); err != nil {
		return "", err
	}
	return path, nil
}
