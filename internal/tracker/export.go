package tracker

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sandeepkv93/focuslog/internal/model"
)

var csvHeader = []string{"date", "title", "minutes", "tags"}

// WriteCSV writes sessions as date,title,minutes,tags with tags joined by "|".
func WriteCSV(w io.Writer, sessions []model.Session) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, s := range sessions {
		row := []string{s.DateISO, s.Title, strconv.Itoa(s.Minutes), strings.Join(s.Tags, "|")}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportCSV writes every session, newest first.
func (t *Tracker) ExportCSV(w io.Writer) (int, error) {
	sessions := t.Sessions()
	return len(sessions), WriteCSV(w, sessions)
}

func ExportFileName(today string) string {
	return "focus-sessions-" + today + ".csv"
}

// ExportFile writes the CSV to path, defaulting to ExportFileName(today) in
// the working directory. The file is replaced atomically.
func (t *Tracker) ExportFile(path string) (string, int, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = ExportFileName(t.Today())
	}
	var buf bytes.Buffer
	n, err := t.ExportCSV(&buf)
	if err != nil {
		return "", 0, err
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", 0, fmt.Errorf("create export dir: %w", err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return "", 0, fmt.Errorf("write export: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", 0, fmt.Errorf("write export: %w", err)
	}
	return path, n, nil
}
