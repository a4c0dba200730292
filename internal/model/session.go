package model

import (
	"errors"
	"strings"

	"github.com/sandeepkv93/focuslog/internal/dates"
)

const DefaultSessionTitle = "Focus block"

var (
	ErrInvalidDate    = errors.New("model: invalid date")
	ErrInvalidMinutes = errors.New("model: minutes must be positive")
)

// Session is one logged focus block. Sessions are never edited after creation.
type Session struct {
	ID      string   `json:"id,omitempty"`
	DateISO string   `json:"dateISO"`
	Minutes int      `json:"minutes"`
	Title   string   `json:"title"`
	Tags    []string `json:"tags"`
}

func (s Session) Validate() error {
	if !dates.IsISO(s.DateISO) {
		return ErrInvalidDate
	}
	if s.Minutes <= 0 {
		return ErrInvalidMinutes
	}
	return nil
}

// NewSession builds a session from raw user input: the title is trimmed and
// defaulted, tags are parsed from a comma-separated string.
func NewSession(id, dateISO string, minutes int, title, tagsCSV string) (Session, error) {
	s := Session{
		ID:      id,
		DateISO: dateISO,
		Minutes: minutes,
		Title:   SessionTitle(title),
		Tags:    ParseTags(tagsCSV),
	}
	if err := s.Validate(); err != nil {
		return Session{}, err
	}
	return s, nil
}

func SessionTitle(raw string) string {
	title := strings.TrimSpace(raw)
	if title == "" {
		return DefaultSessionTitle
	}
	return title
}

// ParseTags splits csv on commas, trims each tag and drops empties.
func ParseTags(csv string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(csv, ",") {
		tag := strings.TrimSpace(part)
		if tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// NormalizeSessions cleans sessions read back from storage. Entries without a
// valid date are dropped; the rest get non-negative minutes, a title and
// trimmed tags.
func NormalizeSessions(in []Session) []Session {
	out := make([]Session, 0, len(in))
	for _, s := range in {
		s.DateISO = strings.TrimSpace(s.DateISO)
		if !dates.IsISO(s.DateISO) {
			continue
		}
		if s.Minutes < 0 {
			s.Minutes = 0
		}
		s.Title = SessionTitle(s.Title)
		s.Tags = ParseTags(strings.Join(s.Tags, ","))
		out = append(out, s)
	}
	return out
}
