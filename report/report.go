// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package report renders exports and digests for chat delivery.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/word-sprint/models"
)

// CSVHeader is the first line of every export.
var CSVHeader = []string{"word", "user_id", "language", "submitted_at"}

func ExportFilename(sprintID int64) string {
	return fmt.Sprintf("sprint_%d_words.csv", sprintID)
}

// WriteCSV writes the header and one line per row. Timestamps are RFC 3339 in UTC.
func WriteCSV(w io.Writer, rows []models.ExportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.Word,
			strconv.FormatInt(r.UserID, 10),
			r.Language,
			r.SubmittedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func CSV(rows []models.ExportRow) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		return nil, fmt.Errorf("render csv: %w", err)
	}
	return buf.Bytes(), nil
}

// FormatDigest renders the daily report sent to admins.
func FormatDigest(d models.Digest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 Report for %s\n", d.Date.Format("2006-01-02"))
	fmt.Fprintf(&b, "New users: %s\n", humanize.Comma(int64(d.NewUsers)))
	fmt.Fprintf(&b, "New words: %s\n", humanize.Comma(int64(d.NewWords)))
	if len(d.Sprints) == 0 {
		b.WriteString("No sprints yet.\n")
	}
	for _, c := range d.Sprints {
		fmt.Fprintf(&b, "Sprint #%d %q (%s): %s %s\n",
			c.SprintID, c.Theme, c.Status, humanize.Comma(int64(c.Words)), plural(c.Words, "word", "words"))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatSprint renders one sprint as a single line relative to now.
func FormatSprint(sp models.Sprint, now time.Time) string {
	line := fmt.Sprintf("#%d %q - %d %s, %s", sp.ID, sp.Theme,
		sp.DurationDays, plural(sp.DurationDays, "day", "days"), sp.Status)
	if sp.Active() {
		line += ", ends " + humanize.RelTime(sp.EndsAt, now, "ago", "from now")
	} else if sp.CompletedAt != nil {
		line += ", closed " + humanize.RelTime(*sp.CompletedAt, now, "ago", "from now")
	}
	return line
}

// FormatSprints renders a list, one sprint per line.
func FormatSprints(sprints []models.Sprint, now time.Time) string {
	lines := make([]string, 0, len(sprints))
	for _, sp := range sprints {
		lines = append(lines, FormatSprint(sp, now))
	}
	return strings.Join(lines, "\n")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
