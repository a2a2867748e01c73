// Package requests persists the three request ledgers that connect users with
// the admin: feedback, account locks (with their unlock requests) and audit
// requests.
//
// All three share one shape: rows are appended with an opening status, listed
// newest first by status, and flipped one way to a closing status. A flip
// against a missing or already-closed row touches zero rows and is not an
// error.
//
// Timestamps are stored as local "YYYY-MM-DD HH:MM:SS" text so that ordering
// by the column is chronological.
package requests

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/pstoolkit/internal/models"
)

func formatTime(t time.Time) string {
	return t.Format(models.TimestampLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(models.TimestampLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad timestamp %q: %w", s, err)
	}
	return t, nil
}
