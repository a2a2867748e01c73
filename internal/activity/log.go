// Package activity keeps the operator-visible audit trail: a plain text file
// with one line per action in the form
//
//	[2006-01-02 15:04:05] actor: action
//
// where actor is a username, "Admin" or "System". The file is only ever
// appended to. A missing file reads as an empty log.
package activity

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/pstoolkit/internal/filex"
	"github.com/dmitrijs2005/pstoolkit/internal/models"
)

type Log struct {
	path string
	now  func() time.Time
	mu   sync.Mutex
}

func New(path string) *Log {
	return &Log{path: path, now: time.Now}
}

// WithClock replaces the time source. Used by tests.
func (l *Log) WithClock(now func() time.Time) *Log {
	l.now = now
	return l
}

func (l *Log) Path() string { return l.path }

// Log appends one entry.
func (l *Log) Log(actor, action string) error {
	line := fmt.Sprintf("[%s] %s: %s\n", l.now().Format(models.TimestampLayout), actor, oneLine(action))

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := filex.EnsureParentDir(l.path); err != nil {
		return err
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open activity log: %w", err)
	}
	if _, err := f.WriteString(line); err != nil {
		_ = f.Close()
		return fmt.Errorf("write activity log: %w", err)
	}
	return f.Close()
}

// oneLine keeps an entry on a single line whatever the operator typed.
func oneLine(s string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}

// ReadAll returns the whole file.
func (l *Log) ReadAll() (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read activity log: %w", err)
	}
	return string(b), nil
}

// Lines returns the raw lines of the log, oldest first.
func (l *Log) Lines() ([]string, error) {
	text, err := l.ReadAll()
	if err != nil {
		return nil, err
	}
	var lines []string
	sc := bufio.NewScanner(bytes.NewBufferString(text))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if line := sc.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, sc.Err()
}

// Tail returns the last n lines. n <= 0 returns every line.
func (l *Log) Tail(n int) ([]string, error) {
	lines, err := l.Lines()
	if err != nil {
		return nil, err
	}
	if n <= 0 || n >= len(lines) {
		return lines, nil
	}
	return lines[len(lines)-n:], nil
}

// Entries parses the log. Lines that do not follow the entry format are
// skipped.
func (l *Log) Entries() ([]models.ActivityEntry, error) {
	lines, err := l.Lines()
	if err != nil {
		return nil, err
	}
	entries := make([]models.ActivityEntry, 0, len(lines))
	for _, line := range lines {
		if e, ok := ParseLine(line); ok {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// ByActor returns the entries written for actor, oldest first.
func (l *Log) ByActor(actor string) ([]models.ActivityEntry, error) {
	all, err := l.Entries()
	if err != nil {
		return nil, err
	}
	var out []models.ActivityEntry
	for _, e := range all {
		if e.Actor == actor {
			out = append(out, e)
		}
	}
	return out, nil
}

// ParseLine splits "[ts] actor: action" into its parts.
func ParseLine(line string) (models.ActivityEntry, bool) {
	if !strings.HasPrefix(line, "[") {
		return models.ActivityEntry{}, false
	}
	end := strings.Index(line, "] ")
	if end < 0 {
		return models.ActivityEntry{}, false
	}
	ts, err := time.ParseInLocation(models.TimestampLayout, line[1:end], time.Local)
	if err != nil {
		return models.ActivityEntry{}, false
	}
	actor, action, ok := strings.Cut(line[end+2:], ": ")
	if !ok {
		return models.ActivityEntry{}, false
	}
	return models.ActivityEntry{Time: ts, Actor: actor, Action: action}, true
}
