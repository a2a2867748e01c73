package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/pstoolkit/internal/common"
	"github.com/dmitrijs2005/pstoolkit/internal/config"
	"github.com/dmitrijs2005/pstoolkit/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DBPath = storage.MemoryPath
	cfg.KeyPath = filepath.Join(dir, "secret.key")
	cfg.ActivityLogPath = filepath.Join(dir, "activity.log")
	cfg.DiagnosticLogPath = filepath.Join(dir, "debug.log")

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)
	cfg.AdminPasswordHash = string(hash)
	return cfg
}

// runScript plays script against a fresh session and returns the output and
// the activity log.
func runScript(t *testing.T, script string) (string, string) {
	t.Helper()
	cfg := testConfig(t)
	ctx := context.Background()

	rt, err := OpenRuntime(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close() })

	var out bytes.Buffer
	app, err := NewApp(cfg, rt, strings.NewReader(script), &out)
	require.NoError(t, err)
	require.NoError(t, app.Run(ctx))

	log, err := rt.Activity.ReadAll()
	require.NoError(t, err)
	return out.String(), log
}

func lines(parts ...string) string {
	return strings.Join(parts, "\n") + "\n"
}

const (
	adminIn  = "3\nadmin\nadmin123\n"
	adminOut = "9\n"
)

func register(name, password string) string {
	return lines("2", name, password, "", "", "", "")
}

func TestRun_RegisterApproveLoginStore(t *testing.T) {
	script := lines("2", "alice", "Secret123!", "Alice", "alice@example.com", "", "") +
		adminIn + lines("2", "1", "A") + adminOut +
		lines("1", "alice", "Secret123!",
			"1", "email", "mail-pw",
			"2",
			"12") +
		"5\n"

	out, log := runScript(t, script)

	assert.Contains(t, out, "Registration successful. Await admin approval.")
	assert.Contains(t, out, "User approved.")
	assert.Contains(t, out, "Welcome alice!")
	assert.Contains(t, out, "Password saved.")
	assert.Contains(t, out, "1. email → mail-pw")
	assert.Contains(t, out, "Thank you for using Password & Security Toolkit!")

	for _, want := range []string{
		"System: Application started",
		"alice: Registered - Pending approval",
		"Admin: Logged in",
		"Admin: Approved user ID 1",
		"alice: Logged in",
		"alice: Added password for email",
		"alice: Viewed saved passwords",
		"alice: Logged out",
		"System: Application shutdown",
	} {
		assert.Contains(t, log, want)
	}
	assert.NotContains(t, log, "mail-pw", "secrets never reach the activity log")
}

func TestRun_LoginFailures(t *testing.T) {
	script := register("bob", "pw") +
		lines("1", "bob", "wrong") +
		lines("1", "bob", "pw") +
		lines("1", "ghost", "pw") +
		"5\n"

	out, log := runScript(t, script)

	assert.Equal(t, 2, strings.Count(out, "Invalid credentials."))
	assert.Contains(t, out, "Account not approved by admin (status: Pending).")
	assert.Contains(t, log, "System: Failed login attempt for 'bob'")
	assert.Contains(t, log, "System: Failed login attempt for 'ghost'")
	assert.NotContains(t, out, "Welcome bob!")
}

func TestRun_DuplicateAndEmptyRegistration(t *testing.T) {
	script := register("bob", "pw") +
		lines("2", "bob") +
		lines("2", "") +
		lines("2", "carl", "") +
		"5\n"

	out, _ := runScript(t, script)
	assert.Contains(t, out, "Username already exists.")
	assert.Contains(t, out, "Username must not be empty.")
	assert.Contains(t, out, "Password must not be empty.")
}

func TestRun_RegisterRejectsActorLikeNames(t *testing.T) {
	script := lines("2", "Admin") +
		lines("2", "bob: Approved user ID 1") +
		adminIn + lines("1") + adminOut +
		"5\n"

	out, log := runScript(t, script)

	assert.Contains(t, out, `Username not allowed: "Admin" is reserved`)
	assert.Contains(t, out, "Username not allowed: must not contain ':', '[', ']' or control characters")
	assert.NotContains(t, log, "Registered")
	assert.Equal(t, 3, strings.Count(log, "] Admin: "), "only the real admin writes as Admin")
	assert.NotContains(t, log, "bob: Approved user ID 1")
}

func TestRun_AdminRejectsBadCredentials(t *testing.T) {
	out, log := runScript(t, lines("3", "admin", "nope", "5"))
	assert.Contains(t, out, "Invalid admin credentials.")
	assert.Contains(t, log, "System: Failed admin login attempt")
	assert.NotContains(t, log, "Admin: Logged in")
}

func TestRun_InvalidChoiceAndEOF(t *testing.T) {
	out, log := runScript(t, "9\nabc\n")
	assert.Equal(t, 2, strings.Count(out, "Invalid choice. Please select options 1-5."))
	assert.Contains(t, log, "System: Application shutdown")
}

func TestRun_VaultMaintenance(t *testing.T) {
	script := register("alice", "pw") +
		adminIn + lines("2", "1", "A") + adminOut +
		lines("1", "alice", "pw",
			"1", "bank", "old",
			"3", "1", "new",
			"2",
			"5", "",
			"6", "abc",
			"4", "1",
			"2",
			"4",
			"12") +
		"5\n"

	out, log := runScript(t, script)

	assert.Contains(t, out, "1. bank → new")
	assert.Contains(t, out, "Updated successfully.")
	assert.Contains(t, out, "Generated: ")
	assert.Contains(t, out, "Strength: Weak (score 1/5")
	assert.Contains(t, out, "Deleted successfully.")
	assert.Contains(t, out, "(none)")
	assert.Contains(t, out, "No saved passwords.")

	assert.Contains(t, log, "alice: Updated password ID 1")
	assert.Contains(t, log, "alice: Deleted password ID 1")
	assert.Contains(t, log, "alice: Generated new password")
	assert.Contains(t, log, "alice: Checked password strength")
}

func TestRun_AddWithEmptySecretGenerates(t *testing.T) {
	script := register("alice", "pw") +
		adminIn + lines("2", "1", "A") + adminOut +
		lines("1", "alice", "pw", "1", "wifi", "", "12") +
		"5\n"

	out, _ := runScript(t, script)
	assert.Contains(t, out, "Generated: ")
	assert.Contains(t, out, "Password saved.")
}

func TestRun_ProfileViewAndUpdate(t *testing.T) {
	script := lines("2", "alice", "pw", "Alice", "a@example.com", "testing", "") +
		adminIn + lines("2", "1", "A") + adminOut +
		lines("1", "alice", "pw",
			"8", "", "-", "", "ACME",
			"7",
			"12") +
		"5\n"

	out, log := runScript(t, script)
	assert.Contains(t, out, "Profile updated.")
	assert.Contains(t, out, "Name:         Alice")
	assert.Contains(t, out, "Email:        -")
	assert.Contains(t, out, "Purpose:      testing")
	assert.Contains(t, out, "Organization: ACME")
	assert.Contains(t, log, "alice: Updated profile")
	assert.Contains(t, log, "alice: Viewed profile")
}

func TestRun_LockRequestUnlockCycle(t *testing.T) {
	script := register("bob", "pw") +
		adminIn + lines("2", "1", "A") + adminOut +
		lines("1", "bob", "pw", "11", "y", "vacation") +
		lines("1", "bob", "pw", "y", "back now") +
		adminIn + lines("5", "1") + adminOut +
		lines("1", "bob", "pw", "12") +
		"5\n"

	out, log := runScript(t, script)

	assert.Contains(t, out, "Account locked. You have been logged out.")
	assert.Contains(t, out, "This account is locked.")
	assert.Contains(t, out, "Unlock request sent.")
	assert.Contains(t, out, "back now")
	assert.Contains(t, out, "Account 'bob' unlocked.")
	assert.Equal(t, 2, strings.Count(out, "Welcome bob!"))

	assert.Contains(t, log, "bob: Locked own account")
	assert.Contains(t, log, "bob: Requested account unlock")
	assert.Contains(t, log, "Admin: Unlocked account 'bob' (request ID 1)")
}

func TestRun_LockDeclinedKeepsSession(t *testing.T) {
	script := register("bob", "pw") +
		adminIn + lines("2", "1", "A") + adminOut +
		lines("1", "bob", "pw", "11", "n", "12") +
		"5\n"

	out, log := runScript(t, script)
	assert.NotContains(t, out, "Account locked.")
	assert.Contains(t, log, "bob: Logged out")
}

func TestRun_FeedbackAuditAndStats(t *testing.T) {
	script := register("carol", "pw") +
		adminIn + lines("2", "1", "A") + adminOut +
		lines("1", "carol", "pw", "9", "great tool", "10", "12") +
		adminIn +
		lines("6", "1",
			"7", "1",
			"8",
			"6") +
		adminOut +
		"5\n"

	out, log := runScript(t, script)

	assert.Contains(t, out, "great tool")
	assert.Contains(t, out, "Feedback resolved.")
	assert.Contains(t, out, "ACTIVITY OF CAROL")
	assert.Contains(t, out, "Requested account audit")
	assert.Contains(t, out, "Audit completed.")
	assert.Contains(t, out, "Total users:        1")
	assert.Contains(t, out, "Pending feedback:   0")
	assert.Contains(t, out, "No pending feedback.")

	assert.Contains(t, log, "carol: Submitted feedback")
	assert.Contains(t, log, "Admin: Resolved feedback ID 1")
	assert.Contains(t, log, "Admin: Completed audit for 'carol' (request ID 1)")
	assert.Contains(t, log, "Admin: Viewed statistics")
}

func TestRun_AdminInvalidTransitionIsReported(t *testing.T) {
	script := register("a", "pw") + register("b", "pw") +
		adminIn +
		lines("2", "1", "A",
			"2", "1", "A",
			"3", "1",
			"3", "1",
			"1",
			"4", "2") +
		adminOut +
		"5\n"

	out, log := runScript(t, script)

	assert.Contains(t, out, "Not allowed: invalid status transition: cannot approve user in status Approved")
	assert.Contains(t, out, "User now Suspended.")
	assert.Contains(t, out, "User now Approved.")
	assert.Contains(t, out, "ACTIVITY LOGS")
	assert.Contains(t, log, "Admin: Toggled suspend for user ID 1")
	assert.Contains(t, log, "Admin: Viewed activity logs")
}

func TestRun_DiagnosticLogWritten(t *testing.T) {
	cfg := testConfig(t)
	cfg.LogLevel = "info"
	ctx := context.Background()

	rt, err := OpenRuntime(ctx, cfg)
	require.NoError(t, err)

	app, err := NewApp(cfg, rt, strings.NewReader("5\n"), &bytes.Buffer{})
	require.NoError(t, err)
	require.NoError(t, app.Run(ctx))
	require.NoError(t, rt.Close())

	b, err := os.ReadFile(cfg.DiagnosticLogPath)
	require.NoError(t, err)
	assert.Contains(t, string(b), "session started")
	assert.Contains(t, string(b), "session=")
}

func TestOpenRuntime_BadKeyFile(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.KeyPath, []byte("not a key"), 0o600))

	_, err := OpenRuntime(context.Background(), cfg)
	assert.Error(t, err)
}

func TestUserMessage(t *testing.T) {
	msg, known := userMessage(errInvalidID)
	assert.True(t, known)
	assert.Equal(t, "Invalid ID.", msg)

	msg, known = userMessage(fmt.Errorf("%w: %q is reserved", common.ErrInvalidUsername, "System"))
	assert.True(t, known)
	assert.Equal(t, `Username not allowed: "System" is reserved`, msg)

	msg, known = userMessage(os.ErrClosed)
	assert.False(t, known)
	assert.Contains(t, msg, "unexpected")
}
