package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/pstoolkit/internal/models"
)

func (a *App) adminLogin(ctx context.Context) (bool, error) {
	sectionHeader(a.out, "Admin Portal")

	username, err := a.prompt("Admin username")
	if err != nil {
		return false, err
	}
	password, err := a.promptSecret("Admin password")
	if err != nil {
		return false, err
	}
	if !a.admin.Authenticate(username, password) {
		fmt.Fprintln(a.out, "  Invalid admin credentials.")
		a.record(ctx, models.ActorSystem, "Failed admin login attempt")
		return false, nil
	}

	fmt.Fprintln(a.out, "  Welcome, Admin.")
	a.record(ctx, models.ActorAdmin, "Logged in")
	a.logger.Info(ctx, "admin signed in")
	return false, a.adminMenu(ctx)
}

func (a *App) adminMenu(ctx context.Context) error {
	return a.runMenu(ctx, "Admin Portal", []menuItem{
		{"View all users", a.listUsers},
		{"Approve/Reject users", a.reviewPending},
		{"Suspend/Unsuspend users", a.toggleSuspend},
		{"View activity logs", a.viewLogs},
		{"Review unlock requests", a.reviewUnlocks},
		{"Review feedback", a.reviewFeedback},
		{"Review audit requests", a.reviewAudits},
		{"View statistics", a.viewStats},
		{"Logout", a.adminLogout},
	})
}

func (a *App) listUsers(ctx context.Context) (bool, error) {
	users, err := a.identity.ListAll(ctx)
	if err != nil {
		return false, err
	}
	fmt.Fprintf(a.out, "\n  %-6s %-20s %-12s %-20s %s\n", "ID", "Username", "Status", "Name", "Email")
	separator(a.out, "-")
	for _, u := range users {
		fmt.Fprintf(a.out, "  %-6d %-20s %-12s %-20s %s\n",
			u.ID, u.Username, u.Status, orDash(u.Profile.Name), orDash(u.Profile.Email))
	}
	a.record(ctx, models.ActorAdmin, "Viewed all users")
	return false, nil
}

// usersIn prints the users in one of statuses and returns how many there were.
func (a *App) usersIn(ctx context.Context, statuses ...models.UserStatus) (int, error) {
	users, err := a.identity.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, u := range users {
		for _, s := range statuses {
			if u.Status == s {
				fmt.Fprintf(a.out, "  %d. %s → %s\n", u.ID, u.Username, u.Status)
				n++
			}
		}
	}
	return n, nil
}

func (a *App) reviewPending(ctx context.Context) (bool, error) {
	n, err := a.usersIn(ctx, models.StatusPending)
	if err != nil {
		return false, err
	}
	if n == 0 {
		fmt.Fprintln(a.out, "  No pending users.")
		return false, nil
	}
	id, ok, err := a.promptID("Enter user ID to approve/reject")
	if err != nil || !ok {
		return false, err
	}
	act, err := a.prompt("Approve (A) / Reject (R)")
	if err != nil {
		return false, err
	}
	switch strings.ToUpper(act) {
	case "A":
		if err := a.lifecycle.Approve(ctx, id); err != nil {
			return false, err
		}
		fmt.Fprintln(a.out, "  User approved.")
		a.record(ctx, models.ActorAdmin, fmt.Sprintf("Approved user ID %d", id))
	case "R":
		if err := a.lifecycle.Reject(ctx, id); err != nil {
			return false, err
		}
		fmt.Fprintln(a.out, "  User rejected.")
		a.record(ctx, models.ActorAdmin, fmt.Sprintf("Rejected user ID %d", id))
	default:
		fmt.Fprintln(a.out, "  No action taken.")
	}
	return false, nil
}

func (a *App) toggleSuspend(ctx context.Context) (bool, error) {
	n, err := a.usersIn(ctx, models.StatusApproved, models.StatusSuspended)
	if err != nil {
		return false, err
	}
	if n == 0 {
		fmt.Fprintln(a.out, "  No active users.")
		return false, nil
	}
	id, ok, err := a.promptID("Enter user ID to toggle suspend")
	if err != nil || !ok {
		return false, err
	}
	st, err := a.lifecycle.ToggleSuspension(ctx, id)
	if err != nil {
		return false, err
	}
	fmt.Fprintf(a.out, "  User now %s.\n", st)
	a.record(ctx, models.ActorAdmin, fmt.Sprintf("Toggled suspend for user ID %d", id))
	return false, nil
}

func (a *App) viewLogs(ctx context.Context) (bool, error) {
	s, err := a.prompt("Show last N entries (Enter for all)")
	if err != nil {
		return false, err
	}
	n := 0
	if s != "" {
		if n, err = strconv.Atoi(s); err != nil || n < 0 {
			fmt.Fprintln(a.out, "  Please enter a non-negative number.")
			return false, nil
		}
	}
	lines, err := a.activity.Tail(n)
	if err != nil {
		return false, err
	}
	sectionHeader(a.out, "Activity Logs")
	if len(lines) == 0 {
		fmt.Fprintln(a.out, "  No logs available.")
	}
	for _, l := range lines {
		fmt.Fprintln(a.out, l)
	}
	a.record(ctx, models.ActorAdmin, "Viewed activity logs")
	return false, nil
}

func (a *App) reviewUnlocks(ctx context.Context) (bool, error) {
	reqs, err := a.ledger.PendingUnlocks(ctx)
	if err != nil {
		return false, err
	}
	if len(reqs) == 0 {
		fmt.Fprintln(a.out, "  No pending unlock requests.")
		return false, nil
	}
	for _, r := range reqs {
		fmt.Fprintf(a.out, "  %d. %s [%s] %s\n", r.ID, r.Username, r.CreatedAt.Format(models.TimestampLayout), r.Reason)
	}
	id, ok, err := a.promptID("Enter request ID to unlock (Enter to go back)")
	if err != nil || !ok {
		return false, err
	}
	rec, err := a.lifecycle.AdminUnlock(ctx, id)
	if err != nil {
		return false, err
	}
	fmt.Fprintf(a.out, "  Account '%s' unlocked.\n", rec.Username)
	a.record(ctx, models.ActorAdmin, fmt.Sprintf("Unlocked account '%s' (request ID %d)", rec.Username, id))
	return false, nil
}

func (a *App) reviewFeedback(ctx context.Context) (bool, error) {
	items, err := a.ledger.PendingFeedback(ctx)
	if err != nil {
		return false, err
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "  No pending feedback.")
		return false, nil
	}
	for _, f := range items {
		fmt.Fprintf(a.out, "  %d. %s [%s]: %s\n", f.ID, f.Username, f.CreatedAt.Format(models.TimestampLayout), f.Text)
	}
	a.record(ctx, models.ActorAdmin, "Viewed feedback")

	id, ok, err := a.promptID("Enter feedback ID to mark resolved (Enter to go back)")
	if err != nil || !ok {
		return false, err
	}
	resolved, err := a.ledger.ResolveFeedback(ctx, id)
	if err != nil {
		return false, err
	}
	if !resolved {
		fmt.Fprintln(a.out, "  No pending feedback with that ID.")
		return false, nil
	}
	fmt.Fprintln(a.out, "  Feedback resolved.")
	a.record(ctx, models.ActorAdmin, fmt.Sprintf("Resolved feedback ID %d", id))
	return false, nil
}

func (a *App) reviewAudits(ctx context.Context) (bool, error) {
	reqs, err := a.ledger.PendingAudits(ctx)
	if err != nil {
		return false, err
	}
	if len(reqs) == 0 {
		fmt.Fprintln(a.out, "  No pending audit requests.")
		return false, nil
	}
	for _, r := range reqs {
		fmt.Fprintf(a.out, "  %d. %s [%s]\n", r.ID, r.Username, r.CreatedAt.Format(models.TimestampLayout))
	}
	id, ok, err := a.promptID("Enter audit ID to complete (Enter to go back)")
	if err != nil || !ok {
		return false, err
	}
	req, err := a.ledger.GetAudit(ctx, id)
	if err != nil {
		return false, err
	}
	if req.Status != models.AuditPending {
		fmt.Fprintln(a.out, "  That audit request is already completed.")
		return false, nil
	}

	entries, err := a.activity.ByActor(req.Username)
	if err != nil {
		return false, err
	}
	sectionHeader(a.out, "Activity of "+req.Username)
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "  No recorded activity.")
	}
	for _, e := range entries {
		fmt.Fprintf(a.out, "  [%s] %s\n", e.Time.Format(models.TimestampLayout), e.Action)
	}

	if _, err := a.ledger.CompleteAudit(ctx, id); err != nil {
		return false, err
	}
	fmt.Fprintln(a.out, "  Audit completed.")
	a.record(ctx, models.ActorAdmin, fmt.Sprintf("Completed audit for '%s' (request ID %d)", req.Username, id))
	return false, nil
}

func (a *App) viewStats(ctx context.Context) (bool, error) {
	st, err := a.stats.Collect(ctx)
	if err != nil {
		return false, err
	}
	sectionHeader(a.out, "Statistics")
	printStats(a.out, st)
	a.record(ctx, models.ActorAdmin, "Viewed statistics")
	return false, nil
}

func (a *App) adminLogout(ctx context.Context) (bool, error) {
	a.record(ctx, models.ActorAdmin, "Logged out")
	fmt.Fprintln(a.out, "  Logged out.")
	return true, nil
}
