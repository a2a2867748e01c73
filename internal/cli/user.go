package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/pstoolkit/internal/cryptox"
)

func (a *App) userMenu(ctx context.Context) error {
	return a.runMenu(ctx, "User Menu - "+a.user.Username, []menuItem{
		{"Add password", a.addPassword},
		{"View passwords", a.viewPasswords},
		{"Update password", a.updatePassword},
		{"Delete password", a.deletePassword},
		{"Generate strong password", a.generatePassword},
		{"Check password strength", a.checkStrength},
		{"View profile", a.viewProfile},
		{"Update profile", a.updateProfile},
		{"Send feedback", a.sendFeedback},
		{"Request account audit", a.requestAudit},
		{"Lock my account", a.lockAccount},
		{"Logout", a.logout},
	})
}

func (a *App) addPassword(ctx context.Context) (bool, error) {
	label, err := a.prompt("Label")
	if err != nil {
		return false, err
	}
	if label == "" {
		fmt.Fprintln(a.out, "  Label must not be empty.")
		return false, nil
	}
	secret, err := a.promptSecret("Password (Enter to generate one)")
	if err != nil {
		return false, err
	}
	if secret == "" {
		if secret, err = cryptox.GeneratePassword(a.config.GeneratedPasswordLength, cryptox.AllClasses()); err != nil {
			return false, err
		}
		fmt.Fprintf(a.out, "  Generated: %s\n", secret)
	}

	if _, err := a.vault.Add(ctx, a.user.ID, label, secret); err != nil {
		return false, err
	}
	fmt.Fprintln(a.out, "  Password saved.")
	a.record(ctx, a.user.Username, "Added password for "+label)
	return false, nil
}

func (a *App) viewPasswords(ctx context.Context) (bool, error) {
	recs, err := a.vault.List(ctx, a.user.ID)
	if err != nil {
		return false, err
	}
	fmt.Fprintln(a.out, "\n  Saved Passwords:")
	if len(recs) == 0 {
		fmt.Fprintln(a.out, "  (none)")
	}
	for _, r := range recs {
		fmt.Fprintf(a.out, "  %d. %s → %s\n", r.ID, r.Label, r.Secret)
	}
	a.record(ctx, a.user.Username, "Viewed saved passwords")
	return false, nil
}

// listLabels prints the user's records without secrets and reports whether
// there is anything to pick from.
func (a *App) listLabels(ctx context.Context) (bool, error) {
	recs, err := a.vault.List(ctx, a.user.ID)
	if err != nil {
		return false, err
	}
	if len(recs) == 0 {
		fmt.Fprintln(a.out, "  No saved passwords.")
		return false, nil
	}
	for _, r := range recs {
		fmt.Fprintf(a.out, "  %d. %s\n", r.ID, r.Label)
	}
	return true, nil
}

func (a *App) updatePassword(ctx context.Context) (bool, error) {
	found, err := a.listLabels(ctx)
	if err != nil || !found {
		return false, err
	}
	id, ok, err := a.promptID("Enter ID to update")
	if err != nil || !ok {
		return false, err
	}
	secret, err := a.promptSecret("Enter new password")
	if err != nil {
		return false, err
	}
	if err := a.vault.Update(ctx, id, secret); err != nil {
		return false, err
	}
	fmt.Fprintln(a.out, "  Updated successfully.")
	a.record(ctx, a.user.Username, fmt.Sprintf("Updated password ID %d", id))
	return false, nil
}

func (a *App) deletePassword(ctx context.Context) (bool, error) {
	found, err := a.listLabels(ctx)
	if err != nil || !found {
		return false, err
	}
	id, ok, err := a.promptID("Enter ID to delete")
	if err != nil || !ok {
		return false, err
	}
	if err := a.vault.Delete(ctx, id); err != nil {
		return false, err
	}
	fmt.Fprintln(a.out, "  Deleted successfully.")
	a.record(ctx, a.user.Username, fmt.Sprintf("Deleted password ID %d", id))
	return false, nil
}

func (a *App) generatePassword(ctx context.Context) (bool, error) {
	s, err := a.prompt(fmt.Sprintf("Length [%d]", a.config.GeneratedPasswordLength))
	if err != nil {
		return false, err
	}
	length := a.config.GeneratedPasswordLength
	if s != "" {
		if length, err = strconv.Atoi(s); err != nil {
			fmt.Fprintln(a.out, "  Length must be a number.")
			return false, nil
		}
	}
	pw, err := cryptox.GeneratePassword(length, cryptox.AllClasses())
	if err != nil {
		return false, err
	}
	fmt.Fprintf(a.out, "  Generated: %s\n", pw)
	a.record(ctx, a.user.Username, "Generated new password")
	return false, nil
}

func (a *App) checkStrength(ctx context.Context) (bool, error) {
	pw, err := a.promptSecret("Enter password")
	if err != nil {
		return false, err
	}
	printStrength(a.out, cryptox.CheckStrength(pw))
	a.record(ctx, a.user.Username, "Checked password strength")
	return false, nil
}

func (a *App) viewProfile(ctx context.Context) (bool, error) {
	p, err := a.identity.GetProfile(ctx, a.user.ID)
	if err != nil {
		return false, err
	}
	sectionHeader(a.out, "Profile")
	printProfile(a.out, a.user.Username, p)
	a.record(ctx, a.user.Username, "Viewed profile")
	return false, nil
}

func (a *App) updateProfile(ctx context.Context) (bool, error) {
	cur, err := a.identity.GetProfile(ctx, a.user.ID)
	if err != nil {
		return false, err
	}
	p, err := a.readProfile(cur)
	if err != nil {
		return false, err
	}
	if err := a.identity.UpdateProfile(ctx, p); err != nil {
		return false, err
	}
	fmt.Fprintln(a.out, "  Profile updated.")
	a.record(ctx, a.user.Username, "Updated profile")
	return false, nil
}

func (a *App) sendFeedback(ctx context.Context) (bool, error) {
	text, err := a.prompt("Your feedback")
	if err != nil {
		return false, err
	}
	if text == "" {
		fmt.Fprintln(a.out, "  Feedback must not be empty.")
		return false, nil
	}
	if _, err := a.ledger.SubmitFeedback(ctx, a.user, text); err != nil {
		return false, err
	}
	fmt.Fprintln(a.out, "  Thank you! Your feedback was sent to the admin.")
	a.record(ctx, a.user.Username, "Submitted feedback")
	return false, nil
}

func (a *App) requestAudit(ctx context.Context) (bool, error) {
	if _, err := a.ledger.SubmitAudit(ctx, a.user); err != nil {
		return false, err
	}
	fmt.Fprintln(a.out, "  Audit request submitted.")
	a.record(ctx, a.user.Username, "Requested account audit")
	return false, nil
}

// lockAccount locks the signed-in account and ends the session.
func (a *App) lockAccount(ctx context.Context) (bool, error) {
	fmt.Fprintln(a.out, "  Locking your account signs you out. Only the admin can unlock it.")
	ok, err := Confirm(a.reader, "Lock your account?", a.out)
	if err != nil || !ok {
		return false, err
	}
	reason, err := a.prompt("Reason (optional)")
	if err != nil {
		return false, err
	}
	if err := a.lifecycle.LockSelf(ctx, a.user.ID, reason); err != nil {
		return false, err
	}
	fmt.Fprintln(a.out, "  Account locked. You have been logged out.")
	a.record(ctx, a.user.Username, "Locked own account")
	return true, nil
}

func (a *App) logout(ctx context.Context) (bool, error) {
	a.record(ctx, a.user.Username, "Logged out")
	fmt.Fprintln(a.out, "  Logged out.")
	return true, nil
}
