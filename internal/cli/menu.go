package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/pstoolkit/internal/common"
	"github.com/dmitrijs2005/pstoolkit/internal/cryptox"
	"github.com/dmitrijs2005/pstoolkit/internal/models"
	"github.com/dmitrijs2005/pstoolkit/internal/services"
)

// menuAction is one numbered menu entry. done ends the menu loop.
type menuAction func(ctx context.Context) (done bool, err error)

type menuItem struct {
	label  string
	action menuAction
}

// runMenu shows items until an action reports done or input ends. Errors
// from actions are shown and the loop continues; only input errors return.
func (a *App) runMenu(ctx context.Context, title string, items []menuItem) error {
	for {
		sectionHeader(a.out, title)
		fmt.Fprintln(a.out)
		for i, it := range items {
			fmt.Fprintf(a.out, "  [%d] %s\n", i+1, it.label)
		}
		fmt.Fprintln(a.out)
		separator(a.out, "-")

		choice, err := a.prompt(fmt.Sprintf("Enter your choice [1-%d]", len(items)))
		if err != nil {
			return err
		}
		n, convErr := strconv.Atoi(choice)
		if convErr != nil || n < 1 || n > len(items) {
			fmt.Fprintf(a.out, "\n  ⚠ Invalid choice. Please select options 1-%d.\n", len(items))
			continue
		}

		done, err := items[n-1].action(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return err
			}
			a.report(ctx, items[n-1].label, err)
		}
		if done {
			return nil
		}
	}
}

func (a *App) mainMenu(ctx context.Context) error {
	return a.runMenu(ctx, "Main Menu", []menuItem{
		{"User Login", a.login},
		{"Register New Account", a.register},
		{"Admin Portal", a.adminLogin},
		{"About", a.about},
		{"Exit Application", a.exit},
	})
}

func (a *App) about(context.Context) (bool, error) {
	sectionHeader(a.out, "About this application")
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "  Password & Security Toolkit")
	fmt.Fprintln(a.out, "  A password management system with:")
	fmt.Fprintln(a.out)
	for _, f := range []string{
		"Secure password storage with encryption",
		"Admin approval workflow",
		"Password strength analysis",
		"Activity logging and auditing",
		"User profile management",
		"Feedback system",
	} {
		fmt.Fprintf(a.out, "  ✓ %s\n", f)
	}
	return false, nil
}

func (a *App) exit(context.Context) (bool, error) {
	sectionHeader(a.out, "Goodbye")
	fmt.Fprintln(a.out, "\n  Thank you for using Password & Security Toolkit!")
	fmt.Fprintln(a.out, "  Exiting application...")
	return true, nil
}

func (a *App) register(ctx context.Context) (bool, error) {
	sectionHeader(a.out, "Register New Account")

	username, err := a.prompt("Enter new username")
	if err != nil {
		return false, err
	}
	if username == "" {
		fmt.Fprintln(a.out, "  Username must not be empty.")
		return false, nil
	}
	if err := services.ValidateUsername(username); err != nil {
		return false, err
	}
	if existing, err := a.identity.FindByName(ctx, username); err != nil {
		return false, err
	} else if existing != nil {
		fmt.Fprintln(a.out, "  Username already exists.")
		return false, nil
	}

	password, err := a.promptSecret("Enter new password")
	if err != nil {
		return false, err
	}
	if password == "" {
		fmt.Fprintln(a.out, "  Password must not be empty.")
		return false, nil
	}
	printStrength(a.out, cryptox.CheckStrength(password))

	profile, err := a.readProfile(nil)
	if err != nil {
		return false, err
	}

	if _, err := a.identity.Register(ctx, username, password, profile); err != nil {
		if errors.Is(err, common.ErrDuplicateUsername) {
			fmt.Fprintln(a.out, "  Username already exists.")
			return false, nil
		}
		return false, err
	}
	fmt.Fprintln(a.out, "\n  Registration successful. Await admin approval.")
	a.record(ctx, username, "Registered - Pending approval")
	return false, nil
}

// readProfile prompts for the optional profile fields. With current set,
// empty input keeps the current value and "-" clears it; otherwise empty
// input leaves the field unset.
func (a *App) readProfile(current *models.Profile) (models.Profile, error) {
	var p models.Profile
	if current != nil {
		p = *current
	}
	fields := []struct {
		label string
		dst   **string
	}{
		{"Full name", &p.Name},
		{"Email", &p.Email},
		{"Purpose of use", &p.Purpose},
		{"Organization", &p.Organization},
	}
	for _, f := range fields {
		label := f.label + " (optional)"
		if current != nil {
			label = fmt.Sprintf("%s [%s] (Enter keeps, - clears)", f.label, orDash(*f.dst))
		}
		s, err := a.prompt(label)
		if err != nil {
			return p, err
		}
		switch {
		case current != nil && s == "":
		case current != nil && s == "-":
			*f.dst = nil
		default:
			*f.dst = models.Optional(s)
		}
	}
	return p, nil
}

func (a *App) login(ctx context.Context) (bool, error) {
	sectionHeader(a.out, "User Login")

	username, err := a.prompt("Username")
	if err != nil {
		return false, err
	}
	password, err := a.promptSecret("Password")
	if err != nil {
		return false, err
	}

	u, err := a.identity.Login(ctx, username, password)
	switch {
	case err == nil:
	case errors.Is(err, common.ErrInvalidCredentials):
		fmt.Fprintln(a.out, "  Invalid credentials.")
		a.record(ctx, models.ActorSystem, fmt.Sprintf("Failed login attempt for '%s'", username))
		return false, nil
	case errors.Is(err, common.ErrAccountNotApproved) && u.Status == models.StatusLocked:
		return false, a.offerUnlock(ctx, u)
	case errors.Is(err, common.ErrAccountNotApproved):
		fmt.Fprintf(a.out, "  Account not approved by admin (status: %s).\n", u.Status)
		return false, nil
	default:
		return false, err
	}

	fmt.Fprintf(a.out, "\n  Welcome %s!\n", u.Username)
	a.record(ctx, u.Username, "Logged in")
	a.logger.Info(ctx, "user signed in", "user_id", u.ID)

	a.user = u
	defer func() { a.user = nil }()
	return false, a.userMenu(ctx)
}

// offerUnlock lets a Locked user ask the admin for an unlock straight from
// the login screen.
func (a *App) offerUnlock(ctx context.Context, u *models.User) error {
	fmt.Fprintln(a.out, "  This account is locked.")
	ok, err := Confirm(a.reader, "Request an unlock from the admin?", a.out)
	if err != nil || !ok {
		return err
	}
	reason, err := a.prompt("Reason")
	if err != nil {
		return err
	}
	if _, err := a.lifecycle.RequestUnlock(ctx, u.ID, strings.TrimSpace(reason)); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "  Unlock request sent. The admin will review it.")
	a.record(ctx, u.Username, "Requested account unlock")
	return nil
}
