package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/pstoolkit/internal/common"
	"github.com/dmitrijs2005/pstoolkit/internal/cryptox"
	"github.com/dmitrijs2005/pstoolkit/internal/models"
)

const lineWidth = 80

func separator(w io.Writer, ch string) {
	fmt.Fprintln(w, strings.Repeat(ch, lineWidth))
}

func sectionHeader(w io.Writer, title string) {
	fmt.Fprintln(w)
	separator(w, "=")
	fmt.Fprintf(w, "  %s\n", strings.ToUpper(title))
	separator(w, "=")
}

// userMessage turns an action error into the line shown to the operator.
// known is false for errors outside the toolkit's taxonomy.
func userMessage(err error) (msg string, known bool) {
	switch {
	case errors.Is(err, common.ErrDuplicateUsername):
		return "Username already exists.", true
	case errors.Is(err, common.ErrInvalidUsername):
		return "Username not allowed: " + strings.TrimPrefix(err.Error(), common.ErrInvalidUsername.Error()+": "), true
	case errors.Is(err, common.ErrInvalidCredentials):
		return "Invalid credentials.", true
	case errors.Is(err, common.ErrInvalidTransition):
		return "Not allowed: " + err.Error(), true
	case errors.Is(err, common.ErrorNotFound):
		return "Not found.", true
	case errors.Is(err, common.ErrDecryption):
		return "Could not decrypt stored data. The key file may have changed.", true
	case errors.Is(err, common.ErrInvalidLength):
		return "Length must be a positive number.", true
	case errors.Is(err, errInvalidID):
		return "Invalid ID.", true
	}
	return "An unexpected error occurred: " + err.Error(), false
}

func printStrength(w io.Writer, r cryptox.StrengthReport) {
	fmt.Fprintf(w, "  Strength: %s (score %d/5, ~%.1f bits of entropy)\n", r.Tier, r.Score, r.EntropyBits)
	for _, s := range r.Suggestions {
		fmt.Fprintf(w, "    - %s\n", s)
	}
}

func printProfile(w io.Writer, username string, p *models.Profile) {
	fmt.Fprintf(w, "  Username:     %s\n", username)
	fmt.Fprintf(w, "  Name:         %s\n", orDash(p.Name))
	fmt.Fprintf(w, "  Email:        %s\n", orDash(p.Email))
	fmt.Fprintf(w, "  Purpose:      %s\n", orDash(p.Purpose))
	fmt.Fprintf(w, "  Organization: %s\n", orDash(p.Organization))
}

func orDash(p *string) string {
	if p == nil {
		return "-"
	}
	return *p
}

func printStats(w io.Writer, s *models.Stats) {
	fmt.Fprintf(w, "  Total users:        %d\n", s.TotalUsers)
	fmt.Fprintf(w, "    Pending:          %d\n", s.UsersByStatus.Pending)
	fmt.Fprintf(w, "    Approved:         %d\n", s.UsersByStatus.Approved)
	fmt.Fprintf(w, "    Rejected:         %d\n", s.UsersByStatus.Rejected)
	fmt.Fprintf(w, "    Suspended:        %d\n", s.UsersByStatus.Suspended)
	fmt.Fprintf(w, "    Locked:           %d\n", s.UsersByStatus.Locked)
	fmt.Fprintf(w, "  Stored passwords:   %d\n", s.PasswordRecords)
	fmt.Fprintf(w, "  Pending feedback:   %d\n", s.PendingFeedback)
	fmt.Fprintf(w, "  Pending unlocks:    %d\n", s.PendingUnlocks)
	fmt.Fprintf(w, "  Pending audits:     %d\n", s.PendingAudits)
}
