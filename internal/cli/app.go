package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/pstoolkit/internal/activity"
	"github.com/dmitrijs2005/pstoolkit/internal/config"
	"github.com/dmitrijs2005/pstoolkit/internal/logging"
	"github.com/dmitrijs2005/pstoolkit/internal/models"
	"github.com/dmitrijs2005/pstoolkit/internal/repositories/repomanager"
	"github.com/dmitrijs2005/pstoolkit/internal/services"
	"github.com/google/uuid"
)

// App is one interactive session of the toolkit.
type App struct {
	config    *config.Config
	identity  *services.IdentityService
	lifecycle *services.LifecycleService
	vault     *services.VaultService
	ledger    *services.LedgerService
	stats     *services.StatsService
	admin     *services.AdminAuth
	activity  *activity.Log
	logger    logging.Logger

	reader *bufio.Reader
	out    io.Writer
	pwFd   int

	// user is the signed-in account, nil outside the user menu.
	user *models.User
}

// NewApp wires the services over rt and binds the session to in/out.
func NewApp(cfg *config.Config, rt *Runtime, in io.Reader, out io.Writer) (*App, error) {
	hash, err := cfg.AdminHash()
	if err != nil {
		return nil, err
	}
	rm := repomanager.NewSQLiteRepositoryManager()

	return &App{
		config:    cfg,
		identity:  services.NewIdentityService(rt.DB, rm),
		lifecycle: services.NewLifecycleService(rt.DB, rm),
		vault:     services.NewVaultService(rt.DB, rm, rt.Cipher),
		ledger:    services.NewLedgerService(rt.DB, rm),
		stats:     services.NewStatsService(rt.DB, rm),
		admin:     services.NewAdminAuth(cfg.AdminUsername, hash),
		activity:  rt.Activity,
		logger:    rt.Logger.With("session", uuid.NewString()),
		reader:    bufio.NewReader(in),
		out:       out,
		pwFd:      terminalFd(in),
	}, nil
}

// Run shows the main menu until the operator exits or input ends.
func (a *App) Run(ctx context.Context) error {
	a.banner()
	fmt.Fprintln(a.out, "  ✓ Database initialized successfully")
	fmt.Fprintln(a.out, "  ✓ System ready")
	a.record(ctx, models.ActorSystem, "Application started")
	a.logger.Info(ctx, "session started")

	err := a.mainMenu(ctx)

	a.record(ctx, models.ActorSystem, "Application shutdown")
	a.logger.Info(ctx, "session ended")
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// record writes an activity entry. A failed write is reported to the
// diagnostic log and does not interrupt the operator.
func (a *App) record(ctx context.Context, actor, action string) {
	if err := a.activity.Log(actor, action); err != nil {
		a.logger.Warn(ctx, "activity log write failed", "actor", actor, "action", action, "error", err)
	}
}

// report shows err to the operator. Unexpected errors also go to the
// diagnostic log.
func (a *App) report(ctx context.Context, op string, err error) {
	msg, known := userMessage(err)
	fmt.Fprintf(a.out, "\n  ⚠ %s\n", msg)
	if known {
		a.logger.Debug(ctx, "action rejected", "op", op, "error", err)
		return
	}
	a.logger.Error(ctx, "action failed", "op", op, "error", err)
}

func (a *App) prompt(label string) (string, error) {
	return GetSimpleText(a.reader, label, a.out)
}

func (a *App) promptSecret(label string) (string, error) {
	return GetPassword(a.reader, label, a.out, a.pwFd)
}

func (a *App) promptID(label string) (int64, bool, error) {
	return GetID(a.reader, label, a.out)
}

func (a *App) banner() {
	separator(a.out, "=")
	fmt.Fprintf(a.out, "%20s\tPASSWORD & SECURITY TOOLKIT\n", "")
	separator(a.out, "=")
	fmt.Fprintln(a.out)
}
