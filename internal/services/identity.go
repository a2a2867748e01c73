// Package services contains the toolkit's business logic. The presentation
// layer talks only to these types; they own the transaction boundaries and
// call into the repositories through a repomanager.RepositoryManager.
//
// This file implements IdentityService: registration, credential lookup,
// login and profile maintenance.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/dmitrijs2005/pstoolkit/internal/common"
	"github.com/dmitrijs2005/pstoolkit/internal/cryptox"
	"github.com/dmitrijs2005/pstoolkit/internal/dbx"
	"github.com/dmitrijs2005/pstoolkit/internal/models"
	"github.com/dmitrijs2005/pstoolkit/internal/repositories/repomanager"
)

// IdentityService manages accounts and their profiles. It never changes an
// account's status; see LifecycleService.
type IdentityService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewIdentityService(db *sql.DB, m repomanager.RepositoryManager) *IdentityService {
	return &IdentityService{db: db, repomanager: m}
}

// ValidateUsername checks that username can stand as an activity log actor:
// not empty, not one of the built-in actors, and free of the characters the
// log line format uses as delimiters. Failures wrap common.ErrInvalidUsername.
func ValidateUsername(username string) error {
	switch {
	case username == "":
		return fmt.Errorf("%w: must not be empty", common.ErrInvalidUsername)
	case strings.TrimSpace(username) != username:
		return fmt.Errorf("%w: must not start or end with spaces", common.ErrInvalidUsername)
	case strings.EqualFold(username, models.ActorAdmin), strings.EqualFold(username, models.ActorSystem):
		return fmt.Errorf("%w: %q is reserved", common.ErrInvalidUsername, username)
	case strings.ContainsAny(username, ":[]"), strings.ContainsFunc(username, unicode.IsControl):
		return fmt.Errorf("%w: must not contain ':', '[', ']' or control characters", common.ErrInvalidUsername)
	}
	return nil
}

// Register creates a Pending account and its profile in one transaction.
// A taken username yields common.ErrDuplicateUsername, a malformed one
// common.ErrInvalidUsername.
func (s *IdentityService) Register(ctx context.Context, username, password string, profile models.Profile) (int64, error) {
	if err := ValidateUsername(username); err != nil {
		return 0, err
	}

	var id int64
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		id, err = s.repomanager.Users(tx).Create(ctx, username, cryptox.HashPassword(password))
		if err != nil {
			return err
		}
		profile.UserID = id
		return s.repomanager.Users(tx).UpsertProfile(ctx, profile)
	})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateUsername) {
			return 0, err
		}
		return 0, fmt.Errorf("error creating user: %w", err)
	}
	return id, nil
}

// FindByCredentials returns the account matching username and password when
// it is Approved, and nil otherwise. An unknown username, a wrong password and
// an account in any other state all look the same to the caller.
func (s *IdentityService) FindByCredentials(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) || errors.Is(err, common.ErrAccountNotApproved) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

// Login checks the credentials. Unknown user and wrong password both give
// common.ErrInvalidCredentials. Correct credentials on an account that is not
// Approved return the user together with an error wrapping
// common.ErrAccountNotApproved, so the caller can react to the status (a
// Locked user may ask for an unlock).
func (s *IdentityService) Login(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.repomanager.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// Hash anyway so both failure paths cost the same.
			cryptox.VerifyPassword("", password)
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}
	if !cryptox.VerifyPassword(u.PasswordHash, password) {
		return nil, common.ErrInvalidCredentials
	}
	if u.Status != models.StatusApproved {
		return u, fmt.Errorf("%w: status is %s", common.ErrAccountNotApproved, u.Status)
	}
	return u, nil
}

// FindByName returns the account called username, or nil if there is none.
func (s *IdentityService) FindByName(ctx context.Context, username string) (*models.User, error) {
	u, err := s.repomanager.Users(s.db).GetByUsername(ctx, username)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	return u, err
}

// Get returns the account with the given id or common.ErrorNotFound.
func (s *IdentityService) Get(ctx context.Context, id int64) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, id)
}

func (s *IdentityService) ListAll(ctx context.Context) ([]models.UserWithProfile, error) {
	return s.repomanager.Users(s.db).List(ctx)
}

func (s *IdentityService) GetProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	return s.repomanager.Users(s.db).GetProfile(ctx, userID)
}

// UpdateProfile replaces every profile field of p.UserID.
func (s *IdentityService) UpdateProfile(ctx context.Context, p models.Profile) error {
	if _, err := s.repomanager.Users(s.db).GetByID(ctx, p.UserID); err != nil {
		return err
	}
	return s.repomanager.Users(s.db).UpsertProfile(ctx, p)
}
