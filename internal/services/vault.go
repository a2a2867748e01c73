package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/pstoolkit/internal/models"
	"github.com/dmitrijs2005/pstoolkit/internal/repositories/repomanager"
)

// Cipher seals and opens stored secrets. *cryptox.Service implements it.
type Cipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// VaultService stores a user's secrets encrypted at rest and hands them back
// decrypted.
//
// Update and Delete address a record by id only and do not check that it
// belongs to the signed-in user; the menus only offer ids from the user's own
// listing. Both succeed silently when the id does not exist.
type VaultService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cipher      Cipher
}

func NewVaultService(db *sql.DB, m repomanager.RepositoryManager, c Cipher) *VaultService {
	return &VaultService{db: db, repomanager: m, cipher: c}
}

func (s *VaultService) Add(ctx context.Context, userID int64, label, plaintext string) (int64, error) {
	ct, err := s.cipher.Encrypt(plaintext)
	if err != nil {
		return 0, fmt.Errorf("encrypt secret: %w", err)
	}
	return s.repomanager.Passwords(s.db).Insert(ctx, &models.PasswordRecord{
		UserID:          userID,
		Label:           label,
		EncryptedSecret: ct,
	})
}

// List returns the user's records decrypted, oldest first. A record that
// cannot be decrypted fails the whole call with an error wrapping
// common.ErrDecryption.
func (s *VaultService) List(ctx context.Context, userID int64) ([]models.PasswordView, error) {
	recs, err := s.repomanager.Passwords(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	views := make([]models.PasswordView, 0, len(recs))
	for _, r := range recs {
		pt, err := s.cipher.Decrypt(r.EncryptedSecret)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", r.ID, err)
		}
		views = append(views, models.PasswordView{ID: r.ID, Label: r.Label, Secret: pt})
	}
	return views, nil
}

func (s *VaultService) Update(ctx context.Context, recordID int64, plaintext string) error {
	ct, err := s.cipher.Encrypt(plaintext)
	if err != nil {
		return fmt.Errorf("encrypt secret: %w", err)
	}
	_, err = s.repomanager.Passwords(s.db).UpdateSecret(ctx, recordID, ct)
	return err
}

func (s *VaultService) Delete(ctx context.Context, recordID int64) error {
	_, err := s.repomanager.Passwords(s.db).Delete(ctx, recordID)
	return err
}
