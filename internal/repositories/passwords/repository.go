// Package passwords persists vault rows. The secret column only ever holds
// ciphertext produced by the crypto service.
//
// Rows are addressed by id alone: nothing at this layer checks that the caller
// owns the row it updates or deletes.
package passwords

import (
	"context"

	"github.com/dmitrijs2005/pstoolkit/internal/models"
)

type Repository interface {
	Insert(ctx context.Context, rec *models.PasswordRecord) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]models.PasswordRecord, error)

	// UpdateSecret and Delete report the number of rows touched; zero is not
	// an error.
	UpdateSecret(ctx context.Context, id int64, encrypted string) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)

	Count(ctx context.Context) (int, error)
}
