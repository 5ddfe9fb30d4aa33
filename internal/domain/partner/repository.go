package partner

import (
	"context"

	"github.com/timebill/backend/internal/domain/shared"
)

// CustomerRepository is the persistence port for customers.
// FindByCode returns nil (not an error) when the code is unknown.
type CustomerRepository interface {
	FindByCode(ctx context.Context, code string) (*Customer, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Customer, error)
	Save(ctx context.Context, customer *Customer) error
}
