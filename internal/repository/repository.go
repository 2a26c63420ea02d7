package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/jafarshop/invman/internal/domain"
)

// Catalog owns the durable set of products and their nested model/color
// stock data.
type Catalog interface {
	// List returns every product in insertion order.
	List(ctx context.Context) ([]*domain.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	// Append adds a product, assigns its id and persists the catalog.
	Append(ctx context.Context, product *domain.Product) (uuid.UUID, error)
	Update(ctx context.Context, id uuid.UUID, product *domain.Product) error
	Remove(ctx context.Context, id uuid.UUID) error
	// Reload discards in-memory state and re-reads the persisted catalog.
	Reload(ctx context.Context) error
}

// Ledger owns the append-only sequence of order/refund records. Entries
// are never edited or reordered.
type Ledger interface {
	List(ctx context.Context) ([]*domain.OrderRecord, error)
	Append(ctx context.Context, record *domain.OrderRecord) error
}

// Performance owns the append-only log of performance snapshots.
type Performance interface {
	List(ctx context.Context) ([]*domain.PerformanceSnapshot, error)
	Append(ctx context.Context, snapshot *domain.PerformanceSnapshot) error
}

// Repositories bundles all repository implementations
type Repositories struct {
	Catalog     Catalog
	Ledger      Ledger
	Performance Performance
}
