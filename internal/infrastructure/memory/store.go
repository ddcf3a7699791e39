// Package memory is an in-process implementation of the account store,
// catalog store and favorites ledger. Units of work are serialized, which
// gives the same check-then-act guarantees the postgres transactions do.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/catalog-favorites/internal/domain/entity"
	"github.com/oksasatya/catalog-favorites/internal/domain/repository"
)

type favoriteKey struct {
	userID    string
	productID string
}

// Store holds all tables. The zero value is not usable; call NewStore.
type Store struct {
	txMu sync.Mutex

	mu        sync.RWMutex
	users     map[string]entity.User
	products  map[string]entity.Product
	favorites map[favoriteKey]time.Time

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:     map[string]entity.User{},
		products:  map[string]entity.Product{},
		favorites: map[favoriteKey]time.Time{},
		now:       time.Now,
	}
}

func newID() string { return uuid.NewString() }

type txKey struct{}

// TxManager serializes units of work over a Store.
type TxManager struct {
	store *Store
}

func (s *Store) TxManager() *TxManager { return &TxManager{store: s} }

// WithinTx runs fn while holding the store's unit-of-work lock. Nested calls
// reuse the held lock. Writes are not undone when fn fails; every caller in
// this repo fails before its first write.
func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	m.store.txMu.Lock()
	defer m.store.txMu.Unlock()
	return fn(context.WithValue(ctx, txKey{}, struct{}{}))
}

var _ repository.TxManager = (*TxManager)(nil)
