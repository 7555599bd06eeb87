// Package memory provides in-process repositories with the same uniqueness
// and ownership rules as the MongoDB ones. Used by tests and STORAGE=memory.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/fernandoludvig/finance-api/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// table is a mutex-guarded map of documents keyed by ObjectID.
type table[T any] struct {
	mu   sync.RWMutex
	rows map[primitive.ObjectID]T
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[primitive.ObjectID]T)}
}

func (t *table[T]) find(match func(T) bool) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, row := range t.rows {
		if match(row) {
			return row, nil
		}
	}
	var zero T
	return zero, repository.ErrNotFound
}

func (t *table[T]) filter(match func(T) bool, less func(a, b T) bool) []T {
	t.mu.RLock()
	out := make([]T, 0, len(t.rows))
	for _, row := range t.rows {
		if match(row) {
			out = append(out, row)
		}
	}
	t.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// put inserts or replaces row under id. conflict reports whether another row
// already holds one of row's unique keys.
func (t *table[T]) put(id primitive.ObjectID, row T, mustExist bool, conflict func(existing T) bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; mustExist && !ok {
		return repository.ErrNotFound
	}
	for existingID, existing := range t.rows {
		if existingID != id && conflict(existing) {
			return repository.ErrDuplicate
		}
	}
	t.rows[id] = row
	return nil
}

func (t *table[T]) remove(id primitive.ObjectID, owned func(T) bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	row, ok := t.rows[id]
	if !ok || !owned(row) {
		return repository.ErrNotFound
	}
	delete(t.rows, id)
	return nil
}

func assignID(id *primitive.ObjectID) {
	if id.IsZero() {
		*id = primitive.NewObjectID()
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// Store bundles one repository per collection.
type Store struct {
	Users        *UserRepository
	Products     *ProductRepository
	Transactions *TransactionRepository
	Categories   *CategoryRepository
	Budgets      *BudgetRepository
}

func NewStore() *Store {
	return &Store{
		Users:        NewUserRepository(),
		Products:     NewProductRepository(),
		Transactions: NewTransactionRepository(),
		Categories:   NewCategoryRepository(),
		Budgets:      NewBudgetRepository(),
	}
}

// Ping always succeeds; it lets the store stand in for the database in
// health checks.
func (s *Store) Ping(context.Context) error {
	return nil
}
