package services

import (
	"testing"
	"time"

	"github.com/fernandoludvig/finance-api/internal/config"
	"github.com/fernandoludvig/finance-api/internal/repository/memory"
)

const testSecret = "test-secret"

func testConfig() *config.Config {
	return &config.Config{
		Env:          config.EnvDevelopment,
		Storage:      config.StorageMemory,
		JWTSecret:    testSecret,
		JWTExpiresIn: time.Hour,
		AdminEmails:  "root@example.com",
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func ptr[T any](v T) *T { return &v }

type fixture struct {
	store        *memory.Store
	auth         *AuthService
	users        *UserService
	products     *ProductService
	categories   *CategoryService
	budgets      *BudgetService
	transactions *TransactionService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := testConfig()
	store := memory.NewStore()

	f := &fixture{
		store:      store,
		auth:       NewAuthService(store.Users, cfg),
		users:      NewUserService(store.Users, cfg),
		products:   NewProductService(store.Products),
		categories: NewCategoryService(store.Categories),
		budgets:    NewBudgetService(store.Budgets, store.Categories),
	}
	f.transactions = NewTransactionService(store.Transactions, f.budgets)
	return f
}
