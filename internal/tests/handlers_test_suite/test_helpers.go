package handlers_test_suite

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/rogerio-castellano/ledger-search/internal/auth"
	"github.com/rogerio-castellano/ledger-search/internal/cache"
	handler "github.com/rogerio-castellano/ledger-search/internal/http/handlers"
	rl "github.com/rogerio-castellano/ledger-search/internal/http/rate_limiter"
	"github.com/rogerio-castellano/ledger-search/internal/jobs/inmemory"
	"github.com/rogerio-castellano/ledger-search/internal/models"
	"github.com/rogerio-castellano/ledger-search/internal/repo"
	"github.com/rogerio-castellano/ledger-search/internal/search"
	"github.com/rogerio-castellano/ledger-search/internal/tier"
	"github.com/shopspring/decimal"
)

var (
	regularToken string
	premiumToken string

	transactionRepo *repo.InMemoryTransactionRepository
	jobRepo         *repo.InMemoryJobRepository
	userRepo        *repo.InMemoryUserRepository
	resultCache     *cache.InMemoryCache
	queue           *inmemory.Queue
)

func testNow() time.Time {
	return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
}

func init() {
	setupTestRepos()

	var err error
	regularToken, err = generateToken(1)
	if err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
	premiumToken, err = generateToken(2)
	if err != nil {
		panic(fmt.Sprintf("error generating token: %v", err))
	}
}

func setupTestRepos() {
	transactionRepo = repo.NewInMemoryTransactionRepository()
	jobRepo = repo.NewInMemoryJobRepository()
	userRepo = repo.NewInMemoryUserRepository()
	resultCache = cache.NewInMemoryCache()
	queue = inmemory.NewQueue(16)

	userRepo.AddUser(models.User{ID: 1, FullName: "Ada Regular", Email: "ada@example.com", TierName: models.TierRegular})
	userRepo.AddUser(models.User{ID: 2, FullName: "Pat Premium", Email: "pat@example.com", TierName: models.TierPremium})

	svc := search.NewService(transactionRepo, jobRepo, tier.NewResolver(userRepo), resultCache, queue,
		tier.DefaultPolicy(), search.DefaultLimits())
	svc.SetClock(testNow)
	handler.SetSearchService(svc)
}

// clearSearchState resets stores that bleed between subtests: cached
// results, rate-limit buckets, seeded rows, and queued jobs.
func clearSearchState() {
	transactionRepo.Clear()
	jobRepo.Clear()
	resultCache.Clear()
	rl.CleanupAllClients()
}

func generateToken(userID int) (string, error) {
	user, err := userRepo.GetByID(userID)
	if err != nil {
		return "", err
	}
	return auth.GenerateToken(user)
}

func seedTransaction(id, userID, accountID int, amount string, statusID int, createdAt time.Time) {
	transactionRepo.Add(models.Transaction{
		ID:        id,
		UserID:    userID,
		AccountID: accountID,
		Amount:    decimal.RequireFromString(amount),
		TypeID:    1,
		StatusID:  statusID,
		CreatedAt: createdAt,
	})
}

func doSearch(r http.Handler, token, rawQuery string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/transactions/search?"+rawQuery, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doJobLookup(r http.Handler, token, jobID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/transactions/search/job/"+jobID, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
