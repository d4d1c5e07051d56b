package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rogerio-castellano/ledger-search/internal/cache"
	"github.com/rogerio-castellano/ledger-search/internal/jobs"
	"github.com/rogerio-castellano/ledger-search/internal/models"
	"github.com/rogerio-castellano/ledger-search/internal/query"
	"github.com/rogerio-castellano/ledger-search/internal/repo"
	"github.com/rogerio-castellano/ledger-search/internal/tier"
	"github.com/shopspring/decimal"
)

// Limits carries the externally supplied policy constants consumed by the
// orchestrator.
type Limits struct {
	// AsyncThreshold is the resolved span beyond which a search is
	// executed as a background job.
	AsyncThreshold time.Duration
	// FulltextWindow bounds description searches (see query package).
	FulltextWindow time.Duration
	// HardResultCap bounds worst-case result materialization.
	HardResultCap int
	// CacheTTL is the lifetime of cached responses.
	CacheTTL time.Duration
	// StatusOrder overrides the status sort ordering when non-empty.
	StatusOrder map[int]int
}

// DefaultLimits returns the stock policy constants.
func DefaultLimits() Limits {
	return Limits{
		AsyncThreshold: 180 * 24 * time.Hour,
		FulltextWindow: query.DefaultFulltextWindow,
		HardResultCap:  10000,
		CacheTTL:       time.Second,
	}
}

// Service orchestrates transaction searches: tier resolution,
// normalization, the sync/async branch, cache-aside reads and writes, and
// job retrieval.
type Service struct {
	transactions repo.TransactionRepository
	searchJobs   repo.JobRepository
	tiers        *tier.Resolver
	results      cache.ResultCache
	publisher    jobs.Publisher
	policy       tier.Policy
	limits       Limits
	now          func() time.Time
}

func NewService(
	transactions repo.TransactionRepository,
	searchJobs repo.JobRepository,
	tiers *tier.Resolver,
	results cache.ResultCache,
	publisher jobs.Publisher,
	policy tier.Policy,
	limits Limits,
) *Service {
	defaults := DefaultLimits()
	if limits.AsyncThreshold <= 0 {
		limits.AsyncThreshold = defaults.AsyncThreshold
	}
	if limits.FulltextWindow <= 0 {
		limits.FulltextWindow = defaults.FulltextWindow
	}
	if limits.HardResultCap <= 0 {
		limits.HardResultCap = defaults.HardResultCap
	}
	if limits.CacheTTL <= 0 {
		limits.CacheTTL = defaults.CacheTTL
	}
	return &Service{
		transactions: transactions,
		searchJobs:   searchJobs,
		tiers:        tiers,
		results:      results,
		publisher:    publisher,
		policy:       policy,
		limits:       limits,
		now:          time.Now,
	}
}

// SetClock overrides the service clock, letting tests pin "now".
func (s *Service) SetClock(now func() time.Time) { s.now = now }

// Search runs one orchestrated search. Wide date windows are deferred to a
// background job; narrow ones run inline behind the per-user cache.
func (s *Service) Search(ctx context.Context, req SearchRequest) (SearchResponse, error) {
	started := time.Now()

	isAdmin, err := s.tiers.IsAdmin(req.UserID)
	if err != nil {
		return SearchResponse{}, err
	}
	userTier, err := s.tiers.GetTier(req.UserID)
	if err != nil {
		return SearchResponse{}, err
	}
	sharedAccounts, err := s.tiers.GetSharedAccountIDs(req.UserID)
	if err != nil {
		return SearchResponse{}, err
	}

	req, err = Normalize(req, userTier, s.policy, s.now())
	if err != nil {
		return SearchResponse{}, err
	}

	// Wide windows never touch the cache or the dataset inline.
	if req.ToDate.Sub(*req.FromDate) > s.limits.AsyncThreshold {
		jobID, err := s.enqueueAsyncSearch(ctx, req)
		if err != nil {
			return SearchResponse{}, err
		}
		return emptyResponse(jobID, "Long-running search queued"), nil
	}

	cacheKey := cacheKeyFor(req.UserID)
	if cached, err := s.results.Get(ctx, cacheKey); err == nil {
		var resp SearchResponse
		if err := json.Unmarshal([]byte(cached), &resp); err == nil {
			return resp, nil
		}
		log.Printf("discarding undecodable cache entry for %s", cacheKey)
	}

	resp, err := s.execute(req, isAdmin, sharedAccounts)
	if err != nil {
		return SearchResponse{}, err
	}
	resp.Metadata.QueryTime = time.Since(started)

	if payload, err := json.Marshal(resp); err == nil {
		if err := s.results.Set(ctx, cacheKey, string(payload), s.limits.CacheTTL); err != nil {
			log.Printf("failed to cache search response for %s: %v", cacheKey, err)
		}
	}

	return resp, nil
}

// ExecuteQueued is the worker-side entry point: the same search path with
// the sync/async branch and the cache bypassed.
func (s *Service) ExecuteQueued(ctx context.Context, req SearchRequest) (SearchResponse, error) {
	started := time.Now()

	isAdmin, err := s.tiers.IsAdmin(req.UserID)
	if err != nil {
		return SearchResponse{}, err
	}
	userTier, err := s.tiers.GetTier(req.UserID)
	if err != nil {
		return SearchResponse{}, err
	}
	sharedAccounts, err := s.tiers.GetSharedAccountIDs(req.UserID)
	if err != nil {
		return SearchResponse{}, err
	}

	req, err = Normalize(req, userTier, s.policy, s.now())
	if err != nil {
		return SearchResponse{}, err
	}

	resp, err := s.execute(req, isAdmin, sharedAccounts)
	if err != nil {
		return SearchResponse{}, err
	}
	resp.Metadata.QueryTime = time.Since(started)
	return resp, nil
}

// Job retrieves the outcome of an asynchronous search. A not-yet-completed
// job is a normal response, not an error.
func (s *Service) Job(jobID uuid.UUID) (SearchResponse, error) {
	job, err := s.searchJobs.GetByID(jobID)
	if err != nil {
		return SearchResponse{}, err
	}

	if job.Status != models.JobStatusCompleted {
		return emptyResponse(jobID, fmt.Sprintf("Job %s not completed", jobID)), nil
	}

	var resp SearchResponse
	if err := json.Unmarshal([]byte(job.ResultJSON), &resp); err != nil {
		return SearchResponse{}, fmt.Errorf("failed to decode stored job result: %w", err)
	}
	return resp, nil
}

// execute runs the filter chain: count over the unpaginated set, then the
// sorted page with tag names resolved.
func (s *Service) execute(req SearchRequest, isAdmin bool, sharedAccounts []int) (SearchResponse, error) {
	q := query.New().
		WithFulltextWindow(s.limits.FulltextWindow).
		WithStatusOrder(s.limits.StatusOrder).
		ForUser(req.UserID, isAdmin, sharedAccounts).
		WithDateRange(req.FromDate, req.ToDate).
		WithAmountRange(req.MinAmount, req.MaxAmount, req.ExactAmount).
		WithTypes(req.TypeIDs).
		WithStatuses(req.StatusIDs).
		WithPaymentMethods(req.PaymentMethodIDs).
		WithTags(req.TagIDs).
		SearchRecipient(req.Recipient).
		SearchDescription(req.Description, req.FromDate, s.now())

	if err := q.Err(); err != nil {
		return SearchResponse{}, &PolicyError{Reason: err.Error()}
	}

	totalCount, err := s.transactions.Count(q)
	if err != nil {
		return SearchResponse{}, err
	}

	paged := q.
		SortBy(req.SortBy, req.SortDirection).
		Paginate(req.Page, req.PageSize).
		LimitResults(s.limits.HardResultCap)

	transactions, err := s.transactions.Fetch(paged)
	if err != nil {
		return SearchResponse{}, err
	}

	results := make([]TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		results = append(results, toTransactionResponse(t))
	}

	return SearchResponse{
		Results:    results,
		TotalCount: totalCount,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: int(math.Ceil(float64(totalCount) / float64(req.PageSize))),
		HasMore:    req.Page*req.PageSize < totalCount,
		Metadata: SearchInfo{
			AppliedFilters: appliedFilters(req),
		},
	}, nil
}

// enqueueAsyncSearch deduplicates against queued jobs for the same account
// and serialized request, then creates and publishes a new job. The lookup
// and the insert are separate operations; see repo.JobRepository.
func (s *Service) enqueueAsyncSearch(ctx context.Context, req SearchRequest) (uuid.UUID, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to serialize search request: %w", err)
	}
	requestJSON := string(payload)

	if existing, err := s.searchJobs.FindQueued(req.UserID, requestJSON); err == nil {
		return existing.ID, nil
	}

	job, err := s.searchJobs.Create(models.SearchJob{
		AccountID:   req.UserID,
		RequestJSON: requestJSON,
		Status:      models.JobStatusQueued,
		CreatedAt:   s.now().UTC(),
	})
	if err != nil {
		return uuid.Nil, err
	}

	err = s.publisher.PublishSearchJob(ctx, jobs.SearchJobMessage{
		JobID:       job.ID,
		AccountID:   job.AccountID,
		RequestJSON: job.RequestJSON,
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to publish search job: %w", err)
	}

	return job.ID, nil
}

func cacheKeyFor(userID int) string {
	return fmt.Sprintf("user:%d", userID)
}

// appliedFilters is a deterministic human-readable summary of the resolved
// filters, for observability only.
func appliedFilters(req SearchRequest) string {
	return fmt.Sprintf("FromDate=%s, ToDate=%s, Types=%s, AmountRange=%s-%s, ExactAmount=%s",
		formatDate(req.FromDate), formatDate(req.ToDate), joinIDs(req.TypeIDs),
		formatAmount(req.MinAmount), formatAmount(req.MaxAmount), formatAmount(req.ExactAmount))
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func formatAmount(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
