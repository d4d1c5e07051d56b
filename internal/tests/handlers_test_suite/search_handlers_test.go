package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	api "github.com/rogerio-castellano/ledger-search/internal/http"
	handler "github.com/rogerio-castellano/ledger-search/internal/http/handlers"
	"github.com/rogerio-castellano/ledger-search/internal/models"
	"github.com/rogerio-castellano/ledger-search/internal/search"
)

func TestSearchTransactionsHandler(t *testing.T) {
	r := api.NewRouter()

	t.Run("Rejects a request without a token", func(t *testing.T) {
		t.Cleanup(clearSearchState)

		w := doSearch(r, "", "")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 Unauthorized, got %d", w.Code)
		}
	})

	t.Run("Returns the caller's recent transactions", func(t *testing.T) {
		t.Cleanup(clearSearchState)
		seedTransaction(1, 1, 10, "25.00", models.StatusCompleted, testNow().AddDate(0, 0, -2))
		seedTransaction(2, 1, 10, "75.00", models.StatusPending, testNow().AddDate(0, 0, -1))
		seedTransaction(3, 2, 20, "10.00", models.StatusCompleted, testNow().AddDate(0, 0, -1))

		w := doSearch(r, regularToken, "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d (%s)", w.Code, w.Body.String())
		}

		var resp search.SearchResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.TotalCount != 2 {
			t.Errorf("expected the caller's 2 rows, got %d", resp.TotalCount)
		}
		if len(resp.Results) != 2 || resp.Results[0].ID != 2 {
			t.Errorf("expected newest-first ordering, got %+v", resp.Results)
		}
	})

	t.Run("Applies amount and status filters from the query string", func(t *testing.T) {
		t.Cleanup(clearSearchState)
		seedTransaction(1, 1, 10, "25.00", models.StatusCompleted, testNow().AddDate(0, 0, -2))
		seedTransaction(2, 1, 10, "75.00", models.StatusPending, testNow().AddDate(0, 0, -1))

		w := doSearch(r, regularToken, "exactAmount=25.00&statusIds=2")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}

		var resp search.SearchResponse
		json.NewDecoder(w.Body).Decode(&resp)
		if resp.TotalCount != 1 || resp.Results[0].ID != 1 {
			t.Errorf("expected only the filtered row, got %+v", resp.Results)
		}
	})

	t.Run("Collects field errors as a 400", func(t *testing.T) {
		t.Cleanup(clearSearchState)

		w := doSearch(r, regularToken, "minAmount=-5&fromDate=notadate&typeIds=1,x")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 Bad Request, got %d", w.Code)
		}

		var errs []handler.SearchValidationError
		if err := json.NewDecoder(w.Body).Decode(&errs); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if len(errs) != 3 {
			t.Errorf("expected 3 field errors, got %d: %+v", len(errs), errs)
		}
	})

	t.Run("Rejects a span beyond the caller's tier as a 422", func(t *testing.T) {
		t.Cleanup(clearSearchState)

		from := testNow().AddDate(0, 0, -120).Format("2006-01-02T15:04:05Z")
		to := testNow().Format("2006-01-02T15:04:05Z")
		w := doSearch(r, regularToken, "fromDate="+from+"&toDate="+to)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422 Unprocessable Entity, got %d (%s)", w.Code, w.Body.String())
		}
	})

	t.Run("Queues a wide search and exposes the job", func(t *testing.T) {
		t.Cleanup(clearSearchState)

		from := testNow().AddDate(0, 0, -200).Format("2006-01-02T15:04:05Z")
		to := testNow().Format("2006-01-02T15:04:05Z")
		w := doSearch(r, premiumToken, "fromDate="+from+"&toDate="+to)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d (%s)", w.Code, w.Body.String())
		}

		var resp search.SearchResponse
		json.NewDecoder(w.Body).Decode(&resp)
		if resp.Metadata.JobID == uuid.Nil {
			t.Fatal("expected a job id on the async response")
		}
		if len(resp.Results) != 0 {
			t.Errorf("expected an empty page, got %d rows", len(resp.Results))
		}

		jw := doJobLookup(r, premiumToken, resp.Metadata.JobID.String())
		if jw.Code != http.StatusOK {
			t.Fatalf("expected 200 OK on job lookup, got %d", jw.Code)
		}
		var jobResp search.SearchResponse
		json.NewDecoder(jw.Body).Decode(&jobResp)
		if jobResp.Metadata.JobID != resp.Metadata.JobID {
			t.Error("job lookup must echo the job id while pending")
		}
	})
}

func TestSearchJobHandler(t *testing.T) {
	r := api.NewRouter()

	t.Run("Rejects a malformed job id", func(t *testing.T) {
		t.Cleanup(clearSearchState)

		w := doJobLookup(r, regularToken, "not-a-uuid")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 Bad Request, got %d", w.Code)
		}
	})

	t.Run("Unknown job id is a 404", func(t *testing.T) {
		t.Cleanup(clearSearchState)

		w := doJobLookup(r, regularToken, uuid.NewString())
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404 Not Found, got %d", w.Code)
		}
	})

	t.Run("Completed job returns the stored result", func(t *testing.T) {
		t.Cleanup(clearSearchState)

		stored := search.SearchResponse{TotalCount: 12, Results: []search.TransactionResponse{}}
		payload, _ := json.Marshal(stored)
		completedAt := testNow()
		job, err := jobRepo.Create(models.SearchJob{
			AccountID:   1,
			RequestJSON: `{"user_id":1}`,
			ResultJSON:  string(payload),
			Status:      models.JobStatusCompleted,
			CompletedAt: &completedAt,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		w := doJobLookup(r, regularToken, job.ID.String())
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}

		var resp search.SearchResponse
		json.NewDecoder(w.Body).Decode(&resp)
		if resp.TotalCount != 12 {
			t.Errorf("expected the stored result, got total %d", resp.TotalCount)
		}
	})
}
