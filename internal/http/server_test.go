package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
	"fintrack/internal/services"
	"fintrack/internal/storage/memory"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	svc := services.NewLedgerService(ledger.NewBook(), memory.New())
	s := NewServer(":0", svc, 30*time.Second)
	t.Cleanup(func() { s.Close() })
	return s
}

func do(s *Server, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func addTransaction(t *testing.T, s *Server, desc, amount, typ, cat, date string) core.Transaction {
	t.Helper()
	rec := do(s, http.MethodPost, "/api/transactions", map[string]string{
		"description": desc,
		"amount":      amount,
		"type":        typ,
		"category":    cat,
		"date":        date,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var tx core.Transaction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tx))
	return tx
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t)
	assert.Equal(t, http.StatusOK, do(s, http.MethodGet, "/healthz", nil).Code)
	assert.Equal(t, http.StatusOK, do(s, http.MethodGet, "/readyz", nil).Code)
}

func TestCreateTransaction(t *testing.T) {
	s := newTestServer(t)

	tx := addTransaction(t, s, "Coffee", "4.50", "expense", "food", "2024-01-10")
	assert.NotEmpty(t, tx.ID)
	assert.Equal(t, int64(450), tx.Amount.Cents)
	assert.Equal(t, core.Expense, tx.Type)
	assert.Equal(t, "2024-01-10", tx.Date.ISO())
}

func TestCreateAcceptsNumericAmountAndComma(t *testing.T) {
	s := newTestServer(t)

	rec := do(s, http.MethodPost, "/api/transactions", map[string]any{
		"description": "Groceries",
		"amount":      78.5,
		"type":        "expense",
		"category":    "food",
		"date":        "2024-02-01",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	tx := addTransaction(t, s, "Taxi", "12,30", "expense", "transport", "2024-02-02")
	assert.Equal(t, int64(1230), tx.Amount.Cents)
}

func TestCreateRejections(t *testing.T) {
	s := newTestServer(t)

	cases := []struct {
		name string
		body map[string]string
		code int
	}{
		{"zero amount", map[string]string{"description": "x", "amount": "0", "type": "expense", "category": "food", "date": "2024-01-01"}, http.StatusUnprocessableEntity},
		{"negative amount", map[string]string{"description": "x", "amount": "-5", "type": "expense", "category": "food", "date": "2024-01-01"}, http.StatusUnprocessableEntity},
		{"bad type", map[string]string{"description": "x", "amount": "5", "type": "transfer", "category": "food", "date": "2024-01-01"}, http.StatusUnprocessableEntity},
		{"blank description", map[string]string{"description": "  ", "amount": "5", "type": "expense", "category": "food", "date": "2024-01-01"}, http.StatusUnprocessableEntity},
		{"bad date", map[string]string{"description": "x", "amount": "5", "type": "expense", "category": "food", "date": "01/02/2024"}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(s, http.MethodPost, "/api/transactions", tc.body)
			assert.Equal(t, tc.code, rec.Code, rec.Body.String())
		})
	}
}

func TestListWithFilter(t *testing.T) {
	s := newTestServer(t)

	addTransaction(t, s, "Salary", "2500", "income", "salary", "2024-01-01")
	addTransaction(t, s, "Coffee", "4.50", "expense", "food", "2024-01-10")
	addTransaction(t, s, "Cinema", "12", "expense", "entertainment", "2024-03-01")

	list := func(query string) []core.Transaction {
		rec := do(s, http.MethodGet, "/api/transactions"+query, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var txs []core.Transaction
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &txs))
		return txs
	}

	assert.Len(t, list(""), 3)
	assert.Len(t, list("?type=expense"), 2)
	assert.Len(t, list("?category=food"), 1)
	assert.Len(t, list("?from=2024-01-05&to=2024-01-31"), 1)
	assert.Len(t, list("?q="+url.QueryEscape("coff")), 1)

	rec := do(s, http.MethodGet, "/api/transactions?from=garbage", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateTransaction(t *testing.T) {
	s := newTestServer(t)

	tx := addTransaction(t, s, "Lunch", "15", "expense", "food", "2024-01-05")

	rec := do(s, http.MethodPut, "/api/transactions/"+tx.ID, map[string]string{
		"description": "Dinner",
		"amount":      "45",
		"type":        "expense",
		"category":    "food",
		"date":        "2024-01-05",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated core.Transaction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, tx.ID, updated.ID)
	assert.Equal(t, "Dinner", updated.Description)
	assert.Equal(t, int64(4500), updated.Amount.Cents)
}

func TestUpdateUnknownID(t *testing.T) {
	s := newTestServer(t)
	rec := do(s, http.MethodPut, "/api/transactions/missing", map[string]string{
		"description": "x", "amount": "5", "type": "expense", "category": "food", "date": "2024-01-01",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteTransaction(t *testing.T) {
	s := newTestServer(t)

	tx := addTransaction(t, s, "Coffee", "4.50", "expense", "food", "2024-01-10")

	rec := do(s, http.MethodDelete, "/api/transactions/"+tx.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(s, http.MethodDelete, "/api/transactions/"+tx.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClearTransactions(t *testing.T) {
	s := newTestServer(t)

	// Clearing an empty ledger is refused.
	rec := do(s, http.MethodDelete, "/api/transactions", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	addTransaction(t, s, "Coffee", "4.50", "expense", "food", "2024-01-10")

	rec = do(s, http.MethodDelete, "/api/transactions", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(s, http.MethodGet, "/api/transactions", nil)
	var txs []core.Transaction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &txs))
	assert.Empty(t, txs)
}

func TestSortEndpoint(t *testing.T) {
	s := newTestServer(t)

	addTransaction(t, s, "cheap", "1", "expense", "food", "2024-01-01")
	addTransaction(t, s, "pricey", "99", "expense", "food", "2024-01-02")

	rec := do(s, http.MethodPost, "/api/sort/amount", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "amount", resp["criterion"])
	assert.Equal(t, "asc", resp["direction"])

	rec = do(s, http.MethodGet, "/api/transactions", nil)
	var txs []core.Transaction
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &txs))
	require.Len(t, txs, 2)
	assert.Equal(t, "cheap", txs[0].Description)

	rec = do(s, http.MethodPost, "/api/sort/category", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSummaryEndpointAndInvalidation(t *testing.T) {
	s := newTestServer(t)

	addTransaction(t, s, "Salary", "1000", "income", "salary", "2024-01-01")

	summary := func() services.Summary {
		rec := do(s, http.MethodGet, "/api/summary", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var sum services.Summary
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sum))
		return sum
	}

	assert.Equal(t, int64(100000), summary().TotalIncome)

	// A mutation invalidates the memoized summary.
	addTransaction(t, s, "Bonus", "500", "income", "salary", "2024-01-02")
	assert.Equal(t, int64(150000), summary().TotalIncome)
}

func TestCategoriesEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := do(s, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []struct {
		Key  string `json:"key"`
		Icon string `json:"icon"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 8)
	assert.Equal(t, "salary", entries[0].Key)
	assert.Equal(t, "money-check-dollar", entries[0].Icon)
	assert.Equal(t, "other", entries[7].Key)
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t)

	rec := do(s, http.MethodPatch, "/api/transactions", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "GET, POST, DELETE", rec.Header().Get("Allow"))

	rec = do(s, http.MethodGet, "/api/sort/date", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestSecurityHeaders(t *testing.T) {
	s := newTestServer(t)
	rec := do(s, http.MethodGet, "/healthz", nil)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("Content-Security-Policy"))
}

func TestMissingTransactionID(t *testing.T) {
	s := newTestServer(t)
	rec := do(s, http.MethodDelete, "/api/transactions/a/b", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestParseFilterRejectsBadBounds(t *testing.T) {
	for _, q := range []string{"from=2024-13-01", "to=yesterday"} {
		values, err := url.ParseQuery(q)
		require.NoError(t, err)
		if _, err := parseFilter(values); err == nil {
			t.Errorf("expected error for %q", q)
		}
	}
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "hello", sanitizeInput("  hello\x00\x07  "))
	assert.Equal(t, "a\tb", sanitizeInput("a\tb"))
}

func TestRateLimitExceeded(t *testing.T) {
	s := newTestServer(t)

	var limited bool
	for i := 0; i < 200; i++ {
		rec := do(s, http.MethodGet, "/healthz", nil)
		if rec.Code == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	assert.True(t, limited, "expected a 429 within 200 requests")
}
