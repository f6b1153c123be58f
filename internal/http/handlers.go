package http

import (
	"log/slog"
	"net/http"
	"strings"

	"fintrack/internal/category"
	applog "fintrack/internal/log"
	"fintrack/internal/view"
)

// handleTransactions serves the collection endpoint: list (with filter),
// add, and clear-all.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listTransactions(w, r)
	case http.MethodPost:
		s.createTransaction(w, r)
	case http.MethodDelete:
		s.clearTransactions(w, r)
	default:
		methodNotAllowed(w, "GET, POST, DELETE")
	}
}

// handleTransactionByID serves update and delete of one transaction.
func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "missing transaction id")
		return
	}

	switch r.Method {
	case http.MethodPut:
		s.updateTransaction(w, r, id)
	case http.MethodDelete:
		s.deleteTransaction(w, r, id)
	default:
		methodNotAllowed(w, "PUT, DELETE")
	}
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.svc.List(f))
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	in, err := parseTransactionRequest(r)
	if err != nil {
		writeRequestError(w, err)
		return
	}

	tx, err := s.svc.Add(r.Context(), in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.invalidateSummary()

	slog.InfoContext(r.Context(), "Transaction added",
		applog.FieldTxID, tx.ID,
		applog.FieldTxType, tx.Type,
		applog.FieldCategory, tx.Category,
		applog.FieldAmountCents, tx.Amount.Cents,
		applog.FieldComponent, applog.ComponentHTTP)

	writeJSON(w, http.StatusCreated, tx)
}

func (s *Server) updateTransaction(w http.ResponseWriter, r *http.Request, id string) {
	in, err := parseTransactionRequest(r)
	if err != nil {
		writeRequestError(w, err)
		return
	}

	tx, err := s.svc.Update(r.Context(), id, in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.invalidateSummary()

	slog.InfoContext(r.Context(), "Transaction updated",
		applog.FieldTxID, tx.ID,
		applog.FieldComponent, applog.ComponentHTTP)

	writeJSON(w, http.StatusOK, tx)
}

func (s *Server) deleteTransaction(w http.ResponseWriter, r *http.Request, id string) {
	if err := s.svc.Remove(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	s.invalidateSummary()

	slog.InfoContext(r.Context(), "Transaction deleted",
		applog.FieldTxID, id,
		applog.FieldComponent, applog.ComponentHTTP)

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) clearTransactions(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Clear(r.Context()); err != nil {
		writeDomainError(w, err)
		return
	}
	s.invalidateSummary()

	slog.InfoContext(r.Context(), "Ledger cleared",
		applog.FieldComponent, applog.ComponentHTTP)
	w.WriteHeader(http.StatusNoContent)
}

// handleSort toggles the stored order for the criterion in the path and
// reports the direction now in effect.
func (s *Server) handleSort(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}

	criterion := strings.TrimPrefix(r.URL.Path, "/api/sort/")
	dir, err := s.svc.SortBy(view.Criterion(criterion))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"criterion": criterion,
		"direction": string(dir),
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	if cached, ok := s.summaryCache.Get(summaryCacheKey); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	summary := s.svc.Summary()
	s.summaryCache.Set(summaryCacheKey, summary)
	writeJSON(w, http.StatusOK, summary)
}

type categoryEntry struct {
	Key string `json:"key"`
	category.Meta
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	entries := make([]categoryEntry, 0, len(category.Keys()))
	for _, key := range category.Keys() {
		entries = append(entries, categoryEntry{Key: key, Meta: category.Lookup(key)})
	}
	writeJSON(w, http.StatusOK, entries)
}
