package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/services"
	"fintrack/internal/view"
)

// transactionRequest is the add/update payload. The amount travels as a
// decimal string ("12.34" or "12,34") or bare number and is parsed to
// cents; the date is an ISO year-month-day string.
type transactionRequest struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Date        string `json:"date"`
}

func (tr *transactionRequest) UnmarshalJSON(data []byte) error {
	// Accept amount as either a JSON string or a bare number.
	type alias struct {
		Description string          `json:"description"`
		Amount      json.RawMessage `json:"amount"`
		Type        string          `json:"type"`
		Category    string          `json:"category"`
		Date        string          `json:"date"`
	}
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	tr.Description = a.Description
	tr.Type = a.Type
	tr.Category = a.Category
	tr.Date = a.Date
	tr.Amount = strings.Trim(string(a.Amount), `"`)
	return nil
}

// parseTransactionRequest decodes and validates the payload into
// service input. Validation failures come back as the domain's
// sentinel errors so the response mapping stays uniform.
func parseTransactionRequest(r *http.Request) (services.TransactionInput, error) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return services.TransactionInput{}, fmt.Errorf("decode request body: %w", err)
	}

	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		return services.TransactionInput{}, err
	}

	date, err := core.ParseDate(req.Date)
	if err != nil {
		return services.TransactionInput{}, fmt.Errorf("parse date %q: %w", req.Date, err)
	}

	return services.TransactionInput{
		Description: sanitizeInput(req.Description),
		Amount:      core.Money{Cents: cents},
		Type:        core.TransactionType(strings.ToLower(strings.TrimSpace(req.Type))),
		Category:    sanitizeInput(req.Category),
		Date:        date,
	}, nil
}

// parseFilter builds the view filter from list query parameters. Bad
// date bounds are reported rather than silently dropped.
func parseFilter(query url.Values) (view.Filter, error) {
	f := view.Filter{
		Type:     strings.TrimSpace(query.Get("type")),
		Category: strings.TrimSpace(query.Get("category")),
		Search:   query.Get("q"),
	}

	if v := strings.TrimSpace(query.Get("from")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return view.Filter{}, fmt.Errorf("parse 'from' date %q: %w", v, err)
		}
		f.From = d
	}
	if v := strings.TrimSpace(query.Get("to")); v != "" {
		d, err := core.ParseDate(v)
		if err != nil {
			return view.Filter{}, fmt.Errorf("parse 'to' date %q: %w", v, err)
		}
		f.To = d
	}

	return f, nil
}

// sanitizeInput trims whitespace and strips control characters.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
