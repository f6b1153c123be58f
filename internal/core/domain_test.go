package core

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestDateValidate(t *testing.T) {
	if err := NewDate(2024, 1, 15).Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (Date{Time: time.Time{}}).Validate(); err == nil {
		t.Fatalf("expected error for zero date")
	}
}

func TestDateBounds(t *testing.T) {
	a := NewDate(2024, 1, 1)
	b := NewDate(2024, 2, 1)

	if !b.OnOrAfter(a) || a.OnOrAfter(b) {
		t.Fatalf("OnOrAfter ordering wrong")
	}
	if !a.OnOrBefore(b) || b.OnOrBefore(a) {
		t.Fatalf("OnOrBefore ordering wrong")
	}
	// Bounds are inclusive.
	if !a.OnOrAfter(a) || !a.OnOrBefore(a) {
		t.Fatalf("bounds must be inclusive")
	}
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2024, 3, 9)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2024-03-09"` {
		t.Fatalf("expected ISO string, got %s", data)
	}

	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Fatalf("round trip mismatch: %v != %v", back, d)
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		ID:          "t1",
		Description: "Coffee",
		Amount:      Money{Cents: 500},
		Type:        Expense,
		Category:    "food",
		Date:        NewDate(2024, 1, 2),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name string
		mut  func(*Transaction)
		want error
	}{
		{"zero amount", func(tx *Transaction) { tx.Amount = Money{} }, ErrInvalidAmount},
		{"negative amount", func(tx *Transaction) { tx.Amount = Money{Cents: -5} }, ErrInvalidAmount},
		{"bad type", func(tx *Transaction) { tx.Type = "transfer" }, ErrInvalidType},
		{"blank description", func(tx *Transaction) { tx.Description = "   " }, ErrEmptyDescription},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tx := good
			tc.mut(&tx)
			if err := tx.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
