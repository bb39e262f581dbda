package validators

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseQueryMonthDefaults(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

	req := httptest.NewRequest("GET", "/stats", nil)
	year, month, err := ParseQueryMonth(req, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if year != 2025 || month != time.June {
		t.Fatalf("expected 2025-06 got %d-%d", year, month)
	}
}

func TestParseQueryMonthExplicit(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

	req := httptest.NewRequest("GET", "/stats?year=2024&month=2", nil)
	year, month, err := ParseQueryMonth(req, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if year != 2024 || month != time.February {
		t.Fatalf("expected 2024-02 got %d-%d", year, month)
	}
}

func TestParseQueryMonthRejectsOutOfRange(t *testing.T) {
	now := time.Now()
	for _, query := range []string{"month=0", "month=13", "year=1999", "year=abc"} {
		req := httptest.NewRequest("GET", "/stats?"+query, nil)
		if _, _, err := ParseQueryMonth(req, now); err == nil {
			t.Fatalf("%s: expected error", query)
		}
	}
}
