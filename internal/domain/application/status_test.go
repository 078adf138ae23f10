package application_test

import (
	"testing"

	"cvtrack/internal/domain/application"
)

func TestParseStatus_ValidValues(t *testing.T) {
	for _, status := range application.Statuses() {
		got, err := application.ParseStatus(string(status))
		if err != nil {
			t.Errorf("ParseStatus(%q) returned unexpected error: %v", status, err)
		}
		if got != status {
			t.Errorf("ParseStatus(%q) = %q, want %q", status, got, status)
		}
	}
}

func TestParseStatus_InvalidValue(t *testing.T) {
	if _, err := application.ParseStatus("in_review"); err == nil {
		t.Error("ParseStatus(\"in_review\") expected error, got nil")
	}
}

func TestParseStatus_EmptyString(t *testing.T) {
	if _, err := application.ParseStatus(""); err == nil {
		t.Error("ParseStatus(\"\") expected error, got nil")
	}
}

func TestStatusCatalogSize(t *testing.T) {
	if got := len(application.Statuses()); got != 9 {
		t.Errorf("expected 9 statuses in the catalog, got %d", got)
	}
}

func TestIsTerminal(t *testing.T) {
	terminal := map[application.Status]bool{
		application.StatusRejected:      true,
		application.StatusOfferDeclined: true,
		application.StatusHired:         true,
		application.StatusWithdrawn:     true,
	}
	for _, status := range application.Statuses() {
		if got := status.IsTerminal(); got != terminal[status] {
			t.Errorf("IsTerminal(%s) = %v, want %v", status, got, terminal[status])
		}
	}
}

func TestStatusLabels(t *testing.T) {
	for _, status := range application.Statuses() {
		if status.Label() == "" {
			t.Errorf("status %s has no label", status)
		}
	}
}
