package validation

import (
	"strings"
	"testing"
)

func TestConfigValidatorRequireEither(t *testing.T) {
	tests := []struct {
		name      string
		graph     bool
		docSource bool
		expectErr bool
	}{
		{"neither set", false, false, true},
		{"flat file only", true, false, false},
		{"document source only", false, true, false},
		{"both set", true, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewConfigValidator("source").
				RequireEither("graph", tt.graph, "primaryKey", tt.docSource).
				Validate()
			if tt.expectErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfigValidatorRequireEitherNamesBothFields(t *testing.T) {
	err := NewConfigValidator("source").
		RequireEither("graph", false, "primaryKey", false).
		Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "graph") || !strings.Contains(err.Error(), "primaryKey") {
		t.Errorf("error %q must name both alternatives", err)
	}
}

func TestConfigValidatorNonNegative(t *testing.T) {
	if err := NewConfigValidator("c").NonNegative("maxDistance", -1).Validate(); err == nil {
		t.Error("expected error for negative value")
	}
	if err := NewConfigValidator("c").NonNegative("maxDistance", 0).Validate(); err != nil {
		t.Errorf("unexpected error for zero value: %v", err)
	}
}

func TestConfigValidatorRangeInt(t *testing.T) {
	tests := []struct {
		name      string
		value     int
		expectErr bool
	}{
		{"below range", 0, true},
		{"above range", 2000, true},
		{"at min", MinBatchSize, false},
		{"at max", MaxBatchSize, false},
		{"in range", 64, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewConfigValidator("source").
				RangeInt("batchSize", tt.value, MinBatchSize, MaxBatchSize).
				Validate()
			if tt.expectErr && err == nil {
				t.Error("expected error")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfigValidatorWhenScopesChecks(t *testing.T) {
	err := NewConfigValidator("source").
		When(false, func(v *ConfigValidator) {
			v.NonNegative("maxDistance", -5)
		}).
		Validate()
	if err != nil {
		t.Errorf("checks behind a false condition must not run, got %v", err)
	}

	err = NewConfigValidator("source").
		When(true, func(v *ConfigValidator) {
			v.NonNegative("maxDistance", -5)
		}).
		Validate()
	if err == nil {
		t.Error("checks behind a true condition must run")
	}
}

func TestConfigValidatorCombinesMultipleErrors(t *testing.T) {
	err := NewConfigValidator("source").
		RequireEither("graph", false, "primaryKey", false).
		NonNegative("maxDistance", -1).
		Validate()
	if err == nil {
		t.Fatal("expected combined error")
	}
	if !strings.Contains(err.Error(), "2 errors") {
		t.Errorf("combined error %q should name the failure count", err)
	}
}

func TestDefaultOrInt(t *testing.T) {
	if DefaultOrInt(0, 10) != 10 {
		t.Error("expected default for zero")
	}
	if DefaultOrInt(-5, 10) != 10 {
		t.Error("expected default for negative")
	}
	if DefaultOrInt(5, 10) != 5 {
		t.Error("expected value for positive")
	}
}

func TestClampInt(t *testing.T) {
	tests := []struct {
		value, min, max, expected int
	}{
		{5, 1, 10, 5},   // in range
		{0, 1, 10, 1},   // below min
		{15, 1, 10, 10}, // above max
		{1, 1, 10, 1},   // at min
		{10, 1, 10, 10}, // at max
	}

	for _, tt := range tests {
		result := ClampInt(tt.value, tt.min, tt.max)
		if result != tt.expected {
			t.Errorf("ClampInt(%d, %d, %d) = %d, want %d", tt.value, tt.min, tt.max, result, tt.expected)
		}
	}
}
