package core

import (
	"errors"
	"testing"
	"time"
)

func ptr(v float64) *float64 { return &v }

func TestValidateProfile(t *testing.T) {
	tests := []struct {
		name    string
		profile *Profile
		wantErr error
	}{
		{
			name:    "valid empty profile",
			profile: &Profile{},
			wantErr: nil,
		},
		{
			name:    "valid budget range",
			profile: &Profile{BudgetMin: ptr(100), BudgetMax: ptr(1000), MinMatchThreshold: 40},
			wantErr: nil,
		},
		{
			name:    "equal budget bounds",
			profile: &Profile{BudgetMin: ptr(500), BudgetMax: ptr(500)},
			wantErr: nil,
		},
		{
			name:    "only lower bound",
			profile: &Profile{BudgetMin: ptr(500)},
			wantErr: nil,
		},
		{
			name:    "nil profile",
			profile: nil,
			wantErr: ErrInvalidProfile,
		},
		{
			name:    "inverted budget range",
			profile: &Profile{BudgetMin: ptr(1000), BudgetMax: ptr(100)},
			wantErr: ErrInvalidBudgetRange,
		},
		{
			name:    "threshold above 100",
			profile: &Profile{MinMatchThreshold: 101},
			wantErr: ErrInvalidThreshold,
		},
		{
			name:    "negative threshold",
			profile: &Profile{MinMatchThreshold: -1},
			wantErr: ErrInvalidThreshold,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProfile(tt.profile)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateProfile() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateProfile() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateTender(t *testing.T) {
	deadline := time.Now().Add(48 * time.Hour)

	tests := []struct {
		name    string
		tender  *Tender
		wantErr error
	}{
		{
			name:    "valid tender",
			tender:  &Tender{Title: "Supply of laptops", Deadline: deadline},
			wantErr: nil,
		},
		{
			name:    "nil tender",
			tender:  nil,
			wantErr: ErrInvalidTender,
		},
		{
			name:    "blank title",
			tender:  &Tender{Title: "   ", Deadline: deadline},
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "missing deadline",
			tender:  &Tender{Title: "Road works"},
			wantErr: ErrMissingDeadline,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTender(tt.tender)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateTender() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateTender() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseInteractionType(t *testing.T) {
	tests := []struct {
		input   string
		want    InteractionType
		wantErr bool
	}{
		{"view", InteractionView, false},
		{"save", InteractionSave, false},
		{"rate_negative", InteractionRateNegative, false},
		{"relevant", InteractionRatePositive, false},
		{"not_relevant", InteractionRateNegative, false},
		{"applied", InteractionApply, false},
		{"saved", InteractionSave, false},
		{" Dismissed ", InteractionDismiss, false},
		{"like", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseInteractionType(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidInteractionType) {
					t.Errorf("ParseInteractionType(%q) error = %v, want ErrInvalidInteractionType", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseInteractionType(%q) unexpected error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseInteractionType(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
