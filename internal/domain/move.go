package domain

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxMoveNameLen    = 200
	MaxPlanNameLen    = 200
	MaxDescriptionLen = 10000

	// order_index is a 4-byte INTEGER on Postgres.
	MinOrder = math.MinInt32
	MaxOrder = math.MaxInt32
)

// Move is a single technique in a user's game plan. Moves sharing OwnerID and
// PlanName form one plan; ParentID links a move under another move of the
// same plan.
type Move struct {
	ID          string
	OwnerID     string
	PlanName    string
	Name        string
	Description *string
	ParentID    *string
	OrderIndex  int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (m *Move) IsRoot() bool {
	return m.ParentID == nil
}

// PlanSummary is one entry of a user's plan index.
type PlanSummary struct {
	Name      string
	MoveCount int
	RootCount int
}

// ValidateMoveName checks a trimmed move name.
func ValidateMoveName(name string) error {
	return validateLabel("name", name, MaxMoveNameLen)
}

// ValidatePlanName checks a trimmed plan name.
func ValidatePlanName(name string) error {
	return validateLabel("plan_name", name, MaxPlanNameLen)
}

func ValidateDescription(desc *string) error {
	if desc == nil {
		return nil
	}
	if utf8.RuneCountInString(*desc) > MaxDescriptionLen {
		return &ValidationError{Field: "description", Reason: "too long"}
	}
	return nil
}

func validateLabel(field, value string, maxLen int) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Reason: "is required"}
	}
	if utf8.RuneCountInString(value) > maxLen {
		return &ValidationError{Field: field, Reason: "too long"}
	}
	return nil
}

// ValidateOrder checks a sibling position fits the stored column. Negative
// positions are allowed.
func ValidateOrder(order *int) error {
	if order == nil {
		return nil
	}
	if *order < MinOrder || *order > MaxOrder {
		return &ValidationError{Field: "order", Reason: "out of range"}
	}
	return nil
}

// OptionalNotes returns s unchanged, or nil when it is nil or all blank.
// Notes are markdown, so leading indentation and trailing newlines are kept.
func OptionalNotes(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := *s
	return &v
}

// OptionalText trims s and returns nil when nothing is left.
func OptionalText(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
