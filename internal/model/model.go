// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Status is the review state of a translation pair.
type Status string

const (
	// StatusPending marks a pair not yet reviewed.
	StatusPending Status = "pending"
	// StatusValidated marks a pair approved by a reviewer.
	StatusValidated Status = "validated"
)

// Valid reports whether s is one of the known review states.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusValidated
}

// Translation is a single French/Wolof sentence pair under review.
// The (French, Wolof) combination is unique across all records.
type Translation struct {
	ID              uuid.UUID `json:"id"`
	French          string    `json:"french"`
	Wolof           string    `json:"wolof"`
	Status          Status    `json:"status"`
	ValidatedBy     *string   `json:"validatedBy"`
	CorrectedBy     *string   `json:"correctedBy"`
	CorrectionCount int       `json:"hasBeenCorrected"`
	OriginalWolof   string    `json:"originalWolof"`
	LastUpdated     time.Time `json:"lastUpdated"`
}

// TranslationUpdate is a sparse update: nil fields are left untouched.
// LastUpdated has no slot on purpose; the server always assigns it.
type TranslationUpdate struct {
	French          *string `json:"french"`
	Wolof           *string `json:"wolof"`
	Status          *Status `json:"status"`
	ValidatedBy     *string `json:"validatedBy"`
	CorrectedBy     *string `json:"correctedBy"`
	CorrectionCount *int    `json:"hasBeenCorrected"`
	OriginalWolof   *string `json:"originalWolof"`
}

// IsEmpty reports whether the update carries no fields at all.
func (u TranslationUpdate) IsEmpty() bool {
	return u.French == nil && u.Wolof == nil && u.Status == nil &&
		u.ValidatedBy == nil && u.CorrectedBy == nil &&
		u.CorrectionCount == nil && u.OriginalWolof == nil
}

// User is a reviewer identity. Name is unique and immutable.
type User struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
