package appErrors

import "fmt"

// ErrCampaignNotFound is a sentinel error
type ErrCampaignNotFound struct {
	CampaignID string
}

func (e *ErrCampaignNotFound) Error() string {
	return fmt.Sprintf("campaign with ID %s not found", e.CampaignID)
}

// Helper constructor
func NewCampaignNotFound(id string) error {
	return &ErrCampaignNotFound{CampaignID: id}
}

// ErrSequenceNotFound signals an unknown sequence id
type ErrSequenceNotFound struct {
	SequenceID string
}

func (e *ErrSequenceNotFound) Error() string {
	return fmt.Sprintf("sequence %q not found", e.SequenceID)
}

func NewSequenceNotFound(id string) error {
	return &ErrSequenceNotFound{SequenceID: id}
}

// ValidationError signals bad input the immediate caller must fix
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
