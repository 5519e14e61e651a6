package service

import (
	"errors"
	"fmt"
)

var (
	ErrFailedValidation = errors.New("failed validation")
	ErrRecordNotFound   = errors.New("record not found")
	ErrEditConflict     = errors.New("edit conflict")
	ErrDuplicateRecord  = errors.New("duplicate record")

	// Circulation state-machine failures.
	ErrBookNotAvailable = errors.New("book is not available for issue")
	ErrMemberNotActive  = errors.New("member account is not active")
	ErrAlreadyIssued    = errors.New("book is already issued to this member")
	ErrAlreadyReturned  = errors.New("book is already returned")
	ErrBookCheckedOut   = errors.New("book is currently issued")
)

// failedValidation wraps ErrFailedValidation with the key and value of an
// entry from a validation error map.
func (s *service) failedValidation(errorMap map[string]string) error {
	err := ErrFailedValidation
	for k, v := range errorMap {
		err = fmt.Errorf("%w: %q %s", ErrFailedValidation, k, v)
	}
	return err
}
