package application

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrNoSession           = errors.New("no current user")
	ErrCatalogBusy         = errors.New("catalog is already loading")
	ErrLoadMoreUnavailable = errors.New("no more products to load")
	ErrCardNotFound        = errors.New("card not found")
)

// ValidationError carries per-field messages for a rejected form.
// Every failing field is reported, not only the first.
type ValidationError struct {
	Fields  map[string]string
	Message string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + joinFields(e.Fields)
}

// AuthError is a credential mismatch. It is reported on the email and the
// password field alike so the form does not reveal which one was wrong.
type AuthError struct {
	Fields  map[string]string
	Message string
}

func (e *AuthError) Error() string { return ErrInvalidCredentials.Error() }

func (e *AuthError) Unwrap() error { return ErrInvalidCredentials }

func joinFields(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}
