package iskwet

import "github.com/kailas-cloud/iskwet/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrWordNotFound      = domain.ErrWordNotFound
	ErrInvalidQuery      = domain.ErrInvalidQuery
	ErrInvalidDictionary = domain.ErrInvalidDictionary
)
