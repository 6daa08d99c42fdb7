package harvest

import (
	"errors"
	"fmt"

	"github.com/masmgr/commitharvest/internal/identity"
)

// AmbiguousIdentityError aborts a harvest; see identity.AmbiguousIdentityError.
type AmbiguousIdentityError = identity.AmbiguousIdentityError

// ErrNonFixedOffset is returned for timestamps whose zone is not a static offset.
var ErrNonFixedOffset = errors.New("timestamp zone is not a fixed offset")

// MissingReferenceError reports a reference absent from a repository.
type MissingReferenceError struct {
	Repo string
	Ref  string
	Err  error
}

func (e *MissingReferenceError) Error() string {
	return fmt.Sprintf("repository %s: missing reference %s: %v", e.Repo, e.Ref, e.Err)
}

func (e *MissingReferenceError) Unwrap() error {
	return e.Err
}

// RepositoryReadError reports a repository that could not be opened or read.
type RepositoryReadError struct {
	Repo string
	Path string
	Err  error
}

func (e *RepositoryReadError) Error() string {
	return fmt.Sprintf("repository %s (%s): %v", e.Repo, e.Path, e.Err)
}

func (e *RepositoryReadError) Unwrap() error {
	return e.Err
}
