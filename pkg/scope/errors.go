package scope

import "fmt"

// ScopeUnderflowError reports a Pop on a context whose only remaining frame
// is the base scope.
type ScopeUnderflowError struct{}

func (e *ScopeUnderflowError) Error() string {
	return "scope underflow: cannot pop the base scope"
}

// ErrScopeUnderflow is the error returned by Pop on the base scope.
var ErrScopeUnderflow = &ScopeUnderflowError{}

// UnsupportedKindError reports an Add whose Variable is not one of the
// supported union members.
type UnsupportedKindError struct {
	Key string
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("unsupported variable kind for key %q", e.Key)
}
