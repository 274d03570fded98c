package speech

import (
	"errors"
	"fmt"
)

var ErrMissingCredential = errors.New("api credential is not configured")

type RecognizerError struct {
	Backend string
	Err     error
}

func (e *RecognizerError) Error() string {
	return fmt.Sprintf("%s recognizer: %v", e.Backend, e.Err)
}

func (e *RecognizerError) Unwrap() error { return e.Err }
