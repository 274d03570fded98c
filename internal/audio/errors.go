package audio

import "fmt"

// TranscodeError is returned for every transcoding failure: missing input,
// missing tool, non-zero exit, timeout, or unexpected output format.
type TranscodeError struct {
	Input  string
	Output string // diagnostic output of the tool, if any
	Err    error
}

func (e *TranscodeError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("transcode %s: %v: %s", e.Input, e.Err, e.Output)
	}
	return fmt.Sprintf("transcode %s: %v", e.Input, e.Err)
}

func (e *TranscodeError) Unwrap() error { return e.Err }
