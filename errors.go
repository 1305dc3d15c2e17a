package locusplot

import "fmt"

// FetchError indicates that a remote resource could not be retrieved:
// unreachable host, exceeded timeout, or a non-success HTTP status.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// FormatError indicates that file content did not match the expected record
// shape. Line is 0-based where known, -1 otherwise.
type FormatError struct {
	File string
	Line int
	Err  error
}

func (e *FormatError) Error() string {
	if e.Line >= 0 {
		return fmt.Sprintf("%s: 0-based row %d: %v", e.File, e.Line, e.Err)
	}

	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
