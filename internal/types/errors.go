// internal/types/errors.go
package types

import "fmt"

// LocalIOError wraps a failure to read or write a local file. A missing
// favorites file is not an error and never produces one.
type LocalIOError struct {
	Op   string
	Path string
	Err  error
}

func (e *LocalIOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *LocalIOError) Unwrap() error {
	return e.Err
}
