package entities

import "fmt"

// ScannerInvocationError is returned when the SBOM scanner exits with a non-zero status
type ScannerInvocationError struct {
	Source   string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ScannerInvocationError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("scanner failed on %s (exit %d): %s", e.Source, e.ExitCode, e.Stderr)
	}
	return fmt.Sprintf("scanner failed on %s (exit %d)", e.Source, e.ExitCode)
}

func (e *ScannerInvocationError) Unwrap() error {
	return e.Err
}
