package catalog

import (
	"bytes"
	"fmt"
)

// CheckError reports one entry that failed to build or did not match its
// expect_hex.
type CheckError struct {
	Key     string
	Message string
	Err     error
}

func (e CheckError) Error() string {
	return fmt.Sprintf("%s: %s", e.Key, e.Message)
}

func (e CheckError) Unwrap() error {
	return e.Err
}

// CheckResult holds the outcome of building every entry.
type CheckResult struct {
	Passed    []string
	Unchecked []string
	Errors    []CheckError
}

// IsValid returns true if no entry failed.
func (r *CheckResult) IsValid() bool {
	return len(r.Errors) == 0
}

// Check builds every entry and compares the octets against expect_hex where
// one is given.
func Check(c *Catalog) *CheckResult {
	result := &CheckResult{}
	for _, e := range c.ListAll() {
		checkEntry(e, result)
	}
	return result
}

func checkEntry(e *Entry, result *CheckResult) {
	got, err := e.Serialize()
	if err != nil {
		result.Errors = append(result.Errors, CheckError{Key: e.Key, Message: "build failed", Err: err})
		return
	}
	want, err := e.Expected()
	if err != nil {
		result.Errors = append(result.Errors, CheckError{Key: e.Key, Message: "bad expectation", Err: err})
		return
	}
	if want == nil {
		result.Unchecked = append(result.Unchecked, e.Key)
		return
	}
	if !bytes.Equal(got, want) {
		result.Errors = append(result.Errors, CheckError{
			Key:     e.Key,
			Message: fmt.Sprintf("got % X, want % X", got, want),
		})
		return
	}
	result.Passed = append(result.Passed, e.Key)
}
