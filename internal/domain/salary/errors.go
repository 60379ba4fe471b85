package salary

import "errors"

var (
	ErrInvalidRange     = errors.New("end date is before start date")
	ErrEmployeeNotFound = errors.New("employee not found")
)

// DataUnavailableError wraps a record-store read failure. The pipeline
// performs no retries; callers decide what to do with it.
type DataUnavailableError struct {
	Err error
}

func (e *DataUnavailableError) Error() string {
	return "salary data unavailable: " + e.Err.Error()
}

func (e *DataUnavailableError) Unwrap() error {
	return e.Err
}
