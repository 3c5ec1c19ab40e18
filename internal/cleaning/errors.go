package cleaning

import "fmt"

// ContractViolationError reports input that breaks an assumption the cleaner
// relies on, as opposed to ordinary bad data, which is recorded as an
// invalid code.
type ContractViolationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ContractViolationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("contract violation in %s: %s: %v", e.Field, e.Message, e.Cause)
	}
	return fmt.Sprintf("contract violation in %s: %s", e.Field, e.Message)
}

func (e *ContractViolationError) Unwrap() error {
	return e.Cause
}
