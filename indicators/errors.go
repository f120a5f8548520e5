package indicators

import "fmt"

// Returned when an account snapshot lacks data needed by a rule. No partial
// indicator vector is produced in that case.
type UnanalyzableError struct {
	AccountID string
	Field     string
	Value     string
	Err       error
}

func (ue *UnanalyzableError) Error() string {
	if ue.Value == "" {
		return fmt.Sprintf("account %s unanalyzable: missing %s", ue.AccountID, ue.Field)
	}
	return fmt.Sprintf("account %s unanalyzable: bad %s %q: %v", ue.AccountID, ue.Field, ue.Value, ue.Err)
}

func (ue *UnanalyzableError) Unwrap() error {
	return ue.Err
}
