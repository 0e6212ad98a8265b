package betslip

// ValidationError reports a submission precondition that failed locally.
// It is returned before any network call is made.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "bet slip: " + e.Reason
}
