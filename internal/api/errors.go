package api

// SubmissionError is a wager the platform refused: insufficient balance,
// inactive outcome, moved odds. Message is the server's text, verbatim, so
// the caller can show it as-is. The slip stays intact for a retry.
type SubmissionError struct {
	StatusCode int
	Message    string
}

func (e *SubmissionError) Error() string {
	return "bet rejected: " + e.Message
}
