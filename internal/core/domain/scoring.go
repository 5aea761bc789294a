package domain

// ScoreResult is one entry of a scoring response. For a failed item the
// label carries the error text and the probability is empty.
type ScoreResult struct {
	Label       string `json:"label"`
	Probability string `json:"probability"`
}

// Failed reports whether this entry records a per-item error.
func (r ScoreResult) Failed() bool {
	return r.Probability == ""
}
