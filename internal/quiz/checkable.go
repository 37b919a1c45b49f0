package quiz

// Result is the outcome of checking a quiz or a single question.
type Result struct {
	Score   float64 `json:"score"`
	Total   float64 `json:"total"`
	Passing bool    `json:"passing"`
}

// Checkable is anything that can be scored against a list of responses.
// Score and Passing return ErrUnchecked until Check has run; Passing
// returns a DegenerateTotalError when the total is zero.
type Checkable interface {
	Check(responses []string) (Result, error)
	Score() (float64, error)
	Total() float64
	Passing() (bool, error)
}

var (
	_ Checkable = (*Question)(nil)
	_ Checkable = (*Quiz)(nil)
)
