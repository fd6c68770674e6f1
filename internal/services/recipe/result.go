package recipe

// Outcome tags which variant of Result is populated.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeBlocked Outcome = "blocked"
	OutcomeError   Outcome = "error"
)

// SafetyRating is one (category, probability) pair from the model's safety evaluation.
type SafetyRating struct {
	Category    string `json:"category"`
	Probability string `json:"probability"`
}

// TransportError describes a call that failed before any content came back.
// Detail carries the service's own message when the failure exposes one.
type TransportError struct {
	Message    string `json:"message"`
	Detail     string `json:"detail,omitempty"`
	Kind       string `json:"kind"`
	StatusCode int    `json:"-"`
}

// Result is the outcome of one generation call. Exactly one of the variant
// fields is meaningful, selected by Outcome:
//
//	OutcomeSuccess: Text
//	OutcomeBlocked: BlockReason, SafetyRatings (either may be empty)
//	OutcomeError:   Err
type Result struct {
	Outcome       Outcome
	Text          string
	BlockReason   string
	SafetyRatings []SafetyRating
	Err           *TransportError
}

func Succeeded(text string) Result {
	return Result{Outcome: OutcomeSuccess, Text: text}
}

func Blocked(reason string, ratings []SafetyRating) Result {
	return Result{Outcome: OutcomeBlocked, BlockReason: reason, SafetyRatings: ratings}
}

func Failed(err *TransportError) Result {
	return Result{Outcome: OutcomeError, Err: err}
}
