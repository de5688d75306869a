package backend

import "strings"

// Outcome classifies a backend response for the bootstrap flows.
type Outcome int

const (
	// OutcomeOK is a plain success.
	OutcomeOK Outcome = iota
	// OutcomeAlreadyExists is a 400 whose body says the resource is already
	// there. Re-registration of a seeded user lands here and counts as
	// success.
	OutcomeAlreadyExists
	// OutcomeRetry is the security filter's transient block: a 403 whose
	// body mentions a detected threat. One short delay and a bounded retry
	// gets past it.
	OutcomeRetry
	// OutcomeFail is everything else.
	OutcomeFail
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeAlreadyExists:
		return "already_exists"
	case OutcomeRetry:
		return "retry"
	default:
		return "fail"
	}
}

// Classify maps a status code and response body to an outcome.
//
// The substring predicates are load-bearing: the backend's first-request
// defense answers 403 with a body containing "threat", and its duplicate
// registration answer is a 400 mentioning "already"/"exists"/"duplicate".
// Keeping the matching here, away from any network code, keeps it testable.
func Classify(status int, body []byte) Outcome {
	if status >= 200 && status < 300 {
		return OutcomeOK
	}
	lower := strings.ToLower(string(body))
	if status == 403 && strings.Contains(lower, "threat") {
		return OutcomeRetry
	}
	if status == 400 {
		for _, marker := range []string{"already", "exists", "duplicate"} {
			if strings.Contains(lower, marker) {
				return OutcomeAlreadyExists
			}
		}
	}
	return OutcomeFail
}
