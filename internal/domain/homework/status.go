// internal/domain/homework/status.go
package homework

// Status is the review state of a homework submission as reported upstream.
type Status string

const (
	StatusApproved  Status = "approved"
	StatusReviewing Status = "reviewing"
	StatusRejected  Status = "rejected"
)

// verdicts must cover every Status constant above.
var verdicts = map[Status]string{
	StatusApproved:  "The work has been reviewed: the reviewer liked everything. Hooray!",
	StatusReviewing: "The work has been taken for review by the reviewer.",
	StatusRejected:  "The work has been reviewed: the reviewer has remarks.",
}

// Statuses returns the closed set of known statuses.
func Statuses() []Status {
	return []Status{StatusApproved, StatusReviewing, StatusRejected}
}

// Verdict returns the human-readable phrase for the status.
func (s Status) Verdict() (string, error) {
	switch s {
	case StatusApproved, StatusReviewing, StatusRejected:
		return verdicts[s], nil
	default:
		return "", &UnknownStatusError{Status: string(s)}
	}
}
