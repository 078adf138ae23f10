// Package application holds the job-application lifecycle model: the
// status catalog, the transition table, the append-only history ledger
// and the Application aggregate itself.
//
// Status graph (terminal states marked *):
//
//	Unsent ──► WaitingForFirstResponse ──► InterviewScheduled ──► WaitingForInterviewFeedback
//	                │        ▲    │ ▲                │ ▲                │    │
//	                │        │    └─┼────────────────┘ └────────────────┘    │
//	                ├────────┴──────┴──► OfferReceived ──► Hired*            │
//	                │                         │      └───► OfferDeclined*   │
//	                ├─────────────────────────┴──► Rejected* ◄──────────────┤
//	                └──────────────────────────────► Withdrawn* ◄───────────┘
package application

import "fmt"

// Status values mirror the applications.status column.
type Status string

const (
	StatusUnsent                      Status = "unsent"
	StatusWaitingForFirstResponse     Status = "waiting_for_first_response"
	StatusRejected                    Status = "rejected"
	StatusInterviewScheduled          Status = "interview_scheduled"
	StatusWaitingForInterviewFeedback Status = "waiting_for_interview_feedback"
	StatusOfferReceived               Status = "offer_received"
	StatusOfferDeclined               Status = "offer_declined"
	StatusHired                       Status = "hired"
	StatusWithdrawn                   Status = "withdrawn"
)

var statusLabels = map[Status]string{
	StatusUnsent:                      "Unsent",
	StatusWaitingForFirstResponse:     "Waiting for first response",
	StatusRejected:                    "Rejected",
	StatusInterviewScheduled:          "Interview scheduled",
	StatusWaitingForInterviewFeedback: "Waiting for interview feedback",
	StatusOfferReceived:               "Offer received",
	StatusOfferDeclined:               "Offer declined",
	StatusHired:                       "Hired",
	StatusWithdrawn:                   "Withdrawn",
}

// Statuses returns the full catalog in declaration order.
func Statuses() []Status {
	return []Status{
		StatusUnsent,
		StatusWaitingForFirstResponse,
		StatusRejected,
		StatusInterviewScheduled,
		StatusWaitingForInterviewFeedback,
		StatusOfferReceived,
		StatusOfferDeclined,
		StatusHired,
		StatusWithdrawn,
	}
}

// ParseStatus converts a raw string to a Status, rejecting unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := statusLabels[st]; ok {
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// IsTerminal reports whether the status has no outgoing transitions.
func (s Status) IsTerminal() bool {
	return len(TransitionsFrom(s)) == 0
}

// Label returns the human-readable name shown in the status catalog.
func (s Status) Label() string {
	return statusLabels[s]
}
