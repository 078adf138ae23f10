package application

// Transition is a directed edge of the lifecycle graph. The ID is stable
// and used as the external identifier on the transition endpoint.
type Transition struct {
	ID    int      `json:"id"`
	Name  string   `json:"name"`
	Label string   `json:"label"`
	From  []Status `json:"-"`
	To    Status   `json:"to"`
}

// transitions is the closed set of legal moves. The table is static; there
// is no runtime registration.
var transitions = []Transition{
	{
		ID: 1, Name: "SentApplication", Label: "Sent application",
		From: []Status{StatusUnsent},
		To:   StatusWaitingForFirstResponse,
	},
	{
		ID: 2, Name: "Rejected", Label: "Got rejected",
		From: []Status{StatusWaitingForFirstResponse, StatusInterviewScheduled, StatusWaitingForInterviewFeedback, StatusOfferReceived},
		To:   StatusRejected,
	},
	{
		ID: 3, Name: "ScheduledInterview", Label: "Scheduled an interview",
		From: []Status{StatusWaitingForFirstResponse, StatusWaitingForInterviewFeedback},
		To:   StatusInterviewScheduled,
	},
	{
		ID: 4, Name: "InterviewDone", Label: "Interview is done",
		From: []Status{StatusInterviewScheduled},
		To:   StatusWaitingForInterviewFeedback,
	},
	{
		ID: 5, Name: "ReceivedOffer", Label: "Received an offer",
		From: []Status{StatusWaitingForFirstResponse, StatusWaitingForInterviewFeedback},
		To:   StatusOfferReceived,
	},
	{
		ID: 6, Name: "DeclinedOffer", Label: "Declined the offer",
		From: []Status{StatusOfferReceived},
		To:   StatusOfferDeclined,
	},
	{
		ID: 7, Name: "AcceptedOffer", Label: "Accepted the offer",
		From: []Status{StatusOfferReceived},
		To:   StatusHired,
	},
	{
		ID: 8, Name: "Withdrawn", Label: "Withdrew the application",
		From: []Status{StatusWaitingForFirstResponse, StatusInterviewScheduled, StatusWaitingForInterviewFeedback},
		To:   StatusWithdrawn,
	},
}

// Lookup indexes, computed once at startup.
var (
	transitionsByID   = make(map[int]Transition, len(transitions))
	transitionsByFrom = make(map[Status][]Transition)
)

func init() {
	for _, t := range transitions {
		transitionsByID[t.ID] = t
		for _, from := range t.From {
			transitionsByFrom[from] = append(transitionsByFrom[from], t)
		}
	}
}

// TransitionsFrom returns the transitions leaving the given status, in
// table order. The result is empty for terminal statuses.
func TransitionsFrom(s Status) []Transition {
	return transitionsByFrom[s]
}

// TransitionByID resolves a transition by its stable identifier.
func TransitionByID(id int) (Transition, bool) {
	t, ok := transitionsByID[id]
	return t, ok
}
