package application_test

import (
	"testing"

	"cvtrack/internal/domain/application"
)

func TestTransitionsFrom_SourcesMatch(t *testing.T) {
	for _, status := range application.Statuses() {
		for _, transition := range application.TransitionsFrom(status) {
			found := false
			for _, from := range transition.From {
				if from == status {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("TransitionsFrom(%s) returned transition %d whose From set does not contain %s", status, transition.ID, status)
			}
		}
	}
}

func TestTransitionsFrom_TerminalStatusesEmpty(t *testing.T) {
	terminals := []application.Status{
		application.StatusRejected,
		application.StatusOfferDeclined,
		application.StatusHired,
		application.StatusWithdrawn,
	}
	for _, status := range terminals {
		if got := application.TransitionsFrom(status); len(got) != 0 {
			t.Errorf("TransitionsFrom(%s) = %d transitions, want none (terminal)", status, len(got))
		}
	}
}

func TestTransitionByID_KnownIDs(t *testing.T) {
	for id := 1; id <= 8; id++ {
		transition, ok := application.TransitionByID(id)
		if !ok {
			t.Errorf("TransitionByID(%d) not found", id)
			continue
		}
		if transition.ID != id {
			t.Errorf("TransitionByID(%d) returned id %d", id, transition.ID)
		}
		if len(transition.From) == 0 {
			t.Errorf("transition %d has an empty From set", id)
		}
	}
}

func TestTransitionByID_Unknown(t *testing.T) {
	for _, id := range []int{0, 9, -1, 100} {
		if _, ok := application.TransitionByID(id); ok {
			t.Errorf("TransitionByID(%d) should not resolve", id)
		}
	}
}

func TestTransitionTable_FixedEdges(t *testing.T) {
	cases := []struct {
		id   int
		from application.Status
		to   application.Status
	}{
		{1, application.StatusUnsent, application.StatusWaitingForFirstResponse},
		{3, application.StatusWaitingForFirstResponse, application.StatusInterviewScheduled},
		{4, application.StatusInterviewScheduled, application.StatusWaitingForInterviewFeedback},
		{6, application.StatusOfferReceived, application.StatusOfferDeclined},
		{7, application.StatusOfferReceived, application.StatusHired},
	}
	for _, c := range cases {
		transition, ok := application.TransitionByID(c.id)
		if !ok {
			t.Fatalf("TransitionByID(%d) not found", c.id)
		}
		if transition.To != c.to {
			t.Errorf("transition %d targets %s, want %s", c.id, transition.To, c.to)
		}
		allowed := false
		for _, candidate := range application.TransitionsFrom(c.from) {
			if candidate.ID == c.id {
				allowed = true
			}
		}
		if !allowed {
			t.Errorf("transition %d should be available from %s", c.id, c.from)
		}
	}
}

func TestTransitionTable_RejectedReachableFromMultipleSources(t *testing.T) {
	sources := []application.Status{
		application.StatusWaitingForFirstResponse,
		application.StatusWaitingForInterviewFeedback,
	}
	for _, from := range sources {
		found := false
		for _, transition := range application.TransitionsFrom(from) {
			if transition.To == application.StatusRejected {
				found = true
			}
		}
		if !found {
			t.Errorf("no transition from %s to rejected", from)
		}
	}
}

func TestTransitionTable_SentApplicationOnlyFromUnsent(t *testing.T) {
	for _, status := range application.Statuses() {
		if status == application.StatusUnsent {
			continue
		}
		for _, transition := range application.TransitionsFrom(status) {
			if transition.ID == 1 {
				t.Errorf("transition 1 should only be available from unsent, found on %s", status)
			}
		}
	}
}
