package booking

import (
	"fmt"

	"tourdesk/models"
)

// Question scopes, in the order they are rendered.
const (
	ScopeBooking = "booking"
	ScopeItem    = "item"
	ScopePerson  = "person"
)

// QuestionGroup is one scope's unanswered questions, with a reference to
// the owning item or person so answers can be routed back.
type QuestionGroup struct {
	Scope     string                   `json:"scope"`
	Ref       string                   `json:"ref,omitempty"`
	Questions []models.BookingQuestion `json:"questions"`
}

// MissingQuestions walks the booking's nested question trees and returns
// the labels of every required question without an answer, across booking,
// item, and person scopes.
func MissingQuestions(b *models.Booking) []string {
	var missing []string
	collect := func(qs []models.BookingQuestion) {
		for _, q := range qs {
			if q.Required && q.Answer == "" {
				missing = append(missing, q.Label)
			}
		}
	}
	collect(b.Questions)
	for _, item := range b.Items {
		collect(item.Questions)
		for _, p := range item.Persons {
			collect(p.Questions)
		}
	}
	return missing
}

// UnansweredByScope returns every unanswered question (required or not)
// grouped by scope, with choice lists intact, for rendering to the caller.
func UnansweredByScope(b *models.Booking) []QuestionGroup {
	var groups []QuestionGroup
	add := func(scope, ref string, qs []models.BookingQuestion) {
		var open []models.BookingQuestion
		for _, q := range qs {
			if q.Answer == "" {
				open = append(open, q)
			}
		}
		if len(open) > 0 {
			groups = append(groups, QuestionGroup{Scope: scope, Ref: ref, Questions: open})
		}
	}
	add(ScopeBooking, "", b.Questions)
	for _, item := range b.Items {
		add(ScopeItem, item.ID, item.Questions)
		for _, p := range item.Persons {
			ref := p.ID
			if p.Label != "" {
				ref = fmt.Sprintf("%s (%s)", p.ID, p.Label)
			}
			add(ScopePerson, ref, p.Questions)
		}
	}
	return groups
}
