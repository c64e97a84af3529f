package model

import "time"

// MessageStatus tracks a generated message through its delivery lifecycle.
type MessageStatus string

const (
	StatusScheduled MessageStatus = "scheduled"
	StatusSent      MessageStatus = "sent"
	StatusOpened    MessageStatus = "opened"
	StatusReplied   MessageStatus = "replied"
	StatusBounced   MessageStatus = "bounced"
)

// messageTransitions holds the forward edges of the message lifecycle:
// scheduled -> sent -> {opened, bounced}, opened -> replied.
// replied and bounced are terminal.
var messageTransitions = map[MessageStatus][]MessageStatus{
	StatusScheduled: {StatusSent},
	StatusSent:      {StatusOpened, StatusBounced},
	StatusOpened:    {StatusReplied},
	StatusReplied:   {},
	StatusBounced:   {},
}

// CanAdvanceTo reports whether next is a legal forward transition from s.
// Regressions (e.g. replied -> sent) are never legal.
func (s MessageStatus) CanAdvanceTo(next MessageStatus) bool {
	for _, allowed := range messageTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// MessageEvent is an engagement event reported for a message.
type MessageEvent string

const (
	EventSent          MessageEvent = "sent"
	EventOpened        MessageEvent = "opened"
	EventReplied       MessageEvent = "replied"
	EventBounced       MessageEvent = "bounced"
	EventMeetingBooked MessageEvent = "meeting_booked"
)

// Status maps an engagement event onto the message status it implies.
// meeting_booked carries no status change and returns false.
func (e MessageEvent) Status() (MessageStatus, bool) {
	switch e {
	case EventSent:
		return StatusSent, true
	case EventOpened:
		return StatusOpened, true
	case EventReplied:
		return StatusReplied, true
	case EventBounced:
		return StatusBounced, true
	}
	return "", false
}

// GeneratedMessage is a synthesized template bound into a campaign.
type GeneratedMessage struct {
	ID string `json:"id"`
	MessageTemplate
	ScheduledAt time.Time     `json:"scheduled_at"`
	SentAt      *time.Time    `json:"sent_at,omitempty"`
	Status      MessageStatus `json:"status"`
}

func (m GeneratedMessage) clone() GeneratedMessage {
	out := m
	if m.SentAt != nil {
		t := *m.SentAt
		out.SentAt = &t
	}
	return out
}
