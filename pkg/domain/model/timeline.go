package model

import (
	"fmt"
	"sort"
	"time"

	"github.com/campus-desk/caseinbox/pkg/domain/types"
)

// TimelineEventType classifies entries in a consolidated case timeline
type TimelineEventType string

const (
	TimelineMessage  TimelineEventType = "message"
	TimelineCreation TimelineEventType = "creation"
	TimelineMerge    TimelineEventType = "merge"
	TimelineNote     TimelineEventType = "note"
)

// TimelineEvent is one entry in a merged case's consolidated history.
// FromTicket is set for events that originated on an absorbed case so
// consumers can render provenance ("From TKT-XXXXX").
type TimelineEvent struct {
	Type       TimelineEventType
	Timestamp  time.Time
	Author     string
	Content    string
	FromTicket types.TicketNumber
}

// TimelineSource is one case and its messages feeding a consolidation
type TimelineSource struct {
	Case     *Case
	Messages []*CaseMessage
}

// ConsolidateTimeline interleaves the creation and message events of every
// source strictly by timestamp, ascending. Events from sources other than
// the primary carry the source's ticket number as provenance. Ties are
// broken by ticket number then message id so the result is deterministic.
func ConsolidateTimeline(primary types.CaseID, sources []TimelineSource) []TimelineEvent {
	type entry struct {
		event  TimelineEvent
		ticket types.TicketNumber
		msgID  types.MessageID
	}
	var entries []entry

	for _, src := range sources {
		provenance := types.TicketNumber("")
		if src.Case.ID != primary {
			provenance = src.Case.TicketNumber
		}

		entries = append(entries, entry{
			event: TimelineEvent{
				Type:       TimelineCreation,
				Timestamp:  src.Case.CreatedAt,
				Author:     src.Case.Requester.Name,
				Content:    fmt.Sprintf("Case %s created: %s", src.Case.TicketNumber, src.Case.Subject),
				FromTicket: provenance,
			},
			ticket: src.Case.TicketNumber,
		})

		for _, msg := range src.Messages {
			entries = append(entries, entry{
				event: TimelineEvent{
					Type:       TimelineMessage,
					Timestamp:  msg.CreatedAt,
					Author:     msg.Author.Name,
					Content:    msg.Body,
					FromTicket: provenance,
				},
				ticket: src.Case.TicketNumber,
				msgID:  msg.ID,
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].event.Timestamp.Equal(entries[j].event.Timestamp) {
			return entries[i].event.Timestamp.Before(entries[j].event.Timestamp)
		}
		if entries[i].ticket != entries[j].ticket {
			return entries[i].ticket < entries[j].ticket
		}
		return entries[i].msgID < entries[j].msgID
	})

	events := make([]TimelineEvent, len(entries))
	for i, e := range entries {
		events[i] = e.event
	}
	return events
}
