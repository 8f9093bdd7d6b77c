package model

import (
	"time"

	"github.com/campus-desk/caseinbox/pkg/domain/types"
)

// AuthorRole identifies who wrote a case message
type AuthorRole string

const (
	AuthorAgent     AuthorRole = "agent"
	AuthorRequester AuthorRole = "requester"
	AuthorSystem    AuthorRole = "system"
)

// MessageAuthor is the display identity attached to a message
type MessageAuthor struct {
	Name string
	Role AuthorRole
}

// CaseMessage is one entry in a case's conversation
type CaseMessage struct {
	ID        types.MessageID
	CaseID    types.CaseID
	Author    MessageAuthor
	Body      string
	CreatedAt time.Time
}

// Clone returns a copy of the message
func (m *CaseMessage) Clone() *CaseMessage {
	cloned := *m
	return &cloned
}
