package model

import "time"

// Role is the access level of a directory user. Roles are assigned once,
// in the user directory; nothing else derives a role from a numeric id.
type Role string

const (
	RoleServiceTeam Role = "service_team"
	RoleCustomer    Role = "customer"
)

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// TicketStatus uses the wire values the clients already speak.
type TicketStatus string

const (
	TicketStatusNew        TicketStatus = "new"
	TicketStatusInProgress TicketStatus = "in progress"
	TicketStatusResolved   TicketStatus = "resolved"
)

func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusNew, TicketStatusInProgress, TicketStatusResolved:
		return true
	}
	return false
}

// Attachment is an opaque reference to a file the client holds. The service
// never dereferences the URI.
type Attachment struct {
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// Ticket is the canonical record. UserID, Name, Email, Description and
// Attachment are fixed at creation; only Status and ServiceReply may change
// afterwards, and only through the store.
type Ticket struct {
	ID           int64        `json:"id"`
	UserID       int64        `json:"userId"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Description  string       `json:"description"`
	Attachment   *Attachment  `json:"attachment"`
	Status       TicketStatus `json:"status"`
	ServiceReply string       `json:"serviceReply"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
