// Package policy decides who may see and touch which tickets. Every rule is
// a pure function of the caller's role and ids, which keeps the whole access
// model testable without a store or a server.
package policy

import "github.com/helpdesk-demo/ticket-service/internal/model"

// VisibleTickets filters all down to what user may see. Service team sees
// everything, customers see their own tickets, anything else sees nothing
// (fail closed). Store order is preserved.
func VisibleTickets(user model.User, all []model.Ticket) []model.Ticket {
	switch user.Role {
	case model.RoleServiceTeam:
		return all
	case model.RoleCustomer:
		own := []model.Ticket{}
		for _, t := range all {
			if t.UserID == user.ID {
				own = append(own, t)
			}
		}
		return own
	default:
		return []model.Ticket{}
	}
}

// CanCreate reports whether user may file new tickets. Only customers do;
// the service team replies, it does not file.
func CanCreate(user model.User) bool {
	return user.Role == model.RoleCustomer
}

// CanUpdate reports whether user may mutate existing tickets. Only the
// service team may, and it may update any ticket, so ownership plays no part.
func CanUpdate(user model.User) bool {
	return user.Role == model.RoleServiceTeam
}

// CanViewOwner reports whether user may list tickets filed by ownerID.
func CanViewOwner(user model.User, ownerID int64) bool {
	switch user.Role {
	case model.RoleServiceTeam:
		return true
	case model.RoleCustomer:
		return user.ID == ownerID
	default:
		return false
	}
}
