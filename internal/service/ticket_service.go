package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/helpdesk-demo/ticket-service/internal/directory"
	"github.com/helpdesk-demo/ticket-service/internal/errs"
	"github.com/helpdesk-demo/ticket-service/internal/kafka"
	"github.com/helpdesk-demo/ticket-service/internal/model"
	"github.com/helpdesk-demo/ticket-service/internal/policy"
	"github.com/helpdesk-demo/ticket-service/internal/store"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// CreateRequest carries the customer-supplied fields of a new ticket.
// Everything else (id, status, serviceReply, owner) is assigned server-side.
type CreateRequest struct {
	Name        string
	Email       string
	Description string
	Attachment  *model.Attachment
}

// TicketService is the lifecycle engine: it gates every operation through
// the authorization policy, validates input, and only then touches the store.
type TicketService struct {
	store    *store.Store
	dir      *directory.Directory
	producer kafka.TicketEventProducer
}

func NewTicketService(st *store.Store, dir *directory.Directory, producer kafka.TicketEventProducer) *TicketService {
	return &TicketService{store: st, dir: dir, producer: producer}
}

// Login authenticates the credentials and returns the user together with the
// ticket set visible to them.
func (s *TicketService) Login(ctx context.Context, username, password string) (model.User, []model.Ticket, error) {
	user, err := s.dir.Authenticate(username, password)
	if err != nil {
		return model.User{}, nil, err
	}
	return user, policy.VisibleTickets(user, s.store.ListAll()), nil
}

// VisibleTo returns the caller's visible ticket set.
func (s *TicketService) VisibleTo(ctx context.Context, user model.User) []model.Ticket {
	return policy.VisibleTickets(user, s.store.ListAll())
}

// ListForOwner returns ownerID's tickets, provided the caller may see them.
func (s *TicketService) ListForOwner(ctx context.Context, user model.User, ownerID int64) ([]model.Ticket, error) {
	if !policy.CanViewOwner(user, ownerID) {
		return nil, errs.ErrForbidden
	}
	return s.store.ListByOwner(ownerID), nil
}

// SubmitCreate validates and files a new ticket owned by user. Validation and
// authorization run before any store mutation, so a rejected submission
// leaves the collection untouched.
func (s *TicketService) SubmitCreate(ctx context.Context, user model.User, req CreateRequest) (model.Ticket, error) {
	if !policy.CanCreate(user) {
		return model.Ticket{}, errs.ErrForbidden
	}
	if err := validateCreate(req); err != nil {
		return model.Ticket{}, err
	}
	t := s.store.Insert(model.Ticket{
		UserID:      user.ID,
		Name:        req.Name,
		Email:       req.Email,
		Description: req.Description,
		Attachment:  req.Attachment,
	})
	s.producer.ProduceTicketEvent(ctx, "ticket.created", t)
	return t, nil
}

// SubmitUpdate applies a service-team reply to an existing ticket. Only
// status and serviceReply can ever reach the store; a nil field is left as
// is. Status transitions are not ordered — any direction is allowed, the
// gate is purely the caller's role.
func (s *TicketService) SubmitUpdate(ctx context.Context, user model.User, ticketID int64, status *model.TicketStatus, serviceReply *string) (model.Ticket, error) {
	if !policy.CanUpdate(user) {
		return model.Ticket{}, errs.ErrForbidden
	}
	if status != nil && !status.Valid() {
		return model.Ticket{}, errs.ErrInvalidStatus
	}
	t, err := s.store.ApplyUpdate(ticketID, status, serviceReply)
	if err != nil {
		return model.Ticket{}, err
	}
	s.producer.ProduceTicketEvent(ctx, "ticket.updated", t)
	return t, nil
}

func validateCreate(req CreateRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return errs.ErrEmptyName
	}
	if strings.TrimSpace(req.Email) == "" {
		return errs.ErrEmptyEmail
	}
	if !emailPattern.MatchString(req.Email) {
		return errs.ErrInvalidEmail
	}
	return nil
}
