package store

import (
	"sync"
	"time"

	"github.com/helpdesk-demo/ticket-service/internal/errs"
	"github.com/helpdesk-demo/ticket-service/internal/model"
)

// Store holds the canonical ticket state in process memory. Records are
// indexed by id for O(1) lookup and kept in an insertion-order list, which is
// the only order the API defines. One mutex guards every mutation so two
// concurrent creates can never collide on id assignment and two concurrent
// updates can never interleave partial field writes.
type Store struct {
	mu     sync.Mutex
	byID   map[int64]*model.Ticket
	order  []int64
	nextID int64

	now func() time.Time
}

func New() *Store {
	return &Store{
		byID:   make(map[int64]*model.Ticket),
		nextID: 1,
		now:    time.Now,
	}
}

// clone copies the record including the attachment, so neither a snapshot
// holder nor the inserting caller can reach stored state through the pointer.
func clone(t *model.Ticket) model.Ticket {
	out := *t
	if t.Attachment != nil {
		attachment := *t.Attachment
		out.Attachment = &attachment
	}
	return out
}

// ListAll returns value copies of every ticket in insertion order.
func (s *Store) ListAll() []model.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Ticket, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, clone(s.byID[id]))
	}
	return out
}

// ListByOwner returns the owner's tickets in insertion order. No match is an
// empty slice, not an error.
func (s *Store) ListByOwner(userID int64) []model.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []model.Ticket{}
	for _, id := range s.order {
		if t := s.byID[id]; t.UserID == userID {
			out = append(out, clone(t))
		}
	}
	return out
}

// FindByID returns a copy of the matching ticket.
func (s *Store) FindByID(id int64) (model.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.byID[id]
	if !ok {
		return model.Ticket{}, errs.ErrTicketNotFound
	}
	return clone(t), nil
}

// Insert stores the candidate under a fresh monotonic id. Status and
// ServiceReply are forced to their creation values regardless of input; the
// id is never client-supplied.
func (s *Store) Insert(candidate model.Ticket) model.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidate.ID = s.nextID
	s.nextID++
	candidate.Status = model.TicketStatusNew
	candidate.ServiceReply = ""
	now := s.now()
	candidate.CreatedAt = now
	candidate.UpdatedAt = now

	t := clone(&candidate)
	s.byID[t.ID] = &t
	s.order = append(s.order, t.ID)
	return clone(&t)
}

// ApplyUpdate patches status and serviceReply on the matched record. A nil
// field is left untouched; every other field is untouchable by contract.
func (s *Store) ApplyUpdate(id int64, status *model.TicketStatus, serviceReply *string) (model.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.byID[id]
	if !ok {
		return model.Ticket{}, errs.ErrTicketNotFound
	}
	if status != nil {
		t.Status = *status
	}
	if serviceReply != nil {
		t.ServiceReply = *serviceReply
	}
	t.UpdatedAt = s.now()
	return clone(t), nil
}

// Len reports the number of stored tickets.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}
