package store

import (
	"errors"
	"reflect"
	"testing"

	"github.com/helpdesk-demo/ticket-service/internal/errs"
	"github.com/helpdesk-demo/ticket-service/internal/model"
)

func ticketFixture(userID int64) model.Ticket {
	return model.Ticket{
		UserID:      userID,
		Name:        "Jo Customer",
		Email:       "jo@example.com",
		Description: "printer on fire",
	}
}

func TestInsertAssignsCreationDefaults(t *testing.T) {
	s := New()

	// Whatever the caller puts in id/status/serviceReply must be overridden.
	candidate := ticketFixture(2)
	candidate.ID = 999
	candidate.Status = model.TicketStatusResolved
	candidate.ServiceReply = "smuggled"

	got := s.Insert(candidate)

	if got.ID != 1 {
		t.Errorf("Insert() id = %d, want 1", got.ID)
	}
	if got.Status != model.TicketStatusNew {
		t.Errorf("Insert() status = %q, want %q", got.Status, model.TicketStatusNew)
	}
	if got.ServiceReply != "" {
		t.Errorf("Insert() serviceReply = %q, want empty", got.ServiceReply)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Error("Insert() did not stamp timestamps")
	}
}

func TestInsertIDsAreUniqueAndMonotonic(t *testing.T) {
	s := New()
	var last int64
	for i := 0; i < 10; i++ {
		got := s.Insert(ticketFixture(2))
		if got.ID <= last {
			t.Fatalf("Insert() id = %d after id %d, want strictly increasing", got.ID, last)
		}
		last = got.ID
	}
}

func TestListAllPreservesInsertionOrder(t *testing.T) {
	s := New()
	first := s.Insert(ticketFixture(2))
	second := s.Insert(ticketFixture(3))

	all := s.ListAll()
	if len(all) != 2 {
		t.Fatalf("ListAll() len = %d, want 2", len(all))
	}
	if all[0].ID != first.ID || all[1].ID != second.ID {
		t.Errorf("ListAll() order = [%d %d], want [%d %d]", all[0].ID, all[1].ID, first.ID, second.ID)
	}
}

func TestListByOwner(t *testing.T) {
	s := New()
	s.Insert(ticketFixture(2))
	s.Insert(ticketFixture(3))
	s.Insert(ticketFixture(2))

	tests := []struct {
		name    string
		ownerID int64
		wantLen int
	}{
		{"owner with two tickets", 2, 2},
		{"owner with one ticket", 3, 1},
		{"owner with none", 42, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.ListByOwner(tt.ownerID)
			if got == nil {
				t.Fatal("ListByOwner() = nil, want empty slice")
			}
			if len(got) != tt.wantLen {
				t.Errorf("ListByOwner(%d) len = %d, want %d", tt.ownerID, len(got), tt.wantLen)
			}
			for _, ticket := range got {
				if ticket.UserID != tt.ownerID {
					t.Errorf("ListByOwner(%d) returned ticket owned by %d", tt.ownerID, ticket.UserID)
				}
			}
		})
	}
}

func TestFindByIDNotFound(t *testing.T) {
	s := New()
	if _, err := s.FindByID(999); !errors.Is(err, errs.ErrTicketNotFound) {
		t.Errorf("FindByID(999) error = %v, want ErrTicketNotFound", err)
	}
}

func TestApplyUpdatePatchesOnlyMutableFields(t *testing.T) {
	s := New()
	attachment := &model.Attachment{Name: "log.txt", URI: "file:///log.txt"}
	candidate := ticketFixture(2)
	candidate.Attachment = attachment
	created := s.Insert(candidate)

	status := model.TicketStatusInProgress
	reply := "we are on it"
	updated, err := s.ApplyUpdate(created.ID, &status, &reply)
	if err != nil {
		t.Fatalf("ApplyUpdate() error = %v", err)
	}

	if updated.Status != status || updated.ServiceReply != reply {
		t.Errorf("ApplyUpdate() = {%q %q}, want {%q %q}", updated.Status, updated.ServiceReply, status, reply)
	}
	// Identity-bearing fields must survive any number of updates.
	if updated.UserID != created.UserID || updated.Name != created.Name ||
		updated.Email != created.Email || updated.Description != created.Description {
		t.Error("ApplyUpdate() changed an immutable field")
	}
	if !reflect.DeepEqual(updated.Attachment, attachment) {
		t.Error("ApplyUpdate() changed the attachment")
	}
	if updated.CreatedAt != created.CreatedAt {
		t.Error("ApplyUpdate() changed CreatedAt")
	}
}

func TestApplyUpdateNilFieldsLeaveRecordUntouched(t *testing.T) {
	s := New()
	created := s.Insert(ticketFixture(2))

	status := model.TicketStatusResolved
	if _, err := s.ApplyUpdate(created.ID, &status, nil); err != nil {
		t.Fatalf("ApplyUpdate() error = %v", err)
	}
	got, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if got.Status != model.TicketStatusResolved {
		t.Errorf("status = %q, want %q", got.Status, model.TicketStatusResolved)
	}
	if got.ServiceReply != "" {
		t.Errorf("serviceReply = %q, want untouched empty", got.ServiceReply)
	}
}

func TestApplyUpdateIdempotent(t *testing.T) {
	s := New()
	created := s.Insert(ticketFixture(2))

	status := model.TicketStatusResolved
	reply := "done"
	once, err := s.ApplyUpdate(created.ID, &status, &reply)
	if err != nil {
		t.Fatalf("ApplyUpdate() error = %v", err)
	}
	twice, err := s.ApplyUpdate(created.ID, &status, &reply)
	if err != nil {
		t.Fatalf("ApplyUpdate() second error = %v", err)
	}

	once.UpdatedAt = twice.UpdatedAt // only the timestamp may differ
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("ApplyUpdate() twice = %+v, want same record as once = %+v", twice, once)
	}
}

func TestApplyUpdateNotFoundLeavesStoreUnchanged(t *testing.T) {
	s := New()
	s.Insert(ticketFixture(2))

	status := model.TicketStatusResolved
	if _, err := s.ApplyUpdate(999, &status, nil); !errors.Is(err, errs.ErrTicketNotFound) {
		t.Fatalf("ApplyUpdate(999) error = %v, want ErrTicketNotFound", err)
	}
	if s.Len() != 1 {
		t.Errorf("store len = %d after failed update, want 1", s.Len())
	}
	got, _ := s.FindByID(1)
	if got.Status != model.TicketStatusNew {
		t.Errorf("existing ticket status = %q after failed update, want %q", got.Status, model.TicketStatusNew)
	}
}

func TestListAllReturnsCopies(t *testing.T) {
	s := New()
	candidate := ticketFixture(2)
	candidate.Attachment = &model.Attachment{Name: "log.txt", URI: "file:///log.txt"}
	s.Insert(candidate)

	all := s.ListAll()
	all[0].ServiceReply = "mutated through snapshot"
	all[0].Attachment.URI = "file:///swapped"

	got, _ := s.FindByID(all[0].ID)
	if got.ServiceReply != "" {
		t.Error("mutating a ListAll() snapshot changed the stored record")
	}
	if got.Attachment.URI != "file:///log.txt" {
		t.Error("mutating a snapshot's attachment changed the stored record")
	}
}

func TestSnapshotsDoNotAliasAttachment(t *testing.T) {
	s := New()
	callerAttachment := &model.Attachment{Name: "log.txt", URI: "file:///log.txt"}
	candidate := ticketFixture(2)
	candidate.Attachment = callerAttachment
	created := s.Insert(candidate)

	// Neither the inserting caller's pointer nor any returned copy may reach
	// the stored record.
	callerAttachment.URI = "file:///mutated-by-caller"
	created.Attachment.Name = "mutated-by-insert-copy"

	byOwner := s.ListByOwner(2)
	if len(byOwner) != 1 {
		t.Fatalf("ListByOwner() len = %d, want 1", len(byOwner))
	}
	byOwner[0].Attachment.URI = "file:///mutated-by-owner-list"

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found.Attachment.Name != "log.txt" || found.Attachment.URI != "file:///log.txt" {
		t.Errorf("stored attachment = %+v, want {log.txt file:///log.txt}", found.Attachment)
	}
	found.Attachment.Name = "mutated-by-find"
	again, _ := s.FindByID(created.ID)
	if again.Attachment.Name != "log.txt" {
		t.Error("mutating a FindByID() copy changed the stored record")
	}
}
