package service

import (
	"testing"
	"time"

	"github.com/jerealeksanteri/rounds-api-sub000/internal/model"
	"github.com/jerealeksanteri/rounds-api-sub000/pkg/apperr"
)

func newSessionFixture() (*SessionService, *fakeSessionStore, *fakePublisher) {
	users := newFakeUserDirectory(
		&model.User{ID: 1, Username: "host"},
		&model.User{ID: 2, Username: "bob"},
	)
	sessions := newFakeSessionStore()
	pub := &fakePublisher{}
	notifier := NewNotificationService(newFakeNotificationStore(), pub)
	return NewSessionService(sessions, users, notifier), sessions, pub
}

func TestCreateSessionRequiresName(t *testing.T) {
	svc, _, _ := newSessionFixture()

	if _, err := svc.CreateSession(1, "", "", "", time.Now()); !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected Validation, got %v", err)
	}

	session, err := svc.CreateSession(1, "Friday rounds", "", "the usual place", time.Now())
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if session.ID == 0 || session.HostID != 1 {
		t.Fatalf("unexpected session %+v", session)
	}
}

func TestInviteCreatesPendingInviteAndNotifies(t *testing.T) {
	svc, sessions, pub := newSessionFixture()

	session, err := svc.CreateSession(1, "rounds", "", "", time.Now())
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	invite, err := svc.Invite(1, session.ID, 2)
	if err != nil {
		t.Fatalf("Invite: %v", err)
	}
	if invite.Status != model.InvitePending || invite.UserID != 2 {
		t.Fatalf("unexpected invite %+v", invite)
	}
	if _, ok := sessions.invites[invite.ID]; !ok {
		t.Fatal("invite not stored")
	}
	if len(pub.pushesFor(2)) != 1 {
		t.Fatal("expected one push to the invitee")
	}
}

func TestInviteGuards(t *testing.T) {
	svc, _, _ := newSessionFixture()

	session, err := svc.CreateSession(1, "rounds", "", "", time.Now())
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	if _, err := svc.Invite(2, session.ID, 2); !apperr.IsKind(err, apperr.KindForbidden) {
		t.Fatalf("expected Forbidden for non-host, got %v", err)
	}
	if _, err := svc.Invite(1, 99, 2); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected NotFound for missing session, got %v", err)
	}
	if _, err := svc.Invite(1, session.ID, 99); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected NotFound for missing user, got %v", err)
	}
}

func TestInviteDuplicatePendingConflicts(t *testing.T) {
	svc, _, _ := newSessionFixture()

	session, err := svc.CreateSession(1, "rounds", "", "", time.Now())
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if _, err := svc.Invite(1, session.ID, 2); err != nil {
		t.Fatalf("Invite: %v", err)
	}
	if _, err := svc.Invite(1, session.ID, 2); !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("expected Conflict, got %v", err)
	}
}

func TestRespondToInviteInviteeOnly(t *testing.T) {
	svc, sessions, _ := newSessionFixture()

	session, err := svc.CreateSession(1, "rounds", "", "", time.Now())
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	invite, err := svc.Invite(1, session.ID, 2)
	if err != nil {
		t.Fatalf("Invite: %v", err)
	}

	if _, err := svc.RespondToInvite(1, invite.ID, true); !apperr.IsKind(err, apperr.KindForbidden) {
		t.Fatalf("expected Forbidden for non-invitee, got %v", err)
	}

	updated, err := svc.RespondToInvite(2, invite.ID, true)
	if err != nil {
		t.Fatalf("RespondToInvite: %v", err)
	}
	if updated.Status != model.InviteAccepted {
		t.Fatalf("expected accepted invite, got %s", updated.Status)
	}
	if sessions.invites[invite.ID].Status != model.InviteAccepted {
		t.Fatal("stored invite not updated")
	}

	// A second respond on a settled invite conflicts.
	if _, err := svc.RespondToInvite(2, invite.ID, false); !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("expected Conflict, got %v", err)
	}
}

func TestRespondToInviteDecline(t *testing.T) {
	svc, _, _ := newSessionFixture()

	session, err := svc.CreateSession(1, "rounds", "", "", time.Now())
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	invite, err := svc.Invite(1, session.ID, 2)
	if err != nil {
		t.Fatalf("Invite: %v", err)
	}

	updated, err := svc.RespondToInvite(2, invite.ID, false)
	if err != nil {
		t.Fatalf("RespondToInvite: %v", err)
	}
	if updated.Status != model.InviteDeclined {
		t.Fatalf("expected declined invite, got %s", updated.Status)
	}
}

func TestListInvites(t *testing.T) {
	svc, _, _ := newSessionFixture()

	session, err := svc.CreateSession(1, "rounds", "", "", time.Now())
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if _, err := svc.Invite(1, session.ID, 2); err != nil {
		t.Fatalf("Invite: %v", err)
	}

	invites, err := svc.ListInvites(2)
	if err != nil {
		t.Fatalf("ListInvites: %v", err)
	}
	if len(invites) != 1 || invites[0].SessionID != session.ID {
		t.Fatalf("unexpected invites %+v", invites)
	}
}
