package service

import (
	"testing"

	"github.com/jerealeksanteri/rounds-api-sub000/internal/model"
	"github.com/jerealeksanteri/rounds-api-sub000/pkg/apperr"
)

func newFriendshipFixture(users ...*model.User) (*FriendshipService, *fakeFriendshipStore, *fakeNotificationStore, *fakePublisher) {
	edges := newFakeFriendshipStore()
	notifStore := newFakeNotificationStore()
	pub := &fakePublisher{}
	notifier := NewNotificationService(notifStore, pub)
	svc := NewFriendshipService(edges, newFakeUserDirectory(users...), notifier)
	return svc, edges, notifStore, pub
}

func testUsers() []*model.User {
	return []*model.User{
		{ID: 1, Username: "alice"},
		{ID: 2, Username: "bob"},
		{ID: 3, Username: "carol"},
	}
}

func TestSendRequestCreatesPendingEdgeAndNotifies(t *testing.T) {
	svc, edges, notifStore, pub := newFriendshipFixture(testUsers()...)

	edge, err := svc.SendRequest(1, 2)
	if err != nil {
		t.Fatalf("SendRequest: %v", err)
	}
	if edge.UserID != 1 || edge.FriendID != 2 || edge.Status != model.FriendshipPending {
		t.Fatalf("unexpected edge %+v", edge)
	}

	stored := edges.edges[edge.ID]
	if stored == nil || stored.Status != model.FriendshipPending {
		t.Fatalf("edge not stored as pending: %+v", stored)
	}

	var row *model.Notification
	for _, n := range notifStore.rows {
		row = n
	}
	if row == nil {
		t.Fatal("expected a stored notification")
	}
	if row.UserID != 2 || row.Type != model.NotificationFriendRequest {
		t.Fatalf("unexpected notification %+v", row)
	}
	if len(pub.pushesFor(2)) != 1 {
		t.Fatal("expected one push to the target")
	}
}

func TestSendRequestToSelfFailsValidation(t *testing.T) {
	svc, _, _, _ := newFriendshipFixture(testUsers()...)

	if _, err := svc.SendRequest(1, 1); !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected Validation, got %v", err)
	}
}

func TestSendRequestUnknownUsersNotFound(t *testing.T) {
	svc, _, _, _ := newFriendshipFixture(testUsers()...)

	if _, err := svc.SendRequest(1, 99); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected NotFound for unknown target, got %v", err)
	}
	if _, err := svc.SendRequest(99, 1); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected NotFound for unknown requester, got %v", err)
	}
}

func TestSendRequestDuplicateBlockedBothDirections(t *testing.T) {
	svc, _, _, _ := newFriendshipFixture(testUsers()...)

	if _, err := svc.SendRequest(1, 2); err != nil {
		t.Fatalf("SendRequest: %v", err)
	}
	if _, err := svc.SendRequest(1, 2); !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("expected Conflict for same direction, got %v", err)
	}
	if _, err := svc.SendRequest(2, 1); !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("expected Conflict for reverse direction, got %v", err)
	}
}

func TestSendRequestAllowedAfterRejection(t *testing.T) {
	svc, _, _, _ := newFriendshipFixture(testUsers()...)

	edge, err := svc.SendRequest(1, 2)
	if err != nil {
		t.Fatalf("SendRequest: %v", err)
	}
	if _, err := svc.Respond(2, edge.ID, false); err != nil {
		t.Fatalf("Respond: %v", err)
	}

	// Rejected edges do not block a new request.
	if _, err := svc.SendRequest(1, 2); err != nil {
		t.Fatalf("expected new request after rejection, got %v", err)
	}
}

func TestRespondAcceptCreatesMirroredEdge(t *testing.T) {
	svc, edges, _, pub := newFriendshipFixture(testUsers()...)

	edge, err := svc.SendRequest(1, 2)
	if err != nil {
		t.Fatalf("SendRequest: %v", err)
	}

	updated, err := svc.Respond(2, edge.ID, true)
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if updated.Status != model.FriendshipAccepted {
		t.Fatalf("expected accepted edge, got %s", updated.Status)
	}

	// Both directions exist and are accepted.
	forward, err := edges.GetByID(edge.ID)
	if err != nil || forward.Status != model.FriendshipAccepted {
		t.Fatalf("forward edge not accepted: %+v %v", forward, err)
	}
	var mirror *model.Friendship
	for _, e := range edges.edges {
		if e.UserID == 2 && e.FriendID == 1 {
			mirror = e
		}
	}
	if mirror == nil || mirror.Status != model.FriendshipAccepted {
		t.Fatalf("mirrored edge missing or not accepted: %+v", mirror)
	}

	// Requester gets the acceptance notification.
	if len(pub.pushesFor(1)) != 1 {
		t.Fatal("expected one push to the requester")
	}
}

func TestRespondOnlyRecipientMayTransition(t *testing.T) {
	svc, _, _, _ := newFriendshipFixture(testUsers()...)

	edge, err := svc.SendRequest(1, 2)
	if err != nil {
		t.Fatalf("SendRequest: %v", err)
	}

	if _, err := svc.Respond(1, edge.ID, true); !apperr.IsKind(err, apperr.KindForbidden) {
		t.Fatalf("expected Forbidden for requester, got %v", err)
	}
	if _, err := svc.Respond(3, edge.ID, true); !apperr.IsKind(err, apperr.KindForbidden) {
		t.Fatalf("expected Forbidden for third user, got %v", err)
	}
	if _, err := svc.Respond(2, 99, true); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected NotFound for missing edge, got %v", err)
	}
}

func TestRespondNonPendingConflicts(t *testing.T) {
	svc, _, _, _ := newFriendshipFixture(testUsers()...)

	edge, err := svc.SendRequest(1, 2)
	if err != nil {
		t.Fatalf("SendRequest: %v", err)
	}
	if _, err := svc.Respond(2, edge.ID, true); err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if _, err := svc.Respond(2, edge.ID, true); !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("expected Conflict for repeated respond, got %v", err)
	}
}

func TestRemoveDeletesBothDirections(t *testing.T) {
	svc, edges, _, _ := newFriendshipFixture(testUsers()...)

	edge, err := svc.SendRequest(1, 2)
	if err != nil {
		t.Fatalf("SendRequest: %v", err)
	}
	if _, err := svc.Respond(2, edge.ID, true); err != nil {
		t.Fatalf("Respond: %v", err)
	}

	if err := svc.Remove(1, 2); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if len(edges.edges) != 0 {
		t.Fatalf("expected no edges left, got %d", len(edges.edges))
	}
}

func TestRemoveMissingFriendshipNotFound(t *testing.T) {
	svc, _, _, _ := newFriendshipFixture(testUsers()...)

	if err := svc.Remove(1, 2); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestFriendsDedupesMirroredEdges(t *testing.T) {
	svc, _, _, _ := newFriendshipFixture(testUsers()...)

	edge, err := svc.SendRequest(1, 2)
	if err != nil {
		t.Fatalf("SendRequest: %v", err)
	}
	if _, err := svc.Respond(2, edge.ID, true); err != nil {
		t.Fatalf("Respond: %v", err)
	}

	friends, err := svc.Friends(1)
	if err != nil {
		t.Fatalf("Friends: %v", err)
	}
	if len(friends) != 1 || friends[0].ID != 2 {
		t.Fatalf("expected exactly [bob], got %+v", friends)
	}
}

func TestPendingAndSentRequests(t *testing.T) {
	svc, _, _, _ := newFriendshipFixture(testUsers()...)

	if _, err := svc.SendRequest(1, 2); err != nil {
		t.Fatalf("SendRequest: %v", err)
	}
	if _, err := svc.SendRequest(3, 2); err != nil {
		t.Fatalf("SendRequest: %v", err)
	}

	incoming, err := svc.PendingRequests(2)
	if err != nil {
		t.Fatalf("PendingRequests: %v", err)
	}
	if len(incoming) != 2 {
		t.Fatalf("expected 2 incoming requests, got %d", len(incoming))
	}
	if incoming[0].User.ID != 1 || incoming[1].User.ID != 3 {
		t.Fatalf("unexpected senders %d, %d", incoming[0].User.ID, incoming[1].User.ID)
	}

	sent, err := svc.SentRequests(1)
	if err != nil {
		t.Fatalf("SentRequests: %v", err)
	}
	if len(sent) != 1 || sent[0].User.ID != 2 {
		t.Fatalf("unexpected sent requests %+v", sent)
	}
}
