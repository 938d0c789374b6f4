package service

import (
	"errors"
	"testing"

	"github.com/jerealeksanteri/rounds-api-sub000/internal/model"
	"github.com/jerealeksanteri/rounds-api-sub000/pkg/apperr"
)

func newNotificationFixture() (*NotificationService, *fakeNotificationStore, *fakePublisher) {
	store := newFakeNotificationStore()
	pub := &fakePublisher{}
	return NewNotificationService(store, pub), store, pub
}

func TestCreateAndSendPersistsThenPushes(t *testing.T) {
	svc, store, pub := newNotificationFixture()

	n, err := svc.CreateAndSend(7, model.NotificationFriendRequest, "New friend request", "alice wants to be your friend", `{"friendship_id":1}`)
	if err != nil {
		t.Fatalf("CreateAndSend: %v", err)
	}
	if n.ID == 0 {
		t.Fatal("expected persisted id on returned notification")
	}
	if _, ok := store.rows[n.ID]; !ok {
		t.Fatalf("notification %d not stored", n.ID)
	}

	pushes := pub.pushesFor(7)
	if len(pushes) != 1 {
		t.Fatalf("expected 1 push, got %d", len(pushes))
	}
	if pushes[0].event != "notification" {
		t.Fatalf("expected event notification, got %s", pushes[0].event)
	}
	payload, ok := pushes[0].payload.(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected payload type %T", pushes[0].payload)
	}
	if payload["id"] != n.ID {
		t.Fatalf("pushed id %v does not match stored id %d", payload["id"], n.ID)
	}
}

func TestCreateAndSendStoreFailureSkipsPush(t *testing.T) {
	svc, store, pub := newNotificationFixture()
	store.createErr = errors.New("db down")

	if _, err := svc.CreateAndSend(7, model.NotificationMention, "t", "m", ""); err == nil {
		t.Fatal("expected error from failed persist")
	}
	if len(pub.pushes) != 0 {
		t.Fatalf("expected no push after failed persist, got %d", len(pub.pushes))
	}
}

func TestSendToManyEmptyIsNoop(t *testing.T) {
	svc, _, pub := newNotificationFixture()

	svc.SendToMany(nil, &model.Notification{ID: 1, UserID: 1})
	if len(pub.pushes) != 0 {
		t.Fatalf("expected no pushes, got %d", len(pub.pushes))
	}
}

func TestSendToManyPushesInOrder(t *testing.T) {
	svc, _, pub := newNotificationFixture()

	svc.SendToMany([]uint{3, 1, 2}, &model.Notification{ID: 9, UserID: 3})

	if len(pub.pushes) != 3 {
		t.Fatalf("expected 3 pushes, got %d", len(pub.pushes))
	}
	want := []uint{3, 1, 2}
	for i, push := range pub.pushes {
		if push.userID != want[i] {
			t.Fatalf("push %d went to %d, want %d", i, push.userID, want[i])
		}
	}
}

func TestMarkReadOwnerChecks(t *testing.T) {
	svc, store, _ := newNotificationFixture()
	store.rows[1] = &model.Notification{ID: 1, UserID: 7}
	store.nextID = 2

	if err := svc.MarkRead(8, 1); !apperr.IsKind(err, apperr.KindForbidden) {
		t.Fatalf("expected Forbidden for non-owner, got %v", err)
	}
	if err := svc.MarkRead(7, 99); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected NotFound for missing row, got %v", err)
	}
	if err := svc.MarkRead(7, 1); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if !store.rows[1].Read {
		t.Fatal("notification not flipped to read")
	}

	// Already read is a no-op, not an error.
	if err := svc.MarkRead(7, 1); err != nil {
		t.Fatalf("repeated MarkRead: %v", err)
	}
}

func TestDeleteOwnerOnly(t *testing.T) {
	svc, store, _ := newNotificationFixture()
	store.rows[1] = &model.Notification{ID: 1, UserID: 7}
	store.nextID = 2

	if err := svc.Delete(8, 1); !apperr.IsKind(err, apperr.KindForbidden) {
		t.Fatalf("expected Forbidden, got %v", err)
	}
	if err := svc.Delete(7, 1); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := store.rows[1]; ok {
		t.Fatal("notification still present after delete")
	}
}

func TestUnreadCountFallsBackToStore(t *testing.T) {
	svc, store, _ := newNotificationFixture()
	store.rows[1] = &model.Notification{ID: 1, UserID: 7}
	store.rows[2] = &model.Notification{ID: 2, UserID: 7, Read: true}
	store.rows[3] = &model.Notification{ID: 3, UserID: 8}
	store.nextID = 4

	count, err := svc.UnreadCount(7)
	if err != nil {
		t.Fatalf("UnreadCount: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 unread, got %d", count)
	}
}
