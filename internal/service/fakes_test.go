package service

import (
	"github.com/jerealeksanteri/rounds-api-sub000/internal/model"

	"gorm.io/gorm"
)

// In-memory fakes for the store interfaces. Get methods return
// gorm.ErrRecordNotFound for missing rows, matching the repositories.

type fakeUserDirectory struct {
	users map[uint]*model.User
}

func newFakeUserDirectory(users ...*model.User) *fakeUserDirectory {
	d := &fakeUserDirectory{users: make(map[uint]*model.User)}
	for _, u := range users {
		d.users[u.ID] = u
	}
	return d
}

func (d *fakeUserDirectory) GetByID(id uint) (*model.User, error) {
	if u, ok := d.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (d *fakeUserDirectory) GetByUsername(username string) (*model.User, error) {
	for _, u := range d.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (d *fakeUserDirectory) GetByIDs(ids []uint) ([]*model.User, error) {
	var out []*model.User
	for _, id := range ids {
		if u, ok := d.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeFriendshipStore struct {
	edges  map[uint]*model.Friendship
	nextID uint
}

func newFakeFriendshipStore() *fakeFriendshipStore {
	return &fakeFriendshipStore{edges: make(map[uint]*model.Friendship), nextID: 1}
}

func (s *fakeFriendshipStore) Create(f *model.Friendship) error {
	f.ID = s.nextID
	s.nextID++
	clone := *f
	s.edges[f.ID] = &clone
	return nil
}

func (s *fakeFriendshipStore) GetByID(id uint) (*model.Friendship, error) {
	if e, ok := s.edges[id]; ok {
		clone := *e
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeFriendshipStore) GetLiveBetween(a, b uint) (*model.Friendship, error) {
	for _, e := range s.sorted() {
		if e.Status == model.FriendshipRejected {
			continue
		}
		if (e.UserID == a && e.FriendID == b) || (e.UserID == b && e.FriendID == a) {
			clone := *e
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeFriendshipStore) GetAnyBetween(a, b uint) (*model.Friendship, error) {
	for _, e := range s.sorted() {
		if (e.UserID == a && e.FriendID == b) || (e.UserID == b && e.FriendID == a) {
			clone := *e
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeFriendshipStore) UpdateStatus(id uint, status string) error {
	e, ok := s.edges[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	e.Status = status
	return nil
}

func (s *fakeFriendshipStore) Delete(id uint) error {
	delete(s.edges, id)
	return nil
}

func (s *fakeFriendshipStore) DeleteByPair(userID, friendID uint) (int64, error) {
	var removed int64
	for id, e := range s.edges {
		if e.UserID == userID && e.FriendID == friendID {
			delete(s.edges, id)
			removed++
		}
	}
	return removed, nil
}

func (s *fakeFriendshipStore) ListAcceptedByUser(userID uint) ([]*model.Friendship, error) {
	var out []*model.Friendship
	for _, e := range s.sorted() {
		if e.Status != model.FriendshipAccepted {
			continue
		}
		if e.UserID == userID || e.FriendID == userID {
			clone := *e
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (s *fakeFriendshipStore) ListPendingTo(userID uint) ([]*model.Friendship, error) {
	var out []*model.Friendship
	for _, e := range s.sorted() {
		if e.Status == model.FriendshipPending && e.FriendID == userID {
			clone := *e
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (s *fakeFriendshipStore) ListPendingFrom(userID uint) ([]*model.Friendship, error) {
	var out []*model.Friendship
	for _, e := range s.sorted() {
		if e.Status == model.FriendshipPending && e.UserID == userID {
			clone := *e
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (s *fakeFriendshipStore) AcceptedFriendIDs(ownerID uint, candidateIDs []uint) ([]uint, error) {
	accepted := make(map[uint]bool)
	for _, e := range s.edges {
		if e.Status != model.FriendshipAccepted {
			continue
		}
		if e.UserID == ownerID {
			accepted[e.FriendID] = true
		}
		if e.FriendID == ownerID {
			accepted[e.UserID] = true
		}
	}
	seen := make(map[uint]bool)
	var out []uint
	for _, id := range candidateIDs {
		if accepted[id] && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out, nil
}

func (s *fakeFriendshipStore) sorted() []*model.Friendship {
	out := make([]*model.Friendship, 0, len(s.edges))
	for id := uint(1); id < s.nextID; id++ {
		if e, ok := s.edges[id]; ok {
			out = append(out, e)
		}
	}
	return out
}

type fakeGroupStore struct {
	groups  map[uint]*model.FriendGroup
	members []*model.FriendGroupMember
	nextID  uint
}

func newFakeGroupStore() *fakeGroupStore {
	return &fakeGroupStore{groups: make(map[uint]*model.FriendGroup), nextID: 1}
}

func (s *fakeGroupStore) Create(group *model.FriendGroup) error {
	group.ID = s.nextID
	s.nextID++
	clone := *group
	s.groups[group.ID] = &clone
	return nil
}

func (s *fakeGroupStore) GetByID(id uint) (*model.FriendGroup, error) {
	if g, ok := s.groups[id]; ok {
		clone := *g
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeGroupStore) Update(group *model.FriendGroup) error {
	if _, ok := s.groups[group.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *group
	s.groups[group.ID] = &clone
	return nil
}

func (s *fakeGroupStore) Delete(id uint) error {
	delete(s.groups, id)
	return nil
}

func (s *fakeGroupStore) ListByOwner(ownerID uint) ([]*model.FriendGroup, error) {
	var out []*model.FriendGroup
	for id := uint(1); id < s.nextID; id++ {
		if g, ok := s.groups[id]; ok && g.OwnerID == ownerID {
			clone := *g
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (s *fakeGroupStore) AddMembers(members []*model.FriendGroupMember) error {
	for _, m := range members {
		clone := *m
		s.members = append(s.members, &clone)
	}
	return nil
}

func (s *fakeGroupStore) ListMembers(groupID uint) ([]*model.FriendGroupMember, error) {
	var out []*model.FriendGroupMember
	for _, m := range s.members {
		if m.GroupID == groupID {
			clone := *m
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (s *fakeGroupStore) MemberUserIDs(groupID uint) ([]uint, error) {
	var out []uint
	for _, m := range s.members {
		if m.GroupID == groupID {
			out = append(out, m.UserID)
		}
	}
	return out, nil
}

func (s *fakeGroupStore) RemoveMember(groupID, userID uint) (int64, error) {
	var kept []*model.FriendGroupMember
	var removed int64
	for _, m := range s.members {
		if m.GroupID == groupID && m.UserID == userID {
			removed++
			continue
		}
		kept = append(kept, m)
	}
	s.members = kept
	return removed, nil
}

func (s *fakeGroupStore) RemoveAllMembers(groupID uint) error {
	var kept []*model.FriendGroupMember
	for _, m := range s.members {
		if m.GroupID != groupID {
			kept = append(kept, m)
		}
	}
	s.members = kept
	return nil
}

type fakeSessionStore struct {
	sessions     map[uint]*model.DrinkingSession
	invites      map[uint]*model.SessionInvite
	nextID       uint
	nextInviteID uint
	inviteErr    error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{
		sessions:     make(map[uint]*model.DrinkingSession),
		invites:      make(map[uint]*model.SessionInvite),
		nextID:       1,
		nextInviteID: 1,
	}
}

func (s *fakeSessionStore) Create(session *model.DrinkingSession) error {
	session.ID = s.nextID
	s.nextID++
	clone := *session
	s.sessions[session.ID] = &clone
	return nil
}

func (s *fakeSessionStore) GetByID(id uint) (*model.DrinkingSession, error) {
	if sess, ok := s.sessions[id]; ok {
		clone := *sess
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeSessionStore) ListByHost(hostID uint) ([]*model.DrinkingSession, error) {
	var out []*model.DrinkingSession
	for id := uint(1); id < s.nextID; id++ {
		if sess, ok := s.sessions[id]; ok && sess.HostID == hostID {
			clone := *sess
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (s *fakeSessionStore) CreateInvite(invite *model.SessionInvite) error {
	if s.inviteErr != nil {
		return s.inviteErr
	}
	invite.ID = s.nextInviteID
	s.nextInviteID++
	clone := *invite
	s.invites[invite.ID] = &clone
	return nil
}

func (s *fakeSessionStore) GetInviteByID(id uint) (*model.SessionInvite, error) {
	if inv, ok := s.invites[id]; ok {
		clone := *inv
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeSessionStore) GetPendingInvite(sessionID, userID uint) (*model.SessionInvite, error) {
	for _, inv := range s.invites {
		if inv.SessionID == sessionID && inv.UserID == userID && inv.Status == model.InvitePending {
			clone := *inv
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeSessionStore) ListInvitesForUser(userID uint) ([]*model.SessionInvite, error) {
	var out []*model.SessionInvite
	for id := uint(1); id < s.nextInviteID; id++ {
		if inv, ok := s.invites[id]; ok && inv.UserID == userID {
			clone := *inv
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (s *fakeSessionStore) UpdateInviteStatus(id uint, status string) error {
	inv, ok := s.invites[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	inv.Status = status
	return nil
}

type fakeCommentStore struct {
	comments      map[uint]*model.SessionComment
	mentions      []*model.CommentMention
	nextID        uint
	nextMentionID uint
}

func newFakeCommentStore() *fakeCommentStore {
	return &fakeCommentStore{
		comments:      make(map[uint]*model.SessionComment),
		nextID:        1,
		nextMentionID: 1,
	}
}

func (s *fakeCommentStore) Create(comment *model.SessionComment) error {
	comment.ID = s.nextID
	s.nextID++
	clone := *comment
	s.comments[comment.ID] = &clone
	return nil
}

func (s *fakeCommentStore) GetByID(id uint) (*model.SessionComment, error) {
	if c, ok := s.comments[id]; ok {
		clone := *c
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeCommentStore) Update(comment *model.SessionComment) error {
	if _, ok := s.comments[comment.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *comment
	s.comments[comment.ID] = &clone
	return nil
}

func (s *fakeCommentStore) Delete(id uint) error {
	delete(s.comments, id)
	return nil
}

func (s *fakeCommentStore) ListBySession(sessionID uint) ([]*model.SessionComment, error) {
	var out []*model.SessionComment
	for id := uint(1); id < s.nextID; id++ {
		if c, ok := s.comments[id]; ok && c.SessionID == sessionID {
			clone := *c
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (s *fakeCommentStore) CreateMentions(mentions []*model.CommentMention) error {
	for _, m := range mentions {
		clone := *m
		clone.ID = s.nextMentionID
		s.nextMentionID++
		s.mentions = append(s.mentions, &clone)
	}
	return nil
}

func (s *fakeCommentStore) ListMentionsByComment(commentID uint) ([]*model.CommentMention, error) {
	var out []*model.CommentMention
	for _, m := range s.mentions {
		if m.CommentID == commentID {
			clone := *m
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (s *fakeCommentStore) DeleteMentionsByComment(commentID uint) error {
	var kept []*model.CommentMention
	for _, m := range s.mentions {
		if m.CommentID != commentID {
			kept = append(kept, m)
		}
	}
	s.mentions = kept
	return nil
}

type fakeNotificationStore struct {
	rows      map[uint]*model.Notification
	nextID    uint
	createErr error
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{rows: make(map[uint]*model.Notification), nextID: 1}
}

func (s *fakeNotificationStore) Create(n *model.Notification) error {
	if s.createErr != nil {
		return s.createErr
	}
	n.ID = s.nextID
	s.nextID++
	clone := *n
	s.rows[n.ID] = &clone
	return nil
}

func (s *fakeNotificationStore) GetByID(id uint) (*model.Notification, error) {
	if n, ok := s.rows[id]; ok {
		clone := *n
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeNotificationStore) ListByUser(userID uint, limit int) ([]*model.Notification, error) {
	var out []*model.Notification
	for id := s.nextID; id >= 1; id-- {
		if n, ok := s.rows[id]; ok && n.UserID == userID {
			clone := *n
			out = append(out, &clone)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (s *fakeNotificationStore) MarkRead(id uint) error {
	n, ok := s.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	n.Read = true
	return nil
}

func (s *fakeNotificationStore) MarkAllRead(userID uint) error {
	for _, n := range s.rows {
		if n.UserID == userID {
			n.Read = true
		}
	}
	return nil
}

func (s *fakeNotificationStore) Delete(id uint) error {
	delete(s.rows, id)
	return nil
}

func (s *fakeNotificationStore) CountUnread(userID uint) (int64, error) {
	var count int64
	for _, n := range s.rows {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

// fakePublisher records every push in order.
type fakePublisher struct {
	pushes []recordedPush
}

type recordedPush struct {
	userID  uint
	event   string
	payload interface{}
}

func (p *fakePublisher) PublishToUser(userID uint, eventName string, payload interface{}) {
	p.pushes = append(p.pushes, recordedPush{userID: userID, event: eventName, payload: payload})
}

func (p *fakePublisher) pushesFor(userID uint) []recordedPush {
	var out []recordedPush
	for _, push := range p.pushes {
		if push.userID == userID {
			out = append(out, push)
		}
	}
	return out
}
