package session

import (
	"chat-sync/domain"

	"github.com/samber/lo"
)

// PresenceSet tracks the audience of the active conversation in join order.
type PresenceSet struct {
	conversationID domain.ConversationID
	members        []domain.User
	loaded         bool
}

func NewPresenceSet() *PresenceSet {
	return &PresenceSet{}
}

// Seed replaces the whole membership with the fetched audience.
// Users admitted live before the first seed are kept when the audience
// snapshot was taken before they joined.
func (p *PresenceSet) Seed(audience domain.ConversationAudience) {
	members := audience.AudienceUsers
	if !p.loaded {
		members = append(append([]domain.User{}, members...), p.members...)
	}
	p.conversationID = audience.ConversationID
	p.members = lo.UniqBy(members, func(u domain.User) domain.UserID { return u.ID })
	p.loaded = true
}

// Admit appends the user unless a member with the same id exists.
func (p *PresenceSet) Admit(user domain.User) bool {
	if p.Contains(user.ID) {
		return false
	}
	p.members = append(p.members, user)
	return true
}

// Evict removes the member with the given id.
func (p *PresenceSet) Evict(userID domain.UserID) bool {
	if !p.Contains(userID) {
		return false
	}
	p.members = lo.Reject(p.members, func(u domain.User, _ int) bool { return u.ID == userID })
	return true
}

func (p *PresenceSet) Contains(userID domain.UserID) bool {
	return lo.ContainsBy(p.members, func(u domain.User) bool { return u.ID == userID })
}

// ConversationID is the id reported by the loaded audience; ok is false until Seed ran.
func (p *PresenceSet) ConversationID() (domain.ConversationID, bool) {
	return p.conversationID, p.loaded
}

func (p *PresenceSet) Loaded() bool { return p.loaded }

func (p *PresenceSet) Members() []domain.User {
	out := make([]domain.User, len(p.members))
	copy(out, p.members)
	return out
}
