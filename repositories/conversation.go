//go:generate go run go.uber.org/mock/mockgen -source=conversation.go -destination=../mocks/mock_conversation_repository.go -package=mocks
package repositories

import (
	"fmt"
	"time"

	"chat-sync/domain"
	"chat-sync/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
)

type IConversationRepository interface {
	CreateConversation(name string, creator domain.UserID, audience []domain.UserID) (domain.Conversation, error)
	GetConversation(id domain.ConversationID) (domain.Conversation, error)
	ListConversations(member domain.UserID) ([]domain.Conversation, error)
	GetAudience(id domain.ConversationID) ([]domain.UserID, error)
	AddMember(id domain.ConversationID, userID domain.UserID) (bool, error)
	RemoveMember(id domain.ConversationID, userID domain.UserID) (bool, error)
}

type ConversationRepository struct {
	db  *badger.DB
	seq *badger.Sequence
}

// DiskConversation stores a conversation together with its audience, in join order.
type DiskConversation struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatorID int64     `json:"creatorId"`
	Audience  []int64   `json:"audience"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewConversationRepository(db *badger.DB) (*ConversationRepository, error) {
	seq, err := db.GetSequence([]byte("seq:conv"), sequenceBandwidth)
	if err != nil {
		return nil, err
	}
	return &ConversationRepository{db: db, seq: seq}, nil
}

func (c *ConversationRepository) Close() error { return c.seq.Release() }

func conversationKey(id domain.ConversationID) string {
	return fmt.Sprintf("conv:%019d", id)
}

// CreateConversation stores a new conversation. The creator is always part of the audience.
func (c *ConversationRepository) CreateConversation(name string, creator domain.UserID,
	audience []domain.UserID) (domain.Conversation, error) {
	id, err := nextID(c.seq)
	if err != nil {
		return domain.Conversation{}, err
	}
	members := lo.Uniq(append([]int64{int64(creator)}, lo.Map(audience, func(u domain.UserID, _ int) int64 {
		return int64(u)
	})...))
	disk := DiskConversation{ID: id, Name: name, CreatorID: int64(creator), Audience: members, CreatedAt: time.Now().UTC()}
	err = c.db.Update(func(txn *badger.Txn) error {
		return putJSON(txn, conversationKey(domain.ConversationID(id)), disk)
	})
	if err != nil {
		return domain.Conversation{}, err
	}
	return disk.toDomain(), nil
}

func (c *ConversationRepository) GetConversation(id domain.ConversationID) (domain.Conversation, error) {
	var disk DiskConversation
	if err := c.db.View(func(txn *badger.Txn) error { return c.get(txn, id, &disk) }); err != nil {
		return domain.Conversation{}, err
	}
	return disk.toDomain(), nil
}

// ListConversations returns the conversations whose audience contains member.
// A zero member lists every conversation.
func (c *ConversationRepository) ListConversations(member domain.UserID) ([]domain.Conversation, error) {
	var out []domain.Conversation
	err := c.db.View(func(txn *badger.Txn) error {
		disks, err := scanJSON[DiskConversation](txn, "conv:")
		if err != nil {
			return err
		}
		for _, d := range disks {
			if member == 0 || lo.Contains(d.Audience, int64(member)) {
				out = append(out, d.toDomain())
			}
		}
		return nil
	})
	return out, err
}

func (c *ConversationRepository) GetAudience(id domain.ConversationID) ([]domain.UserID, error) {
	var disk DiskConversation
	if err := c.db.View(func(txn *badger.Txn) error { return c.get(txn, id, &disk) }); err != nil {
		return nil, err
	}
	return lo.Map(disk.Audience, func(u int64, _ int) domain.UserID { return domain.UserID(u) }), nil
}

// AddMember appends the user to the audience. It reports false when already a member.
func (c *ConversationRepository) AddMember(id domain.ConversationID, userID domain.UserID) (bool, error) {
	return c.update(id, func(d *DiskConversation) bool {
		if lo.Contains(d.Audience, int64(userID)) {
			return false
		}
		d.Audience = append(d.Audience, int64(userID))
		return true
	})
}

// RemoveMember drops the user from the audience. It reports false when not a member.
func (c *ConversationRepository) RemoveMember(id domain.ConversationID, userID domain.UserID) (bool, error) {
	return c.update(id, func(d *DiskConversation) bool {
		if !lo.Contains(d.Audience, int64(userID)) {
			return false
		}
		d.Audience = lo.Without(d.Audience, int64(userID))
		return true
	})
}

func (c *ConversationRepository) update(id domain.ConversationID, mutate func(*DiskConversation) bool) (bool, error) {
	changed := false
	err := c.db.Update(func(txn *badger.Txn) error {
		var disk DiskConversation
		if err := c.get(txn, id, &disk); err != nil {
			return err
		}
		if changed = mutate(&disk); !changed {
			return nil
		}
		return putJSON(txn, conversationKey(id), disk)
	})
	return changed, err
}

func (c *ConversationRepository) get(txn *badger.Txn, id domain.ConversationID, disk *DiskConversation) error {
	err := getJSON(txn, conversationKey(id), disk)
	if err == badger.ErrKeyNotFound {
		return fmt.Errorf("%w: %d", errors.ErrConversationNotFound, id)
	}
	return err
}

func (d DiskConversation) toDomain() domain.Conversation {
	return domain.Conversation{
		ID:        domain.ConversationID(d.ID),
		Name:      d.Name,
		CreatorID: domain.UserID(d.CreatorID),
		CreatedAt: d.CreatedAt,
	}
}
