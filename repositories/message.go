//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"chat-sync/domain"

	"github.com/dgraph-io/badger/v4"
)

type IMessageRepository interface {
	StoreMessage(conversation domain.ConversationID, creator domain.UserID, text string, at time.Time) (DiskMessage, error)
	GetMessages(conversation domain.ConversationID, cursor *string) ([]DiskMessage, *string, error)
}

type MessageRepository struct {
	db            *badger.DB
	seq           *badger.Sequence
	log           *slog.Logger
	limitMessages *int
}

func NewMessageRepository(db *badger.DB, log *slog.Logger, limitMessages *int) (*MessageRepository, error) {
	seq, err := db.GetSequence([]byte("seq:msg"), sequenceBandwidth)
	if err != nil {
		return nil, err
	}
	return &MessageRepository{db: db, seq: seq, log: log, limitMessages: limitMessages}, nil
}

func (m *MessageRepository) Close() error { return m.seq.Release() }

type DiskMessage struct {
	ID             int64     `json:"id"`
	ConversationID int64     `json:"conversationId"`
	CreatorID      int64     `json:"creatorId"`
	Text           string    `json:"text"`
	At             time.Time `json:"at"`
}

// StoreMessage persists a message under "msg:{conversation}:{timestamp_padded}:{id_padded}".
// The 19-digit padding keeps keys in chronological order and the id breaks
// ties between messages stored in the same nanosecond.
func (m *MessageRepository) StoreMessage(conversation domain.ConversationID, creator domain.UserID,
	text string, at time.Time) (DiskMessage, error) {
	id, err := nextID(m.seq)
	if err != nil {
		return DiskMessage{}, err
	}
	message := DiskMessage{
		ID:             id,
		ConversationID: int64(conversation),
		CreatorID:      int64(creator),
		Text:           text,
		At:             at.UTC(),
	}
	key := fmt.Sprintf("msg:%d:%019d:%019d", conversation, message.At.UnixNano(), id)
	err = m.db.Update(func(txn *badger.Txn) error {
		return putJSON(txn, key, message)
	})
	return message, err
}

// GetMessages walks a conversation backwards from the cursor (or from the newest
// message) and returns at most limitMessages messages, newest first. The
// returned cursor points at the last message read.
func (m *MessageRepository) GetMessages(conversation domain.ConversationID, cursor *string) ([]DiskMessage, *string, error) {
	var messages []DiskMessage
	var lastKey string
	err := m.db.View(func(txn *badger.Txn) error {
		prefixStr := fmt.Sprintf("msg:%d:", conversation)
		prefix := []byte(prefixStr)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		var seekKey []byte
		switch cursor {
		case nil:
			// Past the newest possible key, so the reverse walk starts at the latest message
			seekKey = append(prefix, []byte("9999999999999999999:9999999999999999999")...)
		default:
			seekKey = append(prefix, []byte(*cursor)...)
		}

		it.Seek(seekKey)
		if cursor != nil && it.ValidForPrefix(prefix) {
			it.Next()
		}

		for ; it.ValidForPrefix(prefix); it.Next() {
			if m.limitMessages != nil && len(messages) == *m.limitMessages {
				m.log.Debug("Message limit reached", "conversation_id", conversation, "limit", *m.limitMessages)
				break
			}
			item := it.Item()
			lastKey = string(item.Key()[len(prefixStr):])
			var message DiskMessage
			if err := item.Value(func(value []byte) error {
				return json.Unmarshal(value, &message)
			}); err != nil {
				return err
			}
			messages = append(messages, message)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return messages, &lastKey, nil
}
