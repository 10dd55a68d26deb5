//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
package repositories

import (
	"fmt"
	"time"

	"chat-sync/domain"
	"chat-sync/errors"

	"github.com/dgraph-io/badger/v4"
)

type IUserRepository interface {
	CreateUser(displayName, avatarURL string) (domain.User, error)
	GetUser(id domain.UserID) (domain.User, error)
	ListUsers() ([]domain.User, error)
}

type UserRepository struct {
	db  *badger.DB
	seq *badger.Sequence
}

// DiskUser is the stored form of a user.
type DiskUser struct {
	ID          int64     `json:"id"`
	DisplayName string    `json:"displayName"`
	AvatarURL   string    `json:"avatarUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewUserRepository(db *badger.DB) (*UserRepository, error) {
	seq, err := db.GetSequence([]byte("seq:user"), sequenceBandwidth)
	if err != nil {
		return nil, err
	}
	return &UserRepository{db: db, seq: seq}, nil
}

// Close releases the leased ids.
func (u *UserRepository) Close() error { return u.seq.Release() }

func userKey(id domain.UserID) string {
	return fmt.Sprintf("user:%019d", id)
}

func (u *UserRepository) CreateUser(displayName, avatarURL string) (domain.User, error) {
	id, err := nextID(u.seq)
	if err != nil {
		return domain.User{}, err
	}
	disk := DiskUser{ID: id, DisplayName: displayName, AvatarURL: avatarURL, CreatedAt: time.Now().UTC()}
	err = u.db.Update(func(txn *badger.Txn) error {
		return putJSON(txn, userKey(domain.UserID(id)), disk)
	})
	if err != nil {
		return domain.User{}, err
	}
	return disk.toDomain(), nil
}

func (u *UserRepository) GetUser(id domain.UserID) (domain.User, error) {
	var disk DiskUser
	err := u.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, userKey(id), &disk)
	})
	if err == badger.ErrKeyNotFound {
		return domain.User{}, fmt.Errorf("%w: %d", errors.ErrUserNotFound, id)
	}
	if err != nil {
		return domain.User{}, err
	}
	return disk.toDomain(), nil
}

func (u *UserRepository) ListUsers() ([]domain.User, error) {
	var users []domain.User
	err := u.db.View(func(txn *badger.Txn) error {
		disks, err := scanJSON[DiskUser](txn, "user:")
		for _, d := range disks {
			users = append(users, d.toDomain())
		}
		return err
	})
	return users, err
}

func (d DiskUser) toDomain() domain.User {
	return domain.User{ID: domain.UserID(d.ID), DisplayName: d.DisplayName, AvatarURL: d.AvatarURL}
}
