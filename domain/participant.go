// Package domain contains core concepts of the chat system.
// This file defines User entities. A user is identified by its ID only;
// display name and avatar are presentation data that never take part in equality.
package domain

type UserID int64

type User struct {
	ID          UserID `json:"id"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl"`
}

// SameAs reports whether both users share the same identity.
func (u User) SameAs(other User) bool {
	return u.ID == other.ID
}
