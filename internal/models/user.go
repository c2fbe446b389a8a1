package models

import "time"

// User is a farmer account. Credential is the contact phone number or email
// used for login and as the owner key on soil test records.
type User struct {
	ID                   string    `gorm:"primaryKey" json:"user_id"`
	Name                 string    `gorm:"not null" json:"name"`
	Credential           string    `gorm:"uniqueIndex;not null" json:"contact_or_email"`
	PasswordHash         string    `gorm:"not null" json:"-"`
	JoinedOn             time.Time `gorm:"not null" json:"joined_on"`
	NotificationsEnabled bool      `gorm:"not null;default:false" json:"enable_fertilizer_notifications"`
}
