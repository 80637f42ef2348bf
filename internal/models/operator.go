package models

import "time"

// Operator is a staff login account. Operators are seeded at startup;
// there is no self-service signup.
type Operator struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:80;uniqueIndex;not null" json:"nome"`
	PasswordHash string    `gorm:"size:128;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
