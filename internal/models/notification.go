package models

import "gorm.io/gorm"

type Notification struct {
	gorm.Model

	UserID  uint   `gorm:"not null;index"`
	Type    string `gorm:"not null"` // e.g. "incoming_request"
	Message string

	// Snapshots taken when the notification is created; they are not
	// updated if the sender renames themselves or the project changes.
	SenderName   string
	ProjectTitle string

	IsRead bool `gorm:"not null;default:false"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
