package models

import "gorm.io/gorm"

const (
	RequestStatusPending  = "pending"
	RequestStatusAccepted = "accepted"
	RequestStatusRejected = "rejected"
)

type CollaborationRequest struct {
	gorm.Model

	SenderID    uint  `gorm:"not null;index"`
	RecipientID uint  `gorm:"not null;index"`
	ProjectID   *uint `gorm:"index"`
	Message     string
	Status      string `gorm:"not null;default:pending"` // pending -> accepted | rejected

	// Relationships
	Sender    User     `gorm:"foreignKey:SenderID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Recipient User     `gorm:"foreignKey:RecipientID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Project   *Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}
