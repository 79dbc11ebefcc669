package models

import "gorm.io/gorm"

type User struct {
	gorm.Model

	FullName     string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Institution  string `gorm:"not null"`
	Department   string `gorm:"not null"`
	Year         string `gorm:"not null"`
	Skills       string `gorm:"not null"` // comma-delimited, e.g. "React,Node.js"
	LinkedinURL  string
	ProfilePic   string

	// Relationships
	OwnedProjects      []Project              `gorm:"foreignKey:OwnerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	ProjectMemberships []ProjectMembership    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Notifications      []Notification         `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	SentRequests       []CollaborationRequest `gorm:"foreignKey:SenderID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	ReceivedRequests   []CollaborationRequest `gorm:"foreignKey:RecipientID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
