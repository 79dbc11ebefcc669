package models

import "gorm.io/gorm"

// Review rows are immutable once written; there is no edit or delete path.
type Review struct {
	gorm.Model

	ReviewerID uint  `gorm:"not null;index"`
	RevieweeID uint  `gorm:"not null;index"`
	ProjectID  *uint `gorm:"index"`
	Rating     int   `gorm:"not null"` // 1..5, validated at the handler
	Comment    string

	// Relationships
	Reviewer User     `gorm:"foreignKey:ReviewerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Reviewee User     `gorm:"foreignKey:RevieweeID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Project  *Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
}
