package models

import "time"

// AccessibilityFeature is a reusable label like Tag, but links to entries
// carry a per-entry rating of how well the feature is implemented.
type AccessibilityFeature struct {
	ID                int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name              string  `json:"name" gorm:"not null"`
	Slug              string  `json:"slug" gorm:"uniqueIndex;size:200;not null"`
	Description       *string `json:"description,omitempty"`
	AccessibilityType string  `json:"accessibility_type" gorm:"size:20;not null;default:general"`

	// Same bookkeeping contract as Tag.UsageCount.
	UsageCount int64 `json:"usage_count" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (AccessibilityFeature) TableName() string {
	return "accessibility_features"
}
