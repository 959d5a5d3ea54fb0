package models

import "time"

// Accessibility dimensions a tag or feature can be categorized under.
const (
	AccessibilityVisual    = "visual"
	AccessibilityAuditory  = "auditory"
	AccessibilityMotor     = "motor"
	AccessibilityCognitive = "cognitive"
	AccessibilityGeneral   = "general"
)

// ValidAccessibilityType reports whether s is one of the five dimensions.
func ValidAccessibilityType(s string) bool {
	switch s {
	case AccessibilityVisual, AccessibilityAuditory, AccessibilityMotor,
		AccessibilityCognitive, AccessibilityGeneral:
		return true
	}
	return false
}

// Tag is a reusable label shared across all entry categories. Tags are
// deduplicated by slug and owned by nobody.
type Tag struct {
	ID                int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name              string  `json:"name" gorm:"not null"`
	Slug              string  `json:"slug" gorm:"uniqueIndex;size:200;not null"`
	Description       *string `json:"description,omitempty"`
	AccessibilityType string  `json:"accessibility_type" gorm:"size:20;not null;default:general"`

	// UsageCount mirrors the number of live entry_tags rows referencing
	// this tag. The association rows are the source of truth; every code
	// path that writes one adjusts this counter in the same transaction.
	UsageCount int64 `json:"usage_count" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Tag) TableName() string {
	return "tags"
}
