package models

import "time"

// EntryTag links one entry (identified polymorphically) to one tag.
// The composite unique index enforces at most one link per (entry, tag).
type EntryTag struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	EntryType Category  `json:"entry_type" gorm:"size:20;not null;uniqueIndex:idx_entry_tag"`
	EntryID   int64     `json:"entry_id" gorm:"not null;uniqueIndex:idx_entry_tag"`
	TagID     int64     `json:"tag_id" gorm:"not null;index;uniqueIndex:idx_entry_tag"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (EntryTag) TableName() string {
	return "entry_tags"
}

// Ref returns the polymorphic entry reference of the link.
func (et EntryTag) Ref() EntryRef {
	return EntryRef{Category: et.EntryType, ID: et.EntryID}
}

// EntryFeature links one entry to one accessibility feature, with a
// required 1-5 rating of the implementation and optional notes.
type EntryFeature struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	EntryType Category  `json:"entry_type" gorm:"size:20;not null;uniqueIndex:idx_entry_feature"`
	EntryID   int64     `json:"entry_id" gorm:"not null;uniqueIndex:idx_entry_feature"`
	FeatureID int64     `json:"feature_id" gorm:"not null;index;uniqueIndex:idx_entry_feature"`
	Rating    int       `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (EntryFeature) TableName() string {
	return "entry_features"
}

func (ef EntryFeature) Ref() EntryRef {
	return EntryRef{Category: ef.EntryType, ID: ef.EntryID}
}
