package models

import "time"

// Review is a structured write-up with its own 1-5 rating, attached to
// any entry.
type Review struct {
	ID        int64    `json:"id" gorm:"primaryKey;autoIncrement"`
	EntryType Category `json:"entry_type" gorm:"size:20;not null;index:idx_review_entry"`
	EntryID   int64    `json:"entry_id" gorm:"not null;index:idx_review_entry"`

	AuthorID   *string `json:"author_id,omitempty" gorm:"type:uuid;index"`
	AuthorName string  `json:"author_name"`
	Title      string  `json:"title" gorm:"not null"`
	Body       string  `json:"body" gorm:"type:text"`
	Rating     int     `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Review) TableName() string {
	return "reviews"
}

func (r *Review) EditableBy(userID string) bool {
	if r.AuthorID == nil || *r.AuthorID == "" {
		return true
	}
	return *r.AuthorID == userID
}
