package models

import "time"

// Comment is free-form discussion attached to any entry.
type Comment struct {
	ID        int64    `json:"id" gorm:"primaryKey;autoIncrement"`
	EntryType Category `json:"entry_type" gorm:"size:20;not null;index:idx_comment_entry"`
	EntryID   int64    `json:"entry_id" gorm:"not null;index:idx_comment_entry"`

	AuthorID   *string `json:"author_id,omitempty" gorm:"type:uuid;index"`
	AuthorName string  `json:"author_name"`
	Body       string  `json:"body" gorm:"type:text;not null"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Comment) TableName() string {
	return "comments"
}

// EditableBy applies the same legacy rule as entries: rows without a
// recorded author are editable by any signed-in user.
func (c *Comment) EditableBy(userID string) bool {
	if c.AuthorID == nil || *c.AuthorID == "" {
		return true
	}
	return *c.AuthorID == userID
}
