package models

import "gorm.io/gorm"

// Comment is a reply to a post. Deleting the post cascades to its
// comments at the schema level.
type Comment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	PostID      uint      `gorm:"index;not null" json:"post_id"`
	CommentText string    `gorm:"type:text;not null" json:"comment_text"`
	Author      string    `gorm:"size:64;not null" json:"author"`
	Date        LocalTime `json:"date"`
}

// BeforeCreate stamps the creation time when the caller did not.
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.Date.IsZero() {
		c.Date = NowLocal()
	}
	return nil
}
