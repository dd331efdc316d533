package models

import "gorm.io/gorm"

// Room is a named sub-forum identified by a unique slug derived from its
// name. Rooms contain their own post stream via Post.RoomSlug.
type Room struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:128;uniqueIndex;not null" json:"name"`
	Slug        string `gorm:"size:128;uniqueIndex;not null" json:"slug"`
	Description string `gorm:"size:512" json:"description"`
}

// ListRooms returns all rooms ordered by name.
func ListRooms(db *gorm.DB) ([]Room, error) {
	rooms := []Room{}
	err := db.Order("name ASC").Find(&rooms).Error
	return rooms, err
}
