package views

import (
	"sync"

	"github.com/banjiha/community/models"
)

// RoomCache memoizes the room list for the life of the process. It is
// populated on first use and invalidated only when a room is created, so
// repeated name lookups while rendering a post list cost one fetch.
type RoomCache struct {
	mu    sync.Mutex
	rooms []models.Room
	valid bool
}

// NewRoomCache creates an empty RoomCache.
func NewRoomCache() *RoomCache {
	return &RoomCache{}
}

// Rooms returns the cached room list, fetching it from src on the first
// call after creation or invalidation.
func (c *RoomCache) Rooms(src Source) ([]models.Room, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid {
		return c.rooms, nil
	}
	rooms, err := src.ListRooms()
	if err != nil {
		return nil, err
	}
	c.rooms = rooms
	c.valid = true
	return rooms, nil
}

// Name returns the display name for a room slug, or the empty string
// when the slug is unknown or the lookup fails.
func (c *RoomCache) Name(src Source, slug string) string {
	if slug == "" {
		return ""
	}
	rooms, err := c.Rooms(src)
	if err != nil {
		return ""
	}
	for _, room := range rooms {
		if room.Slug == slug {
			return room.Name
		}
	}
	return ""
}

// Invalidate drops the cached list; the next Rooms call fetches fresh.
func (c *RoomCache) Invalidate() {
	c.mu.Lock()
	c.rooms = nil
	c.valid = false
	c.mu.Unlock()
}
