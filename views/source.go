package views

import (
	"errors"

	"github.com/banjiha/community/models"
)

// ErrNotFound reports that the entity a view asked for does not exist.
var ErrNotFound = errors.New("not found")

// Source supplies the data views render from. The production
// implementation reads the database; tests substitute a fake.
type Source interface {
	ListPosts(filter models.PostFilter) ([]models.PostSummary, error)
	GetPost(id uint) (*models.Post, []models.Comment, error)
	ListRooms() ([]models.Room, error)
	SearchPosts(query string) ([]models.PostSummary, error)
	LatestPosts() ([]models.PostSummary, error)
}
