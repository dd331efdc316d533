package models

import "gorm.io/gorm"

// Post categories. Posts in the three plain categories never carry a
// room slug; posts in CategoryRooms always do.
const (
	CategoryMain      = "main"
	CategoryFreeboard = "freeboard"
	CategoryRooms     = "rooms"
	CategoryNotice    = "notice"
)

// Sort orders accepted by post listings.
const (
	SortByDate  = "date"
	SortByLikes = "likes"
)

// Post is a board post. Content is stored verbatim and sanitized at
// render time, not on the way in.
type Post struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Title    string    `gorm:"size:255;not null" json:"title"`
	Content  string    `gorm:"type:text;not null" json:"content"`
	Author   string    `gorm:"size:64;not null" json:"author"`
	Date     LocalTime `gorm:"index" json:"date"`
	Likes    int       `gorm:"not null;default:0" json:"likes"`
	Dislikes int       `gorm:"not null;default:0" json:"dislikes"`
	Category string    `gorm:"size:32;not null;default:'main'" json:"category"`
	RoomSlug *string   `gorm:"size:128;index" json:"room_slug"`
	Comments []Comment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// BeforeCreate stamps the creation time when the caller did not.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.Date.IsZero() {
		p.Date = NowLocal()
	}
	return nil
}

// PostSummary is the listing projection of a post: everything except the
// content body.
type PostSummary struct {
	ID       uint      `json:"id"`
	Title    string    `json:"title"`
	Author   string    `json:"author"`
	Date     LocalTime `json:"date"`
	Category string    `json:"category"`
	RoomSlug *string   `json:"room_slug"`
	Likes    int       `json:"likes"`
	Dislikes int       `json:"dislikes"`
}

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c string) bool {
	switch c {
	case CategoryMain, CategoryFreeboard, CategoryRooms, CategoryNotice:
		return true
	}
	return false
}

// PostFilter is the typed filter specification for post listings. It is
// translated into bound query parameters only; no user input reaches the
// SQL text.
type PostFilter struct {
	Category string
	RoomSlug string
	SortBy   string
}

// Scope applies the filter to a post query. A room slug narrows to that
// room; otherwise the plain categories exclude roomed posts so room
// content never leaks into cross-category listings.
func (f PostFilter) Scope() func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if f.Category != "" {
			tx = tx.Where("category = ?", f.Category)
		}
		if f.RoomSlug != "" {
			tx = tx.Where("room_slug = ?", f.RoomSlug)
		} else if f.Category == CategoryMain || f.Category == CategoryFreeboard || f.Category == CategoryNotice {
			tx = tx.Where("room_slug IS NULL")
		}
		if f.SortBy == SortByLikes {
			return tx.Order("likes DESC, id DESC")
		}
		// id is auto-incrementing, so descending id is newest-first.
		return tx.Order("id DESC")
	}
}

// ListPosts returns post summaries matching the filter. The full
// matching set is returned; the board has no pagination.
func ListPosts(db *gorm.DB, f PostFilter) ([]PostSummary, error) {
	summaries := []PostSummary{}
	err := db.Model(&Post{}).Scopes(f.Scope()).Find(&summaries).Error
	return summaries, err
}

// GetPost returns a post with all columns plus its comments in ascending
// creation order. A missing post surfaces as gorm.ErrRecordNotFound.
func GetPost(db *gorm.DB, id uint) (*Post, []Comment, error) {
	var post Post
	if err := db.First(&post, id).Error; err != nil {
		return nil, nil, err
	}
	comments := []Comment{}
	if err := db.Where("post_id = ?", id).Order("date ASC, id ASC").Find(&comments).Error; err != nil {
		return nil, nil, err
	}
	return &post, comments, nil
}

// SearchPosts returns summaries of posts whose title or content contains
// the query as a substring, newest first.
func SearchPosts(db *gorm.DB, query string) ([]PostSummary, error) {
	summaries := []PostSummary{}
	like := "%" + query + "%"
	err := db.Model(&Post{}).
		Where("title LIKE ? OR content LIKE ?", like, like).
		Order("id DESC").
		Find(&summaries).Error
	return summaries, err
}

// LatestPosts returns the five most recent posts across all categories.
func LatestPosts(db *gorm.DB) ([]PostSummary, error) {
	summaries := []PostSummary{}
	err := db.Model(&Post{}).Order("id DESC").Limit(5).Find(&summaries).Error
	return summaries, err
}
