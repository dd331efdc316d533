package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/banjiha/community/config"
	"github.com/banjiha/community/models"
	"github.com/banjiha/community/utils"
)

// PostController serves the post, comment, reaction, search and
// latest-feed operations. Handlers map straight onto the model queries;
// there is no service layer in between.
type PostController struct {
	db *gorm.DB
}

// NewPostController creates a PostController bound to the given database.
func NewPostController(db *gorm.DB) *PostController {
	return &PostController{db: db}
}

// ListPosts returns post summaries filtered by category and/or room slug
// and ordered by recency or likes.
func (p *PostController) ListPosts(ctx *gin.Context) {
	filter := models.PostFilter{
		Category: strings.TrimSpace(ctx.Query("category")),
		RoomSlug: strings.TrimSpace(ctx.Query("roomSlug")),
		SortBy:   ctx.DefaultQuery("sortBy", models.SortByDate),
	}
	if filter.SortBy != models.SortByLikes {
		filter.SortBy = models.SortByDate
	}

	cacheKey := fmt.Sprintf("cache:posts:list:cat=%s:room=%s:sort=%s", filter.Category, filter.RoomSlug, filter.SortBy)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	posts, err := models.ListPosts(p.db, filter)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "Failed to fetch posts")
		return
	}

	utils.CacheSetJSON(cacheKey, utils.SuccessBody{Message: "success", Data: posts}, time.Hour)
	utils.Success(ctx, posts)
}

// GetPost returns one post with all columns plus its comments in
// ascending creation order.
func (p *PostController) GetPost(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, "Invalid post id")
		return
	}

	cacheKey := "cache:post:detail:" + strconv.FormatUint(uint64(id), 10)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	post, comments, err := models.GetPost(p.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, "Post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, "Failed to fetch post")
		return
	}

	payload := gin.H{"post": post, "comments": comments}
	utils.CacheSetJSON(cacheKey, utils.SuccessBody{Message: "success", Data: payload}, time.Hour)
	utils.Success(ctx, payload)
}

// CreatePost inserts a new post. Title and content are required; author
// defaults to the anonymous sentinel and category to main. A room slug
// is only meaningful (and only kept) for the rooms category.
func (p *PostController) CreatePost(ctx *gin.Context) {
	var req struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		Author   string `json:"author"`
		Category string `json:"category"`
		RoomSlug string `json:"roomSlug"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "Title and content are required.")
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		utils.Error(ctx, http.StatusBadRequest, "Title and content are required.")
		return
	}

	category := req.Category
	if category == "" {
		category = models.CategoryMain
	}
	if !models.ValidCategory(category) {
		utils.Error(ctx, http.StatusBadRequest, "Invalid category")
		return
	}

	// Room posts must name their room; posts elsewhere never carry one.
	var roomSlug *string
	if category == models.CategoryRooms {
		if req.RoomSlug == "" {
			utils.Error(ctx, http.StatusBadRequest, "Room slug is required for room posts")
			return
		}
		roomSlug = &req.RoomSlug
	}

	author := req.Author
	if author == "" {
		author = config.Get().AnonymousAuthor
	}

	post := models.Post{
		Title:    req.Title,
		Content:  req.Content,
		Author:   author,
		Category: category,
		RoomSlug: roomSlug,
	}
	if err := p.db.Create(&post).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "Failed to create post")
		return
	}

	utils.InvalidateByPrefix("cache:posts:list:")
	utils.Created(ctx, post)
}

// CreateComment adds a comment to an existing post. The post must exist;
// commenting against a missing id is a 404, not a silent orphan.
func (p *PostController) CreateComment(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, "Invalid post id")
		return
	}

	var req struct {
		CommentText string `json:"comment_text"`
		Author      string `json:"author"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.CommentText) == "" {
		utils.Error(ctx, http.StatusBadRequest, "Comment text is required.")
		return
	}

	var post models.Post
	if err := p.db.Select("id").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, "Post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, "Failed to fetch post")
		return
	}

	author := req.Author
	if author == "" {
		author = config.Get().AnonymousAuthor
	}

	comment := models.Comment{
		PostID:      id,
		CommentText: req.CommentText,
		Author:      author,
	}
	if err := p.db.Create(&comment).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "Failed to create comment")
		return
	}

	utils.InvalidateByPrefix("cache:post:detail:" + strconv.FormatUint(uint64(id), 10))
	utils.Created(ctx, comment)
}

// React increments a post's like or dislike counter by one and returns
// the new value. There is no decrement and no per-user tracking.
func (p *PostController) React(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, "Invalid post id")
		return
	}

	var column string
	switch ctx.Param("action") {
	case "like":
		column = "likes"
	case "dislike":
		column = "dislikes"
	default:
		utils.Error(ctx, http.StatusBadRequest, "Invalid action. Use 'like' or 'dislike'.")
		return
	}

	// Single-statement increment; the relational engine guarantees its
	// atomicity. The read below is a separate round-trip and may observe
	// later concurrent increments.
	res := p.db.Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + 1"))
	if res.Error != nil {
		utils.Error(ctx, http.StatusInternalServerError, "Failed to update "+column)
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(ctx, http.StatusNotFound, "Post not found")
		return
	}

	var count int
	if err := p.db.Model(&models.Post{}).Where("id = ?", id).Select(column).Scan(&count).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "Failed to read updated "+column)
		return
	}

	utils.InvalidateByPrefix("cache:posts:list:")
	utils.InvalidateByPrefix("cache:post:detail:" + strconv.FormatUint(uint64(id), 10))
	utils.Success(ctx, gin.H{"id": id, column: count})
}

// SearchPosts returns summaries of posts whose title or content contains
// the query term.
func (p *PostController) SearchPosts(ctx *gin.Context) {
	query := ctx.Query("q")
	if query == "" {
		utils.Error(ctx, http.StatusBadRequest, "Search query 'q' is required.")
		return
	}

	posts, err := models.SearchPosts(p.db, query)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "Failed to search posts")
		return
	}
	utils.Success(ctx, posts)
}

// ListLatestPosts returns the five newest posts across all categories.
func (p *PostController) ListLatestPosts(ctx *gin.Context) {
	posts, err := models.LatestPosts(p.db)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "Failed to fetch latest posts")
		return
	}
	utils.Success(ctx, posts)
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
