package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/banjiha/community/models"
	"github.com/banjiha/community/views"
)

const htmlContentType = "text/html; charset=utf-8"

// ViewController serves the server-rendered board pages.
type ViewController struct {
	renderer *views.Renderer
}

// NewViewController wires the view renderer to the database. The room
// cache is the same instance the RoomController invalidates on creation.
func NewViewController(db *gorm.DB, rooms *views.RoomCache) *ViewController {
	return &ViewController{renderer: views.NewRenderer(&dbSource{db: db}, rooms)}
}

// Home renders the main board.
func (v *ViewController) Home(ctx *gin.Context) {
	v.serve(ctx, "")
}

// Show renders the view named by the path, e.g. /b/freeboard,
// /b/rooms-humor-room, /b/post-12, /b/search?q=점심.
func (v *ViewController) Show(ctx *gin.Context) {
	v.serve(ctx, ctx.Param("state"))
}

func (v *ViewController) serve(ctx *gin.Context, fragment string) {
	state, err := views.ParseState(fragment, ctx.Request.URL.Query())
	if err != nil {
		ctx.Data(http.StatusBadRequest, htmlContentType, []byte(views.ErrorPage(err.Error())))
		return
	}
	page, status := v.renderer.Render(state)
	ctx.Data(status, htmlContentType, []byte(page))
}

// dbSource adapts the model queries to the view layer's Source
// interface, translating storage not-found errors on the way.
type dbSource struct {
	db *gorm.DB
}

func (s *dbSource) ListPosts(filter models.PostFilter) ([]models.PostSummary, error) {
	return models.ListPosts(s.db, filter)
}

func (s *dbSource) GetPost(id uint) (*models.Post, []models.Comment, error) {
	post, comments, err := models.GetPost(s.db, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, views.ErrNotFound
	}
	return post, comments, err
}

func (s *dbSource) ListRooms() ([]models.Room, error) {
	return models.ListRooms(s.db)
}

func (s *dbSource) SearchPosts(query string) ([]models.PostSummary, error) {
	return models.SearchPosts(s.db, query)
}

func (s *dbSource) LatestPosts() ([]models.PostSummary, error) {
	return models.LatestPosts(s.db)
}
