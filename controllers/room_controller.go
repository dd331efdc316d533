package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/banjiha/community/models"
	"github.com/banjiha/community/utils"
	"github.com/banjiha/community/views"
)

// RoomController serves the room list and room creation operations.
type RoomController struct {
	db    *gorm.DB
	rooms *views.RoomCache
}

// NewRoomController creates a RoomController. The room cache is shared
// with the view layer so creating a room invalidates name lookups there.
func NewRoomController(db *gorm.DB, rooms *views.RoomCache) *RoomController {
	return &RoomController{db: db, rooms: rooms}
}

// ListRooms returns all rooms ordered by name.
func (r *RoomController) ListRooms(ctx *gin.Context) {
	const cacheKey = "cache:rooms"
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	rooms, err := models.ListRooms(r.db)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "Failed to fetch rooms")
		return
	}

	utils.CacheSetJSON(cacheKey, utils.SuccessBody{Message: "success", Data: rooms}, time.Hour)
	utils.Success(ctx, rooms)
}

// CreateRoom inserts a room, deriving its slug from the name. Names that
// yield an empty slug are rejected; duplicate names or slugs conflict.
func (r *RoomController) CreateRoom(ctx *gin.Context) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		utils.Error(ctx, http.StatusBadRequest, "Room name is required.")
		return
	}

	slug := utils.Slugify(req.Name)
	if slug == "" {
		utils.Error(ctx, http.StatusBadRequest, "Room name cannot be converted to a valid slug.")
		return
	}

	room := models.Room{
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
	}
	if err := r.db.Create(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Error(ctx, http.StatusConflict, "Room name or slug already exists.")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, "Failed to create room")
		return
	}

	r.rooms.Invalidate()
	utils.InvalidateByPrefix("cache:rooms")
	utils.Created(ctx, room)
}
