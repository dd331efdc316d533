package routes

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/banjiha/community/config"
	"github.com/banjiha/community/controllers"
	"github.com/banjiha/community/middleware"
	"github.com/banjiha/community/utils"
	"github.com/banjiha/community/views"
)

// SetupRouter wires middlewares, controllers and routes.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	if utils.Logger != nil {
		r.Use(utils.AccessLogger(utils.Logger))
		r.Use(utils.RecoveryWithZap(utils.Logger))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	// Uploaded images are served straight from disk by filename.
	r.Static("/uploads", cfg.UploadDir)

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	roomCache := views.NewRoomCache()
	postController := controllers.NewPostController(db)
	roomController := controllers.NewRoomController(db, roomCache)
	uploadController := controllers.NewUploadController()
	viewController := controllers.NewViewController(db, roomCache)

	r.GET("/", viewController.Home)
	r.GET("/b/:state", viewController.Show)

	api := r.Group("/api")
	api.GET("/posts", postController.ListPosts)
	api.GET("/posts/:id", postController.GetPost)
	api.POST("/posts", postController.CreatePost)
	api.POST("/posts/:id/comments", postController.CreateComment)
	api.POST("/posts/:id/:action", postController.React)
	api.GET("/rooms", roomController.ListRooms)
	api.POST("/rooms", roomController.CreateRoom)
	api.GET("/search/posts", postController.SearchPosts)
	api.GET("/latest_posts", postController.ListLatestPosts)
	api.POST("/upload/image", uploadController.UploadImage)

	return r
}
