package main

import (
	"github.com/banjiha/community/config"
	"github.com/banjiha/community/models"
	"github.com/banjiha/community/routes"
	"github.com/banjiha/community/utils"
)

func main() {
	cfg := config.Load()

	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.Post{}, &models.Comment{}, &models.Room{})

	if err := config.SeedDatabase(db); err != nil {
		utils.Sugar.Fatalf("seeding failed: %v", err)
	}

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
