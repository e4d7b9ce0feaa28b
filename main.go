package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cppla/threadbbs/config"
	"github.com/cppla/threadbbs/models"
	"github.com/cppla/threadbbs/routes"
	"github.com/cppla/threadbbs/services"
	"github.com/cppla/threadbbs/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}
	defer func() { _ = utils.Logger.Sync() }()

	db, err := config.InitDatabase(cfg, models.All()...)
	if err != nil {
		utils.Sugar.Fatalf("database: %v", err)
	}

	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL())

	var revoker utils.TokenRevoker
	rc, err := utils.NewRedis(context.Background(), cfg)
	if err != nil {
		utils.Sugar.Fatalf("redis: %v", err)
	}
	if rc != nil {
		defer rc.Close()
		revoker = utils.NewRedisRevoker(rc)
		utils.Sugar.Infof("token revocation enabled (redis %s:%d)", cfg.RedisHost, cfg.RedisPort)
	} else {
		utils.Sugar.Warn("redis disabled: logout will not revoke tokens")
	}

	r, err := routes.SetupRouter(routes.Deps{
		Config:   cfg,
		DB:       db,
		Tokens:   tokens,
		Revoker:  revoker,
		Auth:     services.NewAuthService(db, tokens, revoker),
		Posts:    services.NewPostService(db),
		Comments: services.NewCommentService(db, cfg.CommentTreeFanout),
	})
	if err != nil {
		utils.Sugar.Fatalf("router: %v", err)
	}

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
