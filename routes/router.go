package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cppla/threadbbs/config"
	"github.com/cppla/threadbbs/controllers"
	"github.com/cppla/threadbbs/middleware"
	"github.com/cppla/threadbbs/services"
	"github.com/cppla/threadbbs/utils"
	"github.com/cppla/threadbbs/web"
)

// Deps are the collaborators the router hands to controllers.
type Deps struct {
	Config   config.AppConfig
	DB       *gorm.DB
	Tokens   *utils.TokenManager
	Revoker  utils.TokenRevoker
	Auth     *services.AuthService
	Posts    *services.PostService
	Comments *services.CommentService
}

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(deps Deps) (*gin.Engine, error) {
	cfg := deps.Config
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}
	utils.RegisterValidation()

	tpl, err := web.LoadTemplates()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		utils.Sugar.Warnf("gin access log disabled: %v", err)
		r.Use(gin.Recovery())
	}

	if len(cfg.AllowedOrigins) > 0 {
		corsCfg := cors.Config{
			AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
			ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}
		if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
			corsCfg.AllowAllOrigins = true
		} else {
			corsCfg.AllowOrigins = cfg.AllowedOrigins
		}
		r.Use(cors.New(corsCfg))
	}

	authController := controllers.NewAuthController(deps.Auth)
	postController := controllers.NewPostController(deps.Posts)
	commentController := controllers.NewCommentController(deps.Comments)
	statsController := controllers.NewStatsController(deps.DB)
	pageController := controllers.NewPageController(deps.Posts, deps.Comments, tpl)

	authRequired := middleware.AuthRequired(deps.Tokens, deps.Revoker)

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})
	r.GET("/stats", statsController.GetStats)

	authGroup := r.Group("/auth")
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.GET("/me", authRequired, authController.Me)
	authGroup.POST("/logout", authRequired, authController.Logout)

	postsGroup := r.Group("/posts")
	postsGroup.GET("", postController.ListPosts)
	postsGroup.GET("/:postId", postController.GetPost)
	postsGroup.POST("", authRequired, postController.CreatePost)
	postsGroup.DELETE("/:postId", authRequired, postController.DeletePost)
	postsGroup.GET("/:postId/comments", commentController.ListComments)
	postsGroup.POST("/:postId/comments", authRequired, commentController.CreateComment)

	r.StaticFS("/static", web.Static())
	r.GET("/", pageController.Home)
	r.GET("/p/:id", pageController.Post)
	r.GET("/submit", pageController.Submit)
	r.GET("/login", pageController.Login)
	r.GET("/register", pageController.Register)

	r.NoRoute(func(ctx *gin.Context) {
		if strings.Contains(ctx.GetHeader("Accept"), "text/html") {
			pageController.NotFound(ctx)
			return
		}
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r, nil
}
