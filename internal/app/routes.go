package app

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"

	"github.com/anousone23/twitter-clone/internal/auth"
	"github.com/anousone23/twitter-clone/internal/cache"
	"github.com/anousone23/twitter-clone/internal/config"
	"github.com/anousone23/twitter-clone/internal/handlers"
	"github.com/anousone23/twitter-clone/internal/media"
	"github.com/anousone23/twitter-clone/internal/repo"
	"github.com/anousone23/twitter-clone/internal/service"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client, uploader media.Uploader) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	userRepo := repo.NewPGUserRepo(db)
	postRepo := repo.NewPGPostRepo(db)
	notificationRepo := repo.NewPGNotificationRepo(db)

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL.Duration())
	feedCache := cache.NewFeedCache(rdb, cfg.Redis.FeedTTL.Duration())

	userSvc := service.NewUserService(userRepo, notificationRepo, uploader)
	postSvc := service.NewPostService(postRepo, userRepo, notificationRepo, uploader, feedCache)
	notificationSvc := service.NewNotificationService(notificationRepo)

	authHandler := handlers.NewAuthHandler(tokens, userSvc, cfg.JWT.CookieMaxAge(), cfg.App.IsProd())
	userHandler := handlers.NewUserHandler(userSvc)
	postHandler := handlers.NewPostHandler(postSvc)
	notificationHandler := handlers.NewNotificationHandler(notificationSvc)

	api := r.Group("/api")
	gate := auth.RequireAuth(tokens, userRepo)

	authGroup := api.Group("/auth")
	authGroup.POST("/sign-up", authHandler.SignUp)
	authGroup.POST("/sign-in", authHandler.SignIn)
	authGroup.POST("/logout", authHandler.Logout)
	authGroup.GET("/me", gate, authHandler.Me)

	users := api.Group("/users")
	users.GET("/profile/:username", userHandler.Profile)
	users.GET("/suggested", gate, userHandler.Suggested)
	users.POST("/follow/:id", gate, userHandler.Follow)
	users.POST("/update", gate, userHandler.Update)

	posts := api.Group("/posts")
	posts.GET("", postHandler.All)
	posts.GET("/user/:username", postHandler.ByUser)
	posts.GET("/likes/:id", postHandler.Liked)
	posts.GET("/following", gate, postHandler.Following)
	posts.POST("", gate, postHandler.Create)
	posts.POST("/comment/:id", gate, postHandler.Comment)
	posts.POST("/like/:id", gate, postHandler.Like)
	posts.DELETE("/:id", gate, postHandler.Delete)

	notifications := api.Group("/notifications", gate)
	notifications.GET("", notificationHandler.List)
	notifications.DELETE("", notificationHandler.DeleteAll)
	notifications.DELETE("/:id", notificationHandler.Delete)
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Twitter Clone API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
			"api":     "/api",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}
