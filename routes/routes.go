package routes

import (
	"time"

	"FiveHundred/controllers"
	"FiveHundred/middleware"
	"FiveHundred/services/ratelimit"
	utils "FiveHundred/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *gorm.DB, redisClient *redis.Client) {
	// utils global
	router.Use(utils.Logger())
	router.Use(utils.ErrorHandler())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Matches the original express-rate-limit window on login mails
	loginLimiter := ratelimit.New(redisClient, 5, 15*time.Minute)

	// API routes group
	api := router.Group("/api")

	api.GET("/ping", controllers.Ping)

	auth := api.Group("/auth")
	{
		auth.POST("/request-magic-link", controllers.RequestMagicLink(db, loginLimiter))

		auth.POST("/verify-token", controllers.VerifyToken(db))

		auth.POST("/link-player", controllers.LinkPlayer(db))

		auth.GET("/me", controllers.Me(db))

		auth.POST("/logout", controllers.Logout)

		auth.GET("/players-for-linking", controllers.PlayersForLinking(db))
	}

	// Routes that require a signed-in player
	authenticated := api.Group("/")
	authenticated.Use(middleware.AuthRequired)
	{
		players := authenticated.Group("/players")
		{
			players.GET("", controllers.ListPlayers(db))
			players.GET("/:id", controllers.GetPlayer(db))
			players.PUT("/:id", controllers.UpdatePlayer(db))
			players.GET("/:id/stats", controllers.GetPlayerStats(db))
		}

		games := authenticated.Group("/games")
		{
			games.GET("", controllers.ListGames(db))
			games.POST("", controllers.CreateGame(db))
			games.GET("/recent/list", controllers.RecentGames(db))
			games.GET("/stats/leaderboard", controllers.Leaderboard(db))
			games.GET("/:id", controllers.GetGame(db))
			games.DELETE("/:id", controllers.DeleteGame(db))
			games.POST("/:id/hands", controllers.AddHand(db))
			games.DELETE("/:id/hands/:handId", controllers.DeleteHand(db))
			games.POST("/:id/complete", controllers.CompleteGame(db))
		}

		cocktails := authenticated.Group("/cocktails")
		{
			cocktails.GET("", controllers.ListCocktails(db))
			cocktails.POST("", controllers.CreateCocktail(db))
			cocktails.GET("/recent/list", controllers.RecentCocktails(db))
			cocktails.GET("/:id", controllers.GetCocktail(db))
			cocktails.PUT("/:id", controllers.UpdateCocktail(db))
			cocktails.DELETE("/:id", controllers.DeleteCocktail(db))
		}

		sessions := authenticated.Group("/sessions")
		{
			sessions.GET("", controllers.ListSessions(db))
			sessions.POST("", controllers.CreateSession(db))
			sessions.GET("/recent/list", controllers.RecentSessions(db))
			sessions.GET("/:id", controllers.GetSession(db))
			sessions.PUT("/:id", controllers.UpdateSession(db))
			sessions.DELETE("/:id", controllers.DeleteSession(db))
			sessions.POST("/:id/cocktails", controllers.AddServing(db))
			sessions.DELETE("/:id/cocktails/:servingId", controllers.DeleteServing(db))
		}
	}
}
