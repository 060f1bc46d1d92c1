package utils

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"FiveHundred/models/postgres"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Logger logs information about each request
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		// Process request
		c.Next()

		latency := time.Since(startTime)
		log.Printf("%d | %s %s | %s", c.Writer.Status(), c.Request.Method, c.Request.URL.Path, latency)
	}
}

// ErrorHandler handles global errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
	}
}

// ParseIDParam parses a numeric path parameter like :id.
func ParseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return uint(id), nil
}

// Function to check if a player exists
func CheckPlayerExists(db *gorm.DB, playerID uint) (*postgres.Player, error) {
	var player postgres.Player
	result := db.First(&player, playerID)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("player not found")
		}
		return nil, result.Error
	}

	return &player, nil
}

// Function to check if a cocktail exists
func CheckCocktailExists(db *gorm.DB, cocktailID uint) (*postgres.Cocktail, error) {
	var cocktail postgres.Cocktail
	result := db.First(&cocktail, cocktailID)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("cocktail not found")
		}
		return nil, result.Error
	}

	return &cocktail, nil
}
