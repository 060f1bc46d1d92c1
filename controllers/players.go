package controllers

import (
	"net/http"
	"strings"

	"FiveHundred/middleware"
	models "FiveHundred/models/postgres"
	"FiveHundred/services/stats"
	"FiveHundred/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary List all players
// @Description Returns every household player
// @Tags players
// @Produce json
// @Success 200 {array} postgres.Player
// @Failure 500 {object} object{error=string}
// @Router /players [get]
func ListPlayers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var players []models.Player
		if err := db.Order("id").Find(&players).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching players"})
			return
		}
		c.JSON(http.StatusOK, players)
	}
}

// @Summary Get a single player
// @Tags players
// @Produce json
// @Param id path integer true "Player id"
// @Success 200 {object} postgres.Player
// @Failure 404 {object} object{error=string}
// @Router /players/{id} [get]
func GetPlayer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := utils.ParseIDParam(c, "id")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		player, err := utils.CheckPlayerExists(db, id)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Player not found"})
			return
		}
		c.JSON(http.StatusOK, player)
	}
}

// @Summary Update a player's profile
// @Description Players can only update their own profile
// @Tags players
// @Accept json
// @Produce json
// @Param id path integer true "Player id"
// @Success 200 {object} postgres.Player
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /players/{id} [put]
func UpdatePlayer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := utils.ParseIDParam(c, "id")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		currentID, ok := middleware.CurrentPlayerID(c)
		if !ok || currentID != id {
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only update your own profile"})
			return
		}

		var body struct {
			Name        string  `json:"name"`
			AvatarColor string  `json:"avatar_color"`
			Email       *string `json:"email"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		player, err := utils.CheckPlayerExists(db, id)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Player not found"})
			return
		}

		var email *string
		if body.Email != nil && *body.Email != "" {
			normalized := strings.ToLower(strings.TrimSpace(*body.Email))

			// Email must stay unique across players
			var count int64
			err := db.Model(&models.Player{}).
				Where("email = ? AND id != ?", normalized, id).
				Count(&count).Error
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking email"})
				return
			}
			if count > 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Email is already in use"})
				return
			}
			email = &normalized
		}

		player.Name = body.Name
		player.AvatarColor = body.AvatarColor
		player.Email = email
		if err := db.Save(player).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating player"})
			return
		}

		c.JSON(http.StatusOK, player)
	}
}

// @Summary Get a player's statistics
// @Description Win/loss record, bidding success, suit preferences, partnership results and cocktails served
// @Tags players
// @Produce json
// @Param id path integer true "Player id"
// @Success 200 {object} stats.PlayerStats
// @Failure 404 {object} object{error=string}
// @Router /players/{id}/stats [get]
func GetPlayerStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := utils.ParseIDParam(c, "id")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if _, err := utils.CheckPlayerExists(db, id); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Player not found"})
			return
		}

		playerStats, err := stats.ComputePlayerStats(db, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error computing statistics"})
			return
		}
		c.JSON(http.StatusOK, playerStats)
	}
}
