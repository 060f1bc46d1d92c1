package controllers

import (
	"net/http"
	"strconv"

	models "FiveHundred/models/postgres"
	"FiveHundred/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type sessionBody struct {
	SessionDate string `json:"session_date"`
	HostID      *uint  `json:"host_id"`
	Theme       string `json:"theme"`
	Notes       string `json:"notes"`
}

// sessionRow carries the per-session serving count alongside the session
// columns for list responses.
type sessionRow struct {
	models.CncSession
	CocktailCount int `json:"cocktail_count"`
}

const sessionListSelect = "cnc_sessions.*, " +
	"(SELECT COUNT(*) FROM cocktail_servings WHERE cocktail_servings.session_id = cnc_sessions.id) AS cocktail_count"

// @Summary List sessions
// @Description Returns all Cocktails & Cards sessions with their serving counts
// @Tags sessions
// @Produce json
// @Success 200 {array} object
// @Failure 500 {object} object{error=string}
// @Router /sessions [get]
func ListSessions(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sessions []sessionRow
		err := db.Model(&models.CncSession{}).
			Select(sessionListSelect).
			Order("session_date DESC, created_at DESC").
			Scan(&sessions).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching sessions"})
			return
		}
		c.JSON(http.StatusOK, sessions)
	}
}

// @Summary List recent sessions
// @Tags sessions
// @Produce json
// @Param limit query integer false "Maximum sessions to return" default(5)
// @Success 200 {array} object
// @Failure 500 {object} object{error=string}
// @Router /sessions/recent/list [get]
func RecentSessions(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "5"))
		if err != nil || limit <= 0 {
			limit = 5
		}

		var sessions []sessionRow
		err = db.Model(&models.CncSession{}).
			Select(sessionListSelect).
			Order("session_date DESC, created_at DESC").
			Limit(limit).
			Scan(&sessions).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching sessions"})
			return
		}
		c.JSON(http.StatusOK, sessions)
	}
}

// @Summary Get a single session with its cocktail servings
// @Tags sessions
// @Produce json
// @Param id path integer true "Session id"
// @Success 200 {object} postgres.CncSession
// @Failure 404 {object} object{error=string}
// @Router /sessions/{id} [get]
func GetSession(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := utils.ParseIDParam(c, "id")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var session models.CncSession
		err = db.Preload("Host").
			Preload("Servings", func(db *gorm.DB) *gorm.DB {
				return db.Order("created_at ASC")
			}).
			Preload("Servings.Cocktail").
			Preload("Servings.Server").
			First(&session, id).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		c.JSON(http.StatusOK, session)
	}
}

// @Summary Create a session
// @Tags sessions
// @Accept json
// @Produce json
// @Success 201 {object} postgres.CncSession
// @Failure 400 {object} object{error=string}
// @Router /sessions [post]
func CreateSession(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body sessionBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if body.SessionDate == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Session date is required"})
			return
		}

		session := models.CncSession{
			SessionDate: body.SessionDate,
			HostID:      body.HostID,
			Theme:       body.Theme,
			Notes:       body.Notes,
		}
		if err := db.Create(&session).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating session"})
			return
		}
		c.JSON(http.StatusCreated, session)
	}
}

// @Summary Update a session
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path integer true "Session id"
// @Success 200 {object} postgres.CncSession
// @Failure 404 {object} object{error=string}
// @Router /sessions/{id} [put]
func UpdateSession(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := utils.ParseIDParam(c, "id")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var body sessionBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		var session models.CncSession
		if err := db.First(&session, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}

		session.SessionDate = body.SessionDate
		session.HostID = body.HostID
		session.Theme = body.Theme
		session.Notes = body.Notes
		if err := db.Save(&session).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating session"})
			return
		}
		c.JSON(http.StatusOK, session)
	}
}

// @Summary Delete a session
// @Tags sessions
// @Produce json
// @Param id path integer true "Session id"
// @Success 200 {object} object{success=boolean}
// @Failure 404 {object} object{error=string}
// @Router /sessions/{id} [delete]
func DeleteSession(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := utils.ParseIDParam(c, "id")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result := db.Delete(&models.CncSession{}, id)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting session"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// @Summary Record a cocktail served at a session
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path integer true "Session id"
// @Success 201 {object} postgres.CocktailServing
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /sessions/{id}/cocktails [post]
func AddServing(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := utils.ParseIDParam(c, "id")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var body struct {
			CocktailID uint   `json:"cocktail_id"`
			ServedBy   *uint  `json:"served_by"`
			Notes      string `json:"notes"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if body.CocktailID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cocktail ID is required"})
			return
		}

		var session models.CncSession
		if err := db.First(&session, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		if _, err := utils.CheckCocktailExists(db, body.CocktailID); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cocktail not found"})
			return
		}

		serving := models.CocktailServing{
			SessionID:  id,
			CocktailID: body.CocktailID,
			ServedBy:   body.ServedBy,
			Notes:      body.Notes,
		}
		if err := db.Create(&serving).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error adding cocktail to session"})
			return
		}
		c.JSON(http.StatusCreated, serving)
	}
}

// @Summary Remove a cocktail serving from a session
// @Tags sessions
// @Produce json
// @Param id path integer true "Session id"
// @Param servingId path integer true "Serving id"
// @Success 200 {object} object{success=boolean}
// @Failure 404 {object} object{error=string}
// @Router /sessions/{id}/cocktails/{servingId} [delete]
func DeleteServing(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := utils.ParseIDParam(c, "id")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		servingID, err := utils.ParseIDParam(c, "servingId")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result := db.Where("id = ? AND session_id = ?", servingID, id).Delete(&models.CocktailServing{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error removing serving"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Serving not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
