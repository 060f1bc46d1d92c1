package controllers

import (
	"errors"
	"net/http"
	"strconv"

	models "FiveHundred/models/postgres"
	"FiveHundred/services/scoring"
	"FiveHundred/services/stats"
	"FiveHundred/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary List games
// @Description Returns all games, optionally filtered by completion state
// @Tags games
// @Produce json
// @Param completed query boolean false "Filter by completed"
// @Success 200 {array} postgres.Game
// @Failure 500 {object} object{error=string}
// @Router /games [get]
func ListGames(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Order("played_date DESC, created_at DESC")
		if completed, ok := c.GetQuery("completed"); ok {
			query = query.Where("completed = ?", completed == "true")
		}

		var games []models.Game
		if err := query.Find(&games).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching games"})
			return
		}
		c.JSON(http.StatusOK, games)
	}
}

// @Summary Get a single game with its hands
// @Tags games
// @Produce json
// @Param id path integer true "Game id"
// @Success 200 {object} postgres.Game
// @Failure 404 {object} object{error=string}
// @Router /games/{id} [get]
func GetGame(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := utils.ParseIDParam(c, "id")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var game models.Game
		err = db.Preload("Hands", func(db *gorm.DB) *gorm.DB {
			return db.Order("hand_number")
		}).First(&game, id).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}

		for i := range game.Hands {
			game.Hands[i].BidDisplay = scoring.BidDisplayName(game.Hands[i].BidTricks, game.Hands[i].BidSuit)
		}

		c.JSON(http.StatusOK, game)
	}
}

// @Summary Create a new game
// @Description Starts a game between two partnerships of four distinct players
// @Tags games
// @Accept json
// @Produce json
// @Success 201 {object} postgres.Game
// @Failure 400 {object} object{error=string}
// @Router /games [post]
func CreateGame(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			PlayedDate   string `json:"played_date"`
			Team1Player1 uint   `json:"team1_player1"`
			Team1Player2 uint   `json:"team1_player2"`
			Team2Player1 uint   `json:"team2_player1"`
			Team2Player2 uint   `json:"team2_player2"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		if body.PlayedDate == "" || body.Team1Player1 == 0 || body.Team1Player2 == 0 ||
			body.Team2Player1 == 0 || body.Team2Player2 == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
			return
		}

		seats := map[uint]bool{
			body.Team1Player1: true,
			body.Team1Player2: true,
			body.Team2Player1: true,
			body.Team2Player2: true,
		}
		if len(seats) != 4 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "All players must be different"})
			return
		}

		game := models.Game{
			PlayedDate:   body.PlayedDate,
			Team1Player1: body.Team1Player1,
			Team1Player2: body.Team1Player2,
			Team2Player1: body.Team2Player1,
			Team2Player2: body.Team2Player2,
		}
		if err := db.Create(&game).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating game"})
			return
		}

		c.JSON(http.StatusCreated, game)
	}
}

// @Summary Record a played hand
// @Description Scores the bid, appends the hand and moves the running team scores
// @Tags games
// @Accept json
// @Produce json
// @Param id path integer true "Game id"
// @Success 201 {object} postgres.Game
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /games/{id}/hands [post]
func AddHand(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := utils.ParseIDParam(c, "id")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var input scoring.HandInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		game, err := scoring.AddHand(db, id, input)
		if err != nil {
			respondScoringError(c, err)
			return
		}

		if err := loadHands(db, game); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching hands"})
			return
		}
		c.JSON(http.StatusCreated, game)
	}
}

// @Summary Remove a hand from a game
// @Description Reverses the hand's score deltas; remaining hands keep their numbers
// @Tags games
// @Produce json
// @Param id path integer true "Game id"
// @Param handId path integer true "Hand id"
// @Success 200 {object} postgres.Game
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /games/{id}/hands/{handId} [delete]
func DeleteHand(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := utils.ParseIDParam(c, "id")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		handID, err := utils.ParseIDParam(c, "handId")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		game, err := scoring.RemoveHand(db, id, handID)
		if err != nil {
			respondScoringError(c, err)
			return
		}
		c.JSON(http.StatusOK, game)
	}
}

// @Summary Complete a game
// @Description Decides the winner from the current scores and freezes the game
// @Tags games
// @Produce json
// @Param id path integer true "Game id"
// @Success 200 {object} postgres.Game
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /games/{id}/complete [post]
func CompleteGame(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := utils.ParseIDParam(c, "id")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		game, err := scoring.Complete(db, id)
		if err != nil {
			respondScoringError(c, err)
			return
		}
		c.JSON(http.StatusOK, game)
	}
}

// @Summary Delete a game
// @Description Deletes the game and all its hands
// @Tags games
// @Produce json
// @Param id path integer true "Game id"
// @Success 200 {object} object{success=boolean}
// @Failure 404 {object} object{error=string}
// @Router /games/{id} [delete]
func DeleteGame(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := utils.ParseIDParam(c, "id")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// Hands go with the game via the FK cascade
		result := db.Delete(&models.Game{}, id)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting game"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// @Summary List recent completed games
// @Tags games
// @Produce json
// @Param limit query integer false "Maximum games to return" default(5)
// @Success 200 {array} postgres.Game
// @Failure 500 {object} object{error=string}
// @Router /games/recent/list [get]
func RecentGames(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "5"))
		if err != nil || limit <= 0 {
			limit = 5
		}

		var games []models.Game
		err = db.Where("completed = ?", true).
			Order("played_date DESC, created_at DESC").
			Limit(limit).
			Find(&games).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching games"})
			return
		}
		c.JSON(http.StatusOK, games)
	}
}

// @Summary Get the leaderboard
// @Description All players ranked by win percentage, ties broken by games played
// @Tags games
// @Produce json
// @Success 200 {array} stats.LeaderboardEntry
// @Failure 500 {object} object{error=string}
// @Router /games/stats/leaderboard [get]
func Leaderboard(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		leaderboard, err := stats.ComputeLeaderboard(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error computing leaderboard"})
			return
		}
		c.JSON(http.StatusOK, leaderboard)
	}
}

func loadHands(db *gorm.DB, game *models.Game) error {
	err := db.Where("game_id = ?", game.ID).Order("hand_number").Find(&game.Hands).Error
	if err != nil {
		return err
	}
	for i := range game.Hands {
		game.Hands[i].BidDisplay = scoring.BidDisplayName(game.Hands[i].BidTricks, game.Hands[i].BidSuit)
	}
	return nil
}

// respondScoringError maps the scoring package's sentinel errors onto HTTP
// statuses.
func respondScoringError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, scoring.ErrGameNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
	case errors.Is(err, scoring.ErrHandNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Hand not found"})
	case errors.Is(err, scoring.ErrGameCompleted):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Game is already completed"})
	case errors.Is(err, scoring.ErrBidderNotInGame):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bidder is not part of this game"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error"})
	}
}
