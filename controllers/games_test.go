package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"FiveHundred/controllers"
	"FiveHundred/models/postgres"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq int64

func setupDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:controllers%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(postgres.Player{}, postgres.Game{}, postgres.Hand{}))

	for i := 1; i <= 4; i++ {
		player := postgres.Player{Name: fmt.Sprintf("Player %d", i)}
		require.NoError(t, db.Create(&player).Error)
	}
	return db
}

func gamesRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	games := r.Group("/api/games")
	{
		games.POST("", controllers.CreateGame(db))
		games.GET("/:id", controllers.GetGame(db))
		games.POST("/:id/hands", controllers.AddHand(db))
		games.DELETE("/:id/hands/:handId", controllers.DeleteHand(db))
		games.POST("/:id/complete", controllers.CompleteGame(db))
	}
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateGame(t *testing.T) {
	db := setupDB(t)
	r := gamesRouter(db)

	t.Run("Create game successfully", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/games", gin.H{
			"played_date":   "2025-06-01",
			"team1_player1": 1,
			"team1_player2": 2,
			"team2_player1": 3,
			"team2_player2": 4,
		})
		assert.Equal(t, http.StatusCreated, w.Code)

		var game postgres.Game
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &game))
		assert.False(t, game.Completed)
		assert.Zero(t, game.Team1Score)
	})

	t.Run("Duplicate players rejected", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/games", gin.H{
			"played_date":   "2025-06-01",
			"team1_player1": 1,
			"team1_player2": 1,
			"team2_player1": 3,
			"team2_player2": 4,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Missing fields rejected", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/games", gin.H{
			"team1_player1": 1,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGameHandFlow(t *testing.T) {
	db := setupDB(t)
	r := gamesRouter(db)

	w := doJSON(t, r, http.MethodPost, "/api/games", gin.H{
		"played_date":   "2025-06-01",
		"team1_player1": 1,
		"team1_player2": 2,
		"team2_player1": 3,
		"team2_player2": 4,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var game postgres.Game
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &game))

	gamePath := fmt.Sprintf("/api/games/%d", game.ID)

	// Six spades made with three defender tricks
	w = doJSON(t, r, http.MethodPost, gamePath+"/hands", gin.H{
		"bidder_id":       1,
		"bid_tricks":      6,
		"bid_suit":        "spades",
		"bid_won":         true,
		"opponent_tricks": 3,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var updated postgres.Game
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, 40, updated.Team1Score)
	assert.Equal(t, 30, updated.Team2Score)
	require.Len(t, updated.Hands, 1)
	assert.Equal(t, "6♠", updated.Hands[0].BidDisplay)

	// Unknown bidder is a client error
	w = doJSON(t, r, http.MethodPost, gamePath+"/hands", gin.H{
		"bidder_id": 42,
		"bid_suit":  "spades",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Complete and freeze
	w = doJSON(t, r, http.MethodPost, gamePath+"/complete", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var completed postgres.Game
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &completed))
	require.NotNil(t, completed.WinnerTeam)
	assert.Equal(t, 1, *completed.WinnerTeam)

	w = doJSON(t, r, http.MethodPost, gamePath+"/hands", gin.H{
		"bidder_id": 1,
		"bid_suit":  "spades",
		"bid_won":   true,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("%s/hands/%d", gamePath, updated.Hands[0].ID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetGameNotFound(t *testing.T) {
	db := setupDB(t)
	r := gamesRouter(db)

	w := doJSON(t, r, http.MethodGet, "/api/games/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
