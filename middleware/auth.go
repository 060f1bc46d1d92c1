package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// playerKey is the session key holding the signed-in player's id.
const playerKey = "player_id"

// AuthRequired is a simple middleware to check the session.
func AuthRequired(c *gin.Context) {
	session := sessions.Default(c)
	player := session.Get(playerKey)
	if player == nil {
		// Abort the request with the appropriate error code
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	// Continue down the chain to handler etc
	c.Next()
}

// SignIn stores the player id in the request's session.
func SignIn(c *gin.Context, playerID uint) error {
	session := sessions.Default(c)
	session.Set(playerKey, playerID)
	return session.Save()
}

// SignOut clears the session. Reports whether there was one to clear.
func SignOut(c *gin.Context) (bool, error) {
	session := sessions.Default(c)
	if session.Get(playerKey) == nil {
		return false, nil
	}
	session.Delete(playerKey)
	return true, session.Save()
}

// CurrentPlayerID returns the signed-in player's id, if any.
func CurrentPlayerID(c *gin.Context) (uint, bool) {
	session := sessions.Default(c)
	v := session.Get(playerKey)
	id, ok := v.(uint)
	return id, ok
}
