package controllers

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"FiveHundred/middleware"
	models "FiveHundred/models/postgres"
	"FiveHundred/services/email"
	"FiveHundred/services/ratelimit"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

func magicLinkSecret() []byte {
	return []byte(os.Getenv("MAGIC_LINK_SECRET"))
}

func magicLinkExpiry() time.Duration {
	minutes, err := strconv.Atoi(os.Getenv("MAGIC_LINK_EXPIRY_MINUTES"))
	if err != nil || minutes <= 0 {
		minutes = 15
	}
	return time.Duration(minutes) * time.Minute
}

// generateMagicToken signs a short-lived JWT for the email. The random jti
// keeps two links requested in the same second distinct.
func generateMagicToken(emailAddr string, expiresAt time.Time) (string, error) {
	nonce := make([]byte, 8)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"email": emailAddr,
		"exp":   expiresAt.Unix(),
		"iat":   time.Now().Unix(),
		"jti":   hex.EncodeToString(nonce),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(magicLinkSecret())
}

func parseMagicToken(token string) error {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return magicLinkSecret(), nil
	})
	if err != nil {
		return err
	}
	if !parsed.Valid {
		return jwt.ErrTokenUnverifiable
	}
	return nil
}

func playerPayload(player *models.Player) gin.H {
	return gin.H{
		"id":           player.ID,
		"name":         player.Name,
		"email":        player.Email,
		"avatar_color": player.AvatarColor,
	}
}

// @Summary Request a magic sign-in link
// @Description Emails a single-use sign-in link. Always answers success so email addresses can't be probed
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} object{success=boolean,message=string}
// @Failure 400 {object} object{error=string}
// @Failure 429 {object} object{error=string}
// @Router /auth/request-magic-link [post]
func RequestMagicLink(db *gorm.DB, limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, _ := limiter.Allow(c.Request.Context(), c.ClientIP())
		if !allowed {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many login attempts. Please try again in 15 minutes."})
			return
		}

		var body struct {
			Email string `json:"email"`
		}
		if err := c.ShouldBindJSON(&body); err != nil || !strings.Contains(body.Email, "@") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Valid email address is required"})
			return
		}

		normalized := strings.ToLower(strings.TrimSpace(body.Email))

		// The token is issued whether or not the email is known; only known
		// players get a player_id attached.
		var playerID *uint
		playerName := ""
		var player models.Player
		if err := db.Where("email = ?", normalized).First(&player).Error; err == nil {
			playerID = &player.ID
			playerName = player.Name
		}

		expiresAt := time.Now().Add(magicLinkExpiry())
		token, err := generateMagicToken(normalized, expiresAt)
		if err != nil {
			log.Printf("Magic link request error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process request"})
			return
		}

		record := models.MagicLinkToken{
			Email:     normalized,
			Token:     token,
			PlayerID:  playerID,
			ExpiresAt: expiresAt,
		}
		if err := db.Create(&record).Error; err != nil {
			log.Printf("Magic link request error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process request"})
			return
		}

		if err := email.SendMagicLink(normalized, token, playerName); err != nil {
			log.Printf("Magic link email error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process request"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "If this email is registered, you will receive a sign-in link shortly.",
		})
	}
}

// @Summary Redeem a magic-link token
// @Description Verifies the token, marks it used and opens a session. Unlinked emails get requiresSetup
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} object{success=boolean}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string,code=string}
// @Router /auth/verify-token [post]
func VerifyToken(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Token string `json:"token"`
		}
		if err := c.ShouldBindJSON(&body); err != nil || body.Token == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Token is required"})
			return
		}

		if err := parseMagicToken(body.Token); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token", "code": "INVALID_TOKEN"})
			return
		}

		// Single-use enforcement lives in the token row, not the JWT.
		var record models.MagicLinkToken
		err := db.Where("token = ? AND used_at IS NULL AND expires_at > ?", body.Token, time.Now()).
			First(&record).Error
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token", "code": "INVALID_TOKEN"})
			return
		}

		now := time.Now()
		if err := db.Model(&record).Update("used_at", &now).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify token"})
			return
		}

		if record.PlayerID == nil {
			// New user, still has to pick which player they are
			c.JSON(http.StatusOK, gin.H{
				"success":       true,
				"requiresSetup": true,
				"email":         record.Email,
			})
			return
		}

		var player models.Player
		if err := db.First(&player, *record.PlayerID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token", "code": "INVALID_TOKEN"})
			return
		}

		if err := middleware.SignIn(c, player.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "player": playerPayload(&player)})
	}
}

// @Summary Link an email to an existing player
// @Description First-time setup: attaches a verified email to a player without one and opens a session
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} object{success=boolean}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/link-player [post]
func LinkPlayer(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Email    string `json:"email"`
			PlayerID uint   `json:"playerId"`
		}
		if err := c.ShouldBindJSON(&body); err != nil || body.Email == "" || body.PlayerID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and player ID are required"})
			return
		}

		normalized := strings.ToLower(strings.TrimSpace(body.Email))

		var player models.Player
		if err := db.First(&player, body.PlayerID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Player not found"})
			return
		}
		if player.Email != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Player already has an email address"})
			return
		}

		var count int64
		if err := db.Model(&models.Player{}).Where("email = ?", normalized).Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to link player"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email is already in use"})
			return
		}

		player.Email = &normalized
		if err := db.Save(&player).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to link player"})
			return
		}

		if err := middleware.SignIn(c, player.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to link player"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "player": playerPayload(&player)})
	}
}

// @Summary Get the signed-in player
// @Tags auth
// @Produce json
// @Success 200 {object} object{authenticated=boolean}
// @Router /auth/me [get]
func Me(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		playerID, ok := middleware.CurrentPlayerID(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"authenticated": false})
			return
		}

		var player models.Player
		if err := db.First(&player, playerID).Error; err != nil {
			c.JSON(http.StatusOK, gin.H{"authenticated": false})
			return
		}

		c.JSON(http.StatusOK, gin.H{"authenticated": true, "player": playerPayload(&player)})
	}
}

// @Summary Sign out
// @Tags auth
// @Produce json
// @Success 200 {object} object{success=boolean}
// @Router /auth/logout [post]
func Logout(c *gin.Context) {
	if _, err := middleware.SignOut(c); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to logout"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// @Summary List players without an email
// @Description Players available for the initial email-linking flow
// @Tags auth
// @Produce json
// @Success 200 {array} postgres.Player
// @Failure 500 {object} object{error=string}
// @Router /auth/players-for-linking [get]
func PlayersForLinking(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var players []models.Player
		err := db.Select("id", "name", "avatar_color").
			Where("email IS NULL").
			Order("name").
			Find(&players).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, players)
	}
}
