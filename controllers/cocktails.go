package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	models "FiveHundred/models/postgres"
	"FiveHundred/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type cocktailBody struct {
	Name         string   `json:"name"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
	ServedBy     *uint    `json:"served_by"`
	ServedDate   string   `json:"served_date"`
	ImageURL     string   `json:"image_url"`
	Notes        string   `json:"notes"`
}

// @Summary List cocktails
// @Description Returns all cocktails, optionally filtered by a name/ingredient search or by server
// @Tags cocktails
// @Produce json
// @Param search query string false "Substring match against name and ingredients"
// @Param served_by query integer false "Filter by serving player"
// @Success 200 {array} postgres.Cocktail
// @Failure 500 {object} object{error=string}
// @Router /cocktails [get]
func ListCocktails(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Preload("Server").Order("served_date DESC, created_at DESC")

		if search, ok := c.GetQuery("search"); ok && search != "" {
			pattern := "%" + search + "%"
			query = query.Where("name LIKE ? OR ingredients::text LIKE ?", pattern, pattern)
		}
		if servedBy, ok := c.GetQuery("served_by"); ok && servedBy != "" {
			query = query.Where("served_by = ?", servedBy)
		}

		var cocktails []models.Cocktail
		if err := query.Find(&cocktails).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching cocktails"})
			return
		}
		c.JSON(http.StatusOK, cocktails)
	}
}

// @Summary Get a single cocktail
// @Tags cocktails
// @Produce json
// @Param id path integer true "Cocktail id"
// @Success 200 {object} postgres.Cocktail
// @Failure 404 {object} object{error=string}
// @Router /cocktails/{id} [get]
func GetCocktail(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := utils.ParseIDParam(c, "id")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var cocktail models.Cocktail
		if err := db.Preload("Server").First(&cocktail, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cocktail not found"})
			return
		}
		c.JSON(http.StatusOK, cocktail)
	}
}

// @Summary Create a cocktail
// @Tags cocktails
// @Accept json
// @Produce json
// @Success 201 {object} postgres.Cocktail
// @Failure 400 {object} object{error=string}
// @Router /cocktails [post]
func CreateCocktail(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body cocktailBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		if body.Name == "" || len(body.Ingredients) == 0 || body.ServedDate == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name, ingredients, and served_date are required"})
			return
		}

		ingredients, err := json.Marshal(body.Ingredients)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ingredients"})
			return
		}

		cocktail := models.Cocktail{
			Name:         body.Name,
			Ingredients:  datatypes.JSON(ingredients),
			Instructions: body.Instructions,
			ServedBy:     body.ServedBy,
			ServedDate:   body.ServedDate,
			ImageURL:     body.ImageURL,
			Notes:        body.Notes,
		}
		if err := db.Create(&cocktail).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating cocktail"})
			return
		}
		c.JSON(http.StatusCreated, cocktail)
	}
}

// @Summary Update a cocktail
// @Tags cocktails
// @Accept json
// @Produce json
// @Param id path integer true "Cocktail id"
// @Success 200 {object} postgres.Cocktail
// @Failure 404 {object} object{error=string}
// @Router /cocktails/{id} [put]
func UpdateCocktail(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := utils.ParseIDParam(c, "id")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var body cocktailBody
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		cocktail, err := utils.CheckCocktailExists(db, id)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cocktail not found"})
			return
		}

		ingredients, err := json.Marshal(body.Ingredients)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ingredients"})
			return
		}

		cocktail.Name = body.Name
		cocktail.Ingredients = datatypes.JSON(ingredients)
		cocktail.Instructions = body.Instructions
		cocktail.ServedBy = body.ServedBy
		cocktail.ServedDate = body.ServedDate
		cocktail.ImageURL = body.ImageURL
		cocktail.Notes = body.Notes
		if err := db.Save(cocktail).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating cocktail"})
			return
		}
		c.JSON(http.StatusOK, cocktail)
	}
}

// @Summary Delete a cocktail
// @Tags cocktails
// @Produce json
// @Param id path integer true "Cocktail id"
// @Success 200 {object} object{success=boolean}
// @Failure 404 {object} object{error=string}
// @Router /cocktails/{id} [delete]
func DeleteCocktail(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := utils.ParseIDParam(c, "id")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		result := db.Delete(&models.Cocktail{}, id)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting cocktail"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cocktail not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// @Summary List recent cocktails
// @Tags cocktails
// @Produce json
// @Param limit query integer false "Maximum cocktails to return" default(5)
// @Success 200 {array} postgres.Cocktail
// @Failure 500 {object} object{error=string}
// @Router /cocktails/recent/list [get]
func RecentCocktails(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "5"))
		if err != nil || limit <= 0 {
			limit = 5
		}

		var cocktails []models.Cocktail
		err = db.Preload("Server").
			Order("served_date DESC, created_at DESC").
			Limit(limit).
			Find(&cocktails).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching cocktails"})
			return
		}
		c.JSON(http.StatusOK, cocktails)
	}
}
