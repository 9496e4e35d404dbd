package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/akulinich/foodgram-backend/internal/repos"
	"github.com/akulinich/foodgram-backend/internal/services"
)

type IngredientHandler struct {
	ingredientService services.IngredientService
}

func NewIngredientHandler(ingredientService services.IngredientService) *IngredientHandler {
	return &IngredientHandler{ingredientService: ingredientService}
}

func (ih *IngredientHandler) List(c *gin.Context) {
	filter := repos.IngredientFilter{
		NameStarts:   c.Query("name_starts"),
		NameContains: c.Query("name_contains"),
	}
	ingredients, err := ih.ingredientService.List(c.Request.Context(), filter)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"ingredients": ingredients})
}
