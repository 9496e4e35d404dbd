package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/akulinich/foodgram-backend/internal/requestdata"
	"github.com/akulinich/foodgram-backend/internal/services"
)

type FavoriteHandler struct {
	favoriteService services.FavoriteService
}

func NewFavoriteHandler(favoriteService services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

func (fh *FavoriteHandler) Add(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	recipe, err := fh.favoriteService.Add(c.Request.Context(), rd.UserID, recipeID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"recipe": recipe})
}

func (fh *FavoriteHandler) Remove(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := fh.favoriteService.Remove(c.Request.Context(), rd.UserID, recipeID); err != nil {
		RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (fh *FavoriteHandler) List(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	favorites, err := fh.favoriteService.List(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"favorites": favorites})
}
