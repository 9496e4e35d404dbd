package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/akulinich/foodgram-backend/internal/config"
	"github.com/akulinich/foodgram-backend/internal/logger"
	"github.com/akulinich/foodgram-backend/internal/pdf"
	"github.com/akulinich/foodgram-backend/internal/requestdata"
	"github.com/akulinich/foodgram-backend/internal/services"
)

type CartHandler struct {
	log         *logger.Logger
	cartService services.CartService
	renderer    *pdf.Renderer
	cfg         config.ExportConfig
	loc         *time.Location
}

func NewCartHandler(log *logger.Logger, cartService services.CartService, renderer *pdf.Renderer, cfg config.ExportConfig) (*CartHandler, error) {
	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("load export time zone %q: %w", cfg.TimeZone, err)
	}
	return &CartHandler{
		log:         log.With("handler", "CartHandler"),
		cartService: cartService,
		renderer:    renderer,
		cfg:         cfg,
		loc:         loc,
	}, nil
}

func (ch *CartHandler) Add(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	recipe, err := ch.cartService.AddRecipe(c.Request.Context(), rd.UserID, recipeID)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyExists) {
			RespondError(c, http.StatusBadRequest, errors.New("Рецепт уже в корзине"))
			return
		}
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"recipe": recipe})
}

func (ch *CartHandler) Remove(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := ch.cartService.RemoveRecipe(c.Request.Context(), rd.UserID, recipeID); err != nil {
		RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Download aggregates the caller's shopping list and returns it as a PDF
// attachment. Nothing is cached: every call recomputes from current rows, so
// a list mutation committed before this request is always reflected.
func (ch *CartHandler) Download(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())

	lines, err := ch.cartService.Aggregate(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}

	data, err := ch.renderer.Render(lines)
	if err != nil {
		RespondServiceError(c, err)
		return
	}

	date := time.Now().In(ch.loc).Format(ch.cfg.TimeFormat)
	filename := fmt.Sprintf(ch.cfg.FilenameTemplate, date)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", data)
}
