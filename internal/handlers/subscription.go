package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/akulinich/foodgram-backend/internal/requestdata"
	"github.com/akulinich/foodgram-backend/internal/services"
)

type SubscriptionHandler struct {
	subscriptionService services.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

func (sh *SubscriptionHandler) Subscribe(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := sh.subscriptionService.Subscribe(c.Request.Context(), rd.UserID, authorID); err != nil {
		RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusCreated)
}

func (sh *SubscriptionHandler) Unsubscribe(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := sh.subscriptionService.Unsubscribe(c.Request.Context(), rd.UserID, authorID); err != nil {
		RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (sh *SubscriptionHandler) List(c *gin.Context) {
	rd := requestdata.GetRequestData(c.Request.Context())
	subscriptions, err := sh.subscriptionService.List(c.Request.Context(), rd.UserID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"subscriptions": subscriptions})
}
