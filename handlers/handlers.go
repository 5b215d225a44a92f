package handlers

import (
	"context"
	"errors"
	"net/http"

	"vistoria-service/config"
	"vistoria-service/database"
	"vistoria-service/models"

	"github.com/gin-gonic/gin"
)

// RouteStore is the persistence surface the handlers mutate routes through.
type RouteStore interface {
	GetRouteByID(ctx context.Context, id string) (*models.Rota, error)
	StartRoute(ctx context.Context, id string) (*models.Rota, error)
	FinalizeRoute(ctx context.Context, rotaID string, v *models.Vistoria, note string, cancel *models.Cancelamento) error
}

// ReportRenderer produces the PDF report for a route.
type ReportRenderer interface {
	Render(ctx context.Context, rotaID string) ([]byte, string, error)
}

// Handlers contains all HTTP handlers
type Handlers struct {
	store    RouteStore
	renderer ReportRenderer
	cfg      *config.Config
}

// NewHandlers creates a new handlers instance
func NewHandlers(store RouteStore, renderer ReportRenderer, cfg *config.Config) *Handlers {
	return &Handlers{
		store:    store,
		renderer: renderer,
		cfg:      cfg,
	}
}

// HealthCheck returns the health status of the service
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "vistoria-service",
	})
}

// GetRoute returns a single route by id.
func (h *Handlers) GetRoute(c *gin.Context) {
	rota, err := h.store.GetRouteByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, database.ErrRouteNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Rota não encontrada."})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Erro interno do servidor ao buscar rota."})
		return
	}
	c.JSON(http.StatusOK, rota)
}
