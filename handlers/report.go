package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"vistoria-service/database"
	"vistoria-service/models"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

// GetReportPDF handles GET /api/rotas/:id/pdf: renders the latest finalized
// inspection of the route into a PDF attachment.
func (h *Handlers) GetReportPDF(c *gin.Context) {
	id := c.Param("id")

	pdf, filename, err := h.renderer.Render(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrInspectionNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Message: "Nenhuma vistoria concluída ou cancelada encontrada para esta rota.",
			})
			return
		}
		log.WithField("rota", id).Errorf("Failed to render PDF report: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Erro interno do servidor ao gerar PDF."})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
