package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"regexp"
	"time"

	"vistoria-service/database"
	"vistoria-service/middleware"
	"vistoria-service/models"
	"vistoria-service/submission"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Image types accepted by the upload boundary. Anything else never reaches
// the media normalizer.
var imageMimeRe = regexp.MustCompile(`^image/(png|jpe?g|webp)$`)

// StartRoute handles PATCH /api/rotas/:id/iniciar.
func (h *Handlers) StartRoute(c *gin.Context) {
	id := c.Param("id")

	if _, ok := h.loadOwnedRoute(c, id); !ok {
		return
	}

	rota, err := h.store.StartRoute(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrRouteNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Rota não encontrada."})
		case errors.Is(err, database.ErrStateConflict):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Message: "A vistoria não pode ser iniciada, pois não está no status Pendente.",
			})
		default:
			log.Errorf("Failed to start route %s: %v", id, err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Erro interno do servidor ao iniciar vistoria."})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vistoria iniciada com sucesso!", "rota": rota})
}

// FinalizeRoute handles PUT /api/rotas/:id: assembles the multipart
// submission, validates it, and commits the status transition together with
// the inspection snapshot as one unit.
func (h *Handlers) FinalizeRoute(c *gin.Context) {
	id := c.Param("id")
	user := middleware.CurrentUser(c)

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxRequestSize)
	form, err := c.MultipartForm()
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{Message: "Upload inválido: corpo da requisição acima do limite."})
			return
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Envio multipart inválido."})
		return
	}

	if limitErr := checkUploadLimits(form, h.cfg.MaxParts, h.cfg.MaxFiles, h.cfg.MaxFileSize); limitErr != nil {
		c.JSON(limitErr.status, models.ErrorResponse{Message: limitErr.message})
		return
	}

	draft, err := submission.Assemble(form, time.Now())
	if err != nil {
		log.Errorf("Failed to assemble submission for route %s: %v", id, err)
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "Não foi possível processar os arquivos enviados."})
		return
	}

	rota, ok := h.loadOwnedRoute(c, id)
	if !ok {
		return
	}

	if err := submission.Validate(draft, rota.Status); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: err.Error()})
		return
	}

	var cancel *models.Cancelamento
	note := draft.ObservacaoCondominio
	if note == "" {
		note = rota.ObservacaoCondominio
	}
	if draft.Status == models.StatusCancelado {
		motivo := draft.CancelMotivo()
		cancel = &models.Cancelamento{
			Motivo:           motivo,
			FotoFachada:      draft.CancelPhoto,
			DataCancelamento: time.Now(),
		}
		note = fmt.Sprintf("Vistoria cancelada. Motivo: %s. %s", motivo, draft.Checklist.Observacoes)
	}

	vistoria := models.NewVistoria(uuid.NewString(), rota, draft, user, cancel)

	if err := h.store.FinalizeRoute(c.Request.Context(), id, vistoria, note, cancel); err != nil {
		switch {
		case errors.Is(err, database.ErrStateConflict):
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Message: "A rota já foi finalizada e não pode ser alterada."})
		case errors.Is(err, database.ErrRouteNotFound):
			c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Rota não encontrada."})
		default:
			log.Errorf("Failed to finalize route %s: %v", id, err)
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Erro interno do servidor ao atualizar status da rota."})
		}
		return
	}

	rota.Status = vistoria.Status
	rota.ObservacaoCondominio = note
	rota.Cancelamento = cancel

	c.JSON(http.StatusOK, gin.H{
		"message":  "Vistoria finalizada e registrada com sucesso!",
		"rota":     rota,
		"vistoria": vistoria,
	})
}

// loadOwnedRoute fetches the route and enforces that the acting inspector is
// the one it was assigned to. Writes the error response itself and returns
// ok=false on denial.
func (h *Handlers) loadOwnedRoute(c *gin.Context, id string) (*models.Rota, bool) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: "unauthorized"})
		return nil, false
	}

	rota, err := h.store.GetRouteByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrRouteNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Message: "Rota não encontrada."})
			return nil, false
		}
		log.Errorf("Failed to load route %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Message: "Erro interno do servidor."})
		return nil, false
	}

	if rota.VistoriadorID != user.ID {
		c.JSON(http.StatusForbidden, models.ErrorResponse{Message: "Acesso negado. A rota pertence a outro vistoriador."})
		return nil, false
	}
	return rota, true
}

type limitError struct {
	status  int
	message string
}

// checkUploadLimits enforces the resource ceilings on a parsed form before
// anything reaches the assembler.
func checkUploadLimits(form *multipart.Form, maxParts, maxFiles int, maxFileSize int64) *limitError {
	parts := 0
	for _, vs := range form.Value {
		parts += len(vs)
	}

	files := 0
	for _, fhs := range form.File {
		for _, fh := range fhs {
			files++
			parts++
			if fh.Size > maxFileSize {
				return &limitError{
					status:  http.StatusRequestEntityTooLarge,
					message: fmt.Sprintf("Upload inválido: arquivo %q acima do limite.", fh.Filename),
				}
			}
			if !imageMimeRe.MatchString(fh.Header.Get("Content-Type")) {
				return &limitError{
					status:  http.StatusBadRequest,
					message: "Tipo de arquivo inválido. Use PNG, JPG/JPEG ou WEBP.",
				}
			}
		}
	}

	if files > maxFiles {
		return &limitError{status: http.StatusRequestEntityTooLarge, message: "Upload inválido: número de arquivos acima do limite."}
	}
	if parts > maxParts {
		return &limitError{status: http.StatusRequestEntityTooLarge, message: "Upload inválido: número de campos acima do limite."}
	}
	return nil
}
