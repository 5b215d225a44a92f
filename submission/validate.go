package submission

import (
	"fmt"
	"strings"

	"vistoria-service/models"
	"vistoria-service/workflow"
)

// ValidationError is a rejected finalize submission. Field names the first
// violated rule; handlers surface it as a 400 with the message verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate enforces the status-dependent required-field rules on a draft
// before anything is persisted. It is pure: no store is touched, rules are
// checked in a fixed order and the first violation is returned.
func Validate(d *models.DraftInspection, routeStatus string) error {
	if !workflow.IsFinal(d.Status) {
		return &ValidationError{
			Field:   "status",
			Message: fmt.Sprintf("Status inválido. Use %q ou %q.", models.StatusConcluido, models.StatusCancelado),
		}
	}

	if workflow.IsTerminal(routeStatus) {
		return &ValidationError{
			Field:   "status",
			Message: "A rota já foi finalizada e não pode ser alterada.",
		}
	}
	if err := workflow.CheckFinalize(routeStatus, d.Status); err != nil {
		return &ValidationError{Field: "status", Message: err.Error()}
	}

	if d.AssinaturaTecnico.IsEmpty() || d.AssinaturaResponsavel.IsEmpty() {
		return &ValidationError{
			Field:   "assinaturas",
			Message: "Assinaturas (técnico e responsável) são obrigatórias.",
		}
	}

	switch d.Status {
	case models.StatusCancelado:
		if d.CancelPhoto.IsEmpty() {
			return &ValidationError{
				Field:   "cancel-photo",
				Message: "Foto da fachada é obrigatória para cancelamento.",
			}
		}
		if strings.TrimSpace(d.CancelMotivo()) == "" {
			return &ValidationError{
				Field:   "cancelReason",
				Message: "Motivo do cancelamento é obrigatório.",
			}
		}
	case models.StatusConcluido:
		if strings.TrimSpace(d.ResponsavelLocal) == "" {
			return &ValidationError{
				Field:   "responsavelLocal",
				Message: "Responsável local é obrigatório para conclusão.",
			}
		}
	}

	return nil
}
