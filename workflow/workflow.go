// Package workflow owns the route status lifecycle. Legality lives in one
// transition table so the HTTP and storage layers never re-encode it as
// scattered if-checks.
package workflow

import (
	"fmt"

	"vistoria-service/models"
)

type transition struct {
	from, to string
}

// Pendente → Em Andamento → {Concluído, Cancelado}. Finalizing straight from
// Pendente is allowed; Concluído and Cancelado are terminal.
var allowed = map[transition]bool{
	{models.StatusPendente, models.StatusEmAndamento}:  true,
	{models.StatusPendente, models.StatusConcluido}:    true,
	{models.StatusPendente, models.StatusCancelado}:    true,
	{models.StatusEmAndamento, models.StatusConcluido}: true,
	{models.StatusEmAndamento, models.StatusCancelado}: true,
}

// TransitionError is a domain error for an illegal status change. Handlers
// map it to a 400, never a generic server fault.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transição de status inválida: %q -> %q", e.From, e.To)
}

// CanTransition reports whether a route may move from one status to another.
func CanTransition(from, to string) bool {
	return allowed[transition{from, to}]
}

// Check returns a TransitionError when the move is illegal.
func Check(from, to string) error {
	if !CanTransition(from, to) {
		return &TransitionError{From: from, To: to}
	}
	return nil
}

// IsTerminal reports whether no transition leaves the given status.
func IsTerminal(status string) bool {
	return status == models.StatusConcluido || status == models.StatusCancelado
}

// IsFinal reports whether the status is a valid finalize target.
func IsFinal(status string) bool {
	return status == models.StatusConcluido || status == models.StatusCancelado
}

// CheckStart validates the start operation: only legal from Pendente.
func CheckStart(current string) error {
	return Check(current, models.StatusEmAndamento)
}

// CheckFinalize validates a finalize request against the route's current
// status and the requested terminal status.
func CheckFinalize(current, target string) error {
	if !IsFinal(target) {
		return &TransitionError{From: current, To: target}
	}
	return Check(current, target)
}
