package models

import "time"

// Route status values. A route starts as Pendente, moves to Em Andamento
// when the inspector arrives on site, and ends as Concluído or Cancelado.
const (
	StatusPendente    = "Pendente"
	StatusEmAndamento = "Em Andamento"
	StatusConcluido   = "Concluído"
	StatusCancelado   = "Cancelado"
)

// User roles carried in the JWT issued by the auth collaborator.
const (
	RoleVistoriador  = "vistoriador"
	RoleGestor       = "gestor_rotas"
	RoleVisualizador = "visualizador_vistorias"
)

// Usuario is the authenticated actor extracted from the request token.
type Usuario struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// Rota is a scheduled inspection assignment for a property.
type Rota struct {
	ID                   string        `json:"id"`
	Condominio           string        `json:"condominio"`
	Endereco             string        `json:"endereco"`
	Bairro               string        `json:"bairro"`
	Administradora       string        `json:"administradora"`
	CNPJ                 string        `json:"cnpj"`
	VistoriadorID        string        `json:"vistoriadorId"`
	VistoriadorNome      string        `json:"vistoriadorNome"`
	Data                 time.Time     `json:"data"`
	Status               string        `json:"status"`
	ObservacaoCondominio string        `json:"observacaoCondominio"`
	Cancelamento         *Cancelamento `json:"cancelamento,omitempty"`
}

// EmbeddedImage is a normalized uploaded image. Buffer holds the raw bytes
// base64-encoded so the value can be inlined as a data-URL by the renderer.
type EmbeddedImage struct {
	OriginalName string `json:"originalname"`
	MimeType     string `json:"mimetype"`
	Size         int64  `json:"size"`
	Buffer       string `json:"buffer"`
}

// DataURL returns the image as an inline data-URL. If Buffer already carries
// a full data-URL it is returned untouched.
func (e *EmbeddedImage) DataURL() string {
	if e == nil || e.Buffer == "" {
		return ""
	}
	if len(e.Buffer) > 5 && e.Buffer[:5] == "data:" {
		return e.Buffer
	}
	mime := e.MimeType
	if mime == "" {
		mime = "image/png"
	}
	return "data:" + mime + ";base64," + e.Buffer
}

// IsEmpty reports whether the image carries no payload.
func (e *EmbeddedImage) IsEmpty() bool {
	return e == nil || e.Buffer == ""
}

// SectorPhotos groups the photos taken during a visit by the five fixed
// physical sectors. Each entry is an inline data-URL, in submission order.
type SectorPhotos struct {
	Portaria   []string `json:"portaria"`
	Lixo       []string `json:"lixo"`
	Maquinario []string `json:"maquinario"`
	Copa       []string `json:"copa"`
	Epi        []string `json:"epi"`
}

// Assinaturas holds the two mandatory signature images.
type Assinaturas struct {
	Tecnico     *EmbeddedImage `json:"tecnico,omitempty"`
	Responsavel *EmbeddedImage `json:"responsavel,omitempty"`
}

// Cancelamento records why a visit was cancelled, with the mandatory facade
// photo proving the inspector was on site.
type Cancelamento struct {
	Motivo           string         `json:"motivo"`
	FotoFachada      *EmbeddedImage `json:"fotoFachada,omitempty"`
	DataCancelamento time.Time      `json:"dataCancelamento"`
}

// ErrorResponse is the JSON body returned for all error statuses.
type ErrorResponse struct {
	Message string `json:"message"`
}

// MessageResponse is the JSON body for simple confirmations.
type MessageResponse struct {
	Message string `json:"message"`
}
