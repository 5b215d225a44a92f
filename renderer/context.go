package renderer

import (
	"html/template"
	"time"

	"vistoria-service/models"
)

// SectorPhotoURLs mirrors the per-sector photo map with every entry typed as
// a template.URL so the data-URLs survive html/template's URL sanitizer.
type SectorPhotoURLs struct {
	Portaria   []template.URL
	Lixo       []template.URL
	Maquinario []template.URL
	Copa       []template.URL
	Epi        []template.URL
}

// ReportContext is the flattened data object the report template renders.
// Checklist fields pass through verbatim; media is resolved to inline
// data-URLs.
type ReportContext struct {
	Condominio       string
	Endereco         string
	Bairro           string
	Administradora   string
	CNPJ             string
	VistoriadorNome  string
	ResponsavelLocal string
	DataVistoria     time.Time
	HorarioVistoria  string
	Setor            string
	StatusVistoria   string

	Atividades         []string
	PericClassificacao []string
	models.Checklist

	// Free-text conclusions with the template's fallback text applied.
	ObservacoesConclusao string
	ObservacoesErgonomia string

	IsCancelled        bool
	IsConcluded        bool
	CancelamentoMotivo string
	CancelamentoData   time.Time
	CancelamentoFoto   template.URL

	Fotos          SectorPhotoURLs
	SignatureTech  template.URL
	SignatureLocal template.URL
	LogoURL        template.URL
}

// BuildContext maps a snapshot into the render context. It is pure: two
// calls over the same snapshot yield identical contexts, which keeps the
// generated HTML byte-identical across renders.
func BuildContext(v *models.Vistoria, logoURL string) *ReportContext {
	ctx := &ReportContext{
		Condominio:       v.Condominio,
		Endereco:         v.Endereco,
		Bairro:           v.Bairro,
		Administradora:   v.Administradora,
		CNPJ:             v.CNPJ,
		VistoriadorNome:  v.VistoriadorNome,
		ResponsavelLocal: v.ResponsavelLocal,
		DataVistoria:     v.Data,
		HorarioVistoria:  v.Horario,
		Setor:            v.Setor,
		StatusVistoria:   v.Status,

		Atividades:         v.Atividades,
		PericClassificacao: v.PericClassificacao,
		Checklist:          v.Checklist,

		ObservacoesConclusao: fallback(v.Observacoes, "Nenhuma observação registrada."),
		ObservacoesErgonomia: fallback(v.ObservacoesErgo, "Nenhuma observação de ergonomia registrada."),

		IsCancelled: v.Status == models.StatusCancelado,
		IsConcluded: v.Status == models.StatusConcluido,

		Fotos: SectorPhotoURLs{
			Portaria:   photoURLs(v.Fotos.Portaria),
			Lixo:       photoURLs(v.Fotos.Lixo),
			Maquinario: photoURLs(v.Fotos.Maquinario),
			Copa:       photoURLs(v.Fotos.Copa),
			Epi:        photoURLs(v.Fotos.Epi),
		},
		SignatureTech:  template.URL(v.Assinaturas.Tecnico.DataURL()),
		SignatureLocal: template.URL(v.Assinaturas.Responsavel.DataURL()),
		LogoURL:        template.URL(logoURL),
	}

	if v.Cancelamento != nil {
		ctx.CancelamentoMotivo = v.Cancelamento.Motivo
		ctx.CancelamentoData = v.Cancelamento.DataCancelamento
		ctx.CancelamentoFoto = template.URL(v.Cancelamento.FotoFachada.DataURL())
	}

	return ctx
}

func photoURLs(dataURLs []string) []template.URL {
	out := make([]template.URL, len(dataURLs))
	for i, u := range dataURLs {
		out[i] = template.URL(u)
	}
	return out
}

func fallback(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
