// Package submission turns the heterogeneous multipart finalize form into a
// typed DraftInspection and validates it against the status-dependent
// required-field rules. Assembly is lenient where the form contract says so
// (dates, photo map); validation is strict everywhere else.
package submission

import (
	"encoding/json"
	"mime/multipart"
	"regexp"
	"time"

	"vistoria-service/media"
	"vistoria-service/models"
)

// Multipart field names for the uploaded files.
const (
	FileCancelPhoto    = "cancel-photo"
	FileSignatureTech  = "signature-tech"
	FileSignatureLocal = "signature-local"
)

// 24-hour HH:MM, the only accepted visit time form.
var timeOfDayRe = regexp.MustCompile(`^\d{2}:\d{2}$`)

// Assemble maps every field of the finalize form into a DraftInspection in
// one total pass. Malformed date/time values are repaired to "now", the
// photo map falls back to empty on bad JSON, and signatures prefer the file
// part over the inline data-URL when both are present.
func Assemble(form *multipart.Form, now time.Time) (*models.DraftInspection, error) {
	get := func(name string) string {
		if vs := form.Value[name]; len(vs) > 0 {
			return vs[0]
		}
		return ""
	}

	d := &models.DraftInspection{
		Status:               get("status"),
		ResponsavelLocal:     get("responsavelLocal"),
		Setor:                get("setor"),
		ObservacaoCondominio: get("observacaoCondominio"),

		Atividades:         checkboxGroup(form, "atividades"),
		PericClassificacao: checkboxGroup(form, "pericClassificacao"),
		Fotos:              parseFotos(get("fotos")),

		CancelReason:      get("cancelReason"),
		OtherCancelReason: get("otherCancelReason"),
	}

	d.Data = parseDate(get("dataVistoria"), now)
	d.Horario = parseTimeOfDay(get("horarioVistoria"), now)

	d.Checklist = models.Checklist{
		AtividadesOutrasDesc: get("atividadesOutrasDesc"),

		EnvVentilacao:  get("env_ventilacao"),
		EnvIluminacao:  get("env_iluminacao"),
		EnvOrdem:       get("env_ordem"),
		EnvSinalizacao: get("env_sinalizacao"),
		EnvEPC:         get("env_epc"),
		EnvEPCQuais:    get("env_epc_quais"),

		RiscoBiologicos:      get("risco_biologicos"),
		RiscoBiologicosObs:   get("risco_biologicos_obs"),
		RiscoQuimicos:        get("risco_quimicos"),
		RiscoQuimicosObs:     get("risco_quimicos_obs"),
		RiscoRuido:           get("risco_ruido"),
		RiscoRuidoObs:        get("risco_ruido_obs"),
		RiscoCalorFrio:       get("risco_calorfrio"),
		RiscoCalorFrioObs:    get("risco_calorfrio_obs"),
		RiscoRadiacoes:       get("risco_radiacoes"),
		RiscoRadiacoesObs:    get("risco_radiacoes_obs"),
		RiscoEletricidade:    get("risco_eletricidade"),
		RiscoEletricidadeObs: get("risco_eletricidade_obs"),
		RiscoAltura:          get("risco_altura"),
		RiscoAlturaObs:       get("risco_altura_obs"),
		RiscoInflamaveis:     get("risco_inflamaveis"),
		RiscoInflamaveisObs:  get("risco_inflamaveis_obs"),

		InsalAgente:        get("insal_agente"),
		InsalJustificativa: get("insal_justificativa"),
		InsalEPIFornecido:  get("insal_epi_fornecido"),
		InsalEPIUtilizado:  get("insal_epi_utilizado"),
		EpiNeutraliza:      get("epiNeutraliza"),
		LaudoInsalub:       get("laudoInsalub"),

		PericOutrosDesc: get("pericOutrosDesc"),
		Exposicao:       get("exposicao"),
		MedidasControle: get("medidasControle"),
		LaudoPeric:      get("laudoPeric"),

		EpiFornecimento: get("epiFornecimento"),
		RelacaoEpis:     get("relacaoEpis"),
		TreinamentoEpi:  get("treinamentoEpi"),
		FichaAssinada:   get("fichaAssinada"),
		FichaEntrega:    get("fichaEntrega"),

		Observacoes: get("observacoes"),

		Postura:           get("postura"),
		Cargas:            get("cargas"),
		CargasPeso:        get("cargasPeso"),
		Repetitivo:        get("repetitivo"),
		Esforco:           get("esforco"),
		Pausas:            get("pausas"),
		Pe:                get("pe"),
		Ferramentas:       get("ferramentas"),
		Apoio:             get("apoio"),
		Piso:              get("piso"),
		Ambiente:          get("ambiente"),
		Protecao:          get("protecao"),
		RuidoErgo:         get("ruidoErgo"),
		Obstaculos:        get("obstaculos"),
		Queda:             get("queda"),
		JornadaPausas:     get("jornadaPausas"),
		JornadaProlongada: get("jornadaProlongada"),
		Revezamento:       get("revezamento"),
		Tempo:             get("tempo"),
		ObservacoesErgo:   get("observacoesErgo"),
	}

	var err error
	d.AssinaturaTecnico, err = signature(form, FileSignatureTech, get("assinaturaTecnico"), "assinatura-tecnico.png")
	if err != nil {
		return nil, err
	}
	d.AssinaturaResponsavel, err = signature(form, FileSignatureLocal, get("assinaturaResponsavel"), "assinatura-responsavel.png")
	if err != nil {
		return nil, err
	}
	d.CancelPhoto, err = media.FromFilePart(filePart(form, FileCancelPhoto))
	if err != nil {
		return nil, err
	}

	return d, nil
}

// checkboxGroup collects a checkbox field submitted either under "name[]" or
// "name", as a single value or a repeated one. Submission order is kept and
// duplicates are not removed.
func checkboxGroup(form *multipart.Form, name string) []string {
	vs := form.Value[name+"[]"]
	if vs == nil {
		vs = form.Value[name]
	}
	if vs == nil {
		return []string{}
	}
	out := make([]string, len(vs))
	copy(out, vs)
	return out
}

// parseFotos decodes the JSON-encoded per-sector photo map. A bad payload
// means "no photos", never a rejected submission.
func parseFotos(raw string) models.SectorPhotos {
	var fotos models.SectorPhotos
	if raw != "" {
		_ = json.Unmarshal([]byte(raw), &fotos)
	}
	return fotos
}

func parseDate(raw string, now time.Time) time.Time {
	if raw == "" {
		return now
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return now
}

func parseTimeOfDay(raw string, now time.Time) string {
	if timeOfDayRe.MatchString(raw) {
		return raw
	}
	return now.Format("15:04")
}

// signature normalizes one signer slot: the file part wins when both the
// part and the inline data-URL are present.
func signature(form *multipart.Form, fileField, dataURL, fallbackName string) (*models.EmbeddedImage, error) {
	if fh := filePart(form, fileField); fh != nil {
		return media.FromFilePart(fh)
	}
	return media.FromDataURL(dataURL, fallbackName), nil
}

func filePart(form *multipart.Form, name string) *multipart.FileHeader {
	if fhs := form.File[name]; len(fhs) > 0 {
		return fhs[0]
	}
	return nil
}
