package models

import "time"

// Checklist is the flat set of scalar answers collected during a visit.
// Every field is persisted verbatim, empty string when the form omitted it,
// so the report template never has to deal with a missing key.
type Checklist struct {
	// Atividades observadas
	AtividadesOutrasDesc string `json:"atividadesOutrasDesc"`

	// Condições do ambiente
	EnvVentilacao  string `json:"env_ventilacao"`
	EnvIluminacao  string `json:"env_iluminacao"`
	EnvOrdem       string `json:"env_ordem"`
	EnvSinalizacao string `json:"env_sinalizacao"`
	EnvEPC         string `json:"env_epc"`
	EnvEPCQuais    string `json:"env_epc_quais"`

	// Riscos identificados: resposta sim/não + observação por categoria
	RiscoBiologicos      string `json:"risco_biologicos"`
	RiscoBiologicosObs   string `json:"risco_biologicos_obs"`
	RiscoQuimicos        string `json:"risco_quimicos"`
	RiscoQuimicosObs     string `json:"risco_quimicos_obs"`
	RiscoRuido           string `json:"risco_ruido"`
	RiscoRuidoObs        string `json:"risco_ruido_obs"`
	RiscoCalorFrio       string `json:"risco_calorfrio"`
	RiscoCalorFrioObs    string `json:"risco_calorfrio_obs"`
	RiscoRadiacoes       string `json:"risco_radiacoes"`
	RiscoRadiacoesObs    string `json:"risco_radiacoes_obs"`
	RiscoEletricidade    string `json:"risco_eletricidade"`
	RiscoEletricidadeObs string `json:"risco_eletricidade_obs"`
	RiscoAltura          string `json:"risco_altura"`
	RiscoAlturaObs       string `json:"risco_altura_obs"`
	RiscoInflamaveis     string `json:"risco_inflamaveis"`
	RiscoInflamaveisObs  string `json:"risco_inflamaveis_obs"`

	// Insalubridade
	InsalAgente        string `json:"insal_agente"`
	InsalJustificativa string `json:"insal_justificativa"`
	InsalEPIFornecido  string `json:"insal_epi_fornecido"`
	InsalEPIUtilizado  string `json:"insal_epi_utilizado"`
	EpiNeutraliza      string `json:"epiNeutraliza"`
	LaudoInsalub       string `json:"laudoInsalub"`

	// Periculosidade (NR-16)
	PericOutrosDesc string `json:"pericOutrosDesc"`
	Exposicao       string `json:"exposicao"`
	MedidasControle string `json:"medidasControle"`
	LaudoPeric      string `json:"laudoPeric"`

	// EPI / treinamento / documentação
	EpiFornecimento string `json:"epiFornecimento"`
	RelacaoEpis     string `json:"relacaoEpis"`
	TreinamentoEpi  string `json:"treinamentoEpi"`
	FichaAssinada   string `json:"fichaAssinada"`
	FichaEntrega    string `json:"fichaEntrega"`

	// Observações gerais do técnico
	Observacoes string `json:"observacoes"`

	// Checklist ergonômico
	Postura           string `json:"postura"`
	Cargas            string `json:"cargas"`
	CargasPeso        string `json:"cargasPeso"`
	Repetitivo        string `json:"repetitivo"`
	Esforco           string `json:"esforco"`
	Pausas            string `json:"pausas"`
	Pe                string `json:"pe"`
	Ferramentas       string `json:"ferramentas"`
	Apoio             string `json:"apoio"`
	Piso              string `json:"piso"`
	Ambiente          string `json:"ambiente"`
	Protecao          string `json:"protecao"`
	RuidoErgo         string `json:"ruidoErgo"`
	Obstaculos        string `json:"obstaculos"`
	Queda             string `json:"queda"`
	JornadaPausas     string `json:"jornadaPausas"`
	JornadaProlongada string `json:"jornadaProlongada"`
	Revezamento       string `json:"revezamento"`
	Tempo             string `json:"tempo"`
	ObservacoesErgo   string `json:"observacoesErgo"`
}

// Vistoria is the immutable record of one finalized visit. Property fields
// are copied from the route at finalize time; later route edits never change
// a snapshot.
type Vistoria struct {
	ID              string    `json:"id"`
	RotaID          string    `json:"rotaId"`
	Data            time.Time `json:"data"`
	Horario         string    `json:"horario"`
	Status          string    `json:"status"`
	VistoriadorID   string    `json:"vistoriadorId"`
	VistoriadorNome string    `json:"vistoriadorNome"`

	// Snapshot do condomínio
	Condominio       string `json:"condominio"`
	Endereco         string `json:"endereco"`
	Bairro           string `json:"bairro"`
	Administradora   string `json:"administradora"`
	CNPJ             string `json:"cnpj"`
	ResponsavelLocal string `json:"responsavelLocal"`
	Setor            string `json:"setor"`

	Atividades         []string `json:"atividades"`
	PericClassificacao []string `json:"pericClassificacao"`

	Checklist

	Fotos        SectorPhotos  `json:"fotos"`
	Assinaturas  Assinaturas   `json:"assinaturas"`
	Cancelamento *Cancelamento `json:"cancelamento,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// DraftInspection is the typed result of one total mapping pass over the
// multipart finalize submission, before validation.
type DraftInspection struct {
	Status               string
	Data                 time.Time
	Horario              string
	ResponsavelLocal     string
	Setor                string
	ObservacaoCondominio string

	Atividades         []string
	PericClassificacao []string
	Checklist          Checklist
	Fotos              SectorPhotos

	AssinaturaTecnico     *EmbeddedImage
	AssinaturaResponsavel *EmbeddedImage

	CancelReason      string
	OtherCancelReason string
	CancelPhoto       *EmbeddedImage
}

// CancelMotivo resolves the effective cancellation reason: the free-text
// description when the selected reason code is "outro".
func (d *DraftInspection) CancelMotivo() string {
	if d.CancelReason == "outro" {
		return d.OtherCancelReason
	}
	return d.CancelReason
}

// NewVistoria builds the snapshot for a validated draft. Property fields come
// from the route as it is now; everything else comes from the draft verbatim.
func NewVistoria(id string, rota *Rota, d *DraftInspection, actor *Usuario, cancel *Cancelamento) *Vistoria {
	return &Vistoria{
		ID:              id,
		RotaID:          rota.ID,
		Data:            d.Data,
		Horario:         d.Horario,
		Status:          d.Status,
		VistoriadorID:   actor.ID,
		VistoriadorNome: actor.Name,

		Condominio:       rota.Condominio,
		Endereco:         rota.Endereco,
		Bairro:           rota.Bairro,
		Administradora:   rota.Administradora,
		CNPJ:             rota.CNPJ,
		ResponsavelLocal: d.ResponsavelLocal,
		Setor:            d.Setor,

		Atividades:         d.Atividades,
		PericClassificacao: d.PericClassificacao,
		Checklist:          d.Checklist,
		Fotos:              d.Fotos,

		Assinaturas: Assinaturas{
			Tecnico:     d.AssinaturaTecnico,
			Responsavel: d.AssinaturaResponsavel,
		},
		Cancelamento: cancel,
	}
}
