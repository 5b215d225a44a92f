package submission

import (
	"bytes"
	"encoding/base64"
	"io"
	"mime/multipart"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vistoria-service/models"
)

var testNow = time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

// formBuilder assembles a multipart form the way the finalize endpoint
// receives it.
type formBuilder struct {
	buf *bytes.Buffer
	w   *multipart.Writer
}

func newForm() *formBuilder {
	buf := &bytes.Buffer{}
	return &formBuilder{buf: buf, w: multipart.NewWriter(buf)}
}

func (b *formBuilder) field(name, value string) *formBuilder {
	_ = b.w.WriteField(name, value)
	return b
}

func (b *formBuilder) file(name, filename, mime string, data []byte) *formBuilder {
	part, _ := b.w.CreatePart(map[string][]string{
		"Content-Disposition": {`form-data; name="` + name + `"; filename="` + filename + `"`},
		"Content-Type":        {mime},
	})
	_, _ = part.Write(data)
	return b
}

func (b *formBuilder) build(t *testing.T) *multipart.Form {
	t.Helper()
	require.NoError(t, b.w.Close())
	r := multipart.NewReader(io.NopCloser(b.buf), b.w.Boundary())
	form, err := r.ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form
}

func TestAssembleBasicFields(t *testing.T) {
	form := newForm().
		field("status", models.StatusConcluido).
		field("responsavelLocal", "Maria Souza").
		field("setor", "Portaria").
		field("dataVistoria", "2025-03-01").
		field("horarioVistoria", "09:15").
		field("env_ventilacao", "adequada").
		field("risco_biologicos", "sim").
		field("risco_biologicos_obs", "caixa de gordura exposta").
		field("observacoes", "tudo em ordem").
		build(t)

	d, err := Assemble(form, testNow)
	require.NoError(t, err)

	assert.Equal(t, models.StatusConcluido, d.Status)
	assert.Equal(t, "Maria Souza", d.ResponsavelLocal)
	assert.Equal(t, "Portaria", d.Setor)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), d.Data)
	assert.Equal(t, "09:15", d.Horario)
	assert.Equal(t, "adequada", d.Checklist.EnvVentilacao)
	assert.Equal(t, "sim", d.Checklist.RiscoBiologicos)
	assert.Equal(t, "caixa de gordura exposta", d.Checklist.RiscoBiologicosObs)
	assert.Equal(t, "tudo em ordem", d.Checklist.Observacoes)
}

func TestAssembleCheckboxGroups(t *testing.T) {
	t.Run("bracket suffix wins", func(t *testing.T) {
		form := newForm().
			field("atividades[]", "limpeza").
			field("atividades[]", "jardinagem").
			field("atividades", "ignorada").
			build(t)

		d, err := Assemble(form, testNow)
		require.NoError(t, err)
		assert.Equal(t, []string{"limpeza", "jardinagem"}, d.Atividades)
	})

	t.Run("plain name single value", func(t *testing.T) {
		form := newForm().field("pericClassificacao", "inflamaveis").build(t)

		d, err := Assemble(form, testNow)
		require.NoError(t, err)
		assert.Equal(t, []string{"inflamaveis"}, d.PericClassificacao)
	})

	t.Run("absent means empty slice", func(t *testing.T) {
		form := newForm().field("status", models.StatusConcluido).build(t)

		d, err := Assemble(form, testNow)
		require.NoError(t, err)
		assert.NotNil(t, d.Atividades)
		assert.Empty(t, d.Atividades)
	})
}

func TestAssembleFotos(t *testing.T) {
	t.Run("valid json", func(t *testing.T) {
		form := newForm().
			field("fotos", `{"portaria":["data:image/png;base64,aGk="],"lixo":[]}`).
			build(t)

		d, err := Assemble(form, testNow)
		require.NoError(t, err)
		assert.Equal(t, []string{"data:image/png;base64,aGk="}, d.Fotos.Portaria)
		assert.Empty(t, d.Fotos.Lixo)
	})

	t.Run("malformed json drops silently", func(t *testing.T) {
		form := newForm().field("fotos", "{not json").build(t)

		d, err := Assemble(form, testNow)
		require.NoError(t, err)
		assert.Empty(t, d.Fotos.Portaria)
		assert.Empty(t, d.Fotos.Copa)
	})
}

func TestAssembleRepairsDateAndTime(t *testing.T) {
	form := newForm().
		field("dataVistoria", "not-a-date").
		field("horarioVistoria", "9h30").
		build(t)

	d, err := Assemble(form, testNow)
	require.NoError(t, err)
	assert.Equal(t, testNow, d.Data)
	assert.Equal(t, "14:30", d.Horario)
}

func TestAssembleMissingDateAndTime(t *testing.T) {
	form := newForm().field("status", models.StatusConcluido).build(t)

	d, err := Assemble(form, testNow)
	require.NoError(t, err)
	assert.Equal(t, testNow, d.Data)
	assert.Equal(t, "14:30", d.Horario)
}

func TestAssembleSignaturePrefersFilePart(t *testing.T) {
	raw := []byte("signature strokes")
	form := newForm().
		field("assinaturaTecnico", "data:image/png;base64,aW5saW5l").
		file(FileSignatureTech, "tech.png", "image/png", raw).
		build(t)

	d, err := Assemble(form, testNow)
	require.NoError(t, err)
	require.NotNil(t, d.AssinaturaTecnico)
	assert.Equal(t, "tech.png", d.AssinaturaTecnico.OriginalName)
	assert.Equal(t, base64.StdEncoding.EncodeToString(raw), d.AssinaturaTecnico.Buffer)
}

func TestAssembleSignatureInlineFallback(t *testing.T) {
	form := newForm().
		field("assinaturaResponsavel", "data:image/png;base64,aW5saW5l").
		build(t)

	d, err := Assemble(form, testNow)
	require.NoError(t, err)
	require.NotNil(t, d.AssinaturaResponsavel)
	assert.Equal(t, "assinatura-responsavel.png", d.AssinaturaResponsavel.OriginalName)
	assert.Equal(t, "aW5saW5l", d.AssinaturaResponsavel.Buffer)
	assert.Nil(t, d.AssinaturaTecnico)
}

func TestAssembleCancelFields(t *testing.T) {
	form := newForm().
		field("status", models.StatusCancelado).
		field("cancelReason", "outro").
		field("otherCancelReason", "portão trancado").
		file(FileCancelPhoto, "fachada.jpg", "image/jpeg", []byte("jpg bytes")).
		build(t)

	d, err := Assemble(form, testNow)
	require.NoError(t, err)
	assert.Equal(t, "outro", d.CancelReason)
	assert.Equal(t, "portão trancado", d.OtherCancelReason)
	assert.Equal(t, "portão trancado", d.CancelMotivo())
	require.NotNil(t, d.CancelPhoto)
	assert.Equal(t, "fachada.jpg", d.CancelPhoto.OriginalName)
}

func TestCancelMotivoPredefinedReason(t *testing.T) {
	d := &models.DraftInspection{CancelReason: "local fechado", OtherCancelReason: "ignorado"}
	assert.Equal(t, "local fechado", d.CancelMotivo())
}
