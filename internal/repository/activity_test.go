package repository

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/goccy/go-json"

	"github.com/sag-insper/schedule-api/internal/apperror"
	"github.com/sag-insper/schedule-api/internal/backend/memory"
	"github.com/sag-insper/schedule-api/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// seededRepo returns a repository over an in-memory document holding
// the given raw records.
func seededRepo(t *testing.T, records map[string]map[string]any) (*Activities, *memory.Document) {
	t.Helper()
	if records == nil {
		records = map[string]map[string]any{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		t.Fatalf("marshaling seed records: %v", err)
	}
	doc := memory.New()
	doc.Seed(map[string]any{"data": string(raw), "last_update": 1738000000.0})
	return NewActivities(doc, discardLogger()), doc
}

func validPayload() model.Activity {
	return model.Activity{
		Curso:          model.CourseEng,
		Serie:          1,
		Turma:          model.ClassA,
		DiaSemana:      model.Monday,
		HoraInicio:     "07:30",
		HoraFim:        "09:30",
		NomeDisciplina: "design de software",
		TipoAtividade:  model.TypeAula,
		Docentes:       "rafael dourado",
	}
}

func seedRecord(id string) map[string]any {
	return map[string]any{
		"id":              id,
		"cod_turma":       "ENG_1A",
		"curso":           "ENG",
		"serie":           1,
		"turma":           "A",
		"dia_semana":      "SEGUNDA-FEIRA",
		"hora_inicio":     "07:30",
		"hora_fim":        "09:30",
		"nome_disciplina": "DESIGN DE SOFTWARE",
		"tipo_atividade":  "AULA",
		"docentes":        "RAFAEL DOURADO",
	}
}

func TestCreate_AssignsIDAndPersists(t *testing.T) {
	repo, doc := seededRepo(t, nil)

	created, err := repo.Create(context.Background(), validPayload())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(created.ID) != model.IDLength {
		t.Errorf("Create() id = %q, want %d characters", created.ID, model.IDLength)
	}
	if created.NomeDisciplina != "DESIGN DE SOFTWARE" {
		t.Errorf("nome_disciplina = %q, want normalized uppercase", created.NomeDisciplina)
	}
	if created.CodTurma != "ENG_1A" {
		t.Errorf("cod_turma = %q, want ENG_1A", created.CodTurma)
	}
	if doc.Stores != 1 {
		t.Errorf("backend stores = %d, want 1", doc.Stores)
	}

	// The created record is visible to a subsequent listing.
	listed, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(listed) != 1 || listed[0].ID != created.ID {
		t.Fatalf("List() = %v, want the created record", listed)
	}
}

func TestCreate_ValidatesBeforeAnyBackendIO(t *testing.T) {
	repo, doc := seededRepo(t, nil)

	payload := validPayload()
	payload.HoraInicio = "10:00"
	payload.HoraFim = "09:00"

	_, err := repo.Create(context.Background(), payload)
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("Create() error = %v, want validation error", err)
	}
	if doc.Fetches != 0 {
		t.Errorf("backend fetches = %d, want 0 — validation must fail fast", doc.Fetches)
	}
	if doc.Stores != 0 {
		t.Errorf("backend stores = %d, want 0", doc.Stores)
	}
}

func TestCreate_MissingDocument(t *testing.T) {
	repo := NewActivities(memory.New(), discardLogger())

	_, err := repo.Create(context.Background(), validPayload())
	if !errors.Is(err, apperror.ErrInternal) {
		t.Fatalf("Create() error = %v, want internal error", err)
	}
	if err.Error() != msgNotSynced {
		t.Errorf("error message = %q, want %q", err.Error(), msgNotSynced)
	}
}

func TestFetchFailure_IsSanitized(t *testing.T) {
	doc := memory.New()
	doc.FailFetch = errors.New("rpc error: firestore unavailable at 10.0.0.7")
	repo := NewActivities(doc, discardLogger())

	_, err := repo.List(context.Background())
	if !errors.Is(err, apperror.ErrInternal) {
		t.Fatalf("List() error = %v, want internal error", err)
	}
	if err.Error() != msgSyncFailed {
		t.Errorf("error message = %q — backend details must not leak", err.Error())
	}
}

func TestPersistFailure_IsSanitized(t *testing.T) {
	repo, doc := seededRepo(t, nil)
	doc.FailStore = errors.New("rpc error: write quota exceeded")

	_, err := repo.Create(context.Background(), validPayload())
	if !errors.Is(err, apperror.ErrInternal) {
		t.Fatalf("Create() error = %v, want internal error", err)
	}
	if err.Error() != msgPersistFailed {
		t.Errorf("error message = %q — backend details must not leak", err.Error())
	}
}

func TestList_DropsUnparsableRecords(t *testing.T) {
	bad := seedRecord("bad0000000")
	bad["curso"] = "XXX"
	repo, _ := seededRepo(t, map[string]map[string]any{
		"good000000": seedRecord("good000000"),
		"bad0000000": bad,
	})

	listed, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(listed) != 1 || listed[0].ID != "good000000" {
		t.Fatalf("List() = %v, want only the parsable record", listed)
	}
}

func TestList_EmptyCollection(t *testing.T) {
	repo, _ := seededRepo(t, nil)
	listed, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("List() = %v, want empty", listed)
	}
}

func TestUpdate_MergesAndRevalidates(t *testing.T) {
	repo, doc := seededRepo(t, map[string]map[string]any{
		"abcdefghij": seedRecord("abcdefghij"),
	})

	horaFim := "10:30"
	docentes := "maria silva"
	updated, err := repo.Update(context.Background(), "abcdefghij", model.ActivityPatch{
		HoraFim:  &horaFim,
		Docentes: &docentes,
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.HoraFim != "10:30" {
		t.Errorf("hora_fim = %q, want 10:30", updated.HoraFim)
	}
	if updated.Docentes != "MARIA SILVA" {
		t.Errorf("docentes = %q, want re-normalized uppercase", updated.Docentes)
	}
	// Unset fields survive the merge.
	if updated.HoraInicio != "07:30" {
		t.Errorf("hora_inicio = %q, want unchanged 07:30", updated.HoraInicio)
	}
	if updated.ID != "abcdefghij" {
		t.Errorf("id = %q, want unchanged", updated.ID)
	}
	if doc.Stores != 1 {
		t.Errorf("backend stores = %d, want 1", doc.Stores)
	}
}

func TestUpdate_RejectsInvalidMergedRecord(t *testing.T) {
	repo, doc := seededRepo(t, map[string]map[string]any{
		"abcdefghij": seedRecord("abcdefghij"),
	})

	// Valid on its own, invalid once merged: end before start.
	horaFim := "06:00"
	_, err := repo.Update(context.Background(), "abcdefghij", model.ActivityPatch{HoraFim: &horaFim})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("Update() error = %v, want validation error", err)
	}
	if err.Error() != "invalid time interval" {
		t.Errorf("error message = %q, want %q", err.Error(), "invalid time interval")
	}
	if doc.Stores != 0 {
		t.Errorf("backend stores = %d — nothing may persist after a failed merge", doc.Stores)
	}
}

func TestUpdate_UnknownID(t *testing.T) {
	repo, _ := seededRepo(t, nil)
	_, err := repo.Update(context.Background(), "missing123", model.ActivityPatch{})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("Update() error = %v, want not-found", err)
	}
	if err.Error() != "ID not found" {
		t.Errorf("error message = %q, want %q", err.Error(), "ID not found")
	}
}

func TestUpdate_EmptyPatchLeavesRecordUnchanged(t *testing.T) {
	repo, _ := seededRepo(t, map[string]map[string]any{
		"abcdefghij": seedRecord("abcdefghij"),
	})

	updated, err := repo.Update(context.Background(), "abcdefghij", model.ActivityPatch{})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Docentes != "RAFAEL DOURADO" || updated.HoraInicio != "07:30" || updated.HoraFim != "09:30" {
		t.Errorf("empty patch changed the record: %+v", updated)
	}
}

func TestDelete(t *testing.T) {
	repo, doc := seededRepo(t, map[string]map[string]any{
		"abcdefghij": seedRecord("abcdefghij"),
	})

	if err := repo.Delete(context.Background(), "abcdefghij"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if doc.Stores != 1 {
		t.Errorf("backend stores = %d, want 1", doc.Stores)
	}

	listed, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("List() after delete = %v, want empty", listed)
	}

	// Deleting again reports not-found.
	err = repo.Delete(context.Background(), "abcdefghij")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("second Delete() error = %v, want not-found", err)
	}
}

func TestInitialize(t *testing.T) {
	doc := memory.New()
	repo := NewActivities(doc, discardLogger())

	if err := repo.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if doc.Fields() == nil {
		t.Fatal("Initialize() did not seed the document")
	}

	// Idempotent: a second call must not overwrite existing content.
	if _, err := repo.Create(context.Background(), validPayload()); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := repo.Initialize(context.Background()); err != nil {
		t.Fatalf("second Initialize() error = %v", err)
	}
	listed, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("List() = %v, want the record to survive re-initialization", listed)
	}
}
