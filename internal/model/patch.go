package model

import (
	"fmt"

	"github.com/sag-insper/schedule-api/internal/apperror"
)

// ActivityPatch is the partial-update payload: every field of Activity,
// each optional. A nil pointer means "leave the stored value
// unchanged". JSON null decodes to a nil pointer too, so an explicit
// null is treated the same as an absent field — one consistent rule.
type ActivityPatch struct {
	CodTurma       *string       `json:"cod_turma"`
	Curso          *Course       `json:"curso"`
	Serie          *int          `json:"serie"`
	Turma          *Class        `json:"turma"`
	DiaSemana      *Weekday      `json:"dia_semana"`
	HoraInicio     *string       `json:"hora_inicio"`
	HoraFim        *string       `json:"hora_fim"`
	NomeDisciplina *string       `json:"nome_disciplina"`
	TipoAtividade  *ActivityType `json:"tipo_atividade"`
	Docentes       *string       `json:"docentes"`
	Cor            *int          `json:"cor"`
	Posicao        *int          `json:"posicao"`
}

// Validate checks the shape of every field that is present. Each set
// field must satisfy the same constraints as on creation; range rules
// that span fields (the time interval) are re-checked on the merged
// record, not here.
func (p *ActivityPatch) Validate() error {
	if p.Curso != nil && !p.Curso.Valid() {
		return validationFailedf("curso", "invalid course %q", string(*p.Curso))
	}
	if p.Serie != nil && (*p.Serie < 1 || *p.Serie > 10) {
		return validationFailedf("serie", "serie must be between 1 and 10")
	}
	if p.Turma != nil && !p.Turma.Valid() {
		return validationFailedf("turma", "invalid class %q", string(*p.Turma))
	}
	if p.DiaSemana != nil && !p.DiaSemana.Valid() {
		return validationFailedf("dia_semana", "invalid weekday %q", string(*p.DiaSemana))
	}
	if p.TipoAtividade != nil && !p.TipoAtividade.Valid() {
		return validationFailedf("tipo_atividade", "invalid activity type %q", string(*p.TipoAtividade))
	}
	if p.HoraInicio != nil && !timeOfDay.MatchString(*p.HoraInicio) {
		return validationFailedf("hora_inicio", "hora_inicio must match HH:MM")
	}
	if p.HoraFim != nil && !timeOfDay.MatchString(*p.HoraFim) {
		return validationFailedf("hora_fim", "hora_fim must match HH:MM")
	}
	if p.Cor != nil && (*p.Cor < 0 || *p.Cor > 5) {
		return validationFailedf("cor", "cor must be between 0 and 5")
	}
	return nil
}

// Apply copies every set field of the patch onto the activity.
// The result still has to pass Activity.Validate before it is stored.
func (p *ActivityPatch) Apply(a *Activity) {
	if p.CodTurma != nil {
		a.CodTurma = *p.CodTurma
	}
	if p.Curso != nil {
		a.Curso = *p.Curso
	}
	if p.Serie != nil {
		a.Serie = *p.Serie
	}
	if p.Turma != nil {
		a.Turma = *p.Turma
	}
	if p.DiaSemana != nil {
		a.DiaSemana = *p.DiaSemana
	}
	if p.HoraInicio != nil {
		a.HoraInicio = *p.HoraInicio
	}
	if p.HoraFim != nil {
		a.HoraFim = *p.HoraFim
	}
	if p.NomeDisciplina != nil {
		a.NomeDisciplina = *p.NomeDisciplina
	}
	if p.TipoAtividade != nil {
		a.TipoAtividade = *p.TipoAtividade
	}
	if p.Docentes != nil {
		a.Docentes = *p.Docentes
	}
	if p.Cor != nil {
		cor := *p.Cor
		a.Cor = &cor
	}
	if p.Posicao != nil {
		posicao := *p.Posicao
		a.Posicao = &posicao
	}
}

// Empty reports whether the patch sets no fields at all.
func (p *ActivityPatch) Empty() bool {
	return p.CodTurma == nil && p.Curso == nil && p.Serie == nil &&
		p.Turma == nil && p.DiaSemana == nil && p.HoraInicio == nil &&
		p.HoraFim == nil && p.NomeDisciplina == nil &&
		p.TipoAtividade == nil && p.Docentes == nil &&
		p.Cor == nil && p.Posicao == nil
}

func validationFailedf(field, format string, args ...any) error {
	return apperror.ValidationFailed(field, fmt.Sprintf(format, args...))
}
