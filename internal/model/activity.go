// Package model defines the schedule resources and their validation
// rules. The JSON field names are the API contract — they match what
// the timetable frontend already consumes.
package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/sag-insper/schedule-api/internal/apperror"
)

// IDLength is the fixed length of record identifiers.
const IDLength = 10

// timeOfDay matches the HH:MM wire format. Hour/minute ranges are
// checked separately so each failure gets its own message.
var timeOfDay = regexp.MustCompile(`^\d{2}:\d{2}$`)

// Activity is one weekly timetable entry.
//
// Cor and Posicao are pointers because they are optional: a record may
// legitimately not have a color or a display position yet, and zero is
// a valid value for both.
type Activity struct {
	ID             string       `json:"id,omitempty"`
	CodTurma       string       `json:"cod_turma,omitempty"`
	Curso          Course       `json:"curso"`
	Serie          int          `json:"serie"`
	Turma          Class        `json:"turma"`
	DiaSemana      Weekday      `json:"dia_semana"`
	HoraInicio     string       `json:"hora_inicio"`
	HoraFim        string       `json:"hora_fim"`
	NomeDisciplina string       `json:"nome_disciplina"`
	TipoAtividade  ActivityType `json:"tipo_atividade"`
	Docentes       string       `json:"docentes"`
	Cor            *int         `json:"cor,omitempty"`
	Posicao        *int         `json:"posicao,omitempty"`
}

func (a Activity) String() string {
	return fmt.Sprintf("[%s] %s.%s: %s", a.ID, a.CodTurma, a.TipoAtividade, a.NomeDisciplina)
}

// Validate checks every field and cross-field rule, then normalizes
// the record in place: free-text fields are upper-cased and cod_turma
// is recomputed from curso+serie+turma.
//
// It is called on creation payloads and again on merged records before
// an update is persisted, so a patch can never smuggle in an invalid
// time interval.
func (a *Activity) Validate() error {
	if a.ID != "" && len(a.ID) != IDLength {
		return apperror.ValidationFailed("id", fmt.Sprintf("id must be exactly %d characters", IDLength))
	}
	if !a.Curso.Valid() {
		return apperror.ValidationFailed("curso", fmt.Sprintf("invalid course %q", string(a.Curso)))
	}
	if a.Serie < 1 || a.Serie > 10 {
		return apperror.ValidationFailed("serie", "serie must be between 1 and 10")
	}
	if !a.Turma.Valid() {
		return apperror.ValidationFailed("turma", fmt.Sprintf("invalid class %q", string(a.Turma)))
	}
	if !a.DiaSemana.Valid() {
		return apperror.ValidationFailed("dia_semana", fmt.Sprintf("invalid weekday %q", string(a.DiaSemana)))
	}
	if !a.TipoAtividade.Valid() {
		return apperror.ValidationFailed("tipo_atividade", fmt.Sprintf("invalid activity type %q", string(a.TipoAtividade)))
	}

	startHour, startMinutes, err := parseTimeOfDay(a.HoraInicio)
	if err != nil {
		return apperror.ValidationFailed("hora_inicio", "hora_inicio must match HH:MM")
	}
	endHour, endMinutes, err := parseTimeOfDay(a.HoraFim)
	if err != nil {
		return apperror.ValidationFailed("hora_fim", "hora_fim must match HH:MM")
	}
	if startHour > 23 {
		return apperror.ValidationFailed("hora_inicio", "invalid start hour")
	}
	if startMinutes > 59 {
		return apperror.ValidationFailed("hora_inicio", "invalid start minutes")
	}
	if endHour > 23 {
		return apperror.ValidationFailed("hora_fim", "invalid end hour")
	}
	if endMinutes > 59 {
		return apperror.ValidationFailed("hora_fim", "invalid end minutes")
	}
	// The interval may be empty (start == end) but never inverted.
	if startHour > endHour || (startHour == endHour && startMinutes > endMinutes) {
		return apperror.ValidationFailed("hora_fim", "invalid time interval")
	}

	if a.Cor != nil && (*a.Cor < 0 || *a.Cor > 5) {
		return apperror.ValidationFailed("cor", "cor must be between 0 and 5")
	}

	a.NomeDisciplina = strings.ToUpper(a.NomeDisciplina)
	a.Docentes = strings.ToUpper(a.Docentes)
	a.CodTurma = fmt.Sprintf("%s_%d%s", a.Curso, a.Serie, a.Turma)

	return nil
}

func parseTimeOfDay(s string) (hour, minutes int, err error) {
	if !timeOfDay.MatchString(s) {
		return 0, 0, fmt.Errorf("model: %q does not match HH:MM", s)
	}
	hour, _ = strconv.Atoi(s[:2])
	minutes, _ = strconv.Atoi(s[3:])
	return hour, minutes, nil
}
