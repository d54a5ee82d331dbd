package model

// The schedule vocabulary is a set of closed enumerations. Each enum is
// a plain string type with an explicit value set — the underlying value
// is what gets serialized, so no unwrapping is needed at JSON
// boundaries.

// Course is the undergraduate course a class belongs to.
type Course string

const (
	CourseAdmEco    Course = "ADM/ECO"
	CourseAdm       Course = "ADM"
	CourseEco       Course = "ECO"
	CourseEng       Course = "ENG"
	CourseComp      Course = "COMP"
	CourseMecaMecat Course = "MECA/MECAT"
	CourseMeca      Course = "MECA"
	CourseMecat     Course = "MECAT"
	CourseDir       Course = "DIR"
	CourseCiecomp   Course = "CIECOMP"
)

var courses = map[Course]bool{
	CourseAdmEco: true, CourseAdm: true, CourseEco: true,
	CourseEng: true, CourseComp: true, CourseMecaMecat: true,
	CourseMeca: true, CourseMecat: true, CourseDir: true,
	CourseCiecomp: true,
}

func (c Course) Valid() bool { return courses[c] }

// Class is the class section (turma) within a course and series.
type Class string

const (
	ClassA     Class = "A"
	ClassB     Class = "B"
	ClassC     Class = "C"
	ClassD     Class = "D"
	ClassDPA   Class = "DPA"
	ClassDPB   Class = "DPB"
	ClassDPC   Class = "DPC"
	ClassEletA Class = "ELET_A"
	ClassEletB Class = "ELET_B"
)

var classes = map[Class]bool{
	ClassA: true, ClassB: true, ClassC: true, ClassD: true,
	ClassDPA: true, ClassDPB: true, ClassDPC: true,
	ClassEletA: true, ClassEletB: true,
}

func (c Class) Valid() bool { return classes[c] }

// Weekday is the day of the week, in Portuguese, as the timetable
// frontend displays it.
type Weekday string

const (
	Monday    Weekday = "SEGUNDA-FEIRA"
	Tuesday   Weekday = "TERÇA-FEIRA"
	Wednesday Weekday = "QUARTA-FEIRA"
	Thursday  Weekday = "QUINTA-FEIRA"
	Friday    Weekday = "SEXTA-FEIRA"
)

var weekdays = map[Weekday]bool{
	Monday: true, Tuesday: true, Wednesday: true,
	Thursday: true, Friday: true,
}

func (w Weekday) Valid() bool { return weekdays[w] }

// ActivityType distinguishes regular lectures from office hours,
// tutoring sessions, and reserved days.
type ActivityType string

const (
	TypeAula        ActivityType = "AULA"
	TypeAtendimento ActivityType = "ATENDIMENTO"
	TypeMonitoria   ActivityType = "MONITORIA"
	TypeDiaReserved ActivityType = "DIA RESERVADO"
)

var activityTypes = map[ActivityType]bool{
	TypeAula: true, TypeAtendimento: true,
	TypeMonitoria: true, TypeDiaReserved: true,
}

func (t ActivityType) Valid() bool { return activityTypes[t] }
