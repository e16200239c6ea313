// Package catalog holds the static program and course data the platform ships
// with: the national program list, the courses each program reads per year, and
// the display palettes cycled over course cards.
package catalog

// CourseTemplate describes one course within a program year. Mandatory courses
// are always assigned regardless of the user's selection.
type CourseTemplate struct {
	Code      string
	Name      string
	Subject   string
	Points    int
	Mandatory bool
}

// programIDs maps a program name to its national code. Names not present leave
// the profile's program id unset.
var programIDs = map[string]string{
	"Naturvetenskapsprogrammet":    "NA",
	"Samhällsvetenskapsprogrammet": "SA",
	"Teknikprogrammet":             "TE",
	"Ekonomiprogrammet":            "EK",
	"Estetiska programmet":         "ES",
	"Vård- och omsorgsprogrammet":  "VO",
}

// ProgramID resolves a program name to its code. The second return reports
// whether the name is known.
func ProgramID(name string) (string, bool) {
	id, ok := programIDs[name]
	return id, ok
}

// Two fixed palettes cycled by course position, so the same course list always
// renders with the same colors and icons.
var (
	cardColors = []string{"#4F6AF6", "#F6A54F", "#4FC98A", "#C94F6A", "#8A4FC9", "#4FB8C9"}
	cardIcons  = []string{"book", "calculator", "flask", "globe", "pen", "atom"}
)

// CardColor returns the display color for the course at position i.
func CardColor(i int) string {
	return cardColors[i%len(cardColors)]
}

// CardIcon returns the display icon for the course at position i.
func CardIcon(i int) string {
	return cardIcons[i%len(cardIcons)]
}

var gemensamma = map[int][]CourseTemplate{
	1: {
		{Code: "SVESVE01", Name: "Svenska 1", Subject: "Svenska", Points: 100, Mandatory: true},
		{Code: "ENGENG05", Name: "Engelska 5", Subject: "Engelska", Points: 100, Mandatory: true},
		{Code: "IDRIDR01", Name: "Idrott och hälsa 1", Subject: "Idrott", Points: 100, Mandatory: false},
		{Code: "HISHIS01b", Name: "Historia 1b", Subject: "Historia", Points: 100, Mandatory: false},
	},
	2: {
		{Code: "SVESVE02", Name: "Svenska 2", Subject: "Svenska", Points: 100, Mandatory: true},
		{Code: "ENGENG06", Name: "Engelska 6", Subject: "Engelska", Points: 100, Mandatory: true},
		{Code: "SAMSAM01b", Name: "Samhällskunskap 1b", Subject: "Samhällskunskap", Points: 100, Mandatory: false},
	},
	3: {
		{Code: "SVESVE03", Name: "Svenska 3", Subject: "Svenska", Points: 100, Mandatory: true},
		{Code: "RELREL01", Name: "Religionskunskap 1", Subject: "Religion", Points: 50, Mandatory: false},
	},
}

var programCourses = map[string]map[int][]CourseTemplate{
	"NA": {
		1: {
			{Code: "MATMAT01c", Name: "Matematik 1c", Subject: "Matematik", Points: 100, Mandatory: true},
			{Code: "BIOBIO01", Name: "Biologi 1", Subject: "Biologi", Points: 100, Mandatory: true},
			{Code: "KEMKEM01", Name: "Kemi 1", Subject: "Kemi", Points: 100, Mandatory: true},
			{Code: "FYSFYS01a", Name: "Fysik 1a", Subject: "Fysik", Points: 150, Mandatory: false},
		},
		2: {
			{Code: "MATMAT02c", Name: "Matematik 2c", Subject: "Matematik", Points: 100, Mandatory: true},
			{Code: "FYSFYS02", Name: "Fysik 2", Subject: "Fysik", Points: 100, Mandatory: false},
			{Code: "KEMKEM02", Name: "Kemi 2", Subject: "Kemi", Points: 100, Mandatory: false},
			{Code: "BIOBIO02", Name: "Biologi 2", Subject: "Biologi", Points: 100, Mandatory: false},
		},
		3: {
			{Code: "MATMAT03c", Name: "Matematik 3c", Subject: "Matematik", Points: 100, Mandatory: true},
			{Code: "MATMAT04", Name: "Matematik 4", Subject: "Matematik", Points: 100, Mandatory: false},
		},
	},
	"SA": {
		1: {
			{Code: "MATMAT01b", Name: "Matematik 1b", Subject: "Matematik", Points: 100, Mandatory: true},
			{Code: "SAMSAM01b", Name: "Samhällskunskap 1b", Subject: "Samhällskunskap", Points: 100, Mandatory: true},
			{Code: "PSKPSY01", Name: "Psykologi 1", Subject: "Psykologi", Points: 50, Mandatory: false},
		},
		2: {
			{Code: "MATMAT02b", Name: "Matematik 2b", Subject: "Matematik", Points: 100, Mandatory: true},
			{Code: "SAMSAM02", Name: "Samhällskunskap 2", Subject: "Samhällskunskap", Points: 100, Mandatory: false},
			{Code: "GEOGEO01", Name: "Geografi 1", Subject: "Geografi", Points: 100, Mandatory: false},
		},
		3: {
			{Code: "SAMSAM03", Name: "Samhällskunskap 3", Subject: "Samhällskunskap", Points: 100, Mandatory: false},
			{Code: "FILFIL01", Name: "Filosofi 1", Subject: "Filosofi", Points: 50, Mandatory: false},
		},
	},
	"TE": {
		1: {
			{Code: "MATMAT01c", Name: "Matematik 1c", Subject: "Matematik", Points: 100, Mandatory: true},
			{Code: "TEKTEK01", Name: "Teknik 1", Subject: "Teknik", Points: 150, Mandatory: true},
			{Code: "FYSFYS01a", Name: "Fysik 1a", Subject: "Fysik", Points: 150, Mandatory: false},
		},
		2: {
			{Code: "MATMAT02c", Name: "Matematik 2c", Subject: "Matematik", Points: 100, Mandatory: true},
			{Code: "PRRPRR01", Name: "Programmering 1", Subject: "Teknik", Points: 100, Mandatory: false},
			{Code: "CADCAD01", Name: "CAD 1", Subject: "Teknik", Points: 50, Mandatory: false},
		},
		3: {
			{Code: "MATMAT03c", Name: "Matematik 3c", Subject: "Matematik", Points: 100, Mandatory: true},
			{Code: "PRRPRR02", Name: "Programmering 2", Subject: "Teknik", Points: 100, Mandatory: false},
		},
	},
	"EK": {
		1: {
			{Code: "MATMAT01b", Name: "Matematik 1b", Subject: "Matematik", Points: 100, Mandatory: true},
			{Code: "FEKFÖR01", Name: "Företagsekonomi 1", Subject: "Ekonomi", Points: 100, Mandatory: true},
			{Code: "JURPRI01", Name: "Privatjuridik", Subject: "Juridik", Points: 100, Mandatory: false},
		},
		2: {
			{Code: "MATMAT02b", Name: "Matematik 2b", Subject: "Matematik", Points: 100, Mandatory: true},
			{Code: "FEKFÖR02", Name: "Företagsekonomi 2", Subject: "Ekonomi", Points: 100, Mandatory: false},
			{Code: "ENTENR01", Name: "Entreprenörskap", Subject: "Ekonomi", Points: 100, Mandatory: false},
		},
		3: {
			{Code: "NAKNAK01b", Name: "Naturkunskap 1b", Subject: "Naturkunskap", Points: 100, Mandatory: false},
			{Code: "MARMAR01", Name: "Marknadsföring", Subject: "Ekonomi", Points: 100, Mandatory: false},
		},
	},
}

// CoursesFor expands a program name and year into the candidate course list:
// the program-specific courses for that year plus the year's common courses.
// An unknown program or year yields an empty list.
func CoursesFor(program string, year int) []CourseTemplate {
	id, ok := programIDs[program]
	if !ok {
		return nil
	}
	byYear, ok := programCourses[id]
	if !ok {
		return nil
	}
	courses := append([]CourseTemplate{}, byYear[year]...)
	if len(courses) == 0 {
		return nil
	}
	return append(courses, gemensamma[year]...)
}

// AllCourses returns every distinct course template across all programs and
// years, used to seed the catalog table.
func AllCourses() []CourseTemplate {
	seen := make(map[string]bool)
	var all []CourseTemplate
	add := func(ts []CourseTemplate) {
		for _, t := range ts {
			if !seen[t.Code] {
				seen[t.Code] = true
				all = append(all, t)
			}
		}
	}
	for _, byYear := range programCourses {
		for _, ts := range byYear {
			add(ts)
		}
	}
	for _, ts := range gemensamma {
		add(ts)
	}
	return all
}
