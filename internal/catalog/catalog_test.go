package catalog

import "testing"

func TestProgramID(t *testing.T) {
	id, ok := ProgramID("Naturvetenskapsprogrammet")
	if !ok || id != "NA" {
		t.Errorf("ProgramID = %q, %v, want NA, true", id, ok)
	}

	if _, ok := ProgramID("Okänt program"); ok {
		t.Error("unknown program name should not resolve")
	}
}

func TestCoursesForIncludesCommonCourses(t *testing.T) {
	courses := CoursesFor("Naturvetenskapsprogrammet", 1)
	if len(courses) == 0 {
		t.Fatal("NA year 1 should have courses")
	}

	byCode := make(map[string]CourseTemplate, len(courses))
	for _, c := range courses {
		byCode[c.Code] = c
	}

	// Program-specific and year-common courses both appear.
	if _, ok := byCode["MATMAT01c"]; !ok {
		t.Error("missing program course MATMAT01c")
	}
	if _, ok := byCode["SVESVE01"]; !ok {
		t.Error("missing common course SVESVE01")
	}
	if !byCode["MATMAT01c"].Mandatory {
		t.Error("MATMAT01c should be mandatory")
	}
}

func TestCoursesForUnknown(t *testing.T) {
	if got := CoursesFor("Okänt program", 1); got != nil {
		t.Errorf("unknown program: got %v, want nil", got)
	}
	if got := CoursesFor("Naturvetenskapsprogrammet", 9); got != nil {
		t.Errorf("unknown year: got %v, want nil", got)
	}
}

func TestCardPaletteDeterministic(t *testing.T) {
	if CardColor(0) != CardColor(len(cardColors)) {
		t.Error("colors should cycle by position")
	}
	if CardIcon(2) != CardIcon(2+len(cardIcons)) {
		t.Error("icons should cycle by position")
	}
	for i := 0; i < 20; i++ {
		if CardColor(i) == "" || CardIcon(i) == "" {
			t.Fatalf("empty palette entry at %d", i)
		}
	}
}

func TestAllCoursesDistinct(t *testing.T) {
	all := AllCourses()
	if len(all) == 0 {
		t.Fatal("catalog should not be empty")
	}

	seen := make(map[string]bool)
	for _, c := range all {
		if seen[c.Code] {
			t.Errorf("duplicate course code %q", c.Code)
		}
		seen[c.Code] = true
	}
}
