package content

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// writeTestWorkbook builds a small authoring spreadsheet in the default
// column layout. Each row is book, lesson, item, type, prompt, answer.
func writeTestWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	header := []any{"Book", "Lesson", "Item", "Type", "Prompt", "Answer"}
	if err := f.SetSheetRow("Sheet1", "A1", &header); err != nil {
		t.Fatal(err)
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}

	path := filepath.Join(t.TempDir(), "lessons.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImportWorkbook(t *testing.T) {
	path := writeTestWorkbook(t, [][]any{
		{1, 1, "hatha", "vocab", "this (masc.)", "هَذَا"},
		{1, 1, "mubtada-khabar", "grammar", "", ""},
		{1, 2, "bayt", "vocab", "house", "بَيْتٌ"},
	})

	cat, result, err := ImportWorkbook(path, DefaultImportConfig())
	if err != nil {
		t.Fatalf("ImportWorkbook: %v", err)
	}

	if result.LessonsCreated != 2 {
		t.Errorf("lessons created = %d, want 2", result.LessonsCreated)
	}
	if result.ItemsImported != 3 {
		t.Errorf("items imported = %d, want 3", result.ItemsImported)
	}
	if len(result.Errors) != 0 {
		t.Errorf("errors = %v, want none", result.Errors)
	}

	if len(cat.Lessons) != 2 {
		t.Fatalf("catalog lessons = %d, want 2", len(cat.Lessons))
	}
	l1 := cat.Lessons[0]
	if l1.ID != "b1-l1" {
		t.Errorf("lesson id = %q, want b1-l1", l1.ID)
	}
	if len(l1.Vocabulary) != 1 || l1.Vocabulary[0] != "hatha" {
		t.Errorf("vocabulary = %v, want [hatha]", l1.Vocabulary)
	}
	if len(l1.GrammarPoints) != 1 || l1.GrammarPoints[0] != "mubtada-khabar" {
		t.Errorf("grammar = %v, want [mubtada-khabar]", l1.GrammarPoints)
	}

	// Rows with an answer generate a practicable exercise.
	if len(l1.Exercises) != 1 {
		t.Fatalf("exercises = %d, want 1 (grammar row had no answer)", len(l1.Exercises))
	}
	ex := l1.Exercises[0]
	if ex.ID != "hatha-ex" || ex.Kind != KindVocabulary || ex.Answer != "هَذَا" {
		t.Errorf("exercise = %+v", ex)
	}
}

func TestImportWorkbook_BadRows(t *testing.T) {
	path := writeTestWorkbook(t, [][]any{
		{"x", 1, "hatha", "vocab", "", ""},
		{1, 0, "bayt", "vocab", "", ""},
		{1, 1, "", "vocab", "", ""},
		{1, 1, "qalam", "vocab", "pen", "قَلَمٌ"},
	})

	cat, result, err := ImportWorkbook(path, DefaultImportConfig())
	if err != nil {
		t.Fatalf("ImportWorkbook: %v", err)
	}
	if len(result.Errors) != 3 {
		t.Errorf("errors = %d, want 3: %v", len(result.Errors), result.Errors)
	}
	if result.ItemsImported != 1 {
		t.Errorf("items imported = %d, want 1", result.ItemsImported)
	}
	if len(cat.Lessons) != 1 || cat.Lessons[0].Vocabulary[0] != "qalam" {
		t.Errorf("catalog = %+v, want only the valid row", cat.Lessons)
	}
}

func TestImportWorkbook_MissingSheet(t *testing.T) {
	path := writeTestWorkbook(t, nil)
	cfg := DefaultImportConfig()
	cfg.SheetName = "Nope"
	if _, _, err := ImportWorkbook(path, cfg); err == nil {
		t.Error("expected error for missing sheet")
	}
}

func TestLessonItemIDs(t *testing.T) {
	l := Lesson{
		Vocabulary:    []string{"bayt", "qalam"},
		GrammarPoints: []string{"idafa"},
	}
	got := l.ItemIDs()
	want := []string{"bayt", "qalam", "idafa"}
	if len(got) != len(want) {
		t.Fatalf("ItemIDs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ItemIDs[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestIsChallenge(t *testing.T) {
	if (Exercise{Kind: KindVocabulary}).IsChallenge() {
		t.Error("vocabulary exercise reported as challenge")
	}
	if !(Exercise{Kind: KindChallenge}).IsChallenge() {
		t.Error("challenge exercise not reported as challenge")
	}
}
