package content

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ImportConfig defines how workbook columns map onto lesson fields.
type ImportConfig struct {
	SheetName  string // Name of the sheet to import
	BookCol    string // Column with the book number
	LessonCol  string // Column with the lesson number
	ItemCol    string // Column with the item id
	TypeCol    string // Column with the item type ("vocab" or "grammar")
	PromptCol  string // Column with the exercise prompt (optional per row)
	AnswerCol  string // Column with the exercise answer (optional per row)
	StartRow  int    // The row to start importing from (1-based)
}

// DefaultImportConfig returns the conventional authoring layout.
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		SheetName: "Sheet1",
		BookCol:   "A",
		LessonCol: "B",
		ItemCol:   "C",
		TypeCol:   "D",
		PromptCol: "E",
		AnswerCol: "F",
		StartRow:  2, // skip header
	}
}

// ImportResult summarizes a workbook import.
type ImportResult struct {
	RowsProcessed  int
	LessonsCreated int
	ItemsImported  int
	Skipped        int
	Errors         []string
}

// ImportWorkbook reads an author spreadsheet into lesson records.
// Rows with a prompt and answer also emit a vocabulary exercise for
// their item, so an imported catalog is immediately practicable.
func ImportWorkbook(path string, cfg ImportConfig) (*Catalog, *ImportResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(cfg.SheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", cfg.SheetName, err)
	}

	result := &ImportResult{}
	lessons := make(map[string]*Lesson)

	for i := cfg.StartRow; i <= len(rows); i++ {
		result.RowsProcessed++

		cell := func(col string) string {
			v, _ := f.GetCellValue(cfg.SheetName, col+strconv.Itoa(i))
			return strings.TrimSpace(v)
		}

		bookStr, lessonStr := cell(cfg.BookCol), cell(cfg.LessonCol)
		itemID := cell(cfg.ItemCol)
		if bookStr == "" && lessonStr == "" && itemID == "" {
			result.Skipped++
			continue
		}

		book, err := strconv.Atoi(bookStr)
		if err != nil || book < 1 {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: bad book %q", i, bookStr))
			continue
		}
		lessonNum, err := strconv.Atoi(lessonStr)
		if err != nil || lessonNum < 1 {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: bad lesson %q", i, lessonStr))
			continue
		}
		if itemID == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: missing item id", i))
			continue
		}

		key := fmt.Sprintf("b%d-l%d", book, lessonNum)
		l, ok := lessons[key]
		if !ok {
			l = &Lesson{ID: key, Book: book, Lesson: lessonNum}
			lessons[key] = l
			result.LessonsCreated++
		}

		switch strings.ToLower(cell(cfg.TypeCol)) {
		case "grammar":
			l.GrammarPoints = append(l.GrammarPoints, itemID)
		default:
			l.Vocabulary = append(l.Vocabulary, itemID)
		}
		result.ItemsImported++

		prompt, answer := cell(cfg.PromptCol), cell(cfg.AnswerCol)
		if answer != "" {
			l.Exercises = append(l.Exercises, Exercise{
				ID:      itemID + "-ex",
				Kind:    KindVocabulary,
				ItemIDs: []string{itemID},
				Prompt:  prompt,
				Answer:  answer,
			})
		}
	}

	cat := &Catalog{Lessons: make([]Lesson, 0, len(lessons))}
	for _, l := range lessons {
		cat.Lessons = append(cat.Lessons, *l)
	}
	sort.SliceStable(cat.Lessons, func(i, j int) bool {
		if cat.Lessons[i].Book != cat.Lessons[j].Book {
			return cat.Lessons[i].Book < cat.Lessons[j].Book
		}
		return cat.Lessons[i].Lesson < cat.Lessons[j].Lesson
	})

	return cat, result, nil
}
