// Package importer reads word cards from spreadsheets.
package importer

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/at-ishikawa/lunaword/internal/library"
)

// Column headers of a word workbook. Each sheet is one category.
const (
	HeaderWord         = "单词 (Word)"
	HeaderPhonetic     = "音标 (Phonetic)"
	HeaderMeaning      = "中文 (Meaning)"
	HeaderMnemonic     = "脑洞联想 (Mnemonic)"
	HeaderEtymology    = "词源/逻辑 (Etymology)"
	HeaderCollocations = "搭配 (Collocations)"
)

var (
	sentenceHeader    = regexp.MustCompile(`^例句(\d+) \(Sentence\d+\)$`)
	translationHeader = regexp.MustCompile(`^例句(\d+)中文 \(CN\d+\)$`)
	collocationSep    = regexp.MustCompile(`[;；,，]`)
)

// SheetResult reports what was read from one sheet.
type SheetResult struct {
	Category string
	Cards    int
	Skipped  int
}

// Workbook is the content of a word workbook.
type Workbook struct {
	Cards  []library.WordCard
	Sheets []SheetResult
}

// ReadWorkbookFile reads the workbook at path.
func ReadWorkbookFile(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("excelize.OpenFile(%s) > %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return readWorkbook(f)
}

// ReadWorkbook reads a workbook from r.
func ReadWorkbook(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("excelize.OpenReader > %w", err)
	}
	defer func() { _ = f.Close() }()

	return readWorkbook(f)
}

func readWorkbook(f *excelize.File) (*Workbook, error) {
	var workbook Workbook
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("f.GetRows(%s) > %w", sheet, err)
		}
		if len(rows) == 0 {
			continue
		}

		columns := indexColumns(rows[0])
		if _, ok := columns.fields[HeaderWord]; !ok {
			slog.Default().Debug("skip sheet without a word column", "sheet", sheet)
			continue
		}

		result := SheetResult{Category: library.NormalizeCategory(sheet)}
		for _, row := range rows[1:] {
			card, ok := columns.card(row)
			if !ok {
				result.Skipped++
				continue
			}
			card.Category = result.Category
			workbook.Cards = append(workbook.Cards, card)
			result.Cards++
		}
		workbook.Sheets = append(workbook.Sheets, result)
	}
	return &workbook, nil
}

type sentenceColumns struct {
	text        int
	translation int
}

type columnIndex struct {
	fields    map[string]int
	sentences []sentenceColumns
}

func indexColumns(header []string) columnIndex {
	index := columnIndex{fields: make(map[string]int)}
	texts := make(map[string]int)
	translations := make(map[string]int)
	var order []string

	for i, name := range header {
		name = strings.TrimSpace(name)
		if m := sentenceHeader.FindStringSubmatch(name); m != nil {
			texts[m[1]] = i
			order = append(order, m[1])
			continue
		}
		if m := translationHeader.FindStringSubmatch(name); m != nil {
			translations[m[1]] = i
			continue
		}
		index.fields[name] = i
	}

	for _, n := range order {
		columns := sentenceColumns{text: texts[n], translation: -1}
		if i, ok := translations[n]; ok {
			columns.translation = i
		}
		index.sentences = append(index.sentences, columns)
	}
	return index
}

func (index columnIndex) value(row []string, header string) string {
	i, ok := index.fields[header]
	if !ok {
		return ""
	}
	return cell(row, i)
}

func (index columnIndex) card(row []string) (library.WordCard, bool) {
	word := library.NormalizeWord(index.value(row, HeaderWord))
	if word == "" {
		return library.WordCard{}, false
	}

	card := library.WordCard{
		Word:     word,
		Phonetic: strings.Trim(index.value(row, HeaderPhonetic), "/[] "),
		Meaning:  index.value(row, HeaderMeaning),
		Mnemonic: index.value(row, HeaderMnemonic),
		Roots:    index.value(row, HeaderEtymology),
	}
	for _, c := range collocationSep.Split(index.value(row, HeaderCollocations), -1) {
		if c = strings.TrimSpace(c); c != "" {
			card.Collocations = append(card.Collocations, c)
		}
	}
	for _, columns := range index.sentences {
		text := cell(row, columns.text)
		if text == "" {
			continue
		}
		card.Sentences = append(card.Sentences, library.Sentence{
			Text:        text,
			Translation: cell(row, columns.translation),
		})
	}
	return card, true
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
