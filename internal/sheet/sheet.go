// Package sheet reads rosters from and writes winner lists to xlsx workbooks.
package sheet

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"lucky-draw/internal/lottery"
)

const (
	ResultsSheet = "Winners"
	timeLayout   = "2006-01-02 15:04:05"
)

var (
	nameKeywords  = []string{"姓名", "名字", "name", "人员", "员工", "person", "people"}
	prizeKeywords = []string{"奖品", "奖项", "prize", "level", "奖"}
	countKeywords = []string{"数量", "份数", "count", "qty", "num", "number", "total"}
)

var resultsHeader = []interface{}{"No", "Name", "Prize", "Time"}

// ParsePeople reads names from the first column of the first sheet. A header
// row is skipped when it looks like one; names are trimmed and de-duplicated.
func ParsePeople(r io.Reader) ([]string, error) {
	rows, err := readSheets(r, 1)
	if err != nil {
		return nil, err
	}
	return peopleFromRows(rows[0]), nil
}

// ParsePrizes reads name and count from the first two columns of the first
// sheet. A missing or invalid count means one item.
func ParsePrizes(r io.Reader) ([]lottery.PrizeSpec, error) {
	rows, err := readSheets(r, 1)
	if err != nil {
		return nil, err
	}
	return prizesFromRows(rows[0]), nil
}

// ParseRoster reads people from sheet 1 and prizes from sheet 2. Without a
// second sheet the default prizes are returned.
func ParseRoster(r io.Reader) ([]string, []lottery.PrizeSpec, error) {
	rows, err := readSheets(r, 2)
	if err != nil {
		return nil, nil, err
	}

	names := peopleFromRows(rows[0])
	if rows[1] == nil {
		return names, lottery.DefaultPrizes(), nil
	}
	return names, prizesFromRows(rows[1]), nil
}

// BuildResults renders the winners, in the given order, as an xlsx workbook.
func BuildResults(results []lottery.Result) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ResultsSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(ResultsSheet, "A1", &resultsHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, r := range results {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{i + 1, r.PersonName, r.PrizeName, r.Timestamp.Format(timeLayout)}
		if err := f.SetSheetRow(ResultsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// DefaultExportName is the file name suggested when saving results.
func DefaultExportName(now time.Time) string {
	return fmt.Sprintf("winners_%s.xlsx", now.Format("2006-01-02"))
}

// readSheets returns the rows of the first n sheets. Missing sheets are nil.
func readSheets(r io.Reader, n int) ([][][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	names := f.GetSheetList()
	out := make([][][]string, n)
	for i := 0; i < n && i < len(names); i++ {
		rows, err := f.GetRows(names[i])
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", names[i], err)
		}
		if rows == nil {
			rows = [][]string{}
		}
		out[i] = rows
	}
	return out, nil
}

func peopleFromRows(rows [][]string) []string {
	if len(rows) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	var names []string
	for _, row := range rows[headerOffset(rows[0]):] {
		name := cell(row, 0)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

func prizesFromRows(rows [][]string) []lottery.PrizeSpec {
	if len(rows) == 0 {
		return nil
	}

	var specs []lottery.PrizeSpec
	for _, row := range rows[headerOffset(rows[0]):] {
		name := cell(row, 0)
		if name == "" {
			continue
		}
		total := 1
		if n, err := strconv.Atoi(cell(row, 1)); err == nil && n > 0 {
			total = n
		}
		specs = append(specs, lottery.PrizeSpec{Name: name, Total: total})
	}
	return specs
}

func headerOffset(first []string) int {
	a := strings.ToLower(cell(first, 0))
	b := strings.ToLower(cell(first, 1))
	if containsAny(a, nameKeywords) || containsAny(a, prizeKeywords) || containsAny(b, countKeywords) {
		return 1
	}
	return 0
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
