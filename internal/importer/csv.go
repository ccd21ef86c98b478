// Package importer reads contacts from uploaded CSV files.
package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"remindme-service/pkg/models"
)

// Recognised columns; header matching is case-insensitive.
const (
	colName         = "name"
	colEmail        = "email"
	colPhone        = "phone"
	colBirthday     = "birthday"
	colRelationship = "relationship"
	colNotes        = "notes"
)

var knownColumns = []string{colName, colEmail, colPhone, colBirthday, colRelationship, colNotes}

var (
	ErrEmptyFile     = errors.New("file is empty")
	ErrMissingName   = errors.New("missing name column")
	ErrInvalidUTF8   = errors.New("file is not valid UTF-8")
	ErrTooManyFields = errors.New("row has more fields than the header")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// SkippedRow is a data row left out of the import. Line is 1-based and
// counts the header as line 1.
type SkippedRow struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

type Result struct {
	Contacts []models.ContactRequest
	Skipped  []SkippedRow
}

// Parse reads a whole CSV document. Structural problems (bad encoding,
// unbalanced quotes, extra fields, no name column) fail the whole file.
// Rows that are structurally fine but unusable, such as a blank name or a
// malformed email, are skipped and reported.
func Parse(r io.Reader) (Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Result{}, fmt.Errorf("read: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return Result{}, ErrInvalidUTF8
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Result{}, ErrEmptyFile
	}
	if err != nil {
		return Result{}, err
	}
	cols := indexColumns(header)
	if _, ok := cols[colName]; !ok {
		return Result{}, ErrMissingName
	}

	var res Result
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Result{}, err
		}
		line, _ := cr.FieldPos(0)
		if len(record) > len(header) {
			return Result{}, fmt.Errorf("line %d: %w (expected %d, saw %d)", line, ErrTooManyFields, len(header), len(record))
		}

		cell := func(col string) *string {
			i, ok := cols[col]
			if !ok || i >= len(record) {
				return nil
			}
			v := strings.TrimSpace(record[i])
			if v == "" {
				return nil
			}
			return &v
		}

		name := cell(colName)
		if name == nil {
			res.Skipped = append(res.Skipped, SkippedRow{Line: line, Reason: "name is empty"})
			continue
		}
		email := cell(colEmail)
		if email != nil && !models.ValidEmail(*email) {
			res.Skipped = append(res.Skipped, SkippedRow{Line: line, Reason: fmt.Sprintf("invalid email %q", *email)})
			continue
		}

		res.Contacts = append(res.Contacts, models.ContactRequest{
			Name:         *name,
			Email:        email,
			Phone:        cell(colPhone),
			Birthday:     cell(colBirthday),
			Relationship: cell(colRelationship),
			Notes:        cell(colNotes),
		})
	}
	return res, nil
}

// indexColumns maps each known column to its position. An exact lowercase
// header wins over a differently-cased duplicate.
func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(knownColumns))
	for i, h := range header {
		h = strings.TrimSpace(h)
		key := strings.ToLower(h)
		if !isKnown(key) {
			continue
		}
		if prev, seen := cols[key]; !seen || (h == key && strings.TrimSpace(header[prev]) != key) {
			cols[key] = i
		}
	}
	return cols
}

func isKnown(col string) bool {
	for _, c := range knownColumns {
		if c == col {
			return true
		}
	}
	return false
}
