// Package rosterimport bulk-loads student accounts and their subject
// enrollments from a registrar CSV export.
package rosterimport

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type Row struct {
	Email        string
	FullName     string
	Department   string
	Phone        string
	SubjectCodes []string
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

var nameCaser = cases.Title(language.English)

// NormalizeName fixes the shouty or lowercase names registrar exports tend
// to contain: "ASHA VERMA" and "asha verma" both become "Asha Verma".
func NormalizeName(name string) string {
	return nameCaser.String(strings.ToLower(strings.Join(strings.Fields(name), " ")))
}

func ParseCSV(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, errors.New("csv has no data rows")
	}

	header := records[0]
	// Handle BOM on first header cell
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	col := map[string]int{}
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}

	for _, k := range []string{"email", "full_name"} {
		if _, ok := col[k]; !ok {
			return nil, fmt.Errorf("missing required column: %s", k)
		}
	}

	seen := map[string]bool{}
	var out []Row

	for rowIdx := 1; rowIdx < len(records); rowIdx++ {
		rec := records[rowIdx]
		get := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		email := strings.ToLower(get("email"))
		if email == "" {
			continue
		}
		if !emailRe.MatchString(email) {
			return nil, fmt.Errorf("row %d: invalid email %q", rowIdx+1, email)
		}
		if seen[email] {
			return nil, fmt.Errorf("row %d: duplicate email %q", rowIdx+1, email)
		}
		seen[email] = true

		name := NormalizeName(get("full_name"))
		if len(name) < 2 {
			return nil, fmt.Errorf("row %d: name too short for %q", rowIdx+1, email)
		}

		row := Row{
			Email:      email,
			FullName:   name,
			Department: get("department"),
			Phone:      get("phone"),
		}

		for _, code := range strings.Split(get("subjects"), ";") {
			code = strings.ToUpper(strings.TrimSpace(code))
			if code != "" {
				row.SubjectCodes = append(row.SubjectCodes, code)
			}
		}

		out = append(out, row)
	}

	if len(out) == 0 {
		return nil, errors.New("csv contained no usable rows")
	}
	return out, nil
}
