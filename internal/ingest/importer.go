package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/marcus/aba-directory/internal/models"
)

// Row is one untrusted spreadsheet row: header cell -> value, headers as they
// appeared in the upload.
type Row map[string]string

// Stats summarizes an import run.
type Stats struct {
	RowsSeen       int `json:"rows_seen"`
	RowsImported   int `json:"rows_imported"`
	RowsSkipped    int `json:"rows_skipped"`
	IDsSynthesized int `json:"ids_synthesized"`
}

// columnAliases maps lower-cased header variants to canonical field names.
// Spreadsheets arrive from several sources with inconsistent labels; aliasing
// is permissive by design and unknown headers flow into the Extra bag.
var columnAliases = map[string]string{
	"id":          "id",
	"provider id": "id",

	"name":          "name",
	"provider":      "name",
	"provider name": "name",
	"business name": "name",

	"county":       "county",
	"counties":     "county",
	"service area": "county",
	"region":       "county",

	"city": "city",

	"address":        "address",
	"street address": "address",

	"phone":        "phone",
	"phone number": "phone",
	"telephone":    "phone",

	"email":         "email",
	"email address": "email",

	"website": "website",
	"url":     "website",
	"web":     "website",

	"description": "description",
	"about":       "description",

	"services":         "services",
	"services offered": "services",

	"certifications": "certifications",
	"credentials":    "certifications",

	"insurance":          "insurance",
	"insurance accepted": "insurance",
	"insurances":         "insurance",
	"accepted insurance": "insurance",

	"age groups":  "ageGroups",
	"ages":        "ageGroups",
	"ages served": "ageGroups",
	"age range":   "ageGroups",

	"rating":      "rating",
	"star rating": "rating",

	"rank": "rank",

	"years experience":    "yearsExperience",
	"years of experience": "yearsExperience",
	"experience":          "yearsExperience",
}

// canonicalHeader resolves a raw header to a canonical field name, or returns
// the trimmed header itself with ok=false when unrecognized.
func canonicalHeader(raw string) (string, bool) {
	key := strings.ToLower(normalizeSpace(raw))
	if canonical, ok := columnAliases[key]; ok {
		return canonical, true
	}
	return normalizeSpace(raw), false
}

// ParseCSV reads a spreadsheet export into rows. The first record is the
// header. Short rows are padded with empties rather than rejected: the import
// pipeline prioritizes partial success over all-or-nothing validation.
func ParseCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv payload is empty")
	}

	header := records[0]
	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(Row, len(header))
		for i, h := range header {
			val := ""
			if i < len(record) {
				val = record[i]
			}
			row[h] = val
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// FromRows converts untrusted rows into canonical providers. Malformed fields
// are coerced to absent, never rejected; a row is skipped only when it has
// neither a name nor any other non-empty cell. Missing ids are synthesized as
// provider-<row index+1>.
func FromRows(rows []Row) ([]models.Provider, Stats) {
	var stats Stats
	providers := make([]models.Provider, 0, len(rows))

	for i, row := range rows {
		stats.RowsSeen++

		p, empty := fromRow(row)
		if empty {
			stats.RowsSkipped++
			continue
		}

		if p.ID == "" {
			p.ID = fmt.Sprintf("provider-%d", i+1)
			stats.IDsSynthesized++
		}

		providers = append(providers, p)
		stats.RowsImported++
	}

	return providers, stats
}

func fromRow(row Row) (p models.Provider, empty bool) {
	empty = true
	for rawHeader, rawValue := range row {
		value := normalizeSpace(rawValue)
		if value == "" {
			continue
		}
		empty = false

		field, known := canonicalHeader(rawHeader)
		if !known {
			if p.Extra == nil {
				p.Extra = make(map[string]string)
			}
			p.Extra[field] = value
			continue
		}

		switch field {
		case "id":
			p.ID = value
		case "name":
			p.Name = value
		case "county":
			p.County = value
		case "city":
			p.City = value
		case "address":
			p.Address = value
		case "phone":
			p.Phone = value
		case "email":
			p.Email = value
		case "website":
			p.Website = value
		case "description":
			p.Description = value
		case "services":
			p.Services = mergeUniqueFold(p.Services, splitTags(rawValue))
		case "certifications":
			p.Certifications = mergeUniqueFold(p.Certifications, splitTags(rawValue))
		case "insurance":
			p.InsuranceAccepted = mergeUniqueFold(p.InsuranceAccepted, splitTags(rawValue))
		case "ageGroups":
			p.AgeGroups = mergeUniqueFold(p.AgeGroups, splitTags(rawValue))
		case "rating":
			if v, err := strconv.ParseFloat(value, 64); err == nil && v >= 0 {
				p.Rating = &v
			}
		case "rank":
			if v, err := strconv.Atoi(value); err == nil && v > 0 {
				p.Rank = &v
			}
		case "yearsExperience":
			if v, err := strconv.Atoi(value); err == nil && v >= 0 {
				p.YearsExperience = &v
			}
		}
	}

	return p, empty
}
