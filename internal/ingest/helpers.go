package ingest

import "strings"

// normalizeSpace collapses runs of whitespace into single spaces and trims.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// splitTags splits a spreadsheet cell holding a tag list. Cells arrive with
// comma, semicolon, or pipe separators depending on which export produced
// them.
func splitTags(cell string) []string {
	if strings.TrimSpace(cell) == "" {
		return nil
	}

	sep := ","
	switch {
	case strings.Contains(cell, ";"):
		sep = ";"
	case strings.Contains(cell, "|"):
		sep = "|"
	}

	var out []string
	for _, part := range strings.Split(cell, sep) {
		if s := normalizeSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// mergeUniqueFold appends items to dst, skipping case-insensitive duplicates.
func mergeUniqueFold(dst []string, items []string) []string {
	seen := make(map[string]struct{}, len(dst))
	for _, v := range dst {
		k := strings.ToLower(strings.TrimSpace(v))
		if k != "" {
			seen[k] = struct{}{}
		}
	}

	for _, v := range items {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		k := strings.ToLower(v)
		if _, ok := seen[k]; ok {
			continue
		}
		dst = append(dst, v)
		seen[k] = struct{}{}
	}

	return dst
}
