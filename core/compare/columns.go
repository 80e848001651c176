package compare

import "strings"

// ReconcileColumns compares two header lists case-insensitively.
//
// Common preserves the reference headers' casing and order. IsExactMatch
// is true iff the case-insensitive symmetric difference is empty. The
// function is pure: identical inputs always yield structurally equal
// reports.
func ReconcileColumns(refHeaders, compHeaders []string) ColumnReport {
	refSet := make(map[string]struct{}, len(refHeaders))
	for _, h := range refHeaders {
		refSet[strings.ToLower(h)] = struct{}{}
	}
	compSet := make(map[string]struct{}, len(compHeaders))
	for _, h := range compHeaders {
		compSet[strings.ToLower(h)] = struct{}{}
	}

	report := ColumnReport{
		Common:     []string{},
		OnlyInRef:  []string{},
		OnlyInComp: []string{},
	}

	seen := make(map[string]struct{}, len(refHeaders))
	for _, h := range refHeaders {
		lower := strings.ToLower(h)
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}

		if _, ok := compSet[lower]; ok {
			report.Common = append(report.Common, h)
		} else {
			report.OnlyInRef = append(report.OnlyInRef, h)
		}
	}

	seen = make(map[string]struct{}, len(compHeaders))
	for _, h := range compHeaders {
		lower := strings.ToLower(h)
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}

		if _, ok := refSet[lower]; !ok {
			report.OnlyInComp = append(report.OnlyInComp, h)
		}
	}

	report.IsExactMatch = len(report.OnlyInRef) == 0 && len(report.OnlyInComp) == 0
	return report
}
