package compare

import (
	"sort"
	"strconv"

	"config-compare/core/diff"
	"config-compare/core/normalize"
)

// CompareRow compares a paired row field-by-field. Equality per field is
// decided by the normalizer with the active flags; each mismatching
// field gets an adaptive cell diff. A row with no mismatches reports
// StatusMatch with nil Differences.
func CompareRow(ref, comp Row, fields []string, opts Options) RowResult {
	normOpts := normalize.Options{
		Dates:   opts.NormalizeDates,
		Numbers: opts.NormalizeNumbers,
	}

	var differences map[string]diff.CellResult
	for _, field := range fieldsToCompare(ref, fields) {
		if normalize.Equal(ref[field], comp[field], normOpts) {
			continue
		}
		if differences == nil {
			differences = make(map[string]diff.CellResult)
		}
		differences[field] = diff.Adaptive(
			normalize.Stringify(ref[field]),
			normalize.Stringify(comp[field]),
			opts.threshold(),
		)
	}

	status := StatusMatch
	if differences != nil {
		status = StatusDiffer
	}
	return RowResult{
		Status:      status,
		Reference:   ref,
		Comparator:  comp,
		Differences: differences,
	}
}

// Datasets compares the reference dataset against the comparator.
//
// In key mode, rows are paired through composite-key maps built from
// KeyColumns; every key present in either map produces exactly one
// result row. In position mode, rows are paired by index and no key
// columns are required. The result rows are ordered differ-first, then
// one-sided rows, then matches. Input rows are never mutated.
func Datasets(ref, comp []Row, opts Options) (*Result, error) {
	mode := opts.MatchMode
	if mode == "" {
		mode = MatchModeKey
	}

	var rows []RowResult
	duplicates := DuplicateReport{
		Reference:  []DuplicateKey{},
		Comparator: []DuplicateKey{},
	}

	switch mode {
	case MatchModeKey:
		if len(opts.KeyColumns) == 0 {
			return nil, newInputError("key match mode requires at least one key column")
		}

		refMap, refDups := BuildKeyMap(ref, opts.KeyColumns)
		compMap, compDups := BuildKeyMap(comp, opts.KeyColumns)
		duplicates.Reference = refDups
		duplicates.Comparator = compDups

		rows = compareByKey(refMap, compMap, opts)

	case MatchModePosition:
		rows = compareByPosition(ref, comp, opts)

	default:
		return nil, newInputError("unknown match mode: " + string(mode))
	}

	// Stable sort: differing rows surface first, matches sink last.
	sort.SliceStable(rows, func(i, j int) bool {
		return statusRank(rows[i].Status) < statusRank(rows[j].Status)
	})

	summary := Summary{Total: len(rows)}
	for _, row := range rows {
		switch row.Status {
		case StatusMatch:
			summary.Matches++
		case StatusDiffer:
			summary.Differs++
		case StatusOnlyInReference:
			summary.OnlyInReference++
		case StatusOnlyInComparator:
			summary.OnlyInComparator++
		}
	}

	return &Result{
		Rows:          rows,
		Summary:       summary,
		DuplicateKeys: duplicates,
	}, nil
}

func compareByKey(refMap, compMap KeyMap, opts Options) []RowResult {
	keys := make([]string, 0, len(refMap)+len(compMap))
	for key := range refMap {
		keys = append(keys, key)
	}
	for key := range compMap {
		if _, seen := refMap[key]; !seen {
			keys = append(keys, key)
		}
	}
	// Deterministic output regardless of map iteration order.
	sort.Strings(keys)

	rows := make([]RowResult, 0, len(keys))
	for _, key := range keys {
		refEntry, inRef := refMap[key]
		compEntry, inComp := compMap[key]

		switch {
		case inRef && inComp:
			row := CompareRow(refEntry.Row, compEntry.Row, opts.Fields, opts)
			row.Key = key
			rows = append(rows, row)
		case inRef:
			rows = append(rows, RowResult{
				Key:       key,
				Status:    StatusOnlyInReference,
				Reference: refEntry.Row,
			})
		default:
			rows = append(rows, RowResult{
				Key:        key,
				Status:     StatusOnlyInComparator,
				Comparator: compEntry.Row,
			})
		}
	}
	return rows
}

func compareByPosition(ref, comp []Row, opts Options) []RowResult {
	n := len(ref)
	if len(comp) > n {
		n = len(comp)
	}

	rows := make([]RowResult, 0, n)
	for i := 0; i < n; i++ {
		key := strconv.Itoa(i)
		switch {
		case i < len(ref) && i < len(comp):
			row := CompareRow(ref[i], comp[i], opts.Fields, opts)
			row.Key = key
			rows = append(rows, row)
		case i < len(ref):
			rows = append(rows, RowResult{
				Key:       key,
				Status:    StatusOnlyInReference,
				Reference: ref[i],
			})
		default:
			rows = append(rows, RowResult{
				Key:        key,
				Status:     StatusOnlyInComparator,
				Comparator: comp[i],
			})
		}
	}
	return rows
}

// fieldsToCompare falls back to the reference row's own fields (sorted
// for determinism) when no explicit field list was supplied.
func fieldsToCompare(ref Row, fields []string) []string {
	if len(fields) > 0 {
		return fields
	}
	all := make([]string, 0, len(ref))
	for field := range ref {
		all = append(all, field)
	}
	sort.Strings(all)
	return all
}

func statusRank(s Status) int {
	switch s {
	case StatusDiffer:
		return 0
	case StatusOnlyInReference, StatusOnlyInComparator:
		return 1
	default:
		return 2
	}
}
