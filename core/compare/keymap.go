package compare

import (
	"strconv"
	"strings"

	"config-compare/core/normalize"
)

// keyDelimiter joins composite key parts. The control characters wrapping
// the token guarantee the delimiter never occurs inside ordinary cell
// data, so multi-column keys cannot collide by concatenation.
const keyDelimiter = "\x1f::\x1f"

// dupSuffix separates a duplicated key from its 1-based occurrence
// ordinal. The control character keeps a natural cell value that merely
// looks suffixed, such as "A#1", from colliding with the suffixed forms
// of a duplicated "A".
const dupSuffix = "\x1f#"

// BuildCompositeKey builds the row's composite key from the key columns.
// A single key column yields the bare stringified value; multiple columns
// are joined with the reserved delimiter. Nil values stringify to "".
func BuildCompositeKey(row Row, keyColumns []string) string {
	if len(keyColumns) == 1 {
		return normalize.Stringify(row[keyColumns[0]])
	}

	parts := make([]string, len(keyColumns))
	for i, col := range keyColumns {
		parts[i] = normalize.Stringify(row[col])
	}
	return strings.Join(parts, keyDelimiter)
}

// BuildKeyMap indexes rows by composite key and reports duplicates.
//
// When a key occurs N>1 times, all N occurrences are stored under
// ordinal-suffixed keys in first-seen order and the bare key is
// removed, so a duplicated key on one side never silently pairs with a
// unique key on the other. The total entry count always equals the
// input row count.
func BuildKeyMap(rows []Row, keyColumns []string) (KeyMap, []DuplicateKey) {
	keyMap := make(KeyMap, len(rows))
	counts := make(map[string]int)
	var duplicated []string

	for i, row := range rows {
		key := BuildCompositeKey(row, keyColumns)
		counts[key]++

		switch n := counts[key]; n {
		case 1:
			keyMap[key] = KeyEntry{Row: row, Index: i}
		case 2:
			// Second occurrence: retroactively suffix the first.
			first := keyMap[key]
			delete(keyMap, key)
			keyMap[key+dupSuffix+"1"] = first
			keyMap[key+dupSuffix+"2"] = KeyEntry{Row: row, Index: i}
			duplicated = append(duplicated, key)
		default:
			keyMap[key+dupSuffix+strconv.Itoa(n)] = KeyEntry{Row: row, Index: i}
		}
	}

	duplicates := make([]DuplicateKey, 0, len(duplicated))
	for _, key := range duplicated {
		duplicates = append(duplicates, DuplicateKey{Key: key, Count: counts[key]})
	}
	return keyMap, duplicates
}
