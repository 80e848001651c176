package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"config-compare/core/compare"
	"config-compare/core/normalize"

	"github.com/spf13/cobra"
)

var compareFlags struct {
	keyColumns       []string
	fields           []string
	matchMode        string
	threshold        float64
	normalizeDates   bool
	normalizeNumbers bool
	jsonOutput       bool
}

// compareCmd runs a comparison locally, without the server.
var compareCmd = &cobra.Command{
	Use:   "compare REFERENCE.json COMPARATOR.json",
	Short: "Compare two datasets from JSON row files",
	Long: `Compares two JSON files each containing an array of row objects
(field name to primitive value) and prints the comparison summary and
differing rows. Use --json for the full machine-readable result.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, err := readRows(args[0])
		if err != nil {
			return err
		}
		comp, err := readRows(args[1])
		if err != nil {
			return err
		}

		opts := compare.Options{
			KeyColumns:       compareFlags.keyColumns,
			Fields:           compareFlags.fields,
			MatchMode:        compare.MatchMode(compareFlags.matchMode),
			NormalizeDates:   compareFlags.normalizeDates,
			NormalizeNumbers: compareFlags.normalizeNumbers,
		}
		if cmd.Flags().Changed("threshold") {
			opts.Threshold = &compareFlags.threshold
		}

		result, err := compare.Datasets(ref, comp, opts)
		if err != nil {
			return err
		}

		if compareFlags.jsonOutput {
			encoded, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), renderSummary(result))
		if rows := renderDifferingRows(result); rows != "" {
			fmt.Fprintln(cmd.OutOrStdout(), rows)
		}
		if dups := renderDuplicates(result); dups != "" {
			fmt.Fprintln(cmd.OutOrStdout(), dups)
		}
		return nil
	},
}

// readRows loads an array of row records from a JSON file.
func readRows(path string) ([]compare.Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var rows []compare.Row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return rows, nil
}

func renderSummary(result *compare.Result) string {
	s := result.Summary
	return renderTable(
		[]string{"Status", "Rows"},
		[][]string{
			{"Differ", strconv.Itoa(s.Differs)},
			{"Only in reference", strconv.Itoa(s.OnlyInReference)},
			{"Only in comparator", strconv.Itoa(s.OnlyInComparator)},
			{"Match", strconv.Itoa(s.Matches)},
			{"Total", strconv.Itoa(s.Total)},
		},
		1,
	)
}

func renderDifferingRows(result *compare.Result) string {
	var rows [][]string
	for _, row := range result.Rows {
		switch row.Status {
		case compare.StatusDiffer:
			fields := make([]string, 0, len(row.Differences))
			for field := range row.Differences {
				fields = append(fields, field)
			}
			sort.Strings(fields)
			for _, field := range fields {
				rows = append(rows, []string{
					row.Key,
					field,
					normalize.Stringify(row.Reference[field]),
					normalize.Stringify(row.Comparator[field]),
				})
			}
		case compare.StatusOnlyInReference, compare.StatusOnlyInComparator:
			rows = append(rows, []string{row.Key, "", string(row.Status), ""})
		}
	}
	if len(rows) == 0 {
		return ""
	}
	return renderTable([]string{"Key", "Field", "Reference", "Comparator"}, rows)
}

func renderDuplicates(result *compare.Result) string {
	var rows [][]string
	for _, d := range result.DuplicateKeys.Reference {
		rows = append(rows, []string{"reference", d.Key, strconv.Itoa(d.Count)})
	}
	for _, d := range result.DuplicateKeys.Comparator {
		rows = append(rows, []string{"comparator", d.Key, strconv.Itoa(d.Count)})
	}
	if len(rows) == 0 {
		return ""
	}
	return renderTable([]string{"Side", "Duplicated Key", "Count"}, rows, 2)
}

func init() {
	compareCmd.Flags().StringSliceVar(&compareFlags.keyColumns, "key-columns", nil, "columns forming the composite row key")
	compareCmd.Flags().StringSliceVar(&compareFlags.fields, "fields", nil, "fields to compare (default: all reference fields)")
	compareCmd.Flags().StringVar(&compareFlags.matchMode, "match-mode", "key", "row pairing mode: key or position")
	compareCmd.Flags().Float64Var(&compareFlags.threshold, "threshold", 0.5, "adaptive diff threshold; 0 turns every change into a whole-cell diff")
	compareCmd.Flags().BoolVar(&compareFlags.normalizeDates, "normalize-dates", false, "treat equivalent date formats as equal")
	compareCmd.Flags().BoolVar(&compareFlags.normalizeNumbers, "normalize-numbers", false, "treat equivalent number formats as equal")
	compareCmd.Flags().BoolVar(&compareFlags.jsonOutput, "json", false, "print the full result as JSON")

	RootCmd.AddCommand(compareCmd)
}
