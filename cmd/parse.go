package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/hanzidrill/internal/dataset"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse <dataset>",
	Short: "Parse a dataset and print what was recognised",
	Long: `Parse a catalog dataset (by name) or a file path without starting the
TUI, and print the parse report followed by the records or items.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		limit, _ := cmd.Flags().GetInt("limit")

		e, err := setupEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		entry, err := findEntry(e.catalog, args[0])
		if err != nil {
			return err
		}
		ds, err := dataset.Load(cmd.Context(), e.fetcher, entry)
		if err != nil {
			return err
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(ds)
		}
		printDataset(ds, limit)
		return nil
	},
}

func init() {
	parseCmd.Flags().Bool("json", false, "Print the whole dataset as JSON")
	parseCmd.Flags().IntP("limit", "n", 20, "Number of rows to print (0 = all)")
}

func printDataset(ds dataset.Dataset, limit int) {
	r := ds.Report
	fmt.Printf("Kind:     %s\n", ds.Kind)
	fmt.Printf("Input:    %d rows\n", r.Input)
	fmt.Printf("Parsed:   %d\n", r.Parsed)
	fmt.Printf("Dropped:  %d\n", r.Dropped)
	fmt.Println()

	if len(ds.Items) > 0 {
		fmt.Printf("%-4s  %-30s  %-30s  %s\n", "#", "Term", "Pronunciation", "Translation")
		fmt.Println(strings.Repeat("─", 96))
		for i, it := range ds.Items {
			if limit > 0 && i >= limit {
				fmt.Printf("... %d more\n", len(ds.Items)-limit)
				break
			}
			fmt.Printf("%-4d  %-30s  %-30s  %s\n", i+1, it.Term, it.Pronunciation, it.Translation)
		}
		return
	}

	fmt.Printf("%-4s  %-12s  %-20s  %s\n", "#", "Term", "Pinyin", "Meaning")
	fmt.Println(strings.Repeat("─", 80))
	for i, rec := range ds.Records {
		if limit > 0 && i >= limit {
			fmt.Printf("... %d more\n", len(ds.Records)-limit)
			break
		}
		fmt.Printf("%-4d  %-12s  %-20s  %s\n", i+1, rec.Term, rec.Pronunciation, rec.Meaning)
	}
}
