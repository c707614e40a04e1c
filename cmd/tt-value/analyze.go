package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yourusername/tt-value/internal/datasource"
	"github.com/yourusername/tt-value/internal/models"
	"github.com/yourusername/tt-value/internal/service"
)

var (
	listingsFile string
	valueOnly    bool
	outputFormat string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run one analysis pass and print the annotated listings",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if listingsFile != "" {
			cfg.Market.Source = string(datasource.StaticSourceType)
			cfg.Market.StaticFile = listingsFile
		}

		c, err := buildComponents(ctx, true)
		if err != nil {
			return err
		}
		defer c.Close()

		results, err := c.refresh.Refresh(ctx)
		if err != nil {
			return err
		}
		if valueOnly {
			results = service.ValueBets(results)
		}

		out := cmd.OutOrStdout()
		if outputFormat == "json" {
			return writeIndentedJSON(out, results)
		}
		printListings(out, results)
		summary := service.Summarize(results)
		fmt.Fprintf(out, "\n%d listings, %d resolved, %d unresolved, %d value\n",
			summary.Total, summary.Resolved, summary.Unresolved, summary.Value)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVarP(&listingsFile, "listings", "l", "", "Read listings from a JSON file instead of the configured market")
	analyzeCmd.Flags().BoolVar(&valueOnly, "value-only", false, "Only print listings flagged as value")
	analyzeCmd.Flags().StringVarP(&outputFormat, "output", "o", "table", "Output format: table or json")
}

func printListings(out io.Writer, results []models.AnnotatedListing) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tMATCH\tH\tV\tMODEL\tVALUE\tREASON")
	for i := range results {
		r := &results[i]
		model := "-"
		if r.Estimate != nil {
			model = fmt.Sprintf("%d/%d", r.Estimate.ProbA, r.Estimate.ProbB)
		}
		value := ""
		if r.Analysis.IsValue {
			value = fmt.Sprintf("yes (%d)", r.Analysis.Score)
		} else if !r.Resolved() {
			value = "unresolved"
		}
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%s\t%s\t%s\n",
			r.Time, r.Title(), r.Odds.Price("H"), r.Odds.Price("V"), model, value,
			strings.Join(r.Analysis.Reasons, "; "))
	}
	w.Flush()
}

func writeIndentedJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
