package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"bcbdcheck/engine"
	"bcbdcheck/rules"
	"bcbdcheck/services"
)

var errValidationFailed = errors.New("validation failed")

var (
	passColor = color.New(color.FgGreen)
	failColor = color.New(color.FgRed)
	warnColor = color.New(color.FgYellow)
	dimColor  = color.New(color.Faint)
)

func newValidateCmd(rulesDir *string) *cobra.Command {
	var (
		brand   string
		pdfOut  string
		xlsxOut string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:          "validate [files...]",
		Short:        "Validate BCBD spreadsheets against a brand catalog",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry(*rulesDir)
			if err != nil {
				return err
			}
			catalog, err := reg.Get(brand)
			if err != nil {
				return err
			}

			uploads := make([]engine.Upload, 0, len(args))
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("read %s: %w", path, err)
				}
				uploads = append(uploads, engine.Upload{Name: filepath.Base(path), Data: data})
			}

			batch, err := engine.Run(cmd.Context(), engine.New(catalog), uploads)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				err = enc.Encode(struct {
					*engine.Batch
					Summary engine.BatchSummary `json:"summary"`
				}{batch, batch.Summary()})
				if err != nil {
					return err
				}
			} else {
				printBatch(out, catalog.Layout, batch)
			}

			model := services.ProjectBatch(catalog.Layout, batch)
			exports := []struct{ format, path string }{{"pdf", pdfOut}, {"excel", xlsxOut}}
			for _, ex := range exports {
				if ex.path == "" {
					continue
				}
				if err := writeExport(ex.format, ex.path, model); err != nil {
					return err
				}
				if !asJSON {
					fmt.Fprintf(out, "wrote %s\n", ex.path)
				}
			}

			if !batch.Passed() {
				return errValidationFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&brand, "brand", "b", "", "brand catalog id (see the brands command)")
	cmd.Flags().StringVar(&pdfOut, "pdf", "", "write the report as PDF to this path")
	cmd.Flags().StringVar(&xlsxOut, "xlsx", "", "write the report as an Excel workbook to this path")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the batch as JSON instead of a summary")
	cmd.MarkFlagRequired("brand")

	return cmd
}

func newBrandsCmd(rulesDir *string) *cobra.Command {
	return &cobra.Command{
		Use:          "brands",
		Short:        "List the available brand catalogs",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry(*rulesDir)
			if err != nil {
				return err
			}
			for _, b := range reg.Brands() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-14s %-20s %s\n", b.Brand, b.Name, humanize.Comma(int64(b.Rules))+" rules")
			}
			return nil
		},
	}
}

// printBatch writes one summary line per file, followed by the checks that
// did not pass, and a closing total.
func printBatch(w io.Writer, layout rules.Layout, batch *engine.Batch) {
	model := services.ProjectBatch(layout, batch)

	for i, f := range model.Files {
		heading := services.FileHeading(f)
		switch {
		case f.Error != "":
			failColor.Fprintf(w, "✗ %s\n", heading)
			dimColor.Fprintf(w, "    %s\n", f.SummaryLine)
			continue
		case f.Passed():
			passColor.Fprintf(w, "✓ %s\n", heading)
		default:
			failColor.Fprintf(w, "✗ %s\n", heading)
		}
		fmt.Fprintf(w, "    %s\n", f.SummaryLine)

		for _, c := range batch.Files[i].Checks {
			if c.Valid {
				continue
			}
			line := fmt.Sprintf("    - %s: %s (expected %s)\n", c.Name, c.Actual, c.Expected)
			if statusOf(model, f, c.Name) == services.StatusWarning {
				warnColor.Fprint(w, line)
			} else {
				failColor.Fprint(w, line)
			}
		}
	}

	sum := batch.Summary()
	total := fmt.Sprintf("%s checked, %d of %d found checks valid",
		humanize.Comma(int64(sum.Files))+plural(sum.Files, " file", " files"), sum.Valid, sum.Found)
	if sum.Errored > 0 {
		total += fmt.Sprintf(", %d unreadable", sum.Errored)
	}
	if batch.Passed() {
		passColor.Fprintln(w, total)
	} else {
		failColor.Fprintln(w, total)
	}
}

// statusOf returns the projected status of the check row named name.
func statusOf(model services.BrandReportModel, f services.FileReport, name string) services.Status {
	col := -1
	for i, field := range model.Fields {
		if field == rules.FieldCheck {
			col = i
		}
	}
	if col < 0 {
		return services.StatusInvalid
	}
	for _, r := range f.Rows {
		if r.Level == services.LevelCheck && r.Cells[col] == name {
			return r.Status
		}
	}
	return services.StatusInvalid
}

func writeExport(format, path string, model services.BrandReportModel) error {
	ex, err := services.DefaultExporters().Lookup(format)
	if err != nil {
		return err
	}
	data, err := ex.Render(model)
	if err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
