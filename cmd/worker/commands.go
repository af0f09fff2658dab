package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/domain"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/execution"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/graph/export"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/ingest/mapper"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/ingest/parser"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/ingest/validator"
	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/batch_genealogy/trace"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTraceCmd() *cobra.Command {
	var direction string
	cmd := &cobra.Command{
		Use:   "trace <dataset> <entity-id>",
		Short: "Print the highlight set of an entity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, ok := domain.ParseTraceDirection(direction)
			if !ok {
				return fmt.Errorf("unknown direction %q", direction)
			}
			_, g, _, err := loadGraph(args[0])
			if err != nil {
				return err
			}
			h, err := trace.Trace(g, args[1], dir)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), h)
		},
	}
	cmd.Flags().StringVarP(&direction, "direction", "d", string(domain.TraceBoth), "backward|forward|both|none")
	return cmd
}

func newBOMCmd() *cobra.Command {
	var asCSV bool
	cmd := &cobra.Command{
		Use:   "bom <dataset> <entity-id>",
		Short: "Print the bill of materials of an entity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, g, _, err := loadGraph(args[0])
			if err != nil {
				return err
			}
			bom, err := trace.BillOfMaterials(g, args[1])
			if err != nil {
				return err
			}
			if asCSV {
				return export.WriteBOMCSV(cmd.OutOrStdout(), bom)
			}
			return printJSON(cmd.OutOrStdout(), bom)
		},
	}
	cmd.Flags().BoolVar(&asCSV, "csv", false, "write a CSV table instead of JSON")
	return cmd
}

func newExportCmd() *cobra.Command {
	var format, out, target, direction, dotBin string
	cmd := &cobra.Command{
		Use:   "export <dataset>",
		Short: "Export the genealogy graph as dot, json, yaml, svg or png",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, g, _, err := loadGraph(args[0])
			if err != nil {
				return err
			}
			var hl *trace.Highlight
			if target != "" {
				dir, ok := domain.ParseTraceDirection(direction)
				if !ok {
					return fmt.Errorf("unknown direction %q", direction)
				}
				if hl, err = trace.Trace(g, target, dir); err != nil {
					return err
				}
			}
			title := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))

			var data []byte
			switch strings.ToLower(format) {
			case "dot":
				data = []byte(export.ToDOT(g, title, hl))
			case "json":
				if data, err = json.MarshalIndent(export.ToVisGraph(g), "", "  "); err != nil {
					return err
				}
			case "yaml":
				if data, err = yaml.Marshal(export.ToVisGraph(g)); err != nil {
					return err
				}
			case "svg", "png":
				if data, err = export.Render(withContext(cmd), export.ToDOT(g, title, hl), format, dotBin); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format %q", format)
			}

			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return os.WriteFile(out, data, 0o644)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "dot", "dot|json|yaml|svg|png")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (stdout when empty)")
	cmd.Flags().StringVar(&target, "target", "", "highlight the trace of this entity")
	cmd.Flags().StringVarP(&direction, "direction", "d", string(domain.TraceBoth), "trace direction for --target")
	cmd.Flags().StringVar(&dotBin, "dot-bin", os.Getenv("DOT_BIN"), "graphviz dot binary")
	return cmd
}

type auditReport struct {
	Dataset string                         `json:"dataset"`
	Nodes   int                            `json:"nodes"`
	Edges   int                            `json:"edges"`
	Skipped []mapper.SkippedRelation       `json:"skipped"`
	Cycles  []*domain.CycleDetectedWarning `json:"cycles"`
}

func newAuditCmd() *cobra.Command {
	var failOnCycle bool
	cmd := &cobra.Command{
		Use:   "audit <dataset>...",
		Short: "Report dangling relations and cycles of datasets",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			found := 0
			for _, path := range args {
				ds, g, report, err := loadGraph(path)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				r := auditReport{
					Dataset: ds.Key,
					Nodes:   g.NodeCount(),
					Edges:   g.EdgeCount(),
					Skipped: report.Skipped,
					Cycles:  trace.Cycles(g),
				}
				if r.Dataset == "" {
					r.Dataset = path
				}
				if r.Skipped == nil {
					r.Skipped = []mapper.SkippedRelation{}
				}
				if r.Cycles == nil {
					r.Cycles = []*domain.CycleDetectedWarning{}
				}
				found += len(r.Cycles)
				if err := printJSON(cmd.OutOrStdout(), r); err != nil {
					return err
				}
			}
			if failOnCycle && found > 0 {
				return fmt.Errorf("%d cycle(s) found", found)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&failOnCycle, "fail-on-cycle", false, "exit non-zero when a cycle is found")
	return cmd
}

func newExecutionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "execution <record>",
		Short: "Print the summary and phase hierarchy of an execution record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := parser.ParseExecutionFile(args[0])
			if err != nil {
				return err
			}
			if err := validator.ValidateExecution(rec); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), struct {
				Summary *execution.Summary    `json:"summary"`
				Phases  []execution.PhaseView `json:"phases"`
			}{execution.Summarize(rec), execution.Hierarchy(rec)})
		},
	}
}

func withContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
