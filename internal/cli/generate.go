package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/floorplan/internal/engine"
	"github.com/piwi3910/floorplan/internal/export"
	"github.com/piwi3910/floorplan/internal/model"
	"github.com/piwi3910/floorplan/internal/project"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	attempts    int    // override max placement attempts
	seed        int64  // override random seed
	workers     int    // override parallel worker count
	noExpansion bool   // disable the expansion phase
	pdfPath     string // write a PDF report
	dxfPath     string // write a DXF drawing
	savePath    string // write the plan with its result back to disk
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOpts{attempts: -1, seed: -1, workers: -1}

	cmd := &cobra.Command{
		Use:   "generate <plan-file>",
		Short: "Generate a room layout for a plan file",
		Long:  "Generate reads a plan file (.json or .toml), searches for the best room placement, and prints the resulting layout and its statistics.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args[0], opts)
		},
	}

	cmd.Flags().IntVar(&opts.attempts, "attempts", -1, "maximum placement attempts (overrides plan settings)")
	cmd.Flags().Int64Var(&opts.seed, "seed", -1, "random seed (overrides plan settings)")
	cmd.Flags().IntVar(&opts.workers, "workers", -1, "parallel search workers (overrides plan settings)")
	cmd.Flags().BoolVar(&opts.noExpansion, "no-expansion", false, "skip the room expansion phase")
	cmd.Flags().StringVar(&opts.pdfPath, "pdf", "", "write a PDF report to the given path")
	cmd.Flags().StringVar(&opts.dxfPath, "dxf", "", "write a DXF drawing to the given path")
	cmd.Flags().StringVar(&opts.savePath, "save", "", "write the plan with its result to the given path")

	return cmd
}

func runGenerate(cmd *cobra.Command, path string, opts *generateOpts) error {
	logger := loggerFromContext(cmd.Context())

	plan, err := project.LoadPlan(path)
	if err != nil {
		return err
	}

	if opts.attempts >= 0 {
		plan.Settings.MaxAttempts = opts.attempts
	}
	if opts.seed >= 0 {
		plan.Settings.Seed = opts.seed
	}
	if opts.workers >= 0 {
		plan.Settings.Workers = opts.workers
	}
	if opts.noExpansion {
		plan.Settings.EnableExpansion = false
	}

	logger.Debug("starting search",
		"rooms", len(plan.Rooms),
		"attempts", plan.Settings.MaxAttempts,
		"seed", plan.Settings.Seed,
		"workers", plan.Settings.Workers)

	result, err := engine.Generate(cmd.Context(), plan)
	if err != nil {
		return err
	}
	plan.Result = &result

	printStatistics(cmd, plan, result)

	if opts.pdfPath != "" {
		if err := export.ExportPDF(opts.pdfPath, plan); err != nil {
			return err
		}
		logger.Info("wrote PDF report", "path", opts.pdfPath)
	}
	if opts.dxfPath != "" {
		if err := export.ExportDXF(opts.dxfPath, plan); err != nil {
			return err
		}
		logger.Info("wrote DXF drawing", "path", opts.dxfPath)
	}
	if opts.savePath != "" {
		if err := project.SavePlan(opts.savePath, plan); err != nil {
			return err
		}
		logger.Info("saved plan", "path", opts.savePath)
		recordRecentPlan(logger, opts.savePath)
	}
	recordRecentPlan(logger, path)

	return nil
}

// printStatistics writes the layout summary to the command's stdout.
func printStatistics(cmd *cobra.Command, plan model.Plan, result model.Result) {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Layout statistics:")
	fmt.Fprintf(out, "  Floor area:        %.0f\n", result.FloorArea)
	fmt.Fprintf(out, "  Room area:         %.0f\n", result.RoomArea)
	fmt.Fprintf(out, "  Space utilization: %.1f%%\n", result.SpaceUtilization*100)
	fmt.Fprintf(out, "  Adjacencies:       %d of %d satisfied\n", result.AdjacencyScore, result.TotalAdjacencies)
	fmt.Fprintf(out, "  Attempts:          %d (seed %d)\n", result.Attempts, result.Seed)

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Placed rooms:")

	baseDims := make(map[string]model.Room, len(plan.Rooms))
	for _, r := range plan.Rooms {
		baseDims[r.Name] = r
	}
	for _, room := range result.PlacedRooms {
		base := baseDims[room.Name]
		used := (room.Width - base.Width) + (room.Height - base.Height)
		fmt.Fprintf(out, "  %-20s at (%d, %d)  %dx%d  expansion %d/%d\n",
			room.Name, room.X, room.Y, room.Width, room.Height, used, base.MaxExpansion)
	}
}
