package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/floorplan/internal/importer"
	"github.com/piwi3910/floorplan/internal/model"
	"github.com/piwi3910/floorplan/internal/project"
)

// importOpts holds the command-line flags for the import command.
type importOpts struct {
	output string // plan file to create
	merge  string // existing plan file to merge rooms into
	floor  string // floor outline for a new plan, as WIDTHxHEIGHT
}

func newImportCmd() *cobra.Command {
	opts := &importOpts{}

	cmd := &cobra.Command{
		Use:   "import <rooms-file>",
		Short: "Import rooms from a CSV or Excel file into a plan",
		Long:  "Import reads a room list from a .csv or .xlsx file and writes a plan file. With --merge, rooms are appended to an existing plan instead.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "plan file to write (default: <rooms-file>.json)")
	cmd.Flags().StringVar(&opts.merge, "merge", "", "merge imported rooms into this existing plan file")
	cmd.Flags().StringVar(&opts.floor, "floor", "", "floor outline for a new plan, as WIDTHxHEIGHT (e.g. 20x15)")

	return cmd
}

func runImport(cmd *cobra.Command, path string, opts *importOpts) error {
	logger := loggerFromContext(cmd.Context())

	var result importer.ImportResult
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		result = importer.ImportCSV(path)
	case ".xlsx":
		result = importer.ImportExcel(path)
	default:
		return fmt.Errorf("unsupported import format %q (use .csv or .xlsx)", filepath.Ext(path))
	}

	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			logger.Error(e)
		}
		return fmt.Errorf("import failed with %d error(s)", len(result.Errors))
	}
	if len(result.Rooms) == 0 {
		return fmt.Errorf("no rooms found in %s", path)
	}

	if opts.floor != "" && opts.merge != "" {
		return fmt.Errorf("--floor cannot be combined with --merge")
	}

	var plan model.Plan
	if opts.merge != "" {
		existing, err := project.LoadPlan(opts.merge)
		if err != nil {
			return err
		}
		plan = existing
		plan.Rooms = append(plan.Rooms, result.Rooms...)
	} else {
		plan = model.NewPlan()
		plan.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		plan.Rooms = result.Rooms
		if cfg, cfgErr := project.LoadAppConfig(project.DefaultConfigPath()); cfgErr == nil {
			cfg.ApplyToSettings(&plan.Settings)
		}
		if opts.floor != "" {
			w, h, err := parseFloorSize(opts.floor)
			if err != nil {
				return err
			}
			plan.Regions = []model.Region{model.NewRegion("Floor", 0, 0, w, h)}
		}
	}
	plan.Adjacencies = append(plan.Adjacencies, result.Adjacencies...)

	output := opts.output
	if output == "" {
		if opts.merge != "" {
			output = opts.merge
		} else {
			output = strings.TrimSuffix(path, filepath.Ext(path)) + ".json"
		}
	}

	if err := project.SavePlan(output, plan); err != nil {
		return err
	}

	logger.Info("imported rooms",
		"rooms", len(result.Rooms),
		"adjacencies", len(result.Adjacencies),
		"plan", output)
	recordRecentPlan(logger, output)
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d room(s) into %s\n", len(result.Rooms), output)
	return nil
}

// parseFloorSize parses a WIDTHxHEIGHT flag value such as "20x15".
func parseFloorSize(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid floor size %q (expected WIDTHxHEIGHT)", s)
	}
	w, err := strconv.Atoi(strings.TrimSpace(ws))
	if err != nil || w <= 0 {
		return 0, 0, fmt.Errorf("invalid floor width in %q", s)
	}
	h, err := strconv.Atoi(strings.TrimSpace(hs))
	if err != nil || h <= 0 {
		return 0, 0, fmt.Errorf("invalid floor height in %q", s)
	}
	return w, h, nil
}
