package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/floorplan/internal/model"
	"github.com/piwi3910/floorplan/internal/project"
)

// recordRecentPlan notes a plan path in the application config so later
// sessions can find it. Config trouble never fails the command that
// touched the plan.
func recordRecentPlan(logger *log.Logger, path string) {
	cfgPath := project.DefaultConfigPath()
	cfg, err := project.LoadAppConfig(cfgPath)
	if err != nil {
		logger.Warn("could not read app config", "path", cfgPath, "err", err)
		return
	}
	if abs, absErr := filepath.Abs(path); absErr == nil {
		path = abs
	}
	project.AddRecentPlan(&cfg, path)
	if err := project.SaveAppConfig(cfgPath, cfg); err != nil {
		logger.Warn("could not update app config", "path", cfgPath, "err", err)
	}
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage application configuration and backups",
		Long:  "Config exports the application configuration together with all recent plans to a single backup file, or restores such a backup.",
	}
	cmd.AddCommand(newConfigExportCmd())
	cmd.AddCommand(newConfigImportCmd())
	return cmd
}

func newConfigExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <backup-file>",
		Short: "Export the app config and all recent plans to a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigExport(cmd, args[0])
		},
	}
}

func newConfigImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <backup-file>",
		Short: "Restore the app config and plans from a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigImport(cmd, args[0])
		},
	}
}

func runConfigExport(cmd *cobra.Command, path string) error {
	logger := loggerFromContext(cmd.Context())

	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		return err
	}

	plans := make([]model.Plan, 0, len(cfg.RecentPlans))
	for _, planPath := range cfg.RecentPlans {
		plan, loadErr := project.LoadPlan(planPath)
		if loadErr != nil {
			logger.Warn("skipping unreadable plan", "path", planPath, "err", loadErr)
			continue
		}
		plans = append(plans, plan)
	}

	if err := project.ExportAllData(path, cfg, plans); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported config and %d plan(s) to %s\n", len(plans), path)
	return nil
}

func runConfigImport(cmd *cobra.Command, path string) error {
	logger := loggerFromContext(cmd.Context())

	backup, err := project.ImportAllData(path)
	if err != nil {
		return err
	}

	cfg := backup.Config
	planDir := filepath.Join(project.DefaultConfigDir(), "plans")
	for _, plan := range backup.Plans {
		planPath := filepath.Join(planDir, planFileName(plan.Name))
		if err := project.SavePlan(planPath, plan); err != nil {
			return err
		}
		project.AddRecentPlan(&cfg, planPath)
		logger.Info("restored plan", "name", plan.Name, "path", planPath)
	}

	if err := project.SaveAppConfig(project.DefaultConfigPath(), cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported config and %d plan(s) from %s\n", len(backup.Plans), path)
	return nil
}

// planFileName maps a plan name to a safe JSON file name.
func planFileName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('-')
		}
	}
	if b.Len() == 0 {
		b.WriteString("untitled")
	}
	return b.String() + ".json"
}
