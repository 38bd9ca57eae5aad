package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkrawiec/netplanner/internal/config"
	"github.com/mkrawiec/netplanner/internal/domain"
	"github.com/mkrawiec/netplanner/internal/sheet"
	"github.com/mkrawiec/netplanner/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "planctl",
	Short: "Subnet planner for roadside device batches",
	Long: `planctl reserves address blocks for device batches and derives
equipment bills from device sheets.

Sheets are CSV files with Polish or English headers. The reservation
registry is a local JSON file shared with the API server.`,
	SilenceUsage: true,
}

var (
	registryPath string
	settingsPath string
)

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&registryPath, "registry", "registry.json", "Path to the reservation registry")
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "", "Path to the planner settings file")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

func newService() (domain.PlannerService, error) {
	settings, err := config.LoadFile(settingsPath)
	if err != nil {
		return nil, err
	}
	return domain.NewPlannerService(store.NewFileStore(registryPath), settings.Planner()), nil
}

func readSheet(path string) ([]domain.DeviceRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sheet: %w", err)
	}
	defer f.Close()
	return sheet.ParseRows(f)
}

// writeOutput runs write against the file at path, or stdout when path is
// empty.
func writeOutput(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(cmd.OutOrStdout())
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
