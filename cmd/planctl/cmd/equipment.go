package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/mkrawiec/netplanner/internal/domain"
	"github.com/mkrawiec/netplanner/internal/sheet"
)

var equipmentCmd = &cobra.Command{
	Use:   "equipment <sheet.csv>",
	Short: "Derive the equipment bill for a device batch",
	Args:  cobra.ExactArgs(1),
	RunE:  runEquipment,
}

var (
	equipmentLPR      bool
	equipmentRedLight bool
	equipmentOutput   string
)

func init() {
	equipmentCmd.Flags().BoolVar(&equipmentLPR, "lpr", false, "Batch includes plate recognition")
	equipmentCmd.Flags().BoolVar(&equipmentRedLight, "red-light", false, "Batch includes red light enforcement")
	equipmentCmd.Flags().StringVarP(&equipmentOutput, "output", "o", "", "Write the bill to a file instead of stdout")
	rootCmd.AddCommand(equipmentCmd)
}

func runEquipment(cmd *cobra.Command, args []string) error {
	rows, err := readSheet(args[0])
	if err != nil {
		return err
	}

	service, err := newService()
	if err != nil {
		return err
	}

	items := service.DeriveEquipment(rows, domain.EquipmentConfig{
		LPREnabled:      equipmentLPR,
		RedLightEnabled: equipmentRedLight,
	})

	return writeOutput(cmd, equipmentOutput, func(w io.Writer) error {
		return sheet.WriteEquipment(w, items)
	})
}
