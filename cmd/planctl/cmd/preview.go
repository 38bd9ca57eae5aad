package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview <sheet.csv>",
	Short: "Show allocation order and addressing mode without reserving",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	rows, err := readSheet(args[0])
	if err != nil {
		return err
	}

	service, err := newService()
	if err != nil {
		return err
	}

	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "OBJECT\tDEVICE\tQTY\tCLASS\tADDRESSING")

	for _, row := range service.Preview(rows) {
		mode := "-"
		switch {
		case row.Included:
			mode = "static"
		case row.Object != "":
			mode = "dynamic"
		}

		object := row.Object
		if object == "" {
			object = "-"
		}
		fmt.Fprintf(writer, "%s\t%s\t%d\t%s\t%s\n", object, row.Device, row.Quantity, row.Class, mode)
	}

	return writer.Flush()
}
