package cmd

import (
	"fmt"
	"io"
	"net/netip"

	"github.com/spf13/cobra"

	"github.com/mkrawiec/netplanner/internal/domain"
	"github.com/mkrawiec/netplanner/internal/sheet"
)

var allocateCmd = &cobra.Command{
	Use:   "allocate <sheet.csv>",
	Short: "Reserve a subnet for a batch and print the address assignments",
	Args:  cobra.ExactArgs(1),
	RunE:  runAllocate,
}

var (
	allocateLabel  string
	allocateOutput string
)

func init() {
	allocateCmd.Flags().StringVarP(&allocateLabel, "label", "l", "", "Label recorded on the reservation")
	allocateCmd.Flags().StringVarP(&allocateOutput, "output", "o", "", "Write assignments to a file instead of stdout")
	rootCmd.AddCommand(allocateCmd)
}

func runAllocate(cmd *cobra.Command, args []string) error {
	rows, err := readSheet(args[0])
	if err != nil {
		return err
	}

	service, err := newService()
	if err != nil {
		return err
	}

	result, err := service.Allocate(cmd.Context(), domain.AllocateInput{
		Label: allocateLabel,
		Rows:  rows,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "reserved %s (%s - %s)\n",
		netip.PrefixFrom(result.Reservation.Network, result.Reservation.Mask),
		result.Reservation.FirstUsable,
		result.Reservation.LastUsable,
	)

	return writeOutput(cmd, allocateOutput, func(w io.Writer) error {
		return sheet.WriteAssignments(w, result.Rows)
	})
}
