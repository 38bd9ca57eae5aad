package cmd

import (
	"fmt"
	"net/netip"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var reservationsCmd = &cobra.Command{
	Use:   "reservations",
	Short: "List reserved blocks from the registry",
	Args:  cobra.NoArgs,
	RunE:  runReservations,
}

func init() {
	rootCmd.AddCommand(reservationsCmd)
}

func runReservations(cmd *cobra.Command, args []string) error {
	service, err := newService()
	if err != nil {
		return err
	}

	reservations, err := service.ListReservations(cmd.Context())
	if err != nil {
		return err
	}

	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "CIDR\tRANGE\tASSIGNED TO\tCREATED")

	for _, r := range reservations {
		assignedTo := r.AssignedTo
		if assignedTo == "" {
			assignedTo = "-"
		}
		fmt.Fprintf(writer, "%s\t%s - %s\t%s\t%s\n",
			netip.PrefixFrom(r.Network, r.Mask),
			r.FirstUsable,
			r.LastUsable,
			assignedTo,
			r.CreatedAt.Format(time.RFC3339),
		)
	}

	return writer.Flush()
}
