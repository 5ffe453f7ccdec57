package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sanosuguru/go-club-seat-reservation/internal/application"
	"github.com/sanosuguru/go-club-seat-reservation/internal/config"
)

func newSeatsCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seats",
		Short: "Seat administration",
	}

	var (
		count        int
		hardwareSpec string
	)
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create default seats when the store has none",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("count") {
				count = cfg.Booking.DefaultSeatCount
			}
			if !cmd.Flags().Changed("hardware-spec") {
				hardwareSpec = cfg.Booking.DefaultHardwareSpec
			}

			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			svc := application.NewSeatService(st.txm, st.seats, nil, nil)
			created, err := svc.InitializeDefaultSeats(cmd.Context(), count, hardwareSpec)
			if err != nil {
				return err
			}
			if created == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "seats already exist; nothing to do")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %d seats\n", created)
			return nil
		},
	}
	initCmd.Flags().IntVar(&count, "count", 60, "number of seats to create")
	initCmd.Flags().StringVar(&hardwareSpec, "hardware-spec", "", "hardware spec of the created seats")

	cmd.AddCommand(initCmd)
	return cmd
}
