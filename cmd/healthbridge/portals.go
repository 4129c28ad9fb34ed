package main

import (
	"github.com/spf13/cobra"

	"github.com/healthbridge/healthbridge/internal/domain/orders"
)

func labCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lab",
		Short: "Lab portal",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "orders",
		Short: "List incoming orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			list, err := orders.NewLabPortal(app.api).Orders(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(list)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "advance <order-id> <status>",
		Short: "Move an order to RECEIVED or COMPLETED",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			orderID, err := parseID(args[0], "order")
			if err != nil {
				return err
			}
			portal := orders.NewLabPortal(app.api)
			order, err := portal.Order(cmd.Context(), orderID)
			if err != nil {
				return err
			}
			updated, err := portal.UpdateStatus(cmd.Context(), order, orders.Status(args[1]))
			if err != nil {
				return err
			}
			return printJSON(updated)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "patient <order-id>",
		Short: "Show the order's patient demographics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			orderID, err := parseID(args[0], "order")
			if err != nil {
				return err
			}
			info, err := orders.NewLabPortal(app.api).PatientInfo(cmd.Context(), orderID)
			if err != nil {
				return err
			}
			return printJSON(info)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show order counts by status",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			stats, err := orders.NewLabPortal(app.api).Stats(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(stats)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "profile",
		Short: "Show my business profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			p, err := orders.NewLabPortal(app.api).Profile(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(p)
		},
	})

	return cmd
}

func pharmacyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pharmacy",
		Short: "Pharmacy portal",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "prescriptions",
		Short: "List incoming prescriptions",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			list, err := orders.NewPharmacyPortal(app.api).Prescriptions(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(list)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "advance <prescription-id> <status>",
		Short: "Move a prescription to RECEIVED or COMPLETED",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			rxID, err := parseID(args[0], "prescription")
			if err != nil {
				return err
			}
			portal := orders.NewPharmacyPortal(app.api)
			rx, err := portal.Prescription(cmd.Context(), rxID)
			if err != nil {
				return err
			}
			updated, err := portal.UpdateStatus(cmd.Context(), rx, orders.Status(args[1]))
			if err != nil {
				return err
			}
			return printJSON(updated)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "patient <prescription-id>",
		Short: "Show the prescription's patient demographics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			rxID, err := parseID(args[0], "prescription")
			if err != nil {
				return err
			}
			info, err := orders.NewPharmacyPortal(app.api).PatientInfo(cmd.Context(), rxID)
			if err != nil {
				return err
			}
			return printJSON(info)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show prescription counts by status",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			stats, err := orders.NewPharmacyPortal(app.api).Stats(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(stats)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "profile",
		Short: "Show my business profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			p, err := orders.NewPharmacyPortal(app.api).Profile(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(p)
		},
	})

	return cmd
}
