package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/healthbridge/healthbridge/internal/domain/doctor"
	"github.com/healthbridge/healthbridge/internal/domain/orders"
)

func doctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Doctor portal",
	}
	cmd.AddCommand(doctorProfileCmd())
	cmd.AddCommand(doctorPatientsCmd())
	cmd.AddCommand(doctorTimelineCmd())
	cmd.AddCommand(doctorReportsCmd())
	cmd.AddCommand(doctorStatsCmd())
	cmd.AddCommand(doctorOrderLabCmd())
	cmd.AddCommand(doctorPrescribeCmd())
	return cmd
}

func doctorProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show my doctor profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			p, err := doctor.NewClient(app.api).Profile(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(p)
		},
	}
}

func doctorPatientsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patients",
		Short: "List or search my patients",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			client := doctor.NewClient(app.api)
			if query, _ := cmd.Flags().GetString("search"); query != "" {
				patients, err := client.SearchPatients(cmd.Context(), query)
				if err != nil {
					return err
				}
				return printJSON(patients)
			}
			patients, err := client.MyPatients(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(patients)
		},
	}
	cmd.Flags().String("search", "", "search by name or phone")
	return cmd
}

func doctorTimelineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timeline <patient-id>",
		Short: "Show a patient's full history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			patientID, err := parseID(args[0], "patient")
			if err != nil {
				return err
			}
			tl, err := doctor.NewClient(app.api).PatientTimeline(cmd.Context(), patientID)
			if err != nil {
				return err
			}
			if showRisk, _ := cmd.Flags().GetBool("risk"); showRisk {
				fmt.Printf("risk: %s\n", doctor.Risk(riskInputsFromTimeline(tl), doctor.DefaultRiskConfig()))
			}
			return printJSON(tl)
		},
	}
	cmd.Flags().Bool("risk", false, "print the computed risk level")
	return cmd
}

// riskInputsFromTimeline pulls the latest readings and workload counts out
// of the joined history.
func riskInputsFromTimeline(tl *doctor.Timeline) doctor.RiskInputs {
	var in doctor.RiskInputs
	for _, enc := range tl.Encounters {
		for _, v := range enc.Vitals {
			if v.BloodPressureSys != nil {
				in.LatestSystolic = *v.BloodPressureSys
			}
			if v.BloodPressureDia != nil {
				in.LatestDiastolic = *v.BloodPressureDia
			}
		}
		if enc.SummaryReport != nil && enc.SummaryReport.Status != "REVIEWED" {
			in.PendingReports++
		}
	}
	in.EncountersIn30d = len(tl.Encounters)
	return in
}

func doctorReportsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "My review queues",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			client := doctor.NewClient(app.api)
			if reviewed, _ := cmd.Flags().GetBool("reviewed"); reviewed {
				reports, err := client.ReviewedReports(cmd.Context())
				if err != nil {
					return err
				}
				return printJSON(reports)
			}
			reports, err := client.PendingReports(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(reports)
		},
	}
	cmd.Flags().Bool("reviewed", false, "show reviewed instead of pending")
	return cmd
}

func doctorStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show my workload counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			stats, err := doctor.NewClient(app.api).Stats(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(stats)
		},
	}
}

// pickProvider narrows the directory with the query and needs exactly one
// match to proceed.
func pickProvider(providers []orders.Provider, query string) (*orders.Provider, error) {
	picker := orders.NewPicker(providers)
	picker.SetQuery(query)
	visible := picker.Visible()
	switch len(visible) {
	case 0:
		return nil, fmt.Errorf("no provider matches %q", query)
	case 1:
		picker.Select(visible[0].UserID)
		return picker.Selected(), nil
	default:
		for _, p := range visible {
			fmt.Printf("%s  %s\n", p.UserID, p.BusinessName)
		}
		return nil, fmt.Errorf("%d providers match %q, narrow the query", len(visible), query)
	}
}

func doctorOrderLabCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order-lab <encounter-id> <instructions>",
		Short: "Send a lab order",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			encID, err := parseID(args[0], "encounter")
			if err != nil {
				return err
			}
			client := orders.NewClient(app.api)
			labs, err := client.AvailableLabs(cmd.Context())
			if err != nil {
				return err
			}
			query, _ := cmd.Flags().GetString("lab")
			lab, err := pickProvider(labs, query)
			if err != nil {
				return err
			}
			order, err := client.CreateLabOrder(cmd.Context(), encID, lab.UserID, args[1])
			if err != nil {
				return err
			}
			return printJSON(order)
		},
	}
	cmd.Flags().String("lab", "", "lab name, phone or address fragment")
	return cmd
}

func doctorPrescribeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prescribe <encounter-id> <instructions>",
		Short: "Send a prescription",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			encID, err := parseID(args[0], "encounter")
			if err != nil {
				return err
			}
			client := orders.NewClient(app.api)
			pharmacies, err := client.AvailablePharmacies(cmd.Context())
			if err != nil {
				return err
			}
			query, _ := cmd.Flags().GetString("pharmacy")
			pharmacy, err := pickProvider(pharmacies, query)
			if err != nil {
				return err
			}
			rx, err := client.CreatePrescription(cmd.Context(), encID, pharmacy.UserID, args[1])
			if err != nil {
				return err
			}
			return printJSON(rx)
		},
	}
	cmd.Flags().String("pharmacy", "", "pharmacy name, phone or address fragment")
	return cmd
}
