package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/healthbridge/healthbridge/internal/domain/referral"
)

func referralsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "referrals",
		Short: "Doctor-to-doctor referrals",
	}
	cmd.AddCommand(referralCreateCmd())
	cmd.AddCommand(referralListCmd())
	cmd.AddCommand(referralShowCmd())
	cmd.AddCommand(referralAcceptCmd())
	cmd.AddCommand(referralDeclineCmd())
	cmd.AddCommand(referralLinkCmd())
	cmd.AddCommand(referralCompleteCmd())
	cmd.AddCommand(referralStatsCmd())
	return cmd
}

func referralCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <patient-id> <doctor-id> <reason>",
		Short: "Refer a patient to a colleague",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			patientID, err := parseID(args[0], "patient")
			if err != nil {
				return err
			}
			doctorID, err := parseID(args[1], "doctor")
			if err != nil {
				return err
			}
			notes, _ := cmd.Flags().GetString("notes")
			priority, _ := cmd.Flags().GetString("priority")
			specialty, _ := cmd.Flags().GetString("specialty")
			ref, err := referral.NewClient(app.api).Create(cmd.Context(), referral.CreateInput{
				PatientID:          patientID,
				ReferredToDoctorID: doctorID,
				Reason:             args[2],
				ClinicalNotes:      notes,
				Priority:           referral.Priority(priority),
				SpecialtyNeeded:    specialty,
			})
			if err != nil {
				return err
			}
			return printJSON(ref)
		},
	}
	cmd.Flags().String("notes", "", "clinical notes for the colleague")
	cmd.Flags().String("priority", "", "HIGH, MEDIUM or LOW")
	cmd.Flags().String("specialty", "", "specialty needed")
	return cmd
}

func referralListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List referrals (sent, received, or my own as a patient)",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			client := referral.NewClient(app.api)
			var refs []referral.Referral
			switch {
			case mustBool(cmd, "received"):
				refs, err = client.Received(cmd.Context())
			case mustBool(cmd, "mine"):
				refs, err = client.Mine(cmd.Context())
			default:
				refs, err = client.Made(cmd.Context())
			}
			if err != nil {
				return err
			}
			return printJSON(refs)
		},
	}
	cmd.Flags().Bool("received", false, "referrals sent to me (doctor)")
	cmd.Flags().Bool("mine", false, "my own referrals (patient)")
	return cmd
}

func mustBool(cmd *cobra.Command, name string) bool {
	v, _ := cmd.Flags().GetBool(name)
	return v
}

func referralShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <referral-id>",
		Short: "Show one referral",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			id, err := parseID(args[0], "referral")
			if err != nil {
				return err
			}
			ref, err := referral.NewClient(app.api).Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(ref)
		},
	}
}

func referralAcceptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accept <referral-id>",
		Short: "Accept a referral sent to me",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			id, err := parseID(args[0], "referral")
			if err != nil {
				return err
			}
			notes, _ := cmd.Flags().GetString("notes")
			ref, err := referral.NewClient(app.api).Accept(cmd.Context(), id, notes)
			if err != nil {
				return err
			}
			return printJSON(ref)
		},
	}
	cmd.Flags().String("notes", "", "notes back to the referring doctor")
	return cmd
}

func referralDeclineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decline <referral-id> <reason>",
		Short: "Decline a referral sent to me",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			id, err := parseID(args[0], "referral")
			if err != nil {
				return err
			}
			ref, err := referral.NewClient(app.api).Decline(cmd.Context(), id, args[1])
			if err != nil {
				return err
			}
			return printJSON(ref)
		},
	}
}

func referralLinkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "link <referral-id> <encounter-id> <scheduled-time>",
		Short: "Attach a booked appointment to a referral",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			id, err := parseID(args[0], "referral")
			if err != nil {
				return err
			}
			encID, err := parseID(args[1], "encounter")
			if err != nil {
				return err
			}
			scheduled, err := time.Parse(time.RFC3339, args[2])
			if err != nil {
				return fmt.Errorf("invalid scheduled time %q, want RFC3339", args[2])
			}
			ref, err := referral.NewClient(app.api).LinkAppointment(cmd.Context(), id, encID, scheduled)
			if err != nil {
				return err
			}
			return printJSON(ref)
		},
	}
}

func referralCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <referral-id>",
		Short: "Close a referral after the appointment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			id, err := parseID(args[0], "referral")
			if err != nil {
				return err
			}
			ref, err := referral.NewClient(app.api).Complete(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(ref)
		},
	}
}

func referralStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Referral badge counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			stats, err := referral.NewClient(app.api).Stats(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(stats)
		},
	}
}
