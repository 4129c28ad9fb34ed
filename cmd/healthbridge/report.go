package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/healthbridge/healthbridge/internal/domain/encounter"
	"github.com/healthbridge/healthbridge/internal/domain/report"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summary reports",
	}
	cmd.AddCommand(reportShowCmd())
	cmd.AddCommand(reportGenerateCmd())
	cmd.AddCommand(reportTranslateCmd())
	cmd.AddCommand(reportReviewCmd())
	return cmd
}

func reportShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <encounter-id>",
		Short: "Show the encounter's summary report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			encID, err := parseID(args[0], "encounter")
			if err != nil {
				return err
			}
			r, err := report.NewClient(app.api).Get(cmd.Context(), encID)
			if err != nil {
				return err
			}
			return printJSON(r)
		},
	}
}

func reportGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate <encounter-id>",
		Short: "Generate the AI summary draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			encID, err := parseID(args[0], "encounter")
			if err != nil {
				return err
			}
			raw, err := encounter.NewClient(app.api).GenerateSummary(cmd.Context(), encID)
			if err != nil {
				return err
			}
			return printJSON(raw)
		},
	}
}

func reportTranslateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "translate <encounter-id>",
		Short: "Show the translated report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			encID, err := parseID(args[0], "encounter")
			if err != nil {
				return err
			}
			t, err := report.NewClient(app.api).Translate(cmd.Context(), encID)
			if err != nil {
				return err
			}
			return printJSON(t)
		},
	}
}

// reportReviewCmd runs the whole review session in one command: load,
// apply edits from flags, validate, save.
func reportReviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review <encounter-id>",
		Short: "Review and sign off a report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			encID, err := parseID(args[0], "encounter")
			if err != nil {
				return err
			}
			client := report.NewClient(app.api)
			review, err := report.StartReview(cmd.Context(), client, encID)
			if err != nil {
				return err
			}

			if v, _ := cmd.Flags().GetString("symptoms"); v != "" {
				review.SetSymptoms(v)
			}
			if v, _ := cmd.Flags().GetString("diagnosis"); v != "" {
				review.SetDiagnosis(v)
			}
			if v, _ := cmd.Flags().GetString("treatment"); v != "" {
				review.SetTreatment(v)
			}
			if v, _ := cmd.Flags().GetString("tests"); v != "" {
				review.SetTests(v)
			}
			if v, _ := cmd.Flags().GetString("prescription"); v != "" {
				review.SetPrescription(v)
			}
			if v, _ := cmd.Flags().GetString("next-steps"); v != "" {
				review.SetNextSteps(v)
			}
			if v, _ := cmd.Flags().GetString("priority"); v != "" {
				review.SetPriority(report.Priority(v))
			}

			saved, err := review.Save(cmd.Context())
			if err != nil {
				var verr *report.ValidationError
				if errors.As(err, &verr) {
					return fmt.Errorf("report incomplete, missing: %v", verr.Missing)
				}
				return err
			}
			fmt.Println("Report reviewed")
			return printJSON(saved)
		},
	}
	cmd.Flags().String("symptoms", "", "symptoms text")
	cmd.Flags().String("diagnosis", "", "diagnosis text")
	cmd.Flags().String("treatment", "", "treatment text")
	cmd.Flags().String("tests", "", "tests text")
	cmd.Flags().String("prescription", "", "prescription text")
	cmd.Flags().String("next-steps", "", "next steps text")
	cmd.Flags().String("priority", "", "HIGH, MEDIUM or LOW")
	return cmd
}
