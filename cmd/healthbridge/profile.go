package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/healthbridge/healthbridge/internal/domain/identity"
	"github.com/healthbridge/healthbridge/internal/platform/format"
)

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Patient profile",
	}
	cmd.AddCommand(profileShowCmd())
	cmd.AddCommand(profileCreateCmd())
	cmd.AddCommand(profileUpdateCmd())
	cmd.AddCommand(profileTimelineCmd())
	cmd.AddCommand(profileInsightsCmd())
	return cmd
}

func profileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the logged-in patient's profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			p, err := identity.NewClient(app.api).Profile(cmd.Context())
			if err != nil {
				return err
			}
			if age := format.AgeFromISO(p.DateOfBirth, time.Now()); age >= 0 {
				fmt.Printf("%s, age %d\n", p.FullName(), age)
			}
			return printJSON(p)
		},
	}
}

func profileInputFlags(cmd *cobra.Command) {
	cmd.Flags().String("first-name", "", "first name")
	cmd.Flags().String("last-name", "", "last name")
	cmd.Flags().String("dob", "", "date of birth (YYYY-MM-DD)")
	cmd.Flags().String("gender", "", "gender")
	cmd.Flags().String("health-issues", "", "general health issues")
	cmd.Flags().String("notes", "", "notes")
}

func profileInputFromFlags(cmd *cobra.Command) identity.PatientProfileInput {
	first, _ := cmd.Flags().GetString("first-name")
	last, _ := cmd.Flags().GetString("last-name")
	dob, _ := cmd.Flags().GetString("dob")
	gender, _ := cmd.Flags().GetString("gender")
	issues, _ := cmd.Flags().GetString("health-issues")
	notes, _ := cmd.Flags().GetString("notes")
	return identity.PatientProfileInput{
		FirstName:           first,
		LastName:            last,
		DateOfBirth:         dob,
		Gender:              identity.Gender(gender),
		GeneralHealthIssues: issues,
		Notes:               notes,
	}
}

func profileCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create the patient profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			p, err := identity.NewClient(app.api).CreateProfile(cmd.Context(), profileInputFromFlags(cmd))
			if err != nil {
				return err
			}
			return printJSON(p)
		},
	}
	profileInputFlags(cmd)
	return cmd
}

func profileUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update the patient profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			p, err := identity.NewClient(app.api).UpdateProfile(cmd.Context(), profileInputFromFlags(cmd))
			if err != nil {
				return err
			}
			return printJSON(p)
		},
	}
	profileInputFlags(cmd)
	return cmd
}

func profileTimelineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "timeline",
		Short: "Show the health timeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			raw, err := identity.NewClient(app.api).Timeline(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(raw)
		},
	}
}

func profileInsightsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Show health insights",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			raw, err := identity.NewClient(app.api).Insights(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(raw)
		},
	}
}
