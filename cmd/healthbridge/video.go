package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/healthbridge/healthbridge/internal/domain/video"
)

func videoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "video",
		Short: "Video consultations",
	}
	cmd.AddCommand(videoScheduleCmd())
	cmd.AddCommand(videoListCmd())
	cmd.AddCommand(videoJoinCmd())
	cmd.AddCommand(videoEndCmd())
	cmd.AddCommand(videoCancelCmd())
	cmd.AddCommand(videoStatsCmd())
	return cmd
}

func videoScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule <doctor-id> <start-time>",
		Short: "Book a consultation (start time in RFC 3339)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			doctorID, err := parseID(args[0], "doctor")
			if err != nil {
				return err
			}
			start, err := time.Parse(time.RFC3339, args[1])
			if err != nil {
				return fmt.Errorf("invalid start time %q, want RFC 3339", args[1])
			}
			duration, _ := cmd.Flags().GetInt("duration")
			notes, _ := cmd.Flags().GetString("notes")
			consult, err := video.NewClient(app.api).Schedule(cmd.Context(), video.ScheduleInput{
				DoctorID:           doctorID,
				ScheduledStartTime: start,
				DurationMinutes:    duration,
				PatientNotes:       notes,
			})
			if err != nil {
				return err
			}
			return printJSON(consult)
		},
	}
	cmd.Flags().Int("duration", 0, "duration in minutes")
	cmd.Flags().String("notes", "", "notes for the doctor")
	return cmd
}

func videoListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List my consultations",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			upcoming, _ := cmd.Flags().GetBool("upcoming")
			items, err := video.NewClient(app.api).Mine(cmd.Context(), upcoming)
			if err != nil {
				return err
			}
			return printJSON(items)
		},
	}
	cmd.Flags().Bool("upcoming", false, "only upcoming consultations")
	return cmd
}

func videoJoinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "join <consultation-id>",
		Short: "Join and print the call credentials",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			id, err := parseID(args[0], "consultation")
			if err != nil {
				return err
			}
			as, _ := cmd.Flags().GetString("as")
			creds, err := video.NewClient(app.api).Join(cmd.Context(), id, as)
			if err != nil {
				return err
			}
			return printJSON(creds)
		},
	}
	cmd.Flags().String("as", "patient", "join as patient or doctor")
	return cmd
}

func videoEndCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "end <consultation-id>",
		Short: "End a consultation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			id, err := parseID(args[0], "consultation")
			if err != nil {
				return err
			}
			consult, err := video.NewClient(app.api).End(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(consult)
		},
	}
}

func videoCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <consultation-id> <reason>",
		Short: "Cancel a consultation with a reason",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			id, err := parseID(args[0], "consultation")
			if err != nil {
				return err
			}
			consult, err := video.NewClient(app.api).Cancel(cmd.Context(), id, args[1])
			if err != nil {
				return err
			}
			return printJSON(consult)
		},
	}
}

func videoStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show my consultation counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			stats, err := video.NewClient(app.api).MyStats(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(stats)
		},
	}
}
