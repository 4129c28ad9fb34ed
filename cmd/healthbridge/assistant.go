package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/healthbridge/healthbridge/internal/domain/encounter"
)

func assistantCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assistant",
		Short: "Guided symptom interview",
	}
	cmd.AddCommand(assistantInterviewCmd())
	return cmd
}

func assistantInterviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interview",
		Short: "Answer the assistant's questions, get a symptoms summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			iv := encounter.NewInterview(encounter.NewClient(app.api))

			step, err := iv.Step(cmd.Context(), "")
			if err != nil {
				return err
			}
			in := bufio.NewScanner(os.Stdin)
			for !step.IsComplete {
				fmt.Println(step.NextQuestion)
				fmt.Print("> ")
				if !in.Scan() {
					return in.Err()
				}
				answer := strings.TrimSpace(in.Text())
				if answer == "" {
					continue
				}
				step, err = iv.Step(cmd.Context(), answer)
				if err != nil {
					return err
				}
			}
			fmt.Println(step.Summary)
			return nil
		},
	}
}
