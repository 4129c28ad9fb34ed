package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/healthbridge/healthbridge/internal/domain/encounter"
	"github.com/healthbridge/healthbridge/internal/platform/api"
	"github.com/healthbridge/healthbridge/internal/platform/format"
)

// parseMetrics turns name=value pairs into lab metrics, keeping numeric
// values numeric.
func parseMetrics(pairs []string) (encounter.Metrics, error) {
	metrics := make(encounter.Metrics, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("metric %q must be name=value", pair)
		}
		if n, err := strconv.ParseFloat(value, 64); err == nil {
			metrics[name] = encounter.NumberMetric(n)
		} else {
			metrics[name] = encounter.TextMetric(value)
		}
	}
	return metrics, nil
}

func encounterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encounter",
		Short: "Encounters, vitals, lab results and attachments",
	}
	cmd.AddCommand(encounterCreateCmd())
	cmd.AddCommand(encounterListCmd())
	cmd.AddCommand(encounterShowCmd())
	cmd.AddCommand(encounterDoctorsCmd())
	cmd.AddCommand(encounterAssignCmd())
	cmd.AddCommand(vitalsCmd())
	cmd.AddCommand(labResultsCmd())
	cmd.AddCommand(mediaCmd())
	cmd.AddCommand(transcribeCmd())
	return cmd
}

func encounterCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Open a new encounter",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			encType, _ := cmd.Flags().GetString("type")
			input, _ := cmd.Flags().GetString("input-method")
			e, err := encounter.NewClient(app.api).Create(cmd.Context(), encounter.CreateInput{
				Type:        encounter.Type(encType),
				InputMethod: encounter.InputMethod(input),
			})
			if err != nil {
				return err
			}
			return printJSON(e)
		},
	}
	cmd.Flags().String("type", string(encounter.TypeInitialLog), "REMOTE_CONSULT, LIVE_VISIT or INITIAL_LOG")
	cmd.Flags().String("input-method", string(encounter.InputManual), "VOICE or MANUAL")
	return cmd
}

func encounterListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List my encounters",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			encs, err := encounter.NewClient(app.api).List(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(encs)
		},
	}
}

func encounterShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <encounter-id>",
		Short: "Show one encounter with everything attached",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			id, err := parseID(args[0], "encounter")
			if err != nil {
				return err
			}
			full, err := encounter.NewClient(app.api).Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(full)
		},
	}
}

func encounterDoctorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctors",
		Short: "List doctors available for assignment",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			docs, err := encounter.NewClient(app.api).AvailableDoctors(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(docs)
		},
	}
}

func encounterAssignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assign <encounter-id> <doctor-id>",
		Short: "Assign a doctor to the encounter",
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
			docID, err := parseID(args[1], "doctor")
			if err != nil {
				return err
			}
			e, err := encounter.NewClient(app.api).AssignDoctor(cmd.Context(), encID, docID)
			if err != nil {
				return err
			}
			return printJSON(e)
		},
	}
}

func vitalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vitals",
		Short: "Vitals log",
	}

	add := &cobra.Command{
		Use:   "add <encounter-id>",
		Short: "Record a vitals entry",
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
			var in encounter.VitalsInput
			if v, _ := cmd.Flags().GetInt("systolic"); v > 0 {
				in.BloodPressureSys = &v
			}
			if v, _ := cmd.Flags().GetInt("diastolic"); v > 0 {
				in.BloodPressureDia = &v
			}
			if v, _ := cmd.Flags().GetInt("heart-rate"); v > 0 {
				in.HeartRate = &v
			}
			if v, _ := cmd.Flags().GetInt("oxygen"); v > 0 {
				in.OxygenLevel = &v
			}
			if v, _ := cmd.Flags().GetFloat64("weight"); v > 0 {
				in.Weight = &v
			}
			if v, _ := cmd.Flags().GetFloat64("temperature"); v > 0 {
				in.Temperature = &v
			}
			entry, err := encounter.NewClient(app.api).AddVitals(cmd.Context(), encID, in)
			if err != nil {
				return err
			}
			return printJSON(entry)
		},
	}
	add.Flags().Int("systolic", 0, "systolic blood pressure")
	add.Flags().Int("diastolic", 0, "diastolic blood pressure")
	add.Flags().Int("heart-rate", 0, "heart rate")
	add.Flags().Int("oxygen", 0, "oxygen saturation")
	add.Flags().Float64("weight", 0, "weight in kg")
	add.Flags().Float64("temperature", 0, "temperature in F")
	cmd.AddCommand(add)

	list := &cobra.Command{
		Use:   "list <encounter-id>",
		Short: "List vitals with status bands",
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
			entries, err := encounter.NewClient(app.api).ListVitals(cmd.Context(), encID)
			if err != nil {
				return err
			}
			for _, v := range entries {
				fmt.Printf("%s\n", v.RecordedAt.Format("Jan 2, 2006 3:04 PM"))
				if v.BloodPressureSys != nil {
					fmt.Printf("  systolic: %d (%s)\n", *v.BloodPressureSys, format.ClassifyVital("systolic", float64(*v.BloodPressureSys)))
				}
				if v.BloodPressureDia != nil {
					fmt.Printf("  diastolic: %d (%s)\n", *v.BloodPressureDia, format.ClassifyVital("diastolic", float64(*v.BloodPressureDia)))
				}
				if v.HeartRate != nil {
					fmt.Printf("  heart rate: %d (%s)\n", *v.HeartRate, format.ClassifyVital("heart_rate", float64(*v.HeartRate)))
				}
				if v.OxygenLevel != nil {
					fmt.Printf("  oxygen: %d (%s)\n", *v.OxygenLevel, format.ClassifyVital("oxygen_level", float64(*v.OxygenLevel)))
				}
				if v.Temperature != nil {
					fmt.Printf("  temperature: %.1f (%s)\n", *v.Temperature, format.ClassifyVital("temperature", *v.Temperature))
				}
			}
			return nil
		},
	}
	cmd.AddCommand(list)

	return cmd
}

func labResultsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lab-results",
		Short: "Structured lab results",
	}

	add := &cobra.Command{
		Use:   "add <encounter-id> <name=value>...",
		Short: "Record lab metrics; numeric values stay numeric",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			encID, err := parseID(args[0], "encounter")
			if err != nil {
				return err
			}
			metrics, err := parseMetrics(args[1:])
			if err != nil {
				return err
			}
			entry, err := encounter.NewClient(app.api).AddLabResults(cmd.Context(), encID, metrics)
			if err != nil {
				return err
			}
			return printJSON(entry)
		},
	}
	cmd.AddCommand(add)

	list := &cobra.Command{
		Use:   "list <encounter-id>",
		Short: "List lab result entries",
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
			entries, err := encounter.NewClient(app.api).ListLabResults(cmd.Context(), encID)
			if err != nil {
				return err
			}
			return printJSON(entries)
		},
	}
	cmd.AddCommand(list)

	return cmd
}

func mediaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "media",
		Short: "Encounter attachments",
	}

	upload := &cobra.Command{
		Use:   "upload <encounter-id> <file>...",
		Short: "Upload files to the encounter",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			encID, err := parseID(args[0], "encounter")
			if err != nil {
				return err
			}
			var files []api.File
			for _, path := range args[1:] {
				contents, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				files = append(files, api.File{
					Field:    "files",
					Name:     filepath.Base(path),
					Contents: contents,
				})
			}
			uploaded, err := encounter.NewClient(app.api).UploadMedia(cmd.Context(), encID, files)
			if err != nil {
				return err
			}
			return printJSON(uploaded)
		},
	}
	cmd.AddCommand(upload)

	list := &cobra.Command{
		Use:   "list <encounter-id>",
		Short: "List attachments",
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
			media, err := encounter.NewClient(app.api).ListMedia(cmd.Context(), encID)
			if err != nil {
				return err
			}
			return printJSON(media)
		},
	}
	cmd.AddCommand(list)

	fetch := &cobra.Command{
		Use:   "fetch <encounter-id> <file-id>",
		Short: "Download an attachment",
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
			fileID, err := parseID(args[1], "file")
			if err != nil {
				return err
			}
			body, _, err := encounter.NewClient(app.api).FetchMedia(cmd.Context(), encID, fileID)
			if err != nil {
				return err
			}
			out := filepath.Join(os.TempDir(), fileID.String())
			if err := os.WriteFile(out, body, 0o600); err != nil {
				return err
			}
			fmt.Printf("Saved to %s\n", out)
			if open, _ := cmd.Flags().GetBool("open"); open {
				return app.device.OpenDocument(out)
			}
			return nil
		},
	}
	fetch.Flags().Bool("open", false, "open with the system viewer")
	cmd.AddCommand(fetch)

	return cmd
}

func transcribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transcribe <audio-file>",
		Short: "Transcribe a voice recording",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			audio, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			t, err := encounter.NewClient(app.api).Transcribe(cmd.Context(), nil, audio)
			if err != nil {
				return err
			}
			return printJSON(t)
		},
	}
}
