package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/healthbridge/healthbridge/internal/domain/admin"
	"github.com/healthbridge/healthbridge/internal/domain/identity"
)

func adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin portal",
	}
	cmd.AddCommand(adminOnboardCmd())
	cmd.AddCommand(adminUsersCmd())
	cmd.AddCommand(adminUserCmd())
	cmd.AddCommand(adminStatsCmd())
	cmd.AddCommand(adminAuditCmd())
	return cmd
}

func adminOnboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Onboard professionals",
	}

	doctorCmd := &cobra.Command{
		Use:   "doctor",
		Short: "Create a doctor account",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			first, _ := cmd.Flags().GetString("first-name")
			last, _ := cmd.Flags().GetString("last-name")
			email, _ := cmd.Flags().GetString("email")
			phone, _ := cmd.Flags().GetString("phone")
			address, _ := cmd.Flags().GetString("address")
			specialty, _ := cmd.Flags().GetString("specialty")
			hospital, _ := cmd.Flags().GetString("hospital")
			d, err := admin.NewClient(app.api).CreateDoctor(cmd.Context(), admin.DoctorInput{
				FirstName:    first,
				LastName:     last,
				Email:        email,
				Phone:        phone,
				Address:      address,
				Specialty:    specialty,
				HospitalName: hospital,
			})
			if err != nil {
				return err
			}
			return printJSON(d)
		},
	}
	doctorCmd.Flags().String("first-name", "", "first name")
	doctorCmd.Flags().String("last-name", "", "last name")
	doctorCmd.Flags().String("email", "", "email")
	doctorCmd.Flags().String("phone", "", "phone")
	doctorCmd.Flags().String("address", "", "address")
	doctorCmd.Flags().String("specialty", "", "specialty")
	doctorCmd.Flags().String("hospital", "", "hospital name")
	cmd.AddCommand(doctorCmd)

	businessFlags := func(c *cobra.Command) {
		c.Flags().String("name", "", "business name")
		c.Flags().String("email", "", "email")
		c.Flags().String("phone", "", "phone")
		c.Flags().String("address", "", "address")
	}
	businessInput := func(c *cobra.Command) admin.BusinessInput {
		name, _ := c.Flags().GetString("name")
		email, _ := c.Flags().GetString("email")
		phone, _ := c.Flags().GetString("phone")
		address, _ := c.Flags().GetString("address")
		return admin.BusinessInput{BusinessName: name, Email: email, Phone: phone, Address: address}
	}

	labCmd := &cobra.Command{
		Use:   "lab",
		Short: "Create a lab account",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			l, err := admin.NewClient(app.api).CreateLab(cmd.Context(), businessInput(cmd))
			if err != nil {
				return err
			}
			return printJSON(l)
		},
	}
	businessFlags(labCmd)
	cmd.AddCommand(labCmd)

	pharmacyCmd := &cobra.Command{
		Use:   "pharmacy",
		Short: "Create a pharmacy account",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			p, err := admin.NewClient(app.api).CreatePharmacy(cmd.Context(), businessInput(cmd))
			if err != nil {
				return err
			}
			return printJSON(p)
		},
	}
	businessFlags(pharmacyCmd)
	cmd.AddCommand(pharmacyCmd)

	return cmd
}

func adminUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			role, _ := cmd.Flags().GetString("role")
			users, err := admin.NewClient(app.api).Users(cmd.Context(), identity.Role(role))
			if err != nil {
				return err
			}
			return printJSON(users)
		},
	}
	cmd.Flags().String("role", "", "filter by role")
	return cmd
}

func adminUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "User lifecycle",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "activate <user-id>",
		Short: "Re-enable an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			id, err := parseID(args[0], "user")
			if err != nil {
				return err
			}
			u, err := admin.NewClient(app.api).Activate(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(u)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "deactivate <user-id>",
		Short: "Disable an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			id, err := parseID(args[0], "user")
			if err != nil {
				return err
			}
			u, err := admin.NewClient(app.api).Deactivate(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(u)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <user-id>",
		Short: "Permanently remove an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			id, err := parseID(args[0], "user")
			if err != nil {
				return err
			}
			if err := admin.NewClient(app.api).Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Println("User deleted")
			return nil
		},
	})

	return cmd
}

func adminAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Access audit trail",
	}

	auditFilter := func(c *cobra.Command) (admin.AuditFilter, error) {
		var f admin.AuditFilter
		if raw, _ := c.Flags().GetString("user"); raw != "" {
			id, err := parseID(raw, "user")
			if err != nil {
				return f, err
			}
			f.UserID = id
		}
		action, _ := c.Flags().GetString("action")
		f.Action = admin.AuditAction(action)
		f.ResourceType, _ = c.Flags().GetString("resource-type")
		f.Limit, _ = c.Flags().GetInt("limit")
		f.Offset, _ = c.Flags().GetInt("offset")
		return f, nil
	}
	filterFlags := func(c *cobra.Command) {
		c.Flags().String("user", "", "filter by user id")
		c.Flags().String("action", "", "VIEW, CREATE, UPDATE or DELETE")
		c.Flags().String("resource-type", "", "filter by resource type")
		c.Flags().Int("limit", 0, "page size")
		c.Flags().Int("offset", 0, "page offset")
	}

	logsCmd := &cobra.Command{
		Use:   "logs",
		Short: "List audit log entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			filter, err := auditFilter(cmd)
			if err != nil {
				return err
			}
			logs, err := admin.NewClient(app.api).AuditLogs(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return printJSON(logs)
		},
	}
	filterFlags(logsCmd)
	cmd.AddCommand(logsCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "resource <resource-type> <resource-id>",
		Short: "Audit trail for one resource",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			id, err := parseID(args[1], "resource")
			if err != nil {
				return err
			}
			logs, err := admin.NewClient(app.api).ResourceAuditLogs(cmd.Context(), args[0], id)
			if err != nil {
				return err
			}
			return printJSON(logs)
		},
	})

	mineCmd := &cobra.Command{
		Use:   "mine",
		Short: "My own audit trail",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			filter, err := auditFilter(cmd)
			if err != nil {
				return err
			}
			logs, err := admin.NewClient(app.api).MyAuditLogs(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return printJSON(logs)
		},
	}
	filterFlags(mineCmd)
	cmd.AddCommand(mineCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Audit volume counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			stats, err := admin.NewClient(app.api).AuditStats(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(stats)
		},
	})

	return cmd
}

func adminStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show system-wide counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			stats, err := admin.NewClient(app.api).Stats(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(stats)
		},
	}
}
