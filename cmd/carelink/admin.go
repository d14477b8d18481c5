package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carelink/carelink/internal/domain/analytics"
	"github.com/carelink/carelink/internal/domain/doctors"
	"github.com/carelink/carelink/internal/session"
	"github.com/carelink/carelink/internal/shell"
)

func adminShell() *shell.Shell {
	return &shell.Shell{
		Role:  session.RoleAdmin,
		Title: "Admin Dashboard",
		NavItems: []shell.NavItem{
			{Name: "overview", Description: "Platform totals"},
			{Name: "stats", Description: "Per-day appointment stats"},
			{Name: "doctors", Description: "Manage doctor accounts"},
		},
	}
}

func adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin section",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "overview",
		Short: "Show platform totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.gate(cmd.Context(), adminShell()); err != nil {
				return err
			}
			o, err := analytics.NewClient(a.api).Overview(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Appointments: %d\n", o.TotalAppointments)
			fmt.Printf("Doctors:      %d\n", o.TotalDoctors)
			fmt.Printf("Patients:     %d\n", o.TotalPatients)
			fmt.Printf("Revenue:      %.2f\n", o.TotalRevenue)
			for status, n := range o.StatusCounts {
				fmt.Printf("  %-10s %d\n", status, n)
			}
			return nil
		},
	})

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show per-day appointment stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.gate(cmd.Context(), adminShell()); err != nil {
				return err
			}
			days, _ := cmd.Flags().GetInt("days")

			s, err := analytics.NewClient(a.api).Stats(cmd.Context(), days)
			if err != nil {
				return err
			}

			w := newTable()
			fmt.Fprintln(w, "DATE\tAPPOINTMENTS\tREVENUE")
			for _, p := range s.Points {
				fmt.Fprintf(w, "%s\t%d\t%.2f\n", p.Date, p.Appointments, p.Revenue)
			}
			w.Flush()

			if out, _ := cmd.Flags().GetString("export"); out != "" {
				if err := analytics.ExportStats(s, out); err != nil {
					return err
				}
				fmt.Println("Exported to", out)
			}
			return nil
		},
	}
	statsCmd.Flags().Int("days", 7, "Trailing window in days")
	statsCmd.Flags().String("export", "", "Write the stats to an .xlsx file")
	cmd.AddCommand(statsCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "doctors",
		Short: "List doctor accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.gate(cmd.Context(), adminShell()); err != nil {
				return err
			}
			list, err := doctors.NewClient(a.api).List(cmd.Context())
			if err != nil {
				return err
			}
			w := newTable()
			fmt.Fprintln(w, "ID\tNAME\tEMAIL\tSPECIALTY\tACTIVE")
			for _, d := range list {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\n", d.ID, d.Name, d.Email, d.Specialty, d.Active)
			}
			w.Flush()
			return nil
		},
	})

	createCmd := &cobra.Command{
		Use:   "doctor-create",
		Short: "Onboard a doctor account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.gate(cmd.Context(), adminShell()); err != nil {
				return err
			}

			req := doctors.CreateDoctorRequest{}
			req.Name, _ = cmd.Flags().GetString("name")
			req.Email, _ = cmd.Flags().GetString("email")
			req.Phone, _ = cmd.Flags().GetString("phone")
			req.Password, _ = cmd.Flags().GetString("password")

			d, err := doctors.NewClient(a.api).Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Printf("Created doctor %s (%s). They complete their own profile on first login.\n", d.Name, d.ID)
			return nil
		},
	}
	createCmd.Flags().String("name", "", "Doctor name")
	createCmd.Flags().String("email", "", "Doctor email")
	createCmd.Flags().String("phone", "", "Doctor phone")
	createCmd.Flags().String("password", "", "Initial password")
	cmd.AddCommand(createCmd)

	deleteCmd := &cobra.Command{
		Use:   "doctor-delete <id>",
		Short: "Remove a doctor account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.gate(cmd.Context(), adminShell()); err != nil {
				return err
			}
			yes, _ := cmd.Flags().GetBool("yes")
			if !yes && !confirm("Delete doctor "+args[0]+"?") {
				fmt.Println("Kept.")
				return nil
			}
			if err := doctors.NewClient(a.api).Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Deleted.")
			return nil
		},
	}
	deleteCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
	cmd.AddCommand(deleteCmd)

	return cmd
}
