package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/carelink/carelink/internal/domain/appointments"
	"github.com/carelink/carelink/internal/domain/doctors"
	"github.com/carelink/carelink/internal/domain/patients"
	"github.com/carelink/carelink/internal/domain/prescriptions"
	"github.com/carelink/carelink/internal/domain/tips"
	"github.com/carelink/carelink/internal/session"
	"github.com/carelink/carelink/internal/shell"
)

func customerShell() *shell.Shell {
	return &shell.Shell{
		Role:  session.RoleCustomer,
		Title: "CareLink",
		NavItems: []shell.NavItem{
			{Name: "appointments", Description: "Your bookings"},
			{Name: "prescriptions", Description: "Your prescriptions"},
			{Name: "doctor", Description: "Doctor profiles and reviews"},
			{Name: "tips", Description: "Health tips"},
			{Name: "profile", Description: "Your account"},
		},
	}
}

func customerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Customer section",
	}

	listCmd := &cobra.Command{
		Use:   "appointments",
		Short: "List your appointments",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.gate(cmd.Context(), customerShell()); err != nil {
				return err
			}
			status, _ := cmd.Flags().GetString("status")
			list, err := appointments.NewClient(a.api).List(cmd.Context(), appointments.Status(status))
			if err != nil {
				return err
			}
			renderAppointments(list)
			return nil
		},
	}
	listCmd.Flags().String("status", "", "Filter by status (pending, confirmed, completed, cancelled)")
	cmd.AddCommand(listCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "appointment <id>",
		Short: "Show one appointment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.gate(cmd.Context(), customerShell()); err != nil {
				return err
			}
			appt, err := appointments.NewClient(a.api).Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			renderAppointment(appt)
			if appt.Status.CanCancel() {
				fmt.Println("\nThis appointment can be cancelled with: carelink customer cancel", appt.ID)
			}
			return nil
		},
	})

	cancelCmd := &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel an appointment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.gate(cmd.Context(), customerShell()); err != nil {
				return err
			}

			yes, _ := cmd.Flags().GetBool("yes")
			if !yes {
				fmt.Println(appointments.CancelNotice)
				if !confirm("Cancel this appointment?") {
					fmt.Println("Kept.")
					return nil
				}
			}

			res, err := appointments.NewClient(a.api).Cancel(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !res.Success {
				fmt.Println("Not cancelled:", res.Message)
				return nil
			}
			fmt.Printf("Cancelled. Company fee: %.2f, refund: %.2f\n", res.CompanyFee, res.RefundAmount)
			if res.Message != "" {
				fmt.Println(res.Message)
			}
			return nil
		},
	}
	cancelCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
	cmd.AddCommand(cancelCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "prescriptions",
		Short: "List your prescriptions",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.gate(cmd.Context(), customerShell()); err != nil {
				return err
			}
			list, err := prescriptions.NewClient(a.api).List(cmd.Context())
			if err != nil {
				return err
			}
			renderPrescriptions(list)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "prescription <id>",
		Short: "Show one prescription",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.gate(cmd.Context(), customerShell()); err != nil {
				return err
			}
			p, err := prescriptions.NewClient(a.api).Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			renderPrescription(p)
			return nil
		},
	})

	downloadCmd := &cobra.Command{
		Use:   "download <id>",
		Short: "Download a prescription document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.gate(cmd.Context(), customerShell()); err != nil {
				return err
			}

			out, _ := cmd.Flags().GetString("out")
			if out == "" {
				out = "prescription-" + args[0] + ".txt"
			}
			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()

			n, err := prescriptions.NewClient(a.api).Download(cmd.Context(), args[0], f)
			if err != nil {
				return err
			}
			fmt.Printf("Saved %d bytes to %s\n", n, out)
			return nil
		},
	}
	downloadCmd.Flags().String("out", "", "Output file path")
	cmd.AddCommand(downloadCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "doctor <id>",
		Short: "Show a doctor's public profile and reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.gate(cmd.Context(), customerShell()); err != nil {
				return err
			}
			docs := doctors.NewClient(a.api)
			profile, err := docs.PublicProfile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			reviews, err := docs.ListReviews(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			renderDoctorProfile(profile, reviews)
			return nil
		},
	})

	reviewCmd := &cobra.Command{
		Use:   "review <doctor-id>",
		Short: "Review a doctor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.gate(cmd.Context(), customerShell()); err != nil {
				return err
			}
			rating, _ := cmd.Flags().GetInt("rating")
			comment, _ := cmd.Flags().GetString("comment")

			r, err := doctors.NewClient(a.api).SubmitReview(cmd.Context(), args[0],
				doctors.SubmitReviewRequest{Rating: rating, Comment: comment})
			if err != nil {
				return err
			}
			fmt.Printf("Thanks! Review %s recorded.\n", r.ID)
			return nil
		},
	}
	reviewCmd.Flags().Int("rating", 0, "Rating, 1 to 5")
	reviewCmd.Flags().String("comment", "", "Review text")
	cmd.AddCommand(reviewCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "tips",
		Short: "List health tips",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.gate(cmd.Context(), customerShell()); err != nil {
				return err
			}
			list, err := tips.NewClient(a.api).List(cmd.Context())
			if err != nil {
				return err
			}
			renderTips(list)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "tip <id>",
		Short: "Read one health tip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.gate(cmd.Context(), customerShell()); err != nil {
				return err
			}
			t, err := tips.NewClient(a.api).Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			renderTip(t)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "profile",
		Short: "Show your account profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.gate(cmd.Context(), customerShell()); err != nil {
				return err
			}
			p, err := patients.NewClient(a.api).Profile(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("%s <%s>\n", p.Name, p.Email)
			if p.Phone != "" {
				fmt.Println("Phone:  ", p.Phone)
			}
			if p.Age > 0 {
				fmt.Println("Age:    ", p.Age)
			}
			if p.Gender != "" {
				fmt.Println("Gender: ", p.Gender)
			}
			if p.Address != "" {
				fmt.Println("Address:", p.Address)
			}
			return nil
		},
	})

	updateCmd := &cobra.Command{
		Use:   "update-profile",
		Short: "Update your account profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.gate(cmd.Context(), customerShell()); err != nil {
				return err
			}

			client := patients.NewClient(a.api)
			current, err := client.Profile(cmd.Context())
			if err != nil {
				return err
			}

			p := *current
			if v, _ := cmd.Flags().GetString("name"); v != "" {
				p.Name = v
			}
			if v, _ := cmd.Flags().GetString("phone"); v != "" {
				p.Phone = v
			}
			if v, _ := cmd.Flags().GetInt("age"); v > 0 {
				p.Age = v
			}
			if v, _ := cmd.Flags().GetString("gender"); v != "" {
				p.Gender = v
			}
			if v, _ := cmd.Flags().GetString("address"); v != "" {
				p.Address = v
			}

			updated, err := client.UpdateProfile(cmd.Context(), p)
			if err != nil {
				return err
			}
			fmt.Println("Profile updated for", updated.Name)
			return nil
		},
	}
	updateCmd.Flags().String("name", "", "Full name")
	updateCmd.Flags().String("phone", "", "Phone number")
	updateCmd.Flags().Int("age", 0, "Age")
	updateCmd.Flags().String("gender", "", "Gender")
	updateCmd.Flags().String("address", "", "Address")
	cmd.AddCommand(updateCmd)

	return cmd
}
