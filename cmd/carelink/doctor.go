package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carelink/carelink/internal/api"
	"github.com/carelink/carelink/internal/domain/appointments"
	"github.com/carelink/carelink/internal/domain/doctors"
	"github.com/carelink/carelink/internal/domain/tips"
	"github.com/carelink/carelink/internal/session"
	"github.com/carelink/carelink/internal/shell"
)

func doctorShell(client *api.Client) *shell.Shell {
	return &shell.Shell{
		Role:  session.RoleDoctor,
		Title: "Doctor Dashboard",
		NavItems: []shell.NavItem{
			{Name: "profile", Description: "Your professional profile"},
			{Name: "appointments", Description: "Your schedule"},
			{Name: "tips", Description: "Your health tips"},
		},
		FetchProfile: func(ctx context.Context) (shell.Chrome, error) {
			p, err := doctors.NewClient(client).Profile(ctx)
			if err != nil {
				return shell.Chrome{}, err
			}
			chrome := shell.Chrome{Name: p.Specialty}
			if !p.IsProfileComplete {
				chrome.Badge = "profile incomplete"
			}
			return chrome, nil
		},
	}
}

func renderDoctorOwnProfile(p *doctors.Profile) {
	fmt.Printf("Specialty:     %s\n", p.Specialty)
	fmt.Printf("Experience:    %d years\n", p.Experience)
	fmt.Printf("Qualification: %s\n", p.Qualification)
	fmt.Printf("License:       %s\n", p.LicenseNumber)
	if p.Bio != "" {
		fmt.Printf("Bio:           %s\n", p.Bio)
	}
	fmt.Printf("Days:          %v\n", p.AvailableDays)
	fmt.Printf("Slots:         %v\n", p.AvailableTimeSlots)
	fmt.Printf("Fee:           %.2f\n", p.ConsultationFee)
	if p.IsProfileComplete {
		fmt.Println("Profile is complete.")
	} else {
		fmt.Println("Profile is incomplete; patients cannot book until it is filled in.")
	}
}

func doctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Doctor section",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "profile",
		Short: "Show your professional profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.gate(cmd.Context(), doctorShell(a.api)); err != nil {
				return err
			}
			p, err := doctors.NewClient(a.api).Profile(cmd.Context())
			if err != nil {
				return err
			}
			renderDoctorOwnProfile(p)
			return nil
		},
	})

	updateCmd := &cobra.Command{
		Use:   "update-profile",
		Short: "Update your professional profile",
		Long:  "Replaces the whole profile. Unset flags keep their current value.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.gate(cmd.Context(), doctorShell(a.api)); err != nil {
				return err
			}

			client := doctors.NewClient(a.api)
			current, err := client.Profile(cmd.Context())
			if err != nil {
				return err
			}

			p := *current
			if v, _ := cmd.Flags().GetString("specialty"); v != "" {
				p.Specialty = v
			}
			if v, _ := cmd.Flags().GetInt("experience"); v > 0 {
				p.Experience = v
			}
			if v, _ := cmd.Flags().GetString("qualification"); v != "" {
				p.Qualification = v
			}
			if v, _ := cmd.Flags().GetString("license"); v != "" {
				p.LicenseNumber = v
			}
			if v, _ := cmd.Flags().GetString("bio"); v != "" {
				p.Bio = v
			}
			if v, _ := cmd.Flags().GetStringSlice("days"); len(v) > 0 {
				p.AvailableDays = v
			}
			if v, _ := cmd.Flags().GetStringSlice("slots"); len(v) > 0 {
				p.AvailableTimeSlots = v
			}
			if v, _ := cmd.Flags().GetFloat64("fee"); v > 0 {
				p.ConsultationFee = v
			}

			updated, err := client.UpdateProfile(cmd.Context(), p)
			if err != nil {
				return err
			}
			renderDoctorOwnProfile(updated)
			return nil
		},
	}
	updateCmd.Flags().String("specialty", "", "Medical specialty")
	updateCmd.Flags().Int("experience", 0, "Years of experience")
	updateCmd.Flags().String("qualification", "", "Qualifications")
	updateCmd.Flags().String("license", "", "License number")
	updateCmd.Flags().String("bio", "", "Short bio")
	updateCmd.Flags().StringSlice("days", nil, "Available days (e.g. monday,wednesday)")
	updateCmd.Flags().StringSlice("slots", nil, "Available time slots (e.g. 09:00-12:00)")
	updateCmd.Flags().Float64("fee", 0, "Consultation fee")
	cmd.AddCommand(updateCmd)

	apptCmd := &cobra.Command{
		Use:   "appointments",
		Short: "List your schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.gate(cmd.Context(), doctorShell(a.api)); err != nil {
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
	apptCmd.Flags().String("status", "", "Filter by status")
	cmd.AddCommand(apptCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "tips",
		Short: "List health tips",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.gate(cmd.Context(), doctorShell(a.api)); err != nil {
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

	createTipCmd := &cobra.Command{
		Use:   "tip-create",
		Short: "Publish a health tip",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.gate(cmd.Context(), doctorShell(a.api)); err != nil {
				return err
			}
			title, _ := cmd.Flags().GetString("title")
			body, _ := cmd.Flags().GetString("body")
			tags, _ := cmd.Flags().GetStringSlice("tags")

			t, err := tips.NewClient(a.api).Create(cmd.Context(), tips.WriteRequest{Title: title, Body: body, Tags: tags})
			if err != nil {
				return err
			}
			fmt.Println("Published tip", t.ID)
			return nil
		},
	}
	createTipCmd.Flags().String("title", "", "Tip title")
	createTipCmd.Flags().String("body", "", "Tip body")
	createTipCmd.Flags().StringSlice("tags", nil, "Tags")
	cmd.AddCommand(createTipCmd)

	updateTipCmd := &cobra.Command{
		Use:   "tip-update <id>",
		Short: "Edit one of your health tips",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.gate(cmd.Context(), doctorShell(a.api)); err != nil {
				return err
			}
			client := tips.NewClient(a.api)

			current, err := client.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			req := tips.WriteRequest{Title: current.Title, Body: current.Body, Tags: current.Tags}
			if v, _ := cmd.Flags().GetString("title"); v != "" {
				req.Title = v
			}
			if v, _ := cmd.Flags().GetString("body"); v != "" {
				req.Body = v
			}
			if v, _ := cmd.Flags().GetStringSlice("tags"); len(v) > 0 {
				req.Tags = v
			}

			t, err := client.Update(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			fmt.Println("Updated tip", t.ID)
			return nil
		},
	}
	updateTipCmd.Flags().String("title", "", "Tip title")
	updateTipCmd.Flags().String("body", "", "Tip body")
	updateTipCmd.Flags().StringSlice("tags", nil, "Tags")
	cmd.AddCommand(updateTipCmd)

	return cmd
}
