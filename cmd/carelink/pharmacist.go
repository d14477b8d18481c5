package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carelink/carelink/internal/domain/pharmacy"
	"github.com/carelink/carelink/internal/session"
	"github.com/carelink/carelink/internal/shell"
)

func pharmacistShell() *shell.Shell {
	return &shell.Shell{
		Role:  session.RolePharmacist,
		Title: "Pharmacy Dashboard",
		NavItems: []shell.NavItem{
			{Name: "products", Description: "Inventory summary"},
		},
	}
}

func pharmacistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pharmacist",
		Short: "Pharmacist section",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "products",
		Short: "List the inventory summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if _, err := a.gate(cmd.Context(), pharmacistShell()); err != nil {
				return err
			}
			list, err := pharmacy.NewClient(a.api).ListProducts(cmd.Context())
			if err != nil {
				return err
			}
			renderProducts(list)

			low := 0
			for _, p := range list {
				if p.LowStock() {
					low++
				}
			}
			if low > 0 {
				fmt.Printf("%d product(s) are low on stock.\n", low)
			}
			return nil
		},
	})

	return cmd
}
