package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dealexpress/dealexpress-api/internal/application"
	"github.com/dealexpress/dealexpress-api/internal/domain/entity"
	"github.com/dealexpress/dealexpress-api/internal/domain/repository"
)

var (
	adminEmail    string
	adminUsername string
	adminPassword string
)

func init() {
	AdminCommand.Flags().StringVar(&adminEmail, "email", "", "admin email (required)")
	AdminCommand.Flags().StringVar(&adminUsername, "username", "admin", "username used when the account is created")
	AdminCommand.Flags().StringVar(&adminPassword, "password", "", "password used when the account is created")
	_ = AdminCommand.MarkFlagRequired("email")
	RootCmd.AddCommand(&AdminCommand)
}

// AdminCommand creates an admin account, or promotes an existing one.
var AdminCommand = cobra.Command{
	Use:   "admin",
	Short: "Create or promote an administrator",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		u, err := repos.Users.GetByEmail(ctx, adminEmail)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			if adminPassword == "" {
				return errors.New("--password is required to create a new admin")
			}
			s, err := authService.Register(ctx, application.RegisterInput{
				Username: adminUsername,
				Email:    adminEmail,
				Password: adminPassword,
			})
			if err != nil {
				return err
			}
			u = s.User
		case err != nil:
			return err
		}

		if u.Role != entity.RoleAdmin {
			if err := repos.Users.UpdateRole(ctx, u.ID, entity.RoleAdmin); err != nil {
				return err
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "admin ready: id=%s email=%s\n", u.ID, u.Email)
		return nil
	},
}
