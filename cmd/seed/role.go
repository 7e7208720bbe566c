package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dealexpress/dealexpress-api/internal/domain/entity"
)

func init() {
	RootCmd.AddCommand(&RoleCommand)
}

// RoleCommand sets the role of the user registered under an email.
var RoleCommand = cobra.Command{
	Use:   "role <email> <user|moderator|admin>",
	Short: "Assign a role to a user",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		role := entity.Role(args[1])
		if !role.Valid() {
			return fmt.Errorf("unknown role %q", args[1])
		}
		u, err := repos.Users.GetByEmail(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("lookup %s: %w", args[0], err)
		}
		if err := repos.Users.UpdateRole(cmd.Context(), u.ID, role); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", u.Email, role)
		return nil
	},
}
