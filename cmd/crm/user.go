package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/relaycrm/crm-system/internal/core/ports"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage staff accounts",
}

var newUser ports.RegisterUserInput

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a staff account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close(ctx)

		in := newUser
		in.Password2 = in.Password1
		u, err := a.userService().Register(ctx, in)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created user %s (id %d)\n", u.Username, u.ID)
		return nil
	},
}

func init() {
	f := userCreateCmd.Flags()
	f.StringVar(&newUser.Username, "username", "", "login name")
	f.StringVar(&newUser.Email, "email", "", "email address")
	f.StringVar(&newUser.FirstName, "first-name", "", "first name")
	f.StringVar(&newUser.LastName, "last-name", "", "last name")
	f.StringVar(&newUser.Password1, "password", "", "password, at least 8 characters")
	_ = userCreateCmd.MarkFlagRequired("username")
	_ = userCreateCmd.MarkFlagRequired("password")

	userCmd.AddCommand(userCreateCmd)
}
