package cmd

import (
	"fmt"

	"booktracker/feature/account"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var passwordFlag string

// userCmd groups user administration commands
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

// userCreateCmd represents the user create command
var userCreateCmd = &cobra.Command{
	Use:   "create <username>",
	Short: "Create a user and print its API token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logg, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer logg.Sync()

		session, err := account.NewService(db, logg).CreateUser(cmd.Context(), args[0], passwordFlag)
		if err != nil {
			return err
		}
		logg.Info("User created", zap.Uint("id", session.User.ID), zap.String("username", session.User.Username))
		fmt.Fprintln(cmd.OutOrStdout(), session.Token)
		return nil
	},
}

// userDeleteCmd represents the user delete command
var userDeleteCmd = &cobra.Command{
	Use:   "delete <username>",
	Short: "Delete a user with all of its books, series and tokens",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logg, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer logg.Sync()

		user, err := account.NewService(db, logg).DeleteUser(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		logg.Info("User deleted", zap.Uint("id", user.ID), zap.String("username", user.Username))
		return nil
	},
}

func init() {
	userCreateCmd.Flags().StringVarP(&passwordFlag, "password", "p", "", "Password of the new user")
	_ = userCreateCmd.MarkFlagRequired("password")

	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userDeleteCmd)
	RootCmd.AddCommand(userCmd)
}
