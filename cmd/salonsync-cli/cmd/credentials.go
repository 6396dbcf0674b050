package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var credentialFlags struct {
	username string
	password string
}

func init() {
	credentialsSetCmd.Flags().StringVarP(&credentialFlags.username, "username", "u", "", "portal login id")
	credentialsSetCmd.Flags().StringVarP(&credentialFlags.password, "password", "p", "", "portal password")
	credentialsSetCmd.MarkFlagRequired("username")
	credentialsSetCmd.MarkFlagRequired("password")

	credentialsCmd.AddCommand(credentialsSetCmd)
	credentialsCmd.AddCommand(credentialsDeleteCmd)
	rootCmd.AddCommand(credentialsCmd)
}

var credentialsCmd = &cobra.Command{
	Use:   "credentials",
	Short: "Manage stored portal credentials.",
}

var credentialsSetCmd = &cobra.Command{
	Use:   "set <owner>",
	Short: "Store or replace the portal credentials for an owner.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		res, err := client.R().
			SetContext(cmd.Context()).
			SetBody(map[string]string{
				"username": credentialFlags.username,
				"password": credentialFlags.password,
			}).
			Put(fmt.Sprintf("/api/v1/owners/%s/credentials", args[0]))
		if err != nil || res.IsError() {
			fail(res, err)
		}
		fmt.Println("credentials stored")
	},
}

var credentialsDeleteCmd = &cobra.Command{
	Use:   "delete <owner>",
	Short: "Delete the stored credentials and any persisted session.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		res, err := client.R().
			SetContext(cmd.Context()).
			Delete(fmt.Sprintf("/api/v1/owners/%s/credentials", args[0]))
		if err != nil || res.IsError() {
			fail(res, err)
		}
		fmt.Println("credentials deleted")
	},
}
