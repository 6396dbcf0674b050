package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var pushFlags struct {
	staff    string
	start    string
	end      string
	customer string
	kana     string
	phone    string
	memo     string
}

func init() {
	pushCmd.Flags().StringVar(&pushFlags.staff, "staff", "", "staff member name as shown on the portal roster")
	pushCmd.Flags().StringVar(&pushFlags.start, "start", "", "reservation start, RFC3339")
	pushCmd.Flags().StringVar(&pushFlags.end, "end", "", "reservation end, RFC3339")
	pushCmd.Flags().StringVar(&pushFlags.customer, "customer", "", "customer name")
	pushCmd.Flags().StringVar(&pushFlags.kana, "kana", "", "customer name reading")
	pushCmd.Flags().StringVar(&pushFlags.phone, "phone", "", "customer phone number")
	pushCmd.Flags().StringVar(&pushFlags.memo, "memo", "", "free-form note for the salon")
	pushCmd.MarkFlagRequired("staff")
	pushCmd.MarkFlagRequired("start")
	pushCmd.MarkFlagRequired("end")
	rootCmd.AddCommand(pushCmd)
}

var pushCmd = &cobra.Command{
	Use:   "push <owner> <local-ref>",
	Short: "Push one locally created reservation into the portal's booking form.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		owner, localRef := args[0], args[1]

		res, err := client.R().
			SetContext(cmd.Context()).
			SetBody(map[string]string{
				"staff_name":    pushFlags.staff,
				"start":         pushFlags.start,
				"end":           pushFlags.end,
				"customer_name": pushFlags.customer,
				"customer_kana": pushFlags.kana,
				"phone":         pushFlags.phone,
				"memo":          pushFlags.memo,
			}).
			Post(fmt.Sprintf("/api/v1/owners/%s/reservations/%s/push", owner, localRef))
		if err != nil || res.IsError() {
			fail(res, err)
		}

		var body struct {
			PortalID string `json:"portal_id"`
			Status   string `json:"status"`
		}
		if err := json.Unmarshal(res.Body(), &body); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("%s: portal reservation %s\n", body.Status, body.PortalID)
	},
}
