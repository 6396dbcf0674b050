package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var synclogLimit int

func init() {
	synclogCmd.Flags().IntVarP(&synclogLimit, "limit", "n", 20, "number of runs to show")
	rootCmd.AddCommand(synclogCmd)
}

var synclogCmd = &cobra.Command{
	Use:   "synclog <owner>",
	Short: "Show the most recent sync runs for an owner, newest first.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		res, err := client.R().
			SetContext(cmd.Context()).
			SetQueryParam("limit", fmt.Sprint(synclogLimit)).
			Get(fmt.Sprintf("/api/v1/owners/%s/synclog", args[0]))
		if err != nil || res.IsError() {
			fail(res, err)
		}

		var entries []struct {
			Kind        string `json:"kind"`
			Status      string `json:"status"`
			StartedAt   string `json:"started_at"`
			FinishedAt  string `json:"finished_at"`
			ContentHash string `json:"content_hash"`
			Fetched     int64  `json:"fetched"`
			Inserted    int64  `json:"inserted"`
			Updated     int64  `json:"updated"`
			Deactivated int64  `json:"deactivated"`
			Error       string `json:"error"`
		}
		if err := json.Unmarshal(res.Body(), &entries); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Started", "Kind", "Status", "Hash", "Fetch", "Ins", "Upd", "Deact", "Error"})
		for _, e := range entries {
			hash := e.ContentHash
			if len(hash) > 8 {
				hash = hash[:8]
			}
			t.AppendRow(table.Row{
				e.StartedAt, e.Kind, e.Status, hash,
				e.Fetched, e.Inserted, e.Updated, e.Deactivated, e.Error,
			})
		}
		t.Render()
	},
}
