package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var syncWait bool

func init() {
	syncCmd.Flags().BoolVarP(&syncWait, "wait", "w", false, "poll until the sync run finishes")
	rootCmd.AddCommand(syncCmd)
}

type jobStatus struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
	FinishedAt string `json:"finished_at"`
	Error      string `json:"error"`
}

var syncCmd = &cobra.Command{
	Use:   "sync <owner> <reservations|menus|staff|coupons>",
	Short: "Trigger a sync run for one owner and data kind.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		owner, kind := args[0], args[1]

		res, err := client.R().
			SetContext(cmd.Context()).
			Post(fmt.Sprintf("/api/v1/owners/%s/sync/%s", owner, kind))
		if err != nil || res.IsError() {
			fail(res, err)
		}

		var body struct {
			JobID string `json:"job_id"`
		}
		if err := json.Unmarshal(res.Body(), &body); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("started job %s\n", body.JobID)

		if !syncWait {
			return
		}
		for {
			job := fetchJob(cmd, owner, body.JobID)
			if job.Status != "running" {
				fmt.Printf("job %s finished: %s\n", job.ID, job.Status)
				if job.Error != "" {
					fmt.Fprintln(os.Stderr, job.Error)
					os.Exit(1)
				}
				return
			}
			time.Sleep(time.Second)
		}
	},
}

func fetchJob(cmd *cobra.Command, owner, id string) jobStatus {
	res, err := client.R().
		SetContext(cmd.Context()).
		Get(fmt.Sprintf("/api/v1/owners/%s/jobs/%s", owner, id))
	if err != nil || res.IsError() {
		fail(res, err)
	}

	var job jobStatus
	if err := json.Unmarshal(res.Body(), &job); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	return job
}
