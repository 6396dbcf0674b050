package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status <owner> <job-id>",
	Short: "Print the state of a sync job.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		job := fetchJob(cmd, args[0], args[1])
		fmt.Printf("job:      %s\n", job.ID)
		fmt.Printf("status:   %s\n", job.Status)
		fmt.Printf("created:  %s\n", job.CreatedAt)
		if job.FinishedAt != "" {
			fmt.Printf("finished: %s\n", job.FinishedAt)
		}
		if job.Error != "" {
			fmt.Printf("error:    %s\n", job.Error)
		}
	},
}
