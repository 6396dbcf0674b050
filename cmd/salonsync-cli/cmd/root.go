package cmd

import (
	"fmt"
	"os"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
)

var BaseUrl string
var AccessToken string

var client *resty.Client

var rootCmd = &cobra.Command{
	Use:   "salonsync-cli",
	Short: "salonsync-cli drives the salonsync daemon: trigger portal syncs, inspect runs, push reservations.",
}

func Execute() {
	client = resty.New().SetBaseURL(BaseUrl)
	if AccessToken != "" {
		client.SetAuthToken(AccessToken)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// fail prints the API error body when there is one, because the bare
// status code rarely says what went wrong.
func fail(res *resty.Response, err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "%s: %s\n", res.Status(), res.String())
	os.Exit(1)
}
