package main

import (
	"fmt"
	"os"

	"salonsync-backend/cmd/salonsync-cli/cmd"
)

func main() {
	baseUrl, ok := os.LookupEnv("SALONSYNC_BASE_URL")
	if !ok {
		fmt.Println("You should specify the base url of the salonsync daemon in the environment variable SALONSYNC_BASE_URL.")
		os.Exit(1)
	}
	cmd.BaseUrl = baseUrl
	cmd.AccessToken = os.Getenv("SALONSYNC_ACCESS_TOKEN")

	cmd.Execute()
}
