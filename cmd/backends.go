package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	backendsStrict    bool
	backendsRemoteURL string
)

var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List available backends",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := buildRegistry(backendsStrict, backendsRemoteURL)
		for _, id := range registry.List() {
			fmt.Println(id)
		}
		return nil
	},
}

func init() {
	backendsCmd.Flags().BoolVar(&backendsStrict, "strict-backend", false, "Fail on unknown backend instead of falling back to the local simulator")
	backendsCmd.Flags().StringVar(&backendsRemoteURL, "remote-url", "", "Base URL of a remote evaluation service")

	rootCmd.AddCommand(backendsCmd)
}
