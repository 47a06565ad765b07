package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of solr-cursorstream",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("solr-cursorstream %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
