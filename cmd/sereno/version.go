package main

import (
	"fmt"

	"github.com/sereno-labs/sereno"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of sereno",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sereno version %s\n", sereno.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
