package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sereno",
	Short: "Sereno is a guided emotional support conversation engine",
	Long: `Sereno drives a session-scoped guided conversation: identify an
emotion on the wheel, explore it, and get coping strategies, one validated
command at a time.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
