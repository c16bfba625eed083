package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the clipforge version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("clipforge %s\n", version)
	},
}
