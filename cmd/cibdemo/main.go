// Command cibdemo runs the daily-routine worked example: two flow-graph
// services and an indexed-dispatch notification center, composed through
// internal/nexus from a TOML project-argument file.
//
// Optional environment variables (see internal/cibproject.Load):
//
//	CIBDEMO_CONFIG                 - path to the project args TOML file
//	CIBDEMO_PERSON_NAME            - overrides person.name
//	CIBDEMO_WORK_WEEKDAY            - overrides person.work_weekday ("true"/"1")
//	CIBDEMO_NOTIFICATIONS_ENABLED  - overrides notifications.enabled
//	CIBDEMO_NOTIFICATIONS_PRIORITY - overrides notifications.priority
//	CIBDEMO_LOG_LEVEL              - debug, info, warn, error (default: info)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "cibdemo: %v\n", err)
		os.Exit(1)
	}
}

var configFlag string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cibdemo",
		Short:         "Run the cib daily-routine worked example",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configFlag, "config", "", "path to the project args TOML file (env: CIBDEMO_CONFIG)")

	root.AddCommand(newRunCmd())
	root.AddCommand(newGraphCmd())
	root.AddCommand(newDescribeCmd())
	return root
}
