package commands

import (
	"github.com/spf13/cobra"

	"github.com/dixieflatline76/ClearView/config"
)

var env config.Env

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "clearview",
		Short: "Remove watermarks from images with Gemini",
		Long:  "ClearView removes watermarks, text overlays and logos from images and lets you compare the result with the original.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			env = config.LoadEnv()
		},
		RunE:          runGUI,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(guiCmd(), cleanCmd(), versionCmd())
	return root
}
