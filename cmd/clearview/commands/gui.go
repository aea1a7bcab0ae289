package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dixieflatline76/ClearView/config"
	"github.com/dixieflatline76/ClearView/ui"
	"github.com/dixieflatline76/ClearView/util/log"
)

func guiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Launch the desktop app",
		Args:  cobra.NoArgs,
		RunE:  runGUI,
	}
}

func runGUI(cmd *cobra.Command, args []string) error {
	acquired, err := acquireLock()
	if err != nil {
		return fmt.Errorf("single instance check failed: %w", err)
	}
	if !acquired {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s is already running.\n", config.AppName)
		return nil
	}
	defer releaseLock()

	log.Printf("Starting %s %s", config.AppName, config.AppVersion)
	ui.GetInstance().Run()
	return nil
}
