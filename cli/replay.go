package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/mobile-next/touchgestures/actions"
	"github.com/mobile-next/touchgestures/config"
	"github.com/mobile-next/touchgestures/engine"
	"github.com/mobile-next/touchgestures/events"
	"github.com/mobile-next/touchgestures/utils"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay [file]",
	Short: "Replay a recorded event stream",
	Long: `Feeds a JSON-lines event capture through the recognizers and logs every action that would be dispatched.
Reads from stdin when no file is given or the file is '-'.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input := io.Reader(os.Stdin)
		if len(args) == 1 && args[0] != "-" {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open event capture: %w", err)
			}
			defer file.Close()
			input = file
		}

		return runReplay(input, configPath, assumeMaximized)
	},
}

func runReplay(input io.Reader, settings string, maximized bool) error {
	cfg, err := config.Load(settings)
	if err != nil {
		return err
	}

	eng, err := engine.New(cfg, actions.LogExecutor{}, actions.StaticWindows{Maximized: maximized})
	if err != nil {
		return err
	}

	count, err := eng.Replay(events.NewReader(input))
	if err != nil {
		return fmt.Errorf("replay stopped after %d events: %w", count, err)
	}

	utils.Info("replayed %d events", count)
	return nil
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().BoolVar(&assumeMaximized, "maximized", false, "report the active window as maximized")
}
