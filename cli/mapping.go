package cli

import (
	"fmt"

	"github.com/mobile-next/touchgestures/config"
	"github.com/spf13/cobra"
)

var mappingCmd = &cobra.Command{
	Use:   "mapping",
	Short: "Show the gesture to action mapping",
	Long:  `Loads the settings file (or the built-in defaults) and prints every mapped gesture as JSON.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		printJson(map[string]interface{}{
			"two_finger_zoom": cfg.TwoFingerZoom,
			"resolver_cache":  cfg.ResolverCache,
			"mapping":         cfg.Entries(),
		})
		return nil
	},
}

var mappingDefaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the built-in settings file",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Print(config.DefaultMapping)
	},
}

func init() {
	rootCmd.AddCommand(mappingCmd)
	mappingCmd.AddCommand(mappingDefaultsCmd)
}
