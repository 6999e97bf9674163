package cli

import (
	"fmt"
	"path/filepath"

	"github.com/mobile-next/touchgestures/actions"
	"github.com/mobile-next/touchgestures/config"
	"github.com/mobile-next/touchgestures/daemon"
	"github.com/mobile-next/touchgestures/engine"
	"github.com/mobile-next/touchgestures/server"
	"github.com/spf13/cobra"
)

const defaultServerAddress = "localhost:12100"

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Server management commands",
	Long:  `Commands for managing the gesture server.`,
}

var serverStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the gesture server",
	Long:  `Starts a JSON-RPC server that accepts raw events over HTTP and WebSocket and pushes dispatched actions to WebSocket subscribers.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		listenAddr := cmd.Flag("listen").Value.String()
		if listenAddr == "" {
			listenAddr = defaultServerAddress
		}

		// GetBool cannot fail for defined flags
		enableCORS, _ := cmd.Flags().GetBool("cors")
		isDaemon, _ := cmd.Flags().GetBool("daemon")

		// the daemon child runs from "/"
		settings := configPath
		if settings != "" {
			abs, err := filepath.Abs(settings)
			if err != nil {
				return fmt.Errorf("failed to resolve %s: %w", settings, err)
			}
			settings = abs
		}

		cfg, err := config.Load(settings)
		if err != nil {
			return err
		}

		if isDaemon && !daemon.IsChild() {
			_, err := daemon.Daemonize(daemon.Options{PidFile: pidFile, LogFile: logFile})
			if err != nil {
				return fmt.Errorf("failed to start daemon: %w", err)
			}

			fmt.Printf("Server daemon spawned, attempting to listen on %s\n", listenAddr)
			return nil
		}

		hub := server.NewHub()
		executor := actions.MultiExecutor{actions.LogExecutor{}, hub}
		eng, err := engine.New(cfg, executor, actions.StaticWindows{Maximized: assumeMaximized})
		if err != nil {
			return err
		}

		return server.New(eng, hub).ListenAndServe(listenAddr, enableCORS)
	},
}

var serverKillCmd = &cobra.Command{
	Use:   "kill",
	Short: "Stop the daemonized gesture server",
	Long:  `Connects to the server and sends a shutdown command via JSON-RPC.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// GetString cannot fail for defined flags
		addr, _ := cmd.Flags().GetString("listen")
		if addr == "" {
			addr = defaultServerAddress
		}

		err := daemon.KillServer(addr)
		if err != nil {
			return err
		}

		fmt.Printf("Server shutdown command sent successfully\n")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	// add server subcommands
	serverCmd.AddCommand(serverStartCmd)
	serverCmd.AddCommand(serverKillCmd)

	// server start flags
	serverStartCmd.Flags().String("listen", "", fmt.Sprintf("Address to listen on (default: %s)", defaultServerAddress))
	serverStartCmd.Flags().Bool("cors", false, "Enable CORS support")
	serverStartCmd.Flags().BoolP("daemon", "d", false, "Run server in daemon mode (background)")
	serverStartCmd.Flags().BoolVar(&assumeMaximized, "maximized", false, "report the active window as maximized")
	serverStartCmd.Flags().StringVar(&pidFile, "pid-file", "", "pid file for daemon mode")
	serverStartCmd.Flags().StringVar(&logFile, "log-file", "", "log file for daemon mode")

	// server kill flags
	serverKillCmd.Flags().String("listen", "", fmt.Sprintf("Address of server to kill (default: %s)", defaultServerAddress))
}
