package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"asv-planner/internal/admin"
	"asv-planner/internal/config"
	"asv-planner/internal/logging"
	"asv-planner/internal/sim"
)

var (
	runConfigPath string
	runSchemaPath string
	runPrintOnly  bool
	runLogFile    string
	runTUI        bool
	runAdminAddr  string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a coverage mission against the simulated vessel",
	Long:  "run starts the executive and planner against a simulated controller, covering the mission's ribbons until done.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(runConfigPath, runSchemaPath)
		if err != nil {
			return err
		}

		writer, uiWait, cleanup, err := newWriters(cfg, runPrintOnly, runLogFile, runTUI)
		if err != nil {
			return err
		}
		defer cleanup()

		log := logging.New()
		ctx, cancel := context.WithCancel(logging.NewContext(context.Background(), log))
		defer cancel()

		runner := sim.NewRunner(ctx, cfg, writer)

		if runAdminAddr != "" {
			srv := admin.NewServer(runner.Executive())
			go func() {
				log.Info("admin listening", "addr", runAdminAddr)
				if err := srv.Start(ctx, runAdminAddr); err != nil && err != http.ErrServerClosed {
					log.Error("admin server failed", "err", err)
				}
			}()
		}

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigs
			cancel()
		}()

		errCh := make(chan error, 1)
		go func() { errCh <- runner.Run(ctx) }()

		if uiWait != nil {
			// the mission keeps running underneath the UI; quitting the UI
			// ends the run
			if err := uiWait(); err != nil {
				return err
			}
			cancel()
		}
		err = <-errCh
		if err == context.Canceled {
			return nil
		}
		return err
	},
}

func init() {
	runCmd.Flags().StringVar(&runConfigPath, "config", "config/mission.yaml", "Path to mission configuration YAML")
	runCmd.Flags().StringVar(&runSchemaPath, "schema", "schemas/mission.cue", "Path to CUE schema file")
	runCmd.Flags().BoolVar(&runPrintOnly, "print-only", false, "Print telemetry to STDOUT instead of writing to DB")
	runCmd.Flags().StringVar(&runLogFile, "log-file", "", "Path to export mission telemetry logs (JSONL)")
	runCmd.Flags().BoolVar(&runTUI, "tui", false, "Render the live mission TUI")
	runCmd.Flags().StringVar(&runAdminAddr, "admin", "", "Address for the operator HTTP server (e.g. :8080)")
}
