package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"connectors/internal/config"
	"connectors/internal/game"
	"connectors/internal/report"

	"github.com/spf13/cobra"
)

const defaultConfigPath = "connectors.yaml"

var (
	configFile string

	// run
	watch        bool
	snapshotFile string

	// simulate
	frames     int
	dt         float32
	clickEvery int
	orbit      float32
	outFile    string
)

// main registers the commands and exits with status 1 if the chosen one
// fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "connectors",
		Short:        "glass connectors that follow the pointer",
		SilenceUsage: true,
		RunE:         runScene,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml), defaults to "+defaultConfigPath+" when present")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "open the scene in a window",
		Args:  cobra.NoArgs,
		RunE:  runScene,
	}
	for _, cmd := range []*cobra.Command{rootCmd, runCmd} {
		cmd.Flags().BoolVar(&watch, "watch", false, "reload the config file when it changes")
		cmd.Flags().StringVar(&snapshotFile, "snapshot", "", "restore a saved snapshot before the first frame")
	}

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "run the scene headless and report how it settles",
		Args:  cobra.NoArgs,
		RunE:  runSimulate,
	}
	defaults := report.DefaultOptions()
	simulateCmd.Flags().IntVar(&frames, "frames", defaults.Frames, "number of frames")
	simulateCmd.Flags().Float32Var(&dt, "dt", defaults.Delta, "frame delta in seconds")
	simulateCmd.Flags().IntVar(&clickEvery, "click-every", defaults.ClickEvery, "click every N frames (0 never)")
	simulateCmd.Flags().Float32Var(&orbit, "orbit", defaults.Orbit, "pointer circle radius in device coordinates")
	simulateCmd.Flags().StringVar(&outFile, "out", "", "write per-frame samples as csv")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage the config file",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default config",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(runCmd, simulateCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads --config, or the default file if it exists, or falls
// back to the built-in defaults. The returned path is absolute, or empty
// when no file is in use.
func loadConfig() (*config.Config, string, error) {
	path := configFile
	if path == "" {
		if _, err := os.Stat(defaultConfigPath); err != nil {
			return config.Default(), "", nil
		}
		path = defaultConfigPath
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, "", err
	}
	cfg, err := config.Load(abs)
	if err != nil {
		return nil, "", err
	}
	return cfg, abs, nil
}

// chdirToExecutable moves to the binary's directory so assets/ resolves for
// deployed builds. Skipped for "go run", which builds into a temp directory.
func chdirToExecutable() {
	execPath, err := os.Executable()
	if err != nil {
		return
	}
	execDir := filepath.Dir(execPath)
	if strings.Contains(execDir, "go-build") {
		return
	}
	if _, err := os.Stat(filepath.Join(execDir, "assets")); err != nil {
		return
	}
	os.Chdir(execDir)
}

func runScene(cmd *cobra.Command, args []string) error {
	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}
	if snapshotFile != "" {
		if snapshotFile, err = filepath.Abs(snapshotFile); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g := game.New(cfg)
	if watch {
		if path == "" {
			return errors.New("--watch needs a config file")
		}
		updates, err := config.Watch(ctx, path)
		if err != nil {
			return err
		}
		g.Updates = updates
		log.Printf("Config: watching %s", path)
	}

	chdirToExecutable()
	return g.Run(ctx, snapshotFile)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	res, err := report.Simulate(cfg, report.Options{
		Frames:     frames,
		Delta:      dt,
		ClickEvery: clickEvery,
		Orbit:      orbit,
	})
	if err != nil {
		return err
	}

	fmt.Println(res.Plot(80, 12))
	fmt.Println()
	fmt.Println(res.Summary())

	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return fmt.Errorf("create %s: %w", outFile, err)
		}
		defer f.Close()
		if err := res.WriteCSV(f); err != nil {
			return fmt.Errorf("write %s: %w", outFile, err)
		}
	}
	return nil
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := defaultConfigPath
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := config.Save(path, config.Default()); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
