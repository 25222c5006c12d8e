package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/repoworks/nucsim/internal/config"
	"github.com/repoworks/nucsim/internal/metrics"
	"github.com/repoworks/nucsim/internal/nuclide"
	"github.com/repoworks/nucsim/internal/sim"
	"github.com/repoworks/nucsim/internal/storage"
	"github.com/repoworks/nucsim/internal/tui"
)

var (
	configPath string
	preset     string
	duration   int
	dataDir    string
	exportPath string
	plot       bool
	verbose    bool
	interval   int
)

func loadScenario() (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configPath != "":
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q (have %v)", preset, config.ListPresets())
		}
	default:
		cfg = config.DefaultConfig()
	}
	if duration > 0 {
		cfg.Duration = duration
	}
	return cfg, nil
}

func buildSimulator(cfg *config.Config) (*sim.Simulator, error) {
	s, err := sim.FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	s.AddMetric(metrics.NewCumulativeRelease())
	s.AddMetric(metrics.NewPeakRelease())
	s.AddMetric(metrics.NewMassBalance())
	return s, nil
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a scenario and report the release curve",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadScenario()
			if err != nil {
				return err
			}
			s, err := buildSimulator(cfg)
			if err != nil {
				return err
			}

			result, err := s.Run(context.Background(), sim.Config{Duration: cfg.Duration})
			if err != nil {
				return err
			}

			printSummary(cfg, result)

			if plot && len(result.Released) > 1 {
				fmt.Println()
				fmt.Println(asciigraph.Plot(result.Released,
					asciigraph.Height(10), asciigraph.Width(60),
					asciigraph.Caption("cumulative release [kg]")))
			}

			if dataDir != "" {
				store := storage.New(dataDir)
				if err := store.Init(); err != nil {
					return err
				}
				runID, err := store.Save(cfg.Name, cfg.Duration, result)
				if err != nil {
					return err
				}
				fmt.Printf("\nsaved run %s\n", runID)
			}
			if exportPath != "" {
				if err := storage.ExportJSON(exportPath, cfg.Name, result); err != nil {
					return err
				}
				fmt.Printf("exported %s\n", exportPath)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&plot, "plot", true, "plot the release curve")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "directory to persist the run in")
	cmd.Flags().StringVar(&exportPath, "export", "", "write the full run to a JSON file")
	return cmd
}

func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run a scenario with a live terminal view",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadScenario()
			if err != nil {
				return err
			}
			s, err := buildSimulator(cfg)
			if err != nil {
				return err
			}
			m := tui.NewModel(s, cfg.Duration, time.Duration(interval)*time.Millisecond)
			_, err = tea.NewProgram(m).Run()
			return err
		},
	}
	cmd.Flags().IntVar(&interval, "interval", 150, "milliseconds between steps")
	return cmd
}

func modelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the available transport models and presets",
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "MODEL\tDESCRIPTION")
			fmt.Fprintln(w, "degrate\tfractional release per time step")
			fmt.Fprintln(w, "mixedcell\tinstantaneous homogeneous mixing")
			fmt.Fprintln(w, "onedimppm\t1-D semi-infinite advective-dispersive closed form")
			w.Flush()
			fmt.Printf("\npresets: %v\n", config.ListPresets())
			fmt.Printf("registered: %v\n", nuclide.ModelNames())
		},
	}
}

func printSummary(cfg *config.Config, result *sim.Result) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "scenario\t%s\n", cfg.Name)
	fmt.Fprintf(w, "steps\t%d\n", len(result.Times))
	if last := len(result.Times) - 1; last >= 0 {
		for i, name := range result.Names {
			fmt.Fprintf(w, "%s contained\t%.4f kg\n", name, result.Contained[last][i])
		}
	}
	for name, v := range result.Metrics {
		fmt.Fprintf(w, "%s\t%.6g\n", name, v)
	}
	w.Flush()
}

func main() {
	root := &cobra.Command{
		Use:   "nucsim",
		Short: "Contaminant transport through a generic waste repository",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(log.DebugLevel)
			} else {
				log.SetLevel(log.WarnLevel)
			}
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "scenario YAML file")
	root.PersistentFlags().StringVarP(&preset, "preset", "p", "", "named preset scenario")
	root.PersistentFlags().IntVarP(&duration, "duration", "d", 0, "override scenario duration (steps)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(runCmd(), watchCmd(), modelsCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
