package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Coyote-git/Better-keyboard/pkg/freq"
	"github.com/Coyote-git/Better-keyboard/pkg/geometry"
	"github.com/Coyote-git/Better-keyboard/pkg/result"
	"github.com/Coyote-git/Better-keyboard/pkg/search"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "keybopt",
		Short: "Circular keyboard layout optimizer for swipe typing",
	}

	// optimize command
	var (
		runs       int
		iterations int
		inner      int
		outer      int
		rInner     float64
		rOuter     float64
		cooling    float64
		centerW    float64
		ergoW      float64
		seed       uint64
		workers    int
		timeout    time.Duration
		output     string
		plotPath   string
		noGaps     bool
		verbose    bool
	)

	optimizeCmd := &cobra.Command{
		Use:   "optimize",
		Short: "Run simulated annealing and export the best layout",
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelInfo
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			gcfg := geometry.Config{
				NInner:      inner,
				NOuter:      outer,
				RInner:      rInner,
				ROuter:      rOuter,
				GapAngles:   []float64{180, 0},
				GapWidthDeg: 36,
			}
			if noGaps {
				gcfg.GapAngles = nil
				gcfg.GapWidthDeg = 0
			}

			tables := freq.English()
			cfg := search.DefaultConfig()
			cfg.Geometry = gcfg
			cfg.Tables = tables
			cfg.Weights.Center = centerW
			cfg.Weights.Ergo = ergoW
			cfg.Runs = runs
			cfg.Iterations = iterations
			cfg.Cooling = cooling
			cfg.Seed = seed
			cfg.Workers = workers
			cfg.Timeout = timeout
			cfg.Logger = logger.With(slog.String("component", "search"))

			if err := cfg.Validate(); err != nil {
				return err
			}

			fmt.Printf("Circular Keyboard Layout Optimizer\n")
			fmt.Printf("  Inner ring: %d slots at radius %g\n", inner, rInner)
			fmt.Printf("  Outer ring: %d slots at radius %g\n", outer, rOuter)
			if !noGaps {
				fmt.Printf("  Gaps: %v (%g° each)\n", gcfg.GapAngles, gcfg.GapWidthDeg)
			}
			fmt.Printf("  Iterations per run: %d\n", iterations)
			fmt.Printf("  Number of runs: %d\n", runs)
			fmt.Println()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			start := time.Now()
			res, err := search.Run(ctx, cfg)
			if err != nil {
				return err
			}
			fmt.Printf("Total time: %s\n\n", time.Since(start).Round(time.Second))

			printReport(res, tables)

			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				if err := result.WriteJSON(f, res); err != nil {
					return err
				}
				fmt.Printf("Layout data exported to %s\n", output)
			}

			if plotPath != "" {
				lay := result.ToLayoutJSON(res)
				if err := result.SaveLayoutPlot(plotPath, lay, tables); err != nil {
					return err
				}
				histPath := historyPath(plotPath)
				if err := result.SaveHistoryPlot(histPath, res.History); err != nil {
					return err
				}
				fmt.Printf("Plots written to %s and %s\n", plotPath, histPath)
			}
			return nil
		},
	}
	optimizeCmd.Flags().IntVar(&runs, "runs", search.DefaultRuns, "Number of annealing runs")
	optimizeCmd.Flags().IntVar(&iterations, "iterations", 500_000, "Iterations per run")
	optimizeCmd.Flags().IntVar(&inner, "inner", 8, "Slots on inner ring")
	optimizeCmd.Flags().IntVar(&outer, "outer", 18, "Slots on outer ring")
	optimizeCmd.Flags().Float64Var(&rInner, "r-inner", 1.0, "Inner ring radius")
	optimizeCmd.Flags().Float64Var(&rOuter, "r-outer", 2.2, "Outer ring radius")
	optimizeCmd.Flags().Float64Var(&cooling, "cooling", 0.9995, "Cooling factor per iteration, in (0,1)")
	optimizeCmd.Flags().Float64Var(&centerW, "center-weight", 8.0, "Weight of the center-distance term")
	optimizeCmd.Flags().Float64Var(&ergoW, "ergo-weight", 2.0, "Weight of the reach-cost term")
	optimizeCmd.Flags().Uint64Var(&seed, "seed", 0, "Root random seed (0 = random)")
	optimizeCmd.Flags().IntVar(&workers, "workers", 1, "Runs to execute in parallel")
	optimizeCmd.Flags().DurationVar(&timeout, "timeout", 0, "Wall-clock limit for the whole batch (0 = none)")
	optimizeCmd.Flags().StringVar(&output, "output", "layout.json", "Output JSON file path (empty = skip)")
	optimizeCmd.Flags().StringVar(&plotPath, "plot", "", "Layout PNG path (also writes *_history.png)")
	optimizeCmd.Flags().BoolVar(&noGaps, "no-gaps", false, "Use full 360° rings (no gaps)")
	optimizeCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	// render command
	var renderOut string

	renderCmd := &cobra.Command{
		Use:   "render [layout.json]",
		Short: "Render a previously exported layout to PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			lay, err := result.ReadJSON(f)
			if err != nil {
				return err
			}
			if err := result.SaveLayoutPlot(renderOut, lay, freq.English()); err != nil {
				return err
			}
			fmt.Printf("Written to %s\n", renderOut)
			return nil
		},
	}
	renderCmd.Flags().StringVar(&renderOut, "output", "layout.png", "Output image path")

	// export command
	exportCmd := &cobra.Command{
		Use:   "export [layout.json]",
		Short: "Print a layout's ring arrays for copy-paste into the keyboard app",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			lay, err := result.ReadJSON(f)
			if err != nil {
				return err
			}

			var innerL, outerL []string
			for _, s := range lay.Slots {
				if s.Ring == geometry.RingInner.String() {
					innerL = append(innerL, fmt.Sprintf("%q", s.Letter))
				} else {
					outerL = append(outerL, fmt.Sprintf("%q", s.Letter))
				}
			}
			fmt.Printf("let innerRing = [%s]\n", strings.Join(innerL, ", "))
			fmt.Printf("let outerRing = [%s]\n", strings.Join(outerL, ", "))
			return nil
		},
	}

	rootCmd.AddCommand(optimizeCmd, renderCmd, exportCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// historyPath derives the energy-history image path from the layout image
// path: layout.png -> layout_history.png.
func historyPath(plotPath string) string {
	ext := ".png"
	if i := strings.LastIndex(plotPath, "."); i > 0 {
		ext = plotPath[i:]
		plotPath = plotPath[:i]
	}
	return plotPath + "_history" + ext
}
