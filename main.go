package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"vpscale/config"
	"vpscale/export"
	"vpscale/scale"
	"vpscale/server"
	"vpscale/ui"
	"vpscale/watch"
)

var (
	version = "0.3.0"

	configFlag  string
	verboseFlag bool

	rootCmd = &cobra.Command{
		Use:     "vpscale",
		Short:   "vpscale - scale design values across viewport breakpoints.",
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verboseFlag {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(
				tint.NewHandler(os.Stderr, &tint.Options{
					Level:      level,
					TimeFormat: "15:04:05",
				}),
			))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := loadEngine()
			if err != nil {
				return err
			}
			return ui.RunPreview(engine, export.DefaultSamples())
		},
	}

	scaleCmd = &cobra.Command{
		Use:   "scale <value>",
		Short: "Scale a value for one breakpoint, or print a table for all of them",
		Args:  cobra.ExactArgs(1),
		RunE:  runScale,
	}

	previewCmd = &cobra.Command{
		Use:   "preview",
		Short: "Interactively preview every token across breakpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := loadEngine()
			if err != nil {
				return err
			}
			return ui.RunPreview(engine, export.DefaultSamples())
		},
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the scaling engine over HTTP",
		RunE:  runServe,
	}

	exportCmd = &cobra.Command{
		Use:   "export",
		Short: "Export scaled tokens as CSS custom properties or an SVG chart",
		RunE:  runExport,
	}

	initCmd = &cobra.Command{
		Use:   "init",
		Short: "Create a config file, interactively or from the defaults",
		RunE:  runInit,
	}

	debugCmd = &cobra.Command{
		Use:   "debug",
		Short: "Print the resolved config path and effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configFlag
			if path == "" {
				var err error
				if path, err = config.DefaultPath(); err != nil {
					return err
				}
			}
			cfg, err := config.Load(configFlag)
			if err != nil {
				return err
			}
			data, _ := json.MarshalIndent(config.FromScale(cfg), "", "  ")
			fmt.Printf("Config: %s\n%s\n", path, data)
			return nil
		},
	}
)

// Flags for scale
var (
	breakpointFlag  string
	tokenFlag       string
	scaleOverride   float64
	minOverride     float64
	maxOverride     float64
	stepOverride    float64
	bypassCacheFlag bool
	jsonFlag        bool
)

// Flags for serve
var (
	addrFlag  string
	watchFlag bool
)

// Flags for export
var (
	formatFlag string
	outFlag    string
	sampleFlag float64
)

// Flags for init
var defaultsFlag bool

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "config file (default ~/.vpscale/vpscale.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "debug logging")

	scaleCmd.Flags().StringVarP(&breakpointFlag, "breakpoint", "b", "", "target breakpoint name or alias (empty scales for all)")
	scaleCmd.Flags().StringVarP(&tokenFlag, "token", "t", "", "token rule to apply")
	scaleCmd.Flags().Float64Var(&scaleOverride, "scale", 0, "override the token scale factor")
	scaleCmd.Flags().Float64Var(&minOverride, "min", 0, "override the token minimum")
	scaleCmd.Flags().Float64Var(&maxOverride, "max", 0, "override the token maximum")
	scaleCmd.Flags().Float64Var(&stepOverride, "step", 0, "override the token step")
	scaleCmd.Flags().BoolVar(&bypassCacheFlag, "bypass-cache", false, "skip the result cache")
	scaleCmd.Flags().BoolVar(&jsonFlag, "json", false, "JSON output")

	serveCmd.Flags().StringVar(&addrFlag, "addr", ":8080", "listen address")
	serveCmd.Flags().BoolVar(&watchFlag, "watch", false, "hot-reload the config file on change")

	exportCmd.Flags().StringVarP(&formatFlag, "format", "f", "css", "output format: css or svg")
	exportCmd.Flags().StringVarP(&outFlag, "out", "o", "", "output file (default stdout)")
	exportCmd.Flags().StringVarP(&tokenFlag, "token", "t", "fontSize", "token to chart (svg only)")
	exportCmd.Flags().Float64Var(&sampleFlag, "value", 16, "sample value to chart (svg only)")

	initCmd.Flags().BoolVar(&defaultsFlag, "defaults", false, "write the default config without prompting")

	rootCmd.AddCommand(scaleCmd, previewCmd, serveCmd, exportCmd, initCmd, debugCmd)
}

// loadEngine builds an engine from the configured (or default) config file.
func loadEngine() (*scale.Engine, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, err
	}
	return scale.New(cfg, scale.WithLogger(slog.Default()))
}

func runScale(cmd *cobra.Command, args []string) error {
	value, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid value %q: %w", args[0], err)
	}

	engine, err := loadEngine()
	if err != nil {
		return err
	}

	opts := scale.Options{
		Token:       tokenFlag,
		BypassCache: bypassCacheFlag,
	}
	if cmd.Flags().Changed("scale") {
		opts.Scale = &scaleOverride
	}
	if cmd.Flags().Changed("min") {
		opts.Min = &minOverride
	}
	if cmd.Flags().Changed("max") {
		opts.Max = &maxOverride
	}
	if cmd.Flags().Changed("step") {
		opts.Step = &stepOverride
	}

	targets := engine.Config().Breakpoints
	if breakpointFlag != "" {
		bp, ok := engine.LookupBreakpoint(breakpointFlag)
		if !ok {
			return fmt.Errorf("unknown breakpoint %q", breakpointFlag)
		}
		targets = []scale.Breakpoint{bp}
	}

	results := make([]scale.ScaledValue, 0, len(targets))
	for _, bp := range targets {
		res, err := engine.ScaleValue(value, bp, opts)
		if err != nil {
			return err
		}
		results = append(results, res)
	}

	if jsonFlag {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}
	printResultsTable(results)
	return nil
}

// printResultsTable renders results as a plain table, dropping the
// constraint column on narrow terminals.
func printResultsTable(results []scale.ScaledValue) {
	width := 100
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}
	showConstraints := ui.DetermineDisplayMode(width) == ui.DisplayFull

	fmt.Printf("%-12s %-10s %-12s %-12s", "breakpoint", "ratio", "original", "scaled")
	if showConstraints {
		fmt.Printf(" %s", "constraints")
	}
	fmt.Println()
	for _, res := range results {
		fmt.Printf("%-12s %-10.4g %-12g %-12g", res.Breakpoint.Name, res.Ratio, res.Original, res.Scaled)
		if showConstraints {
			fmt.Printf(" %s", constraintSummary(res.Constraints))
		}
		fmt.Println()
	}
}

func constraintSummary(c scale.Constraints) string {
	var parts []string
	if c.MinApplied {
		parts = append(parts, "min")
	}
	if c.MaxApplied {
		parts = append(parts, "max")
	}
	if c.StepApplied {
		parts = append(parts, "step")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ",")
}

func runServe(cmd *cobra.Command, args []string) error {
	engine, err := loadEngine()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if watchFlag {
		path := configFlag
		if path == "" {
			if path, err = config.DefaultPath(); err != nil {
				return err
			}
		}
		watcher, err := watch.New(engine, path, slog.Default())
		if err != nil {
			return err
		}
		defer watcher.Close()
		go func() {
			if err := watcher.Start(ctx); err != nil && ctx.Err() == nil {
				slog.Error("config watcher stopped", "error", err)
			}
		}()
	}

	return server.New(engine, slog.Default()).ListenAndServe(ctx, addrFlag)
}

func runExport(cmd *cobra.Command, args []string) error {
	engine, err := loadEngine()
	if err != nil {
		return err
	}

	out := os.Stdout
	if outFlag != "" {
		f, err := os.Create(outFlag)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch formatFlag {
	case "css":
		return export.CSS(engine, export.DefaultSamples(), out)
	case "svg":
		return export.Chart(engine, tokenFlag, sampleFlag, out)
	default:
		return fmt.Errorf("unknown export format %q (want css or svg)", formatFlag)
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	path := configFlag
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return err
		}
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config already exists at %s", path)
	}

	cfg := scale.DefaultConfig()
	if !defaultsFlag {
		var err error
		if cfg, err = configWizard(cfg); err != nil {
			return err
		}
	}

	if err := config.Save(cfg, path); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

// configWizard walks through the strategy choices on top of the default
// breakpoints and tokens.
func configWizard(cfg scale.Config) (scale.Config, error) {
	origin := string(cfg.Strategy.Origin)
	mode := string(cfg.Strategy.Mode)
	base := cfg.Base.Name
	caching := cfg.Strategy.Performance.CacheEnabled

	baseOptions := make([]huh.Option[string], len(cfg.Breakpoints))
	for i, bp := range cfg.Breakpoints {
		baseOptions[i] = huh.NewOption(fmt.Sprintf("%s (%gx%g)", bp.Name, bp.Width, bp.Height), bp.Name)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Base breakpoint").
				Description("The reference viewport all ratios are computed against.").
				Options(baseOptions...).
				Value(&base),
			huh.NewSelect[string]().
				Title("Scaling origin").
				Options(
					huh.NewOption("width", "width"),
					huh.NewOption("height", "height"),
					huh.NewOption("min", "min"),
					huh.NewOption("max", "max"),
					huh.NewOption("diagonal", "diagonal"),
					huh.NewOption("area", "area"),
				).
				Value(&origin),
			huh.NewSelect[string]().
				Title("Scaling mode").
				Options(
					huh.NewOption("fluid", "fluid"),
					huh.NewOption("stepped", "stepped"),
					huh.NewOption("adaptive", "adaptive"),
				).
				Value(&mode),
			huh.NewConfirm().
				Title("Enable result caching?").
				Value(&caching),
		),
	)
	if err := form.Run(); err != nil {
		return scale.Config{}, err
	}

	for _, bp := range cfg.Breakpoints {
		if bp.Name == base {
			cfg.Base = bp
			break
		}
	}
	cfg.Strategy.Origin = scale.Origin(origin)
	cfg.Strategy.Mode = scale.Mode(mode)
	cfg.Strategy.Performance.CacheEnabled = caching
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
