package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/pixtext/internal/config"
	"github.com/san-kum/pixtext/internal/export"
	"github.com/san-kum/pixtext/internal/logging"
	"github.com/san-kum/pixtext/internal/pipeline"
	"github.com/san-kum/pixtext/internal/storage"
	"github.com/san-kum/pixtext/internal/viz"
)

var (
	dataDir  string
	logLevel string

	// render, stats and view share these
	width        float64
	stretch      float64
	async        bool
	workers      int
	text         string
	glyph        string
	blank        string
	predicate    string
	threshold    float64
	interpolator string
	configFile   string
	preset       string

	save    bool
	outFile string
	jobs    int

	format   string
	fontSize float64
	theme    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "pixtext",
		Short:         "turn images into text art",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.NewText(os.Stderr, logLevel)
			if err != nil {
				return err
			}
			logging.SetLogger(logger)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".pixtext", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	renderCmd := &cobra.Command{
		Use:   "render [source]",
		Short: "render an image file, URL or data URI as text",
		Args:  cobra.ExactArgs(1),
		RunE:  renderImage,
	}
	addRenderFlags(renderCmd)
	renderCmd.Flags().BoolVar(&save, "save", false, "store the render in the data directory")
	renderCmd.Flags().StringVarP(&outFile, "out", "o", "", "write text to file instead of stdout")

	batchCmd := &cobra.Command{
		Use:   "batch [sources...]",
		Short: "render several sources concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE:  renderBatch,
	}
	addRenderFlags(batchCmd)
	batchCmd.Flags().BoolVar(&save, "save", false, "store each render in the data directory")
	batchCmd.Flags().IntVar(&jobs, "jobs", 4, "max concurrent sources (0 = unbounded)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored renders",
		RunE:  listRenders,
	}

	showCmd := &cobra.Command{
		Use:   "show [id]",
		Short: "print a stored render",
		Args:  cobra.ExactArgs(1),
		RunE:  showRender,
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [id]",
		Short: "remove a stored render",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := storage.New(dataDir).Delete(args[0]); err != nil {
				return err
			}
			fmt.Printf("deleted %s\n", args[0])
			return nil
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export [id]",
		Short: "export a stored render as json, svg, html or a profile svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRender,
	}
	exportCmd.Flags().StringVarP(&format, "format", "f", "json", "json, svg, html or profile-svg")
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	exportCmd.Flags().Float64Var(&fontSize, "font-size", 12, "svg font size")

	statsCmd := &cobra.Command{
		Use:   "stats [source]",
		Short: "render a source and print its metrics",
		Args:  cobra.ExactArgs(1),
		RunE:  statsImage,
	}
	addRenderFlags(statsCmd)

	plotCmd := &cobra.Command{
		Use:   "plot [id]",
		Short: "plot the row ink profile of a stored render",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRender,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	viewCmd := &cobra.Command{
		Use:   "view [source|id]",
		Short: "open a render in the interactive viewer",
		Args:  cobra.ExactArgs(1),
		RunE:  viewImage,
	}
	addRenderFlags(viewCmd)
	viewCmd.Flags().StringVar(&theme, "theme", "", "viewer theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	rootCmd.AddCommand(renderCmd, batchCmd, listCmd, showCmd, deleteCmd, exportCmd, statsCmd, plotCmd, presetsCmd, viewCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func addRenderFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64VarP(&width, "width", "w", 0, "output columns (0 keeps the image width)")
	f.Float64Var(&stretch, "stretch", config.DefaultStretch, "vertical stretch factor")
	f.BoolVar(&async, "async", false, "render rows concurrently")
	f.IntVar(&workers, "workers", 0, "max concurrent rows (0 = GOMAXPROCS)")
	f.StringVarP(&text, "text", "t", "", "cycle this text through ink pixels")
	f.StringVar(&glyph, "glyph", config.DefaultGlyph, "glyph for ink pixels")
	f.StringVar(&blank, "blank", config.DefaultBlank, "glyph for background pixels")
	f.StringVar(&predicate, "predicate", config.DefaultPredicate, "ink predicate ("+strings.Join(pipeline.NewRegistry().ListPredicates(), ", ")+")")
	f.Float64Var(&threshold, "threshold", config.DefaultThreshold, "luminance threshold for the dark predicate")
	f.StringVar(&interpolator, "interpolator", config.DefaultInterpolator, "resampling ("+strings.Join(pipeline.NewRegistry().ListInterpolators(), ", ")+")")
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig layers defaults, preset, config file and explicit flags,
// later layers winning.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("stretch") {
		cfg.Stretch = stretch
	}
	if flags.Changed("async") {
		cfg.Async = async
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("text") {
		cfg.Text = text
	}
	if flags.Changed("glyph") {
		cfg.Glyph = glyph
	}
	if flags.Changed("blank") {
		cfg.Blank = blank
	}
	if flags.Changed("predicate") {
		cfg.Predicate = predicate
	}
	if flags.Changed("threshold") {
		cfg.Threshold = threshold
	}
	if flags.Changed("interpolator") {
		cfg.Interpolator = interpolator
	}
	if flags.Lookup("theme") != nil && flags.Changed("theme") {
		cfg.Theme = theme
	}

	return cfg, cfg.Validate()
}

func run(cmd *cobra.Command, source string) (*config.Config, *pipeline.Result, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	pc, err := pipeline.FromConfig(source, cfg, nil)
	if err != nil {
		return nil, nil, err
	}
	res, err := pipeline.New(pc).Run(cmd.Context())
	if err != nil {
		return nil, nil, err
	}
	return cfg, res, nil
}

func metadataFor(source string, cfg *config.Config, res *pipeline.Result) storage.RenderMetadata {
	mode := "glyph"
	if cfg.Text != "" {
		mode = "text"
	}
	return storage.RenderMetadata{
		Source:       source,
		Width:        res.Width,
		Height:       res.Height,
		Stretch:      cfg.Stretch,
		Mode:         mode,
		Predicate:    cfg.Predicate,
		Interpolator: cfg.Interpolator,
		Async:        cfg.Async,
		Metrics:      res.Metrics,
	}
}

func renderImage(cmd *cobra.Command, args []string) error {
	source := args[0]
	cfg, res, err := run(cmd, source)
	if err != nil {
		return err
	}

	if outFile != "" {
		if err := os.WriteFile(outFile, []byte(res.Text), 0644); err != nil {
			return err
		}
	} else if res.Text != "" {
		fmt.Println(res.Text)
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		id, err := st.Save(metadataFor(source, cfg, res), res.Text, res.Profile)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "render id: %s\n", id)
	}
	return nil
}

func renderBatch(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	base, err := pipeline.FromConfig("", cfg, nil)
	if err != nil {
		return err
	}

	results, err := pipeline.NewBatch(base, args, jobs).Run(cmd.Context())
	if err != nil {
		return err
	}

	var st *storage.Store
	if save {
		st = storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
	}

	for i, res := range results {
		fmt.Printf("== %s (%dx%d, %v)\n", args[i], res.Width, res.Height, res.Elapsed)
		if res.Text != "" {
			fmt.Println(res.Text)
		}
		if st != nil {
			id, err := st.Save(metadataFor(args[i], cfg, res), res.Text, res.Profile)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "render id: %s\n", id)
		}
	}
	return nil
}

func listRenders(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	renders, err := st.List()
	if err != nil {
		return err
	}

	if len(renders) == 0 {
		fmt.Println("no renders found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSOURCE\tTIME\tSIZE\tMODE\tCOVERAGE")

	for _, r := range renders {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%s\t%.1f%%\n",
			r.ID,
			filepath.Base(r.Source),
			r.Timestamp.Format("2006-01-02 15:04:05"),
			r.Width,
			r.Height,
			r.Mode,
			r.Metrics["ink_coverage"]*100,
		)
	}

	return w.Flush()
}

func showRender(cmd *cobra.Command, args []string) error {
	text, err := storage.New(dataDir).LoadText(args[0])
	if err != nil {
		return err
	}
	fmt.Println(text)
	return nil
}

func exportRender(cmd *cobra.Command, args []string) error {
	id := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(id)
	if err != nil {
		return err
	}
	text, err := st.LoadText(id)
	if err != nil {
		return err
	}
	profile, err := st.LoadProfile(id)
	if err != nil {
		return err
	}

	var out string
	switch format {
	case "json":
		if outFile != "" {
			return storage.ExportJSON(outFile, *meta, text, profile)
		}
		return storage.WriteJSON(os.Stdout, *meta, text, profile)
	case "svg":
		opts := export.DefaultSVGOptions()
		opts.FontSize = fontSize
		out = export.TextToSVG(text, opts)
	case "html":
		out = export.TextToHTML(text, meta.Source)
	case "profile-svg":
		out = export.ProfileToSVG(profile, 600, 200, "#00ff00")
		if out == "" {
			return fmt.Errorf("render %s has too few rows to plot", id)
		}
	default:
		return fmt.Errorf("unknown format: %s (available: json, svg, html, profile-svg)", format)
	}

	if outFile != "" {
		return os.WriteFile(outFile, []byte(out), 0644)
	}
	fmt.Println(out)
	return nil
}

func statsImage(cmd *cobra.Command, args []string) error {
	source := args[0]
	_, res, err := run(cmd, source)
	if err != nil {
		return err
	}

	fmt.Printf("source: %s\n", source)
	fmt.Printf("size: %dx%d\n", res.Width, res.Height)
	fmt.Printf("elapsed: %v\n", res.Elapsed)
	printMetrics(res.Metrics)
	printProfile(res.Profile)
	return nil
}

func plotRender(cmd *cobra.Command, args []string) error {
	id := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(id)
	if err != nil {
		return err
	}
	profile, err := st.LoadProfile(id)
	if err != nil {
		return err
	}

	fmt.Printf("render: %s\n", meta.ID)
	fmt.Printf("source: %s\n", meta.Source)
	fmt.Printf("rows: %d\n", len(profile))
	printProfile(profile)
	return nil
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, m[name])
	}
}

func printProfile(profile []float64) {
	if len(profile) == 0 {
		fmt.Println("\nno rows to plot")
		return
	}
	graph := asciigraph.Plot(profile,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("ink per row (top to bottom)"),
	)
	fmt.Println()
	fmt.Println(graph)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tWIDTH\tSTRETCH\tPREDICATE\tINTERPOLATOR\tTHEME")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%.0f\t%.2f\t%s\t%s\t%s\n",
			name, p.Width, p.Stretch, p.Predicate, p.Interpolator, p.Theme)
	}
	return w.Flush()
}

// viewImage opens a stored render when the argument names one, otherwise
// renders the argument as a source.
func viewImage(cmd *cobra.Command, args []string) error {
	arg := args[0]

	st := storage.New(dataDir)
	if meta, err := st.Load(arg); err == nil {
		text, err := st.LoadText(arg)
		if err != nil {
			return err
		}
		profile, _ := st.LoadProfile(arg)
		t := theme
		if t == "" {
			t = config.DefaultTheme
		}
		return viz.Run(viz.ViewerConfig{
			Title:   filepath.Base(meta.Source),
			Text:    text,
			Metrics: meta.Metrics,
			Profile: profile,
			Theme:   t,
		})
	}

	cfg, res, err := run(cmd, arg)
	if err != nil {
		return err
	}
	return viz.Run(viz.ViewerConfig{
		Title:   filepath.Base(arg),
		Text:    res.Text,
		Metrics: res.Metrics,
		Profile: res.Profile,
		Theme:   cfg.Theme,
	})
}
