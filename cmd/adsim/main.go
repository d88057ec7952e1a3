package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bioproc/adsim/internal/config"
	"github.com/bioproc/adsim/internal/kinetics"
	"github.com/bioproc/adsim/internal/sim"
	"github.com/bioproc/adsim/internal/storage"
	"github.com/bioproc/adsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	paramFlags []string
	yb         float64
	s0         float64
	b0         float64
	g0         float64
	t0         float64
	duration   float64
	samples    int
	relTol     float64
	absTol     float64
	noSave     bool
	// Sweep range
	sweepParam string
	sweepFrom  float64
	sweepTo    float64
	sweepCount int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "adsim",
		Short: "batch anaerobic digestion simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".adsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [law]",
		Short: "run a digestion batch",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	addRunFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "skip persisting the run")

	sweepCmd := &cobra.Command{
		Use:   "sweep [law]",
		Short: "run a parameter sweep",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	addRunFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "vary", "mu_max", "kinetic parameter to vary")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0.1, "first parameter value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 0.5, "last parameter value")
	sweepCmd.Flags().IntVar(&sweepCount, "count", 5, "number of sweep points")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [run_id]",
		Short: "delete a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  deleteRun,
	}

	lawsCmd := &cobra.Command{
		Use:   "laws",
		Short: "list kinetics laws",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range kinetics.Names() {
				fmt.Println(name)
			}
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [law]",
		Short: "list presets for a law",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for law: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live [law]",
		Short: "run with live terminal visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	rootCmd.AddCommand(runCmd, sweepCmd, listCmd, plotCmd, deleteCmd, exportCSVCmd, exportJSONCmd, lawsCmd, presetsCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringArrayVar(&paramFlags, "param", nil, "kinetic parameter as name=value (repeatable)")
	cmd.Flags().Float64Var(&yb, "yb", config.DefaultYb, "biomass yield fraction")
	cmd.Flags().Float64Var(&s0, "s0", config.DefaultS0, "initial substrate")
	cmd.Flags().Float64Var(&b0, "b0", config.DefaultB0, "initial biomass")
	cmd.Flags().Float64Var(&g0, "g0", 0, "initial biogas")
	cmd.Flags().Float64Var(&t0, "t0", 0, "start time")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultT1, "end time")
	cmd.Flags().IntVar(&samples, "samples", config.DefaultSamples, "output sample count")
	cmd.Flags().Float64Var(&relTol, "rel-tol", 0, "relative tolerance (0 = default)")
	cmd.Flags().Float64Var(&absTol, "abs-tol", 0, "absolute tolerance (0 = default)")
}

// buildConfig layers preset, config file, and flags, in that order.
func buildConfig(cmd *cobra.Command, law string) (*config.Config, error) {
	cfg := config.DefaultFor(law)

	if preset != "" {
		p := config.GetPreset(law, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(law))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		cfg.Kinetics = law
	}

	// Copy so preset maps are never mutated.
	params := make(map[string]float64, len(cfg.Params))
	for k, v := range cfg.Params {
		params[k] = v
	}
	out := *cfg
	out.Params = params

	if cmd.Flags().Changed("yb") {
		out.Yb = yb
	}
	if cmd.Flags().Changed("s0") {
		out.S0 = s0
	}
	if cmd.Flags().Changed("b0") {
		out.B0 = b0
	}
	if cmd.Flags().Changed("g0") {
		out.G0 = g0
	}
	if cmd.Flags().Changed("t0") {
		out.T0 = t0
	}
	if cmd.Flags().Changed("time") {
		out.T1 = duration
	}
	if cmd.Flags().Changed("samples") {
		out.Samples = samples
	}
	if cmd.Flags().Changed("rel-tol") {
		out.RelTol = relTol
	}
	if cmd.Flags().Changed("abs-tol") {
		out.AbsTol = absTol
	}

	for _, p := range paramFlags {
		name, raw, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("bad --param %q, want name=value", p)
		}
		val, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("bad --param %q: %w", p, err)
		}
		out.Params[name] = val
	}

	return &out, nil
}

func openStore() (*storage.Store, error) {
	return storage.Open(filepath.Join(dataDir, "runs.db"))
}

func runBatch(cmd *cobra.Command, args []string) error {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	logger.Info("starting batch",
		zap.String("kinetics", cfg.Kinetics),
		zap.Float64("s0", cfg.S0),
		zap.Float64("b0", cfg.B0),
		zap.Float64("yb", cfg.Yb),
		zap.Float64("t1", cfg.T1),
	)

	start := time.Now()
	tr, err := sim.NewRunner().Run(cfg.ToSim())
	if err != nil {
		logger.Error("run failed", zap.Error(err))
		return err
	}
	logger.Info("batch complete",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("samples", tr.Len()),
	)

	finalS, finalB, finalG := tr.Final()
	fmt.Printf("final state at t=%.2f:\n", cfg.T1)
	fmt.Printf("  substrate: %.4f\n", finalS)
	fmt.Printf("  biomass:   %.4f\n", finalB)
	fmt.Printf("  biogas:    %.4f\n", finalG)

	if noSave {
		return nil
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	id, err := st.Save(cfg.ToSim(), tr)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", id)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	if sweepCount < 2 {
		return fmt.Errorf("sweep needs at least 2 points")
	}

	base, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	cfgs := make([]sim.Config, sweepCount)
	values := make([]float64, sweepCount)
	for i := range cfgs {
		values[i] = sweepFrom + float64(i)*(sweepTo-sweepFrom)/float64(sweepCount-1)
		c := base.ToSim()
		params := make(map[string]float64, len(c.Params))
		for k, v := range c.Params {
			params[k] = v
		}
		params[sweepParam] = values[i]
		c.Params = params
		cfgs[i] = c
	}

	results := sim.NewRunner().RunSweep(cfgs)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tFINAL_S\tFINAL_B\tFINAL_G\n", strings.ToUpper(sweepParam))
	for i, res := range results {
		if res.Err != nil {
			fmt.Fprintf(w, "%.4f\terror: %v\n", values[i], res.Err)
			continue
		}
		fs, fb, fg := res.Trajectory.Final()
		fmt.Fprintf(w, "%.4f\t%.4f\t%.4f\t%.4f\n", values[i], fs, fb, fg)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKINETICS\tTIME\tSPAN\tYB\tFINAL_S\tFINAL_G")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%.2f\t%.3f\t%.3f\n",
			run.ID,
			run.Kinetics,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.T1-run.T0,
			run.Yb,
			run.FinalS,
			run.FinalG,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	tr, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("kinetics: %s\n", meta.Kinetics)
	fmt.Printf("samples: %d\n\n", tr.Len())

	for _, series := range []struct {
		name string
		data []float64
	}{
		{"substrate", tr.S},
		{"biomass", tr.B},
		{"biogas", tr.G},
	} {
		graph := asciigraph.Plot(series.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(series.name),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func deleteRun(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Delete(args[0]); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", args[0])
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	tr, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	return storage.ExportCSV(os.Stdout, tr)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	tr, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, tr)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}
	return viz.Run(cfg.ToSim())
}
