package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"ecoscan/internal/bootstrap"
	detectordto "ecoscan/internal/modules/detector/dto"
	"ecoscan/internal/platform/config"
	"ecoscan/internal/platform/logging"
	"ecoscan/internal/platform/numfmt"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalFlags struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:           "ecoscan",
		Short:         "Recycling detection dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (defaults to $ECOSCAN_CONFIG)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug|info|warn|error (overrides config)")

	root.AddCommand(newTUICmd(&flags))
	root.AddCommand(newDetectCmd(&flags))
	root.AddCommand(newRecordCmd(&flags))
	root.AddCommand(newRewardsCmd(&flags))
	root.AddCommand(newPointsCmd(&flags))
	root.AddCommand(newCatalogCmd(&flags))
	root.AddCommand(newDetectorCmd(&flags))
	return root
}

func loadConfig(flags *globalFlags) (config.Config, error) {
	cfg, err := config.New(flags.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if strings.TrimSpace(flags.logLevel) != "" {
		cfg.Log.Level = flags.logLevel
	}
	return cfg, nil
}

// loadApp builds the application with a logger writing to w.
func loadApp(flags *globalFlags, w io.Writer) (*bootstrap.App, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg, logging.New(cfg.Log.Level, w))
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the ecoscan terminal dashboard",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			logFile, err := bootstrap.OpenLog(cfg.Log.File)
			if err != nil {
				return err
			}
			defer logFile.Close()
			app, err := bootstrap.New(cfg, logging.New(cfg.Log.Level, logFile))
			if err != nil {
				return err
			}
			defer app.Close()
			return bootstrap.RunTUI(app)
		},
	}
}

func newDetectCmd(flags *globalFlags) *cobra.Command {
	var count int
	var material string

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Run simulated detections and record them",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be at least 1")
			}
			app, err := loadApp(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.Close()

			out := cmd.OutOrStdout()
			for i := 0; i < count; i++ {
				scan, err := app.DetectorCLI.Detect(context.Background(), material)
				if err != nil {
					return err
				}
				printScan(out, scan)
			}
			snap, err := app.ProgressCLI.Snapshot(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(out, "level %d  xp %d/%d  streak %d  total %s  trees %d  car %s km  earth %s\n",
				snap.Level, snap.XP, snap.NextLevelXP, snap.Streak, numfmt.Kg(snap.TotalCO2Saved),
				snap.TreesEquivalent, numfmt.Int(snap.CarKmOffset), numfmt.Percent(snap.EarthHealth))
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", 1, "number of detections")
	cmd.Flags().StringVar(&material, "material", "", "catalog material to detect (random when empty)")
	return cmd
}

func printScan(w io.Writer, scan detectordto.ScanOutput) {
	d := scan.Record.Detection
	_, _ = fmt.Fprintf(w, "%s\t%s\t%.0f%%\t%s\t+%d xp\t[%s]\n",
		d.ID, d.Material, d.Confidence*100, numfmt.Kg(d.CO2Saved), scan.Record.XPGained, scan.Source)
	if m := scan.Record.Milestone; m != nil {
		_, _ = fmt.Fprintf(w, "  milestone: %s (%s)\n", m.Title, m.Description)
	}
}

func newRecordCmd(flags *globalFlags) *cobra.Command {
	var material string
	var confidence, co2 float64

	cmd := &cobra.Command{
		Use:   "record --material <name> --confidence <0..1> --co2 <kg>",
		Short: "Record one explicit detection",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(material) == "" {
				return fmt.Errorf("--material is required")
			}
			app, err := loadApp(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.ProgressCLI.Record(context.Background(), material, confidence, co2)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "recorded %s (%s) +%d xp level=%d xp=%d/%d\n",
				out.Detection.Material, out.Detection.ID, out.XPGained,
				out.Snapshot.Level, out.Snapshot.XP, out.Snapshot.NextLevelXP)
			if m := out.Milestone; m != nil {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  milestone: %s (%s)\n", m.Title, m.Description)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&material, "material", "", "material name")
	cmd.Flags().Float64Var(&confidence, "confidence", 0.9, "detection confidence in [0, 1]")
	cmd.Flags().Float64Var(&co2, "co2", 0, "kg of CO2 saved")
	return cmd
}

func newRewardsCmd(flags *globalFlags) *cobra.Command {
	var simulate int

	cmd := &cobra.Command{
		Use:   "rewards",
		Short: "Show achievements, daily challenges and the leaderboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if simulate < 0 {
				return fmt.Errorf("--simulate must be non-negative")
			}
			app, err := loadApp(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.Close()
			for i := 0; i < simulate; i++ {
				if _, err := app.DetectorCLI.Detect(context.Background(), ""); err != nil {
					return err
				}
			}
			ov, err := app.RewardsCLI.Overview(context.Background())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "achievements (%d/%d unlocked)\n", ov.Unlocked, len(ov.Achievements))
			for _, a := range ov.Achievements {
				mark := " "
				if a.Unlocked {
					mark = "x"
				}
				_, _ = fmt.Fprintf(out, "  [%s] %-18s %s\n", mark, a.Title, numfmt.Percent(a.Percent))
			}
			_, _ = fmt.Fprintln(out, "daily challenges")
			for _, c := range ov.Challenges {
				mark := " "
				if c.Completed {
					mark = "x"
				}
				_, _ = fmt.Fprintf(out, "  [%s] %-18s %g/%g  +%d xp\n", mark, c.Title, c.Progress, c.Target, c.Reward)
			}
			_, _ = fmt.Fprintln(out, "leaderboard")
			for _, e := range ov.Leaderboard {
				you := ""
				if e.IsUser {
					you = "  <- you"
				}
				_, _ = fmt.Fprintf(out, "  %d. %s %-16s %s%s\n", e.Rank, e.Avatar, e.Name, numfmt.Kg(e.CO2Saved), you)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&simulate, "simulate", 0, "simulated detections to record first")
	return cmd
}

func newPointsCmd(flags *globalFlags) *cobra.Command {
	points := &cobra.Command{Use: "points", Short: "Recycling point directory"}

	var listMaterials []string
	list := &cobra.Command{
		Use:   "list",
		Short: "List recycling points",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.Close()
			items, err := app.RecyclingCLI.List(context.Background(), listMaterials)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no recycling points")
				return nil
			}
			for _, p := range items {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", p.ID, p.Name, strings.Join(p.Materials, ","), p.Address)
			}
			return nil
		},
	}
	list.Flags().StringSliceVar(&listMaterials, "material", nil, "filter by material (repeatable)")

	var lat, lng float64
	var nearestMaterials []string
	nearest := &cobra.Command{
		Use:   "nearest",
		Short: "Find the closest recycling point",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("lat") {
				lat = cfg.Location.Lat
			}
			if !cmd.Flags().Changed("lng") {
				lng = cfg.Location.Lng
			}
			app, err := bootstrap.New(cfg, logging.New(cfg.Log.Level, cmd.ErrOrStderr()))
			if err != nil {
				return err
			}
			defer app.Close()
			out, err := app.RecyclingCLI.Nearest(context.Background(), lat, lng, nearestMaterials)
			if err != nil {
				return err
			}
			p := out.Point
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n  %.2f km away\n  %s\n  hours: %s\n  phone: %s\n  accepts: %s\n",
				p.Name, p.ID, out.DistanceKm, p.Address, p.Hours, p.Phone, strings.Join(p.Materials, ", "))
			return nil
		},
	}
	nearest.Flags().Float64Var(&lat, "lat", 0, "latitude (defaults to config location)")
	nearest.Flags().Float64Var(&lng, "lng", 0, "longitude (defaults to config location)")
	nearest.Flags().StringSliceVar(&nearestMaterials, "material", nil, "only points accepting any of these materials")

	points.AddCommand(list, nearest)
	return points
}

func newCatalogCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List detectable materials",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.Close()
			materials, err := app.DetectorCLI.Catalog(context.Background())
			if err != nil {
				return err
			}
			for _, m := range materials {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", m.Slug, m.Name, m.Category, numfmt.Kg(m.CO2Saved))
			}
			return nil
		},
	}
}

func newDetectorCmd(flags *globalFlags) *cobra.Command {
	detector := &cobra.Command{Use: "detector", Short: "Detector plugin commands"}
	detector.AddCommand(&cobra.Command{
		Use:   "doctor",
		Short: "Validate the configured detector plugin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.Close()
			r, err := app.DetectorCLI.Doctor(context.Background())
			if err != nil {
				return err
			}
			if !r.Configured {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no detector plugin configured; using the built-in simulator")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\tenabled=%t\tbinary=%t\tchecksum=%t\tlifecycle=%t\n",
				r.Name, r.Version, r.Enabled, r.BinaryReachable, r.ChecksumValid, r.LifecycleOK)
			if len(r.Materials) > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  materials: %s\n", strings.Join(r.Materials, ", "))
			}
			if r.Error != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  error: %s\n", r.Error)
			}
			return nil
		},
	})
	return detector
}
