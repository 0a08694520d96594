// coasterforge is a CLI tool for turning authored track descriptions
// into NoLimits element files.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/coasterforge/internal/config"
	"github.com/Faultbox/coasterforge/internal/logger"
	"github.com/Faultbox/coasterforge/pkg/nlelem"
	"github.com/Faultbox/coasterforge/pkg/track"
	"github.com/Faultbox/coasterforge/pkg/trackfile"
)

func main() {
	// Global flags come before the command.
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if flag.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}

	command := flag.Arg(0)
	args := flag.Args()[1:]

	switch command {
	case "export":
		cmdExport(cfg, args)
	case "forces":
		cmdForces(cfg, args)
	case "info":
		cmdInfo(args)
	case "validate":
		cmdValidate(args)
	case "config":
		cmdConfig(cfg, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`coasterforge - coaster track element exporter

Usage:
  coasterforge [options] <command> [args]

Commands:
  export <track.yaml> [output.nlelem]  Export a track to an element file
  forces <track.yaml> [output.csv]     Compute smoothed rider forces
  info <file.nlelem>                   Show element file information
  validate <track.yaml>                Check a track description
  config [-write]                      Show the effective configuration

Options:
  -config <path>    Use an explicit config file
  -out <dir>        Output directory for element files
  -force            Overwrite existing element files
  -debug            Enable debug logging
  -log <file>       Write logs to this file
  -log-level <lvl>  Log level: debug, info, warn, error

Examples:
  coasterforge export loop.yaml
  coasterforge -out ./elements -force export loop.yaml
  coasterforge forces loop.yaml forces.csv
  coasterforge info loop.nlelem`)
}

func cmdExport(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: coasterforge export <track.yaml> [output.nlelem]")
		os.Exit(1)
	}

	log := logger.Named("export")

	tf, err := trackfile.ParseFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	seq := tf.ToSequence()
	if err := seq.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid track: %v\n", err)
		os.Exit(1)
	}

	segments := track.Export(seq)
	log.Debug("track converted",
		zap.Int("nodes", seq.Len()),
		zap.Int("segments", len(segments)))

	outPath := elementPath(cfg, tf, fs.Arg(0))
	if fs.NArg() > 1 {
		outPath = fs.Arg(1)
	}

	if !cfg.Export.Overwrite {
		if _, err := os.Stat(outPath); err == nil {
			fmt.Fprintf(os.Stderr, "Output exists: %s (use -force to overwrite)\n", outPath)
			os.Exit(1)
		}
	}

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating directory: %v\n", err)
			os.Exit(1)
		}
	}

	if err := nlelem.WriteFile(outPath, segments); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log.Info("element written",
		zap.String("path", outPath),
		zap.Int("segments", len(segments)),
		zap.Int("bytes", len(segments)*nlelem.RecordSize))

	fmt.Printf("Exported: %s (%d segments, %d bytes)\n",
		outPath, len(segments), len(segments)*nlelem.RecordSize)
}

// elementPath derives the output path from the track name and the
// configured output directory.
func elementPath(cfg *config.Config, tf *trackfile.File, inPath string) string {
	name := tf.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(inPath), filepath.Ext(inPath))
	}
	name = strings.ReplaceAll(name, " ", "_")
	return filepath.Join(cfg.Export.OutputDir, name+".nlelem")
}

func cmdForces(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("forces", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: coasterforge forces <track.yaml> [output.csv]")
		os.Exit(1)
	}

	tf, err := trackfile.ParseFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	seq := tf.ToSequence()
	if err := seq.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid track: %v\n", err)
		os.Exit(1)
	}

	track.SmoothForces(seq)

	if fs.NArg() > 1 {
		if err := writeForcesCSV(fs.Arg(1), seq, cfg.Forces.Precision); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote: %s (%d rows)\n", fs.Arg(1), seq.Len()-1)
		return
	}

	printForces(seq, cfg.Forces.Precision)
}

func printForces(seq *track.Sequence, prec int) {
	fmt.Printf("%-5s %10s %10s %10s %10s %10s\n",
		"node", "length", "speed", "rollrate", "normal", "lateral")
	for i, n := range seq.Nodes[1:] {
		fmt.Printf("%-5d %10.*f %10.*f %10.*f %10.*f %10.*f\n",
			i+1,
			prec, n.TotalLength,
			prec, n.SmoothSpeed,
			prec, n.RollSpeed,
			prec, n.SmoothNormal,
			prec, n.SmoothLateral)
	}
}

func writeForcesCSV(path string, seq *track.Sequence, prec int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"node", "length", "speed", "roll_rate", "normal", "lateral"}); err != nil {
		return err
	}
	for i, n := range seq.Nodes[1:] {
		rec := []string{
			strconv.Itoa(i + 1),
			formatForce(n.TotalLength, prec),
			formatForce(n.SmoothSpeed, prec),
			formatForce(n.RollSpeed, prec),
			formatForce(n.SmoothNormal, prec),
			formatForce(n.SmoothLateral, prec),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatForce(v float32, prec int) string {
	return strconv.FormatFloat(float64(v), 'f', prec, 32)
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: coasterforge info <file.nlelem>")
		os.Exit(1)
	}

	segments, err := nlelem.ParseFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	relative := 0
	equal := 0
	for _, s := range segments {
		if s.RelativeRoll {
			relative++
		}
		if s.EqualDistance {
			equal++
		}
	}

	minRoll, maxRoll := nlelem.RollRange(segments)

	fmt.Printf("Element:   %s\n", args[0])
	fmt.Printf("Segments:  %d\n", len(segments))
	fmt.Printf("Size:      %d bytes\n", len(segments)*nlelem.RecordSize)
	fmt.Printf("Chord:     %.2f m\n", nlelem.ChordLength(segments))
	fmt.Printf("Roll:      %.1f to %.1f deg\n", minRoll, maxRoll)
	fmt.Printf("Relative:  %d segments\n", relative)
	fmt.Printf("Equal arm: %d segments\n", equal)
}

func cmdValidate(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: coasterforge validate <track.yaml>")
		os.Exit(1)
	}

	tf, err := trackfile.ParseFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	seq := tf.ToSequence()
	if err := seq.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid: %v\n", err)
		os.Exit(1)
	}

	last := seq.Nodes[seq.Len()-1]
	fmt.Printf("OK: %d nodes, %.2f m\n", seq.Len(), last.TotalLength)
}

func cmdConfig(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	write := fs.Bool("write", false, "Persist the effective configuration")
	fs.Parse(args)

	data, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(data)

	if *write {
		if err := cfg.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Saved to %s\n", filepath.Join(config.ConfigDir(), "config.yaml"))
	}
}
