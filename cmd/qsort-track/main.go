package main

import (
	"fmt"
	"os"

	"github.com/LdDl/qsort-go/mot"
	"github.com/akamensky/argparse"
	"github.com/cyclopcam/logs"
)

func main() {
	os.Exit(trackCLI())
}

// trackCLI returns process exit code so deferred file closes run before exit
func trackCLI() int {
	defaults := mot.DefaultConfig()
	parser := argparse.NewParser("qsort-track", "Track per-frame detections read as JSON lines")
	input := parser.String("i", "input", &argparse.Options{Help: "Input file with one JSON array of [x1,y1,x2,y2,conf] per line. Standard input if empty", Required: false, Default: ""})
	output := parser.String("o", "output", &argparse.Options{Help: "Output file for [x1,y1,x2,y2,id,v,curv,j] rows. Standard output if empty", Required: false, Default: ""})
	maxMissed := parser.Int("", "max-missed", &argparse.Options{Help: "Frames a track may stay unmatched before removal", Required: false, Default: defaults.MaxMissed})
	maxDist := parser.Float("", "max-dist", &argparse.Options{Help: "Max distance between predicted and detected centers", Required: false, Default: defaults.MaxDist})
	minIoU := parser.Float("", "min-iou", &argparse.Options{Help: "Min IoU for a match", Required: false, Default: defaults.MinIoU})
	freeze := parser.Int("", "freeze", &argparse.Options{Help: "Frames after a loss during which new ids are suppressed", Required: false, Default: defaults.FreezeWindow})
	algorithm := parser.String("a", "algorithm", &argparse.Options{Help: "Assignment algorithm: jv (optimal), greedy or hungarian (approximate)", Required: false, Default: defaults.Algorithm.String()})
	workers := parser.Int("", "workers", &argparse.Options{Help: "Goroutines used for cost matrix construction", Required: false, Default: defaults.CostWorkers})
	verbose := parser.Flag("v", "verbose", &argparse.Options{Help: "Log track lifecycle events"})
	err := parser.Parse(os.Args)
	if err != nil {
		fmt.Print(parser.Usage(err))
		return 1
	}

	logger, err := logs.NewLog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

	alg, err := mot.ParseMatchingAlgorithm(*algorithm)
	if err != nil {
		logger.Errorf("%v", err)
		return 1
	}

	cfg := mot.Config{
		MaxMissed:    *maxMissed,
		MaxDist:      *maxDist,
		MinIoU:       *minIoU,
		FreezeWindow: *freeze,
		MaxHistory:   defaults.MaxHistory,
		Algorithm:    alg,
		CostWorkers:  *workers,
	}

	r := os.Stdin
	if *input != "" {
		f, err := os.Open(*input)
		if err != nil {
			logger.Errorf("Can't open input: %v", err)
			return 1
		}
		defer f.Close()
		r = f
	}
	w := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			logger.Errorf("Can't create output: %v", err)
			return 1
		}
		defer f.Close()
		w = f
	}

	opts := []mot.Option{}
	if *verbose {
		opts = append(opts, mot.WithLogger(logger))
	}
	stats, err := run(cfg, r, w, opts...)
	if err != nil {
		logger.Errorf("Tracking failed: %v", err)
		return 1
	}
	logger.Infof("Processed %v frames: %v tracks spawned, %v recovered, %v suppressed, %v removed, %v detections skipped",
		stats.Frames, stats.Spawned, stats.Recovered, stats.Suppressed, stats.Removed, stats.Skipped)
	return 0
}
