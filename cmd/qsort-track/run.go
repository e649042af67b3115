package main

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"

	"github.com/LdDl/qsort-go/mot"
	"github.com/pkg/errors"
)

// maxLineSize bounds a single frame line
const maxLineSize = 16 * 1024 * 1024

// run feeds every input line as one frame into a fresh tracker and writes one output line per frame.
// Blank lines are frames without detections. Output of frames processed before an error is still flushed.
func run(cfg mot.Config, r io.Reader, w io.Writer, opts ...mot.Option) (stats mot.TrackerStats, err error) {
	tracker, err := mot.NewQSortTracker(cfg, opts...)
	if err != nil {
		return mot.TrackerStats{}, err
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	bw := bufio.NewWriter(w)
	defer func() {
		if flushErr := bw.Flush(); flushErr != nil && err == nil {
			err = errors.Wrap(flushErr, "can't flush output")
		}
	}()
	encoder := json.NewEncoder(bw)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw, err := parseFrame(scanner.Text())
		if err != nil {
			return tracker.Stats(), errors.Wrapf(err, "line %d", lineNo)
		}
		rows, err := tracker.UpdateRaw(raw)
		if err != nil {
			return tracker.Stats(), errors.Wrapf(err, "line %d", lineNo)
		}
		if err := encoder.Encode(rows); err != nil {
			return tracker.Stats(), errors.Wrap(err, "can't write output")
		}
	}
	if err := scanner.Err(); err != nil {
		return tracker.Stats(), errors.Wrap(err, "can't read input")
	}
	return tracker.Stats(), nil
}

// parseFrame decodes JSON array of detection rows
func parseFrame(line string) ([][]float64, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return [][]float64{}, nil
	}
	raw := [][]float64{}
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return nil, errors.Wrap(err, "can't parse detections")
	}
	return raw, nil
}
