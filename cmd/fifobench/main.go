// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command fifobench measures single-producer single-consumer hand-off
// throughput of fifo.Queue for each block sizing tier.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"code.hybscloud.com/fifo/internal/handoff"
)

func main() {
	messages := flag.Int("n", 1_000_000, "Messages per run")
	iterations := flag.Int("iter", 3, "Runs per element shape")
	blockSize := flag.Int("block", 0, "Block size override (0 uses the sizing policy)")
	recycle := flag.Int("recycle", 0, "Block recycle depth (0 default, negative disables)")
	shapesFlag := flag.String("shapes", "", "Comma-separated element shapes (default all: 8B,64B,256B,2KiB)")
	jsonFile := flag.String("json", "", "Append the session report to this JSON file")
	chartFile := flag.String("chart", "", "Write a throughput bar chart to this PNG file")
	progress := flag.Bool("progress", false, "Display a progress bar")
	flag.Parse()

	shapes, err := selectShapes(*shapesFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *iterations < 1 {
		fmt.Fprintln(os.Stderr, "fifobench: -iter must be >= 1")
		os.Exit(2)
	}

	cfg := handoff.Config{
		Messages:  *messages,
		BlockSize: *blockSize,
		Recycle:   *recycle,
	}

	var bar *progressbar.ProgressBar
	if *progress {
		bar = progressbar.NewOptions(len(shapes)*(*iterations),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("hand-off"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	report := Report{
		SessionTime: time.Now().Format(time.RFC3339),
		SystemInfo:  gatherSystemInfo(),
	}

	fmt.Printf("GOMAXPROCS=%d messages=%d iterations=%d\n", runtime.GOMAXPROCS(0), *messages, *iterations)
	for _, s := range shapes {
		for it := 1; it <= *iterations; it++ {
			runtime.GC()
			res, err := s.Run(cfg)
			if err != nil {
				fmt.Fprintf(os.Stderr, "fifobench: %s iteration %d: %v\n", s.Name, it, err)
				os.Exit(1)
			}
			report.Runs = append(report.Runs, newRunResult(s, it, res))
			if bar != nil {
				_ = bar.Add(1)
			}
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	printTable(os.Stdout, report.Summaries())

	if *jsonFile != "" {
		if err := appendReport(*jsonFile, report); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("report appended to %s\n", *jsonFile)
	}
	if *chartFile != "" {
		if err := writeChart(*chartFile, report.Summaries()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("chart written to %s\n", *chartFile)
	}
}

// selectShapes resolves a comma-separated shape list; empty selects all.
func selectShapes(list string) ([]handoff.Shape, error) {
	if strings.TrimSpace(list) == "" {
		return handoff.Shapes, nil
	}
	var out []handoff.Shape
	for name := range strings.SplitSeq(list, ",") {
		name = strings.TrimSpace(name)
		s, ok := handoff.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("fifobench: unknown shape %q", name)
		}
		out = append(out, s)
	}
	return out, nil
}
