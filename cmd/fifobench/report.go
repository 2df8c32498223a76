// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"runtime"
	"slices"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/sugawarayuuta/sonnet"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"code.hybscloud.com/fifo/internal/handoff"
)

// RunResult holds one hand-off run.
type RunResult struct {
	Shape      string  `json:"shape"`
	ElemSize   uintptr `json:"elem_size_bytes"`
	BlockSize  int     `json:"block_size"`
	Iteration  int     `json:"iteration"`
	Messages   int     `json:"messages"`
	Elapsed    string  `json:"elapsed"`
	Throughput float64 `json:"throughput_msgs_sec"`
	MaxSize    int     `json:"max_sampled_size"`
	GoVersion  string  `json:"go_version"`
}

func newRunResult(s handoff.Shape, iteration int, res handoff.Result) RunResult {
	return RunResult{
		Shape:      s.Name,
		ElemSize:   s.Size,
		BlockSize:  res.BlockSize,
		Iteration:  iteration,
		Messages:   res.Messages,
		Elapsed:    res.Elapsed.Round(time.Microsecond).String(),
		Throughput: res.Throughput,
		MaxSize:    res.MaxSize,
		GoVersion:  runtime.Version(),
	}
}

// SystemInfo holds system information.
type SystemInfo struct {
	NumCPU      int     `json:"num_cpu"`
	GOMAXPROCS  int     `json:"gomaxprocs"`
	CPUModel    string  `json:"cpu_model,omitempty"`
	CPUSpeedMHz float64 `json:"cpu_speed_mhz,omitempty"`
	GOARCH      string  `json:"go_arch"`
	TotalMemory uint64  `json:"total_memory_bytes,omitempty"`
}

func gatherSystemInfo() SystemInfo {
	info := SystemInfo{
		NumCPU:     runtime.NumCPU(),
		GOMAXPROCS: runtime.GOMAXPROCS(0),
		GOARCH:     runtime.GOARCH,
	}
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		info.CPUModel = infos[0].ModelName
		info.CPUSpeedMHz = infos[0].Mhz
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		info.TotalMemory = vm.Total
	}
	return info
}

// Report is one fifobench session.
type Report struct {
	SessionTime string      `json:"session_time"`
	SystemInfo  SystemInfo  `json:"system_info"`
	Runs        []RunResult `json:"runs"`
}

// Summary aggregates the runs of one shape.
type Summary struct {
	Shape     string
	ElemSize  uintptr
	BlockSize int
	Runs      int
	Mean      float64
	Best      float64
}

// Summaries returns per-shape aggregates in first-seen order.
func (r Report) Summaries() []Summary {
	var out []Summary
	for _, run := range r.Runs {
		i := slices.IndexFunc(out, func(s Summary) bool { return s.Shape == run.Shape })
		if i < 0 {
			out = append(out, Summary{Shape: run.Shape, ElemSize: run.ElemSize, BlockSize: run.BlockSize})
			i = len(out) - 1
		}
		s := &out[i]
		s.Mean = (s.Mean*float64(s.Runs) + run.Throughput) / float64(s.Runs+1)
		s.Runs++
		s.Best = max(s.Best, run.Throughput)
	}
	return out
}

func printTable(w io.Writer, sums []Summary) {
	fmt.Fprintf(w, "%-6s %10s %6s %5s %16s %16s\n", "shape", "elem bytes", "block", "runs", "mean msgs/s", "best msgs/s")
	for _, s := range sums {
		fmt.Fprintf(w, "%-6s %10d %6d %5d %16.0f %16.0f\n", s.Shape, s.ElemSize, s.BlockSize, s.Runs, s.Mean, s.Best)
	}
}

// appendReport appends report to the JSON array stored in path, creating
// the file if it does not exist.
func appendReport(path string, report Report) error {
	var sessions []Report
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := sonnet.Unmarshal(data, &sessions); err != nil {
			return fmt.Errorf("fifobench: parse %s: %w", path, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("fifobench: read %s: %w", path, err)
	}

	sessions = append(sessions, report)
	out, err := sonnet.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("fifobench: encode report: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("fifobench: write %s: %w", path, err)
	}
	return nil
}

// writeChart renders mean throughput per shape as a bar chart.
func writeChart(path string, sums []Summary) error {
	if len(sums) == 0 {
		return errors.New("fifobench: no results to chart")
	}

	values := make(plotter.Values, len(sums))
	labels := make([]string, len(sums))
	for i, s := range sums {
		values[i] = s.Mean / 1e6
		labels[i] = fmt.Sprintf("%s (N=%d)", s.Shape, s.BlockSize)
	}

	p := plot.New()
	p.Title.Text = "fifo.Queue hand-off throughput"
	p.Y.Label.Text = "million msgs/s"
	p.Add(plotter.NewGrid())

	bars, err := plotter.NewBarChart(values, vg.Points(40))
	if err != nil {
		return fmt.Errorf("fifobench: bar chart: %w", err)
	}
	p.Add(bars)
	p.NominalX(labels...)

	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("fifobench: save chart %s: %w", path, err)
	}
	return nil
}
