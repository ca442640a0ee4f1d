// Package report writes simulation results to CSV files: a per-generation
// population history and a one-row-per-run summary.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"predprey/population"
)

// HistoryWriter streams one row per generation.
type HistoryWriter struct {
	w *csv.Writer
}

// NewHistoryWriter writes the header row and returns a writer for w.
func NewHistoryWriter(w io.Writer) (*HistoryWriter, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Generation", "Predators", "Prey"}); err != nil {
		return nil, fmt.Errorf("write history header: %w", err)
	}
	return &HistoryWriter{w: cw}, nil
}

// Record writes the counts observed after generation.
func (h *HistoryWriter) Record(generation int, c population.Counts) error {
	row := []string{
		strconv.Itoa(generation),
		strconv.Itoa(c.Predators),
		strconv.Itoa(c.Prey),
	}
	if err := h.w.Write(row); err != nil {
		return fmt.Errorf("write history row %d: %w", generation, err)
	}
	return nil
}

// Flush writes any buffered rows to the underlying writer.
func (h *HistoryWriter) Flush() error {
	h.w.Flush()
	return h.w.Error()
}

// Host describes the machine a run executed on.
type Host struct {
	CPUs           int     // Logical CPUs.
	MemoryUsedPerc float64 // Used virtual memory, percent.
}

// HostStats samples the current machine through gopsutil.
func HostStats() (Host, error) {
	n, err := cpu.Counts(true)
	if err != nil {
		return Host{}, fmt.Errorf("count cpus: %w", err)
	}
	vm, err := mem.VirtualMemory()
	if err != nil {
		return Host{}, fmt.Errorf("read memory stats: %w", err)
	}
	return Host{CPUs: n, MemoryUsedPerc: vm.UsedPercent}, nil
}

// Summary is one row of the results file.
type Summary struct {
	Width, Height int
	Trial         int
	Generations   int
	Extinct       bool
	Final         population.Counts
	Elapsed       time.Duration
	Host          Host
}

// GenerationsPerSecond returns the average generation rate of the run.
// It is 0 when no time has elapsed.
func (s Summary) GenerationsPerSecond() float64 {
	secs := s.Elapsed.Seconds()
	if secs > 0 {
		return float64(s.Generations) / secs
	}
	return 0.0
}

var summaryHeader = []string{
	"Grid Size", "Trial", "Generations", "Extinct", "Predators", "Prey",
	"Elapsed Seconds", "Generations Per Second", "CPUs", "Memory Used Percent",
}

func (s Summary) row() []string {
	return []string{
		strconv.Itoa(s.Width * s.Height),
		strconv.Itoa(s.Trial),
		strconv.Itoa(s.Generations),
		strconv.FormatBool(s.Extinct),
		strconv.Itoa(s.Final.Predators),
		strconv.Itoa(s.Final.Prey),
		strconv.FormatFloat(s.Elapsed.Seconds(), 'f', 3, 64),
		strconv.FormatFloat(s.GenerationsPerSecond(), 'f', 2, 64),
		strconv.Itoa(s.Host.CPUs),
		strconv.FormatFloat(s.Host.MemoryUsedPerc, 'f', 1, 64),
	}
}

// AppendSummary appends rows to filename, creating it if needed. The header
// row is written only when the file is empty.
func AppendSummary(filename string, rows ...Summary) error {
	file, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open %s: %w", filename, err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", filename, err)
	}

	writer := csv.NewWriter(file)
	if stat.Size() == 0 {
		if err := writer.Write(summaryHeader); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	for _, s := range rows {
		if err := writer.Write(s.row()); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", filename, err)
	}
	return file.Close()
}
