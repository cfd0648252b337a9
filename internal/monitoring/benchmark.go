package monitoring

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"
)

const (
	defaultIterations = 10
	bytesToMB         = 1024 * 1024
	percentageBase    = 100
)

// Scenario is one benchmarked query, usually a single API route.
type Scenario struct {
	Name       string
	Iterations int
	Run        func(ctx context.Context) error
}

// BenchmarkResult contains the results of running a scenario.
type BenchmarkResult struct {
	Name              string        `json:"name"`
	Iterations        int           `json:"iterations"`
	Duration          time.Duration `json:"duration"`
	AverageDuration   time.Duration `json:"average_duration"`
	MinDuration       time.Duration `json:"min_duration"`
	MaxDuration       time.Duration `json:"max_duration"`
	MemoryAllocated   int64         `json:"memory_allocated"`
	MemoryAllocations int64         `json:"memory_allocations"`
	QueriesPerSec     float64       `json:"queries_per_sec"`
	Success           bool          `json:"success"`
	ErrorMessage      string        `json:"error_message,omitempty"`
}

// BenchmarkSuite runs a list of scenarios sequentially.
type BenchmarkSuite struct {
	scenarios []Scenario
	results   []BenchmarkResult
}

// NewBenchmarkSuite creates an empty suite.
func NewBenchmarkSuite() *BenchmarkSuite {
	return &BenchmarkSuite{}
}

// Add appends a scenario. Iterations defaults to 10.
func (bs *BenchmarkSuite) Add(s Scenario) {
	if s.Iterations <= 0 {
		s.Iterations = defaultIterations
	}
	bs.scenarios = append(bs.scenarios, s)
}

// Len returns the number of scenarios.
func (bs *BenchmarkSuite) Len() int {
	return len(bs.scenarios)
}

// Run executes every scenario and returns the results. It stops early when
// ctx is cancelled.
func (bs *BenchmarkSuite) Run(ctx context.Context) []BenchmarkResult {
	bs.results = make([]BenchmarkResult, 0, len(bs.scenarios))
	for _, s := range bs.scenarios {
		if ctx.Err() != nil {
			break
		}
		bs.results = append(bs.results, runScenario(ctx, s))
	}
	return bs.results
}

// Results returns the results of the last Run.
func (bs *BenchmarkSuite) Results() []BenchmarkResult {
	return bs.results
}

func runScenario(ctx context.Context, s Scenario) BenchmarkResult {
	result := BenchmarkResult{Name: s.Name, Iterations: s.Iterations, Success: true}
	var memBefore, memAfter runtime.MemStats

	runtime.GC()
	runtime.ReadMemStats(&memBefore)

	completed := 0
	for i := range s.Iterations {
		start := time.Now()
		if err := s.Run(ctx); err != nil {
			result.Success = false
			result.ErrorMessage = fmt.Sprintf("iteration %d failed: %v", i+1, err)
			break
		}
		d := time.Since(start)

		if completed == 0 || d < result.MinDuration {
			result.MinDuration = d
		}
		result.MaxDuration = max(result.MaxDuration, d)
		result.Duration += d
		completed++
	}

	runtime.GC()
	runtime.ReadMemStats(&memAfter)

	if completed > 0 {
		result.AverageDuration = result.Duration / time.Duration(completed)
	}
	if result.AverageDuration > 0 {
		result.QueriesPerSec = 1.0 / result.AverageDuration.Seconds()
	}
	result.MemoryAllocated = int64(memAfter.TotalAlloc - memBefore.TotalAlloc) //nolint:gosec // monotonic counters
	result.MemoryAllocations = int64(memAfter.Mallocs - memBefore.Mallocs)     //nolint:gosec // monotonic counters

	return result
}

// Report renders the last Run as markdown.
func (bs *BenchmarkSuite) Report() string {
	if len(bs.results) == 0 {
		return "# Query Benchmark Report\n\nNo benchmark results available.\n"
	}

	var report strings.Builder
	report.WriteString("# Query Benchmark Report\n\n")
	fmt.Fprintf(&report, "Generated: %s\n\n", time.Now().Format(time.RFC3339))

	report.WriteString("| Query | Iterations | Avg Duration | Queries/Sec | Memory (MB) | Status |\n")
	report.WriteString("|-------|------------|--------------|-------------|-------------|--------|\n")
	for _, r := range bs.results {
		status := "ok"
		if !r.Success {
			status = "failed: " + r.ErrorMessage
		}
		fmt.Fprintf(&report, "| %s | %d | %v | %.2f | %.2f | %s |\n",
			r.Name, r.Iterations, r.AverageDuration, r.QueriesPerSec,
			float64(r.MemoryAllocated)/bytesToMB, status)
	}
	report.WriteString("\n")

	if len(bs.results) > 1 {
		fastest, slowest := bs.extremes()
		fmt.Fprintf(&report, "- **Fastest Query:** %s (%v average)\n", fastest.Name, fastest.AverageDuration)
		fmt.Fprintf(&report, "- **Slowest Query:** %s (%v average)\n", slowest.Name, slowest.AverageDuration)
	}

	successful := 0
	for _, r := range bs.results {
		if r.Success {
			successful++
		}
	}
	fmt.Fprintf(&report, "- **Success Rate:** %d/%d (%.1f%%)\n",
		successful, len(bs.results), float64(successful)/float64(len(bs.results))*percentageBase)

	return report.String()
}

func (bs *BenchmarkSuite) extremes() (fastest, slowest BenchmarkResult) {
	fastest, slowest = bs.results[0], bs.results[0]
	for _, r := range bs.results[1:] {
		if !r.Success {
			continue
		}
		if r.AverageDuration < fastest.AverageDuration {
			fastest = r
		}
		if r.AverageDuration > slowest.AverageDuration {
			slowest = r
		}
	}
	return fastest, slowest
}
