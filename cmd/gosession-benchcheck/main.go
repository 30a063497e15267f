// Command gosession-benchcheck compares two `go test -bench` outputs and
// fails when a tracked benchmark regresses past a threshold.
//
//	go test -bench . -benchmem -count 5 . > new.txt
//	gosession-benchcheck -baseline old.txt -candidate new.txt
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

const defaultThreshold = 0.30

// trackedMetrics lists the hot paths whose cost is budgeted.
var trackedMetrics = map[string][]string{
	"BenchmarkValidateMemory":      {"ns/op", "allocs/op"},
	"BenchmarkValidateMalformed":   {"ns/op", "allocs/op"},
	"BenchmarkCreateSessionMemory": {"ns/op"},
}

// samples maps benchmark -> unit -> values across -count runs.
type samples map[string]map[string][]float64

type row struct {
	benchmark string
	unit      string
	base      float64
	candidate float64
	delta     float64
}

func main() {
	var (
		baselinePath  = flag.String("baseline", "", "path to baseline benchmark output")
		candidatePath = flag.String("candidate", "", "path to candidate benchmark output")
		threshold     = flag.Float64("threshold", defaultThreshold, "maximum allowed regression ratio (0.30 = +30%)")
	)
	flag.Parse()

	if *baselinePath == "" || *candidatePath == "" {
		fmt.Fprintln(os.Stderr, "-baseline and -candidate are required")
		os.Exit(2)
	}
	if *threshold < 0 {
		fmt.Fprintln(os.Stderr, "-threshold must be >= 0")
		os.Exit(2)
	}

	baseline, err := parseFile(*baselinePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse baseline: %v\n", err)
		os.Exit(1)
	}
	candidate, err := parseFile(*candidatePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse candidate: %v\n", err)
		os.Exit(1)
	}

	rows, failures := compare(baseline, candidate, *threshold)
	fmt.Println("benchmark metric baseline candidate delta")
	for _, r := range rows {
		fmt.Printf("%s %s %.3f %.3f %+0.2f%%\n", r.benchmark, r.unit, r.base, r.candidate, r.delta*100)
	}

	if len(failures) > 0 {
		fmt.Fprintln(os.Stderr, "performance regression threshold exceeded:")
		for _, f := range failures {
			fmt.Fprintf(os.Stderr, "  - %s\n", f)
		}
		os.Exit(1)
	}
}

// compare evaluates every tracked metric in a stable order.
func compare(baseline, candidate samples, threshold float64) ([]row, []string) {
	names := make([]string, 0, len(trackedMetrics))
	for name := range trackedMetrics {
		names = append(names, name)
	}
	sort.Strings(names)

	var (
		rows     []row
		failures []string
	)
	for _, name := range names {
		for _, unit := range trackedMetrics[name] {
			b, c := baseline[name][unit], candidate[name][unit]
			if len(b) == 0 || len(c) == 0 {
				failures = append(failures, fmt.Sprintf("missing samples for %s %s", name, unit))
				continue
			}
			bm, cm := median(b), median(c)
			if bm <= 0 {
				// allocs/op of zero must stay zero.
				if cm > 0 {
					failures = append(failures, fmt.Sprintf("%s %s went from 0 to %.0f", name, unit, cm))
				}
				rows = append(rows, row{benchmark: name, unit: unit, base: bm, candidate: cm})
				continue
			}
			delta := (cm - bm) / bm
			rows = append(rows, row{benchmark: name, unit: unit, base: bm, candidate: cm, delta: delta})
			if delta > threshold {
				failures = append(failures, fmt.Sprintf("%s %s regressed by %+0.2f%% (limit %+0.2f%%)", name, unit, delta*100, threshold*100))
			}
		}
	}
	return rows, failures
}

func parseFile(path string) (samples, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parse(f)
}

func parse(r io.Reader) (samples, error) {
	out := samples{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 || !strings.HasPrefix(fields[0], "Benchmark") {
			continue
		}

		name := normalizeName(fields[0])
		if _, ok := trackedMetrics[name]; !ok {
			continue
		}
		if out[name] == nil {
			out[name] = map[string][]float64{}
		}

		// fields[1] is the iteration count; value/unit pairs follow.
		for i := 2; i+1 < len(fields); i += 2 {
			v, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				continue
			}
			out[name][fields[i+1]] = append(out[name][fields[i+1]], v)
		}
	}
	return out, scanner.Err()
}

// normalizeName strips the -GOMAXPROCS suffix.
func normalizeName(raw string) string {
	if idx := strings.LastIndexByte(raw, '-'); idx > 0 {
		if _, err := strconv.Atoi(raw[idx+1:]); err == nil {
			return raw[:idx]
		}
	}
	return raw
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
