package cmd

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/memlat/experiment"
	"github.com/sarchlab/memlat/mem"
	"github.com/sarchlab/memlat/monitoring"
	"github.com/sarchlab/memlat/pattern"
	"github.com/sarchlab/memlat/recording"
)

var sweepFlags = struct {
	minStride         uint64
	maxStride         uint64
	maxTrials         int
	epsilon           float64
	requiredSuccesses int

	arraySize    uint64
	maxAddresses int
	patternName  string
	seed         int64

	l1Lines      int
	l1LineSize   uint64
	l1HitPenalty uint64
	l2Lines      int
	l2LineSize   uint64
	l2HitPenalty uint64
	l3Lines      int
	l3LineSize   uint64
	l3HitPenalty uint64
	dramPenalty  uint64

	output      string
	noDB        bool
	csvPath     string
	monitorOn   bool
	monitorPort int
	quiet       bool
}{}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run a stride sweep over the configured memory hierarchy",
	RunE:  runSweep,
}

func init() {
	f := sweepCmd.Flags()

	f.Uint64Var(&sweepFlags.minStride, "min-stride", 16,
		"smallest stride in bytes")
	f.Uint64Var(&sweepFlags.maxStride, "max-stride", 16*mem.KB,
		"largest stride in bytes")
	f.IntVar(&sweepFlags.maxTrials, "max-trials", 100,
		"trial cap per stride")
	f.Float64Var(&sweepFlags.epsilon, "eps", 1.0,
		"convergence tolerance on the running mean")
	f.IntVar(&sweepFlags.requiredSuccesses, "required-successes", 3,
		"consecutive below-tolerance steps required to converge")

	f.Uint64Var(&sweepFlags.arraySize, "array-size", 2*mem.GB,
		"address-space bound in bytes")
	f.IntVar(&sweepFlags.maxAddresses, "max-addresses", 1_000_000,
		"address cap per trial")
	f.StringVar(&sweepFlags.patternName, "pattern", "directed",
		"access pattern, directed or random")
	f.Int64Var(&sweepFlags.seed, "seed", 0,
		"random seed, 0 seeds from the clock")

	f.IntVar(&sweepFlags.l1Lines, "l1-lines", 1024, "L1 line count")
	f.Uint64Var(&sweepFlags.l1LineSize, "l1-line-size", 128,
		"L1 line size in bytes")
	f.Uint64Var(&sweepFlags.l1HitPenalty, "l1-hit-penalty", 1,
		"L1 hit penalty")
	f.IntVar(&sweepFlags.l2Lines, "l2-lines", 12*1024, "L2 line count")
	f.Uint64Var(&sweepFlags.l2LineSize, "l2-line-size", mem.KB,
		"L2 line size in bytes")
	f.Uint64Var(&sweepFlags.l2HitPenalty, "l2-hit-penalty", 10000,
		"L2 hit penalty")
	f.IntVar(&sweepFlags.l3Lines, "l3-lines", 3*1024, "L3 line count")
	f.Uint64Var(&sweepFlags.l3LineSize, "l3-line-size", 8*mem.KB,
		"L3 line size in bytes")
	f.Uint64Var(&sweepFlags.l3HitPenalty, "l3-hit-penalty", 10000,
		"L3 hit penalty")
	f.Uint64Var(&sweepFlags.dramPenalty, "dram-penalty", 1_000_000,
		"backing memory access penalty")

	f.StringVar(&sweepFlags.output, "output", "",
		"result database name, auto-generated when empty")
	f.BoolVar(&sweepFlags.noDB, "no-db", false,
		"do not record results into a database")
	f.StringVar(&sweepFlags.csvPath, "csv", "",
		"also mirror results into a CSV file")
	f.BoolVar(&sweepFlags.monitorOn, "monitor", false,
		"serve sweep progress over HTTP")
	f.IntVar(&sweepFlags.monitorPort, "monitor-port", 0,
		"monitoring server port, 0 picks a free one")
	f.BoolVar(&sweepFlags.quiet, "quiet", false,
		"suppress per-trial progress narration")

	rootCmd.AddCommand(sweepCmd)
}

func runSweep(_ *cobra.Command, _ []string) error {
	_ = godotenv.Load()
	applyEnvDefaults()

	generator, err := makeGenerator()
	if err != nil {
		return err
	}

	builder := experiment.MakeBuilder().
		WithStrideRange(sweepFlags.minStride, sweepFlags.maxStride).
		WithMaxTrials(sweepFlags.maxTrials).
		WithEpsilon(sweepFlags.epsilon).
		WithRequiredSuccesses(sweepFlags.requiredSuccesses).
		WithHierarchy(makeHierarchy()).
		WithGenerator(generator).
		WithReporter(tableReporter{w: os.Stdout})

	if !sweepFlags.quiet {
		builder = builder.WithLogger(
			log.New(os.Stderr, "", log.LstdFlags))
	}

	if sweepFlags.csvPath != "" {
		builder = builder.WithReporter(
			recording.NewCSVWriter(sweepFlags.csvPath))
	}

	if !sweepFlags.noDB {
		builder = builder.WithReporter(
			recording.NewDBRecorder(sweepFlags.output))
	}

	var monitor *monitoring.Monitor
	if sweepFlags.monitorOn {
		monitor = monitoring.NewMonitor()
		if sweepFlags.monitorPort > 0 {
			monitor.WithPortNumber(sweepFlags.monitorPort)
		}
		builder = builder.WithReporter(monitor)
	}

	sweep := builder.Build()

	if monitor != nil {
		monitor.RegisterSweep(sweep)
		monitor.StartServer()
	}

	sweep.Run()

	atexit.Exit(0)

	return nil
}

// applyEnvDefaults fills flags that were left at their zero defaults from
// MEMLAT_* environment variables, typically provided through a .env file.
func applyEnvDefaults() {
	if sweepFlags.output == "" {
		sweepFlags.output = os.Getenv("MEMLAT_OUTPUT")
	}

	if sweepFlags.monitorPort == 0 {
		if port, err := strconv.Atoi(os.Getenv("MEMLAT_MONITOR_PORT")); err == nil {
			sweepFlags.monitorPort = port
		}
	}
}

func makeHierarchy() mem.HierarchyBuilder {
	return mem.MakeHierarchyBuilder().
		WithBackingMemoryPenalty(sweepFlags.dramPenalty).
		WithCacheLevel(mem.LevelSpec{
			NumLines:   sweepFlags.l1Lines,
			LineSize:   sweepFlags.l1LineSize,
			HitPenalty: sweepFlags.l1HitPenalty,
		}).
		WithCacheLevel(mem.LevelSpec{
			NumLines:   sweepFlags.l2Lines,
			LineSize:   sweepFlags.l2LineSize,
			HitPenalty: sweepFlags.l2HitPenalty,
		}).
		WithCacheLevel(mem.LevelSpec{
			NumLines:   sweepFlags.l3Lines,
			LineSize:   sweepFlags.l3LineSize,
			HitPenalty: sweepFlags.l3HitPenalty,
		})
}

func makeGenerator() (pattern.Generator, error) {
	seed := sweepFlags.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	switch sweepFlags.patternName {
	case "directed":
		return pattern.NewDirectedStrided(
			rng, sweepFlags.arraySize, sweepFlags.maxAddresses), nil
	case "random":
		return pattern.NewRandomStrided(
			rng, sweepFlags.arraySize, sweepFlags.maxAddresses), nil
	default:
		return nil, fmt.Errorf("unknown access pattern %q", sweepFlags.patternName)
	}
}
