// Command polarvec runs a batch of polar encode/decode vectors described
// by a fecconfig YAML file, reporting per-vector pass/fail.
//
// Companion to cmd/fecvec; see that command's doc comment for the pflag
// and concurrency grounding, which this driver shares.
package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/srsgo/fec"
	"github.com/srsgo/fec/fecconfig"
	"github.com/srsgo/fec/polar"
)

func main() {
	var configFile = pflag.StringP("config-file", "c", "", "Vector batch YAML file (required).")
	var parallel = pflag.BoolP("parallel", "p", false, "Run every vector concurrently instead of sequentially.")
	var help = pflag.BoolP("help", "h", false, "Display help text.")

	pflag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: polarvec -c vectors.yaml [-p]")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help {
		pflag.Usage()
		return
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "polarvec"})

	if *configFile == "" {
		logger.Error("missing required flag", "flag", "-c")
		pflag.Usage()
		os.Exit(2)
	}

	batch, err := fecconfig.Load(*configFile)
	if err != nil {
		logger.Error("failed to load vector batch", "err", err)
		os.Exit(1)
	}

	results := make([]error, len(batch.Polar))
	if *parallel {
		var g errgroup.Group
		for i := range batch.Polar {
			i := i
			g.Go(func() error {
				results[i] = runVector(batch.Polar[i])
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i := range batch.Polar {
			results[i] = runVector(batch.Polar[i])
		}
	}

	failed := 0
	for i, err := range results {
		name := batch.Polar[i].Name
		if err != nil {
			failed++
			logger.Error("vector failed", "name", name, "err", err)
		} else {
			logger.Info("vector passed", "name", name)
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func runVector(v fecconfig.PolarVector) error {
	size := 1 << v.N
	frozen := polar.SortedFrozenSet(v.Frozen)
	k := size - len(frozen)
	if k <= 0 {
		return fmt.Errorf("frozen set leaves no information bits")
	}

	enc, err := polar.NewEncoder(v.N, v.BackendValue())
	if err != nil {
		return fmt.Errorf("construct encoder: %w", err)
	}
	dec, err := polar.NewDecoder(v.N, frozen, v.PrecisionValue(), v.BackendValue())
	if err != nil {
		return fmt.Errorf("construct decoder: %w", err)
	}

	mask := frozen.Mask(size)
	rng := rand.New(rand.NewSource(v.Seed))
	u := make([]fec.Bit, size)
	for i := 0; i < size; i++ {
		if !mask[i] {
			u[i] = fec.Bit(rng.Intn(2))
		}
	}

	codeword := make([]fec.Bit, size)
	if err := enc.Encode(u, codeword); err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	llrs := make([]float64, size)
	for i, b := range codeword {
		llrs[i] = (1 - 2*float64(b)) * 1e6
	}

	out := make([]fec.Bit, size)
	if err := dec.Decode(llrs, out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	for i := range u {
		if out[i] != u[i] {
			return fmt.Errorf("mismatch at bit %d", i)
		}
	}
	return nil
}
