package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/cognicore/korpus/pkg/korpus"
	"github.com/cognicore/korpus/pkg/korpus/config"
	"github.com/cognicore/korpus/pkg/korpus/corpus"
	"github.com/cognicore/korpus/pkg/korpus/stats"
	"github.com/cognicore/korpus/pkg/korpus/table/sqlite"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Optional YAML config file")
		db          = flag.String("db", "", "SQLite database holding the corpus table")
		tableName   = flag.String("table", "", "Corpus table name (default: articles)")
		column      = flag.String("column", "", "Text column to tokenize (default: abstract)")
		n           = flag.Int("n", 10, "Number of training examples to emit")
		window      = flag.Int("window", 0, "Context window override")
		negative    = flag.Int("negative", 0, "Negatives-per-example override")
		maxAttempts = flag.Int("max-attempts", 0, "Cap on context resampling attempts (0 = unbounded)")
		seed        = flag.Int64("seed", 0, "Random seed (0 = time-seeded)")
		threshold   = flag.Float64("threshold", 0, "Subsampling threshold override")
		statsOnly   = flag.Bool("stats", false, "Print a corpus stats report instead of examples")
		top         = flag.Int("top", 20, "Top words to include in the stats report")
		outPath     = flag.String("out", "", "Output file (default stdout)")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}

	// Flags override the config where set.
	if *db != "" {
		cfg.Table.Path = *db
	}
	if *tableName != "" {
		cfg.Table.Name = *tableName
	}
	if *column != "" {
		cfg.Table.TextColumn = *column
	}
	if *window > 0 {
		cfg.Window = *window
	}
	if *negative > 0 {
		cfg.NumNegative = *negative
	}
	if *maxAttempts > 0 {
		cfg.MaxAttempts = *maxAttempts
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *threshold > 0 {
		cfg.SubsampleThreshold = *threshold
	}

	if cfg.Table.Path == "" {
		log.Fatal("-db (or table.path in the config) is required")
	}

	ctx := context.Background()

	tbl, err := sqlite.Open(ctx, cfg.Table.Path, cfg.Table.Name)
	if err != nil {
		log.Fatalf("open table: %v", err)
	}
	defer tbl.Close()

	c, err := corpus.FromTable(tbl, cfg.Table.TextColumn)
	if err != nil {
		log.Fatalf("build corpus: %v", err)
	}
	c.ComputeRejectionProbs(cfg.SubsampleThreshold)

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Fatalf("create output: %v", err)
		}
		defer f.Close()
		out = f
	}

	if *statsOnly {
		report := stats.Compute(c, *top)
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			log.Fatalf("marshal report: %v", err)
		}
		fmt.Fprintln(out, string(data))
		return
	}

	k, err := korpus.New(korpus.Options{
		Corpus:             c,
		SubsampleThreshold: cfg.SubsampleThreshold,
		Window:             cfg.Window,
		NumNegative:        cfg.NumNegative,
		MaxAttempts:        cfg.MaxAttempts,
		Rand:               cfg.Rand(),
	})
	if err != nil {
		log.Fatalf("init samplers: %v", err)
	}

	enc := json.NewEncoder(out)
	for i := 0; i < *n; i++ {
		ex, err := k.Example()
		if err != nil {
			log.Fatalf("draw example %d: %v", i+1, err)
		}
		if err := enc.Encode(ex); err != nil {
			log.Fatalf("write example: %v", err)
		}
	}
}
