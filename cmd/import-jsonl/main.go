package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/cognicore/korpus/internal/jsonl"
	"github.com/cognicore/korpus/pkg/korpus/table/sqlite"
)

func main() {
	var (
		dbPath    = flag.String("db", "", "Database path (required)")
		dataPath  = flag.String("data", "", "Input JSONL file (required)")
		tableName = flag.String("table", "articles", "Corpus table name")
	)
	flag.Parse()

	if *dbPath == "" {
		log.Fatal("-db required")
	}
	if *dataPath == "" {
		log.Fatal("-data required")
	}

	ctx := context.Background()

	w, err := sqlite.NewWriter(ctx, *dbPath, *tableName)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer w.Close()

	items, err := jsonl.Load(*dataPath)
	if err != nil {
		log.Fatal("Failed to load documents:", err)
	}

	log.Printf("Loaded %d documents from %s", len(items), *dataPath)

	stored := 0
	for i, item := range items {
		if item.Body == "" {
			log.Printf("Skipping %s: empty text", item.URL)
			continue
		}

		published := ""
		if !item.PublishedAt.IsZero() {
			published = item.PublishedAt.Format(time.RFC3339)
		}

		article := sqlite.Article{
			URL:         item.URL,
			Title:       item.Title,
			Abstract:    item.Body,
			PublishedAt: published,
			Source:      item.Source,
			Category:    item.Category,
		}

		if err := w.Upsert(ctx, article); err != nil {
			log.Printf("Failed to store document %d (%s): %v", i, item.Title, err)
			continue
		}
		stored++

		if (i+1)%10 == 0 {
			log.Printf("Imported %d/%d documents", i+1, len(items))
		}
	}

	log.Printf("✓ Import complete: %d of %d documents stored", stored, len(items))
}
