package main

import (
	"context"
	"encoding/xml"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cognicore/korpus/pkg/korpus/table/sqlite"
)

// arXiv API endpoint
const apiURL = "http://export.arxiv.org/api/query"

// ArxivFeed represents the XML response from the arXiv API
type ArxivFeed struct {
	XMLName xml.Name     `xml:"feed"`
	Entries []ArxivEntry `xml:"entry"`
}

// ArxivEntry represents a single paper
type ArxivEntry struct {
	ID        string `xml:"id"`
	Title     string `xml:"title"`
	Summary   string `xml:"summary"`
	Published string `xml:"published"`
	Category  []struct {
		Term string `xml:"term,attr"`
	} `xml:"category"`
}

func main() {
	var (
		category   = flag.String("category", "cs.CL", "arXiv category to download")
		maxResults = flag.Int("max", 200, "Maximum number of papers")
		dbPath     = flag.String("db", "corpus.db", "SQLite database to write into")
		tableName  = flag.String("table", "articles", "Corpus table name")
	)
	flag.Parse()

	log.Printf("Downloading %d papers from arXiv category: %s", *maxResults, *category)
	log.Println("Categories: cs.AI (AI), cs.CL (NLP), cs.LG (ML), econ.EM (Economics), q-fin (Finance)")

	// Build query
	params := url.Values{}
	params.Set("search_query", "cat:"+*category)
	params.Set("max_results", fmt.Sprintf("%d", *maxResults))
	params.Set("sortBy", "submittedDate")
	params.Set("sortOrder", "descending")

	log.Println("Fetching from arXiv API...")
	resp, err := http.Get(apiURL + "?" + params.Encode())
	if err != nil {
		log.Fatal("Failed to fetch:", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		log.Fatalf("HTTP error: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatal("Failed to read response:", err)
	}

	var feed ArxivFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		log.Fatal("Failed to parse XML:", err)
	}

	log.Printf("Received %d papers", len(feed.Entries))

	ctx := context.Background()
	w, err := sqlite.NewWriter(ctx, *dbPath, *tableName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer w.Close()

	stored := 0
	for _, entry := range feed.Entries {
		pubTime, err := time.Parse("2006-01-02T15:04:05Z", entry.Published)
		if err != nil {
			pubTime = time.Now()
		}

		cat := "research"
		if len(entry.Category) > 0 {
			cat = mapArxivCategory(entry.Category[0].Term)
		}

		article := sqlite.Article{
			URL:         entry.ID,
			Title:       cleanText(entry.Title),
			Abstract:    cleanText(entry.Summary),
			PublishedAt: pubTime.Format(time.RFC3339),
			Source:      "arxiv.org",
			Category:    cat,
		}
		// An empty abstract would become an empty document downstream.
		if article.Abstract == "" {
			continue
		}

		if err := w.Upsert(ctx, article); err != nil {
			log.Printf("Failed to store %s: %v", entry.ID, err)
			continue
		}

		stored++
		if stored%25 == 0 {
			log.Printf("Processed %d/%d papers...", stored, len(feed.Entries))
		}
	}

	log.Printf("✓ Stored %d abstracts in %s (table %s)", stored, *dbPath, *tableName)
	log.Println("Categories found:", getCategoryStats(feed.Entries))
}

func mapArxivCategory(cat string) string {
	mapping := map[string]string{
		"cs.AI":   "ai",
		"cs.CL":   "nlp",
		"cs.LG":   "machine-learning",
		"cs.CV":   "computer-vision",
		"cs.CR":   "security",
		"cs.DB":   "database",
		"cs.SE":   "software-engineering",
		"econ.EM": "economics",
		"q-fin":   "finance",
		"stat.ML": "statistics",
		"math.OC": "optimization",
		"physics": "physics",
	}

	for prefix, category := range mapping {
		if strings.HasPrefix(cat, prefix) {
			return category
		}
	}

	// Fall back to the major category (before the dot)
	parts := strings.Split(cat, ".")
	if len(parts) > 0 {
		return parts[0]
	}

	return "research"
}

func cleanText(s string) string {
	// Collapse newlines and runs of whitespace
	return strings.Join(strings.Fields(s), " ")
}

func getCategoryStats(entries []ArxivEntry) map[string]int {
	stats := make(map[string]int)
	for _, e := range entries {
		for _, cat := range e.Category {
			stats[mapArxivCategory(cat.Term)]++
		}
	}
	return stats
}
