package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/cognicore/korpus/pkg/korpus/table/sqlite"
)

// Hacker News API endpoints
const (
	apiBase       = "https://hacker-news.firebaseio.com/v0"
	topStoriesURL = apiBase + "/topstories.json"
	itemURL       = apiBase + "/item/%d.json"
)

// HNItem represents a Hacker News story or comment
type HNItem struct {
	ID    int64  `json:"id"`
	Type  string `json:"type"`
	Time  int64  `json:"time"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Text  string `json:"text"`
}

func main() {
	var (
		count     = flag.Int("count", 100, "Number of top stories to download")
		dbPath    = flag.String("db", "corpus.db", "SQLite database to write into")
		tableName = flag.String("table", "articles", "Corpus table name")
	)
	flag.Parse()

	log.Printf("Downloading top %d Hacker News stories...", *count)

	storyIDs, err := getTopStories()
	if err != nil {
		log.Fatal("Failed to get top stories:", err)
	}
	if *count < len(storyIDs) {
		storyIDs = storyIDs[:*count]
	}

	ctx := context.Background()
	w, err := sqlite.NewWriter(ctx, *dbPath, *tableName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer w.Close()

	stored := 0
	for i, id := range storyIDs {
		item, err := getItem(id)
		if err != nil {
			log.Printf("Failed to get item %d: %v", id, err)
			continue
		}

		// Only stories carry corpus text (not comments, polls, jobs)
		if item.Type != "story" || item.Title == "" {
			continue
		}

		article := sqlite.Article{
			URL:         fmt.Sprintf("https://news.ycombinator.com/item?id=%d", item.ID),
			Title:       item.Title,
			Abstract:    buildAbstract(item.Title, item.Text),
			PublishedAt: time.Unix(item.Time, 0).UTC().Format(time.RFC3339),
			Source:      "news.ycombinator.com",
			Category:    categorize(item.Title, item.URL),
		}

		if err := w.Upsert(ctx, article); err != nil {
			log.Printf("Failed to store item %d: %v", item.ID, err)
			continue
		}

		stored++
		if (i+1)%10 == 0 {
			log.Printf("Downloaded %d/%d stories...", stored, len(storyIDs))
		}

		// Be nice to the API
		time.Sleep(50 * time.Millisecond)
	}

	log.Printf("✓ Stored %d stories in %s (table %s)", stored, *dbPath, *tableName)
}

func getTopStories() ([]int64, error) {
	resp, err := http.Get(topStoriesURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var ids []int64
	if err := json.NewDecoder(resp.Body).Decode(&ids); err != nil {
		return nil, err
	}

	return ids, nil
}

func getItem(id int64) (*HNItem, error) {
	url := fmt.Sprintf(itemURL, id)
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var item HNItem
	if err := json.Unmarshal(body, &item); err != nil {
		return nil, err
	}

	return &item, nil
}

// buildAbstract assembles the text the corpus later whitespace-splits: the
// story title plus the HTML-stripped self text.
func buildAbstract(title, text string) string {
	s := title
	if text != "" {
		s += ". " + stripHTML(text)
	}
	return strings.Join(strings.Fields(s), " ")
}

// categorize picks the primary category from title/URL keywords.
func categorize(title, url string) string {
	lower := strings.ToLower(title + " " + url)

	switch {
	case containsAny(lower, "ai", "llm", "gpt", "machine learning", "neural"):
		return "ai"
	case containsAny(lower, "startup", "funding", "series a", "venture", "vc"):
		return "startup"
	case containsAny(lower, "programming", "code", "developer", "framework", "library"):
		return "programming"
	case containsAny(lower, "security", "vulnerability", "breach", "hack", "crypto"):
		return "security"
	case containsAny(lower, "web", "browser", "chrome", "firefox", "html", "css"):
		return "web"
	case containsAny(lower, "open source", "oss", "github", "license"):
		return "opensource"
	}

	return "tech"
}

func containsAny(s string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

func stripHTML(s string) string {
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		// Fallback to string if parsing fails
		return s
	}

	var buf strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
	}
	extractText(doc)

	return strings.TrimSpace(buf.String())
}
