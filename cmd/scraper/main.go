// Scraper de ratings en vivo: trae el rating actual de una página de producto,
// lo guarda en CSV y, opcionalmente, refresca la fila en la base.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/Lelo88/perfume-intel-api/internal/db"
	"github.com/Lelo88/perfume-intel-api/internal/scrape"
)

func main() {
	targetURL := flag.String("url", "https://www.fragrantica.com/perfume/Lattafa-Perfumes/Khamrah-75805.html", "Product page to scrape")
	outPath := flag.String("out", "scraped_live_update.csv", "CSV output path")
	databaseURL := flag.String("database-url", "", "Optional: refresh the scraped rating in this database")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := scrape.NewClient()
	if err != nil {
		log.Fatalf("building scrape client: %v", err)
	}

	log.Printf("connecting to %s", *targetURL)
	result, err := client.Fetch(ctx, *targetURL)
	if err != nil {
		log.Fatalf("scraping %s: %v", *targetURL, err)
	}
	log.Printf("extracted: name=%q rating=%s votes=%s", result.Name, result.CurrentRating, result.TotalVotes)

	file, err := os.Create(*outPath)
	if err != nil {
		log.Fatalf("creating %s: %v", *outPath, err)
	}
	defer file.Close()

	if err := result.WriteCSV(file); err != nil {
		log.Fatalf("writing %s: %v", *outPath, err)
	}
	log.Printf("saved to %s", *outPath)

	if *databaseURL == "" {
		return
	}

	pool, err := db.NewPool(ctx, *databaseURL)
	if err != nil {
		log.Fatalf("connecting to database: %v", err)
	}
	defer pool.Close()

	if err := scrape.Refresh(ctx, pool, result); err != nil {
		log.Fatalf("refreshing database: %v", err)
	}
	log.Printf("database rating refreshed for %q", result.Name)
}
