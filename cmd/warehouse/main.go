// Demo de big data sobre BigQuery: ingesta un lote de logs de sentimiento
// social y extrae las marcas con score alto. Job offline, corre a mano.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/Lelo88/perfume-intel-api/internal/warehouse"
)

func main() {
	keyPath := flag.String("key", "gcp_keys.json", "Service account JSON key path")
	datasetID := flag.String("dataset", "social_data", "BigQuery dataset id")
	tableID := flag.String("table", "sentiment_logs", "BigQuery table id")
	threshold := flag.Float64("threshold", 0.8, "Minimum sentiment score to extract")
	outPath := flag.String("out", "bigquery_extract.csv", "CSV output path for the extraction")
	flag.Parse()

	// Chequeo temprano: sin key no hay nada que intentar contra la red.
	if _, err := os.Stat(*keyPath); err != nil {
		log.Fatalf("service account key %q not found: download a JSON key for your project and save it there", *keyPath)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	log.Print("authenticating with Google Cloud")
	wh, err := warehouse.New(ctx, *keyPath, *datasetID, *tableID)
	if err != nil {
		log.Fatal(err)
	}
	defer wh.Close()

	log.Printf("setting up dataset %s", *datasetID)
	if err := wh.EnsureDataset(ctx); err != nil {
		log.Fatalf("creating dataset: %v", err)
	}

	batch := warehouse.SeedBatch()
	log.Printf("loading %d rows into %s.%s", len(batch), *datasetID, *tableID)
	if err := wh.LoadBatch(ctx, batch); err != nil {
		log.Fatalf("loading batch: %v", err)
	}
	log.Print("ingestion complete")

	log.Printf("extracting rows with sentiment_score > %.2f", *threshold)
	results, err := wh.HighSentiment(ctx, *threshold)
	if err != nil {
		log.Fatalf("querying: %v", err)
	}

	for _, row := range results {
		log.Printf("  %-12s %-10s mentions=%-6d score=%.2f", row.Brand, row.Platform, row.Mentions, row.SentimentScore)
	}

	file, err := os.Create(*outPath)
	if err != nil {
		log.Fatalf("creating %s: %v", *outPath, err)
	}
	defer file.Close()

	if err := warehouse.WriteCSV(file, results); err != nil {
		log.Fatalf("writing %s: %v", *outPath, err)
	}
	log.Printf("extraction saved to %s", *outPath)
}
