// Package warehouse implementa el demo de ingesta/consulta sobre BigQuery:
// sube un lote de logs de sentimiento social y extrae las marcas con mejor score.
// Es un job batch offline, no participa del serving de la API.
package warehouse

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/bigquery"
	"github.com/google/uuid"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// SentimentLog es una fila de la tabla de logs sociales.
type SentimentLog struct {
	Brand          string  `bigquery:"brand"`
	SentimentScore float64 `bigquery:"sentiment_score"`
	Platform       string  `bigquery:"platform"`
	Mentions       int64   `bigquery:"mentions"`
	BatchID        string  `bigquery:"batch_id"`
}

// Warehouse envuelve el cliente de BigQuery con el dataset/tabla del demo.
type Warehouse struct {
	client    *bigquery.Client
	datasetID string
	tableID   string
}

// New autentica con una service account key y arma el cliente.
// El project id sale de la key, no se configura aparte.
func New(ctx context.Context, keyPath, datasetID, tableID string) (*Warehouse, error) {
	client, err := bigquery.NewClient(ctx, bigquery.DetectProjectID, option.WithCredentialsFile(keyPath))
	if err != nil {
		return nil, fmt.Errorf("authenticating with service account key %q: %w", keyPath, err)
	}

	return &Warehouse{
		client:    client,
		datasetID: datasetID,
		tableID:   tableID,
	}, nil
}

// Close libera el cliente.
func (warehouse *Warehouse) Close() error {
	return warehouse.client.Close()
}

// EnsureDataset crea el dataset si no existe (location US, como el demo original).
func (warehouse *Warehouse) EnsureDataset(ctx context.Context) error {
	err := warehouse.client.Dataset(warehouse.datasetID).Create(ctx, &bigquery.DatasetMetadata{
		Location: "US",
	})
	if isAlreadyExists(err) {
		return nil
	}
	return err
}

// LoadBatch sube el lote con semántica WRITE_TRUNCATE: la tabla del demo
// se recrea en cada corrida, no se acumulan corridas viejas.
func (warehouse *Warehouse) LoadBatch(ctx context.Context, logs []SentimentLog) error {
	table := warehouse.client.Dataset(warehouse.datasetID).Table(warehouse.tableID)

	if err := table.Delete(ctx); err != nil && !isNotFound(err) {
		return err
	}

	schema, err := bigquery.InferSchema(SentimentLog{})
	if err != nil {
		return err
	}
	if err := table.Create(ctx, &bigquery.TableMetadata{Schema: schema}); err != nil {
		return err
	}

	return table.Inserter().Put(ctx, logs)
}

// HighSentiment extrae las filas con score por encima del umbral,
// ordenadas por menciones. El umbral va como parámetro de query.
func (warehouse *Warehouse) HighSentiment(ctx context.Context, threshold float64) ([]SentimentLog, error) {
	query := warehouse.client.Query(highSentimentSQL(warehouse.client.Project(), warehouse.datasetID, warehouse.tableID))
	query.Parameters = []bigquery.QueryParameter{
		{Name: "threshold", Value: threshold},
	}

	it, err := query.Read(ctx)
	if err != nil {
		return nil, err
	}

	results := []SentimentLog{}
	for {
		var row SentimentLog
		err := it.Next(&row)
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		results = append(results, row)
	}

	return results, nil
}

func highSentimentSQL(projectID, datasetID, tableID string) string {
	return fmt.Sprintf(
		"SELECT brand, platform, mentions, sentiment_score, batch_id FROM `%s.%s.%s` WHERE sentiment_score > @threshold ORDER BY mentions DESC",
		projectID, datasetID, tableID,
	)
}

// SeedBatch arma el lote de ejemplo del demo. Todas las filas comparten
// un batch id para poder rastrear la corrida.
func SeedBatch() []SentimentLog {
	batchID := uuid.NewString()
	return []SentimentLog{
		{Brand: "Lattafa", SentimentScore: 0.85, Platform: "TikTok", Mentions: 1500, BatchID: batchID},
		{Brand: "Xerjoff", SentimentScore: 0.92, Platform: "Instagram", Mentions: 320, BatchID: batchID},
		{Brand: "Ajmal", SentimentScore: 0.76, Platform: "Twitter", Mentions: 890, BatchID: batchID},
		{Brand: "Al Haramain", SentimentScore: 0.81, Platform: "TikTok", Mentions: 1200, BatchID: batchID},
	}
}

func isAlreadyExists(err error) bool {
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == 409
}

func isNotFound(err error) bool {
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == 404
}
