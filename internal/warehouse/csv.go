package warehouse

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteCSV escribe la extracción como CSV con header, una fila por resultado.
func WriteCSV(w io.Writer, logs []SentimentLog) error {
	writer := csv.NewWriter(w)

	records := [][]string{
		{"brand", "platform", "mentions", "sentiment_score", "batch_id"},
	}
	for _, row := range logs {
		records = append(records, []string{
			row.Brand,
			row.Platform,
			strconv.FormatInt(row.Mentions, 10),
			strconv.FormatFloat(row.SentimentScore, 'f', -1, 64),
			row.BatchID,
		})
	}

	if err := writer.WriteAll(records); err != nil {
		return err
	}
	return writer.Error()
}
