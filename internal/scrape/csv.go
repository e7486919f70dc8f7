package scrape

import (
	"encoding/csv"
	"io"
)

// WriteCSV escribe el resultado como CSV de una fila con header,
// el mismo formato que consume el loader de la base.
func (result Result) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)

	records := [][]string{
		{"name", "current_rating", "total_votes", "source_url", "scraped_at"},
		{
			result.Name,
			result.CurrentRating,
			result.TotalVotes,
			result.SourceURL,
			result.ScrapedAt.Format("2006-01-02 15:04:05"),
		},
	}

	if err := writer.WriteAll(records); err != nil {
		return err
	}
	return writer.Error()
}
