// Command ratesgen builds the static conversion-rates JSON resource consumed
// by the backend. It downloads the public ECB historical reference-rate
// archive, extracts the daily EUR rates for one calendar year and writes them
// as a JSON array of {date, rates} objects, newest first.
//
// This is an offline, one-time tool; the server itself never fetches rates.
//
// Usage:
//
//	ratesgen -year 2024 [-out data/conversion-rates.json] [-force]
package main

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/username/fursrevolut/backend/src/models"
)

const (
	ecbArchiveURL   = "https://www.ecb.europa.eu/stats/eurofxref/eurofxref-hist.zip"
	ecbArchiveEntry = "eurofxref-hist.csv"
)

func main() {
	year := flag.Int("year", 0, "calendar year to extract (required)")
	out := flag.String("out", "", "output path (default data/conversion-rates-<year>.json)")
	force := flag.Bool("force", false, "overwrite an existing output file")
	flag.Parse()

	if *year < 1999 || *year > 9999 {
		log.Fatalf("missing or invalid -year value: %d", *year)
	}

	outputPath := *out
	if outputPath == "" {
		outputPath = filepath.Join("data", fmt.Sprintf("conversion-rates-%d.json", *year))
	}

	if _, err := os.Stat(outputPath); err == nil && !*force {
		log.Fatalf("refusing to overwrite existing file at %s; use -force to override", outputPath)
	}

	csvData, err := fetchHistoricalCSV()
	if err != nil {
		log.Fatalf("downloading ECB archive: %v", err)
	}

	rows, err := buildYearlyRates(csvData, *year)
	if err != nil {
		log.Fatalf("building rates: %v", err)
	}
	if len(rows) == 0 {
		log.Fatalf("no conversion rates found for year %d", *year)
	}

	payload, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		log.Fatalf("encoding rates: %v", err)
	}
	payload = append(payload, '\n')

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		log.Fatalf("creating output directory: %v", err)
	}
	if err := os.WriteFile(outputPath, payload, 0o644); err != nil {
		log.Fatalf("writing output: %v", err)
	}

	log.Printf("Saved %d daily rate entries for %d to %s", len(rows), *year, outputPath)
}

// fetchHistoricalCSV downloads the ECB zip archive and extracts the historical
// rates CSV from it.
func fetchHistoricalCSV() (string, error) {
	resp, err := http.Get(ecbArchiveURL)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s from %s", resp.Status, ecbArchiveURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	zipReader, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return "", fmt.Errorf("opening archive: %w", err)
	}
	for _, entry := range zipReader.File {
		if entry.Name != ecbArchiveEntry {
			continue
		}
		rc, err := entry.Open()
		if err != nil {
			return "", err
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return "", fmt.Errorf("could not find %s in downloaded archive", ecbArchiveEntry)
}

// buildYearlyRates converts the ECB CSV (Date,USD,JPY,... with N/A gaps) into
// per-day rate rows for the target year, sorted newest first.
func buildYearlyRates(csvData string, targetYear int) ([]models.ConversionRateRow, error) {
	reader := csv.NewReader(strings.NewReader(csvData))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	var rows []models.ConversionRateRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV: %w", err)
		}
		if len(record) == 0 || len(record[0]) < 4 {
			continue
		}
		date := record[0]
		year, err := strconv.Atoi(date[:4])
		if err != nil || year != targetYear {
			continue
		}

		rates := make(map[string]float64)
		for i := 1; i < len(record) && i < len(header); i++ {
			currency := strings.TrimSpace(header[i])
			if currency == "" {
				continue
			}
			value, err := strconv.ParseFloat(strings.TrimSpace(record[i]), 64)
			if err != nil {
				continue // N/A or empty trailing column
			}
			rates[currency] = value
		}

		rows = append(rows, models.ConversionRateRow{Date: date, Rates: rates})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Date > rows[j].Date })
	return rows, nil
}
