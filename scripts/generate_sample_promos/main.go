package main

import (
	"compress/gzip"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"
)

// generateSamplePromos creates a sample promo catalog for local development.
// Each line is CODE,AMOUNT with an optional RFC3339 expiry as third field.
func main() {
	dataDir := "data/promos"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	nextYear := time.Now().AddDate(1, 0, 0).Format(time.RFC3339)

	lines := []string{
		"# sample promo catalog",
		"BEMVINDO10,10.00",
		"FRETE2,2.00",
		"VERAO5,5.00," + nextYear,
		"NATAL2020,15.00,2020-12-26T00:00:00Z",
	}

	filePath := filepath.Join(dataDir, "promos.csv.gz")
	if err := createPromoFile(filePath, lines); err != nil {
		log.Fatalf("Failed to create %s: %v", filePath, err)
	}

	fmt.Printf("Created %s with %d entries\n", filePath, len(lines)-1)
	fmt.Println("\nUsable codes: BEMVINDO10 (10.00), FRETE2 (2.00), VERAO5 (5.00, expires next year)")
	fmt.Println("Expired code: NATAL2020")
}

func createPromoFile(filePath string, lines []string) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	for _, line := range lines {
		if _, err := fmt.Fprintf(gzipWriter, "%s\n", line); err != nil {
			return fmt.Errorf("failed to write entry: %w", err)
		}
	}

	return nil
}
