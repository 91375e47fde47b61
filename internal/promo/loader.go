package promo

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for reading gzipped promo catalog files.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based promo catalog loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "promo-loader").Logger(),
	}
}

// Load reads a gzipped promo catalog file and returns a Catalog.
// Each line holds CODE,AMOUNT or CODE,AMOUNT,EXPIRES with EXPIRES as an
// RFC 3339 date. Blank lines and lines starting with # are skipped.
func (l *fileLoader) Load(ctx context.Context, path string) (Catalog, error) {
	l.logger.Info().Str("file", path).Msg("loading promo catalog")

	file, err := os.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open promo catalog")
		return nil, fmt.Errorf("failed to open promo catalog %s: %w", path, err)
	}
	defer file.Close()

	catalog, err := readCatalog(ctx, file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to read promo catalog")
		return nil, fmt.Errorf("failed to read promo catalog %s: %w", path, err)
	}

	l.logger.Info().
		Str("file", path).
		Int("codes_loaded", catalog.Size()).
		Msg("promo catalog loaded successfully")

	return catalog, nil
}

// readCatalog parses a gzipped promo catalog stream.
func readCatalog(ctx context.Context, r io.Reader) (Catalog, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	catalog := NewMapCatalog(1024).(*mapCatalog)

	scanner := bufio.NewScanner(gzipReader)
	lineNo := 0
	for scanner.Scan() {
		lineNo++

		// Check context cancellation periodically
		if lineNo%10_000 == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry, code, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		catalog.Add(code, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading promo catalog: %w", err)
	}

	return catalog, nil
}

// parseLine parses one CODE,AMOUNT[,EXPIRES] catalog line.
func parseLine(line string) (Discount, string, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 2 || len(fields) > 3 {
		return Discount{}, "", fmt.Errorf("expected CODE,AMOUNT[,EXPIRES], got %q", line)
	}

	code := strings.TrimSpace(fields[0])
	if code == "" {
		return Discount{}, "", fmt.Errorf("empty promo code in %q", line)
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
	if err != nil {
		return Discount{}, "", fmt.Errorf("invalid discount amount %q: %w", fields[1], err)
	}
	if amount < 0 {
		return Discount{}, "", fmt.Errorf("negative discount amount %q", fields[1])
	}

	discount := Discount{Amount: amount}
	if len(fields) == 3 {
		expires, err := time.Parse(time.RFC3339, strings.TrimSpace(fields[2]))
		if err != nil {
			return Discount{}, "", fmt.Errorf("invalid expiry %q: %w", fields[2], err)
		}
		discount.Expires = expires
	}

	return discount, code, nil
}
