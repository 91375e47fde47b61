package promo

import (
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

// s3Loader implements Loader for reading gzipped promo catalogs from AWS S3.
type s3Loader struct {
	client *s3.Client
	bucket string
	prefix string
	logger zerolog.Logger
}

// NewS3Loader creates a new S3-based promo catalog loader. Catalog paths are
// mapped to object keys by joining prefix with the path's base name, so the
// same paths work for both S3 and local-file loading.
func NewS3Loader(ctx context.Context, bucket, region, prefix string, logger zerolog.Logger) (Loader, error) {
	logger = logger.With().Str("component", "s3-promo-loader").Logger()

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		logger.Error().Err(err).Msg("failed to load AWS configuration")
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(cfg)

	logger.Info().
		Str("bucket", bucket).
		Str("region", region).
		Msg("S3 promo loader initialised")

	return &s3Loader{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
	}, nil
}

// objectKey maps a catalog path to its S3 key under the configured prefix.
func (l *s3Loader) objectKey(p string) string {
	return path.Join(l.prefix, path.Base(p))
}

// Load reads a gzipped promo catalog from S3 and returns a Catalog.
func (l *s3Loader) Load(ctx context.Context, catalogPath string) (Catalog, error) {
	key := l.objectKey(catalogPath)
	l.logger.Info().
		Str("bucket", l.bucket).
		Str("key", key).
		Msg("loading promo catalog from S3")

	result, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		l.logger.Error().
			Err(err).
			Str("bucket", l.bucket).
			Str("key", key).
			Msg("failed to get object from S3")
		return nil, fmt.Errorf("failed to get object from S3 (bucket=%s, key=%s): %w", l.bucket, key, err)
	}
	defer result.Body.Close()

	catalog, err := readCatalog(ctx, result.Body)
	if err != nil {
		l.logger.Error().
			Err(err).
			Str("bucket", l.bucket).
			Str("key", key).
			Msg("failed to read promo catalog from S3")
		return nil, fmt.Errorf("failed to read promo catalog from S3 %s: %w", key, err)
	}

	l.logger.Info().
		Str("bucket", l.bucket).
		Str("key", key).
		Int("codes_loaded", catalog.Size()).
		Msg("promo catalog loaded successfully from S3")

	return catalog, nil
}

// fallbackLoader implements a two-tier loader: it tries the primary source
// first and falls back to the secondary when the primary fails.
type fallbackLoader struct {
	primary  Loader
	fallback Loader
	logger   zerolog.Logger
}

// NewFallbackLoader creates a loader that tries primary first and falls back
// to the given fallback loader on failure.
func NewFallbackLoader(primary, fallback Loader, logger zerolog.Logger) Loader {
	return &fallbackLoader{
		primary:  primary,
		fallback: fallback,
		logger:   logger.With().Str("component", "fallback-promo-loader").Logger(),
	}
}

// Load loads the catalog through the primary loader, falling back on error.
func (l *fallbackLoader) Load(ctx context.Context, path string) (Catalog, error) {
	catalog, err := l.primary.Load(ctx, path)
	if err == nil {
		return catalog, nil
	}

	l.logger.Warn().
		Err(err).
		Str("path", path).
		Msg("primary promo source failed, falling back")

	return l.fallback.Load(ctx, path)
}
