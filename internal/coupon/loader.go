package coupon

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// fileLoader implements Loader for reading code files from the local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based code loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "coupon-loader").Logger(),
	}
}

// Load reads a code file and returns its codes.
func (l *fileLoader) Load(ctx context.Context, filePath string) ([]string, error) {
	l.logger.Info().Str("file", filePath).Msg("loading coupon code file")

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open code file")
		return nil, fmt.Errorf("failed to open code file %s: %w", filePath, err)
	}
	defer file.Close()

	codes, err := readCodes(ctx, file, filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to read code file")
		return nil, err
	}

	l.logger.Info().
		Str("file", filePath).
		Int("codes_loaded", len(codes)).
		Msg("coupon code file loaded successfully")

	return codes, nil
}

// readCodes reads one code per line from r, transparently decompressing
// gzipped files, deduplicating while preserving file order.
func readCodes(ctx context.Context, r io.Reader, name string) ([]string, error) {
	if strings.HasSuffix(name, ".gz") {
		gzipReader, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader for %s: %w", name, err)
		}
		defer gzipReader.Close()
		r = gzipReader
	}

	seen := make(map[string]struct{})
	var codes []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineCount := 0
	for scanner.Scan() {
		// Check context cancellation periodically
		if lineCount%100_000 == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}
		lineCount++

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		codes = append(codes, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading code file %s: %w", name, err)
	}

	return codes, nil
}
