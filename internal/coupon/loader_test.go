package coupon

import (
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createCodeFile writes a plain-text code file, one code per line.
func createCodeFile(t *testing.T, filename string, codes []string) string {
	t.Helper()
	filePath := filepath.Join(t.TempDir(), filename)

	file, err := os.Create(filePath)
	require.NoError(t, err)
	defer file.Close()

	for _, code := range codes {
		_, err := file.WriteString(code + "\n")
		require.NoError(t, err)
	}

	return filePath
}

// createGzippedCodeFile writes a gzipped code file.
func createGzippedCodeFile(t *testing.T, filename string, codes []string) string {
	t.Helper()
	filePath := filepath.Join(t.TempDir(), filename)

	file, err := os.Create(filePath)
	require.NoError(t, err)
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	for _, code := range codes {
		_, err := gzipWriter.Write([]byte(code + "\n"))
		require.NoError(t, err)
	}

	return filePath
}

func TestFileLoader_Load_Success(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	codes := []string{"TESTCODE1", "TESTCODE2", "VALIDPROMO", "DISCOUNT10"}
	filePath := createCodeFile(t, "codes.txt", codes)

	got, err := loader.Load(context.Background(), filePath)

	require.NoError(t, err)
	assert.Equal(t, codes, got)
}

func TestFileLoader_Load_Gzipped(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	codes := []string{"GZCODE1", "GZCODE2", "GZCODE3"}
	filePath := createGzippedCodeFile(t, "codes.txt.gz", codes)

	got, err := loader.Load(context.Background(), filePath)

	require.NoError(t, err)
	assert.Equal(t, codes, got)
}

func TestFileLoader_Load_DeduplicatesPreservingOrder(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	filePath := createCodeFile(t, "codes.txt", []string{"AAA", "BBB", "AAA", "CCC", "BBB"})

	got, err := loader.Load(context.Background(), filePath)

	require.NoError(t, err)
	assert.Equal(t, []string{"AAA", "BBB", "CCC"}, got)
}

func TestFileLoader_Load_SkipsBlankLinesAndWhitespace(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	filePath := createCodeFile(t, "codes.txt", []string{"  AAA  ", "", "   ", "BBB"})

	got, err := loader.Load(context.Background(), filePath)

	require.NoError(t, err)
	assert.Equal(t, []string{"AAA", "BBB"}, got)
}

func TestFileLoader_Load_MissingFile(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	_, err := loader.Load(context.Background(), "/nonexistent/codes.txt")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open code file")
}

func TestFileLoader_Load_CorruptGzip(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	// A .gz suffix with plain-text content is not a valid gzip stream.
	filePath := createCodeFile(t, "codes.txt.gz", []string{"NOTGZIPPED"})

	_, err := loader.Load(context.Background(), filePath)

	assert.Error(t, err)
}

func TestFallbackLoader_UsesFileLoaderWhenS3Disabled(t *testing.T) {
	fileLoader := NewFileLoader(zerolog.Nop())
	loader := NewFallbackLoader(nil, fileLoader, "coupons/", false, zerolog.Nop())

	codes := []string{"LOCAL1", "LOCAL2"}
	filePath := createCodeFile(t, "codes.txt", codes)

	got, err := loader.Load(context.Background(), filePath)

	require.NoError(t, err)
	assert.Equal(t, codes, got)
}

type failingLoader struct{}

func (failingLoader) Load(context.Context, string) ([]string, error) {
	return nil, assert.AnError
}

func TestFallbackLoader_FallsBackOnS3Error(t *testing.T) {
	fileLoader := NewFileLoader(zerolog.Nop())
	loader := NewFallbackLoader(failingLoader{}, fileLoader, "coupons/", true, zerolog.Nop())

	codes := []string{"FALLBACK1"}
	filePath := createCodeFile(t, "codes.txt", codes)

	got, err := loader.Load(context.Background(), filePath)

	require.NoError(t, err)
	assert.Equal(t, codes, got)
}

func TestFileLoader_Load_CancelledContext(t *testing.T) {
	loader := NewFileLoader(zerolog.Nop())

	filePath := createCodeFile(t, "codes.txt", []string{"AAA"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := loader.Load(ctx, filePath)

	assert.ErrorIs(t, err, context.Canceled)
}
