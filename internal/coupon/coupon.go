package coupon

import "context"

// Loader defines the interface for loading coupon code files. A code file
// contains one coupon code per line; files ending in .gz are gzipped.
type Loader interface {
	// Load reads a code file and returns its codes, deduplicated, in file order.
	Load(ctx context.Context, filePath string) ([]string, error)
}
