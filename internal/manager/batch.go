package manager

import (
	"fmt"

	"github.com/ternarybob/colligo/internal/models"
)

// planBatches partitions documents into ordered chunks of at most size
// elements. Concatenation of the chunks equals the input order exactly;
// no filtering happens here - dedup must run before planning.
func planBatches(docs []models.Document, size int) ([][]models.Document, error) {
	if size < 1 {
		return nil, fmt.Errorf("batch size must be >= 1, got %d", size)
	}

	batches := make([][]models.Document, 0, (len(docs)+size-1)/size)
	for start := 0; start < len(docs); start += size {
		end := start + size
		if end > len(docs) {
			end = len(docs)
		}
		batches = append(batches, docs[start:end])
	}
	return batches, nil
}
