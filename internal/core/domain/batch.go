// internal/core/domain/batch.go
package domain

// DefaultBatchSize is both the per-batch cap and the single-pass threshold.
const DefaultBatchSize = 200

// Batch es un tramo contiguo de la lista de candidatos que escanea un
// proceso independiente.
type Batch struct {
	Index int
	Name  ArtifactName
	URLs  []string
}

// Partition splits urls into contiguous batches of size (the last one may be
// shorter). URL i lands in batch i/size.
func Partition(urls []string, size int) ([]Batch, error) {
	if size <= 0 {
		return nil, ErrInvalidBatchSize
	}
	batches := make([]Batch, 0, (len(urls)+size-1)/size)
	for start := 0; start < len(urls); start += size {
		end := min(start+size, len(urls))
		idx := start / size
		batches = append(batches, Batch{
			Index: idx,
			Name:  BatchArtifact(idx),
			URLs:  urls[start:end:end],
		})
	}
	return batches, nil
}

// NeedsBatching reports whether count URLs exceed the single-pass threshold.
func NeedsBatching(count, size int) bool {
	return count > size
}
