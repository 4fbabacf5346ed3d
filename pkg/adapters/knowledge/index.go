package knowledge

import (
	"sort"
	"sync"

	"gonum.org/v1/gonum/floats"
)

type entry struct {
	text string
	vec  []float64
	norm float64
}

// Index is an in-memory vector index over knowledge chunks.
// Safe for concurrent use.
type Index struct {
	mu      sync.RWMutex
	entries []entry
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{}
}

// Add stores a chunk with its embedding.
func (ix *Index) Add(text string, vec []float64) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.entries = append(ix.entries, entry{
		text: text,
		vec:  vec,
		norm: floats.Norm(vec, 2),
	})
}

// Len returns the number of indexed chunks.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries)
}

// Search returns up to k chunk texts ranked by cosine similarity to the
// query vector, most similar first. Entries with mismatched dimensions or a
// zero norm are skipped.
func (ix *Index) Search(query []float64, k int) []string {
	if k <= 0 {
		return nil
	}
	qnorm := floats.Norm(query, 2)
	if qnorm == 0 {
		return nil
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	type scored struct {
		text  string
		score float64
	}
	ranked := make([]scored, 0, len(ix.entries))
	for _, e := range ix.entries {
		if e.norm == 0 || len(e.vec) != len(query) {
			continue
		}
		ranked = append(ranked, scored{
			text:  e.text,
			score: floats.Dot(e.vec, query) / (e.norm * qnorm),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if k > len(ranked) {
		k = len(ranked)
	}
	out := make([]string, k)
	for i := range out {
		out[i] = ranked[i].text
	}
	return out
}
