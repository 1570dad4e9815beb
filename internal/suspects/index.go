// Package suspects resolves clue text to the suspect it incriminates.
//
// Index is a fixed-size chained hash table. The bucket count is chosen at
// construction and never grows, so the load factor is unbounded: lookups
// degrade linearly once the record count is large relative to the bucket
// count. Scenario tables are small and static, so this is accepted.
package suspects

import "sort"

// DefaultBuckets is a small prime, which keeps bucket load irregular
// enough for chains to form with realistic clue tables.
const DefaultBuckets = 11

// Unknown is returned by Lookup for clues with no recorded suspect. It is
// never a valid accusation match because suspect names come from the table.
const Unknown = "Unknown"

// Record maps one clue to its suspect.
type Record struct {
	Clue    string `yaml:"clue"`
	Suspect string `yaml:"suspect"`
}

// Index is the clue → suspect table. Populate it fully before the first
// lookup; it is not safe for concurrent mutation. The zero value is an
// empty index with DefaultBuckets.
type Index struct {
	buckets [][]Record
	n       int
}

// New returns an empty index with the given bucket count. Counts below one
// fall back to DefaultBuckets.
func New(buckets int) *Index {
	if buckets < 1 {
		buckets = DefaultBuckets
	}
	return &Index{buckets: make([][]Record, buckets)}
}

// Build returns an index with DefaultBuckets holding every pair, inserted
// in order.
func Build(pairs []Record) *Index {
	ix := New(DefaultBuckets)
	for _, p := range pairs {
		ix.Insert(p.Clue, p.Suspect)
	}
	return ix
}

// Hash sums the bytes of s. Callers reduce it modulo the bucket count.
func Hash(s string) uint32 {
	var h uint32
	for i := 0; i < len(s); i++ {
		h += uint32(s[i])
	}
	return h
}

// Bucket returns the bucket index clue hashes to.
func (ix *Index) Bucket(clue string) int {
	return int(Hash(clue) % uint32(ix.Buckets()))
}

// Insert places the record at the head of its chain. A clue inserted twice
// keeps both records; the later one shadows the earlier on lookup.
func (ix *Index) Insert(clue, suspect string) {
	if ix.buckets == nil {
		ix.buckets = make([][]Record, DefaultBuckets)
	}
	b := ix.Bucket(clue)
	chain := ix.buckets[b]
	chain = append(chain, Record{})
	copy(chain[1:], chain)
	chain[0] = Record{Clue: clue, Suspect: suspect}
	ix.buckets[b] = chain
	ix.n++
}

// Resolve scans the clue's chain for an exact key match.
func (ix *Index) Resolve(clue string) (string, bool) {
	if len(ix.buckets) == 0 {
		return "", false
	}
	for _, r := range ix.buckets[ix.Bucket(clue)] {
		if r.Clue == clue {
			return r.Suspect, true
		}
	}
	return "", false
}

// Lookup returns the suspect for clue, or Unknown.
func (ix *Index) Lookup(clue string) string {
	if s, ok := ix.Resolve(clue); ok {
		return s
	}
	return Unknown
}

// Len returns the number of records, counting shadowed duplicates.
func (ix *Index) Len() int { return ix.n }

// Buckets returns the fixed bucket count.
func (ix *Index) Buckets() int {
	if len(ix.buckets) == 0 {
		return DefaultBuckets
	}
	return len(ix.buckets)
}

// ChainLengths returns the number of records in each bucket.
func (ix *Index) ChainLengths() []int {
	out := make([]int, ix.Buckets())
	for i, c := range ix.buckets {
		out[i] = len(c)
	}
	return out
}

// Suspects returns the distinct suspect names, sorted.
func (ix *Index) Suspects() []string {
	seen := make(map[string]bool)
	var out []string
	for _, chain := range ix.buckets {
		for _, r := range chain {
			if !seen[r.Suspect] {
				seen[r.Suspect] = true
				out = append(out, r.Suspect)
			}
		}
	}
	sort.Strings(out)
	return out
}
