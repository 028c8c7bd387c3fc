package match

// A HashRecord tracks a source file that's waiting for a content match.
type HashRecord struct {
	Matched bool
	Path    string
	Length  int64
}

// HashIndex maps a 32-bit content hash to the source files carrying that
// hash. Hash collisions are resolved by the secondary length check in Find.
type HashIndex struct {
	records map[uint32][]*HashRecord
}

// NewHashIndex returns an empty index.
func NewHashIndex() *HashIndex {
	return &HashIndex{records: map[uint32][]*HashRecord{}}
}

// Add appends rec to the list for the given hash.
func (idx *HashIndex) Add(sum uint32, rec *HashRecord) {
	idx.records[sum] = append(idx.records[sum], rec)
}

// Find returns the first unmatched record with the given hash and byte
// length, or nil if there is none.
func (idx *HashIndex) Find(sum uint32, length int64) *HashRecord {
	for _, rec := range idx.records[sum] {
		if !rec.Matched && rec.Length == length {
			return rec
		}
	}
	return nil
}
