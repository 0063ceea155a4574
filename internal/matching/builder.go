package matching

import (
	"cmp"
	"slices"
)

// Builder assigns cluster identifiers to records in a single forward pass.
//
// A Builder owns its key index and is not safe for concurrent use. Records must
// be added in input order: which cluster survives a merge depends on it, while
// the final grouping does not.
type Builder struct {
	mode    Mode
	index   map[string]int
	sets    disjointSet
	records []int
	merges  int
}

// NewBuilder returns an empty builder for mode.
func NewBuilder(mode Mode) *Builder {
	return &Builder{
		mode:  mode,
		index: make(map[string]int),
		sets:  newDisjointSet(),
	}
}

// Mode returns the matching mode the builder was created with.
func (b *Builder) Mode() Mode {
	return b.mode
}

// Add processes one record and returns the identifier of the cluster it
// joined. A record whose keys touch several existing clusters merges them into
// the first one discovered, in key order; a record with no known keys starts a
// new cluster.
func (b *Builder) Add(rec Record) int {
	keys := Keys(rec, b.mode)

	var found []int
	for _, key := range keys {
		id, ok := b.index[key]
		if !ok {
			continue
		}
		root := b.sets.find(id)
		if !slices.Contains(found, root) {
			found = append(found, root)
		}
	}

	var cluster int
	switch len(found) {
	case 0:
		cluster = b.sets.add()
	case 1:
		cluster = found[0]
	default:
		cluster = found[0]
		for _, other := range found[1:] {
			cluster = b.sets.union(cluster, other)
			b.merges++
		}
	}

	for _, key := range keys {
		b.index[key] = cluster
	}
	b.records = append(b.records, cluster)
	return b.sets.label(cluster)
}

// Len returns the number of records added so far.
func (b *Builder) Len() int {
	return len(b.records)
}

// Keys returns the number of distinct keys indexed so far.
func (b *Builder) Keys() int {
	return len(b.index)
}

// Result resolves every record added so far through all merges and numbers
// the clusters 1..k in order of their first record.
func (b *Builder) Result() Result {
	ids := make([]int, len(b.records))
	dense := make(map[int]int, b.sets.len())
	for i, cluster := range b.records {
		root := b.sets.find(cluster)
		id, ok := dense[root]
		if !ok {
			id = len(dense) + 1
			dense[root] = id
		}
		ids[i] = id
	}
	return Result{
		IDs:      ids,
		Clusters: len(dense),
		Merges:   b.merges,
	}
}

// Assign runs a fresh builder over records and returns the final assignment.
func Assign[R Record](records []R, mode Mode) Result {
	b := NewBuilder(mode)
	for _, rec := range records {
		b.Add(rec)
	}
	return b.Result()
}

// Result is the final cluster assignment of a run.
type Result struct {
	// IDs holds one identifier per record, in input order.
	IDs []int
	// Clusters is the number of distinct identifiers in IDs.
	Clusters int
	// Merges counts cluster unions performed while scanning.
	Merges int
}

// ClusterSize describes one cluster of a Result.
type ClusterSize struct {
	ID    int `json:"person_id"`
	Size  int `json:"records"`
	First int `json:"first_row"`
}

// Sizes returns every cluster with its record count, largest first. Ties are
// ordered by identifier. First is the zero-based index of the cluster's first
// record.
func (r Result) Sizes() []ClusterSize {
	if r.Clusters == 0 {
		return nil
	}
	sizes := make([]ClusterSize, r.Clusters)
	for i := range sizes {
		sizes[i] = ClusterSize{ID: i + 1, First: -1}
	}
	for row, id := range r.IDs {
		entry := &sizes[id-1]
		entry.Size++
		if entry.First < 0 {
			entry.First = row
		}
	}
	slices.SortFunc(sizes, func(a, b ClusterSize) int {
		if c := cmp.Compare(b.Size, a.Size); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return sizes
}

// Duplicates returns the number of records that share their identifier with an
// earlier record.
func (r Result) Duplicates() int {
	return len(r.IDs) - r.Clusters
}
