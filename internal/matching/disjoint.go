package matching

// disjointSet is a union-find forest over cluster identifiers 1..n. Each root
// carries the label of the cluster that survived the merges below it, so the
// identifier reported while scanning matches "first discovered cluster wins"
// even when union by size picks the other tree as the physical root.
type disjointSet struct {
	parent []int
	size   []int
	labels []int
}

func newDisjointSet() disjointSet {
	// index 0 is unused so identifiers start at 1
	return disjointSet{
		parent: []int{0},
		size:   []int{0},
		labels: []int{0},
	}
}

// add creates a singleton set and returns its identifier.
func (d *disjointSet) add() int {
	id := len(d.parent)
	d.parent = append(d.parent, id)
	d.size = append(d.size, 1)
	d.labels = append(d.labels, id)
	return id
}

func (d *disjointSet) len() int {
	return len(d.parent) - 1
}

// find returns the root of id, halving the path as it walks.
func (d *disjointSet) find(id int) int {
	for d.parent[id] != id {
		d.parent[id] = d.parent[d.parent[id]]
		id = d.parent[id]
	}
	return id
}

// union merges the set containing other into the set containing survivor and
// returns the new root. The merged set keeps survivor's label.
func (d *disjointSet) union(survivor, other int) int {
	rs, ro := d.find(survivor), d.find(other)
	if rs == ro {
		return rs
	}
	label := d.labels[rs]
	if d.size[rs] < d.size[ro] {
		rs, ro = ro, rs
	}
	d.parent[ro] = rs
	d.size[rs] += d.size[ro]
	d.labels[rs] = label
	return rs
}

// label returns the surviving identifier of the set containing id.
func (d *disjointSet) label(id int) int {
	return d.labels[d.find(id)]
}
