package timeline

// Item is a year-ranged record that belongs to a named region column.
type Item interface {
	Ranged
	Column() string
}

// Block is one item placed in its column.
type Block[T Item] struct {
	Item      T        `json:"event"`
	Lane      int      `json:"lane"`
	Geometry  Geometry `json:"geometry"`
	Malformed bool     `json:"malformed,omitempty"`
}

// Column is the laid-out content of one region column.
type Column[T Item] struct {
	Region string     `json:"region"`
	Lanes  int        `json:"lanes"`
	Blocks []Block[T] `json:"blocks"`
}

// Plan is a complete layout: the scale it was computed for, the axis labels,
// one entry per visible column, and the items that fell outside every column.
type Plan[T Item] struct {
	Scale    Scale       `json:"scale"`
	Height   float64     `json:"height"`
	Labels   []Label     `json:"labels"`
	Columns  []Column[T] `json:"columns"`
	Excluded []T         `json:"excluded,omitempty"`
}

// Options tune Layout.
type Options struct {
	Policy Policy
}

// Layout groups items by column, assigns lanes per column and projects each
// block with s. Columns come out in the order given, including columns with
// no items. Items whose column is not listed are returned in Excluded; that
// is a filter outcome, not an error.
func Layout[T Item](items []T, columns []string, s Scale, opts Options) Plan[T] {
	plan := Plan[T]{
		Scale:   s,
		Height:  s.Height(),
		Labels:  s.Labels(),
		Columns: make([]Column[T], 0, len(columns)),
	}

	index := make(map[string]int, len(columns))
	grouped := make([][]T, len(columns))
	for i, name := range columns {
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	for _, it := range items {
		i, ok := index[it.Column()]
		if !ok {
			plan.Excluded = append(plan.Excluded, it)
			continue
		}
		grouped[i] = append(grouped[i], it)
	}

	for i, name := range columns {
		if index[name] != i {
			// Duplicate column name; its items went to the first occurrence.
			continue
		}
		lanes := AssignLanes(grouped[i])
		col := Column[T]{
			Region: name,
			Lanes:  lanes.Total,
			Blocks: make([]Block[T], 0, len(lanes.Assignments)),
		}
		for _, a := range lanes.Assignments {
			start, end := a.Item.Years()
			col.Blocks = append(col.Blocks, Block[T]{
				Item:      a.Item,
				Lane:      a.Lane,
				Geometry:  Project(start, end, a.Lane, lanes.Total, s),
				Malformed: opts.Policy.Flags(start, end),
			})
		}
		plan.Columns = append(plan.Columns, col)
	}
	return plan
}

// Block returns the block for the first item match accepts.
func (p Plan[T]) Block(match func(T) bool) (Block[T], string, bool) {
	for _, col := range p.Columns {
		for _, b := range col.Blocks {
			if match(b.Item) {
				return b, col.Region, true
			}
		}
	}
	var zero Block[T]
	return zero, "", false
}

// Blocks counts the placed blocks across all columns.
func (p Plan[T]) Blocks() int {
	n := 0
	for _, col := range p.Columns {
		n += len(col.Blocks)
	}
	return n
}
