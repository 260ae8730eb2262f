package model

// ColumnKind classifies a yard-plan column by what its cells hold.
type ColumnKind int

const (
	// ColumnTime is the slot column ("Hour", "Time"); exactly one is required.
	ColumnTime ColumnKind = iota
	// ColumnBlock holds integer car counts for a single named block.
	ColumnBlock
	// ColumnSpare holds free-text "<count> <block>" pairs for blocks without
	// a dedicated column.
	ColumnSpare
	// ColumnPull holds free text referencing the trains pulled in that slot.
	ColumnPull
)

// String returns a human-readable representation of the column kind.
func (k ColumnKind) String() string {
	switch k {
	case ColumnTime:
		return "time"
	case ColumnBlock:
		return "block"
	case ColumnSpare:
		return "spare"
	case ColumnPull:
		return "pull"
	default:
		return "unknown"
	}
}

// Column describes one classified yard-plan column.
type Column struct {
	ID   string
	Kind ColumnKind
}

// YardPlanRow is one time slot of the yard plan. Cells stay raw strings;
// yard data is noisy and all parsing policy lives in core/staging so that
// malformed cells degrade the same way everywhere.
type YardPlanRow struct {
	TimeText string            // raw slot cell, e.g. "14:00"
	Blocks   map[string]string // block code -> raw count cell
	Spares   []string          // spare cells in column order
	Pulls    map[string]string // pull column id -> raw cell
}

// Hour parses the row's slot to an hour 0..23; minutes are discarded. The
// bool reports whether the slot was usable.
func (r YardPlanRow) Hour() (int, bool) {
	return ParseSlotHour(r.TimeText)
}

// YardPlan is the full staging table for one operating alternative. Rows
// are read-only during processing; every train works from the same plan.
type YardPlan struct {
	Label   string // operating alternative, e.g. "alt_1"
	Columns []Column
	Rows    []YardPlanRow
}

// HasTimeColumn reports whether the plan carries a slot column. Without one
// no train can be placed on the clock and the whole batch is unprocessable.
func (p *YardPlan) HasTimeColumn() bool {
	for _, c := range p.Columns {
		if c.Kind == ColumnTime {
			return true
		}
	}
	return false
}

// BlockColumns returns the IDs of all dedicated block columns.
func (p *YardPlan) BlockColumns() []string {
	var ids []string
	for _, c := range p.Columns {
		if c.Kind == ColumnBlock {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// BlockCountMap is the parse result of a single spare cell: block code to
// accumulated non-negative car count.
type BlockCountMap map[string]int
