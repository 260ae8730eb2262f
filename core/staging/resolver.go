package staging

import (
	"strconv"
	"strings"

	"github.com/yardtools/yardcap/core/model"
)

// BlockSet is the set of block codes one train collects into its consist.
type BlockSet map[string]struct{}

// NewBlockSet builds a BlockSet from an ordered block list, trimming
// whitespace and dropping blanks.
func NewBlockSet(codes []string) BlockSet {
	set := make(BlockSet, len(codes))
	for _, code := range codes {
		code = strings.TrimSpace(code)
		if code != "" {
			set[code] = struct{}{}
		}
	}
	return set
}

// Contains reports whether code is in the set.
func (s BlockSet) Contains(code string) bool {
	_, ok := s[code]
	return ok
}

// spareState drives the spare-cell scanner: a cell is a sequence of
// "<count> <block>" pairs and the scanner is always waiting for one half.
type spareState int

const (
	expectCount spareState = iota
	expectCode
)

// ParseSpareCell scans one free-text spare cell ("2 CHBR 1 CHG") left to
// right. A non-negative integer token opens a pair and the next token,
// whatever it looks like, is the block code it binds to. Tokens that cannot
// open a pair are skipped, and a trailing count with no code is discarded.
// Repeated codes accumulate. Malformed text never fails; it parses to
// whatever well-formed pairs it contains.
func ParseSpareCell(text string) model.BlockCountMap {
	counts := make(model.BlockCountMap)
	state := expectCount
	pending := 0
	for _, tok := range strings.Fields(text) {
		switch state {
		case expectCount:
			n, err := strconv.Atoi(tok)
			if err != nil || n < 0 {
				continue
			}
			pending = n
			state = expectCode
		case expectCode:
			counts[tok] += pending
			state = expectCount
		}
	}
	return counts
}

// RowCars returns the cars in one yard-plan row attributable to the target
// blocks: dedicated block columns contribute their cell parsed as an
// integer (non-numeric or missing cells count zero), spare cells contribute
// the summed counts of pairs whose code is targeted. The result is floored
// at zero so corrupt upstream data cannot produce a negative arrival.
func RowCars(row model.YardPlanRow, targets BlockSet) int {
	total := 0
	for code := range targets {
		cell, ok := row.Blocks[code]
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(cell))
		if err != nil {
			continue
		}
		total += n
	}
	for _, cell := range row.Spares {
		for code, n := range ParseSpareCell(cell) {
			if targets.Contains(code) {
				total += n
			}
		}
	}
	if total < 0 {
		total = 0
	}
	return total
}
