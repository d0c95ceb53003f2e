package sheetstore

import (
	"fmt"
	"strconv"
	"strings"
)

// span is the parsed form of an A1-style range. Columns and rows are 1-based;
// zero means open-ended on that side.
type span struct {
	startCol, startRow int
	endCol, endRow     int
}

// parseSpan accepts the range shapes the service uses: bounded ("A1:D1"),
// column-open ("A2:B", "A1:Z") and a bare anchor cell ("A2").
func parseSpan(rng string) (span, error) {
	first, second, bounded := strings.Cut(rng, ":")
	sc, sr, err := parseCellRef(first)
	if err != nil {
		return span{}, err
	}
	sp := span{startCol: sc, startRow: sr}
	if sp.startCol == 0 {
		sp.startCol = 1
	}
	if sp.startRow == 0 {
		sp.startRow = 1
	}
	if bounded {
		ec, er, err := parseCellRef(second)
		if err != nil {
			return span{}, err
		}
		sp.endCol, sp.endRow = ec, er
	}
	return sp, nil
}

// parseCellRef splits a reference like "D12" into column 4, row 12. Either
// part may be absent ("D" or "12") but not both.
func parseCellRef(ref string) (col, row int, err error) {
	i := 0
	for i < len(ref) && ref[i] >= 'A' && ref[i] <= 'Z' {
		col = col*26 + int(ref[i]-'A') + 1
		i++
	}
	if i < len(ref) {
		n, convErr := strconv.Atoi(ref[i:])
		if convErr != nil || n <= 0 {
			return 0, 0, fmt.Errorf("bad cell reference %q", ref)
		}
		row = n
	}
	if col == 0 && row == 0 {
		return 0, 0, fmt.Errorf("bad cell reference %q", ref)
	}
	return col, row, nil
}
