package layout

// SplitColumns splits items at ceil(n/2): the left column is never shorter
// than the right one.
func SplitColumns[T any](items []T) (left, right []T) {
	mid := (len(items) + 1) / 2
	return items[:mid], items[mid:]
}

// Slot is the position of one row in a two-column plan.
type Slot struct {
	Column int     // 0 left, 1 right
	Index  int     // row index within its column
	Page   int     // pages after the starting page
	Y      float64 // top of the row
}

// ColumnPlan is the result of PlanColumns.
type ColumnPlan struct {
	Slots []Slot  // ordered by page, then column, then index
	Pages int     // page breaks needed
	EndY  float64 // max of both column cursors on the last page
}

// PlanColumns positions two independent columns of rows with the given
// heights. Both columns start at startY. Rows that do not fit above bottom
// move, together with the rest of their column, to the next page where
// both columns restart at restartY. A row taller than a whole page is
// placed at the top of a fresh page anyway.
func PlanColumns(left, right []float64, startY, restartY, bottom float64) ColumnPlan {
	var (
		plan   ColumnPlan
		next   = [2]int{}
		cols   = [2][]float64{left, right}
		top    = startY
		cursor [2]float64
	)

	for {
		for col := range cols {
			y := top
			for next[col] < len(cols[col]) {
				h := cols[col][next[col]]
				fresh := y == top && plan.Pages > 0
				if y+h > bottom && !fresh {
					break
				}
				plan.Slots = append(plan.Slots, Slot{Column: col, Index: next[col], Page: plan.Pages, Y: y})
				y += h
				next[col]++
			}
			cursor[col] = y
		}

		if next[0] == len(left) && next[1] == len(right) {
			plan.EndY = max(cursor[0], cursor[1])
			return plan
		}
		plan.Pages++
		top = restartY
	}
}
