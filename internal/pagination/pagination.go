// Package pagination plans the page links shown under list screens. It only
// computes what to draw; fetching is up to the caller.
package pagination

// compactThreshold is the largest page count rendered without ellipses.
const compactThreshold = 5

// windowSize is how many middle pages are shown around the current page.
const windowSize = 3

// Item is one entry in the control: a page link or an ellipsis.
type Item struct {
	Page     int
	Ellipsis bool
}

// Plan describes a rendered pagination control. Pages are zero-based.
type Plan struct {
	Items        []Item
	Current      int
	Total        int
	PrevDisabled bool
	NextDisabled bool
	Hidden       bool
}

// Prev returns the previous page number.
func (p Plan) Prev() int { return p.Current - 1 }

// Next returns the next page number.
func (p Plan) Next() int { return p.Current + 1 }

// New builds the plan for current out of total pages. With five pages or
// fewer every page is listed; otherwise the first page, a window of up to
// three pages around current and the last page, with ellipses in the gaps.
func New(current, total int) Plan {
	if total < 0 {
		total = 0
	}
	if current >= total {
		current = total - 1
	}
	if current < 0 {
		current = 0
	}

	p := Plan{
		Current:      current,
		Total:        total,
		PrevDisabled: current == 0,
		NextDisabled: current >= total-1,
		Hidden:       total <= 1,
	}
	if p.Hidden {
		return p
	}

	if total <= compactThreshold {
		for i := 0; i < total; i++ {
			p.Items = append(p.Items, Item{Page: i})
		}
		return p
	}

	last := total - 1
	start := max(1, current-1)
	end := min(start+windowSize, last)
	if end == last {
		start = max(1, end-windowSize)
	}

	p.Items = append(p.Items, Item{Page: 0})
	if start > 1 {
		p.Items = append(p.Items, Item{Ellipsis: true})
	}
	for i := start; i < end; i++ {
		p.Items = append(p.Items, Item{Page: i})
	}
	if end < last {
		p.Items = append(p.Items, Item{Ellipsis: true})
	}
	p.Items = append(p.Items, Item{Page: last})
	return p
}
