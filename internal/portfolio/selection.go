package portfolio

import "sort"

// Selection is an immutable set of loan IDs. Mutating methods return a new
// Selection and leave the receiver untouched.
type Selection struct {
	ids map[string]struct{}
}

// NewSelection builds a selection from ids.
func NewSelection(ids ...string) Selection {
	s := Selection{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// Has reports membership.
func (s Selection) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len is the number of selected IDs, hidden rows included.
func (s Selection) Len() int { return len(s.ids) }

// IDs returns the selected IDs sorted.
func (s Selection) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Toggle flips membership of id.
func (s Selection) Toggle(id string) Selection {
	next := Selection{ids: make(map[string]struct{}, len(s.ids)+1)}
	for k := range s.ids {
		next.ids[k] = struct{}{}
	}
	if _, ok := next.ids[id]; ok {
		delete(next.ids, id)
	} else {
		next.ids[id] = struct{}{}
	}
	return next
}

// AllSelected reports whether every loan in filtered is selected. An empty
// filtered set is never all selected.
func (s Selection) AllSelected(filtered []Loan) bool {
	if len(filtered) == 0 {
		return false
	}
	for _, l := range filtered {
		if !s.Has(l.ID) {
			return false
		}
	}
	return true
}

// SelectAll clears the selection when every filtered loan is already
// selected. Otherwise it returns exactly the filtered set; selections outside
// it are dropped.
func (s Selection) SelectAll(filtered []Loan) Selection {
	if s.AllSelected(filtered) {
		return NewSelection()
	}
	next := Selection{ids: make(map[string]struct{}, len(filtered))}
	for _, l := range filtered {
		next.ids[l.ID] = struct{}{}
	}
	return next
}

// Pick returns the loans whose IDs are selected, in input order.
func (s Selection) Pick(loans []Loan) []Loan {
	var out []Loan
	for _, l := range loans {
		if s.Has(l.ID) {
			out = append(out, l)
		}
	}
	return out
}
