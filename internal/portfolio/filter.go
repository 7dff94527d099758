package portfolio

// Filter is a category tab on the portfolio page.
type Filter string

const (
	FilterAll         Filter = "all"
	FilterPreSarfaesi Filter = "preSarfaesi"
	FilterNPA         Filter = "npa"
	FilterResponses   Filter = "responses"
	FilterSymbolic    Filter = "symbolic"
	FilterDMOrder     Filter = "dmOrder"
	FilterPhysical    Filter = "physical"
	FilterAuctions    Filter = "auctions"
)

// NPAThreshold is the DPD at which a loan becomes non-performing.
const NPAThreshold = 90

// Filters lists the tabs in display order.
var Filters = []Filter{
	FilterAll,
	FilterPreSarfaesi,
	FilterNPA,
	FilterResponses,
	FilterSymbolic,
	FilterDMOrder,
	FilterPhysical,
	FilterAuctions,
}

var filterLabels = map[Filter]string{
	FilterAll:         "All",
	FilterPreSarfaesi: "Pre Sarfaesi",
	FilterNPA:         "NPA",
	FilterResponses:   "13(3) Responses",
	FilterSymbolic:    "Symbolic Possession",
	FilterDMOrder:     "DM Order",
	FilterPhysical:    "Physical Possessions",
	FilterAuctions:    "Auctions",
}

// Label is the tab caption. Unknown filters read as All.
func (f Filter) Label() string {
	if l, ok := filterLabels[f]; ok {
		return l
	}
	return filterLabels[FilterAll]
}

// FilterByID maps a filter id to its Filter, falling back to FilterAll.
func FilterByID(id string) Filter {
	f := Filter(id)
	if _, ok := filterLabels[f]; ok {
		return f
	}
	return FilterAll
}

// Match applies the category predicate. The legal-stage tabs (responses,
// symbolic, dmOrder, physical, auctions) have no stage data on the loan yet
// and pass everything through.
func (f Filter) Match(l Loan) bool {
	switch f {
	case FilterPreSarfaesi:
		return l.CurrentDPD.Below(NPAThreshold)
	case FilterNPA:
		return l.CurrentDPD.AtLeast(NPAThreshold)
	default:
		return true
	}
}
