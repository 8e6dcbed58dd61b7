package core

import "sort"

// Tally is a found/valid/broken count triple.
type Tally struct {
	Total  int `json:"total"`
	Valid  int `json:"valid"`
	Broken int `json:"broken"`
}

func (t *Tally) add(valid bool) {
	t.Total++
	if valid {
		t.Valid++
	} else {
		t.Broken++
	}
}

// HealingReport aggregates a validate or heal pass. Broken links whose
// target is outside the rename mapping's scope are a known baseline, counted
// separately; only in-scope breakage fails the run.
type HealingReport struct {
	TotalLinks  int                     `json:"total_links"`
	ValidLinks  int                     `json:"valid_links"`
	BrokenLinks int                     `json:"broken_links"`
	ByClass     map[PatternClass]*Tally `json:"by_class"`
	ByDocument  map[string]*Tally       `json:"by_document"`

	Healed         int `json:"healed"`
	StillBroken    int `json:"still_broken"`
	BaselineBroken int `json:"baseline_broken"`

	Errors []string `json:"errors,omitempty"`
	Pass   bool     `json:"pass"`
}

// Documents returns the per-document breakdown keys in sorted order.
func (r *HealingReport) Documents() []string {
	docs := make([]string, 0, len(r.ByDocument))
	for d := range r.ByDocument {
		docs = append(docs, d)
	}
	sort.Strings(docs)
	return docs
}

func newReport() *HealingReport {
	return &HealingReport{
		ByClass:    make(map[PatternClass]*Tally),
		ByDocument: make(map[string]*Tally),
	}
}

func (r *HealingReport) count(links []ResolvedLink) {
	for _, l := range links {
		r.TotalLinks++
		if l.Valid {
			r.ValidLinks++
		} else {
			r.BrokenLinks++
		}
		ct, ok := r.ByClass[l.Class]
		if !ok {
			ct = &Tally{}
			r.ByClass[l.Class] = ct
		}
		ct.add(l.Valid)
		dt, ok := r.ByDocument[l.Doc]
		if !ok {
			dt = &Tally{}
			r.ByDocument[l.Doc] = dt
		}
		dt.add(l.Valid)
	}
}

func (r *HealingReport) recordErrors(docErrs []*DocError) {
	for _, e := range docErrs {
		r.Errors = append(r.Errors, e.Error())
	}
}

// buildReport aggregates a plain validate pass. The run passes when nothing
// is broken.
func buildReport(links []ResolvedLink, docErrs []*DocError) *HealingReport {
	r := newReport()
	r.count(links)
	r.recordErrors(docErrs)
	r.Pass = r.BrokenLinks == 0
	return r
}

// buildHealReport aggregates the post-heal validation pass. scope holds
// every root-relative path named by the mapping, old and new sides both.
func buildHealReport(links []ResolvedLink, healed int, scope map[string]bool, docErrs []*DocError) *HealingReport {
	r := newReport()
	r.count(links)
	r.Healed = healed
	for _, l := range links {
		if l.Valid {
			continue
		}
		if !l.OutOfRoot && scope[l.Resolved] {
			r.StillBroken++
		} else {
			r.BaselineBroken++
		}
	}
	r.recordErrors(docErrs)
	r.Pass = r.StillBroken == 0
	return r
}
