package orders

import "github.com/google/uuid"

// Picker is the send-to-lab / send-to-pharmacy selection flow. It holds the
// full provider directory, a search query, and at most one selection. The
// selection only survives while it is visible under the current query;
// clearing or changing the query so the selected provider drops out of view
// resets it, so submission stays blocked until the user picks again.
type Picker struct {
	all      []Provider
	query    string
	selected *Provider
}

func NewPicker(providers []Provider) *Picker {
	return &Picker{all: providers}
}

// SetQuery updates the search text and re-filters the visible list.
func (p *Picker) SetQuery(query string) {
	p.query = query
	if p.selected == nil {
		return
	}
	if query == "" {
		// Clearing the search resets the selection outright.
		p.selected = nil
		return
	}
	for _, v := range p.Visible() {
		if v.UserID == p.selected.UserID {
			return
		}
	}
	p.selected = nil
}

// Visible returns the providers matching the current query.
func (p *Picker) Visible() []Provider {
	return FilterProviders(p.all, p.query)
}

// Select picks a provider by id from the currently visible list.
func (p *Picker) Select(id uuid.UUID) bool {
	for _, v := range p.Visible() {
		if v.UserID == id {
			sel := v
			p.selected = &sel
			return true
		}
	}
	return false
}

// Selected returns the current selection, or nil when none is made.
func (p *Picker) Selected() *Provider {
	return p.selected
}

// CanSubmit reports whether a send action is allowed.
func (p *Picker) CanSubmit() bool {
	return p.selected != nil
}
