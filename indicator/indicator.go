// Package indicator holds the remote activity indicators of a tab and the
// local typing announcer. None of this state is persisted.
package indicator

import (
	"tab-mirror/contract"
	"tab-mirror/domain"
)

// Indicator is the on/off state of one remote activity (typing or voice).
// It only reflects what other tabs announced.
type Indicator struct {
	kind   domain.IndicatorKind
	view   contract.View
	active bool
}

func New(kind domain.IndicatorKind, view contract.View) *Indicator {
	return &Indicator{kind: kind, view: view}
}

// Start marks the activity as ongoing and renders it. Rendering happens on
// every start so that the view scrolls the indicator into sight again.
// It reports whether the state changed.
func (i *Indicator) Start() bool {
	changed := !i.active
	i.active = true
	i.view.ShowIndicator(i.kind)
	return changed
}

// Stop clears the indicator if it is shown. A second stop is a no-op.
func (i *Indicator) Stop() bool {
	if !i.active {
		return false
	}
	i.active = false
	i.view.HideIndicator(i.kind)
	return true
}

func (i *Indicator) Active() bool { return i.active }

func (i *Indicator) Kind() domain.IndicatorKind { return i.kind }
