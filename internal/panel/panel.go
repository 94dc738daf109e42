// Package panel maps classified button gestures to user-interface and system
// actions. It owns the display and acknowledgement flags; the caller applies
// system actions back to the monitor.
package panel

import "github.com/sweeney/plant-monitor/internal/logic"

// Action is what the daemon should do in response to a gesture.
type Action string

const (
	ActionNone          Action = "NONE"
	ActionCompleteSetup Action = "COMPLETE_SETUP"
	ActionWakeDisplay   Action = "WAKE_DISPLAY"
	ActionSleepDisplay  Action = "SLEEP_DISPLAY"
	ActionAcknowledge   Action = "ACKNOWLEDGE"
	ActionRecheck       Action = "RECHECK"
	ActionReset         Action = "RESET"
)

// Panel tracks the front-panel UI state.
type Panel struct {
	displayOn    bool
	acknowledged bool
}

// New returns a panel with the display on.
func New() *Panel {
	return &Panel{displayOn: true}
}

// Handle decides the action for a click given the current system state.
func (p *Panel) Handle(click logic.Click, state logic.State) Action {
	switch click {
	case logic.ClickBoth:
		p.acknowledged = false
		p.displayOn = true
		return ActionReset
	case logic.ClickLeft, logic.ClickRight:
		if state == logic.StateSetup {
			return ActionCompleteSetup
		}
	default:
		return ActionNone
	}

	if click == logic.ClickRight {
		return ActionRecheck
	}
	if !p.displayOn {
		p.displayOn = true
		return ActionWakeDisplay
	}
	if state == logic.StateError && !p.acknowledged {
		p.acknowledged = true
		return ActionAcknowledge
	}
	return ActionNone
}

// HandleLongPress puts the display to sleep when the right button is held.
// Holding left does nothing beyond its click.
func (p *Panel) HandleLongPress(label string) Action {
	if label != logic.LabelRight || !p.displayOn {
		return ActionNone
	}
	p.displayOn = false
	return ActionSleepDisplay
}

// NoteState records a state transition. Entering ERROR clears any previous
// acknowledgement so the new error is signalled.
func (p *Panel) NoteState(to logic.State) {
	if to == logic.StateError {
		p.acknowledged = false
	}
}

// DisplayOn reports whether the display is awake.
func (p *Panel) DisplayOn() bool {
	return p.displayOn
}

// Acknowledged reports whether the current error has been acknowledged.
func (p *Panel) Acknowledged() bool {
	return p.acknowledged
}
