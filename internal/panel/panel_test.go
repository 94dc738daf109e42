package panel

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sweeney/plant-monitor/internal/logic"
)

func TestNewPanelDisplayOn(t *testing.T) {
	p := New()
	assert.True(t, p.DisplayOn())
	assert.False(t, p.Acknowledged())
}

func TestHandleDuringSetup(t *testing.T) {
	p := New()
	assert.Equal(t, ActionCompleteSetup, p.Handle(logic.ClickLeft, logic.StateSetup))
	assert.Equal(t, ActionCompleteSetup, p.Handle(logic.ClickRight, logic.StateSetup))
	assert.Equal(t, ActionReset, p.Handle(logic.ClickBoth, logic.StateSetup))
	assert.Equal(t, ActionNone, p.Handle(logic.ClickNone, logic.StateSetup))
}

func TestHandleRightRechecks(t *testing.T) {
	p := New()
	assert.Equal(t, ActionRecheck, p.Handle(logic.ClickRight, logic.StateIdle))
	assert.Equal(t, ActionRecheck, p.Handle(logic.ClickRight, logic.StateError))
}

func TestHandleLeftAcknowledgesOnce(t *testing.T) {
	p := New()
	assert.Equal(t, ActionNone, p.Handle(logic.ClickLeft, logic.StateIdle))

	assert.Equal(t, ActionAcknowledge, p.Handle(logic.ClickLeft, logic.StateError))
	assert.True(t, p.Acknowledged())
	assert.Equal(t, ActionNone, p.Handle(logic.ClickLeft, logic.StateError))

	p.NoteState(logic.StateIdle)
	assert.True(t, p.Acknowledged(), "leaving error keeps the acknowledgement")

	p.NoteState(logic.StateError)
	assert.False(t, p.Acknowledged(), "a new error must be signalled again")
}

func TestLongPressSleepsAndLeftWakes(t *testing.T) {
	p := New()
	assert.Equal(t, ActionSleepDisplay, p.HandleLongPress(logic.LabelRight))
	assert.False(t, p.DisplayOn())
	assert.Equal(t, ActionNone, p.HandleLongPress(logic.LabelRight))

	// Waking does not also acknowledge
	assert.Equal(t, ActionWakeDisplay, p.Handle(logic.ClickLeft, logic.StateError))
	assert.True(t, p.DisplayOn())
	assert.False(t, p.Acknowledged())
}

func TestBothResetsPanel(t *testing.T) {
	p := New()
	p.Handle(logic.ClickLeft, logic.StateError)
	p.HandleLongPress(logic.LabelRight)

	assert.Equal(t, ActionReset, p.Handle(logic.ClickBoth, logic.StateError))
	assert.True(t, p.DisplayOn())
	assert.False(t, p.Acknowledged())
}

func TestLongPressOnLeftKeepsDisplay(t *testing.T) {
	p := New()
	assert.Equal(t, ActionNone, p.HandleLongPress(logic.LabelLeft))
	assert.True(t, p.DisplayOn())
	assert.Equal(t, ActionNone, p.HandleLongPress("unknown"))
	assert.True(t, p.DisplayOn())
}
