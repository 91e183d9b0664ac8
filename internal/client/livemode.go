package client

// Mode is the analysis trigger mode of a session.
type Mode int

const (
	ModeManual Mode = iota
	ModeLive
)

func (m Mode) String() string {
	if m == ModeLive {
		return "live"
	}
	return "manual"
}

// LiveModeController mirrors the session's live flag. Toggles are requests;
// the mode only changes when the router confirms it.
type LiveModeController struct {
	mode      Mode
	requested *Mode
}

func NewLiveModeController() *LiveModeController {
	return &LiveModeController{mode: ModeManual}
}

func (c *LiveModeController) Mode() Mode {
	return c.mode
}

// Toggle returns the enabled flag to send for switching away from the
// confirmed mode. Local state is untouched.
func (c *LiveModeController) Toggle() bool {
	enabled := c.mode != ModeLive
	c.Request(enabled)
	return enabled
}

// Request records a requested mode without applying it.
func (c *LiveModeController) Request(enabled bool) {
	next := ModeManual
	if enabled {
		next = ModeLive
	}
	c.requested = &next
}

// Requested reports whether a toggle is still waiting for confirmation.
func (c *LiveModeController) Requested() bool {
	return c.requested != nil
}

// Confirm applies the router's LiveModeChanged. The last confirmation wins,
// whichever console asked for it.
func (c *LiveModeController) Confirm(enabled bool) {
	if enabled {
		c.mode = ModeLive
	} else {
		c.mode = ModeManual
	}
	c.requested = nil
}

// ManualTriggerAllowed is false in live mode, where the router triggers analyses itself.
func (c *LiveModeController) ManualTriggerAllowed() bool {
	return c.mode == ModeManual
}
