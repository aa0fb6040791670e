package combat

import "fmt"

// Action is what a combatant is busy with.
type Action int

const (
	ActionIdle Action = iota
	ActionRolling
	ActionReloading
	ActionFiring
)

func (a Action) String() string {
	switch a {
	case ActionIdle:
		return "idle"
	case ActionRolling:
		return "rolling"
	case ActionReloading:
		return "reloading"
	case ActionFiring:
		return "firing"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// ActionMachine keeps rolling, reloading and burst firing mutually
// exclusive. A roll cancels a burst outright but only suspends a reload,
// which resumes when the roll ends.
//
//	Idle      -> Rolling | Reloading | Firing
//	Firing    -> Idle (burst done) | Rolling | Reloading (burst cancelled)
//	Reloading -> Idle (done) | Rolling (reload suspended)
//	Rolling   -> Reloading (suspended reload resumes) | Idle
type ActionMachine struct {
	state     Action
	roll      RollState
	reload    ReloadState
	hasReload bool
}

func (m *ActionMachine) State() Action {
	if m == nil {
		return ActionIdle
	}
	return m.state
}

// Suppressed reports whether firing is blocked.
func (m *ActionMachine) Suppressed() bool {
	return m != nil && (m.state == ActionRolling || m.hasReload)
}

// StartRoll begins a roll unless one is running. A running burst is
// cancelled; a running reload is suspended.
func (m *ActionMachine) StartRoll(r RollState) bool {
	if m == nil || m.state == ActionRolling {
		return false
	}
	m.roll = r
	m.state = ActionRolling
	return true
}

// Roll returns the roll in progress, or nil.
func (m *ActionMachine) Roll() *RollState {
	if m == nil || m.state != ActionRolling {
		return nil
	}
	return &m.roll
}

// EndRoll finishes the roll and resumes a suspended reload.
func (m *ActionMachine) EndRoll() {
	if m == nil || m.state != ActionRolling {
		return
	}
	m.roll = RollState{}
	if m.hasReload {
		m.state = ActionReloading
		return
	}
	m.state = ActionIdle
}

// StartReload begins a reload unless one exists, running or suspended. A
// reload started mid-roll starts suspended.
func (m *ActionMachine) StartReload() bool {
	if m == nil || m.hasReload {
		return false
	}
	m.reload = ReloadState{}
	m.hasReload = true
	if m.state != ActionRolling {
		m.state = ActionReloading
	}
	return true
}

// Reload returns the reload in progress or suspended, or nil.
func (m *ActionMachine) Reload() *ReloadState {
	if m == nil || !m.hasReload {
		return nil
	}
	return &m.reload
}

// ReloadPaused reports whether the reload clock must stand still.
func (m *ActionMachine) ReloadPaused() bool {
	return m != nil && m.hasReload && m.state == ActionRolling
}

// EndReload drops the reload, finished or cancelled.
func (m *ActionMachine) EndReload() {
	if m == nil || !m.hasReload {
		return
	}
	m.hasReload = false
	m.reload = ReloadState{}
	if m.state == ActionReloading {
		m.state = ActionIdle
	}
}

// BeginBurst marks a burst as running. It only succeeds from Idle.
func (m *ActionMachine) BeginBurst() bool {
	if m == nil || m.state != ActionIdle {
		return false
	}
	m.state = ActionFiring
	return true
}

// EndBurst returns a firing combatant to Idle.
func (m *ActionMachine) EndBurst() {
	if m == nil || m.state != ActionFiring {
		return
	}
	m.state = ActionIdle
}

// Reset drops every transient state.
func (m *ActionMachine) Reset() {
	if m == nil {
		return
	}
	*m = ActionMachine{}
}

// StepWeapon runs one tick of p for an owner in state m and keeps the
// machine's firing state in step with the weapon's burst.
func StepWeapon(m *ActionMachine, p *Profile, trig Trigger, dt float64) (Shot, bool) {
	shot, ok := p.Shoot(trig, m.Suppressed(), dt)
	if p.Firing() {
		m.BeginBurst()
	} else {
		m.EndBurst()
	}
	return shot, ok
}
