package systems

import "slices"

// Tick phase IDs, shared by the core and the perf collector.
const (
	PhaseInput    = "input"
	PhasePhysics  = "physics"
	PhaseContacts = "contacts"
	PhaseGovernor = "governor"
	PhaseSync     = "sync"
)

// Cadence says how often a phase runs.
type Cadence int

const (
	PerFrame   Cadence = iota // Once per host frame
	PerTick                   // Once per core tick that does work
	PerSubstep                // physics.substeps times per tick
)

func (c Cadence) String() string {
	switch c {
	case PerTick:
		return "tick"
	case PerSubstep:
		return "substep"
	}
	return "frame"
}

// SystemInfo describes a timed phase for the perf panel.
type SystemInfo struct {
	ID          string // Phase name passed to the timer
	Name        string
	Description string
	Cadence     Cadence
}

// SystemRegistry names the phases of a frame in the order they run.
type SystemRegistry struct {
	systems []SystemInfo
}

// NewSystemRegistry creates a registry holding the core tick phases.
func NewSystemRegistry() *SystemRegistry {
	return &SystemRegistry{systems: []SystemInfo{
		{ID: PhaseInput, Name: "Input", Description: "Binds pointers and moves paddles", Cadence: PerFrame},
		{ID: PhasePhysics, Name: "Physics", Description: "Steps the rigid-body engine", Cadence: PerSubstep},
		{ID: PhaseContacts, Name: "Contacts", Description: "Classifies goal contacts and scores", Cadence: PerSubstep},
		{ID: PhaseGovernor, Name: "Governor", Description: "Caps puck speed and confines paddles", Cadence: PerSubstep},
		{ID: PhaseSync, Name: "Sync", Description: "Copies body state into transforms", Cadence: PerTick},
	}}
}

// Register adds a phase, or replaces the one with the same ID in place.
// New phases go in front of before, or last when before is "" or unknown.
func (r *SystemRegistry) Register(info SystemInfo, before string) {
	if i := r.index(info.ID); i >= 0 {
		r.systems[i] = info
		return
	}
	if i := r.index(before); before != "" && i >= 0 {
		r.systems = slices.Insert(r.systems, i, info)
		return
	}
	r.systems = append(r.systems, info)
}

func (r *SystemRegistry) index(id string) int {
	return slices.IndexFunc(r.systems, func(s SystemInfo) bool { return s.ID == id })
}

// Get returns a phase by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	if i := r.index(id); i >= 0 {
		return r.systems[i], true
	}
	return SystemInfo{}, false
}

// GetName returns the display name for a phase, or the ID when unknown.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.Get(id); ok {
		return info.Name
	}
	return id
}

// All returns every phase in run order.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// IDs returns every phase ID in run order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
