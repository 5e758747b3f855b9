package systems

// SystemInfo describes a pipeline stage for UI display and perf tracking.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this system does
	Category    string // Grouping (e.g., "input", "cards", "derived")
}

// SystemRegistry holds metadata about all systems.
// This centralizes system naming so the UI and perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known systems.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds all known systems in pipeline order.
// Update this when adding new systems.
func (r *SystemRegistry) registerDefaults() {
	// Input
	r.Register(SystemInfo{ID: "cursor", Name: "Cursor", Description: "Projects the pointer into world space", Category: "input"})
	r.Register(SystemInfo{ID: "spawn", Name: "Spawn", Description: "Creates cards at the cursor", Category: "input"})

	// Player layer
	r.Register(SystemInfo{ID: "player", Name: "Player", Description: "Moves and animates the player sprite", Category: "player"})

	// Card pipeline
	r.Register(SystemInfo{ID: "bounds", Name: "Bounds", Description: "Recomputes card hit boxes", Category: "cards"})
	r.Register(SystemInfo{ID: "selection", Name: "Selection", Description: "Grabs and releases cards", Category: "cards"})
	r.Register(SystemInfo{ID: "drag", Name: "Drag", Description: "Moves held cards and snaps released ones", Category: "cards"})
	r.Register(SystemInfo{ID: "settle", Name: "Settle", Description: "Relaxes idle cards to resting scale", Category: "cards"})

	// Derived
	r.Register(SystemInfo{ID: "piles", Name: "Piles", Description: "Counts cards per grid slot", Category: "derived"})
}

// Register adds a system to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns system info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a system ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered systems.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// ByCategory returns systems filtered by category.
func (r *SystemRegistry) ByCategory(category string) []SystemInfo {
	var result []SystemInfo
	for _, info := range r.systems {
		if info.Category == category {
			result = append(result, info)
		}
	}
	return result
}

// Categories returns all unique categories.
func (r *SystemRegistry) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, info := range r.systems {
		if !seen[info.Category] {
			seen[info.Category] = true
			cats = append(cats, info.Category)
		}
	}
	return cats
}

// IDs returns all system IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
