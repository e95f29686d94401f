package config

import "time"

// Registry represents the entire user configuration file.
// This stores user-defined metadata for controllers and application
// preferences. It never stores passwords or session tokens.
type Registry struct {
	Version     int                    `yaml:"version"`
	Controllers map[string]*Controller `yaml:"controllers,omitempty"` // Keyed by controller id
	Preferences *Preferences           `yaml:"preferences,omitempty"`
}

// Controller represents user-defined metadata for a single UIS controller.
// This is keyed by the controller id in the Registry.
type Controller struct {
	Nickname string            `yaml:"nickname,omitempty"`  // User-friendly name
	LastSeen time.Time         `yaml:"last_seen,omitempty"` // Last successful refresh that saw this controller
	Ports    map[int]*PortMeta `yaml:"ports,omitempty"`     // Port metadata (keyed by port index)
}

// PortMeta represents user-defined metadata for a single port.
// This is purely client-side information - the cloud account stores its own
// port names independently.
type PortMeta struct {
	Label string `yaml:"label"`          // User-defined label (e.g., "Exhaust Fan")
	Type  string `yaml:"type"`           // Connected gear identifier (e.g., "fan", "light")
	Icon  string `yaml:"icon,omitempty"` // Optional emoji/icon for display
}

// Preferences represents application-wide user preferences.
type Preferences struct {
	PollInterval int           `yaml:"poll_interval"`     // Watch dashboard refresh interval in seconds
	Account      *AccountPrefs `yaml:"account,omitempty"` // Default account preferences
}

// AccountPrefs represents default account preferences.
// Note: Passwords are NEVER stored - they are always prompted from the user.
type AccountPrefs struct {
	Email string `yaml:"email"` // Account email used for login
	// Password is NEVER stored in config file for security reasons
}

// NewRegistry creates a new Registry with default values.
func NewRegistry() *Registry {
	return &Registry{
		Version:     1,
		Controllers: make(map[string]*Controller),
		Preferences: &Preferences{
			PollInterval: 10,
			Account:      &AccountPrefs{},
		},
	}
}

// GetController retrieves controller metadata by id.
// Returns nil if the controller doesn't exist in the registry.
func (r *Registry) GetController(id string) *Controller {
	return r.Controllers[id]
}

// EnsureController ensures a controller entry exists in the registry.
// If the controller doesn't exist, creates a new entry with default values.
// Returns the entry (existing or newly created).
func (r *Registry) EnsureController(id string) *Controller {
	if r.Controllers == nil {
		r.Controllers = make(map[string]*Controller)
	}

	if controller, exists := r.Controllers[id]; exists {
		return controller
	}

	controller := &Controller{
		Ports: make(map[int]*PortMeta),
	}
	r.Controllers[id] = controller
	return controller
}

// UpdateControllerLastSeen updates the last seen timestamp for a controller.
func (r *Registry) UpdateControllerLastSeen(id string) {
	controller := r.EnsureController(id)
	controller.LastSeen = time.Now()
}

// SetPortLabel sets or updates the port metadata for a controller.
func (r *Registry) SetPortLabel(id string, portIndex int, label, typ, icon string) {
	controller := r.EnsureController(id)

	if controller.Ports == nil {
		controller.Ports = make(map[int]*PortMeta)
	}

	controller.Ports[portIndex] = &PortMeta{
		Label: label,
		Type:  typ,
		Icon:  icon,
	}
}

// SetControllerNickname sets a user-friendly nickname for a controller.
func (r *Registry) SetControllerNickname(id, nickname string) {
	controller := r.EnsureController(id)
	controller.Nickname = nickname
}

// SetAccountEmail records the account email used for login.
func (r *Registry) SetAccountEmail(email string) {
	if r.Preferences == nil {
		r.Preferences = &Preferences{PollInterval: 10}
	}
	if r.Preferences.Account == nil {
		r.Preferences.Account = &AccountPrefs{}
	}
	r.Preferences.Account.Email = email
}

// AccountEmail returns the stored account email, or "" when none is set.
func (r *Registry) AccountEmail() string {
	if r.Preferences == nil || r.Preferences.Account == nil {
		return ""
	}
	return r.Preferences.Account.Email
}

// PortTypeDefinitions maps port gear identifiers to human-readable names.
// This is used for display and validation purposes.
var PortTypeDefinitions = map[string]string{
	"none":         "Nothing Connected",
	"fan":          "Inline Fan",
	"clip_fan":     "Clip Fan",
	"light":        "Grow Light",
	"pump":         "Water Pump",
	"humidifier":   "Humidifier",
	"dehumidifier": "Dehumidifier",
	"heater":       "Heat Mat",
	"outlet":       "Outlet Adapter",
	"other":        "Other",
}

// PortTypeIcons maps port gear identifiers to default emoji icons.
var PortTypeIcons = map[string]string{
	"none":         "⚪",
	"fan":          "🌀",
	"clip_fan":     "💨",
	"light":        "💡",
	"pump":         "🚰",
	"humidifier":   "💧",
	"dehumidifier": "🏜",
	"heater":       "🔥",
	"outlet":       "🔌",
	"other":        "🔧",
}
