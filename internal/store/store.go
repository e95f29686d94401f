package store

import "sort"

// portKey identifies one port on one controller. Controller identifiers are
// always normalized to string form before they become map keys, regardless
// of whether the API returned them as strings or numbers.
type portKey struct {
	deviceID string
	port     int
}

// Store holds the latest fetched snapshot of controller state as four
// independent mappings: controller properties, per-port properties,
// controller-level settings, and per-port settings.
//
// The store takes no locks. It is written only by the refresh orchestrator
// and assumes at most one refresh in flight; serializing refresh triggers is
// the caller's responsibility. Reads are plain map lookups.
type Store struct {
	controllerProps    map[string]map[string]any
	portProps          map[portKey]map[string]any
	controllerSettings map[string]map[string]any
	portSettings       map[portKey]map[string]any
}

// New creates an empty store.
func New() *Store {
	return &Store{
		controllerProps:    make(map[string]map[string]any),
		portProps:          make(map[portKey]map[string]any),
		controllerSettings: make(map[string]map[string]any),
		portSettings:       make(map[portKey]map[string]any),
	}
}

// SetControllerProperties records the controller blob from the latest fetch,
// replacing any previous snapshot for that controller.
func (s *Store) SetControllerProperties(deviceID string, blob map[string]any) {
	s.controllerProps[deviceID] = blob
}

// SetPortProperties records a port blob from the latest fetch.
func (s *Store) SetPortProperties(deviceID string, port int, blob map[string]any) {
	s.portProps[portKey{deviceID, port}] = blob
}

// SetControllerSettings records a controller-level advanced settings blob.
func (s *Store) SetControllerSettings(deviceID string, blob map[string]any) {
	s.controllerSettings[deviceID] = blob
}

// SetPortSettings records a per-port mode settings blob.
func (s *Store) SetPortSettings(deviceID string, port int, blob map[string]any) {
	s.portSettings[portKey{deviceID, port}] = blob
}

// ControllerProperty returns the named property from the controller's latest
// snapshot, or def when the controller, the key, or the value is missing.
// A held null resolves to def through the same path as an absent key.
func (s *Store) ControllerProperty(deviceID, key string, def any) any {
	return lookup(s.controllerProps[deviceID], key, def)
}

// ControllerPropertyExists reports whether the key is present in the
// controller's latest snapshot. A key holding null still exists.
func (s *Store) ControllerPropertyExists(deviceID, key string) bool {
	return exists(s.controllerProps[deviceID], key)
}

// PortProperty returns the named property from a port's latest snapshot,
// with the same default semantics as ControllerProperty.
func (s *Store) PortProperty(deviceID string, port int, key string, def any) any {
	return lookup(s.portProps[portKey{deviceID, port}], key, def)
}

// PortPropertyExists reports whether the key is present for the port.
func (s *Store) PortPropertyExists(deviceID string, port int, key string) bool {
	return exists(s.portProps[portKey{deviceID, port}], key)
}

// ControllerSetting returns the named controller-level setting, with the
// same default semantics as ControllerProperty.
func (s *Store) ControllerSetting(deviceID, key string, def any) any {
	return lookup(s.controllerSettings[deviceID], key, def)
}

// ControllerSettingExists reports whether the key is present in the
// controller's settings snapshot.
func (s *Store) ControllerSettingExists(deviceID, key string) bool {
	return exists(s.controllerSettings[deviceID], key)
}

// PortSetting returns the named per-port setting, with the same default
// semantics as ControllerProperty.
func (s *Store) PortSetting(deviceID string, port int, key string, def any) any {
	return lookup(s.portSettings[portKey{deviceID, port}], key, def)
}

// PortSettingExists reports whether the key is present for the port.
func (s *Store) PortSettingExists(deviceID string, port int, key string) bool {
	return exists(s.portSettings[portKey{deviceID, port}], key)
}

// Controllers constructs the typed Controller/Port/Sensor view from the raw
// cached blobs. The projection is rebuilt on each call; it is a cheap,
// stateless read of the in-memory snapshot, not a network fetch.
func (s *Store) Controllers() []*Controller {
	controllers := make([]*Controller, 0, len(s.controllerProps))
	for deviceID, blob := range s.controllerProps {
		controllers = append(controllers, controllerFromBlob(deviceID, blob))
	}
	sort.Slice(controllers, func(i, j int) bool {
		return controllers[i].DeviceID < controllers[j].DeviceID
	})
	return controllers
}

// lookup resolves unknown map, unknown key, and held null through the exact
// same default path. Nothing here raises.
func lookup(blob map[string]any, key string, def any) any {
	if blob == nil {
		return def
	}
	value, ok := blob[key]
	if !ok || value == nil {
		return def
	}
	return value
}

func exists(blob map[string]any, key string) bool {
	if blob == nil {
		return false
	}
	_, ok := blob[key]
	return ok
}
