package service

import (
	"encoding/json"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/tentlab/acinfinity/internal/acapi"
	"github.com/tentlab/acinfinity/internal/logging"
	"github.com/tentlab/acinfinity/internal/retry"
	"github.com/tentlab/acinfinity/internal/store"
)

// Service drives the fetch sequence across all controllers and ports,
// populates the store, and exposes the write path. Every refresh or mutation
// is wrapped in the same bounded retry policy; authentication failures are
// never retried, so a bad-credentials condition surfaces immediately.
type Service struct {
	client *acapi.Client
	store  *store.Store

	// Attempts and Delay parameterize the retry policy shared by refresh
	// and the mutation paths
	Attempts int
	Delay    time.Duration
}

// New creates a service around the given client with a fresh, empty store.
func New(client *acapi.Client) *Service {
	return &Service{
		client:   client,
		store:    store.New(),
		Attempts: retry.DefaultAttempts,
		Delay:    retry.DefaultDelay,
	}
}

// Store returns the snapshot store consumers read from.
func (s *Service) Store() *store.Store {
	return s.store
}

// Refresh fetches a fresh snapshot of every controller and port into the
// store. The whole pass is retried on retryable failures; after retries are
// exhausted the last error propagates and the store keeps whatever it held
// before the failing pass (controllers already written in a partial pass
// stay written, an accepted inconsistency window rather than a transaction).
//
// Refresh is not reentrant. Overlapping triggers must be coalesced by the
// caller; the contract assumes at most one refresh in flight.
func (s *Service) Refresh() error {
	start := time.Now()
	var controllers, ports int
	err := retry.Do(s.Attempts, s.Delay, acapi.IsRetryable, func() error {
		var err error
		controllers, ports, err = s.refreshOnce()
		return err
	})
	if err != nil {
		logging.Warn("Refresh failed", zap.Error(err))
		return err
	}
	logging.LogRefresh(controllers, ports, time.Since(start))
	return nil
}

// refreshOnce performs a single full fetch pass and reports how many
// controllers and ports it stored. All writes for one controller happen
// together before moving to the next.
func (s *Service) refreshOnce() (controllers, ports int, err error) {
	if !s.client.IsLoggedIn() {
		if err := s.client.Login(); err != nil {
			return 0, 0, err
		}
	}

	devices, err := s.client.GetDevicesListAll()
	if err != nil {
		return 0, 0, err
	}

	for _, device := range devices {
		deviceID := acapi.NormalizeID(device[acapi.PropertyKeyDeviceID])
		s.store.SetControllerProperties(deviceID, device)
		controllers++

		settings, err := s.client.GetDeviceSettings(deviceID, 0)
		if err != nil {
			return controllers, ports, err
		}
		s.store.SetControllerSettings(deviceID, settings)

		for _, port := range devicePorts(device) {
			index := portIndex(port)
			s.store.SetPortProperties(deviceID, index, port)

			mode, err := s.client.GetDeviceModeSettingsList(deviceID, index)
			if err != nil {
				return controllers, ports, err
			}
			s.store.SetPortSettings(deviceID, index, mode)
			ports++
		}
	}

	return controllers, ports, nil
}

// UpdatePortSetting changes a single mode settings field on one port.
// The store is not touched; callers refresh to observe the change.
func (s *Service) UpdatePortSetting(deviceID string, port int, key string, value int) error {
	return s.UpdatePortSettings(deviceID, port, []acapi.KeyValue{{Key: key, Value: value}})
}

// UpdatePortSettings changes multiple mode settings fields on one port in a
// single merged write.
func (s *Service) UpdatePortSettings(deviceID string, port int, changes []acapi.KeyValue) error {
	return retry.Do(s.Attempts, s.Delay, acapi.IsRetryable, func() error {
		return s.client.SetDeviceModeSettings(deviceID, port, changes)
	})
}

// UpdateControllerSetting changes a single controller-level advanced
// settings field.
func (s *Service) UpdateControllerSetting(deviceID, key string, value int) error {
	return s.UpdateControllerSettings(deviceID, []acapi.KeyValue{{Key: key, Value: value}})
}

// UpdateControllerSettings changes multiple controller-level advanced
// settings fields in a single merged write. The controller's current display
// name is read from the store to satisfy the API's name-required constraint,
// so a refresh must have populated the store first.
func (s *Service) UpdateControllerSettings(deviceID string, changes []acapi.KeyValue) error {
	name, _ := s.store.ControllerProperty(deviceID, acapi.PropertyKeyDeviceName, "").(string)
	return retry.Do(s.Attempts, s.Delay, acapi.IsRetryable, func() error {
		return s.client.UpdateDeviceSettings(deviceID, 0, name, changes)
	})
}

// devicePorts extracts the port blobs nested under deviceInfo.ports.
func devicePorts(device map[string]any) []map[string]any {
	info, _ := device[acapi.PropertyKeyDeviceInfo].(map[string]any)
	if info == nil {
		return nil
	}
	raw, _ := info[acapi.PropertyKeyPorts].([]any)
	ports := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if blob, ok := item.(map[string]any); ok {
			ports = append(ports, blob)
		}
	}
	return ports
}

func portIndex(port map[string]any) int {
	switch v := port[acapi.PortPropertyKeyPort].(type) {
	case json.Number:
		i, _ := v.Int64()
		return int(i)
	case float64:
		return int(v)
	case int:
		return v
	case string:
		i, _ := strconv.Atoi(v)
		return i
	default:
		return 0
	}
}
