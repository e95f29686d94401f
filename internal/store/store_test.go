package store

import (
	"encoding/json"
	"testing"
)

const testDeviceID = "54929097239553773072"

func TestLookupDefaults(t *testing.T) {
	s := New()

	// Unknown controller
	if got := s.ControllerProperty(testDeviceID, "devName", "fallback"); got != "fallback" {
		t.Errorf("unknown controller: got %v, want fallback", got)
	}
	if s.ControllerPropertyExists(testDeviceID, "devName") {
		t.Error("unknown controller should not have properties")
	}

	s.SetControllerProperties(testDeviceID, map[string]any{
		"devName":    "Veg Tent",
		"devType":    json.Number("11"),
		"ipcSetting": nil,
	})

	// Known key
	if got := s.ControllerProperty(testDeviceID, "devName", "fallback"); got != "Veg Tent" {
		t.Errorf("devName = %v, want Veg Tent", got)
	}
	// Unknown key under a known controller
	if got := s.ControllerProperty(testDeviceID, "noSuchKey", 42); got != 42 {
		t.Errorf("unknown key: got %v, want 42", got)
	}
	if s.ControllerPropertyExists(testDeviceID, "noSuchKey") {
		t.Error("unknown key reported as existing")
	}
}

func TestNullValueExistsButDefaults(t *testing.T) {
	s := New()
	s.SetControllerProperties(testDeviceID, map[string]any{"ipcSetting": nil})

	// A held null resolves to the default through the value accessor
	if got := s.ControllerProperty(testDeviceID, "ipcSetting", "default"); got != "default" {
		t.Errorf("null value: got %v, want default", got)
	}
	// but the key still exists
	if !s.ControllerPropertyExists(testDeviceID, "ipcSetting") {
		t.Error("key holding null should still exist")
	}
}

func TestPortAccessors(t *testing.T) {
	s := New()
	s.SetPortProperties(testDeviceID, 1, map[string]any{"portName": "Grow Lights", "speak": json.Number("5")})
	s.SetPortSettings(testDeviceID, 1, map[string]any{"onSpead": json.Number("5"), "atType": json.Number("2")})

	if got := s.PortProperty(testDeviceID, 1, "portName", ""); got != "Grow Lights" {
		t.Errorf("portName = %v, want Grow Lights", got)
	}
	if got := s.PortSetting(testDeviceID, 1, "onSpead", json.Number("0")); got != json.Number("5") {
		t.Errorf("onSpead = %v, want 5", got)
	}
	// Ports are keyed independently
	if got := s.PortSetting(testDeviceID, 2, "onSpead", json.Number("0")); got != json.Number("0") {
		t.Errorf("port 2 onSpead = %v, want default", got)
	}
	if s.PortSettingExists(testDeviceID, 2, "onSpead") {
		t.Error("port 2 should have no settings")
	}
	// Same port index on a different controller is a different key
	if s.PortPropertyExists("111", 1, "portName") {
		t.Error("other controller's port 1 should be empty")
	}
}

func TestControllerSettings(t *testing.T) {
	s := New()
	s.SetControllerSettings(testDeviceID, map[string]any{"devCt": json.Number("-2"), "calibrationTime": nil})

	if got := s.ControllerSetting(testDeviceID, "devCt", json.Number("0")); got != json.Number("-2") {
		t.Errorf("devCt = %v, want -2", got)
	}
	if got := s.ControllerSetting(testDeviceID, "calibrationTime", 0); got != 0 {
		t.Errorf("null calibrationTime = %v, want default 0", got)
	}
	if !s.ControllerSettingExists(testDeviceID, "calibrationTime") {
		t.Error("null calibrationTime should exist")
	}
}

func TestSetReplacesSnapshot(t *testing.T) {
	s := New()
	s.SetControllerProperties(testDeviceID, map[string]any{"devName": "Old", "extra": json.Number("1")})
	s.SetControllerProperties(testDeviceID, map[string]any{"devName": "New"})

	if got := s.ControllerProperty(testDeviceID, "devName", ""); got != "New" {
		t.Errorf("devName = %v, want New", got)
	}
	// A field dropped from the latest snapshot is gone, not merged
	if s.ControllerPropertyExists(testDeviceID, "extra") {
		t.Error("stale field survived a snapshot replacement")
	}
}

func TestControllersProjection(t *testing.T) {
	s := New()
	s.SetControllerProperties(testDeviceID, map[string]any{
		"devName":         "Veg Tent",
		"devMacAddr":      "AB:CD:EF:12:34:56",
		"devType":         json.Number("11"),
		"firmwareVersion": "3.2.25",
		"deviceInfo": map[string]any{
			"portCount": json.Number("4"),
			"ports": []any{
				map[string]any{"port": json.Number("1"), "portName": "Grow Lights"},
				map[string]any{"port": json.Number("2"), "portName": "Exhaust Fan"},
			},
			"sensors": []any{
				map[string]any{"sensorType": json.Number("0"), "accessPort": json.Number("0"), "sensorData": json.Number("7551"), "sensorPrecision": json.Number("3"), "sensorUnit": json.Number("0")},
				map[string]any{"sensorType": json.Number("99"), "accessPort": json.Number("0"), "sensorData": json.Number("1"), "sensorPrecision": json.Number("1"), "sensorUnit": json.Number("0")},
			},
		},
	})
	s.SetControllerProperties("111", map[string]any{"devName": "Flower Tent", "devType": json.Number("37")})

	controllers := s.Controllers()
	if len(controllers) != 2 {
		t.Fatalf("got %d controllers, want 2", len(controllers))
	}
	// Sorted by device id
	if controllers[0].DeviceID != "111" || controllers[1].DeviceID != testDeviceID {
		t.Errorf("controllers not sorted by id: %s, %s", controllers[0].DeviceID, controllers[1].DeviceID)
	}

	veg := controllers[1]
	if veg.Name != "Veg Tent" {
		t.Errorf("Name = %s, want Veg Tent", veg.Name)
	}
	if veg.Model != "UIS Controller 69 Pro (CTR69P)" {
		t.Errorf("Model = %s", veg.Model)
	}
	if veg.PortCount != 4 {
		t.Errorf("PortCount = %d, want 4", veg.PortCount)
	}
	if len(veg.Ports) != 2 {
		t.Fatalf("got %d ports, want 2", len(veg.Ports))
	}
	if veg.Ports[0].Name != "Grow Lights" || veg.Ports[0].Index != 1 {
		t.Errorf("port 0 = %d:%s", veg.Ports[0].Index, veg.Ports[0].Name)
	}
	if veg.Ports[1].Controller != veg {
		t.Error("port back-reference does not point at its controller")
	}

	// The unknown sensor type 99 is skipped, not projected and not fatal
	if len(veg.Sensors) != 1 {
		t.Fatalf("got %d sensors, want 1 (unknown type skipped)", len(veg.Sensors))
	}
	if veg.Sensors[0].Type != SensorTypeProbeTempF {
		t.Errorf("sensor type = %d", veg.Sensors[0].Type)
	}

	// Unknown devType degrades to the generic label
	if got := controllers[0].Model; got != "UIS Controller (type 37)" {
		t.Errorf("unknown devType model = %s", got)
	}
}

func TestControllersProjectionMissingDeviceInfo(t *testing.T) {
	s := New()
	s.SetControllerProperties(testDeviceID, map[string]any{"devName": "Bare"})

	controllers := s.Controllers()
	if len(controllers) != 1 {
		t.Fatalf("got %d controllers, want 1", len(controllers))
	}
	c := controllers[0]
	if c.Name != "Bare" || c.PortCount != 0 || len(c.Ports) != 0 || len(c.Sensors) != 0 {
		t.Errorf("projection of bare blob = %+v", c)
	}
}
