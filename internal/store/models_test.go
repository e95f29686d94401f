package store

import (
	"strings"
	"testing"
)

func TestSensorValue(t *testing.T) {
	tests := []struct {
		name      string
		raw       int
		precision int
		want      float64
	}{
		{"temperature hundredths", 7551, 3, 75.51},
		{"humidity hundredths", 5813, 3, 58.13},
		{"vpd tenths", 97, 2, 9.7},
		{"unscaled", 5, 1, 5},
		{"zero precision", 800, 0, 800},
		{"co2 ppm", 1200, 1, 1200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sen := &Sensor{RawData: tt.raw, Precision: tt.precision}
			if got := sen.Value(); got != tt.want {
				t.Errorf("Value() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeviceTypeName(t *testing.T) {
	if got := DeviceTypeName(11); got != "UIS Controller 69 Pro (CTR69P)" {
		t.Errorf("DeviceTypeName(11) = %s", got)
	}
	if got := DeviceTypeName(18); got != "UIS Controller 69 Pro+ (CTR69Q)" {
		t.Errorf("DeviceTypeName(18) = %s", got)
	}
	if got := DeviceTypeName(20); got != "UIS Controller AI+ (CTR-AIP)" {
		t.Errorf("DeviceTypeName(20) = %s", got)
	}
	if got := DeviceTypeName(99); got != "UIS Controller (type 99)" {
		t.Errorf("DeviceTypeName(99) = %s", got)
	}
}

func TestSensorTypeName(t *testing.T) {
	if got := SensorTypeName(SensorTypeControllerHumidity); got != "Controller Humidity" {
		t.Errorf("SensorTypeName = %s", got)
	}
	if got := SensorTypeName(42); got != "Sensor (type 42)" {
		t.Errorf("unknown code = %s", got)
	}
	if KnownSensorType(42) {
		t.Error("42 should not be a known sensor type")
	}
	if !KnownSensorType(SensorTypeCO2) {
		t.Error("CO2 should be a known sensor type")
	}
}

func TestControllerString(t *testing.T) {
	c := &Controller{
		DeviceID:        "54929097239553773072",
		Name:            "Veg Tent",
		DeviceType:      11,
		Model:           DeviceTypeName(11),
		FirmwareVersion: "3.2.25",
	}
	c.Ports = []*Port{
		{Index: 1, Name: "Grow Lights", Controller: c},
		{Index: 2, Name: "Exhaust Fan", Controller: c},
	}

	got := c.String()
	for _, want := range []string{"Veg Tent", "54929097239553773072", "3.2.25", "1:Grow Lights", "2:Exhaust Fan", "CTR69P"} {
		if !strings.Contains(got, want) {
			t.Errorf("String() = %q, missing %q", got, want)
		}
	}
}
