package store

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/tentlab/acinfinity/internal/acapi"
	"github.com/tentlab/acinfinity/internal/logging"
)

// Controller is the typed view of one physical UIS hub, projected from the
// raw devInfoListAll blob.
type Controller struct {
	DeviceID        string
	MACAddr         string
	Name            string
	DeviceType      int
	Model           string
	HardwareVersion string
	FirmwareVersion string
	TimeZone        string
	PortCount       int
	Ports           []*Port
	Sensors         []*Sensor
}

// Port is a numbered expansion slot on a controller. Indices are stable
// small integers but not necessarily contiguous.
type Port struct {
	Index int
	Name  string

	// Controller is a non-owning back-reference to the owning hub
	Controller *Controller
}

// Sensor is one typed telemetry reading reported by AI-capable controllers.
type Sensor struct {
	Type       int
	AccessPort int // 0 for controller-level readings
	RawData    int
	Precision  int
	Unit       int // 0 = Fahrenheit source, >0 = already Celsius
}

// Sensor type codes reported in devInfoListAll. The set is open-ended:
// unknown codes are skipped in the typed projection but their blobs stay
// reachable through the generic property accessors.
const (
	SensorTypeProbeTempF         = 0
	SensorTypeProbeTempC         = 1
	SensorTypeProbeHumidity      = 2
	SensorTypeProbeVPD           = 3
	SensorTypeControllerTempF    = 4
	SensorTypeControllerTempC    = 5
	SensorTypeControllerHumidity = 6
	SensorTypeControllerVPD      = 7
	SensorTypeCO2                = 10
	SensorTypeLight              = 11
	SensorTypeSoil               = 12
	SensorTypeWater              = 13
)

var sensorTypeNames = map[int]string{
	SensorTypeProbeTempF:         "Probe Temperature (F)",
	SensorTypeProbeTempC:         "Probe Temperature (C)",
	SensorTypeProbeHumidity:      "Probe Humidity",
	SensorTypeProbeVPD:           "Probe VPD",
	SensorTypeControllerTempF:    "Controller Temperature (F)",
	SensorTypeControllerTempC:    "Controller Temperature (C)",
	SensorTypeControllerHumidity: "Controller Humidity",
	SensorTypeControllerVPD:      "Controller VPD",
	SensorTypeCO2:                "CO2",
	SensorTypeLight:              "Light",
	SensorTypeSoil:               "Soil Moisture",
	SensorTypeWater:              "Water Level",
}

// deviceTypeNames maps the devType code to the vendor model name. The vendor
// adds hardware types without notice, so unknown codes fall back to a
// generic label instead of failing.
var deviceTypeNames = map[int]string{
	11: "UIS Controller 69 Pro (CTR69P)",
	18: "UIS Controller 69 Pro+ (CTR69Q)",
	20: "UIS Controller AI+ (CTR-AIP)",
}

// DeviceTypeName returns the model name for a devType code.
func DeviceTypeName(code int) string {
	if name, ok := deviceTypeNames[code]; ok {
		return name
	}
	return fmt.Sprintf("UIS Controller (type %d)", code)
}

// SensorTypeName returns a display name for a sensor type code.
func SensorTypeName(code int) string {
	if name, ok := sensorTypeNames[code]; ok {
		return name
	}
	return fmt.Sprintf("Sensor (type %d)", code)
}

// KnownSensorType reports whether the code is in the projection table.
func KnownSensorType(code int) bool {
	_, ok := sensorTypeNames[code]
	return ok
}

// Value decodes the fixed-point reading: raw / 10^(precision-1) when
// precision > 1, the raw value unscaled otherwise.
func (sen *Sensor) Value() float64 {
	if sen.Precision > 1 {
		return float64(sen.RawData) / math.Pow10(sen.Precision-1)
	}
	return float64(sen.RawData)
}

// TypeName returns the display name for the sensor's type code.
func (sen *Sensor) TypeName() string {
	return SensorTypeName(sen.Type)
}

// controllerFromBlob projects the raw controller blob into the typed view.
// Missing or malformed fields degrade to zero values; projection never fails.
func controllerFromBlob(deviceID string, blob map[string]any) *Controller {
	c := &Controller{
		DeviceID:        deviceID,
		MACAddr:         asString(blob[acapi.PropertyKeyMacAddr]),
		Name:            asString(blob[acapi.PropertyKeyDeviceName]),
		DeviceType:      asInt(blob[acapi.PropertyKeyDeviceType]),
		HardwareVersion: asString(blob[acapi.PropertyKeyHardwareVersion]),
		FirmwareVersion: asString(blob[acapi.PropertyKeyFirmwareVersion]),
		TimeZone:        asString(blob[acapi.PropertyKeyTimeZone]),
	}
	c.Model = DeviceTypeName(c.DeviceType)

	info, _ := blob[acapi.PropertyKeyDeviceInfo].(map[string]any)
	if info == nil {
		return c
	}

	c.PortCount = asInt(info[acapi.PropertyKeyPortCount])

	for _, raw := range asList(info[acapi.PropertyKeyPorts]) {
		c.Ports = append(c.Ports, &Port{
			Index:      asInt(raw[acapi.PortPropertyKeyPort]),
			Name:       asString(raw[acapi.PortPropertyKeyName]),
			Controller: c,
		})
	}

	for _, raw := range asList(info[acapi.PropertyKeySensors]) {
		sensorType := asInt(raw[acapi.SensorKeyType])
		if !KnownSensorType(sensorType) {
			logging.Debug("Skipping unknown sensor type",
				zap.String("device_id", deviceID),
				zap.Int("sensor_type", sensorType),
			)
			continue
		}
		c.Sensors = append(c.Sensors, &Sensor{
			Type:       sensorType,
			AccessPort: asInt(raw[acapi.SensorKeyAccessPort]),
			RawData:    asInt(raw[acapi.SensorKeyData]),
			Precision:  asInt(raw[acapi.SensorKeyPrecision]),
			Unit:       asInt(raw[acapi.SensorKeyUnit]),
		})
	}

	return c
}

// String returns a human-readable summary of the controller.
func (c *Controller) String() string {
	ports := make([]string, len(c.Ports))
	for i, p := range c.Ports {
		ports[i] = fmt.Sprintf("%d:%s", p.Index, p.Name)
	}
	return fmt.Sprintf("%s %q (id: %s, fw: %s, ports: %s)",
		c.Model, c.Name, c.DeviceID, c.FirmwareVersion, strings.Join(ports, ", "))
}

// asInt extracts an integer from a decoded JSON value. json.Number is the
// common case since blobs are decoded with UseNumber.
func asInt(v any) int {
	switch value := v.(type) {
	case json.Number:
		if i, err := value.Int64(); err == nil {
			return int(i)
		}
		if f, err := value.Float64(); err == nil {
			return int(f)
		}
		return 0
	case float64:
		return int(value)
	case int:
		return value
	case string:
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
		return 0
	default:
		return 0
	}
}

func asString(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case json.Number:
		return value.String()
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", value)
	}
}

func asList(v any) []map[string]any {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	list := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if blob, ok := item.(map[string]any); ok {
			list = append(list, blob)
		}
	}
	return list
}
