package acapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// API endpoint paths. These are fixed vendor contract details.
const (
	apiURLLogin              = "/api/user/appUserLogin"
	apiURLDevInfoListAll     = "/api/user/devInfoListAll"
	apiURLGetDevModeSettings = "/api/dev/getdevModeSettingList"
	apiURLAddDevMode         = "/api/dev/addDevMode"
	apiURLGetDevSettings     = "/api/dev/getDevSetting"
	apiURLUpdateAdvSettings  = "/api/dev/updateAdvSetting"
)

// Well-known keys in the controller blob returned by devInfoListAll.
const (
	PropertyKeyDeviceID        = "devId"
	PropertyKeyDeviceName      = "devName"
	PropertyKeyMacAddr         = "devMacAddr"
	PropertyKeyDeviceType      = "devType"
	PropertyKeyTimeZone        = "devTimeZone"
	PropertyKeyHardwareVersion = "hardwareVersion"
	PropertyKeyFirmwareVersion = "firmwareVersion"
	PropertyKeyDeviceInfo      = "deviceInfo"
	PropertyKeyPortCount       = "portCount"
	PropertyKeyPorts           = "ports"
	PropertyKeySensors         = "sensors"
)

// Well-known keys in a port blob nested under deviceInfo.ports.
const (
	PortPropertyKeyPort       = "port"
	PortPropertyKeyName       = "portName"
	PortPropertyKeyOnline     = "online"
	PortPropertyKeySpeak      = "speak"
	PortPropertyKeyCurMode    = "curMode"
	PortPropertyKeyRemainTime = "remainTime"
)

// Well-known keys in a sensor blob nested under deviceInfo.sensors.
const (
	SensorKeyType       = "sensorType"
	SensorKeyAccessPort = "accessPort"
	SensorKeyData       = "sensorData"
	SensorKeyPrecision  = "sensorPrecision"
	SensorKeyUnit       = "sensorUnit"
)

// Port mode settings keys involved in the write-back merge. The read endpoint
// returns many more keys; only the ones the merge must treat specially are
// named here.
const (
	ModeKeyDeviceID  = "devId"
	ModeKeyModeSetID = "modeSetid"
	ModeKeyMacAddr   = "devMacAddr"
	ModeKeyIPC       = "ipcSetting"
	ModeKeySetting   = "devSetting"
	ModeKeyVPDStatus = "vpdstatus"
	ModeKeyVPDNums   = "vpdnums"
)

// Advanced settings keys involved in the write-back merge.
const (
	AdvKeyDeviceID         = "devId"
	AdvKeyDeviceName       = "devName"
	AdvKeySetID            = "setId"
	AdvKeyMacAddr          = "devMacAddr"
	AdvKeyPortResistance   = "portResistance"
	AdvKeyTimeZone         = "devTimeZone"
	AdvKeySensorSetting    = "sensorSetting"
	AdvKeySensorTransBuff  = "sensorTransBuff"
	AdvKeySubDeviceVersion = "subDeviceVersion"
	AdvKeySecFucReportTime = "secFucReportTime"
	AdvKeyUpdateAllPort    = "updateAllPort"
	AdvKeyCalibrationTime  = "calibrationTime"

	AdvKeySensorSettingStr   = "sensorSettingStr"
	AdvKeySensorTransBuffStr = "sensorTransBuffStr"
	AdvKeyPortParamData      = "portParamData"
	AdvKeyParamSensors       = "paramSensors"

	AdvKeySensorOneType   = "sensorOneType"
	AdvKeySensorTwoType   = "sensorTwoType"
	AdvKeyZoneSensorType  = "zoneSensorType"
	AdvKeyIsShare         = "isShare"
	AdvKeyTargetVPDSwitch = "targetVpdSwitch"
)

// responseCodeSuccess is the application-level success code carried in every
// response envelope.
const responseCodeSuccess = 200

// envelope is the wrapper every API response carries: {code, data|msg}.
type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// decodeBlob decodes a JSON object into a generic map. Numbers are kept as
// json.Number: device identifiers exceed int64 and must round-trip exactly.
func decodeBlob(raw json.RawMessage) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var blob map[string]any
	if err := dec.Decode(&blob); err != nil {
		return nil, fmt.Errorf("failed to decode settings blob: %w", err)
	}
	return blob, nil
}

// decodeBlobList decodes a JSON array of objects, with the same json.Number
// handling as decodeBlob.
func decodeBlobList(raw json.RawMessage) ([]map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var blobs []map[string]any
	if err := dec.Decode(&blobs); err != nil {
		return nil, fmt.Errorf("failed to decode device list: %w", err)
	}
	return blobs, nil
}

// NormalizeID renders a device or record identifier as a string regardless of
// whether the API returned it as a JSON string or number.
func NormalizeID(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case json.Number:
		return id.String()
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case int:
		return strconv.Itoa(id)
	case int64:
		return strconv.FormatInt(id, 10)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", id)
	}
}
