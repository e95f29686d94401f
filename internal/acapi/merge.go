package acapi

import (
	"encoding/json"
	"strconv"
)

// KeyValue is a single settings field change requested by a caller.
type KeyValue struct {
	Key   string
	Value int
}

// settingsClass describes how to turn a settings blob read from the API into
// a payload the write endpoint accepts. Each settings class (port mode,
// advanced) carries its own field tables; the tables are vendor contract
// details and must not be edited without re-verifying against the API.
type settingsClass struct {
	// strip lists fields the write endpoint rejects and must never round-trip
	strip []string
	// defaultZero lists fields the write endpoint requires but the read
	// endpoint may omit; they default to 0
	defaultZero []string
	// defaultEmpty is the same for string-typed fields, defaulting to ""
	defaultEmpty []string
	// intIDs lists identifier fields returned as strings but required as
	// integers on write
	intIDs []string
}

// modeSettingsClass covers the per-port mode settings blob
// (getdevModeSettingList / addDevMode).
var modeSettingsClass = settingsClass{
	strip:       []string{ModeKeyMacAddr, ModeKeyIPC, ModeKeySetting},
	defaultZero: []string{ModeKeyVPDStatus, ModeKeyVPDNums},
	intIDs:      []string{ModeKeyDeviceID, ModeKeyModeSetID},
}

// advancedSettingsClass covers the controller/port advanced settings blob
// (getDevSetting / updateAdvSetting).
var advancedSettingsClass = settingsClass{
	strip: []string{
		AdvKeySetID,
		AdvKeyMacAddr,
		AdvKeyPortResistance,
		AdvKeyTimeZone,
		AdvKeySensorSetting,
		AdvKeySensorTransBuff,
		AdvKeySubDeviceVersion,
		AdvKeySecFucReportTime,
		AdvKeyUpdateAllPort,
		AdvKeyCalibrationTime,
	},
	defaultZero: []string{
		AdvKeySensorOneType,
		AdvKeySensorTwoType,
		AdvKeyZoneSensorType,
		AdvKeyIsShare,
		AdvKeyTargetVPDSwitch,
	},
	defaultEmpty: []string{
		AdvKeySensorSettingStr,
		AdvKeySensorTransBuffStr,
		AdvKeyPortParamData,
		AdvKeyParamSensors,
	},
	intIDs: []string{AdvKeyDeviceID},
}

// MergeModeSettings builds a complete port mode settings payload from the
// current settings blob and a set of caller changes. The transform is pure:
// the input map is not modified, and identical inputs produce identical
// payloads.
func MergeModeSettings(current map[string]any, changes []KeyValue) map[string]any {
	return modeSettingsClass.merge(current, changes)
}

// MergeAdvancedSettings builds a complete advanced settings payload. The
// controller's current display name must be threaded through: the write
// endpoint blanks the name field when it is omitted.
func MergeAdvancedSettings(current map[string]any, deviceName string, changes []KeyValue) map[string]any {
	payload := advancedSettingsClass.merge(current, changes)
	payload[AdvKeyDeviceName] = deviceName
	return payload
}

func (sc settingsClass) merge(current map[string]any, changes []KeyValue) map[string]any {
	payload := make(map[string]any, len(current))
	for key, value := range current {
		payload[key] = value
	}

	// 1. Strip fields the write endpoint does not accept
	for _, key := range sc.strip {
		delete(payload, key)
	}

	// 2. Insert required fields the read endpoint may omit
	for _, key := range sc.defaultZero {
		if _, ok := payload[key]; !ok {
			payload[key] = 0
		}
	}
	for _, key := range sc.defaultEmpty {
		if _, ok := payload[key]; !ok {
			payload[key] = ""
		}
	}

	// 3. Coerce identifier fields from string to integer. Identifiers can
	// exceed int64, so they are held as json.Number to keep the wire form an
	// unquoted integer without precision loss.
	for _, key := range sc.intIDs {
		if value, ok := payload[key]; ok {
			payload[key] = coerceIntNumber(value)
		}
	}

	// 4. Apply the caller's changes
	for _, change := range changes {
		payload[change.Key] = change.Value
	}

	// 5. The API rejects null: any remaining null field becomes zero
	for key, value := range payload {
		if value == nil {
			payload[key] = 0
		}
	}

	return payload
}

// coerceIntNumber renders an identifier value as an integer json.Number.
func coerceIntNumber(v any) json.Number {
	switch id := v.(type) {
	case json.Number:
		return id
	case string:
		return json.Number(id)
	case float64:
		return json.Number(strconv.FormatFloat(id, 'f', -1, 64))
	case int:
		return json.Number(strconv.Itoa(id))
	default:
		return json.Number(NormalizeID(v))
	}
}
