package acapi

import (
	"encoding/json"
	"reflect"
	"testing"
)

// currentModeSettings builds a realistic mode settings blob as the read
// endpoint returns it: string ids, nested sub-objects, and a null field.
func currentModeSettings() map[string]any {
	return map[string]any{
		"devId":           "54929097239553773072",
		"modeSetid":       "1122334455",
		"externalPort":    json.Number("1"),
		"onSpead":         json.Number("5"),
		"offSpead":        json.Number("0"),
		"atType":          json.Number("1"),
		"activeHt":        json.Number("1"),
		"devHt":           json.Number("89"),
		"targetVpdSwitch": nil,
		"devMacAddr":      "AB:CD:EF:12:34:56",
		"ipcSetting":      nil,
		"devSetting":      map[string]any{"devId": "54929097239553773072"},
	}
}

func TestMergeModeSettingsStripsDenylist(t *testing.T) {
	payload := MergeModeSettings(currentModeSettings(), nil)

	for _, key := range []string{ModeKeyMacAddr, ModeKeyIPC, ModeKeySetting} {
		if _, present := payload[key]; present {
			t.Errorf("payload should not contain denylisted field %q", key)
		}
	}
}

func TestMergeModeSettingsDefaultsMissingFields(t *testing.T) {
	payload := MergeModeSettings(currentModeSettings(), nil)

	if got := payload[ModeKeyVPDStatus]; got != 0 {
		t.Errorf("vpdstatus = %v, want 0", got)
	}
	if got := payload[ModeKeyVPDNums]; got != 0 {
		t.Errorf("vpdnums = %v, want 0", got)
	}

	// A field already present keeps its value
	current := currentModeSettings()
	current[ModeKeyVPDStatus] = json.Number("1")
	payload = MergeModeSettings(current, nil)
	if got := payload[ModeKeyVPDStatus]; got != json.Number("1") {
		t.Errorf("vpdstatus = %v, want 1 (existing value kept)", got)
	}
}

func TestMergeModeSettingsCoercesIdentifiers(t *testing.T) {
	payload := MergeModeSettings(currentModeSettings(), nil)

	// devId exceeds int64, so it must survive as an exact integer number
	devID, ok := payload[ModeKeyDeviceID].(json.Number)
	if !ok {
		t.Fatalf("devId = %T, want json.Number", payload[ModeKeyDeviceID])
	}
	if devID.String() != "54929097239553773072" {
		t.Errorf("devId = %s, want 54929097239553773072", devID)
	}

	// An integer devId marshals unquoted
	encoded, err := json.Marshal(payload[ModeKeyDeviceID])
	if err != nil {
		t.Fatalf("marshal devId: %v", err)
	}
	if string(encoded) != "54929097239553773072" {
		t.Errorf("marshaled devId = %s, want unquoted 54929097239553773072", encoded)
	}

	if got := payload[ModeKeyModeSetID].(json.Number).String(); got != "1122334455" {
		t.Errorf("modeSetid = %v, want 1122334455", got)
	}
}

func TestMergeModeSettingsAppliesChanges(t *testing.T) {
	payload := MergeModeSettings(currentModeSettings(), []KeyValue{{Key: "atType", Value: 2}})

	if got := payload["atType"]; got != 2 {
		t.Errorf("atType = %v, want 2", got)
	}
	// Untouched fields survive
	if got := payload["onSpead"]; got != json.Number("5") {
		t.Errorf("onSpead = %v, want 5", got)
	}
}

func TestMergeModeSettingsScrubsNulls(t *testing.T) {
	payload := MergeModeSettings(currentModeSettings(), nil)

	if got := payload["targetVpdSwitch"]; got != 0 {
		t.Errorf("null targetVpdSwitch = %v, want 0", got)
	}
	for key, value := range payload {
		if value == nil {
			t.Errorf("payload field %q is null; the API rejects null", key)
		}
	}
}

func TestMergeModeSettingsIdempotent(t *testing.T) {
	first := MergeModeSettings(currentModeSettings(), nil)
	second := MergeModeSettings(currentModeSettings(), nil)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("merging the same snapshot twice differs:\nfirst:  %v\nsecond: %v", first, second)
	}
}

func TestMergeModeSettingsDoesNotMutateInput(t *testing.T) {
	current := currentModeSettings()
	_ = MergeModeSettings(current, []KeyValue{{Key: "onSpead", Value: 9}})

	if current["onSpead"] != json.Number("5") {
		t.Errorf("input onSpead mutated to %v", current["onSpead"])
	}
	if _, present := current[ModeKeyMacAddr]; !present {
		t.Error("input lost its devMacAddr field")
	}
}

func TestMergeAdvancedSettings(t *testing.T) {
	current := map[string]any{
		"devId":            "54929097239553773072",
		"devName":          "Old Name",
		"setId":            "99887766",
		"devMacAddr":       "AB:CD:EF:12:34:56",
		"devCompany":       json.Number("1"),
		"devCt":            json.Number("0"),
		"portResistance":   json.Number("1000"),
		"devTimeZone":      "America/Chicago",
		"sensorSetting":    nil,
		"sensorTransBuff":  nil,
		"subDeviceVersion": json.Number("5"),
		"secFucReportTime": json.Number("300"),
		"updateAllPort":    json.Number("0"),
		"calibrationTime":  nil,
	}

	payload := MergeAdvancedSettings(current, "Veg Tent", []KeyValue{{Key: "devCt", Value: -2}})

	for _, key := range []string{
		AdvKeySetID, AdvKeyMacAddr, AdvKeyPortResistance, AdvKeyTimeZone,
		AdvKeySensorSetting, AdvKeySensorTransBuff, AdvKeySubDeviceVersion,
		AdvKeySecFucReportTime, AdvKeyUpdateAllPort, AdvKeyCalibrationTime,
	} {
		if _, present := payload[key]; present {
			t.Errorf("payload should not contain denylisted field %q", key)
		}
	}

	// The display name is threaded through, or the API blanks it
	if got := payload[AdvKeyDeviceName]; got != "Veg Tent" {
		t.Errorf("devName = %v, want Veg Tent", got)
	}

	if got := payload["devCt"]; got != -2 {
		t.Errorf("devCt = %v, want -2", got)
	}

	for _, key := range []string{
		AdvKeySensorOneType, AdvKeySensorTwoType, AdvKeyZoneSensorType,
		AdvKeyIsShare, AdvKeyTargetVPDSwitch,
	} {
		if got := payload[key]; got != 0 {
			t.Errorf("%s = %v, want default 0", key, got)
		}
	}
	for _, key := range []string{
		AdvKeySensorSettingStr, AdvKeySensorTransBuffStr,
		AdvKeyPortParamData, AdvKeyParamSensors,
	} {
		if got := payload[key]; got != "" {
			t.Errorf("%s = %v, want default empty string", key, got)
		}
	}

	if got := payload[AdvKeyDeviceID].(json.Number).String(); got != "54929097239553773072" {
		t.Errorf("devId = %v, want 54929097239553773072", got)
	}
}
