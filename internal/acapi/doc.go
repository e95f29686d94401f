// Package acapi provides an HTTP client for the AC Infinity cloud API.
//
// This package implements the transport layer for reading and writing
// grow-tent controller state: login and session-token lifecycle, the raw
// form-encoded POST endpoints, and the settings merge engine that turns a
// partial settings change into the full payload the write endpoints demand.
//
// # Endpoints
//
// The API is a set of form-encoded POST endpoints returning a JSON envelope
// {code, data|msg} where code 200 signals success:
//   - appUserLogin: email + password, returns the session token
//   - devInfoListAll: every controller on the account with nested port and
//     sensor telemetry
//   - getdevModeSettingList / addDevMode: per-port mode settings read/write
//   - getDevSetting / updateAdvSetting: controller- or port-scope advanced
//     settings read/write
//
// # Partial updates
//
// The write endpoints require a complete settings record, but callers only
// want to change one or two fields. MergeModeSettings and
// MergeAdvancedSettings build the full payload: fetch-fresh current state,
// strip fields the API rejects on write-back, default fields the read
// endpoint may omit, coerce identifier fields from string to integer, apply
// the caller's changes, and scrub nulls. The field tables are vendor
// contract details carried verbatim.
//
// # Error Handling
//
// Failures are typed *APIError values in three categories: connectivity
// (unreachable host, non-200 HTTP status, or a call made while not logged
// in), authentication (the login endpoint rejected the credentials), and
// request (any other endpoint answered an application-level failure code).
// Connectivity and request errors are retryable; authentication errors are
// not. Retry happens above this layer; the transport itself never retries.
//
// # Usage Example
//
//	client := acapi.NewClient("grower@example.com", "hunter2")
//	if err := client.Login(); err != nil {
//	    log.Fatal(err)
//	}
//
//	devices, err := client.GetDevicesListAll()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Change one field; the merge engine builds the full payload
//	err = client.SetDeviceModeSettings(deviceID, 1, []acapi.KeyValue{{Key: "atType", Value: 2}})
package acapi
