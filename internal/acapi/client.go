package acapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tentlab/acinfinity/internal/logging"
)

const (
	// DefaultBaseURL is the production AC Infinity API host
	DefaultBaseURL = "http://www.acinfinityserver.com"

	// DefaultTimeout is the default HTTP request timeout. The transport has no
	// separate cancellation token; the timeout doubles as cancellation and
	// feeds into the caller's retry policy as a connectivity failure.
	DefaultTimeout = 10 * time.Second

	// maxPasswordLength is the vendor API's undocumented password limit. The
	// mobile client silently truncates before transmission, and login fails
	// for longer passwords that are sent whole, so we do the same.
	maxPasswordLength = 25

	// userAgent mimics the vendor's mobile client. The API rejects requests
	// without it.
	userAgent = "ACController/1.8.2 (com.acinfinity.humiture; build:489; iOS 16.5.1) Alamofire/5.4.4"
)

// Client is an authenticated HTTP client for the AC Infinity cloud API.
//
// All endpoints are form-encoded POSTs answered by a {code, data|msg} JSON
// envelope. The client owns the session-token lifecycle: Login obtains a
// token, and every subsequent call carries it in the token header. Calls that
// require a session fail fast with a connectivity error when no token is held.
type Client struct {
	// BaseURL is the API host (e.g., "http://www.acinfinityserver.com")
	BaseURL string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client

	email    string
	password string
	token    string
}

// NewClient creates a client for the production API host.
func NewClient(email, password string) *Client {
	return NewClientWithURL(DefaultBaseURL, email, password)
}

// NewClientWithURL creates a client with a custom base URL (used by tests).
func NewClientWithURL(baseURL, email, password string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
		email:      email,
		password:   password,
	}
}

// SetTimeout sets the HTTP request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// IsLoggedIn reports whether a session token is currently held. It performs
// no network round trip.
func (c *Client) IsLoggedIn() bool {
	return c.token != ""
}

// Login authenticates with the API and stores the session token.
// A non-200 HTTP status is a connectivity failure; an application-level
// failure code from this endpoint is an authentication failure, so callers
// can tell "bad credentials" apart from "can't reach server".
func (c *Client) Login() error {
	// The API truncates rather than rejects over-long passwords
	password := c.password
	if runes := []rune(password); len(runes) > maxPasswordLength {
		password = string(runes[:maxPasswordLength])
	}

	form := url.Values{}
	form.Set("appEmail", c.email)
	form.Set("appPasswordl", password)

	data, err := c.post(apiURLLogin, form)
	if err != nil {
		return err
	}

	blob, err := decodeBlob(data)
	if err != nil {
		return NewParseError(apiURLLogin, err)
	}

	token := NormalizeID(blob["appId"])
	if token == "" {
		return NewParseError(apiURLLogin, fmt.Errorf("login response carries no appId"))
	}

	c.token = token
	logging.Debug("Logged in to AC Infinity API", zap.String("email", c.email))
	return nil
}

// GetDevicesListAll returns the raw controller blobs for every controller
// registered to the account.
func (c *Client) GetDevicesListAll() ([]map[string]any, error) {
	if !c.IsLoggedIn() {
		return nil, NewNotLoggedInError(apiURLDevInfoListAll)
	}

	form := url.Values{}
	form.Set("userId", c.token)

	data, err := c.post(apiURLDevInfoListAll, form)
	if err != nil {
		return nil, err
	}

	devices, err := decodeBlobList(data)
	if err != nil {
		return nil, NewParseError(apiURLDevInfoListAll, err)
	}
	return devices, nil
}

// GetDeviceModeSettingsList returns the raw mode settings blob for one port.
func (c *Client) GetDeviceModeSettingsList(deviceID string, port int) (map[string]any, error) {
	return c.getSettings(apiURLGetDevModeSettings, deviceID, port)
}

// GetDeviceSettings returns the raw advanced settings blob for a controller
// (port 0) or a port.
func (c *Client) GetDeviceSettings(deviceID string, port int) (map[string]any, error) {
	return c.getSettings(apiURLGetDevSettings, deviceID, port)
}

func (c *Client) getSettings(endpoint, deviceID string, port int) (map[string]any, error) {
	if !c.IsLoggedIn() {
		return nil, NewNotLoggedInError(endpoint)
	}

	form := url.Values{}
	form.Set("devId", deviceID)
	form.Set("port", strconv.Itoa(port))

	data, err := c.post(endpoint, form)
	if err != nil {
		return nil, err
	}

	blob, err := decodeBlob(data)
	if err != nil {
		return nil, NewParseError(endpoint, err)
	}
	return blob, nil
}

// SetDeviceModeSettings applies a partial mode settings change to one port.
// The current settings are fetched fresh, merged with the changes
// (see MergeModeSettings), and the full payload is posted back. Login state
// is not guarded here; callers retry at a higher layer.
func (c *Client) SetDeviceModeSettings(deviceID string, port int, changes []KeyValue) error {
	current, err := c.GetDeviceModeSettingsList(deviceID, port)
	if err != nil {
		return err
	}

	payload := MergeModeSettings(current, changes)
	_, err = c.post(apiURLAddDevMode, payloadToForm(payload))
	return err
}

// UpdateDeviceSettings applies a partial advanced settings change to a
// controller (port 0) or a port. The controller's current display name must
// be supplied: the API blanks the name field when it is omitted from the
// write payload.
func (c *Client) UpdateDeviceSettings(deviceID string, port int, displayName string, changes []KeyValue) error {
	current, err := c.GetDeviceSettings(deviceID, port)
	if err != nil {
		return err
	}

	payload := MergeAdvancedSettings(current, displayName, changes)
	_, err = c.post(apiURLUpdateAdvSettings, payloadToForm(payload))
	return err
}

// post sends a form-encoded POST and unwraps the response envelope.
// Every request carries the fixed header set; the session token is attached
// once authenticated.
func (c *Client) post(endpoint string, form url.Values) (json.RawMessage, error) {
	req, err := http.NewRequest(http.MethodPost, c.BaseURL+endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, NewConnectivityError("failed to create request", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("token", c.token)
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, NewConnectivityError(fmt.Sprintf("request to %s failed", endpoint), err)
	}
	defer func() { _ = resp.Body.Close() }()
	logging.LogAPIRequest(endpoint, resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return nil, NewHTTPError(endpoint, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewConnectivityError("failed to read response body", err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, NewParseError(endpoint, err)
	}

	if env.Code != responseCodeSuccess {
		logging.Debug("API request rejected",
			zap.String("endpoint", endpoint),
			zap.Int("code", env.Code),
			zap.String("msg", env.Msg),
		)
		if endpoint == apiURLLogin {
			return nil, NewAuthError(env.Code, string(body))
		}
		return nil, NewRequestError(endpoint, env.Code, string(body))
	}

	return env.Data, nil
}

// payloadToForm renders a merged settings payload as form data. Values are
// already scrubbed of nulls and nested objects by the merge.
func payloadToForm(payload map[string]any) url.Values {
	form := url.Values{}
	for key, value := range payload {
		form.Set(key, formValue(value))
	}
	return form
}

func formValue(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case json.Number:
		return value.String()
	case int:
		return strconv.Itoa(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		if value {
			return "1"
		}
		return "0"
	default:
		return fmt.Sprintf("%v", value)
	}
}
