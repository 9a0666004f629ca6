// Package huum is a client for the Huum sauna remote control API.
//
// It provides:
//   - Authenticated status queries and heating commands (HTTP Basic auth)
//   - A door-safety precondition before heating commands
//   - Reconciled status reads that recover the target temperature the
//     status endpoint omits while the sauna is idle
//
// The client holds no device state between calls; every operation issues a
// fresh request. It performs no retries and sets no timeout of its own:
// cancellation is the caller's via context, timeouts are the transport's.
// Concurrent calls share the underlying http.Client; callers that need
// at-most-one-in-flight command semantics must serialize at the call site.
package huum

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mkallas/huum-exporter/pkg/logger"
)

// DefaultBaseURL is the production Huum API endpoint.
const DefaultBaseURL = "https://api.huum.eu/action/home/"

// Target temperature bounds accepted by the controller. The range is
// inclusive at the bottom and exclusive at the top: MaxTemperature itself
// is rejected.
const (
	MinTemperature = 40
	MaxTemperature = 110
)

// StatusResponse is the normalized result of any client operation.
//
// Temperature and TargetTemperature are pointers because the API legitimately
// omits them: the status endpoint only reports targetTemperature while the
// sauna is actively heating. The stop endpoint reports it regardless of state,
// which ReconciledStatus exploits.
type StatusResponse struct {
	Status            SaunaStatus
	Temperature       *float64
	TargetTemperature *int
	DoorClosed        bool

	// Diagnostic codes, display-only. See ConfigText and SteamerText.
	ConfigCode  *int
	SteamerCode *int
}

// Client performs authenticated operations against the Huum API.
// Credentials are immutable for the lifetime of the client.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	ownsClient bool
	log        *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient supplies an externally managed http.Client. The caller
// retains ownership; Close will not touch it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
		c.ownsClient = false
	}
}

// WithBaseURL overrides the API endpoint. Used in tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger attaches a logger for debug output.
func WithLogger(log *logger.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient creates a client for one sauna account. Both username and
// password are required; an empty value fails with ErrMissingCredentials
// before any network access.
func NewClient(username, password string, opts ...Option) (*Client, error) {
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	c := &Client{
		baseURL:    DefaultBaseURL,
		username:   username,
		password:   password,
		httpClient: &http.Client{},
		ownsClient: true,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.log == nil {
		noop, _ := logger.NewWithWriter("error", "text", io.Discard)
		c.log = noop
	}

	return c, nil
}

// Close releases idle connections when the client owns its transport.
// It is a no-op for externally supplied http.Clients.
func (c *Client) Close() {
	if c.ownsClient {
		c.httpClient.CloseIdleConnections()
	}
}

// Status retrieves the current sauna state. Read-only.
//
// Note that the response carries a target temperature only while the sauna
// is actively heating; use ReconciledStatus when the field is needed in the
// idle state as well.
func (c *Client) Status(ctx context.Context) (*StatusResponse, error) {
	resp, err := c.do(ctx, http.MethodGet, "status", nil)
	if err != nil {
		return nil, err
	}
	c.log.Debug("received status response", "status", resp.Status.String())
	return resp, nil
}

// TurnOn starts heating towards the given target temperature.
//
// The temperature must satisfy MinTemperature <= t < MaxTemperature;
// violations fail with a ValidationError before any network call. Unless
// safetyOverride is set, the sauna status is checked first and the command
// is refused with a SafetyError while the door is open. The check and the
// start command are two separate round trips; a door opened between them is
// not detected.
func (c *Client) TurnOn(ctx context.Context, temperature int, safetyOverride bool) (*StatusResponse, error) {
	if temperature < MinTemperature || temperature >= MaxTemperature {
		return nil, &ValidationError{
			Message: fmt.Sprintf("temperature %d must be between %d and %d", temperature, MinTemperature, MaxTemperature),
		}
	}

	if !safetyOverride {
		if err := c.checkDoor(ctx); err != nil {
			return nil, err
		}
	}

	body := struct {
		TargetTemperature int `json:"targetTemperature"`
	}{TargetTemperature: temperature}

	resp, err := c.do(ctx, http.MethodPost, "start", body)
	if err != nil {
		return nil, err
	}
	c.log.Debug("received turn on response", "status", resp.Status.String(), "target_temperature", temperature)
	return resp, nil
}

// TurnOff stops heating. Issuing stop to an already stopped sauna is safe
// and simply re-reports state. This is the only endpoint that reliably
// reports the target temperature while the sauna is not heating.
func (c *Client) TurnOff(ctx context.Context) (*StatusResponse, error) {
	resp, err := c.do(ctx, http.MethodPost, "stop", nil)
	if err != nil {
		return nil, err
	}
	c.log.Debug("received turn off response", "status", resp.Status.String())
	return resp, nil
}

// SetTemperature sets the target temperature. The Huum API has no adjust
// operation distinct from start, so this forwards to TurnOn; it exists so
// callers can state their intent.
func (c *Client) SetTemperature(ctx context.Context, temperature int, safetyOverride bool) (*StatusResponse, error) {
	return c.TurnOn(ctx, temperature, safetyOverride)
}

// ReconciledStatus returns a status that carries the target temperature
// whenever the sauna has one configured.
//
// The status endpoint omits targetTemperature while the sauna is idle, but
// the stop endpoint always reports it. So when the status comes back as
// OnlineNotHeating the response is discarded and a stop command is issued
// instead, returning its response. Stop is only sent to a sauna confirmed
// not to be heating, so an active heat cycle is never interrupted. For any
// other status the original response is returned unchanged.
func (c *Client) ReconciledStatus(ctx context.Context) (*StatusResponse, error) {
	resp, err := c.Status(ctx)
	if err != nil {
		return nil, err
	}
	if resp.Status == OnlineNotHeating {
		return c.TurnOff(ctx)
	}
	return resp, nil
}

// checkDoor fails with a SafetyError when the sauna door is open.
func (c *Client) checkDoor(ctx context.Context) error {
	resp, err := c.Status(ctx)
	if err != nil {
		return err
	}
	if !resp.DoorClosed {
		return &SafetyError{Reason: "cannot start sauna when the door is open"}
	}
	return nil
}

// do issues one authenticated request and decodes the status body.
func (c *Client) do(ctx context.Context, method, endpoint string, body any) (*StatusResponse, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("huum: failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("huum: failed to create request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &AuthError{StatusCode: resp.StatusCode}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &TransportError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("remote returned %s: %s", resp.Status, strings.TrimSpace(string(snippet))),
		}
	}

	return decodeStatus(resp.Body)
}

// decodeStatus parses a status JSON object into a StatusResponse.
// status and door are required; temperature, targetTemperature and the
// diagnostic codes are known-optional.
func decodeStatus(r io.Reader) (*StatusResponse, error) {
	var raw struct {
		Status            *int     `json:"status"`
		Temperature       *float64 `json:"temperature"`
		TargetTemperature *int     `json:"targetTemperature"`
		Door              *bool    `json:"door"`
		Config            *int     `json:"config"`
		SteamerError      *int     `json:"steamerError"`
	}

	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, &ProtocolError{Message: "failed to decode body", Err: err}
	}
	if raw.Status == nil {
		return nil, &ProtocolError{Message: "missing required field 'status'"}
	}
	if raw.Door == nil {
		return nil, &ProtocolError{Message: "missing required field 'door'"}
	}

	status := SaunaStatus(*raw.Status)
	if !status.Valid() {
		return nil, &ProtocolError{Message: fmt.Sprintf("unknown status code %d", *raw.Status)}
	}

	return &StatusResponse{
		Status:            status,
		Temperature:       raw.Temperature,
		TargetTemperature: raw.TargetTemperature,
		DoorClosed:        *raw.Door,
		ConfigCode:        raw.Config,
		SteamerCode:       raw.SteamerError,
	}, nil
}
