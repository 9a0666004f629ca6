package huum

import "fmt"

// SaunaStatus is the device state code reported by the Huum API.
// The set is closed: the controller firmware only ever reports these codes.
type SaunaStatus int

const (
	Offline          SaunaStatus = 230
	OnlineHeating    SaunaStatus = 231
	OnlineNotHeating SaunaStatus = 232
	Locked           SaunaStatus = 233
	EmergencyStop    SaunaStatus = 400
)

// statusTexts maps every status code to its display text.
var statusTexts = map[SaunaStatus]string{
	Offline:          "offline",
	OnlineHeating:    "online and heating",
	OnlineNotHeating: "online but not heating",
	Locked:           "being used by another user and is locked",
	EmergencyStop:    "emergency stop",
}

// configTexts describes the optional "config" diagnostic code.
// Display-only, no behavioral effect.
var configTexts = map[int]string{
	1: "Configured to use light system",
	2: "Configured to use steamer system",
	3: "Configured to use both light and steamer systems",
}

// steamerTexts describes the optional "steamerError" diagnostic code.
var steamerTexts = map[int]string{
	1: "No water in steamer, steamer system not allowed to start",
}

// AllStatuses returns every defined status code.
func AllStatuses() []SaunaStatus {
	return []SaunaStatus{Offline, OnlineHeating, OnlineNotHeating, Locked, EmergencyStop}
}

// Valid reports whether s is one of the defined status codes.
func (s SaunaStatus) Valid() bool {
	_, ok := statusTexts[s]
	return ok
}

// String returns the display text for the status code.
func (s SaunaStatus) String() string {
	if text, ok := statusTexts[s]; ok {
		return text
	}
	return fmt.Sprintf("unknown status code %d", int(s))
}

// ConfigText returns the display text for a config diagnostic code.
func ConfigText(code int) (string, bool) {
	text, ok := configTexts[code]
	return text, ok
}

// SteamerText returns the display text for a steamer diagnostic code.
func SteamerText(code int) (string, bool) {
	text, ok := steamerTexts[code]
	return text, ok
}
