package types

// MatrixConfig represents the configuration for the LED matrix
type MatrixConfig struct {
	Device string `json:"device"`
}

// JoystickConfig represents the configuration for the joystick input device
type JoystickConfig struct {
	Device string `json:"device"`
	Mode   string `json:"mode"`
	Grab   bool   `json:"grab"`
}

// KeypadConfig represents the configuration for buttons wired to GPIO lines,
// used instead of the joystick device when enabled
type KeypadConfig struct {
	Enabled   bool   `json:"enabled"`
	Chip      string `json:"chip"`
	Up        int    `json:"up"`
	Down      int    `json:"down"`
	Left      int    `json:"left"`
	Right     int    `json:"right"`
	Enter     int    `json:"enter"`
	ActiveLow bool   `json:"active_low"`
}
