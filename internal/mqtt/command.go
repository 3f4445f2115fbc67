package mqtt

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Command names accepted on TopicControl.
const (
	CommandSilence          = "silence"
	CommandEnable           = "enable"
	CommandDisable          = "disable"
	CommandReset            = "reset"
	CommandSetGasThreshold  = "set_gas_threshold"
	CommandSetTempThreshold = "set_temp_threshold"
)

// Command is one inbound control message. Value is present only for the
// threshold commands and may arrive as a JSON number or a numeric string;
// Float coerces both.
type Command struct {
	Name  string `json:"command"`
	Value any    `json:"value,omitempty"`
}

// ParseCommand decodes a control payload. A missing command field is an
// error; a malformed value is not (threshold commands with bad values are
// dropped later, at application time).
func ParseCommand(payload []byte) (Command, error) {
	var cmd Command
	if err := json.Unmarshal(payload, &cmd); err != nil {
		return Command{}, fmt.Errorf("decode command: %w", err)
	}
	if cmd.Name == "" {
		return Command{}, fmt.Errorf("command field missing")
	}
	return cmd, nil
}

// Float returns the command value as a float64. Accepts JSON numbers and
// numeric strings; anything else reports ok=false.
func (c Command) Float() (float64, bool) {
	switch v := c.Value.(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
