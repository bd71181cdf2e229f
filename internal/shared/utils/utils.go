package utils

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// UnmarshalTask decodes an asynq task payload into v.
func UnmarshalTask(t *asynq.Task, v interface{}) error {
	if err := json.Unmarshal(t.Payload(), v); err != nil {
		return fmt.Errorf("unmarshal task %s: %w", t.Type(), err)
	}
	return nil
}

// MaskCardNumber keeps only the last 4 digits for log output.
// Stored values are never masked.
func MaskCardNumber(number string) string {
	if number == "" {
		return ""
	}
	if len(number) <= 4 {
		return "****"
	}
	return "****" + number[len(number)-4:]
}

// MaskCVV hides the CVV entirely in log output.
func MaskCVV(cvv string) string {
	if cvv == "" {
		return ""
	}
	return "***"
}
