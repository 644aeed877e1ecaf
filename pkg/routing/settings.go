package routing

import (
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/transitcat/pkg/errors"
)

// DefaultSpanCap is the span cap used when none is configured.
const DefaultSpanCap = 100

// Settings configures graph construction.
type Settings struct {
	// WaitTime is the time in minutes a rider waits before boarding any bus.
	WaitTime float64 `json:"bus_wait_time" validate:"gte=0"`

	// Velocity is the bus speed in km/h.
	Velocity float64 `json:"bus_velocity" validate:"gt=0"`

	// SpanCap is the largest number of stops one bus edge may span.
	SpanCap int `json:"span_cap" validate:"gte=1"`
}

// DefaultSettings returns settings with a six-minute wait, 40 km/h buses,
// and [DefaultSpanCap].
func DefaultSettings() Settings {
	return Settings{WaitTime: 6, Velocity: 40, SpanCap: DefaultSpanCap}
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func settingsValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate reports an INVALID_CONFIG error if any field is out of range.
func (s Settings) Validate() error {
	if err := settingsValidator().Struct(s); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid routing settings")
	}
	return nil
}

// MetersPerMinute converts a speed in km/h to meters per minute.
func MetersPerMinute(kmh float64) float64 {
	return kmh * 1000 / 60
}
