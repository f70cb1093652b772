package store

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultLowConsumableRatio is the fill ratio below which a consumable counts
// as running low.
const DefaultLowConsumableRatio = 0.3

// ErrInvalidSnapshot is matched (errors.Is) by every validation failure of the
// Replace methods.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// ValidationError lists everything wrong with a rejected snapshot.
type ValidationError struct {
	Collection string
	Problems   []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s snapshot: %s", e.Collection, strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidSnapshot }

// Options tunes an App.
type Options struct {
	// LowConsumableRatio defaults to DefaultLowConsumableRatio.
	LowConsumableRatio float64
	// Location is used to decide which calendar day "today" is. Defaults to time.Local.
	Location *time.Location
	// Now defaults to time.Now.
	Now func() time.Time
}

func (o Options) withDefaults() Options {
	if o.LowConsumableRatio <= 0 {
		o.LowConsumableRatio = DefaultLowConsumableRatio
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}
