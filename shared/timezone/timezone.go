// Package timezone holds the location every user facing timestamp is
// rendered in. It defaults to UTC until Configure is called.
package timezone

import (
	"fmt"
	"rkhub/config"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

var location atomic.Pointer[time.Location]

// Configure loads APP_TIMEZONE. An empty name keeps UTC; an unknown one is
// logged and also keeps UTC so the service still boots.
func Configure(cfg *config.Config) {
	if err := Set(cfg.App.Timezone); err != nil {
		log.Error().Err(err).Str("timezone", cfg.App.Timezone).Msg("Falling back to UTC")

		return
	}

	log.Debug().Str("timezone", Location().String()).Msg("Application timezone set")
}

// Set switches the application location to the IANA zone name.
func Set(name string) error {
	if name == "" {
		location.Store(time.UTC)

		return nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return fmt.Errorf("loading timezone %q: %w", name, err)
	}

	location.Store(loc)

	return nil
}

func Location() *time.Location {
	if loc := location.Load(); loc != nil {
		return loc
	}

	return time.UTC
}

// Now returns the current time in the application location.
func Now() time.Time {
	return time.Now().In(Location())
}

func Format(t time.Time, layout string) string {
	return t.In(Location()).Format(layout)
}
