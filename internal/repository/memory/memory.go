// Package memory implements every repository contract on mutex-guarded maps.
// It backs STORE_DRIVER=memory and the service tests.
package memory

import (
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
)

var newID = database.NewID

// now is truncated to microseconds to match what the SQL and document drivers round-trip.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
