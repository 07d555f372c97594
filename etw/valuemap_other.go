//go:build !windows

package etw

import "github.com/google/uuid"

// getEventMapInformation has no implementation off Windows: TDH is a
// Windows-only OS service. Callers still get a typed OsCallFailure
// rather than a build failure, so the rest of this package — schema
// decoding that doesn't depend on value maps — stays usable and
// testable on any platform.
func getEventMapInformation(providerGUID uuid.UUID, mapName string) ([]byte, error) {
	return nil, osCallFailuref("TdhGetEventMapInformation", 0)
}
