package application

import "expvar"

// Counters exposed on /api/debug/vars.
var (
	metricRegistrations    = expvar.NewInt("registrations")
	metricLoginFailures    = expvar.NewInt("login_failures")
	metricFavoritesAdded   = expvar.NewInt("favorites_added")
	metricFavoritesRemoved = expvar.NewInt("favorites_removed")
)
