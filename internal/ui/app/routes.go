package app

import "endure/internal/modules/session/dto"

// Route identifies one navigable screen.
type Route string

const (
	RouteLogin        Route = "login"
	RouteSignup       Route = "signup"
	RouteDashboard    Route = "dashboard"
	RouteProfile      Route = "profile"
	RouteLogWorkout   Route = "log-workout"
	RouteLogSleep     Route = "log-sleep"
	RouteLogNutrition Route = "log-nutrition"
)

// Public reports whether the route is reachable without a session.
func (r Route) Public() bool {
	return r == RouteLogin || r == RouteSignup
}

// Decision is the outcome of the route guard for one (status, route) pair.
type Decision int

const (
	// ShowLoading holds the current screen behind a loading indicator.
	ShowLoading Decision = iota
	// ShowRoute renders the requested route.
	ShowRoute
	// RedirectLogin sends an unauthenticated visitor to the login screen.
	RedirectLogin
	// RedirectDashboard keeps an authenticated user off the auth screens.
	RedirectDashboard
)

// Decide is the entire navigation policy. While the session is unresolved
// it always answers ShowLoading, for public and protected routes alike: a
// redirect issued before the token check finishes would bounce a returning
// user through the login screen on every start.
func Decide(status dto.Status, route Route) Decision {
	switch status {
	case dto.StatusUnresolved:
		return ShowLoading
	case dto.StatusAuthenticating:
		if route.Public() {
			return ShowRoute
		}
		return ShowLoading
	case dto.StatusAuthenticated:
		if route.Public() {
			return RedirectDashboard
		}
		return ShowRoute
	default: // unauthenticated
		if route.Public() {
			return ShowRoute
		}
		return RedirectLogin
	}
}
