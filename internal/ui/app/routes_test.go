package app

import (
	"testing"

	"endure/internal/modules/session/dto"
)

func TestDecideUnresolvedNeverRedirects(t *testing.T) {
	t.Parallel()
	routes := []Route{
		RouteLogin, RouteSignup, RouteDashboard, RouteProfile,
		RouteLogWorkout, RouteLogSleep, RouteLogNutrition,
	}
	for _, r := range routes {
		if got := Decide(dto.StatusUnresolved, r); got != ShowLoading {
			t.Errorf("Decide(unresolved, %s) = %v, want ShowLoading", r, got)
		}
	}
}

func TestDecideMatrix(t *testing.T) {
	t.Parallel()
	cases := []struct {
		status dto.Status
		route  Route
		want   Decision
	}{
		{dto.StatusUnauthenticated, RouteLogin, ShowRoute},
		{dto.StatusUnauthenticated, RouteSignup, ShowRoute},
		{dto.StatusUnauthenticated, RouteDashboard, RedirectLogin},
		{dto.StatusUnauthenticated, RouteProfile, RedirectLogin},
		{dto.StatusUnauthenticated, RouteLogWorkout, RedirectLogin},
		{dto.StatusUnauthenticated, RouteLogSleep, RedirectLogin},
		{dto.StatusUnauthenticated, RouteLogNutrition, RedirectLogin},

		{dto.StatusAuthenticating, RouteLogin, ShowRoute},
		{dto.StatusAuthenticating, RouteSignup, ShowRoute},
		{dto.StatusAuthenticating, RouteDashboard, ShowLoading},
		{dto.StatusAuthenticating, RouteProfile, ShowLoading},

		{dto.StatusAuthenticated, RouteLogin, RedirectDashboard},
		{dto.StatusAuthenticated, RouteSignup, RedirectDashboard},
		{dto.StatusAuthenticated, RouteDashboard, ShowRoute},
		{dto.StatusAuthenticated, RouteProfile, ShowRoute},
		{dto.StatusAuthenticated, RouteLogWorkout, ShowRoute},
		{dto.StatusAuthenticated, RouteLogSleep, ShowRoute},
		{dto.StatusAuthenticated, RouteLogNutrition, ShowRoute},
	}
	for _, tc := range cases {
		if got := Decide(tc.status, tc.route); got != tc.want {
			t.Errorf("Decide(%s, %s) = %v, want %v", tc.status, tc.route, got, tc.want)
		}
	}
}

func TestPublicRoutes(t *testing.T) {
	t.Parallel()
	if !RouteLogin.Public() || !RouteSignup.Public() {
		t.Fatal("auth screens must be public")
	}
	for _, r := range []Route{RouteDashboard, RouteProfile, RouteLogWorkout, RouteLogSleep, RouteLogNutrition} {
		if r.Public() {
			t.Errorf("%s must require a session", r)
		}
	}
}
