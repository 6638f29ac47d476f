package session

import "testing"

func TestDecide(t *testing.T) {
	cases := []struct {
		name          string
		requirement   Requirement
		authenticated bool
		verdict       Verdict
		returnTo      string
	}{
		{"NoneUnauthenticated", RequireNone, false, Allowed, ""},
		{"NoneAuthenticated", RequireNone, true, Allowed, ""},
		{"AuthRequiredUnauthenticated", RequireAuthenticated, false, RedirectLogin, "matches list"},
		{"AuthRequiredAuthenticated", RequireAuthenticated, true, Allowed, ""},
		{"GuestOnlyAuthenticated", RequireGuest, true, RedirectHome, ""},
		{"GuestOnlyUnauthenticated", RequireGuest, false, Allowed, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			decision := Decide(tc.requirement, tc.authenticated, "matches list")

			if decision.Verdict != tc.verdict {
				t.Errorf("expected verdict %s, got %s", tc.verdict, decision.Verdict)
			}
			if decision.ReturnTo != tc.returnTo {
				t.Errorf("expected returnTo %q, got %q", tc.returnTo, decision.ReturnTo)
			}
		})
	}

	t.Run("ReturnToCarriesTarget", func(t *testing.T) {
		decision := Decide(RequireAuthenticated, false, "auth whoami")
		if decision.ReturnTo != "auth whoami" {
			t.Errorf("RedirectLogin must remember the requested target, got %q", decision.ReturnTo)
		}
	})
}
