package session

// Requirement is a command's declared access requirement.
type Requirement int

const (
	RequireNone Requirement = iota
	RequireAuthenticated
	RequireGuest
)

// Verdict is the gate's decision for one navigation attempt.
type Verdict int

const (
	Allowed Verdict = iota
	RedirectLogin
	RedirectHome
)

func (v Verdict) String() string {
	switch v {
	case Allowed:
		return "allowed"
	case RedirectLogin:
		return "redirect_login"
	case RedirectHome:
		return "redirect_home"
	default:
		return ""
	}
}

// Decision is the outcome of [Decide]. ReturnTo carries the originally
// requested target when the verdict is RedirectLogin, so the caller can resume
// after authenticating.
type Decision struct {
	Verdict  Verdict
	ReturnTo string
}

// Decide is the access gate consulted before each command. It is pure and
// synchronous: no I/O, it trusts the session's in-memory flag.
//
//	requirement          authenticated   verdict
//	RequireNone          any             Allowed
//	RequireAuthenticated false           RedirectLogin (ReturnTo = target)
//	RequireAuthenticated true            Allowed
//	RequireGuest         true            RedirectHome
//	RequireGuest         false           Allowed
func Decide(requirement Requirement, authenticated bool, target string) Decision {
	switch requirement {
	case RequireAuthenticated:
		if !authenticated {
			return Decision{Verdict: RedirectLogin, ReturnTo: target}
		}
	case RequireGuest:
		if authenticated {
			return Decision{Verdict: RedirectHome}
		}
	}
	return Decision{Verdict: Allowed}
}
