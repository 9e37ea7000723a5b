package domain

// Role is the sole authorization input for route access decisions.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleManager   Role = "manager"
	RolePerformer Role = "performer"
	// RoleGuest is synthesised by the gateway for anonymous browsing.
	// The upstream never issues a token for it.
	RoleGuest Role = "guest"
)

// rank orders the real roles. Guest sits outside the hierarchy: it is
// compatible only with an explicit guest requirement.
var rank = map[Role]int{
	RolePerformer: 1,
	RoleManager:   2,
	RoleAdmin:     3,
}

// Satisfies reports whether a user holding the actual role may access a
// route requiring the required role. Admin satisfies every requirement
// unconditionally; manager satisfies manager and performer; performer only
// performer. Unknown roles match only themselves.
func Satisfies(actual, required Role) bool {
	if actual == RoleAdmin {
		return true
	}
	if actual == required {
		return true
	}
	ar, aok := rank[actual]
	rr, rok := rank[required]
	return aok && rok && ar >= rr
}

// SatisfiesAny applies Satisfies across an any-of requirement set.
func SatisfiesAny(actual Role, required []Role) bool {
	for _, r := range required {
		if Satisfies(actual, r) {
			return true
		}
	}
	return false
}
