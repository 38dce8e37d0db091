package entity

// Principal is the authenticated identity attached to a request after the
// session cookie has been verified. It is a small immutable value built from
// a stored Passenger, not a subtype of it, and lives only for the duration
// of a single request.
type Principal struct {
	Subject     string   // The passenger's email, as carried in the token subject.
	Authorities []string // Granted capability names. Currently always empty; no role model exists.
}

// NewPrincipal builds a request-scoped principal from a stored passenger
// record.
func NewPrincipal(p *Passenger) *Principal {
	return &Principal{
		Subject:     p.Email,
		Authorities: []string{},
	}
}
