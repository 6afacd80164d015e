// Package geo provides best-effort IP geolocation for submissions.
package geo

// Location describes where a request appears to originate. Any subset of
// fields may be absent; absent fields are omitted from JSON rather than
// serialized as empty strings.
type Location struct {
	IP      string `json:"ip,omitempty"`
	City    string `json:"city,omitempty"`
	Region  string `json:"region,omitempty"`
	Country string `json:"country,omitempty"`
}

// IsEmpty reports whether no field was resolved.
func (l *Location) IsEmpty() bool {
	return l.IP == "" && l.City == "" && l.Region == "" && l.Country == ""
}

// Summary renders the location as a short "City, Region, Country" string for
// prompts and headers. Returns "" when nothing was resolved.
func (l *Location) Summary() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{l.City, l.Region, l.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	s := parts[0]
	for _, p := range parts[1:] {
		s += ", " + p
	}
	return s
}
