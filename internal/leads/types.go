package leads

import "time"

// ContactInfo holds contact fields detected in conversation text. An
// empty string means the field is absent. Fields are filled incrementally
// across turns and never cleared once set.
type ContactInfo struct {
	Name  string `json:"name,omitempty"`
	Phone string `json:"phone,omitempty"`
	Email string `json:"email,omitempty"`
}

// Empty reports whether no field is set.
func (c ContactInfo) Empty() bool {
	return c.Name == "" && c.Phone == "" && c.Email == ""
}

// Reachable reports whether both phone and email are known, the
// threshold for persisting a lead.
func (c ContactInfo) Reachable() bool {
	return c.Phone != "" && c.Email != ""
}

// Lead is a captured prospective-customer contact derived from free-text
// conversation. Immutable once written.
type Lead struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}
