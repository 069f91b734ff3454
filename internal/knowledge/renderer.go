package knowledge

import (
	"fmt"
	"strings"
)

// Literal fallbacks used when a field or collection is absent. Rendering
// must be total: every lookup degrades to one of these, never an error.
const (
	FallbackNotAvailable = "Not available"
	FallbackNoneListed   = "None listed"
	FallbackNoProducts   = "No products listed."
	FallbackNoDesc       = "No description"
)

// Default contact identity used when company_info carries no
// contact_person record.
const (
	DefaultContactName  = "Srinivas Perur Varda"
	DefaultContactEmail = "info@saanpro.com"
	DefaultContactPhone = "+91 9342659932"
)

// Blocks holds the rendered prompt sections for one snapshot.
type Blocks struct {
	Company  string
	Contact  string
	Services string
	Products string
	Awards   string
	Brands   string
}

// Render maps a snapshot into deterministic prompt text. Identical
// snapshots render identical blocks.
func Render(s Snapshot) Blocks {
	return Blocks{
		Company:  renderCompany(companyRecord(s)),
		Contact:  renderContact(companyRecord(s)),
		Services: renderServices(s.Collection(CollectionServices)),
		Products: renderProducts(s.Collection(CollectionProducts)),
		Awards:   renderItems(s.Collection(CollectionAwards)),
		Brands:   renderItems(s.Collection(CollectionBrands)),
	}
}

// companyRecord is the first record of company_info, or an empty record.
func companyRecord(s Snapshot) Record {
	if records := s.Collection(CollectionCompanyInfo); len(records) > 0 {
		return records[0]
	}
	return Record{}
}

func renderCompany(company Record) string {
	lines := []string{
		"About: " + company.StrOr("about", FallbackNotAvailable),
		"Vision: " + company.StrOr("vision", FallbackNotAvailable),
		"Founded: " + company.StrOr("founded", FallbackNotAvailable),
		"Headquarters: " + company.StrOr("headquarters", FallbackNotAvailable),
		"Address: " + company.StrOr("address", FallbackNotAvailable),
		"Phone: " + company.StrOr("phone", FallbackNotAvailable),
	}
	return strings.Join(lines, "\n")
}

func renderContact(company Record) string {
	person := company.Nested("contact_person")
	lines := []string{
		"Contact Person: " + person.StrOr("name", DefaultContactName),
		"Email: " + person.StrOr("email", DefaultContactEmail),
		"Phone: " + person.StrOr("phone", DefaultContactPhone),
	}
	return strings.Join(lines, "\n")
}

func renderServices(services []Record) string {
	if len(services) == 0 {
		return FallbackNoneListed
	}
	lines := make([]string, 0, len(services))
	for _, svc := range services {
		lines = append(lines, fmt.Sprintf("- %s (%s)",
			svc.Str("name"), svc.StrOr("description", FallbackNoDesc)))
	}
	return strings.Join(lines, "\n")
}

func renderProducts(products []Record) string {
	if len(products) == 0 {
		return FallbackNoProducts
	}
	lines := make([]string, 0, len(products))
	for _, p := range products {
		lines = append(lines, fmt.Sprintf("- %s | Brand: %s | Category: %s | ₹%s | Notes: %s",
			p.StrOr("name", FallbackNotAvailable),
			p.StrOr("brand", FallbackNotAvailable),
			p.StrOr("category", FallbackNotAvailable),
			p.StrOr("price", FallbackNotAvailable),
			p.StrOr("notes", "None")))
	}
	return strings.Join(lines, "\n")
}

// renderItems formats awards and brands as bullet lists keyed on each
// record's name (or title).
func renderItems(records []Record) string {
	var lines []string
	for _, rec := range records {
		item := rec.Str("name")
		if item == "" {
			item = rec.Str("title")
		}
		if item == "" {
			continue
		}
		lines = append(lines, "- "+item)
	}
	if len(lines) == 0 {
		return FallbackNoneListed
	}
	return strings.Join(lines, "\n")
}
