package historyevents

import "strings"

// addressFields lists the comma-separated segments of a postal address in
// display order. State and postal code share the final segment, space-joined.
// Absent or blank components are skipped so the joined string never carries an
// empty segment or trailing separator.
var addressFields = [...]string{
	"street_address_1",
	"street_address_2",
	"city",
}

// formatAddress renders a full postal address from column values, e.g.
// "12 Any Street, P.O. Box 1234, Beverly Hills, CA 90211". Callers supply a
// complete field map; for updates that means backfilling unchanged columns
// from the record's old values first.
func formatAddress(fields map[string]string) string {
	parts := make([]string, 0, len(addressFields)+1)
	for _, key := range addressFields {
		if v := fields[key]; v != "" {
			parts = append(parts, v)
		}
	}
	region := strings.TrimSpace(fields["state"] + " " + fields["postal_code"])
	if region != "" {
		parts = append(parts, region)
	}
	return strings.Join(parts, ", ")
}

// formatAgent renders a shipment agent as "First Last, phone, email", skipping
// whichever pieces are absent.
func formatAgent(fields map[string]string) string {
	parts := make([]string, 0, 3)
	name := strings.TrimSpace(fields["first_name"] + " " + fields["last_name"])
	if name != "" {
		parts = append(parts, name)
	}
	if phone := fields["phone"]; phone != "" {
		parts = append(parts, phone)
	}
	if email := fields["email"]; email != "" {
		parts = append(parts, email)
	}
	return strings.Join(parts, ", ")
}

// mergedValues returns the record's changed values with every missing column
// backfilled from the old values. The result is a fresh map.
func mergedValues(r AuditRecord) map[string]string {
	out := make(map[string]string, len(r.OldValues)+len(r.ChangedValues))
	for k, v := range r.OldValues {
		out[k] = v
	}
	for k, v := range r.ChangedValues {
		out[k] = v
	}
	return out
}

// copyValues returns a fresh copy of m so renderers never alias the record's
// own maps into their output.
func copyValues(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
