package historyevents

// ShipmentTypeLabels maps raw shipment type codes from the backend to the
// labels the office UI displays. Every surface that shows a shipment type must
// use this exact mapping, so it is exported rather than duplicated.
var ShipmentTypeLabels = map[string]string{
	"HHG":                    "HHG",
	"PPM":                    "PPM",
	"HHG_INTO_NTS":           "NTS",
	"HHG_OUTOF_NTS_DOMESTIC": "NTS-release",
	"BOAT_HAUL_AWAY":         "Boat",
	"BOAT_TOW_AWAY":          "Boat",
	"MOBILE_HOME":            "Mobile home",
	"UNACCOMPANIED_BAGGAGE":  "UB",
}

// ShipmentTypeLabel translates a raw shipment type code, passing unknown codes
// through unchanged so a new backend code degrades to its raw form instead of
// breaking the render.
func ShipmentTypeLabel(code string) string {
	if label, ok := ShipmentTypeLabels[code]; ok {
		return label
	}
	return code
}

// PaymentStatusLabels maps payment request status codes to their review-queue
// labels. Shared by the Payment and Status renderers.
var PaymentStatusLabels = map[string]string{
	"PENDING":         "Needs Review",
	"REVIEWED":        "Reviewed",
	"SENT_TO_GEX":     "Reviewed",
	"RECEIVED_BY_GEX": "Reviewed",
	"PAID":            "Paid",
}

// PaymentStatusLabel translates a payment request status, passing unknown
// codes through unchanged.
func PaymentStatusLabel(status string) string {
	if label, ok := PaymentStatusLabels[status]; ok {
		return label
	}
	return status
}

// placeholderDetail is the literal the timeline shows for events that carry no
// further detail.
const placeholderDetail = "-"

// fallbackTableTitles gives the undefined template its title by table name.
// Tables without an entry, including moves, fall back to "Updated move".
var fallbackTableTitles = map[string]string{
	"orders":            "Updated order",
	"mto_service_items": "Updated service item",
	"entitlements":      "Updated allowances",
	"payment_requests":  "Updated payment request",
	"mto_shipments":     "Updated shipment",
	"mto_agents":        "Updated shipment",
	"addresses":         "Updated shipment",
}

const fallbackDefaultTitle = "Updated move"

func fallbackTableTitle(tableName string) string {
	if title, ok := fallbackTableTitles[tableName]; ok {
		return title
	}
	return fallbackDefaultTitle
}
