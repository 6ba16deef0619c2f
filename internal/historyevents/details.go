package historyevents

// DetailsType tags the rendering strategy a template uses for its details
// payload. The consuming timeline UI switches on this tag: PlainText and
// Status render as a single line, Labeled and LabeledShipment as a label/value
// list, Payment as a status chip (the amount breakdown is computed elsewhere).
type DetailsType string

const (
	DetailsPlainText       DetailsType = "PLAIN_TEXT"
	DetailsLabeled         DetailsType = "LABELED"
	DetailsLabeledShipment DetailsType = "LABELED_SHIPMENT"
	DetailsPayment         DetailsType = "PAYMENT"
	DetailsStatus          DetailsType = "STATUS"
)

// RenderedDetails is the typed details payload of a display event. Exactly one
// field is populated, selected by the owning event's DetailsType: Text for
// PlainText, Payment and Status, Labels for Labeled and LabeledShipment.
type RenderedDetails struct {
	Text   string            `json:"text,omitempty"`
	Labels map[string]string `json:"labels,omitempty"`
}

// RenderedDisplayEvent is the output of rendering one audit record. It is
// produced fresh per call and shares no state with other events.
type RenderedDisplayEvent struct {
	Title       string          `json:"title"`
	DetailsType DetailsType     `json:"detailsType"`
	Details     RenderedDetails `json:"details"`
}

func plainText(s string) RenderedDetails {
	return RenderedDetails{Text: s}
}

func labeled(m map[string]string) RenderedDetails {
	return RenderedDetails{Labels: m}
}
