package historyevents

// Registry holds the ordered template list plus the undefined fallback.
// Declaration order is precedence: when two templates could both match a
// record, the earlier one wins, so more specific event-name templates must
// precede wildcard entries for the same table. The registry is built once and
// never mutated, which is what makes concurrent rendering safe.
type Registry struct {
	templates []EventTemplate
	fallback  EventTemplate
}

// NewRegistry builds the full template set. Exposed so tests can construct
// registries with crafted template lists; production code uses Default.
func NewRegistry() *Registry {
	return &Registry{
		templates: buildTemplates(),
		fallback:  undefinedTemplate(),
	}
}

// Default is the process-wide registry. Built at package load, read-only
// afterwards.
var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry { return defaultRegistry }

// RenderHistoryEvent is the public entry point of the package: it classifies
// one audit record and renders its display event. An unmatched record renders
// through the undefined fallback, so callers never see a nil event or a panic.
func RenderHistoryEvent(r AuditRecord) RenderedDisplayEvent {
	return defaultRegistry.Render(r)
}

// Match returns the first template in declaration order that matches the
// record, or the undefined fallback when none does.
func (reg *Registry) Match(r AuditRecord) EventTemplate {
	for _, t := range reg.templates {
		if t.Matches(r) {
			return t
		}
	}
	return reg.fallback
}

// Render classifies and renders one record.
func (reg *Registry) Render(r AuditRecord) RenderedDisplayEvent {
	return reg.Match(r).Render(r)
}

// IsFallback reports whether the template is the registry's undefined
// fallback. Used by callers that count unclassified records.
func (reg *Registry) IsFallback(t EventTemplate) bool {
	return t.Action == nil && t.EventName == nil && t.TableName == nil
}

// undefinedTemplate guarantees matcher totality. Its title comes purely from
// the table name and its body is the "-" placeholder, so it renders something
// sensible for any record however malformed.
func undefinedTemplate() EventTemplate {
	return EventTemplate{
		DetailsType: DetailsPlainText,
		Title: func(r AuditRecord) string {
			return fallbackTableTitle(r.TableName)
		},
		Details: staticText(placeholderDetail),
	}
}

// buildTemplates declares every known event template. Order is load-bearing:
// the registry scans linearly and the first match is authoritative.
func buildTemplates() []EventTemplate {
	return []EventTemplate{
		// --- move-level events -----------------------------------------
		{
			Action:      onAction(ActionUpdate),
			EventName:   onEvent("acknowledgeExcessWeightRisk"),
			TableName:   onTable("moves"),
			DetailsType: DetailsPlainText,
			Title:       staticTitle("Updated move"),
			Details:     staticText("Dismissed excess weight alert"),
		},
		{
			Action:      onAction(ActionUpdate),
			EventName:   onEvent("setFinancialReviewFlag"),
			TableName:   onTable("moves"),
			DetailsType: DetailsPlainText,
			Title:       staticTitle("Flagged move"),
			Details:     financialReviewDetails,
		},
		{
			// A move status update that also set available_to_prime_at is
			// the approval that creates the MTO; otherwise it is a routine
			// status change with no detail to show.
			Action:      onAction(ActionUpdate),
			EventName:   onEvent("updateMoveTaskOrderStatus"),
			TableName:   onTable("moves"),
			DetailsType: DetailsPlainText,
			Title: func(r AuditRecord) string {
				if moveApproved(r) {
					return "Approved move"
				}
				return "Move status updated"
			},
			Details: func(r AuditRecord) RenderedDetails {
				if moveApproved(r) {
					return plainText("Created Move Task Order (MTO)")
				}
				return plainText(placeholderDetail)
			},
		},
		{
			Action:      onAction(ActionUpdate),
			EventName:   onEvent("updateMoveTaskOrderStatusServiceCounselingCompleted"),
			TableName:   onTable("moves"),
			DetailsType: DetailsPlainText,
			Title:       staticTitle("Updated move"),
			Details:     staticText("Counseling completed"),
		},
		{
			Action:      onAction(ActionUpdate),
			EventName:   onEvent("updateMTOReviewedBillableWeightsAt"),
			TableName:   onTable("moves"),
			DetailsType: DetailsPlainText,
			Title:       staticTitle("Updated move"),
			Details:     staticText("Reviewed billable weights"),
		},
		{
			Action:      onAction(ActionUpdate),
			EventName:   onEvent("submitMoveForApproval"),
			TableName:   onTable("moves"),
			DetailsType: DetailsPlainText,
			Title:       staticTitle("Submitted move"),
			Details:     staticText("Received customer signature"),
		},
		{
			Action:      onAction(ActionUpdate),
			EventName:   onEvent("updateMoveTaskOrder"),
			TableName:   onTable("moves"),
			DetailsType: DetailsLabeled,
			Title:       staticTitle("Updated move"),
			Details:     changedValueDetails,
		},

		// --- shipment events -------------------------------------------
		{
			Action:      onAction(ActionUpdate),
			EventName:   onEvent("approveShipment"),
			TableName:   onTable("mto_shipments"),
			DetailsType: DetailsPlainText,
			Title:       staticTitle("Approved shipment"),
			Details:     shipmentDetails,
		},
		{
			Action:      onAction(ActionUpdate),
			EventName:   onEvent("approveShipmentDiversion"),
			TableName:   onTable("mto_shipments"),
			DetailsType: DetailsPlainText,
			Title:       staticTitle("Approved diversion"),
			Details:     shipmentDetails,
		},
		{
			Action:      onAction(ActionUpdate),
			EventName:   onEvent("requestShipmentDiversion"),
			TableName:   onTable("mto_shipments"),
			DetailsType: DetailsPlainText,
			Title:       staticTitle("Requested diversion"),
			Details:     shipmentDetails,
		},
		{
			Action:      onAction(ActionUpdate),
			EventName:   onEvent("requestShipmentCancellation"),
			TableName:   onTable("mto_shipments"),
			DetailsType: DetailsPlainText,
			Title:       staticTitle("Requested cancellation"),
			Details:     shipmentDetails,
		},
		{
			// Reweigh rows carry no shipment_type of their own; the type
			// rides in on the record context.
			Action:      onAction(ActionInsert),
			EventName:   onEvent("requestShipmentReweigh"),
			TableName:   onTable("reweighs"),
			DetailsType: DetailsPlainText,
			Title:       staticTitle("Updated shipment"),
			Details: func(r AuditRecord) RenderedDetails {
				return plainText(shipmentLine(r, "reweigh requested"))
			},
		},
		{
			Action:      onAction(ActionInsert),
			EventName:   onEvent("createMTOShipment"),
			TableName:   onTable("mto_shipments"),
			DetailsType: DetailsLabeledShipment,
			Title:       staticTitle("Created shipment"),
			Details:     labeledShipmentDetails,
		},
		{
			Action:      onAction(ActionUpdate),
			EventName:   onEvent("updateMTOShipment"),
			TableName:   onTable("mto_shipments"),
			DetailsType: DetailsLabeledShipment,
			Title:       staticTitle("Updated shipment"),
			Details:     labeledShipmentDetails,
		},

		// --- address rows touched through shipment operations ----------
		{
			Action:      onAction(ActionInsert),
			EventName:   onEvent("createMTOShipment"),
			TableName:   onTable("addresses"),
			DetailsType: DetailsLabeled,
			Title:       staticTitle("Updated shipment"),
			Details:     insertAddressDetails,
		},
		{
			Action:      onAction(ActionUpdate),
			EventName:   onEvent("updateMTOShipment"),
			TableName:   onTable("addresses"),
			DetailsType: DetailsLabeled,
			Title:       staticTitle("Updated shipment"),
			Details:     updateAddressDetails,
		},

		// --- agent rows touched through shipment operations ------------
		{
			Action:      onAction(ActionInsert),
			EventName:   onEvent("createMTOShipment"),
			TableName:   onTable("mto_agents"),
			DetailsType: DetailsLabeled,
			Title:       staticTitle("Updated shipment"),
			Details:     agentDetails,
		},
		{
			Action:      onAction(ActionUpdate),
			EventName:   onEvent("updateMTOShipment"),
			TableName:   onTable("mto_agents"),
			DetailsType: DetailsLabeled,
			Title:       staticTitle("Updated shipment"),
			Details:     agentDetails,
		},

		// --- orders ----------------------------------------------------
		{
			Action:      onAction(ActionInsert),
			EventName:   onEvent("createOrders"),
			TableName:   onTable("orders"),
			DetailsType: DetailsLabeled,
			Title:       staticTitle("Submitted orders"),
			Details:     changedValueDetails,
		},
		{
			Action:      onAction(ActionUpdate),
			EventName:   onEvent("updateOrder"),
			TableName:   onTable("orders"),
			DetailsType: DetailsLabeled,
			Title:       staticTitle("Updated order"),
			Details:     changedValueDetails,
		},
		{
			Action:      onAction(ActionUpdate),
			EventName:   onEvent("updateOrders"),
			TableName:   onTable("orders"),
			DetailsType: DetailsLabeled,
			Title:       staticTitle("Updated order"),
			Details:     changedValueDetails,
		},
		{
			Action:      onAction(ActionUpdate),
			EventName:   onEvent("uploadAmendedOrders"),
			TableName:   onTable("orders"),
			DetailsType: DetailsPlainText,
			Title:       staticTitle("Updated orders"),
			Details:     staticText("Uploaded amended orders"),
		},

		// --- entitlements ----------------------------------------------
		{
			Action:      onAction(ActionUpdate),
			EventName:   onEvent("updateAllowance"),
			TableName:   onTable("entitlements"),
			DetailsType: DetailsLabeled,
			Title:       staticTitle("Updated allowances"),
			Details:     changedValueDetails,
		},
		{
			Action:      onAction(ActionUpdate),
			EventName:   onEvent("updateBillableWeight"),
			TableName:   onTable("entitlements"),
			DetailsType: DetailsLabeled,
			Title:       staticTitle("Updated move"),
			Details:     changedValueDetails,
		},
		{
			// Counselors adjust allowances through their own operation but
			// the rendered event is identical to the TOO's.
			Action:      onAction(ActionUpdate),
			EventName:   onEvent("counselingUpdateAllowance"),
			TableName:   onTable("entitlements"),
			DetailsType: DetailsLabeled,
			Title:       staticTitle("Updated allowances"),
			Details:     changedValueDetails,
		},

		// --- service items ---------------------------------------------
		{
			Action:      onAction(ActionInsert),
			EventName:   onEvent("createMTOServiceItem"),
			TableName:   onTable("mto_service_items"),
			DetailsType: DetailsPlainText,
			Title:       staticTitle("Requested service item"),
			Details:     serviceItemDetails,
		},
		{
			Action:      onAction(ActionUpdate),
			EventName:   onEvent("updateMTOServiceItemStatus"),
			TableName:   onTable("mto_service_items"),
			DetailsType: DetailsPlainText,
			Title: func(r AuditRecord) string {
				switch r.ChangedValues["status"] {
				case "APPROVED":
					return "Approved service item"
				case "REJECTED":
					return "Rejected service item"
				}
				return "Updated service item"
			},
			Details: serviceItemDetails,
		},

		// --- payment requests ------------------------------------------
		{
			Action:      onAction(ActionUpdate),
			EventName:   onEvent("updatePaymentRequestStatus"),
			TableName:   onTable("payment_requests"),
			DetailsType: DetailsStatus,
			Title:       staticTitle("Updated payment request"),
			Details:     paymentStatusDetails,
		},
		{
			// Payment requests are created by the prime under several event
			// names; the insert itself identifies the event, so the
			// event-name axis stays wildcard. Must sort after the
			// event-specific payment_requests templates.
			Action:      onAction(ActionInsert),
			TableName:   onTable("payment_requests"),
			DetailsType: DetailsPayment,
			Title:       staticTitle("Submitted payment request"),
			Details:     paymentStatusDetails,
		},
		{
			Action:      onAction(ActionUpdate),
			TableName:   onTable("payment_requests"),
			DetailsType: DetailsStatus,
			Title:       staticTitle("Updated payment request"),
			Details:     paymentStatusDetails,
		},
	}
}
