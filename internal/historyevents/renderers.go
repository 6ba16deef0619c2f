package historyevents

import "strings"

// shipmentTypeOf resolves the raw shipment type for a record, preferring the
// audited row's previous value and falling back to the first context entry.
// Rows on side tables (reweighs, service items) never carry the type
// themselves, which is why the context fallback exists.
func shipmentTypeOf(r AuditRecord) string {
	if v := r.OldValues["shipment_type"]; v != "" {
		return v
	}
	if len(r.Context) > 0 {
		return r.Context[0]["shipment_type"]
	}
	return ""
}

// shipmentLine renders "<label> shipment <rest>" with the shipment-type label
// prefix, e.g. "NTS shipment reweigh requested". A record with no resolvable
// shipment type degrades to the unprefixed line rather than failing.
func shipmentLine(r AuditRecord, rest string) string {
	parts := make([]string, 0, 3)
	if code := shipmentTypeOf(r); code != "" {
		parts = append(parts, ShipmentTypeLabel(code))
	}
	parts = append(parts, "shipment")
	if rest != "" {
		parts = append(parts, rest)
	}
	return strings.Join(parts, " ")
}

// shipmentDetails is the plain-text body shared by the approve / divert /
// cancel shipment templates: just the typed shipment line.
func shipmentDetails(r AuditRecord) RenderedDetails {
	return plainText(shipmentLine(r, ""))
}

// changedValueDetails is the generic Labeled body: every changed column passes
// through as a label/value pair.
func changedValueDetails(r AuditRecord) RenderedDetails {
	return labeled(copyValues(r.ChangedValues))
}

// labeledShipmentDetails is the LabeledShipment body: the changed columns plus
// a shipment_type label translated from the first context entry. A missing
// context entry simply omits the label.
func labeledShipmentDetails(r AuditRecord) RenderedDetails {
	labels := copyValues(r.ChangedValues)
	if len(r.Context) > 0 {
		if code := r.Context[0]["shipment_type"]; code != "" {
			labels["shipment_type"] = ShipmentTypeLabel(code)
		}
	}
	return labeled(labels)
}

// addressLabelKey maps an address's role on the shipment to the label the
// composed address string is attached under. Unknown roles attach nothing; the
// raw field changes still pass through.
func addressLabelKey(addressType string) (string, bool) {
	switch addressType {
	case "pickupAddress":
		return "pickup_address", true
	case "destinationAddress":
		return "destination_address", true
	}
	return "", false
}

// insertAddressDetails renders a newly created address. The inserted row
// carries every column, so the address is composed from the changed values
// alone; the context entry's address_type selects the label.
func insertAddressDetails(r AuditRecord) RenderedDetails {
	labels := copyValues(r.ChangedValues)
	if addressType, ok := r.contextValue("address_type"); ok {
		if key, known := addressLabelKey(addressType); known {
			labels[key] = formatAddress(r.ChangedValues)
		}
	}
	return labeled(labels)
}

// updateAddressDetails renders an address change. Only the changed columns are
// on the record, so unchanged components (state, city) are backfilled from the
// old values before composing the full address string. The context entry's
// addressType selects the label.
func updateAddressDetails(r AuditRecord) RenderedDetails {
	labels := copyValues(r.ChangedValues)
	if addressType, ok := r.contextValue("addressType"); ok {
		if key, known := addressLabelKey(addressType); known {
			labels[key] = formatAddress(mergedValues(r))
		}
	}
	return labeled(labels)
}

// agentDetails renders a shipment agent change. The composed "name, phone,
// email" string is attached under receiving_agent or releasing_agent based on
// the agent_type, using the new value when the type itself changed.
func agentDetails(r AuditRecord) RenderedDetails {
	labels := copyValues(r.ChangedValues)
	var key string
	switch r.changedOrOld("agent_type") {
	case "RECEIVING_AGENT":
		key = "receiving_agent"
	case "RELEASING_AGENT":
		key = "releasing_agent"
	}
	if key != "" {
		labels[key] = formatAgent(mergedValues(r))
	}
	return labeled(labels)
}

// paymentStatusDetails maps the record's payment status through the shared
// label lookup. Used by both the Payment and Status renderers.
func paymentStatusDetails(r AuditRecord) RenderedDetails {
	return plainText(PaymentStatusLabel(r.ChangedValues["status"]))
}

// serviceItemDetails renders "<type> shipment, <service item name>" from the
// record's context, degrading to the shipment line alone when the context
// carries no item name.
func serviceItemDetails(r AuditRecord) RenderedDetails {
	line := shipmentLine(r, "")
	if name, ok := r.contextValue("name"); ok && name != "" {
		line += ", " + name
	}
	return plainText(line)
}

// financialReviewDetails branches on the string form of the flag. The backend
// serializes the boolean as "true"/"false" and that string contract is the
// one honored here.
func financialReviewDetails(r AuditRecord) RenderedDetails {
	if r.ChangedValues["financial_review_flag"] == "true" {
		return plainText("Move flagged for financial review")
	}
	return plainText("Move unflagged for financial review")
}

// moveApproved reports whether a move status update also made the move
// available to the prime, which is the moment the MTO is created.
func moveApproved(r AuditRecord) bool {
	_, ok := r.ChangedValues["available_to_prime_at"]
	return ok
}
