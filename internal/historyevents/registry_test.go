package historyevents

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type RegistrySuite struct {
	suite.Suite
	registry *Registry
}

func (s *RegistrySuite) SetupTest() {
	s.registry = NewRegistry()
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

// TestKnownEvents exercises the documented record/output pairs end to end
// through the public entry point.
func (s *RegistrySuite) TestKnownEvents() {
	s.Run("dismissed excess weight alert", func() {
		got := RenderHistoryEvent(AuditRecord{
			Action:    ActionUpdate,
			EventName: "acknowledgeExcessWeightRisk",
			TableName: "moves",
		})
		s.Equal("Updated move", got.Title)
		s.Equal(DetailsPlainText, got.DetailsType)
		s.Equal("Dismissed excess weight alert", got.Details.Text)
	})

	s.Run("approved shipment carries shipment type label", func() {
		got := RenderHistoryEvent(AuditRecord{
			Action:        ActionUpdate,
			EventName:     "approveShipment",
			TableName:     "mto_shipments",
			ChangedValues: map[string]string{"status": "APPROVED"},
			OldValues:     map[string]string{"shipment_type": "HHG"},
		})
		s.Equal("Approved shipment", got.Title)
		s.Equal("HHG shipment", got.Details.Text)
	})

	s.Run("approved NTS shipment translates the raw code", func() {
		got := RenderHistoryEvent(AuditRecord{
			Action:    ActionUpdate,
			EventName: "approveShipment",
			TableName: "mto_shipments",
			OldValues: map[string]string{"shipment_type": "HHG_INTO_NTS"},
		})
		s.Equal("NTS shipment", got.Details.Text)
	})

	s.Run("financial review flag set", func() {
		got := RenderHistoryEvent(AuditRecord{
			Action:        ActionUpdate,
			EventName:     "setFinancialReviewFlag",
			TableName:     "moves",
			ChangedValues: map[string]string{"financial_review_flag": "true"},
		})
		s.Equal("Flagged move", got.Title)
		s.Equal("Move flagged for financial review", got.Details.Text)
	})

	s.Run("financial review flag cleared", func() {
		got := RenderHistoryEvent(AuditRecord{
			Action:        ActionUpdate,
			EventName:     "setFinancialReviewFlag",
			TableName:     "moves",
			ChangedValues: map[string]string{"financial_review_flag": "false"},
		})
		s.Equal("Flagged move", got.Title)
		s.Equal("Move unflagged for financial review", got.Details.Text)
	})

	s.Run("move approval creates the MTO", func() {
		got := RenderHistoryEvent(AuditRecord{
			Action:    ActionUpdate,
			EventName: "updateMoveTaskOrderStatus",
			TableName: "moves",
			ChangedValues: map[string]string{
				"available_to_prime_at": "2022-04-13T15:21:31Z",
				"status":                "APPROVED",
			},
		})
		s.Equal("Approved move", got.Title)
		s.Equal("Created Move Task Order (MTO)", got.Details.Text)
	})

	s.Run("move status update without prime availability", func() {
		got := RenderHistoryEvent(AuditRecord{
			Action:        ActionUpdate,
			EventName:     "updateMoveTaskOrderStatus",
			TableName:     "moves",
			ChangedValues: map[string]string{"status": "APPROVED"},
		})
		s.Equal("Move status updated", got.Title)
		s.Equal("-", got.Details.Text)
	})

	s.Run("reweigh request reads shipment type from context", func() {
		got := RenderHistoryEvent(AuditRecord{
			Action:    ActionInsert,
			EventName: "requestShipmentReweigh",
			TableName: "reweighs",
			Context:   []map[string]string{{"shipment_type": "HHG_OUTOF_NTS_DOMESTIC"}},
		})
		s.Equal("Updated shipment", got.Title)
		s.Equal("NTS-release shipment reweigh requested", got.Details.Text)
	})

	s.Run("pickup address update composes the full address", func() {
		got := RenderHistoryEvent(AuditRecord{
			Action:    ActionUpdate,
			EventName: "updateMTOShipment",
			TableName: "addresses",
			ChangedValues: map[string]string{
				"city":             "Beverly Hills",
				"postal_code":      "90211",
				"street_address_1": "12 Any Street",
				"street_address_2": "P.O. Box 1234",
			},
			OldValues: map[string]string{"state": "CA"},
			Context:   []map[string]string{{"addressType": "pickupAddress"}},
		})
		s.Equal("Updated shipment", got.Title)
		s.Equal(DetailsLabeled, got.DetailsType)
		s.Equal("12 Any Street, P.O. Box 1234, Beverly Hills, CA 90211", got.Details.Labels["pickup_address"])
	})

	s.Run("destination address insert labels from address_type", func() {
		got := RenderHistoryEvent(AuditRecord{
			Action:    ActionInsert,
			EventName: "createMTOShipment",
			TableName: "addresses",
			ChangedValues: map[string]string{
				"street_address_1": "441 SW Rio de la Plata Drive",
				"city":             "Tacoma",
				"state":            "WA",
				"postal_code":      "98421",
			},
			Context: []map[string]string{{"address_type": "destinationAddress"}},
		})
		s.Equal("441 SW Rio de la Plata Drive, Tacoma, WA 98421", got.Details.Labels["destination_address"])
	})

	s.Run("unknown address role passes raw changes through unlabeled", func() {
		got := RenderHistoryEvent(AuditRecord{
			Action:        ActionUpdate,
			EventName:     "updateMTOShipment",
			TableName:     "addresses",
			ChangedValues: map[string]string{"city": "Tacoma"},
			Context:       []map[string]string{{"addressType": "secondaryPickupAddress"}},
		})
		s.Equal("Tacoma", got.Details.Labels["city"])
		s.NotContains(got.Details.Labels, "pickup_address")
		s.NotContains(got.Details.Labels, "destination_address")
	})

	s.Run("receiving agent update composes name, phone, email", func() {
		got := RenderHistoryEvent(AuditRecord{
			Action:    ActionUpdate,
			EventName: "updateMTOShipment",
			TableName: "mto_agents",
			ChangedValues: map[string]string{
				"phone": "555-555-5555",
			},
			OldValues: map[string]string{
				"agent_type": "RECEIVING_AGENT",
				"first_name": "Grace",
				"last_name":  "Griffin",
				"email":      "grace@example.com",
			},
		})
		s.Equal("Grace Griffin, 555-555-5555, grace@example.com", got.Details.Labels["receiving_agent"])
	})

	s.Run("releasing agent insert labels from changed agent_type", func() {
		got := RenderHistoryEvent(AuditRecord{
			Action:    ActionInsert,
			EventName: "createMTOShipment",
			TableName: "mto_agents",
			ChangedValues: map[string]string{
				"agent_type": "RELEASING_AGENT",
				"first_name": "Riley",
				"last_name":  "Baker",
				"email":      "riley@example.com",
			},
		})
		s.Equal("Riley Baker, riley@example.com", got.Details.Labels["releasing_agent"])
	})

	s.Run("shipment update carries translated shipment_type label", func() {
		got := RenderHistoryEvent(AuditRecord{
			Action:        ActionUpdate,
			EventName:     "updateMTOShipment",
			TableName:     "mto_shipments",
			ChangedValues: map[string]string{"requested_pickup_date": "2022-05-01"},
			Context:       []map[string]string{{"shipment_type": "HHG_INTO_NTS"}},
		})
		s.Equal(DetailsLabeledShipment, got.DetailsType)
		s.Equal("NTS", got.Details.Labels["shipment_type"])
		s.Equal("2022-05-01", got.Details.Labels["requested_pickup_date"])
	})

	s.Run("service item status approval", func() {
		got := RenderHistoryEvent(AuditRecord{
			Action:        ActionUpdate,
			EventName:     "updateMTOServiceItemStatus",
			TableName:     "mto_service_items",
			ChangedValues: map[string]string{"status": "APPROVED"},
			Context: []map[string]string{{
				"shipment_type": "HHG",
				"name":          "Domestic origin price",
			}},
		})
		s.Equal("Approved service item", got.Title)
		s.Equal("HHG shipment, Domestic origin price", got.Details.Text)
	})

	s.Run("payment request insert maps status through the shared lookup", func() {
		got := RenderHistoryEvent(AuditRecord{
			Action:        ActionInsert,
			EventName:     "createPaymentRequest",
			TableName:     "payment_requests",
			ChangedValues: map[string]string{"status": "PENDING"},
		})
		s.Equal("Submitted payment request", got.Title)
		s.Equal(DetailsPayment, got.DetailsType)
		s.Equal("Needs Review", got.Details.Text)
	})

	s.Run("payment request status update renders as status", func() {
		got := RenderHistoryEvent(AuditRecord{
			Action:        ActionUpdate,
			EventName:     "updatePaymentRequestStatus",
			TableName:     "payment_requests",
			ChangedValues: map[string]string{"status": "REVIEWED"},
		})
		s.Equal(DetailsStatus, got.DetailsType)
		s.Equal("Reviewed", got.Details.Text)
	})
}

// TestPrecedence verifies registry order decides when two templates both
// match a crafted record.
func (s *RegistrySuite) TestPrecedence() {
	s.Run("earlier template wins", func() {
		first := EventTemplate{
			TableName:   onTable("moves"),
			DetailsType: DetailsPlainText,
			Title:       staticTitle("first"),
			Details:     staticText("first"),
		}
		second := EventTemplate{
			TableName:   onTable("moves"),
			DetailsType: DetailsPlainText,
			Title:       staticTitle("second"),
			Details:     staticText("second"),
		}
		reg := &Registry{templates: []EventTemplate{first, second}, fallback: undefinedTemplate()}

		got := reg.Render(AuditRecord{Action: ActionUpdate, EventName: "any", TableName: "moves"})
		s.Equal("first", got.Title)
	})

	s.Run("specific payment status template beats the wildcard entry", func() {
		got := s.registry.Render(AuditRecord{
			Action:        ActionUpdate,
			EventName:     "updatePaymentRequestStatus",
			TableName:     "payment_requests",
			ChangedValues: map[string]string{"status": "PAID"},
		})
		s.Equal(DetailsStatus, got.DetailsType)

		wildcardHit := s.registry.Render(AuditRecord{
			Action:        ActionUpdate,
			EventName:     "someNewPaymentEvent",
			TableName:     "payment_requests",
			ChangedValues: map[string]string{"status": "PAID"},
		})
		s.Equal("Updated payment request", wildcardHit.Title)
	})
}

// TestFallback covers the undefined template's table→title map and totality.
func (s *RegistrySuite) TestFallback() {
	knownTables := map[string]string{
		"orders":            "Updated order",
		"mto_service_items": "Updated service item",
		"entitlements":      "Updated allowances",
		"payment_requests":  "Updated payment request",
		"mto_shipments":     "Updated shipment",
		"mto_agents":        "Updated shipment",
		"addresses":         "Updated shipment",
		"moves":             "Updated move",
	}

	s.Run("documented labels for every known table", func() {
		for table, want := range knownTables {
			got := RenderHistoryEvent(AuditRecord{
				Action:    ActionDelete, // no template matches DELETE on these tables
				EventName: "unmatchedEvent",
				TableName: table,
			})
			s.Equal(want, got.Title, "table %s", table)
			s.Equal("-", got.Details.Text, "table %s", table)
		}
	})

	s.Run("unknown table defaults to Updated move", func() {
		got := RenderHistoryEvent(AuditRecord{
			Action:    ActionUpdate,
			EventName: "testEventName",
			TableName: "imaginary_test_objects",
		})
		s.Equal("Updated move", got.Title)
		s.Equal("-", got.Details.Text)
	})

	s.Run("garbage record still renders", func() {
		got := RenderHistoryEvent(AuditRecord{})
		s.Equal("Updated move", got.Title)
		s.Equal(DetailsPlainText, got.DetailsType)
	})
}

// TestDeterminism renders the same record twice and expects deep equality.
func (s *RegistrySuite) TestDeterminism() {
	r := AuditRecord{
		Action:        ActionUpdate,
		EventName:     "updateMTOShipment",
		TableName:     "addresses",
		ChangedValues: map[string]string{"city": "Norfolk", "state": "VA"},
		OldValues:     map[string]string{"street_address_1": "1 Main St", "postal_code": "23503"},
		Context:       []map[string]string{{"addressType": "pickupAddress"}},
	}
	s.Equal(RenderHistoryEvent(r), RenderHistoryEvent(r))
}

// TestGracefulDegradation covers the missing-field edge cases that must not
// panic.
func (s *RegistrySuite) TestGracefulDegradation() {
	s.Run("shipment template without any shipment type", func() {
		got := RenderHistoryEvent(AuditRecord{
			Action:    ActionUpdate,
			EventName: "approveShipment",
			TableName: "mto_shipments",
		})
		s.Equal("shipment", got.Details.Text)
	})

	s.Run("labeled shipment template without context omits the label", func() {
		got := RenderHistoryEvent(AuditRecord{
			Action:        ActionUpdate,
			EventName:     "updateMTOShipment",
			TableName:     "mto_shipments",
			ChangedValues: map[string]string{"counselor_remarks": "updated"},
		})
		s.NotContains(got.Details.Labels, "shipment_type")
		s.Equal("updated", got.Details.Labels["counselor_remarks"])
	})

	s.Run("agent template without agent_type keeps raw changes only", func() {
		got := RenderHistoryEvent(AuditRecord{
			Action:        ActionUpdate,
			EventName:     "updateMTOShipment",
			TableName:     "mto_agents",
			ChangedValues: map[string]string{"phone": "555-555-5555"},
		})
		s.Equal("555-555-5555", got.Details.Labels["phone"])
		s.NotContains(got.Details.Labels, "receiving_agent")
		s.NotContains(got.Details.Labels, "releasing_agent")
	})

	s.Run("payment template without status maps empty through identity", func() {
		got := RenderHistoryEvent(AuditRecord{
			Action:    ActionInsert,
			TableName: "payment_requests",
		})
		s.Equal("", got.Details.Text)
	})
}
