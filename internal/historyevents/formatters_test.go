package historyevents

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type FormattersSuite struct {
	suite.Suite
}

func TestFormattersSuite(t *testing.T) {
	suite.Run(t, new(FormattersSuite))
}

func (s *FormattersSuite) TestFormatAddress() {
	s.Run("joins all components in fixed order", func() {
		got := formatAddress(map[string]string{
			"street_address_1": "12 Any Street",
			"street_address_2": "P.O. Box 1234",
			"city":             "Beverly Hills",
			"state":            "CA",
			"postal_code":      "90211",
		})
		s.Equal("12 Any Street, P.O. Box 1234, Beverly Hills, CA 90211", got)
	})

	s.Run("omits blank street_address_2 without doubling separators", func() {
		got := formatAddress(map[string]string{
			"street_address_1": "12 Any Street",
			"street_address_2": "",
			"city":             "Beverly Hills",
			"state":            "CA",
			"postal_code":      "90211",
		})
		s.Equal("12 Any Street, Beverly Hills, CA 90211", got)
	})

	s.Run("no trailing separator when tail components are missing", func() {
		got := formatAddress(map[string]string{
			"street_address_1": "12 Any Street",
			"city":             "Beverly Hills",
		})
		s.Equal("12 Any Street, Beverly Hills", got)
	})

	s.Run("empty field map renders empty string", func() {
		s.Equal("", formatAddress(map[string]string{}))
	})
}

func (s *FormattersSuite) TestFormatAgent() {
	s.Run("full agent", func() {
		got := formatAgent(map[string]string{
			"first_name": "Grace",
			"last_name":  "Griffin",
			"phone":      "555-555-5555",
			"email":      "grace@example.com",
		})
		s.Equal("Grace Griffin, 555-555-5555, grace@example.com", got)
	})

	s.Run("skips missing phone", func() {
		got := formatAgent(map[string]string{
			"first_name": "Grace",
			"last_name":  "Griffin",
			"email":      "grace@example.com",
		})
		s.Equal("Grace Griffin, grace@example.com", got)
	})

	s.Run("name alone has no separators", func() {
		got := formatAgent(map[string]string{"first_name": "Grace", "last_name": "Griffin"})
		s.Equal("Grace Griffin", got)
	})
}

func (s *FormattersSuite) TestMergedValues() {
	r := AuditRecord{
		OldValues:     map[string]string{"state": "CA", "city": "Old Town"},
		ChangedValues: map[string]string{"city": "Beverly Hills"},
	}
	merged := mergedValues(r)
	s.Equal("CA", merged["state"], "unchanged column backfilled from old values")
	s.Equal("Beverly Hills", merged["city"], "changed column wins")

	merged["city"] = "mutated"
	s.Equal("Beverly Hills", r.ChangedValues["city"], "merge must not alias the record's maps")
}

func (s *FormattersSuite) TestShipmentTypeLabels() {
	s.Run("known codes translate", func() {
		s.Equal("HHG", ShipmentTypeLabel("HHG"))
		s.Equal("NTS", ShipmentTypeLabel("HHG_INTO_NTS"))
		s.Equal("NTS-release", ShipmentTypeLabel("HHG_OUTOF_NTS_DOMESTIC"))
		s.Equal("Boat", ShipmentTypeLabel("BOAT_HAUL_AWAY"))
		s.Equal("Boat", ShipmentTypeLabel("BOAT_TOW_AWAY"))
	})

	s.Run("unknown code passes through", func() {
		s.Equal("FUTURE_TYPE", ShipmentTypeLabel("FUTURE_TYPE"))
	})
}

func (s *FormattersSuite) TestPaymentStatusLabels() {
	s.Run("known statuses translate", func() {
		s.Equal("Needs Review", PaymentStatusLabel("PENDING"))
		s.Equal("Reviewed", PaymentStatusLabel("REVIEWED"))
		s.Equal("Reviewed", PaymentStatusLabel("SENT_TO_GEX"))
		s.Equal("Reviewed", PaymentStatusLabel("RECEIVED_BY_GEX"))
		s.Equal("Paid", PaymentStatusLabel("PAID"))
	})

	s.Run("unknown status passes through", func() {
		s.Equal("EDI_ERROR", PaymentStatusLabel("EDI_ERROR"))
	})
}
