package historyevents

// EventTemplate pairs a match predicate with a rendering strategy. Templates
// are immutable data: the render funcs are pure and close over nothing
// mutable, so one template value serves every record that matches it.
//
// A nil match field is a wildcard. Matching is symmetric: a record may also
// declare a field as the literal "*" and match any template on that axis.
type EventTemplate struct {
	Action      *Action
	EventName   *string
	TableName   *string
	DetailsType DetailsType
	Title       func(AuditRecord) string
	Details     func(AuditRecord) RenderedDetails
}

// Matches reports whether the template applies to the record. Each of the
// three axes matches when the template side is a wildcard (nil), the record
// side is the "*" sentinel, or the two values are equal. Comparison is
// case-sensitive.
func (t EventTemplate) Matches(r AuditRecord) bool {
	if t.Action != nil && string(r.Action) != Wildcard && *t.Action != r.Action {
		return false
	}
	if !matchField(t.EventName, r.EventName) {
		return false
	}
	return matchField(t.TableName, r.TableName)
}

func matchField(want *string, got string) bool {
	if want == nil || got == Wildcard {
		return true
	}
	return *want == got
}

// Render produces the display event for a record already known to match.
func (t EventTemplate) Render(r AuditRecord) RenderedDisplayEvent {
	return RenderedDisplayEvent{
		Title:       t.Title(r),
		DetailsType: t.DetailsType,
		Details:     t.Details(r),
	}
}

func onAction(a Action) *Action { return &a }

func onEvent(name string) *string { return &name }

func onTable(name string) *string { return &name }

// staticTitle adapts a constant title to the template's Title signature.
func staticTitle(title string) func(AuditRecord) string {
	return func(AuditRecord) string { return title }
}

// staticText adapts a constant plain-text detail line.
func staticText(text string) func(AuditRecord) RenderedDetails {
	return func(AuditRecord) RenderedDetails { return plainText(text) }
}
