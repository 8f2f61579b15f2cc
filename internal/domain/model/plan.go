package model

import "fmt"

// Plan is a fixed price tier a user selects before paying.
type Plan struct {
	ID    int
	Name  string
	Emoji string
}

// Static plan table. Prices are the plan IDs in dollars.
var plans = []Plan{
	{ID: 4, Name: "Esign Luck", Emoji: "🔴"},
	{ID: 7, Name: "Esign Basic", Emoji: "🟡"},
	{ID: 12, Name: "Esign Standard", Emoji: "🟠"},
	{ID: 16, Name: "Esign Premium", Emoji: "🟢"},
}

// Plans returns the fixed set of selectable plans in display order.
func Plans() []Plan {
	out := make([]Plan, len(plans))
	copy(out, plans)
	return out
}

// PlanByID resolves a plan by its price tier identifier.
func PlanByID(id int) (Plan, bool) {
	for _, p := range plans {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}

// Label returns a human readable plan label, e.g. "🟠 Esign Standard - $12".
func (p Plan) Label() string {
	return fmt.Sprintf("%s %s - $%d", p.Emoji, p.Name, p.ID)
}
