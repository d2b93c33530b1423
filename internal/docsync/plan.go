package docsync

import (
	"log/slog"

	"github.com/irwhub/employee-contract-app/models"
)

// Kind identifies which source template a generated document came from.
type Kind string

const (
	KindA        Kind = "A"
	KindB        Kind = "B"
	KindCombined Kind = "combined"
)

// Templates holds the configured template document ids. Any of them may
// be empty.
type Templates struct {
	A        string
	B        string
	Combined string
}

// PlanEntry is one document to generate; entries are rendered and
// merged in slice order.
type PlanEntry struct {
	Kind       Kind
	TemplateID string
}

// ResolvePlan decides which template(s) to render for a contract type.
//
// The combined type prefers a dedicated combined template when one is
// configured and distinct from A and B; otherwise it expands to the
// ordered [A, B] pair with unconfigured entries silently dropped. This
// lets an operator run either one merged template or two separable ones
// without touching contract data.
//
// An empty result is the caller's signal of a configuration error.
func ResolvePlan(contractType string, t Templates) []PlanEntry {
	switch contractType {
	case models.ContractTypeTraffic:
		if t.A != "" {
			return []PlanEntry{{KindA, t.A}}
		}
		return nil

	case models.ContractTypeLiability:
		if t.B != "" {
			return []PlanEntry{{KindB, t.B}}
		}
		return nil

	case models.ContractTypeCombined:
		if t.Combined != "" && t.Combined != t.A && t.Combined != t.B {
			return []PlanEntry{{KindCombined, t.Combined}}
		}
		var plan []PlanEntry
		if t.A != "" {
			plan = append(plan, PlanEntry{KindA, t.A})
		}
		if t.B != "" {
			plan = append(plan, PlanEntry{KindB, t.B})
		}
		return plan
	}

	// Free-text or unrecognized type. Contract types are allowed to be
	// free text, so this is not an error; the WARN lets operators spot a
	// typo'd type in the logs.
	slog.Warn("Unrecognized contract type, falling back to a generic template",
		"contract_type", contractType)
	switch {
	case t.Combined != "":
		return []PlanEntry{{KindCombined, t.Combined}}
	case t.A != "":
		return []PlanEntry{{KindA, t.A}}
	case t.B != "":
		return []PlanEntry{{KindB, t.B}}
	}
	return nil
}
