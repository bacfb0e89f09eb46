package subscription

// Plan names recognized by the management API.
const (
	PlanBase     = "base"
	PlanBSBase   = "bsbase"
	PlanFamily   = "family"
	PlanBSFamily = "bsfamily"
	PlanTrial    = "trial"
	PlanFree     = "free"
)

// planNames maps API plan identifiers to display names.
var planNames = map[string]string{
	PlanBase:     "Base",
	PlanBSBase:   "BS Base",
	PlanFamily:   "Family",
	PlanBSFamily: "BS Family",
	PlanTrial:    "Trial",
	PlanFree:     "Free",
}

// ValidPlans lists the accepted plan identifiers in display order.
var ValidPlans = []string{PlanBase, PlanBSBase, PlanFamily, PlanBSFamily, PlanTrial, PlanFree}

// ValidPlan reports whether the given plan identifier is known.
func ValidPlan(plan string) bool {
	_, ok := planNames[plan]
	return ok
}

// PlanDisplay returns the human-readable name for a plan, or the raw
// identifier when unknown.
func PlanDisplay(plan string) string {
	if name, ok := planNames[plan]; ok {
		return name
	}
	return plan
}

// Compensable reports whether a plan participates in bulk compensation.
// Trial, free and unset plans have nothing to extend.
func Compensable(plan string) bool {
	switch plan {
	case PlanTrial, PlanFree, "":
		return false
	}
	return true
}

// squadNames maps known squad UUIDs to display names. Presentation only;
// membership is managed server-side.
var squadNames = map[string]string{
	"514a5e22-c599-4f72-81a5-e646f0391db7": "Default",
	"9e60626e-32a8-4d91-a2f8-2aa3fecf7b23": "BS",
	"b6a4e86b-b769-4c86-a2d9-f31bbe645029": "PRO",
}

// SquadName returns the display name for a squad UUID, or the UUID itself
// when unknown.
func SquadName(uuid string) string {
	if name, ok := squadNames[uuid]; ok {
		return name
	}
	return uuid
}
