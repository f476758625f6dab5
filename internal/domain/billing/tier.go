package billing

import "strings"

// Tier constants (single source of truth)
const (
	TierNone       = "none"
	TierIndividual = "individual"
	TierTeam       = "team"
	TierCompany    = "company"
)

// NormalizeTier returns the effective tier for a stored value. Anything
// unrecognized degrades to the individual tier, matching the dashboard
// default rather than locking the user out.
func NormalizeTier(t string) string {
	tier := strings.ToLower(strings.TrimSpace(t))
	switch tier {
	case TierIndividual, TierTeam, TierCompany:
		return tier
	case TierNone, "":
		return TierNone
	}
	return TierIndividual
}
