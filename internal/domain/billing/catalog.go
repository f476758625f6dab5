package billing

// BillingPeriod selects which catalog price a checkout uses.
type BillingPeriod string

const (
	PeriodMonthly BillingPeriod = "monthly"
	PeriodYearly  BillingPeriod = "yearly"
)

// NormalizePeriod maps an omitted or unknown period to the monthly default.
func NormalizePeriod(p string) BillingPeriod {
	if BillingPeriod(p) == PeriodYearly {
		return PeriodYearly
	}
	return PeriodMonthly
}

// CatalogPlan is a subscription pricing tier. The catalog is static and
// immutable; prices are SAR halalas.
type CatalogPlan struct {
	ID            string
	Name          string
	NameAr        string
	Description   string
	DescriptionAr string
	Tier          string
	PriceMonthly  int64
	PriceYearly   int64
}

// Price resolves the per-period amount in halalas.
func (p CatalogPlan) Price(period BillingPeriod) int64 {
	if period == PeriodYearly {
		return p.PriceYearly
	}
	return p.PriceMonthly
}

const FreePlanID = "free"

var catalog = map[string]CatalogPlan{
	FreePlanID: {
		ID:            FreePlanID,
		Name:          "Free",
		NameAr:        "مجاني",
		Description:   "Basic legacy vault for one person",
		DescriptionAr: "خزنة إرث أساسية لشخص واحد",
		Tier:          TierNone,
		PriceMonthly:  0,
		PriceYearly:   0,
	},
	"individual": {
		ID:            "individual",
		Name:          "Individual",
		NameAr:        "فردي",
		Description:   "Full digital legacy vault for one person",
		DescriptionAr: "خزنة إرث رقمية كاملة لشخص واحد",
		Tier:          TierIndividual,
		PriceMonthly:  2900,
		PriceYearly:   29900,
	},
	"team": {
		ID:            "team",
		Name:          "Team",
		NameAr:        "فريق",
		Description:   "Shared vault and planning for small teams",
		DescriptionAr: "خزنة مشتركة وتخطيط للفرق الصغيرة",
		Tier:          TierTeam,
		PriceMonthly:  9900,
		PriceYearly:   99900,
	},
	"company": {
		ID:            "company",
		Name:          "Company",
		NameAr:        "شركة",
		Description:   "Organization-wide vault with admin controls",
		DescriptionAr: "خزنة على مستوى المؤسسة مع صلاحيات إدارية",
		Tier:          TierCompany,
		PriceMonthly:  29900,
		PriceYearly:   299900,
	},
}

// LookupPlan returns the catalog entry for id.
func LookupPlan(id string) (CatalogPlan, bool) {
	p, ok := catalog[id]
	return p, ok
}

// Catalog returns the purchasable plans plus the free tier, for the public
// pricing endpoint. The map is copied so callers cannot mutate the catalog.
func Catalog() []CatalogPlan {
	out := make([]CatalogPlan, 0, len(catalog))
	for _, id := range []string{FreePlanID, "individual", "team", "company"} {
		out = append(out, catalog[id])
	}
	return out
}
