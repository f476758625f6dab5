package billing

import (
	"net/http"

	"thakirni-app/internal/domain/billing"

	"github.com/gin-gonic/gin"
)

type catalogEntry struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	NameAr        string `json:"name_ar"`
	Description   string `json:"description"`
	DescriptionAr string `json:"description_ar"`
	Tier          string `json:"tier"`
	PriceMonthly  int64  `json:"price_monthly"`
	PriceYearly   int64  `json:"price_yearly"`
}

// ListCatalog serves the static subscription catalog for the pricing page.
func (h *Handler) ListCatalog(c *gin.Context) {
	var out []catalogEntry
	for _, p := range billing.Catalog() {
		out = append(out, catalogEntry{
			ID:            p.ID,
			Name:          p.Name,
			NameAr:        p.NameAr,
			Description:   p.Description,
			DescriptionAr: p.DescriptionAr,
			Tier:          p.Tier,
			PriceMonthly:  p.PriceMonthly,
			PriceYearly:   p.PriceYearly,
		})
	}
	c.JSON(http.StatusOK, out)
}
