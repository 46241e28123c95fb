package catalog

// Ingredient pairs an ingredient name with the benefit copy shown on the
// product page.
type Ingredient struct {
	Name    string `json:"name"`
	Benefit string `json:"benefit"`
}

// Product is a read-only catalog entry. Products are loaded once at boot and
// never mutated; the cart references them by id only.
type Product struct {
	ID               int          `json:"id"`
	Name             string       `json:"name"`
	PriceCents       int64        `json:"price_cents"`
	SalePriceCents   *int64       `json:"sale_price_cents,omitempty"`
	Category         string       `json:"category"`
	Tagline          string       `json:"tagline,omitempty"`
	ShortDescription string       `json:"short_description"`
	FullDescription  string       `json:"full_description"`
	Result           string       `json:"result,omitempty"`
	Benefits         []string     `json:"benefits,omitempty"`
	Ingredients      []Ingredient `json:"ingredients,omitempty"`
	HowToUse         string       `json:"how_to_use,omitempty"`
	Images           []string     `json:"images"`
	InStock          bool         `json:"in_stock"`
	PackContents     []string     `json:"pack_contents,omitempty"`
}

// OnSale reports whether the sale price is present and actually undercuts
// the base price.
func (p Product) OnSale() bool {
	return p.SalePriceCents != nil && *p.SalePriceCents > 0 && *p.SalePriceCents < p.PriceCents
}

// EffectivePriceCents is the unit price the cart charges: the sale price
// when it undercuts the base price, the base price otherwise.
func (p Product) EffectivePriceCents() int64 {
	if p.OnSale() {
		return *p.SalePriceCents
	}
	return p.PriceCents
}
