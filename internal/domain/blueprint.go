package domain

// PricingTier é um plano de venda exibido na página do coach.
type PricingTier struct {
	Name     string   `json:"name"`
	Price    string   `json:"price"`
	Features []string `json:"features"`
}

type Testimonial struct {
	Name   string `json:"name"`
	Result string `json:"result"`
	Quote  string `json:"quote"`
}

// WebsiteData é o conteúdo gerado para o site do coach. Persistido como um
// único valor JSON dentro do blueprint.
type WebsiteData struct {
	HeroHeadline string        `json:"hero_headline"`
	HeroSubhead  string        `json:"hero_subhead"`
	CTAText      string        `json:"cta_text"`
	Features     []string      `json:"features"`
	Pricing      []PricingTier `json:"pricing"`
	Testimonials []Testimonial `json:"testimonials"`
}

// BusinessBlueprint é o registro único por conta com a identidade do negócio
// e o conteúdo de marketing gerado. A ausência do blueprint significa que o
// onboarding ainda não foi concluído.
type BusinessBlueprint struct {
	BusinessName      string       `json:"business_name"`
	Niche             string       `json:"niche"`
	TargetAudience    string       `json:"target_audience"`
	Mission           string       `json:"mission"`
	WebsiteData       WebsiteData  `json:"website_data"`
	ContentPlan       []SocialPost `json:"content_plan"`
	SuggestedPrograms []string     `json:"suggested_programs"`
}

// UpdateBlueprintRequest carrega uma atualização parcial do blueprint.
// O plano de conteúdo não entra aqui: é gerenciado pelas operações de posts.
type UpdateBlueprintRequest struct {
	BusinessName      *string      `json:"business_name"`
	Niche             *string      `json:"niche"`
	TargetAudience    *string      `json:"target_audience"`
	Mission           *string      `json:"mission"`
	WebsiteData       *WebsiteData `json:"website_data"`
	SuggestedPrograms *[]string    `json:"suggested_programs"`
}
