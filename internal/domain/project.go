package domain

import "time"

// ProjectData é o envelope de persistência usado quando não há banco remoto
// configurado: o estado completo da conta em um único valor.
type ProjectData struct {
	Blueprint   *BusinessBlueprint `json:"blueprint"`
	Clients     []Client           `json:"clients"`
	Automations []Automation       `json:"automations"`
}

// SavedProject é o ProjectData com o carimbo da última gravação.
type SavedProject struct {
	Data        ProjectData `json:"data"`
	LastUpdated time.Time   `json:"last_updated"`
}

// Clone devolve uma cópia profunda para servir de estado tentativo em uma
// aplicação em duas fases: nenhum slice é compartilhado com o original.
func (p ProjectData) Clone() ProjectData {
	out := ProjectData{}
	if p.Blueprint != nil {
		bp := *p.Blueprint
		bp.ContentPlan = append([]SocialPost(nil), p.Blueprint.ContentPlan...)
		bp.SuggestedPrograms = append([]string(nil), p.Blueprint.SuggestedPrograms...)
		bp.WebsiteData = p.Blueprint.WebsiteData.clone()
		out.Blueprint = &bp
	}
	out.Clients = append([]Client(nil), p.Clients...)
	out.Automations = append([]Automation(nil), p.Automations...)
	return out
}

func (w WebsiteData) clone() WebsiteData {
	out := w
	out.Features = append([]string(nil), w.Features...)
	out.Pricing = append([]PricingTier(nil), w.Pricing...)
	for i := range out.Pricing {
		out.Pricing[i].Features = append([]string(nil), w.Pricing[i].Features...)
	}
	out.Testimonials = append([]Testimonial(nil), w.Testimonials...)
	return out
}
