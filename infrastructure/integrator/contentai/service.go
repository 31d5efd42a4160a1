package contentai

import (
	"github.com/coachos/coach-os-api/infrastructure/integrator/contentai/contentaiclient"
	"github.com/coachos/coach-os-api/internal/domain"
	"github.com/coachos/coach-os-api/pkg/log"
	"github.com/coachos/coach-os-api/pkg/utils"
)

// Generator produz o material de marketing do negócio. As implementações
// nunca devolvem erro para o chamador: quando a geração falha, o resultado
// cai no conteúdo de demonstração para não travar o onboarding.
type Generator interface {
	GenerateBlueprint(description string) *domain.BusinessBlueprint
	GenerateContentPlan(niche string) []domain.SocialPost
}

type service struct {
	client contentaiclient.Client
}

func NewService(client contentaiclient.Client) Generator {
	return &service{client: client}
}

func (s *service) GenerateBlueprint(description string) *domain.BusinessBlueprint {
	response, err := s.client.GenerateBlueprint(description)
	if err != nil {
		log.L.WithError(err).Warn("Falha na geração do blueprint. Usando conteúdo de demonstração")
		return FallbackBlueprint()
	}

	log.L.Debugf("Blueprint gerado: %s", utils.PrettyJson(response))

	return toBlueprint(response)
}

func (s *service) GenerateContentPlan(niche string) []domain.SocialPost {
	response, err := s.client.GenerateContentPlan(niche)
	if err != nil {
		log.L.WithError(err).Warn("Falha na geração do plano de conteúdo. Usando conteúdo de demonstração")
		return FallbackBlueprint().ContentPlan
	}

	return toPosts(response)
}

func toBlueprint(r *contentaiclient.BlueprintResponse) *domain.BusinessBlueprint {
	pricing := make([]domain.PricingTier, 0, len(r.WebsiteData.Pricing))
	for _, p := range r.WebsiteData.Pricing {
		pricing = append(pricing, domain.PricingTier{
			Name:     p.Name,
			Price:    p.Price,
			Features: p.Features,
		})
	}

	testimonials := make([]domain.Testimonial, 0, len(r.WebsiteData.Testimonials))
	for _, t := range r.WebsiteData.Testimonials {
		testimonials = append(testimonials, domain.Testimonial{
			Name:   t.Name,
			Result: t.Result,
			Quote:  t.Quote,
		})
	}

	return &domain.BusinessBlueprint{
		BusinessName:      r.BusinessName,
		Niche:             r.Niche,
		TargetAudience:    r.TargetAudience,
		Mission:           r.Mission,
		SuggestedPrograms: r.SuggestedPrograms,
		WebsiteData: domain.WebsiteData{
			HeroHeadline: r.WebsiteData.HeroHeadline,
			HeroSubhead:  r.WebsiteData.HeroSubhead,
			CTAText:      r.WebsiteData.CTAText,
			Features:     r.WebsiteData.Features,
			Pricing:      pricing,
			Testimonials: testimonials,
		},
		ContentPlan: toPosts(r.ContentPlan),
	}
}

func toPosts(responses []contentaiclient.PostResponse) []domain.SocialPost {
	posts := make([]domain.SocialPost, 0, len(responses))
	for _, r := range responses {
		post := domain.SocialPost{
			Day:  r.Day,
			Hook: r.Hook,
			Body: r.Body,
			CTA:  r.CTA,
			Type: domain.PostType(r.Type),
		}
		post.Normalize()
		posts = append(posts, post)
	}

	return posts
}
