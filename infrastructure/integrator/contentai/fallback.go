package contentai

import "github.com/coachos/coach-os-api/internal/domain"

// FallbackBlueprint devolve o negócio de demonstração usado quando o serviço
// de geração está indisponível ou sem chave configurada. O app continua
// utilizável de ponta a ponta com esse conteúdo.
func FallbackBlueprint() *domain.BusinessBlueprint {
	return &domain.BusinessBlueprint{
		BusinessName:      "IronWill Fitness (Demo Mode)",
		Niche:             "Strength Training for Busy Dads",
		TargetAudience:    "Fathers over 30 who want to reclaim their athleticism",
		Mission:           "To help 10,000 dads get strong and pain-free.",
		SuggestedPrograms: []string{"DadBod Destroyer", "Mobility Mastery", "Elite Dad Coaching"},
		WebsiteData: domain.WebsiteData{
			HeroHeadline: "Reclaim Your Prime Years",
			HeroSubhead:  "The premier strength system designed specifically for busy fathers. Get strong, lose fat, and have energy for your kids.",
			CTAText:      "Start Your Transformation",
			Features:     []string{"30-Minute Workouts", "Custom Nutrition Plan", "24/7 Coach Access"},
			Pricing: []domain.PricingTier{
				{Name: "Basic", Price: "$97/mo", Features: []string{"App Access", "Community"}},
				{Name: "Pro", Price: "$297/mo", Features: []string{"Weekly Check-in", "Form Review"}},
			},
			Testimonials: []domain.Testimonial{
				{Name: "Mike T.", Result: "Lost 20lbs", Quote: "I feel 10 years younger."},
			},
		},
		ContentPlan: []domain.SocialPost{
			{Day: 1, Hook: "Stop doing crunches.", Body: "They won't fix your belly.", CTA: "DM 'CORE' for my guide", Type: domain.PostTypeVideo, Status: domain.PostStatusDraft},
			{Day: 2, Hook: "The dad breakfast hack.", Body: "High protein, low time.", CTA: "Comment 'RECIPE'", Type: domain.PostTypeImage, Status: domain.PostStatusDraft},
		},
	}
}
