package contentai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/coachos/coach-os-api/infrastructure/integrator/contentai/contentaiclient"
	"github.com/coachos/coach-os-api/infrastructure/integrator/contentai/contentaiclient/mocks"
	"github.com/coachos/coach-os-api/internal/domain"
)

func TestService_GenerateBlueprint(t *testing.T) {
	t.Run("Resposta do serviço é mapeada para o domínio", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)
		service := NewService(client)

		response := &contentaiclient.BlueprintResponse{
			BusinessName:      "Peak Performance Coaching",
			Niche:             "Endurance",
			TargetAudience:    "Amateur runners",
			Mission:           "Faster marathons",
			SuggestedPrograms: []string{"Base Builder"},
			ContentPlan: []contentaiclient.PostResponse{
				{Day: 1, Hook: "Hook", Body: "Body", CTA: "CTA", Type: "Video"},
			},
		}
		response.WebsiteData.HeroHeadline = "Run Further"

		client.EXPECT().GenerateBlueprint("coaching de corrida").Return(response, nil)

		blueprint := service.GenerateBlueprint("coaching de corrida")
		require.NotNil(t, blueprint)
		assert.Equal(t, "Peak Performance Coaching", blueprint.BusinessName)
		assert.Equal(t, "Run Further", blueprint.WebsiteData.HeroHeadline)
		require.Len(t, blueprint.ContentPlan, 1)
		assert.Equal(t, domain.PostTypeVideo, blueprint.ContentPlan[0].Type)
		assert.Equal(t, domain.PostStatusDraft, blueprint.ContentPlan[0].Status)
	})

	t.Run("Falha do serviço cai no conteúdo de demonstração", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)
		service := NewService(client)

		client.EXPECT().GenerateBlueprint(gomock.Any()).Return(nil, assert.AnError)

		blueprint := service.GenerateBlueprint("qualquer coisa")
		require.NotNil(t, blueprint)
		assert.Equal(t, "IronWill Fitness (Demo Mode)", blueprint.BusinessName)
		assert.Equal(t, "Strength Training for Busy Dads", blueprint.Niche)
		assert.Len(t, blueprint.ContentPlan, 2)
	})
}

func TestService_GenerateContentPlan(t *testing.T) {
	t.Run("Posts gerados são normalizados", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)
		service := NewService(client)

		client.EXPECT().GenerateContentPlan("Endurance").Return([]contentaiclient.PostResponse{
			{Day: 1, Hook: "Hook", Type: "Carousel"},
			{Day: 2, Hook: "Outro", Type: ""},
		}, nil)

		posts := service.GenerateContentPlan("Endurance")
		require.Len(t, posts, 2)
		assert.Equal(t, domain.PostTypeCarousel, posts[0].Type)
		assert.Equal(t, domain.PostStatusDraft, posts[0].Status)
	})

	t.Run("Falha do serviço devolve o plano de demonstração", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		client := mocks.NewMockClient(ctrl)
		service := NewService(client)

		client.EXPECT().GenerateContentPlan(gomock.Any()).Return(nil, assert.AnError)

		posts := service.GenerateContentPlan("Endurance")
		require.Len(t, posts, 2)
		assert.Equal(t, "Stop doing crunches.", posts[0].Hook)
	})
}

func TestFallbackBlueprint(t *testing.T) {
	blueprint := FallbackBlueprint()

	assert.Equal(t, "IronWill Fitness (Demo Mode)", blueprint.BusinessName)
	assert.Equal(t, []string{"DadBod Destroyer", "Mobility Mastery", "Elite Dad Coaching"}, blueprint.SuggestedPrograms)
	require.Len(t, blueprint.WebsiteData.Pricing, 2)
	assert.Equal(t, "$97/mo", blueprint.WebsiteData.Pricing[0].Price)
	assert.Equal(t, "$297/mo", blueprint.WebsiteData.Pricing[1].Price)
	require.Len(t, blueprint.WebsiteData.Testimonials, 1)
	assert.Equal(t, "Mike T.", blueprint.WebsiteData.Testimonials[0].Name)
	assert.Len(t, blueprint.ContentPlan, 2)
}
