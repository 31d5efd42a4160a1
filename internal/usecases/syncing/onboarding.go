package syncing

import (
	"time"

	"github.com/coachos/coach-os-api/internal/domain"
	"github.com/coachos/coach-os-api/pkg/utils"
)

// GenerateBlueprint produz o material do onboarding a partir da descrição
// do negócio. Não altera estado: o resultado só é persistido quando o
// usuário confirma via CompleteOnboarding.
func (o *Orchestrator) GenerateBlueprint(description string) *domain.BusinessBlueprint {
	return o.deps.Generator.GenerateBlueprint(description)
}

// CompleteOnboarding persiste o blueprint confirmado, o plano de conteúdo
// inicial, o lead de exemplo e as automações padrão, e só então transiciona
// a sessão para Ready. Qualquer falha antes disso é notificada e a sessão
// permanece em NotOnboarded.
func (o *Orchestrator) CompleteOnboarding(blueprint domain.BusinessBlueprint) error {
	initialClient := domain.Client{
		Name:        "Example Lead",
		Email:       "lead@example.com",
		Status:      domain.ClientStatusLead,
		Program:     "Interest",
		JoinDate:    utils.Today(),
		LastCheckIn: "N/A",
		Progress:    0,
	}

	if o.remote() {
		if err := o.completeRemote(blueprint, initialClient); err != nil {
			o.deps.Notifier.Error("Failed to complete onboarding")
			return err
		}
	} else {
		if err := o.completeLocal(blueprint, initialClient); err != nil {
			o.deps.Notifier.Error("Failed to complete onboarding")
			return err
		}
	}

	o.deps.Notifier.Success("Business initialized successfully!")
	return nil
}

func (o *Orchestrator) completeRemote(blueprint domain.BusinessBlueprint, initialClient domain.Client) error {
	saved, err := o.deps.Blueprints.Upsert(o.userID, blueprint)
	if err != nil {
		return err
	}

	var plan []domain.SocialPost
	if len(blueprint.ContentPlan) > 0 {
		plan, err = o.deps.Posts.BulkCreate(o.userID, blueprint.ContentPlan)
		if err != nil {
			return err
		}
	}

	createdClient, err := o.deps.Clients.Create(o.userID, initialClient)
	if err != nil {
		return err
	}

	return o.applyWait(func(s *sessionState) error {
		saved.ContentPlan = plan
		s.data.Blueprint = saved
		s.data.Clients = append([]domain.Client{*createdClient}, s.data.Clients...)
		s.phase = PhaseReady
		return nil
	})
}

func (o *Orchestrator) completeLocal(blueprint domain.BusinessBlueprint, initialClient domain.Client) error {
	for i := range blueprint.ContentPlan {
		if blueprint.ContentPlan[i].ID == "" {
			blueprint.ContentPlan[i].ID = newLocalID()
		}
		blueprint.ContentPlan[i].Normalize()
	}

	initialClient.ID = newLocalID()
	initialClient.CreatedAt = time.Now().UTC()
	initialClient.Normalize()

	return o.applyWait(func(s *sessionState) error {
		tentative := s.data.Clone()
		tentative.Blueprint = &blueprint
		tentative.Clients = append([]domain.Client{initialClient}, tentative.Clients...)

		if len(tentative.Automations) == 0 {
			for _, automation := range domain.DefaultAutomations() {
				automation.ID = newLocalID()
				tentative.Automations = append(tentative.Automations, automation)
			}
		}

		if !o.deps.Local.SaveProject(tentative) {
			return errLocalSave
		}

		s.data = tentative
		s.phase = PhaseReady
		return nil
	})
}
