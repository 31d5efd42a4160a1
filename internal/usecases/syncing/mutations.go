package syncing

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/coachos/coach-os-api/internal/domain"
	"github.com/coachos/coach-os-api/pkg/utils"
)

var (
	errLocalSave    = errors.New("falha ao gravar o projeto local")
	errNotFound     = errors.New("registro não encontrado")
	errNotOnboarded = errors.New("onboarding ainda não concluído")
)

func newLocalID() string {
	return uuid.NewString()
}

// localMutate executa uma mutação em duas fases contra o armazenamento
// local: aplica sobre uma cópia tentativa, grava, e só então efetiva.
// Uma falha de gravação descarta a tentativa e deixa o estado intacto.
func (o *Orchestrator) localMutate(fn func(*domain.ProjectData) error) error {
	return o.applyWait(func(s *sessionState) error {
		tentative := s.data.Clone()
		if err := fn(&tentative); err != nil {
			return err
		}

		if !o.deps.Local.SaveProject(tentative) {
			return errLocalSave
		}

		s.data = tentative
		return nil
	})
}

// --- Clientes ---

func (o *Orchestrator) createClient(client domain.Client) (*domain.Client, error) {
	if client.JoinDate == "" {
		client.JoinDate = utils.Today()
	} else if _, err := utils.ParseDate(client.JoinDate); err != nil {
		return nil, err
	}

	if o.remote() {
		created, err := o.deps.Clients.Create(o.userID, client)
		if err != nil {
			return nil, err
		}

		err = o.applyWait(func(s *sessionState) error {
			s.data.Clients = append([]domain.Client{*created}, s.data.Clients...)
			return nil
		})
		return created, err
	}

	client.ID = newLocalID()
	client.CreatedAt = time.Now().UTC()
	client.Normalize()

	err := o.localMutate(func(data *domain.ProjectData) error {
		data.Clients = append([]domain.Client{client}, data.Clients...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &client, nil
}

func (o *Orchestrator) AddClient(client domain.Client) (*domain.Client, error) {
	created, err := o.createClient(client)
	if err != nil {
		o.deps.Notifier.Error("Failed to add client")
		return nil, err
	}

	o.deps.Notifier.Success("Client added successfully")
	return created, nil
}

// CaptureLead registra um lead vindo do formulário do site publicado.
func (o *Orchestrator) CaptureLead(email string) (*domain.Client, error) {
	created, err := o.createClient(domain.Client{
		Name:        "Website Lead",
		Email:       email,
		Status:      domain.ClientStatusLead,
		Program:     "Waitlist",
		LastCheckIn: "Never",
		Progress:    0,
	})
	if err != nil {
		o.deps.Notifier.Error("Failed to capture lead")
		return nil, err
	}

	o.deps.Notifier.Success("New lead captured from website!")
	return created, nil
}

func (o *Orchestrator) UpdateClient(clientID string, updates domain.UpdateClientRequest) (*domain.Client, error) {
	if o.remote() {
		updated, err := o.deps.Clients.Update(o.userID, clientID, updates)
		if err != nil {
			o.deps.Notifier.Error("Failed to update client")
			return nil, err
		}

		if err := o.applyWait(func(s *sessionState) error {
			for i := range s.data.Clients {
				if s.data.Clients[i].ID == clientID {
					s.data.Clients[i] = *updated
					break
				}
			}
			return nil
		}); err != nil {
			return nil, err
		}

		o.deps.Notifier.Success("Client updated")
		return updated, nil
	}

	var updated domain.Client
	err := o.localMutate(func(data *domain.ProjectData) error {
		for i := range data.Clients {
			if data.Clients[i].ID != clientID {
				continue
			}

			applyClientUpdates(&data.Clients[i], updates)
			updated = data.Clients[i]
			return nil
		}
		return errNotFound
	})
	if err != nil {
		o.deps.Notifier.Error("Failed to update client")
		return nil, err
	}

	o.deps.Notifier.Success("Client updated")
	return &updated, nil
}

func applyClientUpdates(client *domain.Client, updates domain.UpdateClientRequest) {
	if updates.Name != nil {
		client.Name = *updates.Name
	}
	if updates.Email != nil {
		client.Email = *updates.Email
	}
	if updates.Status != nil {
		client.Status = *updates.Status
	}
	if updates.Program != nil {
		client.Program = *updates.Program
	}
	if updates.JoinDate != nil {
		client.JoinDate = *updates.JoinDate
	}
	if updates.LastCheckIn != nil {
		client.LastCheckIn = *updates.LastCheckIn
	}
	if updates.Progress != nil {
		client.Progress = domain.ClampProgress(*updates.Progress)
	}
	client.UpdatedAt = time.Now().UTC()
}

func (o *Orchestrator) DeleteClient(clientID string) error {
	if o.remote() {
		if err := o.deps.Clients.Delete(o.userID, clientID); err != nil {
			o.deps.Notifier.Error("Failed to delete client")
			return err
		}

		if err := o.applyWait(func(s *sessionState) error {
			for i := range s.data.Clients {
				if s.data.Clients[i].ID == clientID {
					s.data.Clients = append(s.data.Clients[:i], s.data.Clients[i+1:]...)
					break
				}
			}
			return nil
		}); err != nil {
			return err
		}

		o.deps.Notifier.Success("Client removed")
		return nil
	}

	err := o.localMutate(func(data *domain.ProjectData) error {
		for i := range data.Clients {
			if data.Clients[i].ID == clientID {
				data.Clients = append(data.Clients[:i], data.Clients[i+1:]...)
				return nil
			}
		}
		return errNotFound
	})
	if err != nil {
		o.deps.Notifier.Error("Failed to delete client")
		return err
	}

	o.deps.Notifier.Success("Client removed")
	return nil
}

// --- Blueprint ---

// UpdateBlueprint aplica uma atualização parcial sobre o blueprint corrente
// e regrava o registro inteiro (semântica de upsert singleton).
func (o *Orchestrator) UpdateBlueprint(updates domain.UpdateBlueprintRequest) error {
	snapshot := o.Snapshot()
	if snapshot.Data.Blueprint == nil {
		o.deps.Notifier.Error("Failed to save changes")
		return errNotOnboarded
	}

	merged := *snapshot.Data.Blueprint
	applyBlueprintUpdates(&merged, updates)

	if o.remote() {
		saved, err := o.deps.Blueprints.Upsert(o.userID, merged)
		if err != nil {
			o.deps.Notifier.Error("Failed to save changes")
			return err
		}

		if err := o.applyWait(func(s *sessionState) error {
			saved.ContentPlan = merged.ContentPlan
			s.data.Blueprint = saved
			return nil
		}); err != nil {
			return err
		}

		o.deps.Notifier.Success("Changes saved successfully")
		return nil
	}

	err := o.localMutate(func(data *domain.ProjectData) error {
		data.Blueprint = &merged
		return nil
	})
	if err != nil {
		o.deps.Notifier.Error("Failed to save changes")
		return err
	}

	o.deps.Notifier.Success("Changes saved successfully")
	return nil
}

func applyBlueprintUpdates(blueprint *domain.BusinessBlueprint, updates domain.UpdateBlueprintRequest) {
	if updates.BusinessName != nil {
		blueprint.BusinessName = *updates.BusinessName
	}
	if updates.Niche != nil {
		blueprint.Niche = *updates.Niche
	}
	if updates.TargetAudience != nil {
		blueprint.TargetAudience = *updates.TargetAudience
	}
	if updates.Mission != nil {
		blueprint.Mission = *updates.Mission
	}
	if updates.WebsiteData != nil {
		blueprint.WebsiteData = *updates.WebsiteData
	}
	if updates.SuggestedPrograms != nil {
		blueprint.SuggestedPrograms = *updates.SuggestedPrograms
	}
}

// --- Plano de conteúdo ---

// replaceContentPlan troca o plano inteiro: apaga todos os posts e recria
// a partir da lista recebida.
func (o *Orchestrator) replaceContentPlan(posts []domain.SocialPost) ([]domain.SocialPost, error) {
	if o.remote() {
		if err := o.deps.Posts.DeleteAll(o.userID); err != nil {
			return nil, err
		}

		var created []domain.SocialPost
		if len(posts) > 0 {
			var err error
			created, err = o.deps.Posts.BulkCreate(o.userID, posts)
			if err != nil {
				// O plano antigo já foi removido: relê para o estado refletir
				// o que de fato está no banco.
				o.refreshPosts()
				return nil, err
			}
		}

		if err := o.applyWait(func(s *sessionState) error {
			if s.data.Blueprint != nil {
				s.data.Blueprint.ContentPlan = created
			}
			return nil
		}); err != nil {
			return nil, err
		}

		return created, nil
	}

	for i := range posts {
		if posts[i].ID == "" {
			posts[i].ID = newLocalID()
		}
		posts[i].Normalize()
	}

	err := o.localMutate(func(data *domain.ProjectData) error {
		if data.Blueprint == nil {
			return errNotOnboarded
		}
		data.Blueprint.ContentPlan = posts
		return nil
	})
	if err != nil {
		return nil, err
	}

	return posts, nil
}

func (o *Orchestrator) UpdateContentPlan(posts []domain.SocialPost) ([]domain.SocialPost, error) {
	created, err := o.replaceContentPlan(posts)
	if err != nil {
		o.deps.Notifier.Error("Failed to update content plan")
		return nil, err
	}

	o.deps.Notifier.Success("Content plan updated")
	return created, nil
}

// RegenerateContent pede um plano novo ao serviço generativo para o nicho
// corrente e substitui o plano existente.
func (o *Orchestrator) RegenerateContent() ([]domain.SocialPost, error) {
	snapshot := o.Snapshot()
	if snapshot.Data.Blueprint == nil {
		o.deps.Notifier.Error("Failed to regenerate content")
		return nil, errNotOnboarded
	}

	plan := o.deps.Generator.GenerateContentPlan(snapshot.Data.Blueprint.Niche)

	created, err := o.replaceContentPlan(plan)
	if err != nil {
		o.deps.Notifier.Error("Failed to regenerate content")
		return nil, err
	}

	o.deps.Notifier.Success("Content plan refreshed")
	return created, nil
}

func (o *Orchestrator) AddSocialPost(post domain.SocialPost) (*domain.SocialPost, error) {
	if o.remote() {
		created, err := o.deps.Posts.Create(o.userID, post)
		if err != nil {
			o.deps.Notifier.Error("Failed to add post")
			return nil, err
		}

		if err := o.applyWait(func(s *sessionState) error {
			if s.data.Blueprint != nil {
				s.data.Blueprint.ContentPlan = insertPostByDay(s.data.Blueprint.ContentPlan, *created)
			}
			return nil
		}); err != nil {
			return nil, err
		}

		o.deps.Notifier.Success("Post added")
		return created, nil
	}

	post.ID = newLocalID()
	post.Normalize()

	err := o.localMutate(func(data *domain.ProjectData) error {
		if data.Blueprint == nil {
			return errNotOnboarded
		}
		data.Blueprint.ContentPlan = insertPostByDay(data.Blueprint.ContentPlan, post)
		return nil
	})
	if err != nil {
		o.deps.Notifier.Error("Failed to add post")
		return nil, err
	}

	o.deps.Notifier.Success("Post added")
	return &post, nil
}

// insertPostByDay mantém o plano ordenado por dia ao inserir.
func insertPostByDay(plan []domain.SocialPost, post domain.SocialPost) []domain.SocialPost {
	for i := range plan {
		if post.Day < plan[i].Day {
			out := append([]domain.SocialPost{}, plan[:i]...)
			out = append(out, post)
			return append(out, plan[i:]...)
		}
	}
	return append(plan, post)
}

func (o *Orchestrator) UpdateSocialPost(postID string, updates domain.UpdateSocialPostRequest) (*domain.SocialPost, error) {
	if o.remote() {
		updated, err := o.deps.Posts.Update(o.userID, postID, updates)
		if err != nil {
			o.deps.Notifier.Error("Failed to update post")
			return nil, err
		}

		if err := o.applyWait(func(s *sessionState) error {
			if s.data.Blueprint == nil {
				return nil
			}
			for i := range s.data.Blueprint.ContentPlan {
				if s.data.Blueprint.ContentPlan[i].ID == postID {
					s.data.Blueprint.ContentPlan[i] = *updated
					break
				}
			}
			return nil
		}); err != nil {
			return nil, err
		}

		o.deps.Notifier.Success("Post updated")
		return updated, nil
	}

	var updated domain.SocialPost
	err := o.localMutate(func(data *domain.ProjectData) error {
		if data.Blueprint == nil {
			return errNotOnboarded
		}
		for i := range data.Blueprint.ContentPlan {
			if data.Blueprint.ContentPlan[i].ID != postID {
				continue
			}

			applyPostUpdates(&data.Blueprint.ContentPlan[i], updates)
			updated = data.Blueprint.ContentPlan[i]
			return nil
		}
		return errNotFound
	})
	if err != nil {
		o.deps.Notifier.Error("Failed to update post")
		return nil, err
	}

	o.deps.Notifier.Success("Post updated")
	return &updated, nil
}

func applyPostUpdates(post *domain.SocialPost, updates domain.UpdateSocialPostRequest) {
	if updates.Day != nil {
		post.Day = *updates.Day
	}
	if updates.Hook != nil {
		post.Hook = *updates.Hook
	}
	if updates.Body != nil {
		post.Body = *updates.Body
	}
	if updates.CTA != nil {
		post.CTA = *updates.CTA
	}
	if updates.Type != nil {
		post.Type = *updates.Type
	}
	if updates.Status != nil {
		post.Status = *updates.Status
	}
	post.Normalize()
}

func (o *Orchestrator) DeleteSocialPost(postID string) error {
	if o.remote() {
		if err := o.deps.Posts.Delete(o.userID, postID); err != nil {
			o.deps.Notifier.Error("Failed to delete post")
			return err
		}

		if err := o.applyWait(func(s *sessionState) error {
			if s.data.Blueprint == nil {
				return nil
			}
			for i := range s.data.Blueprint.ContentPlan {
				if s.data.Blueprint.ContentPlan[i].ID == postID {
					s.data.Blueprint.ContentPlan = append(
						s.data.Blueprint.ContentPlan[:i],
						s.data.Blueprint.ContentPlan[i+1:]...)
					break
				}
			}
			return nil
		}); err != nil {
			return err
		}

		o.deps.Notifier.Success("Post removed")
		return nil
	}

	err := o.localMutate(func(data *domain.ProjectData) error {
		if data.Blueprint == nil {
			return errNotOnboarded
		}
		for i := range data.Blueprint.ContentPlan {
			if data.Blueprint.ContentPlan[i].ID == postID {
				data.Blueprint.ContentPlan = append(
					data.Blueprint.ContentPlan[:i],
					data.Blueprint.ContentPlan[i+1:]...)
				return nil
			}
		}
		return errNotFound
	})
	if err != nil {
		o.deps.Notifier.Error("Failed to delete post")
		return err
	}

	o.deps.Notifier.Success("Post removed")
	return nil
}

// --- Automações ---

func (o *Orchestrator) AddAutomation(automation domain.Automation) (*domain.Automation, error) {
	if o.remote() {
		created, err := o.deps.Automations.Create(o.userID, automation)
		if err != nil {
			o.deps.Notifier.Error("Failed to add automation")
			return nil, err
		}

		if err := o.applyWait(func(s *sessionState) error {
			s.data.Automations = append([]domain.Automation{*created}, s.data.Automations...)
			return nil
		}); err != nil {
			return nil, err
		}

		o.deps.Notifier.Success("Automation created")
		return created, nil
	}

	automation.ID = newLocalID()
	automation.CreatedAt = time.Now().UTC()

	err := o.localMutate(func(data *domain.ProjectData) error {
		data.Automations = append([]domain.Automation{automation}, data.Automations...)
		return nil
	})
	if err != nil {
		o.deps.Notifier.Error("Failed to add automation")
		return nil, err
	}

	o.deps.Notifier.Success("Automation created")
	return &automation, nil
}

// ToggleAutomation alterna o status entre Active e Paused.
func (o *Orchestrator) ToggleAutomation(automationID string) (*domain.Automation, error) {
	snapshot := o.Snapshot()

	var current *domain.Automation
	for i := range snapshot.Data.Automations {
		if snapshot.Data.Automations[i].ID == automationID {
			current = &snapshot.Data.Automations[i]
			break
		}
	}

	if current == nil {
		o.deps.Notifier.Error("Failed to update automation")
		return nil, errNotFound
	}

	status := domain.AutomationStatusActive
	if current.Status == domain.AutomationStatusActive {
		status = domain.AutomationStatusPaused
	}

	if o.remote() {
		updated, err := o.deps.Automations.Update(o.userID, automationID, domain.UpdateAutomationRequest{
			Status: &status,
		})
		if err != nil {
			o.deps.Notifier.Error("Failed to update automation")
			return nil, err
		}

		if err := o.applyWait(func(s *sessionState) error {
			for i := range s.data.Automations {
				if s.data.Automations[i].ID == automationID {
					s.data.Automations[i] = *updated
					break
				}
			}
			return nil
		}); err != nil {
			return nil, err
		}

		o.deps.Notifier.Success("Automation updated")
		return updated, nil
	}

	var updated domain.Automation
	err := o.localMutate(func(data *domain.ProjectData) error {
		for i := range data.Automations {
			if data.Automations[i].ID == automationID {
				data.Automations[i].Status = status
				updated = data.Automations[i]
				return nil
			}
		}
		return errNotFound
	})
	if err != nil {
		o.deps.Notifier.Error("Failed to update automation")
		return nil, err
	}

	o.deps.Notifier.Success("Automation updated")
	return &updated, nil
}
