package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/coachos/coach-os-api/internal/domain"
	"github.com/coachos/coach-os-api/internal/usecases/syncing"
	"github.com/coachos/coach-os-api/pkg/apiErrors"
)

// ListPosts devolve o plano de conteúdo ordenado por dia.
func ListPosts(registry *syncing.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orchestrator, ok := sessionFrom(w, r, registry)
		if !ok {
			return
		}

		posts := []domain.SocialPost{}
		if blueprint := orchestrator.Snapshot().Data.Blueprint; blueprint != nil {
			posts = blueprint.ContentPlan
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(posts)
	}
}

func CreatePost(registry *syncing.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orchestrator, ok := sessionFrom(w, r, registry)
		if !ok {
			return
		}

		var post domain.SocialPost
		if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		created, err := orchestrator.AddSocialPost(post)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao realizar operação de armazenamento", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

func UpdatePost(registry *syncing.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orchestrator, ok := sessionFrom(w, r, registry)
		if !ok {
			return
		}

		postID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var updates domain.UpdateSocialPostRequest
		if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		updated, err := orchestrator.UpdateSocialPost(postID, updates)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao realizar operação de armazenamento", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(updated)
	}
}

func DeletePost(registry *syncing.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orchestrator, ok := sessionFrom(w, r, registry)
		if !ok {
			return
		}

		postID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := orchestrator.DeleteSocialPost(postID); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao realizar operação de armazenamento", nil)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// ReplaceContentPlan troca o plano de conteúdo inteiro pelo enviado.
func ReplaceContentPlan(registry *syncing.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orchestrator, ok := sessionFrom(w, r, registry)
		if !ok {
			return
		}

		var posts []domain.SocialPost
		if err := json.NewDecoder(r.Body).Decode(&posts); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		created, err := orchestrator.UpdateContentPlan(posts)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao realizar operação de armazenamento", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(created)
	}
}

// RegenerateContent gera um plano novo para o nicho corrente e substitui
// o existente.
func RegenerateContent(registry *syncing.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orchestrator, ok := sessionFrom(w, r, registry)
		if !ok {
			return
		}

		created, err := orchestrator.RegenerateContent()
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao realizar operação de armazenamento", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(created)
	}
}
