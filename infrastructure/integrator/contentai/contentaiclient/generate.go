package contentaiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrMissingAPIKey indica ausência de chave configurada. O chamador cai
// direto no conteúdo de demonstração, sem tentar a rede.
var ErrMissingAPIKey = errors.New("chave da API de geração de conteúdo não configurada")

// Formas de requisição e resposta da API de geração de conteúdo. O contrato
// de resposta é imposto por um JSON Schema enviado junto com o prompt.

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string          `json:"responseMimeType"`
	ResponseSchema   json.RawMessage `json:"responseSchema"`
	Temperature      float64         `json:"temperature"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// BlueprintResponse é a forma do blueprint conforme devolvida pela API.
type BlueprintResponse struct {
	BusinessName      string              `json:"businessName"`
	Niche             string              `json:"niche"`
	TargetAudience    string              `json:"targetAudience"`
	Mission           string              `json:"mission"`
	SuggestedPrograms []string            `json:"suggestedPrograms"`
	WebsiteData       WebsiteDataResponse `json:"websiteData"`
	ContentPlan       []PostResponse      `json:"contentPlan"`
}

type WebsiteDataResponse struct {
	HeroHeadline string `json:"heroHeadline"`
	HeroSubhead  string `json:"heroSubhead"`
	CTAText      string `json:"ctaText"`
	Features     []string `json:"features"`
	Pricing      []struct {
		Name     string   `json:"name"`
		Price    string   `json:"price"`
		Features []string `json:"features"`
	} `json:"pricing"`
	Testimonials []struct {
		Name   string `json:"name"`
		Result string `json:"result"`
		Quote  string `json:"quote"`
	} `json:"testimonials"`
}

type PostResponse struct {
	Day  int    `json:"day"`
	Hook string `json:"hook"`
	Body string `json:"body"`
	CTA  string `json:"cta"`
	Type string `json:"type"`
}

const postSchema = `{
	"type": "OBJECT",
	"properties": {
		"day": {"type": "INTEGER"},
		"hook": {"type": "STRING"},
		"body": {"type": "STRING"},
		"cta": {"type": "STRING"},
		"type": {"type": "STRING", "enum": ["Video", "Image", "Carousel", "Text"]}
	}
}`

var contentPlanSchema = json.RawMessage(`{"type": "ARRAY", "items": ` + postSchema + `}`)

var blueprintSchema = json.RawMessage(`{
	"type": "OBJECT",
	"properties": {
		"businessName": {"type": "STRING", "description": "A catchy name for the fitness business"},
		"niche": {"type": "STRING", "description": "The specific fitness niche"},
		"targetAudience": {"type": "STRING", "description": "Description of the ideal client"},
		"mission": {"type": "STRING", "description": "A short mission statement"},
		"suggestedPrograms": {"type": "ARRAY", "items": {"type": "STRING"}, "description": "List of 3 program names to sell"},
		"websiteData": {
			"type": "OBJECT",
			"properties": {
				"heroHeadline": {"type": "STRING"},
				"heroSubhead": {"type": "STRING"},
				"ctaText": {"type": "STRING"},
				"features": {"type": "ARRAY", "items": {"type": "STRING"}},
				"pricing": {"type": "ARRAY", "items": {"type": "OBJECT", "properties": {
					"name": {"type": "STRING"},
					"price": {"type": "STRING"},
					"features": {"type": "ARRAY", "items": {"type": "STRING"}}
				}}},
				"testimonials": {"type": "ARRAY", "items": {"type": "OBJECT", "properties": {
					"name": {"type": "STRING"},
					"result": {"type": "STRING"},
					"quote": {"type": "STRING"}
				}}}
			}
		},
		"contentPlan": {"type": "ARRAY", "items": ` + postSchema + `, "description": "A 5-day sample content plan"}
	},
	"required": ["businessName", "niche", "websiteData", "contentPlan", "suggestedPrograms"]
}`)

// GenerateBlueprint pede um blueprint completo do negócio a partir da
// descrição do usuário.
func (c *ContentAIClient) GenerateBlueprint(description string) (*BlueprintResponse, error) {
	prompt := fmt.Sprintf(`You are an expert business consultant for Fitness Coaches.
Create a complete business blueprint (Website copy, content plan, pricing) based on this user description: %q.
Focus on high-conversion copywriting and realistic fitness programming.`, description)

	var response BlueprintResponse
	if err := c.generate(prompt, blueprintSchema, &response); err != nil {
		return nil, err
	}

	return &response, nil
}

// GenerateContentPlan pede um conjunto novo de ideias de posts para o nicho.
func (c *ContentAIClient) GenerateContentPlan(niche string) ([]PostResponse, error) {
	prompt := fmt.Sprintf(`Generate 5 fresh, viral social media post ideas for a fitness coach in the %q niche.
Focus on engagement and authority building.`, niche)

	var response []PostResponse
	if err := c.generate(prompt, contentPlanSchema, &response); err != nil {
		return nil, err
	}

	return response, nil
}

func (c *ContentAIClient) generate(prompt string, schema json.RawMessage, out interface{}) error {
	if c.config.ContentAI.APIKey == "" {
		return ErrMissingAPIKey
	}

	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	defer cancel()

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   schema,
			Temperature:      0.7,
		},
	})
	if err != nil {
		return fmt.Errorf("erro ao serializar a requisição: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent",
		c.config.ContentAI.BaseURL, c.config.ContentAI.Model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.config.ContentAI.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("requisição falhou com status: %s", resp.Status)
	}

	var generated generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&generated); err != nil {
		return fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	if len(generated.Candidates) == 0 || len(generated.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("resposta vazia do serviço de geração")
	}

	text := generated.Candidates[0].Content.Parts[0].Text
	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("erro ao decodificar o conteúdo gerado: %w", err)
	}

	return nil
}
