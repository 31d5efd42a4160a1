package domain

type PostType string

const (
	PostTypeVideo    PostType = "Video"
	PostTypeImage    PostType = "Image"
	PostTypeCarousel PostType = "Carousel"
	PostTypeText     PostType = "Text"
)

type PostStatus string

const (
	PostStatusDraft     PostStatus = "Draft"
	PostStatusScheduled PostStatus = "Scheduled"
	PostStatusPublished PostStatus = "Published"
)

// SocialPost é uma entrada do calendário de conteúdo. A coleção de posts
// de uma conta forma o plano de conteúdo do blueprint.
type SocialPost struct {
	ID     string     `json:"id"`
	Day    int        `json:"day"`
	Hook   string     `json:"hook"`
	Body   string     `json:"body"`
	CTA    string     `json:"cta"`
	Type   PostType   `json:"type"`
	Status PostStatus `json:"status"`
}

type UpdateSocialPostRequest struct {
	Day    *int        `json:"day"`
	Hook   *string     `json:"hook"`
	Body   *string     `json:"body"`
	CTA    *string     `json:"cta"`
	Type   *PostType   `json:"type"`
	Status *PostStatus `json:"status"`
}

// Normalize aplica os defaults de domínio antes da persistência.
func (p *SocialPost) Normalize() {
	if p.Status == "" {
		p.Status = PostStatusDraft
	}
	if p.Day < 1 {
		p.Day = 1
	}
}
