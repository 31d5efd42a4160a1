package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"github.com/coachos/coach-os-api/infrastructure/database/postgres"
	"github.com/coachos/coach-os-api/infrastructure/realtime"
	"github.com/coachos/coach-os-api/internal/domain"
)

const socialPostsTable = "social_posts"

type SocialPostRepository interface {
	ListByUser(userID int) ([]domain.SocialPost, error)
	Create(userID int, post domain.SocialPost) (*domain.SocialPost, error)
	BulkCreate(userID int, posts []domain.SocialPost) ([]domain.SocialPost, error)
	Update(userID int, postID string, updates domain.UpdateSocialPostRequest) (*domain.SocialPost, error)
	Delete(userID int, postID string) error
	DeleteAll(userID int) error
}

type socialPostRepository struct {
	conn *postgres.Connection
	bus  *realtime.Bus
}

func NewSocialPostRepository(conn *postgres.Connection, bus *realtime.Bus) SocialPostRepository {
	return &socialPostRepository{
		conn: conn,
		bus:  bus,
	}
}

// ListByUser retorna o plano de conteúdo ordenado por dia crescente.
func (r *socialPostRepository) ListByUser(userID int) ([]domain.SocialPost, error) {
	postsSQL, postsArgs, err := squirrel.
		Select("id", "day", "hook", "body", "cta", "type", "status").
		From(socialPostsTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("day ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, storageError(err)
	}

	rows, err := r.conn.Query(postsSQL, postsArgs...)
	if err != nil {
		return nil, storageError(err)
	}
	defer rows.Close()

	posts := make([]domain.SocialPost, 0)
	for rows.Next() {
		post, err := scanSocialPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}

	if err := rows.Err(); err != nil {
		return nil, storageError(err)
	}

	return posts, nil
}

func (r *socialPostRepository) Create(userID int, post domain.SocialPost) (*domain.SocialPost, error) {
	post.Normalize()

	postsSQL, postsArgs, err := squirrel.
		Insert(socialPostsTable).
		Columns("user_id", "day", "hook", "body", "cta", "type", "status").
		Values(userID, post.Day, post.Hook, post.Body, post.CTA, post.Type, post.Status).
		Suffix("RETURNING id, day, hook, body, cta, type, status").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, storageError(err)
	}

	created, err := scanSocialPost(r.conn.QueryRow(postsSQL, postsArgs...))
	if err != nil {
		return nil, err
	}

	r.notify("INSERT")
	return created, nil
}

// BulkCreate insere o plano inteiro em uma única instrução. Usado no
// onboarding e na regeneração de conteúdo.
func (r *socialPostRepository) BulkCreate(userID int, posts []domain.SocialPost) ([]domain.SocialPost, error) {
	if len(posts) == 0 {
		return []domain.SocialPost{}, nil
	}

	queryBuilder := squirrel.
		Insert(socialPostsTable).
		Columns("user_id", "day", "hook", "body", "cta", "type", "status")

	for i := range posts {
		posts[i].Normalize()
		queryBuilder = queryBuilder.Values(
			userID, posts[i].Day, posts[i].Hook, posts[i].Body, posts[i].CTA, posts[i].Type, posts[i].Status,
		)
	}

	postsSQL, postsArgs, err := queryBuilder.
		Suffix("RETURNING id, day, hook, body, cta, type, status").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, storageError(err)
	}

	rows, err := r.conn.Query(postsSQL, postsArgs...)
	if err != nil {
		return nil, storageError(err)
	}
	defer rows.Close()

	created := make([]domain.SocialPost, 0, len(posts))
	for rows.Next() {
		post, err := scanSocialPost(rows)
		if err != nil {
			return nil, err
		}
		created = append(created, *post)
	}

	if err := rows.Err(); err != nil {
		return nil, storageError(err)
	}

	r.notify("INSERT")
	return created, nil
}

func (r *socialPostRepository) Update(userID int, postID string, updates domain.UpdateSocialPostRequest) (*domain.SocialPost, error) {
	queryBuilder := squirrel.
		Update(socialPostsTable).
		Where(squirrel.Eq{"id": postID, "user_id": userID})

	if updates.Day != nil {
		queryBuilder = queryBuilder.Set("day", *updates.Day)
	}
	if updates.Hook != nil {
		queryBuilder = queryBuilder.Set("hook", *updates.Hook)
	}
	if updates.Body != nil {
		queryBuilder = queryBuilder.Set("body", *updates.Body)
	}
	if updates.CTA != nil {
		queryBuilder = queryBuilder.Set("cta", *updates.CTA)
	}
	if updates.Type != nil {
		queryBuilder = queryBuilder.Set("type", *updates.Type)
	}
	if updates.Status != nil {
		queryBuilder = queryBuilder.Set("status", *updates.Status)
	}

	postsSQL, postsArgs, err := queryBuilder.
		Suffix("RETURNING id, day, hook, body, cta, type, status").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, storageError(err)
	}

	updated, err := scanSocialPost(r.conn.QueryRow(postsSQL, postsArgs...))
	if err != nil {
		return nil, err
	}

	r.notify("UPDATE")
	return updated, nil
}

func (r *socialPostRepository) Delete(userID int, postID string) error {
	postsSQL, postsArgs, err := squirrel.
		Delete(socialPostsTable).
		Where(squirrel.Eq{"id": postID, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return storageError(err)
	}

	if _, err := r.conn.Exec(postsSQL, postsArgs...); err != nil {
		return storageError(err)
	}

	r.notify("DELETE")
	return nil
}

// DeleteAll remove todos os posts da conta. Precede a recriação em massa na
// regeneração do plano de conteúdo.
func (r *socialPostRepository) DeleteAll(userID int) error {
	postsSQL, postsArgs, err := squirrel.
		Delete(socialPostsTable).
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return storageError(err)
	}

	if _, err := r.conn.Exec(postsSQL, postsArgs...); err != nil {
		return storageError(err)
	}

	r.notify("DELETE")
	return nil
}

func (r *socialPostRepository) notify(event string) {
	if r.bus != nil {
		r.bus.NotifyChange(context.Background(), socialPostsTable, event)
	}
}

func scanSocialPost(row rowScanner) (*domain.SocialPost, error) {
	var post domain.SocialPost

	err := row.Scan(
		&post.ID,
		&post.Day,
		&post.Hook,
		&post.Body,
		&post.CTA,
		&post.Type,
		&post.Status,
	)
	if err == sql.ErrNoRows {
		return nil, storageError(err)
	}
	if err != nil {
		return nil, decodeError(err)
	}

	return &post, nil
}
