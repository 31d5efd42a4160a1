package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"github.com/coachos/coach-os-api/infrastructure/database/postgres"
	"github.com/coachos/coach-os-api/infrastructure/realtime"
	"github.com/coachos/coach-os-api/internal/domain"
)

const blueprintsTable = "business_blueprints"

type BlueprintRepository interface {
	Get(userID int) (*domain.BusinessBlueprint, error)
	Upsert(userID int, blueprint domain.BusinessBlueprint) (*domain.BusinessBlueprint, error)
}

type blueprintRepository struct {
	conn *postgres.Connection
	bus  *realtime.Bus
}

func NewBlueprintRepository(conn *postgres.Connection, bus *realtime.Bus) BlueprintRepository {
	return &blueprintRepository{
		conn: conn,
		bus:  bus,
	}
}

// Get retorna o blueprint da conta ou nil quando o onboarding ainda não foi
// concluído. O plano de conteúdo não vem daqui: é carregado dos posts.
func (r *blueprintRepository) Get(userID int) (*domain.BusinessBlueprint, error) {
	blueprintSQL, blueprintArgs, err := squirrel.
		Select("business_name", "niche", "target_audience", "mission", "website_data", "suggested_programs").
		From(blueprintsTable).
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, storageError(err)
	}

	var blueprint domain.BusinessBlueprint
	var websiteData, suggestedPrograms []byte

	err = r.conn.QueryRow(blueprintSQL, blueprintArgs...).Scan(
		&blueprint.BusinessName,
		&blueprint.Niche,
		&blueprint.TargetAudience,
		&blueprint.Mission,
		&websiteData,
		&suggestedPrograms,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storageError(err)
	}

	if err := json.Unmarshal(websiteData, &blueprint.WebsiteData); err != nil {
		return nil, decodeError(err)
	}
	if err := json.Unmarshal(suggestedPrograms, &blueprint.SuggestedPrograms); err != nil {
		return nil, decodeError(err)
	}

	return &blueprint, nil
}

// Upsert cria ou substitui o blueprint da conta. Nunca há mais de um
// registro por usuário.
func (r *blueprintRepository) Upsert(userID int, blueprint domain.BusinessBlueprint) (*domain.BusinessBlueprint, error) {
	websiteData, err := json.Marshal(blueprint.WebsiteData)
	if err != nil {
		return nil, decodeError(err)
	}

	suggestedPrograms, err := json.Marshal(blueprint.SuggestedPrograms)
	if err != nil {
		return nil, decodeError(err)
	}

	blueprintSQL, blueprintArgs, err := squirrel.
		Insert(blueprintsTable).
		Columns("user_id", "business_name", "niche", "target_audience", "mission", "website_data", "suggested_programs").
		Values(userID, blueprint.BusinessName, blueprint.Niche, blueprint.TargetAudience, blueprint.Mission, websiteData, suggestedPrograms).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			business_name = EXCLUDED.business_name,
			niche = EXCLUDED.niche,
			target_audience = EXCLUDED.target_audience,
			mission = EXCLUDED.mission,
			website_data = EXCLUDED.website_data,
			suggested_programs = EXCLUDED.suggested_programs,
			updated_at = now()`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, storageError(err)
	}

	if _, err := r.conn.Exec(blueprintSQL, blueprintArgs...); err != nil {
		return nil, storageError(err)
	}

	r.notify("UPSERT")

	saved := blueprint
	return &saved, nil
}

func (r *blueprintRepository) notify(event string) {
	if r.bus != nil {
		r.bus.NotifyChange(context.Background(), blueprintsTable, event)
	}
}
