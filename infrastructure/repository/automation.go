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

const automationsTable = "automations"

type AutomationRepository interface {
	ListByUser(userID int) ([]domain.Automation, error)
	ListActive() (map[int][]domain.Automation, error)
	Create(userID int, automation domain.Automation) (*domain.Automation, error)
	Update(userID int, automationID string, updates domain.UpdateAutomationRequest) (*domain.Automation, error)
}

type automationRepository struct {
	conn *postgres.Connection
	bus  *realtime.Bus
}

func NewAutomationRepository(conn *postgres.Connection, bus *realtime.Bus) AutomationRepository {
	return &automationRepository{
		conn: conn,
		bus:  bus,
	}
}

// ListByUser retorna as automações da conta, da mais recente para a mais
// antiga.
func (r *automationRepository) ListByUser(userID int) ([]domain.Automation, error) {
	automationsSQL, automationsArgs, err := squirrel.
		Select("id", "name", "type", "trigger", "status", "sent_count", "opened_rate", "created_at").
		From(automationsTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, storageError(err)
	}

	rows, err := r.conn.Query(automationsSQL, automationsArgs...)
	if err != nil {
		return nil, storageError(err)
	}
	defer rows.Close()

	automations := make([]domain.Automation, 0)
	for rows.Next() {
		automation, err := scanAutomation(rows)
		if err != nil {
			return nil, err
		}
		automations = append(automations, *automation)
	}

	if err := rows.Err(); err != nil {
		return nil, storageError(err)
	}

	return automations, nil
}

// ListActive retorna as automações ativas de todas as contas, agrupadas por
// usuário. Usado pelo agendador de disparo.
func (r *automationRepository) ListActive() (map[int][]domain.Automation, error) {
	automationsSQL, automationsArgs, err := squirrel.
		Select("user_id", "id", "name", "type", "trigger", "status", "sent_count", "opened_rate", "created_at").
		From(automationsTable).
		Where(squirrel.Eq{"status": domain.AutomationStatusActive}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, storageError(err)
	}

	rows, err := r.conn.Query(automationsSQL, automationsArgs...)
	if err != nil {
		return nil, storageError(err)
	}
	defer rows.Close()

	byUser := make(map[int][]domain.Automation)
	for rows.Next() {
		var userID int
		var automation domain.Automation
		if err := rows.Scan(
			&userID,
			&automation.ID,
			&automation.Name,
			&automation.Channel,
			&automation.Trigger,
			&automation.Status,
			&automation.Stats.Sent,
			&automation.Stats.Opened,
			&automation.CreatedAt,
		); err != nil {
			return nil, decodeError(err)
		}
		byUser[userID] = append(byUser[userID], automation)
	}

	if err := rows.Err(); err != nil {
		return nil, storageError(err)
	}

	return byUser, nil
}

func (r *automationRepository) Create(userID int, automation domain.Automation) (*domain.Automation, error) {
	automationsSQL, automationsArgs, err := squirrel.
		Insert(automationsTable).
		Columns("user_id", "name", "type", "trigger", "status", "sent_count", "opened_rate").
		Values(userID, automation.Name, automation.Channel, automation.Trigger, automation.Status, automation.Stats.Sent, automation.Stats.Opened).
		Suffix("RETURNING id, name, type, trigger, status, sent_count, opened_rate, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, storageError(err)
	}

	created, err := scanAutomation(r.conn.QueryRow(automationsSQL, automationsArgs...))
	if err != nil {
		return nil, err
	}

	r.notify("INSERT")
	return created, nil
}

func (r *automationRepository) Update(userID int, automationID string, updates domain.UpdateAutomationRequest) (*domain.Automation, error) {
	queryBuilder := squirrel.
		Update(automationsTable).
		Where(squirrel.Eq{"id": automationID, "user_id": userID})

	if updates.Name != nil {
		queryBuilder = queryBuilder.Set("name", *updates.Name)
	}
	if updates.Channel != nil {
		queryBuilder = queryBuilder.Set("type", *updates.Channel)
	}
	if updates.Trigger != nil {
		queryBuilder = queryBuilder.Set("trigger", *updates.Trigger)
	}
	if updates.Status != nil {
		queryBuilder = queryBuilder.Set("status", *updates.Status)
	}
	if updates.Stats != nil {
		queryBuilder = queryBuilder.
			Set("sent_count", updates.Stats.Sent).
			Set("opened_rate", updates.Stats.Opened)
	}

	automationsSQL, automationsArgs, err := queryBuilder.
		Suffix("RETURNING id, name, type, trigger, status, sent_count, opened_rate, created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, storageError(err)
	}

	updated, err := scanAutomation(r.conn.QueryRow(automationsSQL, automationsArgs...))
	if err != nil {
		return nil, err
	}

	r.notify("UPDATE")
	return updated, nil
}

func (r *automationRepository) notify(event string) {
	if r.bus != nil {
		r.bus.NotifyChange(context.Background(), automationsTable, event)
	}
}

func scanAutomation(row rowScanner) (*domain.Automation, error) {
	var automation domain.Automation

	err := row.Scan(
		&automation.ID,
		&automation.Name,
		&automation.Channel,
		&automation.Trigger,
		&automation.Status,
		&automation.Stats.Sent,
		&automation.Stats.Opened,
		&automation.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, storageError(err)
	}
	if err != nil {
		return nil, decodeError(err)
	}

	return &automation, nil
}
