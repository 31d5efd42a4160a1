package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"github.com/coachos/coach-os-api/infrastructure/database/postgres"
	"github.com/coachos/coach-os-api/infrastructure/realtime"
	"github.com/coachos/coach-os-api/internal/domain"
)

const clientsTable = "clients"

type ClientRepository interface {
	ListByUser(userID int) ([]domain.Client, error)
	Create(userID int, client domain.Client) (*domain.Client, error)
	Update(userID int, clientID string, updates domain.UpdateClientRequest) (*domain.Client, error)
	Delete(userID int, clientID string) error
}

type clientRepository struct {
	conn *postgres.Connection
	bus  *realtime.Bus
}

func NewClientRepository(conn *postgres.Connection, bus *realtime.Bus) ClientRepository {
	return &clientRepository{
		conn: conn,
		bus:  bus,
	}
}

var clientColumns = []string{
	"id", "name", "email", "status", "program",
	"join_date", "last_check_in", "progress", "created_at", "updated_at",
}

// ListByUser retorna os clientes da conta, do mais recente para o mais
// antigo. Conta sem clientes retorna coleção vazia, não erro.
func (r *clientRepository) ListByUser(userID int) ([]domain.Client, error) {
	clientsSQL, clientsArgs, err := squirrel.
		Select(clientColumns...).
		From(clientsTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, storageError(err)
	}

	rows, err := r.conn.Query(clientsSQL, clientsArgs...)
	if err != nil {
		return nil, storageError(err)
	}
	defer rows.Close()

	clients := make([]domain.Client, 0)
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, *client)
	}

	if err := rows.Err(); err != nil {
		return nil, storageError(err)
	}

	return clients, nil
}

func (r *clientRepository) Create(userID int, client domain.Client) (*domain.Client, error) {
	client.Normalize()

	clientsSQL, clientsArgs, err := squirrel.
		Insert(clientsTable).
		Columns("user_id", "name", "email", "status", "program", "join_date", "last_check_in", "progress").
		Values(userID, client.Name, client.Email, client.Status, client.Program, client.JoinDate, client.LastCheckIn, client.Progress).
		Suffix("RETURNING " + scanColumns()).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, storageError(err)
	}

	created, err := scanClient(r.conn.QueryRow(clientsSQL, clientsArgs...))
	if err != nil {
		return nil, err
	}

	r.notify("INSERT")
	return created, nil
}

// Update aplica uma atualização parcial. Campos omitidos no request nunca
// são limpos.
func (r *clientRepository) Update(userID int, clientID string, updates domain.UpdateClientRequest) (*domain.Client, error) {
	queryBuilder := squirrel.
		Update(clientsTable).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": clientID, "user_id": userID})

	if updates.Name != nil {
		queryBuilder = queryBuilder.Set("name", *updates.Name)
	}
	if updates.Email != nil {
		queryBuilder = queryBuilder.Set("email", *updates.Email)
	}
	if updates.Status != nil {
		queryBuilder = queryBuilder.Set("status", *updates.Status)
	}
	if updates.Program != nil {
		queryBuilder = queryBuilder.Set("program", *updates.Program)
	}
	if updates.JoinDate != nil {
		queryBuilder = queryBuilder.Set("join_date", *updates.JoinDate)
	}
	if updates.LastCheckIn != nil {
		queryBuilder = queryBuilder.Set("last_check_in", *updates.LastCheckIn)
	}
	if updates.Progress != nil {
		queryBuilder = queryBuilder.Set("progress", domain.ClampProgress(*updates.Progress))
	}

	clientsSQL, clientsArgs, err := queryBuilder.
		Suffix("RETURNING " + scanColumns()).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, storageError(err)
	}

	updated, err := scanClient(r.conn.QueryRow(clientsSQL, clientsArgs...))
	if err != nil {
		return nil, err
	}

	r.notify("UPDATE")
	return updated, nil
}

func (r *clientRepository) Delete(userID int, clientID string) error {
	clientsSQL, clientsArgs, err := squirrel.
		Delete(clientsTable).
		Where(squirrel.Eq{"id": clientID, "user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return storageError(err)
	}

	if _, err := r.conn.Exec(clientsSQL, clientsArgs...); err != nil {
		return storageError(err)
	}

	r.notify("DELETE")
	return nil
}

func (r *clientRepository) notify(event string) {
	if r.bus != nil {
		r.bus.NotifyChange(context.Background(), clientsTable, event)
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanColumns() string {
	return strings.Join(clientColumns, ", ")
}

func scanClient(row rowScanner) (*domain.Client, error) {
	var client domain.Client

	err := row.Scan(
		&client.ID,
		&client.Name,
		&client.Email,
		&client.Status,
		&client.Program,
		&client.JoinDate,
		&client.LastCheckIn,
		&client.Progress,
		&client.CreatedAt,
		&client.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, storageError(err)
	}
	if err != nil {
		return nil, decodeError(err)
	}

	return &client, nil
}
