package repository

import (
	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"github.com/coachos/coach-os-api/infrastructure/database/postgres"
	"github.com/coachos/coach-os-api/internal/domain"
)

const paymentsTable = "payments"

// PaymentRepository é somente leitura: os pagamentos entram por integração
// externa, nunca pela aplicação.
type PaymentRepository interface {
	ListCompletedByUser(userID int) ([]domain.Payment, error)
	CountByUser(userID int) (int, error)
}

type paymentRepository struct {
	conn *postgres.Connection
}

func NewPaymentRepository(conn *postgres.Connection) PaymentRepository {
	return &paymentRepository{
		conn: conn,
	}
}

// ListCompletedByUser retorna os pagamentos concluídos em ordem cronológica,
// para a série de receita mensal.
func (r *paymentRepository) ListCompletedByUser(userID int) ([]domain.Payment, error) {
	paymentsSQL, paymentsArgs, err := squirrel.
		Select("id", "amount", "status", "created_at").
		From(paymentsTable).
		Where(squirrel.Eq{"user_id": userID, "status": domain.PaymentStatusCompleted}).
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, storageError(err)
	}

	rows, err := r.conn.Query(paymentsSQL, paymentsArgs...)
	if err != nil {
		return nil, storageError(err)
	}
	defer rows.Close()

	payments := make([]domain.Payment, 0)
	for rows.Next() {
		var payment domain.Payment
		if err := rows.Scan(&payment.ID, &payment.Amount, &payment.Status, &payment.CreatedAt); err != nil {
			return nil, decodeError(err)
		}
		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, storageError(err)
	}

	return payments, nil
}

func (r *paymentRepository) CountByUser(userID int) (int, error) {
	paymentsSQL, paymentsArgs, err := squirrel.
		Select("COUNT(*)").
		From(paymentsTable).
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, storageError(err)
	}

	var count int
	if err := r.conn.QueryRow(paymentsSQL, paymentsArgs...).Scan(&count); err != nil {
		return 0, storageError(err)
	}

	return count, nil
}
