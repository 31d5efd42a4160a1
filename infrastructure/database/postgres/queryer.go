package postgres

import (
	"database/sql"
)

// Queryer é a superfície mínima que os repositórios usam para executar SQL.
type Queryer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}
