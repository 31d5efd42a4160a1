package main

import (
	"database/sql"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"
)

// Script de migração do schema. Cria as tabelas da aplicação de forma
// idempotente. A conexão vem exclusivamente do ambiente.

func setupLogger() {
	// Configura o logger para incluir data, hora e arquivo
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("Iniciando script de migração...")
}

var migrations = []struct {
	name string
	stmt string
}{
	{
		name: "users",
		stmt: `CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			confirmed BOOLEAN NOT NULL DEFAULT FALSE,
			deleted BOOLEAN NOT NULL DEFAULT FALSE,
			deleted_at TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	},
	{
		name: "clients",
		stmt: `CREATE TABLE IF NOT EXISTS clients (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id INTEGER NOT NULL REFERENCES users(id),
			name TEXT NOT NULL,
			email TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'Lead',
			program TEXT NOT NULL DEFAULT '',
			join_date TEXT NOT NULL DEFAULT '',
			last_check_in TEXT NOT NULL DEFAULT 'Never',
			progress INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	},
	{
		name: "social_posts",
		stmt: `CREATE TABLE IF NOT EXISTS social_posts (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id INTEGER NOT NULL REFERENCES users(id),
			day INTEGER NOT NULL DEFAULT 1,
			hook TEXT NOT NULL DEFAULT '',
			body TEXT NOT NULL DEFAULT '',
			cta TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL DEFAULT 'Text',
			status TEXT NOT NULL DEFAULT 'Draft',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	},
	{
		name: "automations",
		stmt: `CREATE TABLE IF NOT EXISTS automations (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id INTEGER NOT NULL REFERENCES users(id),
			name TEXT NOT NULL,
			type TEXT NOT NULL DEFAULT 'Email',
			trigger TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'Active',
			sent_count INTEGER NOT NULL DEFAULT 0,
			opened_rate TEXT NOT NULL DEFAULT '0%',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	},
	{
		name: "business_blueprints",
		stmt: `CREATE TABLE IF NOT EXISTS business_blueprints (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id INTEGER NOT NULL UNIQUE REFERENCES users(id),
			business_name TEXT NOT NULL,
			niche TEXT NOT NULL DEFAULT '',
			target_audience TEXT NOT NULL DEFAULT '',
			mission TEXT NOT NULL DEFAULT '',
			website_data JSONB NOT NULL DEFAULT '{}',
			suggested_programs JSONB NOT NULL DEFAULT '[]',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	},
	{
		name: "payments",
		stmt: `CREATE TABLE IF NOT EXISTS payments (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id INTEGER NOT NULL REFERENCES users(id),
			amount NUMERIC(12,2) NOT NULL,
			status TEXT NOT NULL DEFAULT 'Pending',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	},
	{
		name: "idx_clients_user",
		stmt: `CREATE INDEX IF NOT EXISTS idx_clients_user ON clients (user_id, created_at DESC)`,
	},
	{
		name: "idx_social_posts_user",
		stmt: `CREATE INDEX IF NOT EXISTS idx_social_posts_user ON social_posts (user_id, day ASC)`,
	},
	{
		name: "idx_automations_user",
		stmt: `CREATE INDEX IF NOT EXISTS idx_automations_user ON automations (user_id, created_at DESC)`,
	},
	{
		name: "idx_payments_user",
		stmt: `CREATE INDEX IF NOT EXISTS idx_payments_user ON payments (user_id, created_at ASC)`,
	},
}

func main() {
	setupLogger()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL não definida; nada a migrar")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("ERRO ao conectar ao banco: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("ERRO ao testar a conexão: %v", err)
	}

	startTime := time.Now()

	for _, migration := range migrations {
		log.Printf("Aplicando migração: %s", migration.name)
		if _, err := db.Exec(migration.stmt); err != nil {
			log.Fatalf("ERRO na migração %s: %v", migration.name, err)
		}
	}

	log.Printf("Migração concluída em %v", time.Since(startTime))
}
