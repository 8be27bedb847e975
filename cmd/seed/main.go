package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"pawtrack/internal/auth"
	"pawtrack/internal/config"
	"pawtrack/internal/repository/postgres"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed demo data")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("🚫 BLOCKED: Cannot run --drop-tables in production environment")
	}

	if *schemaOnly {
		log.Printf("🏗️  Setting up schema only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	} else {
		log.Printf("🌱 Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	}

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Println("🗑️  Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("✅ Tables dropped")
	}

	log.Println("📋 Ensuring database schema is up to date...")
	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("✅ Schema ready")

	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return
	}

	if err := seedDemoData(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to seed demo data: %v", err)
	}

	log.Println("🎉 Seeding complete!")
}

// runSchema creates tables if they don't exist
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	// Enable UUID extension
	if _, err := pool.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`); err != nil {
		return err
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS ` + tables.Users + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			phone TEXT,
			role TEXT NOT NULL DEFAULT 'user',
			password TEXT NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Pets + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID NOT NULL REFERENCES ` + tables.Users + `(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			species TEXT NOT NULL,
			breed TEXT,
			gender TEXT,
			dob TIMESTAMPTZ,
			weight DOUBLE PRECISION,
			medical_history TEXT,
			photo_url TEXT,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Vaccinations + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			pet_id UUID NOT NULL REFERENCES ` + tables.Pets + `(id) ON DELETE CASCADE,
			vaccine_name TEXT NOT NULL,
			given_date TIMESTAMPTZ NOT NULL,
			next_due_date TIMESTAMPTZ,
			reminder_sent BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Appointments + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			pet_id UUID NOT NULL REFERENCES ` + tables.Pets + `(id) ON DELETE CASCADE,
			vet_name TEXT,
			clinic_name TEXT,
			appointment_date TIMESTAMPTZ NOT NULL,
			purpose TEXT,
			reminder_date TIMESTAMPTZ,
			status TEXT NOT NULL DEFAULT 'upcoming',
			notes TEXT,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Expenses + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			pet_id UUID NOT NULL REFERENCES ` + tables.Pets + `(id) ON DELETE CASCADE,
			category TEXT NOT NULL,
			amount DOUBLE PRECISION NOT NULL,
			description TEXT,
			date TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.HealthLogs + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			pet_id UUID NOT NULL REFERENCES ` + tables.Pets + `(id) ON DELETE CASCADE,
			weight DOUBLE PRECISION,
			temperature DOUBLE PRECISION,
			symptoms TEXT,
			notes TEXT,
			date TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Activities + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			pet_id UUID NOT NULL REFERENCES ` + tables.Pets + `(id) ON DELETE CASCADE,
			type TEXT NOT NULL,
			duration INTEGER NOT NULL,
			date TIMESTAMPTZ NOT NULL,
			notes TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Policies + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			provider_name TEXT NOT NULL,
			policy_name TEXT NOT NULL,
			premium_amount DOUBLE PRECISION NOT NULL,
			coverage_amount DOUBLE PRECISION NOT NULL,
			description TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.PetInsurance + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			pet_id UUID NOT NULL REFERENCES ` + tables.Pets + `(id) ON DELETE CASCADE,
			policy_id UUID NOT NULL REFERENCES ` + tables.Policies + `(id),
			policy_number TEXT NOT NULL UNIQUE,
			start_date TIMESTAMPTZ NOT NULL,
			end_date TIMESTAMPTZ NOT NULL,
			claim_status TEXT NOT NULL DEFAULT 'pending',
			emergency_contact TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Posts + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID NOT NULL REFERENCES ` + tables.Users + `(id) ON DELETE CASCADE,
			content TEXT,
			image_url TEXT,
			likes_count INTEGER NOT NULL DEFAULT 0,
			comments_count INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Comments + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			post_id UUID NOT NULL REFERENCES ` + tables.Posts + `(id) ON DELETE CASCADE,
			user_id UUID NOT NULL REFERENCES ` + tables.Users + `(id) ON DELETE CASCADE,
			content TEXT NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Likes + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			post_id UUID NOT NULL REFERENCES ` + tables.Posts + `(id) ON DELETE CASCADE,
			user_id UUID NOT NULL REFERENCES ` + tables.Users + `(id) ON DELETE CASCADE,
			UNIQUE(post_id, user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Playdates + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			host_id UUID NOT NULL REFERENCES ` + tables.Users + `(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			description TEXT,
			location TEXT,
			event_date TIMESTAMPTZ NOT NULL,
			status TEXT NOT NULL DEFAULT 'active',
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.PlaydateRSVPs + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			playdate_id UUID NOT NULL REFERENCES ` + tables.Playdates + `(id) ON DELETE CASCADE,
			user_id UUID NOT NULL REFERENCES ` + tables.Users + `(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			UNIQUE(playdate_id, user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.Notifications + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			user_id UUID NOT NULL REFERENCES ` + tables.Users + `(id) ON DELETE CASCADE,
			type TEXT NOT NULL,
			reference_id TEXT,
			message TEXT NOT NULL,
			is_read BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	// Create indexes
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `pets_user_id ON ` + tables.Pets + `(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `vaccinations_pet_id ON ` + tables.Vaccinations + `(pet_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `vaccinations_due ON ` + tables.Vaccinations + `(next_due_date) WHERE reminder_sent = FALSE`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `appointments_pet_date ON ` + tables.Appointments + `(pet_id, appointment_date)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `expenses_pet_date ON ` + tables.Expenses + `(pet_id, date)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `health_logs_pet_date ON ` + tables.HealthLogs + `(pet_id, date)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `activities_pet_date ON ` + tables.Activities + `(pet_id, date)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `pet_insurance_pet_id ON ` + tables.PetInsurance + `(pet_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `pet_insurance_end_date ON ` + tables.PetInsurance + `(end_date)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `posts_created_at ON ` + tables.Posts + `(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `comments_post_id ON ` + tables.Comments + `(post_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `playdates_date_status ON ` + tables.Playdates + `(event_date, status)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `notifications_user ON ` + tables.Notifications + `(user_id, created_at DESC)`,
	}

	for _, indexSQL := range indexes {
		if _, err := pool.Exec(ctx, indexSQL); err != nil {
			return err
		}
	}

	return nil
}

// dropAllTables drops all tables in reverse order (to respect foreign keys)
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	tableNames := []string{
		tables.Notifications,
		tables.PlaydateRSVPs,
		tables.Playdates,
		tables.Likes,
		tables.Comments,
		tables.Posts,
		tables.PetInsurance,
		tables.Policies,
		tables.Activities,
		tables.HealthLogs,
		tables.Expenses,
		tables.Appointments,
		tables.Vaccinations,
		tables.Pets,
		tables.Users,
	}

	for _, table := range tableNames {
		dropSQL := "DROP TABLE IF EXISTS " + table + " CASCADE"
		if _, err := pool.Exec(ctx, dropSQL); err != nil {
			return err
		}
		log.Printf("  ✓ Dropped %s", table)
	}

	return nil
}

// seedDemoData inserts a demo admin, a demo owner with one pet and a
// starter record in each care category, plus the policy catalog. All
// inserts are idempotent so re-running the seeder is safe.
func seedDemoData(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	log.Println("👤 Seeding users...")

	adminHash, err := auth.HashPassword("admin123")
	if err != nil {
		return err
	}
	demoHash, err := auth.HashPassword("demo1234")
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO `+tables.Users+` (name, email, phone, role, password)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO NOTHING
	`, "Admin", "admin@pawtrack.local", "", "admin", adminHash)
	if err != nil {
		return err
	}

	var demoID string
	err = pool.QueryRow(ctx, `
		INSERT INTO `+tables.Users+` (name, email, phone, role, password)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, "Demo Owner", "demo@pawtrack.local", "555-0100", "user", demoHash).Scan(&demoID)
	if err != nil {
		return err
	}
	log.Printf("  ✓ admin@pawtrack.local (admin123), demo@pawtrack.local (demo1234)")

	log.Println("🐶 Seeding demo pet...")
	var petID string
	dob := time.Now().AddDate(-3, 0, 0)
	err = pool.QueryRow(ctx, `
		INSERT INTO `+tables.Pets+` (user_id, name, species, breed, gender, dob, weight, medical_history, photo_url)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9
		WHERE NOT EXISTS (SELECT 1 FROM `+tables.Pets+` WHERE user_id = $1 AND name = $2)
		RETURNING id
	`, demoID, "Buddy", "dog", "labrador", "male", dob, 24.5, "Neutered, no known allergies", "").Scan(&petID)
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			// Already seeded on a previous run; fetch the existing pet.
			err = pool.QueryRow(ctx, `
				SELECT id FROM `+tables.Pets+` WHERE user_id = $1 AND name = $2
			`, demoID, "Buddy").Scan(&petID)
		}
		if err != nil {
			return err
		}
	}

	log.Println("📒 Seeding care records...")
	now := time.Now()
	careInserts := []struct {
		label string
		sql   string
		args  []any
	}{
		{
			"vaccination", `
			INSERT INTO ` + tables.Vaccinations + ` (pet_id, vaccine_name, given_date, next_due_date, reminder_sent)
			SELECT $1, $2, $3, $4, FALSE
			WHERE NOT EXISTS (SELECT 1 FROM ` + tables.Vaccinations + ` WHERE pet_id = $1 AND vaccine_name = $2)`,
			[]any{petID, "Rabies", now.AddDate(0, -11, 0), now.AddDate(0, 1, 0)},
		},
		{
			"appointment", `
			INSERT INTO ` + tables.Appointments + ` (pet_id, vet_name, clinic_name, appointment_date, purpose, status)
			SELECT $1, $2, $3, $4, $5, 'upcoming'
			WHERE NOT EXISTS (SELECT 1 FROM ` + tables.Appointments + ` WHERE pet_id = $1 AND purpose = $5)`,
			[]any{petID, "Dr. Patel", "Greenfield Vet Clinic", now.AddDate(0, 0, 10), "Annual checkup"},
		},
		{
			"expense", `
			INSERT INTO ` + tables.Expenses + ` (pet_id, category, amount, description, date)
			SELECT $1, $2, $3, $4, $5
			WHERE NOT EXISTS (SELECT 1 FROM ` + tables.Expenses + ` WHERE pet_id = $1 AND description = $4)`,
			[]any{petID, "food", 54.99, "Monthly kibble", now.AddDate(0, 0, -3)},
		},
		{
			"health log", `
			INSERT INTO ` + tables.HealthLogs + ` (pet_id, weight, temperature, symptoms, notes, date)
			SELECT $1, $2, $3, $4, $5, $6
			WHERE NOT EXISTS (SELECT 1 FROM ` + tables.HealthLogs + ` WHERE pet_id = $1 AND notes = $5)`,
			[]any{petID, 24.5, 38.4, "", "Routine weigh-in", now.AddDate(0, 0, -1)},
		},
		{
			"activity", `
			INSERT INTO ` + tables.Activities + ` (pet_id, type, duration, date, notes)
			SELECT $1, $2, $3, $4, $5
			WHERE NOT EXISTS (SELECT 1 FROM ` + tables.Activities + ` WHERE pet_id = $1 AND notes = $5)`,
			[]any{petID, "walk", 45, now.AddDate(0, 0, -1), "Morning walk in the park"},
		},
	}
	for _, ins := range careInserts {
		if _, err := pool.Exec(ctx, ins.sql, ins.args...); err != nil {
			return err
		}
		log.Printf("  ✓ %s", ins.label)
	}

	log.Println("🛡️  Seeding insurance policy catalog...")
	policies := []struct {
		provider, name, description string
		premium, coverage           float64
	}{
		{"PawShield", "Basic Care", "Accident-only coverage", 19.99, 5000},
		{"PawShield", "Complete Care", "Accidents, illness and routine care", 49.99, 15000},
		{"VetSecure", "Senior Plan", "Coverage tailored for senior pets", 39.99, 10000},
	}
	for _, p := range policies {
		_, err := pool.Exec(ctx, `
			INSERT INTO `+tables.Policies+` (provider_name, policy_name, premium_amount, coverage_amount, description)
			SELECT $1, $2, $3, $4, $5
			WHERE NOT EXISTS (
				SELECT 1 FROM `+tables.Policies+` WHERE provider_name = $1 AND policy_name = $2
			)
		`, p.provider, p.name, p.premium, p.coverage, p.description)
		if err != nil {
			return err
		}
		log.Printf("  ✓ %s / %s", p.provider, p.name)
	}

	return nil
}
