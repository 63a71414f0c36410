package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mmynk/bucketpos/internal/ledger"
	"github.com/mmynk/bucketpos/internal/models"
)

type defaultProduct struct {
	name       string
	priceCents int64
	accent     string
	typeName   string
	note       string
}

var defaultProductTypes = []struct {
	name  string
	color string
}{
	{"Getränke", "#83ff4e"},
	{"Snacks", "#ff46d3"},
	{"Desserts", "#ff8af2"},
}

var defaultProducts = []defaultProduct{
	{name: "Eistee", priceCents: 380, accent: "#83ff4e", typeName: "Getränke"},
	{name: "Saftschorle", priceCents: 350, accent: "#84ff4f", typeName: "Getränke"},
	{name: "Mineralwasser", priceCents: 200, accent: "#acf5ff", typeName: "Getränke"},
	{name: "Cappuccino", priceCents: 320, accent: "#2f9755", typeName: "Getränke"},
	{name: "Latte Macchiato", priceCents: 380, accent: "#2d8b50", typeName: "Getränke"},
	{name: "Brezel", priceCents: 250, accent: "#f73ccb", typeName: "Snacks"},
	{name: "Nachos", priceCents: 410, accent: "#e53935", typeName: "Snacks"},
	{name: "Brownie", priceCents: 290, accent: "#ff40c8", typeName: "Desserts"},
	{name: "Käsekuchen", priceCents: 340, accent: "#ff46d3", typeName: "Desserts"},
	{name: "Tagesangebot", priceCents: 550, accent: "#f44336", typeName: "Snacks", note: "Chefwahl"},
}

// seed ensures roles and the bootstrap admin, and optionally fills an empty
// catalog. Every step is idempotent.
func (s *SQLiteStore) seed(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, role := range []string{models.RoleAdmin, models.RoleManager, models.RoleUser} {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO user_roles (name) VALUES (?)", role,
		); err != nil {
			return fmt.Errorf("failed to seed role %s: %w", role, err)
		}
	}

	if s.adminHash != "" {
		if err := s.seedAdmin(ctx, tx); err != nil {
			return err
		}
	}

	if s.seedDefaults {
		if err := s.seedCatalog(ctx, tx); err != nil {
			return err
		}
		if err := s.seedBucket(ctx, tx); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *SQLiteStore) seedAdmin(ctx context.Context, tx *sql.Tx) error {
	now := s.now().Unix()
	_, err := tx.ExecContext(ctx, `
		INSERT INTO users (username, display_name, password_hash, role_id, active, created_at, updated_at)
		SELECT 'admin', 'Administrator', ?, id, 1, ?, ?
		FROM user_roles
		WHERE name = ? AND NOT EXISTS (SELECT 1 FROM users WHERE username = 'admin')
	`, s.adminHash, now, now, models.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}
	return nil
}

func (s *SQLiteStore) seedCatalog(ctx context.Context, tx *sql.Tx) error {
	var count int64
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := s.now().Unix()
	typeIDs := make(map[string]int64, len(defaultProductTypes))
	for _, pt := range defaultProductTypes {
		res, err := tx.ExecContext(ctx,
			"INSERT INTO product_types (name, color, created_at, updated_at) VALUES (?, ?, ?, ?)",
			pt.name, pt.color, now, now,
		)
		if err != nil {
			return fmt.Errorf("failed to seed product type: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get product type id: %w", err)
		}
		typeIDs[pt.name] = id
	}

	for _, p := range defaultProducts {
		var note sql.NullString
		if p.note != "" {
			note = sql.NullString{String: p.note, Valid: true}
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO products (name, price_cents, accent, note, product_type_id) VALUES (?, ?, ?, ?, ?)",
			p.name, p.priceCents, p.accent, note, typeIDs[p.typeName],
		); err != nil {
			return fmt.Errorf("failed to seed product: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) seedBucket(ctx context.Context, tx *sql.Tx) error {
	var count int64
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM buckets").Scan(&count); err != nil {
		return fmt.Errorf("failed to count buckets: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := s.now().Unix()
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO buckets (name, status, created_at, updated_at) VALUES (?, ?, ?, ?)",
		ledger.NextBucketName(nil), models.BucketOpen, now, now,
	); err != nil {
		return fmt.Errorf("failed to seed bucket: %w", err)
	}
	return nil
}
