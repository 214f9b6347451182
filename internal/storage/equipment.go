package storage

import (
	"context"
	"fmt"

	"github.com/claude/repplan/internal/plan"
)

// ReplaceEquipment replaces the user's entire equipment inventory in one
// transaction, so readers never observe a half-updated set.
func (db *DB) ReplaceEquipment(ctx context.Context, userID int, items []plan.EquipmentItem) error {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning equipment replace: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM equipment WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clearing equipment: %w", err)
	}
	for _, it := range items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO equipment (user_id, type, quantity, unit_weight_kg)
			VALUES ($1,$2,$3,$4)
			ON CONFLICT (user_id, type) DO UPDATE SET quantity = $3, unit_weight_kg = $4
		`, userID, string(it.Type), it.Quantity, it.UnitWeightKg); err != nil {
			return fmt.Errorf("inserting equipment %s: %w", it.Type, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing equipment replace: %w", err)
	}
	return nil
}

// GetEquipment returns the user's equipment inventory ordered by type.
func (db *DB) GetEquipment(ctx context.Context, userID int) ([]plan.EquipmentItem, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT type, quantity, unit_weight_kg
		FROM equipment WHERE user_id = $1
		ORDER BY type ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying equipment: %w", err)
	}
	defer rows.Close()

	var items []plan.EquipmentItem
	for rows.Next() {
		var it plan.EquipmentItem
		var typ string
		if err := rows.Scan(&typ, &it.Quantity, &it.UnitWeightKg); err != nil {
			return nil, fmt.Errorf("scanning equipment: %w", err)
		}
		it.Type = plan.EquipmentType(typ)
		items = append(items, it)
	}
	return items, rows.Err()
}
