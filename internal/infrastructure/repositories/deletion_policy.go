package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	domainerrors "dragon-roster.backend/internal/domain/errors"
)

type deleteAction int

const (
	actionCascade deleteAction = iota
	actionSetNull
	actionProtect
)

type keyKind int

const (
	keyUUID keyKind = iota
	keyInt
)

// deletionRule states what happens to Child rows whose Column references a
// deleted Parent row.
type deletionRule struct {
	Parent   string
	Child    string
	Column   string
	Action   deleteAction
	ChildKey keyKind
	Message  string
}

// deletionPolicy is evaluated top to bottom. Team trainings go before team
// locations so the location guard only sees foreign trainings.
var deletionPolicy = []deletionRule{
	{Parent: "person", Child: "person_team", Column: "person_id", Action: actionCascade, ChildKey: keyUUID},
	{Parent: "person", Child: "lineup_seat", Column: "person_id", Action: actionSetNull},
	{Parent: "team", Child: "person_team", Column: "team_id", Action: actionCascade, ChildKey: keyUUID},
	{Parent: "team", Child: "training", Column: "team_id", Action: actionCascade, ChildKey: keyInt},
	{Parent: "team", Child: "location", Column: "team_id", Action: actionCascade, ChildKey: keyInt},
	{Parent: "location", Child: "training", Column: "location_id", Action: actionProtect, Message: domainerrors.MsgLocationInUse},
	{Parent: "training", Child: "lineup", Column: "training_id", Action: actionCascade, ChildKey: keyInt},
	{Parent: "lineup", Child: "lineup_seat", Column: "lineup_id", Action: actionCascade, ChildKey: keyInt},
}

// deleteWithPolicy deletes one row of table and applies the policy to its
// dependants atomically. A missing row yields ErrNotFound.
func deleteWithPolicy(ctx context.Context, db *gorm.DB, table string, id interface{}) error {
	return runInTx(ctx, db, func(tx *gorm.DB) error {
		deleted, err := deleteRows(tx, table, []interface{}{id})
		if err != nil {
			return err
		}
		if deleted == 0 {
			return domainerrors.ErrNotFound
		}
		return nil
	})
}

func deleteRows(tx *gorm.DB, table string, ids []interface{}) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	for _, rule := range deletionPolicy {
		if rule.Parent != table {
			continue
		}
		switch rule.Action {
		case actionProtect:
			var refs int64
			if err := tx.Table(rule.Child).Where(rule.Column+" IN ?", ids).Count(&refs).Error; err != nil {
				return 0, err
			}
			if refs > 0 {
				return 0, domainerrors.Conflict(rule.Message)
			}
		case actionSetNull:
			err := tx.Exec("UPDATE "+rule.Child+" SET "+rule.Column+" = NULL, updated_at = ? WHERE "+rule.Column+" IN ?", time.Now(), ids).Error
			if err != nil {
				return 0, err
			}
		case actionCascade:
			childIDs, err := pluckChildIDs(tx, rule, ids)
			if err != nil {
				return 0, err
			}
			if _, err := deleteRows(tx, rule.Child, childIDs); err != nil {
				return 0, err
			}
		}
	}

	result := tx.Exec("DELETE FROM "+table+" WHERE id IN ?", ids)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func pluckChildIDs(tx *gorm.DB, rule deletionRule, parentIDs []interface{}) ([]interface{}, error) {
	query := tx.Table(rule.Child).Where(rule.Column+" IN ?", parentIDs)
	switch rule.ChildKey {
	case keyInt:
		var ids []int64
		if err := query.Pluck("id", &ids).Error; err != nil {
			return nil, err
		}
		out := make([]interface{}, len(ids))
		for i, id := range ids {
			out[i] = id
		}
		return out, nil
	default:
		var ids []string
		if err := query.Pluck("id", &ids).Error; err != nil {
			return nil, err
		}
		out := make([]interface{}, len(ids))
		for i, id := range ids {
			out[i] = id
		}
		return out, nil
	}
}
