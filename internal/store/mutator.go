// Package store applies authenticated partial updates against the relational
// store and keeps the dependent cached views in sync.
package store

import (
	"context"

	"thakirni-app/internal/domain/plans"
	"thakirni-app/internal/session"
	"thakirni-app/internal/view"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MutationRecorder observes mutation outcomes, typically a metrics counter.
type MutationRecorder interface {
	RecordMutation(table, outcome string)
}

// Mutator applies single-record partial updates. All dependencies are
// injected; the mutator holds no hidden global state.
type Mutator struct {
	db          *gorm.DB
	invalidator *view.Invalidator
	recorder    MutationRecorder
	log         logrus.FieldLogger
}

func NewMutator(db *gorm.DB, inv *view.Invalidator, rec MutationRecorder, log logrus.FieldLogger) *Mutator {
	return &Mutator{db: db, invalidator: inv, recorder: rec, log: log}
}

// routeFor maps a table to the page route its mutations invalidate.
func routeFor(table string) string {
	switch table {
	case "plans":
		return "/dashboard/plans"
	case "users":
		return "/dashboard/account"
	default:
		return "/" + table
	}
}

// ownerClause scopes a mutation to records the session user owns. The users
// table is keyed by the user id itself; everything else carries a user_id
// column.
func ownerClause(table string) string {
	if table == "users" {
		return "id = ?"
	}
	return "user_id = ?"
}

// UpdateFields applies fields to exactly the record with the given id in
// table, as one atomic update scoped to the session user's own rows. A nil
// session fails closed before any storage call; a record owned by someone
// else matches nothing and reads as not found. On success the table's route
// is invalidated exactly once; on storage failure the error detail is logged
// and the caller sees only ErrUpdateFailed.
func (m *Mutator) UpdateFields(ctx context.Context, sess *session.Session, table, id string, fields map[string]interface{}) error {
	if sess == nil {
		return ErrUnauthorized
	}
	if len(fields) == 0 {
		return ErrEmptyUpdate
	}

	res := m.db.WithContext(ctx).Table(table).
		Where("id = ?", id).
		Where(ownerClause(table), sess.UserID).
		Updates(fields)
	if res.Error != nil {
		m.log.WithFields(logrus.Fields{
			"table": table,
			"id":    id,
			"user":  sess.UserID,
		}).WithError(res.Error).Error("record update failed")
		if m.recorder != nil {
			m.recorder.RecordMutation(table, "error")
		}
		return ErrUpdateFailed
	}
	if res.RowsAffected == 0 {
		if m.recorder != nil {
			m.recorder.RecordMutation(table, "not_found")
		}
		return ErrNotFound
	}

	if m.recorder != nil {
		m.recorder.RecordMutation(table, "ok")
	}
	m.invalidator.Invalidate(routeFor(table))
	return nil
}

// UpdatePlanStatus is the status-specific mutation path. The status value is
// validated against the enum before anything touches the network or storage.
func (m *Mutator) UpdatePlanStatus(ctx context.Context, sess *session.Session, planID string, status plans.Status) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	return m.UpdateFields(ctx, sess, "plans", planID, map[string]interface{}{
		"status": string(status),
	})
}

// UpdatePlan applies a typed partial update to a plan record.
func (m *Mutator) UpdatePlan(ctx context.Context, sess *session.Session, planID string, update *plans.PlanUpdate) error {
	return m.UpdateFields(ctx, sess, "plans", planID, update.Fields())
}
