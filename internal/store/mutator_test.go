package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"

	"thakirni-app/internal/domain/plans"
	"thakirni-app/internal/session"
	"thakirni-app/internal/view"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

type countingRecorder struct {
	invalidations int
	mutations     int
}

func (r *countingRecorder) RecordInvalidation(route string)      { r.invalidations++ }
func (r *countingRecorder) RecordMutation(table, outcome string) { r.mutations++ }

// recordingPool is a gorm connection pool that captures every executed
// statement and reports one affected row, so the full update path runs
// without a database.
type recordingPool struct {
	queries []string
	args    [][]interface{}
}

func (p *recordingPool) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	return nil, errors.New("prepare not supported")
}

func (p *recordingPool) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	p.queries = append(p.queries, query)
	p.args = append(p.args, args)
	return oneRowResult{}, nil
}

func (p *recordingPool) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, errors.New("query not supported")
}

func (p *recordingPool) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}

type oneRowResult struct{}

func (oneRowResult) LastInsertId() (int64, error) { return 0, nil }
func (oneRowResult) RowsAffected() (int64, error) { return 1, nil }

func newRecordingMutator(t *testing.T, rec *countingRecorder) (*Mutator, *recordingPool) {
	t.Helper()
	pool := &recordingPool{}
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{ConnPool: pool})
	if err != nil {
		t.Fatal(err)
	}
	return NewMutator(db, view.NewInvalidator(rec), rec, logrus.New()), pool
}

// newOfflineMutator builds a mutator with no database behind it. Any code
// path that reaches storage will panic, which is exactly what the
// fail-closed tests rely on.
func newOfflineMutator(rec *countingRecorder) *Mutator {
	return NewMutator(nil, view.NewInvalidator(rec), rec, logrus.New())
}

func testSession() *session.Session {
	return &session.Session{UserID: uuid.New(), Email: "user@example.com", Role: "user"}
}

func TestUpdateFieldsUnauthorized(t *testing.T) {
	rec := &countingRecorder{}
	m := newOfflineMutator(rec)

	err := m.UpdateFields(context.Background(), nil, "plans", "p1", map[string]interface{}{"title": "x"})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if rec.invalidations != 0 {
		t.Errorf("unauthorized mutation must not invalidate views, got %d", rec.invalidations)
	}
}

func TestUpdatePlanStatusRejectsInvalidStatusBeforeStorage(t *testing.T) {
	rec := &countingRecorder{}
	m := newOfflineMutator(rec)

	err := m.UpdatePlanStatus(context.Background(), testSession(), "p1", plans.Status("archived"))
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if rec.invalidations != 0 || rec.mutations != 0 {
		t.Error("invalid status must be rejected before any storage call")
	}
}

func TestUpdatePlanStatusUnauthorized(t *testing.T) {
	rec := &countingRecorder{}
	m := newOfflineMutator(rec)

	// Valid status, no session: fails closed before storage.
	err := m.UpdatePlanStatus(context.Background(), nil, "p1", plans.StatusCompleted)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestUpdateFieldsEmptyUpdate(t *testing.T) {
	rec := &countingRecorder{}
	m := newOfflineMutator(rec)

	err := m.UpdateFields(context.Background(), testSession(), "plans", "p1", nil)
	if !errors.Is(err, ErrEmptyUpdate) {
		t.Fatalf("expected ErrEmptyUpdate, got %v", err)
	}
}

func TestUpdatePlanEmptyTypedUpdate(t *testing.T) {
	rec := &countingRecorder{}
	m := newOfflineMutator(rec)

	err := m.UpdatePlan(context.Background(), testSession(), "p1", &plans.PlanUpdate{})
	if !errors.Is(err, ErrEmptyUpdate) {
		t.Fatalf("expected ErrEmptyUpdate, got %v", err)
	}
}

func TestUpdatePlanStatusScopedToOwner(t *testing.T) {
	rec := &countingRecorder{}
	m, pool := newRecordingMutator(t, rec)
	sess := testSession()

	if err := m.UpdatePlanStatus(context.Background(), sess, "p1", plans.StatusCompleted); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(pool.queries) != 1 {
		t.Fatalf("expected exactly one statement, got %d", len(pool.queries))
	}
	query := pool.queries[0]
	if !strings.Contains(query, "user_id") {
		t.Fatalf("update must be scoped to the owner, got %q", query)
	}

	var scoped bool
	for _, arg := range pool.args[0] {
		if fmt.Sprint(arg) == sess.UserID.String() {
			scoped = true
		}
	}
	if !scoped {
		t.Errorf("session user id missing from statement args: %v", pool.args[0])
	}
}

func TestUpdateFieldsSuccessInvalidatesOnce(t *testing.T) {
	rec := &countingRecorder{}
	m, _ := newRecordingMutator(t, rec)

	err := m.UpdateFields(context.Background(), testSession(), "plans", "p1", map[string]interface{}{"title": "Will"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rec.invalidations != 1 {
		t.Errorf("successful mutation must invalidate the route exactly once, got %d", rec.invalidations)
	}
	if rec.mutations != 1 {
		t.Errorf("expected one mutation outcome recorded, got %d", rec.mutations)
	}
}

func TestUserUpdateScopedToOwnRow(t *testing.T) {
	rec := &countingRecorder{}
	m, pool := newRecordingMutator(t, rec)
	sess := testSession()

	err := m.UpdateFields(context.Background(), sess, "users", sess.UserID.String(), map[string]interface{}{"language": "en"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The users table has no user_id column; the owner scope is the id itself.
	query := pool.queries[0]
	if strings.Contains(query, "user_id") {
		t.Fatalf("users update must scope by id, got %q", query)
	}
	if strings.Count(query, "id = ?") != 2 {
		t.Errorf("expected id and owner predicates, got %q", query)
	}
}

func TestRouteFor(t *testing.T) {
	if got := routeFor("plans"); got != "/dashboard/plans" {
		t.Errorf("routeFor(plans) = %q", got)
	}
	if got := routeFor("users"); got != "/dashboard/account" {
		t.Errorf("routeFor(users) = %q", got)
	}
	if got := routeFor("notes"); got != "/notes" {
		t.Errorf("routeFor(notes) = %q", got)
	}
}
