package sessions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func sessionRowColumns() []string {
	return []string{
		"id", "user_id", "has_resume", "selected_resume_id", "extracted_skills", "additional_skills",
		"sections", "current_phase", "current_question", "session_status", "analysis", "raw_report",
		"post_actions", "version", "created_at", "updated_at", "completed_at",
	}
}

func sessionRow(mock sqlmock.Sqlmock, id, userID string, version int) *sqlmock.Rows {
	now := time.Now().UTC()
	return mock.NewRows(sessionRowColumns()).AddRow(
		id, userID, false, nil, []byte(`[]`), []byte(`[]`),
		[]byte(`{}`), string(PhaseResumeCheck), 0, StatusInProgress, nil, nil,
		[]byte(`{}`), version, now, now, nil,
	)
}

func TestPGRepoCreateInsertsJSONColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	session := Session{
		ID:            "session-1",
		UserID:        "user-1",
		CurrentPhase:  PhaseResumeCheck,
		SessionStatus: StatusInProgress,
		CreatedAt:     time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO counselling_sessions").
		WithArgs(
			session.ID,
			session.UserID,
			false,
			nil,              // selected_resume_id
			sqlmock.AnyArg(), // extracted_skills
			sqlmock.AnyArg(), // additional_skills
			sqlmock.AnyArg(), // sections
			string(PhaseResumeCheck),
			0,
			StatusInProgress,
			nil, // analysis
			"",  // raw_report
			sqlmock.AnyArg(), // post_actions
			0,   // version
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), session); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectQuery("SELECT (.+) FROM counselling_sessions").
		WithArgs("missing", "user-1").
		WillReturnRows(mock.NewRows(sessionRowColumns()))

	_, err = repo.GetByID(context.Background(), "user-1", "missing")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestPGRepoUpdateBumpsVersion(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	session := Session{
		ID:            "session-1",
		UserID:        "user-1",
		CurrentPhase:  PhaseCareerGoals,
		SessionStatus: StatusInProgress,
		Version:       3,
	}

	mock.ExpectExec("UPDATE counselling_sessions").
		WillReturnResult(sqlmock.NewResult(0, 1))

	updated, err := repo.Update(context.Background(), session)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Version != 4 {
		t.Fatalf("version = %d, want 4", updated.Version)
	}
}

func TestPGRepoUpdateStaleVersionIsConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	session := Session{
		ID:            "session-1",
		UserID:        "user-1",
		CurrentPhase:  PhaseCareerGoals,
		SessionStatus: StatusInProgress,
		Version:       2,
	}

	mock.ExpectExec("UPDATE counselling_sessions").
		WillReturnResult(sqlmock.NewResult(0, 0))
	// Row exists at a newer version, so the zero-row update is a conflict.
	mock.ExpectQuery("SELECT (.+) FROM counselling_sessions").
		WithArgs(session.ID, session.UserID).
		WillReturnRows(sessionRow(mock, session.ID, session.UserID, 3))

	_, err = repo.Update(context.Background(), session)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestPGRepoUpdateMissingSessionIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}
	session := Session{ID: "gone", UserID: "user-1", Version: 0}

	mock.ExpectExec("UPDATE counselling_sessions").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT (.+) FROM counselling_sessions").
		WithArgs(session.ID, session.UserID).
		WillReturnRows(mock.NewRows(sessionRowColumns()))

	_, err = repo.Update(context.Background(), session)
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestPGRepoListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	rows := sessionRow(mock, "session-1", "user-1", 0).AddRow(
		"session-2", "user-1", false, nil, []byte(`[]`), []byte(`[]`),
		[]byte(`{}`), string(PhaseCompleted), 0, StatusCompleted, nil, nil,
		[]byte(`{}`), 5, time.Now().UTC(), time.Now().UTC(), nil,
	)
	mock.ExpectQuery("SELECT (.+) FROM counselling_sessions").
		WithArgs("user-1", 20, 0).
		WillReturnRows(rows)

	list, err := repo.ListByUser(context.Background(), "user-1", 20, 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d", len(list))
	}
	if list[1].CurrentPhase != PhaseCompleted || list[1].Version != 5 {
		t.Fatalf("second row = %+v", list[1])
	}
}
