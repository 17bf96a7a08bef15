package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"github.com/EsmaNErdem/jobly/internal/utils"
)

// bcryptOf matches an argument that is a bcrypt hash of the given plaintext
// and, in particular, is not the plaintext itself.
type bcryptOf struct{ plain string }

func (m bcryptOf) Match(v driver.Value) bool {
	s, ok := v.(string)
	return ok && s != m.plain && utils.VerifyPassword(s, m.plain)
}

func newUserRepo(db *sql.DB) *UserRepo {
	return NewUserRepo(db, NewTechnologyRepo(db), bcrypt.MinCost)
}

func TestUserRepo_Authenticate_UnknownUser(t *testing.T) {
	db, mock := newMockDB(t)
	r := newUserRepo(db)

	mock.ExpectQuery("SELECT username, password").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := r.Authenticate(context.Background(), "ghost", "whatever")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUserRepo_Authenticate_WrongPassword(t *testing.T) {
	db, mock := newMockDB(t)
	r := newUserRepo(db)

	hash, _ := utils.HashPassword("secret", bcrypt.MinCost)
	mock.ExpectQuery("SELECT username, password").
		WithArgs("aliya").
		WillReturnRows(sqlmock.NewRows(
			[]string{"username", "password", "first_name", "last_name", "email", "is_admin"}).
			AddRow("aliya", hash, "Aliya", "K", "a@b.c", false))

	_, err := r.Authenticate(context.Background(), "aliya", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUserRepo_Authenticate_OK(t *testing.T) {
	db, mock := newMockDB(t)
	r := newUserRepo(db)

	hash, _ := utils.HashPassword("secret", bcrypt.MinCost)
	mock.ExpectQuery("SELECT username, password").
		WithArgs("aliya").
		WillReturnRows(sqlmock.NewRows(
			[]string{"username", "password", "first_name", "last_name", "email", "is_admin"}).
			AddRow("aliya", hash, "Aliya", "K", "a@b.c", true))

	u, err := r.Authenticate(context.Background(), "aliya", "secret")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if u.Username != "aliya" || !u.IsAdmin {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestUserRepo_Register_HashesPassword(t *testing.T) {
	db, mock := newMockDB(t)
	r := newUserRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT username FROM users WHERE username = $1")).
		WithArgs("aliya").
		WillReturnError(sql.ErrNoRows)
	// The stored credential must be a bcrypt hash, never the plaintext.
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("aliya", bcryptOf{plain: "hunter22"}, "Aliya", "K", "a@b.c", false).
		WillReturnRows(sqlmock.NewRows(
			[]string{"username", "first_name", "last_name", "email", "is_admin"}).
			AddRow("aliya", "Aliya", "K", "a@b.c", false))

	u, err := r.Register(context.Background(), RegisterParams{
		Username:  "aliya",
		Password:  "hunter22",
		FirstName: "Aliya",
		LastName:  "K",
		Email:     "a@b.c",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if u.Username != "aliya" {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestUserRepo_Register_DuplicateUsername(t *testing.T) {
	db, mock := newMockDB(t)
	r := newUserRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT username FROM users WHERE username = $1")).
		WithArgs("aliya").
		WillReturnRows(sqlmock.NewRows([]string{"username"}).AddRow("aliya"))

	_, err := r.Register(context.Background(), RegisterParams{Username: "aliya", Password: "x"})
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

func TestUserRepo_Update_RehashesPassword(t *testing.T) {
	db, mock := newMockDB(t)
	r := newUserRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE users SET "password"=$1 WHERE username = $2`)).
		WithArgs(bcryptOf{plain: "newpass"}, "aliya").
		WillReturnRows(sqlmock.NewRows(
			[]string{"username", "first_name", "last_name", "email", "is_admin"}).
			AddRow("aliya", "Aliya", "K", "a@b.c", false))

	fields := (&UpdateFields{}).Set("password", "newpass")
	u, err := r.Update(context.Background(), "aliya", fields)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if u.Username != "aliya" {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestUserRepo_Update_TranslatesFieldNames(t *testing.T) {
	db, mock := newMockDB(t)
	r := newUserRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE users SET "first_name"=$1, "is_admin"=$2 WHERE username = $3`)).
		WithArgs("Aliya", true, "aliya").
		WillReturnRows(sqlmock.NewRows(
			[]string{"username", "first_name", "last_name", "email", "is_admin"}).
			AddRow("aliya", "Aliya", "K", "a@b.c", true))

	fields := (&UpdateFields{}).Set("firstName", "Aliya").Set("isAdmin", true)
	if _, err := r.Update(context.Background(), "aliya", fields); err != nil {
		t.Fatalf("update: %v", err)
	}
}

func TestUserRepo_Remove_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	r := newUserRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users WHERE username = $1")).
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := r.Remove(context.Background(), "ghost")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func expectUserAndJobExist(mock sqlmock.Sqlmock, username string, jobID int64) {
	mock.ExpectQuery(regexp.QuoteMeta("SELECT username FROM users WHERE username = $1")).
		WithArgs(username).
		WillReturnRows(sqlmock.NewRows([]string{"username"}).AddRow(username))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM jobs WHERE id = $1")).
		WithArgs(jobID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(jobID))
}

func TestUserRepo_ApplyToJob_DefaultState(t *testing.T) {
	db, mock := newMockDB(t)
	r := newUserRepo(db)

	expectUserAndJobExist(mock, "aliya", 5)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO applications")).
		WithArgs("aliya", int64(5), "interested").
		WillReturnRows(sqlmock.NewRows([]string{"job_id", "application_state"}).
			AddRow(int64(5), "interested"))

	app, err := r.ApplyToJob(context.Background(), "aliya", 5, "")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if app.JobID != 5 || app.State != "interested" {
		t.Fatalf("unexpected application: %+v", app)
	}
}

func TestUserRepo_ApplyToJob_UnknownJob(t *testing.T) {
	db, mock := newMockDB(t)
	r := newUserRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT username FROM users WHERE username = $1")).
		WithArgs("aliya").
		WillReturnRows(sqlmock.NewRows([]string{"username"}).AddRow("aliya"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM jobs WHERE id = $1")).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := r.ApplyToJob(context.Background(), "aliya", 99, "applied")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if notFound.Entity != "job" {
		t.Fatalf("wrong entity: %q", notFound.Entity)
	}
}

func TestUserRepo_ApplyToJob_Duplicate(t *testing.T) {
	db, mock := newMockDB(t)
	r := newUserRepo(db)

	expectUserAndJobExist(mock, "aliya", 5)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO applications")).
		WithArgs("aliya", int64(5), "applied").
		WillReturnError(&pq.Error{Code: pgUniqueViolation})

	_, err := r.ApplyToJob(context.Background(), "aliya", 5, "applied")
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
}

func TestUserRepo_UpdateApplication_KeyPlaceholders(t *testing.T) {
	db, mock := newMockDB(t)
	r := newUserRepo(db)

	expectUserAndJobExist(mock, "aliya", 5)
	// One SET argument leaves the composite key at $2 and $3.
	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE applications SET "application_state"=$1 WHERE username = $2 AND job_id = $3`)).
		WithArgs("accepted", "aliya", int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"job_id", "application_state"}).
			AddRow(int64(5), "accepted"))

	app, err := r.UpdateApplication(context.Background(), "aliya", 5,
		(&UpdateFields{}).Set("state", "accepted"))
	if err != nil {
		t.Fatalf("update application: %v", err)
	}
	if app.State != "accepted" {
		t.Fatalf("unexpected application: %+v", app)
	}
}

func TestUserRepo_UpdateApplication_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	r := newUserRepo(db)

	expectUserAndJobExist(mock, "aliya", 5)
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE applications SET")).
		WithArgs("rejected", "aliya", int64(5)).
		WillReturnError(sql.ErrNoRows)

	_, err := r.UpdateApplication(context.Background(), "aliya", 5,
		(&UpdateFields{}).Set("state", "rejected"))
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
