package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"github.com/EsmaNErdem/jobly/internal/model"
	"github.com/EsmaNErdem/jobly/internal/utils"
)

// UserDetail is the full single-user view. Technologies and Applications
// are attached only when at least one row exists for them; a nil slice is
// omitted from JSON entirely, which API consumers can rely on.
type UserDetail struct {
	model.User
	Technologies []string `json:"technologies,omitempty"`
	Applications []int64  `json:"applications,omitempty"`
}

// RegisteredUser is what Register returns: the inserted row plus the linked
// technologies when any were supplied.
type RegisteredUser struct {
	model.User
	Technologies []string `json:"technologies,omitempty"`
}

// RegisterParams carries the data for a new user. Password is the plaintext
// credential; it is hashed before touching storage and never stored or
// logged as given.
type RegisterParams struct {
	Username     string
	Password     string
	FirstName    string
	LastName     string
	Email        string
	IsAdmin      bool
	Technologies []string
}

// UserRepo encapsulates all database queries related to users and their
// job applications.
type UserRepo struct {
	db         *sql.DB
	tech       *TechnologyRepo
	bcryptCost int
}

func NewUserRepo(db *sql.DB, tech *TechnologyRepo, bcryptCost int) *UserRepo {
	return &UserRepo{db: db, tech: tech, bcryptCost: bcryptCost}
}

const userColumns = `username, first_name, last_name, email, is_admin`

// Authenticate verifies a username/password pair against the stored bcrypt
// hash. An unknown username and a wrong password both return
// ErrInvalidCredentials; the hash itself never leaves this method.
func (r *UserRepo) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	const q = `SELECT username, password, first_name, last_name, email, is_admin
	           FROM users WHERE username = $1`
	var (
		u    model.User
		hash string
	)
	err := r.db.QueryRowContext(ctx, q, username).
		Scan(&u.Username, &hash, &u.FirstName, &u.LastName, &u.Email, &u.IsAdmin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.VerifyPassword(hash, password) {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}

// Register creates a user, hashing the password first, and links any
// supplied technologies. The duplicate pre-check is an optimization only:
// two concurrent registrations can both pass it, and the unique constraint
// on users.username is what actually guarantees uniqueness, surfacing as a
// ConflictError either way.
func (r *UserRepo) Register(ctx context.Context, p RegisterParams) (*RegisteredUser, error) {
	var existing string
	err := r.db.QueryRowContext(ctx,
		`SELECT username FROM users WHERE username = $1`, p.Username).Scan(&existing)
	if err == nil {
		return nil, &ConflictError{Entity: "username", Key: p.Username}
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hash, err := utils.HashPassword(p.Password, r.bcryptCost)
	if err != nil {
		return nil, err
	}

	const q = `INSERT INTO users (username, password, first_name, last_name, email, is_admin)
	           VALUES ($1, $2, $3, $4, $5, $6)
	           RETURNING ` + userColumns
	var u RegisteredUser
	err = r.db.QueryRowContext(ctx, q, p.Username, hash, p.FirstName, p.LastName, p.Email, p.IsAdmin).
		Scan(&u.Username, &u.FirstName, &u.LastName, &u.Email, &u.IsAdmin)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &ConflictError{Entity: "username", Key: p.Username}
		}
		return nil, err
	}

	if len(p.Technologies) > 0 {
		linked, err := r.tech.AssociateWithUser(ctx, u.Username, p.Technologies)
		if err != nil {
			return nil, err
		}
		u.Technologies = linked
	}
	return &u, nil
}

// FindAll returns every user ordered by username. Password hashes are never
// selected.
func (r *UserRepo) FindAll(ctx context.Context) ([]*model.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY username`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.Username, &u.FirstName, &u.LastName, &u.Email, &u.IsAdmin); err != nil {
			return nil, err
		}
		out = append(out, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches one user with their technology links and applied job ids.
// Both lists are attached only when non-empty. Returns NotFoundError when
// the username is unknown.
func (r *UserRepo) Get(ctx context.Context, username string) (*UserDetail, error) {
	var d UserDetail
	err := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username).
		Scan(&d.Username, &d.FirstName, &d.LastName, &d.Email, &d.IsAdmin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Entity: "user", Key: username}
		}
		return nil, err
	}

	techs, err := r.tech.ForUser(ctx, username)
	if err != nil {
		return nil, err
	}
	if len(techs) > 0 {
		d.Technologies = techs
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT job_id FROM applications WHERE username = $1 ORDER BY job_id`, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var jobIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		jobIDs = append(jobIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(jobIDs) > 0 {
		d.Applications = jobIDs
	}
	return &d, nil
}

// userUpdateColumns translates external field names to column names for
// partial updates; fields absent from the map pass through unchanged.
var userUpdateColumns = map[string]string{
	"firstName": "first_name",
	"lastName":  "last_name",
	"isAdmin":   "is_admin",
}

// Update applies a partial update to a user. When the field set includes a
// password it is re-hashed before the statement is built, so plaintext never
// reaches storage. Returns ErrNoUpdateFields for an empty field set and
// NotFoundError when the username matches no row. The password column is
// never part of the returned row.
func (r *UserRepo) Update(ctx context.Context, username string, fields *UpdateFields) (*model.User, error) {
	if pw, ok := fields.Value("password"); ok {
		plain, _ := pw.(string)
		hash, err := utils.HashPassword(plain, r.bcryptCost)
		if err != nil {
			return nil, err
		}
		fields.Replace("password", hash)
	}

	setClause, args, err := BuildPartialUpdate(fields, userUpdateColumns)
	if err != nil {
		return nil, err
	}
	query := `UPDATE users SET ` + setClause +
		` WHERE username = $` + strconv.Itoa(len(args)+1) +
		` RETURNING ` + userColumns
	args = append(args, username)

	var u model.User
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&u.Username, &u.FirstName, &u.LastName, &u.Email, &u.IsAdmin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Entity: "user", Key: username}
		}
		return nil, err
	}
	return &u, nil
}

// Remove deletes a user by username. Returns NotFoundError when no row
// matched.
func (r *UserRepo) Remove(ctx context.Context, username string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE username = $1`, username)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &NotFoundError{Entity: "user", Key: username}
	}
	return nil
}

// ApplyToJob records a user's application to a job. Both the user and the
// job must exist (NotFoundError otherwise); state defaults to "interested"
// when empty. A second application to the same job surfaces as a
// ConflictError from the composite primary key. The existence checks and
// the insert are separate statements and are not atomic as a group.
func (r *UserRepo) ApplyToJob(ctx context.Context, username string, jobID int64, state string) (*model.Application, error) {
	if err := r.checkUserAndJob(ctx, username, jobID); err != nil {
		return nil, err
	}
	if state == "" {
		state = model.StateInterested
	}
	const q = `INSERT INTO applications (username, job_id, application_state)
	           VALUES ($1, $2, $3)
	           RETURNING job_id, application_state`
	var app model.Application
	err := r.db.QueryRowContext(ctx, q, username, jobID, state).Scan(&app.JobID, &app.State)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &ConflictError{Entity: "application", Key: username + "/" + strconv.FormatInt(jobID, 10)}
		}
		return nil, err
	}
	return &app, nil
}

// UpdateApplication partially updates the application identified by the
// (username, job id) composite key. The key placeholders are computed from
// the length of the SET argument list, so their positions stay correct for
// any number of updated fields.
func (r *UserRepo) UpdateApplication(ctx context.Context, username string, jobID int64, fields *UpdateFields) (*model.Application, error) {
	if err := r.checkUserAndJob(ctx, username, jobID); err != nil {
		return nil, err
	}
	setClause, args, err := BuildPartialUpdate(fields, map[string]string{"state": "application_state"})
	if err != nil {
		return nil, err
	}
	query := `UPDATE applications SET ` + setClause +
		` WHERE username = $` + strconv.Itoa(len(args)+1) +
		` AND job_id = $` + strconv.Itoa(len(args)+2) +
		` RETURNING job_id, application_state`
	args = append(args, username, jobID)

	var app model.Application
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&app.JobID, &app.State)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Entity: "application", Key: username + "/" + strconv.FormatInt(jobID, 10)}
		}
		return nil, err
	}
	return &app, nil
}

func (r *UserRepo) checkUserAndJob(ctx context.Context, username string, jobID int64) error {
	var u string
	err := r.db.QueryRowContext(ctx, `SELECT username FROM users WHERE username = $1`, username).Scan(&u)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &NotFoundError{Entity: "user", Key: username}
		}
		return err
	}
	var id int64
	err = r.db.QueryRowContext(ctx, `SELECT id FROM jobs WHERE id = $1`, jobID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &NotFoundError{Entity: "job", Key: strconv.FormatInt(jobID, 10)}
		}
		return err
	}
	return nil
}
