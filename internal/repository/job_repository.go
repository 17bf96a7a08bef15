// This file defines repository methods for jobs. A Job belongs to exactly
// one company and may be linked to any number of technologies via the
// shared registry.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/EsmaNErdem/jobly/internal/model"
)

// JobRow is a single result of a job listing. It carries the owning
// company's display name next to the job columns so list views need no
// follow-up lookup.
type JobRow struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Salary        *int64  `json:"salary"`
	Equity        *string `json:"equity"`
	CompanyHandle string  `json:"companyHandle"`
	CompanyName   *string `json:"companyName"`
}

// JobDetail is the full single-job view: the job columns plus a nested
// company object and, when any links exist, the linked technologies. The
// Technologies field is omitted entirely from JSON when nil; consumers
// observe absence, not an empty list.
type JobDetail struct {
	ID           int64        `json:"id"`
	Title        string       `json:"title"`
	Salary       *int64       `json:"salary"`
	Equity       *string      `json:"equity"`
	Company      CompanyBrief `json:"company"`
	Technologies []string     `json:"technologies,omitempty"`
}

// CompanyBrief is the company information nested inside a JobDetail.
type CompanyBrief struct {
	CompanyHandle      string  `json:"companyHandle"`
	CompanyName        string  `json:"companyName"`
	CompanyDescription string  `json:"companyDescription"`
	NumEmployees       *int64  `json:"numEmployees"`
	LogoURL            *string `json:"logoUrl"`
}

// CreatedJob is what Create returns: the inserted row plus the linked
// technologies when any were supplied.
type CreatedJob struct {
	model.Job
	Technologies []string `json:"technologies,omitempty"`
}

// JobRepo encapsulates all database queries related to jobs.
type JobRepo struct {
	db   *sql.DB
	tech *TechnologyRepo
}

func NewJobRepo(db *sql.DB, tech *TechnologyRepo) *JobRepo {
	return &JobRepo{db: db, tech: tech}
}

// Create inserts a job and, when technologies are supplied, links each of
// them through the shared registry. The returned job carries a technologies
// list only when the caller supplied one. The insert and the links are
// separate statements; callers needing atomicity must wrap the call in a
// transaction themselves.
func (r *JobRepo) Create(ctx context.Context, title string, salary *int64, equity *string, companyHandle string, technologies []string) (*CreatedJob, error) {
	const q = `INSERT INTO jobs (title, salary, equity, company_handle)
	           VALUES ($1, $2, $3, $4)
	           RETURNING id, title, salary, equity, company_handle`
	var (
		job       CreatedJob
		nulSalary sql.NullInt64
		nulEquity sql.NullString
	)
	err := r.db.QueryRowContext(ctx, q, title, salary, equity, companyHandle).
		Scan(&job.ID, &job.Title, &nulSalary, &nulEquity, &job.CompanyHandle)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, &NotFoundError{Entity: "company", Key: companyHandle}
		}
		return nil, err
	}
	job.Salary = nullableInt(nulSalary)
	job.Equity = nullableString(nulEquity)

	if len(technologies) > 0 {
		linked, err := r.tech.AssociateWithJob(ctx, job.ID, technologies)
		if err != nil {
			return nil, err
		}
		job.Technologies = linked
	}
	return &job, nil
}

// FindAll returns job summaries matching the optional filters, ordered by
// title. The projection always left-joins the owning company to surface its
// display name; with no filters every job is returned.
func (r *JobRepo) FindAll(ctx context.Context, filters JobSearchFilters) ([]*JobRow, error) {
	where, args := compileJobSearch(filters)

	query := `SELECT j.id, j.title, j.salary, j.equity, j.company_handle, c.name
	          FROM jobs j
	          LEFT JOIN companies c ON j.company_handle = c.handle`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY j.title"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*JobRow, 0)
	for rows.Next() {
		var (
			j         JobRow
			nulSalary sql.NullInt64
			nulEquity sql.NullString
			nulName   sql.NullString
		)
		if err := rows.Scan(&j.ID, &j.Title, &nulSalary, &nulEquity, &j.CompanyHandle, &nulName); err != nil {
			return nil, err
		}
		j.Salary = nullableInt(nulSalary)
		j.Equity = nullableString(nulEquity)
		j.CompanyName = nullableString(nulName)
		out = append(out, &j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches one job by id and assembles the detail view: a second lookup
// keyed on the stored company handle fills the nested company object, and a
// third fetches the technology links. Technologies is attached only when at
// least one link exists. Returns NotFoundError when the id is unknown.
func (r *JobRepo) Get(ctx context.Context, id int64) (*JobDetail, error) {
	const qJob = `SELECT id, title, salary, equity, company_handle FROM jobs WHERE id = $1`
	var (
		d         JobDetail
		handle    string
		nulSalary sql.NullInt64
		nulEquity sql.NullString
	)
	err := r.db.QueryRowContext(ctx, qJob, id).Scan(&d.ID, &d.Title, &nulSalary, &nulEquity, &handle)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Entity: "job", Key: strconv.FormatInt(id, 10)}
		}
		return nil, err
	}
	d.Salary = nullableInt(nulSalary)
	d.Equity = nullableString(nulEquity)

	const qCompany = `SELECT handle, name, description, num_employees, logo_url
	                  FROM companies WHERE handle = $1`
	var (
		nulEmployees sql.NullInt64
		nulLogo      sql.NullString
	)
	err = r.db.QueryRowContext(ctx, qCompany, handle).Scan(
		&d.Company.CompanyHandle, &d.Company.CompanyName, &d.Company.CompanyDescription,
		&nulEmployees, &nulLogo)
	if err != nil {
		return nil, err
	}
	d.Company.NumEmployees = nullableInt(nulEmployees)
	d.Company.LogoURL = nullableString(nulLogo)

	techs, err := r.tech.ForJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(techs) > 0 {
		d.Technologies = techs
	}
	return &d, nil
}

// Update applies a partial update restricted to the mutable fields title,
// salary and equity. Field names already match the column names so no
// translation map is needed. Returns ErrNoUpdateFields when fields is empty
// and NotFoundError when the id matches no row.
func (r *JobRepo) Update(ctx context.Context, id int64, fields *UpdateFields) (*model.Job, error) {
	setClause, args, err := BuildPartialUpdate(fields, nil)
	if err != nil {
		return nil, err
	}
	query := `UPDATE jobs SET ` + setClause +
		` WHERE id = $` + strconv.Itoa(len(args)+1) +
		` RETURNING id, title, salary, equity, company_handle`
	args = append(args, id)

	var (
		job       model.Job
		nulSalary sql.NullInt64
		nulEquity sql.NullString
	)
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&job.ID, &job.Title, &nulSalary, &nulEquity, &job.CompanyHandle)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Entity: "job", Key: strconv.FormatInt(id, 10)}
		}
		return nil, err
	}
	job.Salary = nullableInt(nulSalary)
	job.Equity = nullableString(nulEquity)
	return &job, nil
}

// Remove deletes a job by id. Returns NotFoundError when no row matched;
// deletion never succeeds silently. Technology links go with the row via
// the ON DELETE CASCADE on job_technologies.
func (r *JobRepo) Remove(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &NotFoundError{Entity: "job", Key: strconv.FormatInt(id, 10)}
	}
	return nil
}

func nullableInt(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}

func nullableString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}
