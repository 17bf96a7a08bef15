// This file defines repository methods for companies. A company is keyed by
// its handle, which jobs reference and which never changes after creation.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/EsmaNErdem/jobly/internal/model"
)

// CompanySearchFilters defines the optional filters recognized by
// CompanyRepo.FindAll.
type CompanySearchFilters struct {
	Name         *string
	MinEmployees *int64
	MaxEmployees *int64
}

// CompanyDetail is the single-company view: the company columns plus the
// jobs it owns. Jobs is always present, possibly empty.
type CompanyDetail struct {
	model.Company
	Jobs []CompanyJob `json:"jobs"`
}

// CompanyJob is a job row as listed inside a CompanyDetail; the handle is
// implied by the parent and not repeated.
type CompanyJob struct {
	ID     int64   `json:"id"`
	Title  string  `json:"title"`
	Salary *int64  `json:"salary"`
	Equity *string `json:"equity"`
}

// CompanyRepo encapsulates all database queries related to companies.
type CompanyRepo struct {
	db *sql.DB
}

func NewCompanyRepo(db *sql.DB) *CompanyRepo {
	return &CompanyRepo{db: db}
}

const companyColumns = `handle, name, description, num_employees, logo_url`

// Create inserts a company. A duplicate handle or display name surfaces as
// a ConflictError.
func (r *CompanyRepo) Create(ctx context.Context, c *model.Company) (*model.Company, error) {
	const q = `INSERT INTO companies (handle, name, description, num_employees, logo_url)
	           VALUES ($1, $2, $3, $4, $5)
	           RETURNING ` + companyColumns
	var out model.Company
	err := scanCompany(r.db.QueryRowContext(ctx, q,
		c.Handle, c.Name, c.Description, c.NumEmployees, c.LogoURL), &out)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &ConflictError{Entity: "company", Key: c.Handle}
		}
		return nil, err
	}
	return &out, nil
}

// compileCompanySearch builds the WHERE predicates for a company listing in
// declaration order (name, minEmployees, maxEmployees). It rejects a range
// whose minimum exceeds its maximum before any query is composed.
func compileCompanySearch(f CompanySearchFilters) ([]string, []any, error) {
	if f.MinEmployees != nil && f.MaxEmployees != nil && *f.MinEmployees > *f.MaxEmployees {
		return nil, nil, ErrEmployeeRange
	}
	where := []string{}
	args := []any{}
	if f.Name != nil && *f.Name != "" {
		args = append(args, "%"+*f.Name+"%")
		where = append(where, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if f.MinEmployees != nil {
		args = append(args, *f.MinEmployees)
		where = append(where, fmt.Sprintf("num_employees >= $%d", len(args)))
	}
	if f.MaxEmployees != nil {
		args = append(args, *f.MaxEmployees)
		where = append(where, fmt.Sprintf("num_employees <= $%d", len(args)))
	}
	return where, args, nil
}

// FindAll returns companies matching the optional filters, ordered by name.
func (r *CompanyRepo) FindAll(ctx context.Context, filters CompanySearchFilters) ([]*model.Company, error) {
	where, args, err := compileCompanySearch(filters)
	if err != nil {
		return nil, err
	}
	query := `SELECT ` + companyColumns + ` FROM companies`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY name"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Company, 0)
	for rows.Next() {
		var c model.Company
		if err := scanCompany(rows, &c); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches one company and the jobs it owns. Returns NotFoundError when
// the handle is unknown.
func (r *CompanyRepo) Get(ctx context.Context, handle string) (*CompanyDetail, error) {
	var d CompanyDetail
	err := scanCompany(r.db.QueryRowContext(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE handle = $1`, handle), &d.Company)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Entity: "company", Key: handle}
		}
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, salary, equity FROM jobs WHERE company_handle = $1 ORDER BY id`, handle)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	d.Jobs = make([]CompanyJob, 0)
	for rows.Next() {
		var (
			j         CompanyJob
			nulSalary sql.NullInt64
			nulEquity sql.NullString
		)
		if err := rows.Scan(&j.ID, &j.Title, &nulSalary, &nulEquity); err != nil {
			return nil, err
		}
		j.Salary = nullableInt(nulSalary)
		j.Equity = nullableString(nulEquity)
		d.Jobs = append(d.Jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &d, nil
}

// companyUpdateColumns translates external field names to column names for
// partial updates.
var companyUpdateColumns = map[string]string{
	"numEmployees": "num_employees",
	"logoUrl":      "logo_url",
}

// Update applies a partial update to a company's mutable fields. The handle
// itself is immutable and only ever appears in the key predicate.
func (r *CompanyRepo) Update(ctx context.Context, handle string, fields *UpdateFields) (*model.Company, error) {
	setClause, args, err := BuildPartialUpdate(fields, companyUpdateColumns)
	if err != nil {
		return nil, err
	}
	query := `UPDATE companies SET ` + setClause +
		` WHERE handle = $` + strconv.Itoa(len(args)+1) +
		` RETURNING ` + companyColumns
	args = append(args, handle)

	var c model.Company
	if err := scanCompany(r.db.QueryRowContext(ctx, query, args...), &c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Entity: "company", Key: handle}
		}
		return nil, err
	}
	return &c, nil
}

// Remove deletes a company by handle; its jobs go with it via ON DELETE
// CASCADE. Returns NotFoundError when no row matched.
func (r *CompanyRepo) Remove(ctx context.Context, handle string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM companies WHERE handle = $1`, handle)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &NotFoundError{Entity: "company", Key: handle}
	}
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanCompany(row rowScanner, c *model.Company) error {
	var (
		nulEmployees sql.NullInt64
		nulLogo      sql.NullString
	)
	if err := row.Scan(&c.Handle, &c.Name, &c.Description, &nulEmployees, &nulLogo); err != nil {
		return err
	}
	c.NumEmployees = nullableInt(nulEmployees)
	c.LogoURL = nullableString(nulLogo)
	return nil
}
