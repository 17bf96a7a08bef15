// Package repository contains data access logic separated from HTTP handlers.
// This file implements the shared technology registry and its many-to-many
// links to jobs and users. The registry is lazy: a technology is created the
// first time anything references it, and lookups are case-insensitive so the
// registry never holds both "Python" and "python".
package repository

import (
	"context"
	"database/sql"
	"errors"
)

// TechnologyRepo manages the `technologies` table and the association
// tables `job_technologies` and `user_technologies`.
type TechnologyRepo struct {
	db *sql.DB
}

func NewTechnologyRepo(db *sql.DB) *TechnologyRepo {
	return &TechnologyRepo{db: db}
}

// AssociateWithJob links each named technology to the job, creating registry
// entries as needed, and returns the canonical names in processed order.
func (r *TechnologyRepo) AssociateWithJob(ctx context.Context, jobID int64, names []string) ([]string, error) {
	return r.associate(ctx,
		"INSERT INTO job_technologies (job_id, technology) VALUES ($1, $2) RETURNING technology",
		jobID, names)
}

// AssociateWithUser links each named technology to the user, creating
// registry entries as needed, and returns the canonical names in processed
// order.
func (r *TechnologyRepo) AssociateWithUser(ctx context.Context, username string, names []string) ([]string, error) {
	return r.associate(ctx,
		"INSERT INTO user_technologies (username, technology) VALUES ($1, $2) RETURNING technology",
		username, names)
}

// associate runs the lookup-or-create plus link sequence for every name in
// order. Duplicates in the input are each processed; callers wanting
// idempotence must dedupe upstream. An empty name list performs no I/O and
// returns nil, which downstream serialization renders as an absent field
// rather than an empty list.
func (r *TechnologyRepo) associate(ctx context.Context, linkSQL string, parentKey any, names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}
	linked := make([]string, 0, len(names))
	for _, name := range names {
		canonical, err := r.ensureCanonical(ctx, name)
		if err != nil {
			return nil, err
		}
		var stored string
		if err := r.db.QueryRowContext(ctx, linkSQL, parentKey, canonical).Scan(&stored); err != nil {
			if isUniqueViolation(err) {
				return nil, &ConflictError{Entity: "technology link", Key: canonical}
			}
			return nil, err
		}
		linked = append(linked, stored)
	}
	return linked, nil
}

// ensureCanonical resolves name against the registry case-insensitively,
// inserting it with the caller's casing when absent. The stored spelling is
// returned either way, so "python" resolves to an existing "Python".
func (r *TechnologyRepo) ensureCanonical(ctx context.Context, name string) (string, error) {
	var canonical string
	err := r.db.QueryRowContext(ctx,
		"SELECT name FROM technologies WHERE name ILIKE $1", name).Scan(&canonical)
	if err == nil {
		return canonical, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}
	if err := r.db.QueryRowContext(ctx,
		"INSERT INTO technologies (name) VALUES ($1) RETURNING name", name).Scan(&canonical); err != nil {
		return "", err
	}
	return canonical, nil
}

// ForJob returns the technologies linked to a job in insertion order. A job
// with no links yields nil.
func (r *TechnologyRepo) ForJob(ctx context.Context, jobID int64) ([]string, error) {
	return r.list(ctx, "SELECT technology FROM job_technologies WHERE job_id = $1 ORDER BY id", jobID)
}

// ForUser returns the technologies linked to a user in insertion order. A
// user with no links yields nil.
func (r *TechnologyRepo) ForUser(ctx context.Context, username string) ([]string, error) {
	return r.list(ctx, "SELECT technology FROM user_technologies WHERE username = $1 ORDER BY id", username)
}

func (r *TechnologyRepo) list(ctx context.Context, query string, key any) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
