package model

// Company represents a row in the `companies` table. The handle is the
// stable unique key used by jobs to reference their owning company; it is
// immutable after creation while every other field can be changed by an
// admin.
//
// Fields:
//  Handle       – unique, lowercase textual key of the company.
//  Name         – display name, unique across companies.
//  Description  – free-text description.
//  NumEmployees – employee count (nullable).
//  LogoURL      – URL of the company logo (nullable).
type Company struct {
	Handle       string  `json:"handle"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	NumEmployees *int64  `json:"numEmployees"`
	LogoURL      *string `json:"logoUrl"`
}
