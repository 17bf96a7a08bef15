package model

// Job mirrors the `jobs` table. Salary and Equity are nullable columns and
// therefore pointers; equity is a NUMERIC column and surfaces as its string
// representation (e.g. "0.1") to avoid float rounding. CompanyHandle is
// immutable after creation.
type Job struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	Salary        *int64  `json:"salary"`
	Equity        *string `json:"equity"`
	CompanyHandle string  `json:"companyHandle"`
}
