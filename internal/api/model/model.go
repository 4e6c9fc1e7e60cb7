package model

import (
	"database/sql"
	"time"
)

// JobRow is one row of the main search query: the jobs table plus the
// joined employer and category columns. Nullable columns use sql.Null
// types so inconsistent stored data (missing pay bounds, orphaned
// employer id) degrades instead of failing the scan.
type JobRow struct {
	ID           int64           `db:"id"`
	Title        string          `db:"title"`
	Description  sql.NullString  `db:"description"`
	JobType      sql.NullString  `db:"job_type"`
	LocationType sql.NullString  `db:"location_type"`
	City         sql.NullString  `db:"city"`
	StateProv    sql.NullString  `db:"state_province"`
	CountryCode  sql.NullString  `db:"country_code"`
	CountryName  sql.NullString  `db:"country_name"`
	PayMin       sql.NullFloat64 `db:"pay_min"`
	PayMax       sql.NullFloat64 `db:"pay_max"`
	Currency     sql.NullString  `db:"currency"`
	Vacancies    sql.NullInt64   `db:"vacancies"`
	Status       string          `db:"status"`
	PostedAt     sql.NullTime    `db:"posted_at"`
	ClosedAt     sql.NullTime    `db:"closed_at"`
	CreatedAt    time.Time       `db:"created_at"`
	CategoryID   sql.NullInt64   `db:"category_id"`
	EmployerID   sql.NullInt64   `db:"employer_id"`

	// Joined columns
	CompanyName     sql.NullString `db:"company_name"`
	EmployerWebsite sql.NullString `db:"employer_website"`
	CategoryName    sql.NullString `db:"category_name"`
}

// Lookup is a generic {id, name} row used for the benefit and category
// dropdown lists.
type Lookup struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// EmployerLookup is an {id, company_name} row for the employer dropdown.
type EmployerLookup struct {
	ID          int64  `db:"id"`
	CompanyName string `db:"company_name"`
}

// JobBenefitName links a job id to one benefit name in the batched
// benefits query.
type JobBenefitName struct {
	JobID int64  `db:"job_id"`
	Name  string `db:"name"`
}
