package dto

// CompanyDTO is the employer block nested in each job result.
type CompanyDTO struct {
	Name     string  `json:"name"`
	Location string  `json:"location"`
	Website  *string `json:"website"`
}

// JobDTO is the external shape of one job posting, including the
// derived presentation fields.
type JobDTO struct {
	ID               int64      `json:"id"`
	Title            string     `json:"title"`
	Company          CompanyDTO `json:"company"`
	Vacancies        *int64     `json:"vacancies"`
	JobType          string     `json:"job_type"`
	SalaryRange      *string    `json:"salary_range"`
	Tags             []string   `json:"tags"`
	IsFeatured       bool       `json:"is_featured"`
	IsNew            bool       `json:"is_new"`
	PostedAt         *string    `json:"posted_at"`
	ClosedAt         *string    `json:"closed_at"`
	Description      string     `json:"description"`
	Overview         string     `json:"overview"`
	Requirements     []string   `json:"requirements"`
	Responsibilities []string   `json:"responsibilities"`
	Benefits         []string   `json:"benefits"`
	ApplicationLink  *string    `json:"application_link"`
	HasApplied       bool       `json:"has_applied"`
	IsSaved          bool       `json:"is_saved"`
}

// LookupDTO is an {id, name} entry for the benefit and category lists.
type LookupDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// EmployerLookupDTO is an {id, company_name} entry for the employer list.
type EmployerLookupDTO struct {
	ID          int64  `json:"id"`
	CompanyName string `json:"company_name"`
}

// PaginationDTO is the paging envelope of the list endpoint.
type PaginationDTO struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	TotalJobs   int64 `json:"total_jobs"`
}

// SearchJobsResponse is the list/search endpoint payload.
type SearchJobsResponse struct {
	Data       []JobDTO            `json:"data"`
	Benefits   []LookupDTO         `json:"benefits"`
	Categories []LookupDTO         `json:"categories"`
	Employers  []EmployerLookupDTO `json:"employers"`
	Pagination PaginationDTO       `json:"pagination"`
}

// HeroStatsResponse is the landing-page stats payload.
type HeroStatsResponse struct {
	TotalJobs       int64 `json:"total_jobs"`
	TotalSeekers    int64 `json:"total_seekers"`
	TotalEmployers  int64 `json:"total_employers"`
	CompaniesHiring int64 `json:"companies_hiring"`
}
