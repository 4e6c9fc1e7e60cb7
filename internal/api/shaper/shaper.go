// Package shaper derives the external job DTO from a stored row. Every
// derivation is a pure function of the row, the aggregate lookups and
// the passed-in current time, so identical inputs always produce
// identical output.
package shaper

import (
	"database/sql"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/baotrn/jobboard-be/internal/api/domain"
	"github.com/baotrn/jobboard-be/internal/api/dto"
	"github.com/baotrn/jobboard-be/internal/api/model"
)

const (
	featuredPayFloor = 150000
	newWindow        = 7 * 24 * time.Hour
)

// Aggregates carries the per-job lookups produced by the batch
// aggregation queries. Missing keys default to false / empty.
type Aggregates struct {
	Applied  map[int64]bool
	Saved    map[int64]bool
	Benefits map[int64][]string
}

// Shape maps one joined job row to its external DTO.
func Shape(row model.JobRow, agg Aggregates, now time.Time) dto.JobDTO {
	postedAt := row.CreatedAt
	if row.PostedAt.Valid {
		postedAt = row.PostedAt.Time
	}

	isNew := !postedAt.Before(now.Add(-newWindow))
	isFeatured := (row.PayMax.Valid && row.PayMax.Float64 >= featuredPayFloor) ||
		(isNew && row.JobType.String == domain.JobTypeFullTime)

	tags := make([]string, 0, 3)
	if isFeatured {
		tags = append(tags, "Featured")
	}
	if row.JobType.Valid && row.JobType.String != "" {
		tags = append(tags, HumanizeJobType(row.JobType.String))
	}
	if row.LocationType.String == domain.LocationTypeRemote {
		tags = append(tags, "Remote")
	}

	companyName := "Unknown Company"
	if row.CompanyName.Valid && row.CompanyName.String != "" {
		companyName = row.CompanyName.String
	}

	var website *string
	if row.EmployerWebsite.Valid && row.EmployerWebsite.String != "" {
		website = &row.EmployerWebsite.String
	}

	description := row.Description.String
	benefits := agg.Benefits[row.ID]
	if benefits == nil {
		benefits = []string{}
	}

	out := dto.JobDTO{
		ID:    row.ID,
		Title: row.Title,
		Company: dto.CompanyDTO{
			Name:     companyName,
			Location: companyLocation(row),
			Website:  website,
		},
		JobType:          HumanizeJobType(row.JobType.String),
		SalaryRange:      FormatSalaryRange(row.PayMin, row.PayMax),
		Tags:             tags,
		IsFeatured:       isFeatured,
		IsNew:            isNew,
		PostedAt:         timeRef(postedAt),
		Description:      description,
		Overview:         Overview(description),
		Requirements:     Requirements(description),
		Responsibilities: Responsibilities(description),
		Benefits:         benefits,
		ApplicationLink:  website,
		HasApplied:       agg.Applied[row.ID],
		IsSaved:          agg.Saved[row.ID],
	}

	if row.Vacancies.Valid {
		out.Vacancies = &row.Vacancies.Int64
	}
	if row.ClosedAt.Valid {
		out.ClosedAt = timeRef(row.ClosedAt.Time)
	}

	return out
}

// HumanizeJobType turns a stored job_type value into its display label.
// Unknown values fall back to capitalize-first with underscores turned
// into spaces; empty input yields an empty string.
func HumanizeJobType(jobType string) string {
	switch jobType {
	case "":
		return ""
	case domain.JobTypeFullTime:
		return "Full-Time"
	case domain.JobTypePartTime:
		return "Part-Time"
	case domain.JobTypeTemporary:
		return "Temporary"
	case domain.JobTypeContract:
		return "Contract"
	case domain.JobTypeInternship:
		return "Internship"
	case domain.JobTypeFresher:
		return "Fresher"
	default:
		spaced := strings.ReplaceAll(jobType, "_", " ")
		return strings.ToUpper(spaced[:1]) + spaced[1:]
	}
}

// FormatSalaryRange renders the pay bounds as "$50k - $80k" style text,
// or just the present bound; nil when neither bound is present.
func FormatSalaryRange(payMin, payMax sql.NullFloat64) *string {
	minText := formatThousands(payMin)
	maxText := formatThousands(payMax)

	switch {
	case minText != "" && maxText != "":
		s := minText + " - " + maxText
		return &s
	case minText != "":
		return &minText
	case maxText != "":
		return &maxText
	default:
		return nil
	}
}

func formatThousands(v sql.NullFloat64) string {
	if !v.Valid {
		return ""
	}
	return fmt.Sprintf("$%.0fk", math.Round(v.Float64/1000))
}

// companyLocation renders "Remote" for remote postings, otherwise the
// comma-joined non-empty (city, state, country code) sequence, falling
// back to the country code alone.
func companyLocation(row model.JobRow) string {
	if row.LocationType.String == domain.LocationTypeRemote {
		return "Remote"
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{row.City.String, row.StateProv.String, row.CountryCode.String} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	joined := strings.TrimSpace(strings.Join(parts, ", "))
	if joined == "" {
		return row.CountryCode.String
	}
	return joined
}

var sentenceEnd = regexp.MustCompile(`\.(\s+|$)`)

// splitSentences segments free text on periods followed by whitespace
// or end of text, dropping empty segments. This is deliberately a rough
// positional heuristic, not sentence detection.
func splitSentences(description string) []string {
	var out []string
	for _, segment := range sentenceEnd.Split(description, -1) {
		if segment != "" {
			out = append(out, segment)
		}
	}
	return out
}

// Overview joins the first up to three sentence segments back together
// with a trailing period. Empty description yields an empty string.
func Overview(description string) string {
	if description == "" {
		return ""
	}
	sentences := splitSentences(description)
	if len(sentences) > 3 {
		sentences = sentences[:3]
	}
	return strings.Join(sentences, ". ") + "."
}

// Requirements returns the first up to five sentence segments, trimmed.
func Requirements(description string) []string {
	return sentenceSlice(description, 0, 5)
}

// Responsibilities returns sentence segments five through nine, trimmed.
// The requirements/responsibilities split is purely positional.
func Responsibilities(description string) []string {
	return sentenceSlice(description, 5, 5)
}

func sentenceSlice(description string, offset, count int) []string {
	if description == "" {
		return []string{}
	}
	sentences := splitSentences(description)
	if offset >= len(sentences) {
		return []string{}
	}
	sentences = sentences[offset:]
	if len(sentences) > count {
		sentences = sentences[:count]
	}
	out := make([]string, len(sentences))
	for i, s := range sentences {
		out[i] = strings.TrimSpace(s)
	}
	return out
}

func timeRef(t time.Time) *string {
	s := t.UTC().Format(time.RFC3339)
	return &s
}
