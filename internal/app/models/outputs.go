package models

import "time"

// Book is a published book written by one or more authors.
type Book struct {
	ID        int64           `json:"id" db:"id"`
	Title     string          `json:"title" db:"title"`
	ISBN      string          `json:"isbn" db:"isbn"`
	Kategori  string          `json:"kategori" db:"kategori"`
	Penerbit  string          `json:"penerbit" db:"penerbit"`
	Year      int             `json:"year" db:"year"`
	Creators  string          `json:"creators" db:"creators"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
	Authors   []AuthorSummary `json:"authors"`
}

// HKI is an intellectual property registration (copyright, patent, ...).
type HKI struct {
	ID                int64           `json:"id" db:"id"`
	Title             string          `json:"title" db:"title"`
	NomorPermohonan   string          `json:"nomor_permohonan" db:"nomor_permohonan"`
	Kategori          string          `json:"kategori" db:"kategori"`
	TanggalPermohonan *time.Time      `json:"tanggal_permohonan" db:"tanggal_permohonan"`
	Status            string          `json:"status" db:"status"`
	Creators          string          `json:"creators" db:"creators"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at" db:"updated_at"`
	Authors           []AuthorSummary `json:"authors"`
}

// GooglePublication is a Google Scholar indexed article.
type GooglePublication struct {
	ID            int64           `json:"id" db:"id"`
	Title         string          `json:"title" db:"title"`
	Journal       string          `json:"journal" db:"journal"`
	Accreditation string          `json:"accreditation" db:"accreditation"`
	Year          int             `json:"year" db:"year"`
	Link          string          `json:"link" db:"link"`
	Creators      string          `json:"creators" db:"creators"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
	Authors       []AuthorSummary `json:"authors"`
}

// Grant is the shared shape of research grants and community services.
type Grant struct {
	ID              int64           `json:"id" db:"id"`
	Title           string          `json:"title" db:"title"`
	SchemeShortName string          `json:"scheme_short_name" db:"scheme_short_name"`
	SchemeName      string          `json:"scheme_name" db:"scheme_name"`
	ProposalYear    int             `json:"proposal_year" db:"proposal_year"`
	FundsApproved   float64         `json:"funds_approved" db:"funds_approved"`
	FundingSource   string          `json:"funding_source" db:"funding_source"`
	Creators        string          `json:"creators" db:"creators"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
	Authors         []AuthorSummary `json:"authors"`
}

// Research is a funded research grant.
type Research = Grant

// CommunityService is a funded community service activity.
type CommunityService = Grant
