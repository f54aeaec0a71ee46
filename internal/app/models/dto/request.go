package dto

// ListParams carries the search and page query parameters of list endpoints.
type ListParams struct {
	Search   string
	Page     int
	PerPage  int
	Category string
}

// ImportRequest is the multipart form of the import endpoints. The file itself is read
// separately from the form.
type ImportRequest struct {
	ResetTable bool   `form:"reset_table"`
	Category   string `form:"category"`
}

// StudyProgramRequest creates or updates a study program.
type StudyProgramRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// AuthorRequest creates or updates an author.
type AuthorRequest struct {
	SintaID            string  `json:"sinta_id" binding:"required,max=255"`
	NIDN               string  `json:"nidn" binding:"required,max=255"`
	Name               string  `json:"name" binding:"required,max=255"`
	Affiliation        string  `json:"affiliation" binding:"required,max=255"`
	StudyProgramID     *int64  `json:"study_program_id" binding:"omitempty,min=1"`
	LastEducation      string  `json:"last_education" binding:"required,max=255"`
	FunctionalPosition string  `json:"functional_position" binding:"required,max=255"`
	TitlePrefix        *string `json:"title_prefix" binding:"omitempty,max=255"`
	TitleSuffix        *string `json:"title_suffix" binding:"omitempty,max=255"`
}

// BookRequest creates or updates a book.
type BookRequest struct {
	Title     string  `json:"title" binding:"required,max=255"`
	ISBN      string  `json:"isbn" binding:"required,max=255"`
	Kategori  string  `json:"kategori" binding:"required,max=255"`
	Penerbit  string  `json:"penerbit" binding:"required,max=255"`
	Year      int     `json:"year" binding:"required,min=1900,max=2100"`
	AuthorIDs []int64 `json:"author_ids" binding:"omitempty,dive,min=1"`
}

// HKIRequest creates or updates an intellectual property record.
type HKIRequest struct {
	Title             string  `json:"title" binding:"required,max=255"`
	NomorPermohonan   string  `json:"nomor_permohonan" binding:"required,max=255"`
	Kategori          string  `json:"kategori" binding:"required,max=255"`
	TanggalPermohonan string  `json:"tanggal_permohonan" binding:"omitempty,datetime=2006-01-02"`
	Status            string  `json:"status" binding:"required,max=255"`
	AuthorIDs         []int64 `json:"author_ids" binding:"omitempty,dive,min=1"`
}

// PublicationRequest creates or updates a publication. Journal fields are required for
// google publications, source fields for scopus ones.
type PublicationRequest struct {
	Category        string  `json:"category" binding:"required,oneof=google scopus"`
	Title           string  `json:"title" binding:"required,max=255"`
	Year            int     `json:"year" binding:"required,min=1900,max=2100"`
	Link            string  `json:"link" binding:"omitempty,max=2048"`
	Accreditation   string  `json:"accreditation" binding:"required_if=Category google,max=255"`
	Journal         string  `json:"journal" binding:"required_if=Category google,max=255"`
	Identifier      string  `json:"identifier" binding:"max=255"`
	Quartile        string  `json:"quartile" binding:"required_if=Category scopus,max=255"`
	PublicationName string  `json:"publication_name" binding:"required_if=Category scopus,max=255"`
	AuthorIDs       []int64 `json:"author_ids" binding:"omitempty,dive,min=1"`
}

// GooglePublicationRequest creates or updates a Google Scholar publication.
type GooglePublicationRequest struct {
	Title         string  `json:"title" binding:"required,max=255"`
	Journal       string  `json:"journal" binding:"required,max=255"`
	Accreditation string  `json:"accreditation" binding:"required,max=255"`
	Year          int     `json:"year" binding:"required,min=1900,max=2100"`
	Link          string  `json:"link" binding:"omitempty,max=2048"`
	AuthorIDs     []int64 `json:"author_ids" binding:"omitempty,dive,min=1"`
}

// GrantRequest creates or updates a research grant or a community service.
type GrantRequest struct {
	Title           string  `json:"title" binding:"required,max=255"`
	SchemeShortName string  `json:"scheme_short_name" binding:"required,max=255"`
	SchemeName      string  `json:"scheme_name" binding:"required,max=255"`
	ProposalYear    int     `json:"proposal_year" binding:"required,min=1900,max=2100"`
	FundsApproved   float64 `json:"funds_approved" binding:"min=0"`
	FundingSource   string  `json:"funding_source" binding:"required,max=255"`
	AuthorIDs       []int64 `json:"author_ids" binding:"omitempty,dive,min=1"`
}

// CategoryRequest creates or updates a post category. The slug defaults to the name.
type CategoryRequest struct {
	Name string `json:"name" binding:"required,max=255"`
	Slug string `json:"slug" binding:"max=255"`
}

// PageRequest creates or updates a CMS page. The slug defaults to the title.
type PageRequest struct {
	ParentID *int64 `json:"parent_id" binding:"omitempty,min=1"`
	Title    string `json:"title" binding:"required,max=255"`
	Slug     string `json:"slug" binding:"max=255"`
	Content  string `json:"content"`
}

// PostRequest creates or updates a post.
type PostRequest struct {
	PageID     *int64  `json:"page_id" binding:"omitempty,min=1"`
	CategoryID *int64  `json:"category_id" binding:"omitempty,min=1"`
	Title      string  `json:"title" binding:"required,max=255"`
	Slug       string  `json:"slug" binding:"max=255"`
	Content    string  `json:"content" binding:"required"`
	Image      *string `json:"image" binding:"omitempty,max=2048"`
	Status     string  `json:"status" binding:"required,oneof=draft published"`
}
