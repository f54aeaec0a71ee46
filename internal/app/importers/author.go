package importers

import (
	"github.com/lppm/research-portal/internal/app/models"
	"github.com/lppm/research-portal/internal/pkg/helpers"
)

// Author sheet columns.
const (
	authorColName = iota + 1
	authorColNIDN
	authorColSintaID
	authorColAffiliation
	authorColStudyProgram
	authorColLastEducation
	authorColFunctionalPosition
	authorColTitlePrefix
	authorColTitleSuffix
)

// AuthorColumns names the author sheet columns.
var AuthorColumns = []string{"", "name", "nidn", "sinta_id", "affiliation", "study_program",
	"last_education", "functional_position", "title_prefix", "title_suffix"}

// AuthorPolicy is the default error policy of author imports.
const AuthorPolicy = FailFast

// AuthorRecord is a parsed author row. StudyProgram is resolved by name at persist time.
type AuthorRecord struct {
	Row          int
	Author       models.Author
	StudyProgram string
}

// ParseAuthorRow parses an author row. Name and NIDN are required.
func ParseAuthorRow(r Row) (AuthorRecord, error) {
	rec := AuthorRecord{
		Row: r.Number,
		Author: models.Author{
			Name:               r.Cell(authorColName),
			NIDN:               helpers.EmptyIfDash(r.Cell(authorColNIDN)),
			SintaID:            helpers.EmptyIfDash(r.Cell(authorColSintaID)),
			Affiliation:        helpers.EmptyIfDash(r.Cell(authorColAffiliation)),
			LastEducation:      helpers.EmptyIfDash(r.Cell(authorColLastEducation)),
			FunctionalPosition: helpers.EmptyIfDash(r.Cell(authorColFunctionalPosition)),
			TitlePrefix:        helpers.NullIfDash(r.Cell(authorColTitlePrefix)),
			TitleSuffix:        helpers.NullIfDash(r.Cell(authorColTitleSuffix)),
		},
		StudyProgram: helpers.EmptyIfDash(r.Cell(authorColStudyProgram)),
	}

	if rec.Author.Name == "" {
		return rec, rowError(r.Number, "name", "name is required")
	}
	if rec.Author.NIDN == "" {
		return rec, rowError(r.Number, "nidn", "NIDN is required")
	}
	return rec, nil
}
