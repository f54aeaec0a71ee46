package models

import "time"

// StudyProgram is an academic study program authors are affiliated with.
type StudyProgram struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Author is a lecturer identified by NIDN.
type Author struct {
	ID                 int64         `json:"id" db:"id"`
	SintaID            string        `json:"sinta_id" db:"sinta_id"`
	NIDN               string        `json:"nidn" db:"nidn"`
	Name               string        `json:"name" db:"name"`
	Affiliation        string        `json:"affiliation" db:"affiliation"`
	StudyProgramID     *int64        `json:"study_program_id" db:"study_program_id"`
	LastEducation      string        `json:"last_education" db:"last_education"`
	FunctionalPosition string        `json:"functional_position" db:"functional_position"`
	TitlePrefix        *string       `json:"title_prefix" db:"title_prefix"`
	TitleSuffix        *string       `json:"title_suffix" db:"title_suffix"`
	CreatedAt          time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at" db:"updated_at"`
	StudyProgram       *StudyProgram `json:"study_program,omitempty"`
}

// Summary returns the compact shape used on output records.
func (a *Author) Summary() AuthorSummary {
	return AuthorSummary{ID: a.ID, Name: a.Name, NIDN: a.NIDN, SintaID: a.SintaID}
}
