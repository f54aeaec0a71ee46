package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// PublicationCategory discriminates Google Scholar and Scopus publications.
type PublicationCategory string

const (
	CategoryGoogle PublicationCategory = "google"
	CategoryScopus PublicationCategory = "scopus"
)

// DefaultAccreditation replaces "-" in accreditation and quartile cells.
const DefaultAccreditation = "Jurnal Nasional"

// ParsePublicationCategory validates a category string.
func ParsePublicationCategory(s string) (PublicationCategory, error) {
	switch PublicationCategory(s) {
	case CategoryGoogle, CategoryScopus:
		return PublicationCategory(s), nil
	default:
		return "", fmt.Errorf("unknown publication category %q", s)
	}
}

// Venue holds the category specific fields of a publication. It is implemented only
// by GoogleVenue and ScopusVenue.
type Venue interface {
	Category() PublicationCategory
	venue()
}

// GoogleVenue is the journal information of a Google Scholar publication.
type GoogleVenue struct {
	Accreditation string `json:"accreditation"`
	Journal       string `json:"journal"`
}

func (GoogleVenue) Category() PublicationCategory { return CategoryGoogle }
func (GoogleVenue) venue()                        {}

// ScopusVenue is the source information of a Scopus publication.
type ScopusVenue struct {
	Identifier      string `json:"identifier"`
	Quartile        string `json:"quartile"`
	PublicationName string `json:"publication_name"`
}

func (ScopusVenue) Category() PublicationCategory { return CategoryScopus }
func (ScopusVenue) venue()                        {}

// Publication is an article in the unified publications table.
type Publication struct {
	ID        int64
	Title     string
	Year      int
	Link      string
	Creators  string
	Venue     Venue
	CreatedAt time.Time
	UpdatedAt time.Time
	Authors   []AuthorSummary
}

// Category returns the discriminator derived from the venue.
func (p *Publication) Category() PublicationCategory {
	if p.Venue == nil {
		return ""
	}
	return p.Venue.Category()
}

// Journal returns the name shown in listings: the journal for Google publications,
// the source title for Scopus ones.
func (p *Publication) Journal() string {
	switch v := p.Venue.(type) {
	case GoogleVenue:
		return v.Journal
	case ScopusVenue:
		return v.PublicationName
	}
	return ""
}

// Columns flattens the venue into the nullable table columns
// (accreditation, journal, identifier, quartile, publication_name).
func (p *Publication) Columns() (accreditation, journal, identifier, quartile, publicationName *string) {
	switch v := p.Venue.(type) {
	case GoogleVenue:
		return &v.Accreditation, &v.Journal, nil, nil, nil
	case ScopusVenue:
		return nil, nil, &v.Identifier, &v.Quartile, &v.PublicationName
	}
	return nil, nil, nil, nil, nil
}

// VenueFromColumns rebuilds the venue from a stored row.
func VenueFromColumns(category string, accreditation, journal, identifier, quartile, publicationName *string) (Venue, error) {
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	switch PublicationCategory(category) {
	case CategoryGoogle:
		return GoogleVenue{Accreditation: deref(accreditation), Journal: deref(journal)}, nil
	case CategoryScopus:
		return ScopusVenue{Identifier: deref(identifier), Quartile: deref(quartile), PublicationName: deref(publicationName)}, nil
	}
	return nil, fmt.Errorf("unknown publication category %q", category)
}

type publicationJSON struct {
	ID              int64               `json:"id"`
	Category        PublicationCategory `json:"category"`
	Title           string              `json:"title"`
	Year            int                 `json:"year"`
	Link            string              `json:"link"`
	Creators        string              `json:"creators"`
	Accreditation   *string             `json:"accreditation,omitempty"`
	Journal         *string             `json:"journal,omitempty"`
	Identifier      *string             `json:"identifier,omitempty"`
	Quartile        *string             `json:"quartile,omitempty"`
	PublicationName *string             `json:"publication_name,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
	Authors         []AuthorSummary     `json:"authors"`
}

// MarshalJSON renders the publication flat, with only its category's fields present.
func (p Publication) MarshalJSON() ([]byte, error) {
	acc, journal, ident, quartile, pubName := p.Columns()
	authors := p.Authors
	if authors == nil {
		authors = []AuthorSummary{}
	}
	return json.Marshal(publicationJSON{
		ID:              p.ID,
		Category:        p.Category(),
		Title:           p.Title,
		Year:            p.Year,
		Link:            p.Link,
		Creators:        p.Creators,
		Accreditation:   acc,
		Journal:         journal,
		Identifier:      ident,
		Quartile:        quartile,
		PublicationName: pubName,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		Authors:         authors,
	})
}
