package importers

import (
	"github.com/lppm/research-portal/internal/app/models"
	"github.com/lppm/research-portal/internal/pkg/helpers"
)

// OutputPolicy is the default error policy of book, HKI, Google and Scopus imports.
const OutputPolicy = CollectErrors

// Required headings per sheet.
var (
	BookHeadings   = []string{"judul", "isbn", "kategori", "penerbit", "tahun", "penulis"}
	HKIHeadings    = []string{"nomor_permohonan", "judul", "kategori", "tanggal_permohonan", "status", "penulis"}
	GoogleHeadings = []string{"judul", "jurnal", "akreditasi", "tahun", "penulis", "link"}
	ScopusHeadings = []string{"judul", "identifier", "kuartil", "nama_publikasi", "tahun", "penulis", "link"}
)

// Parsed is a record parsed from a headed row, together with the cells it came from.
type Parsed[T any] struct {
	Row    int
	Record T
	Values map[string]string
}

func requireCell(h Header, r Row, name, label string, failures *Failures) string {
	v := h.Get(r, name)
	if v == "" {
		failures.Add(r.Number, name, h.Values(r), "The "+label+" field is required.")
	}
	return v
}

func requireYear(h Header, r Row, name string, failures *Failures) int {
	raw := h.Get(r, name)
	y, err := ParseYear(raw)
	if err != nil {
		failures.Add(r.Number, name, h.Values(r), "The "+name+" field must be a valid year.")
		return 0
	}
	return y
}

// ParseBookRow parses a book row, appending to failures when it is invalid.
func ParseBookRow(h Header, r Row, failures *Failures) (Parsed[models.Book], bool) {
	before := len(*failures)
	b := models.Book{
		Title:    requireCell(h, r, "judul", "judul", failures),
		ISBN:     helpers.EmptyIfDash(h.Get(r, "isbn")),
		Kategori: requireCell(h, r, "kategori", "kategori", failures),
		Penerbit: helpers.EmptyIfDash(h.Get(r, "penerbit")),
		Year:     requireYear(h, r, "tahun", failures),
		Creators: helpers.EmptyIfDash(h.Get(r, "penulis")),
	}
	return Parsed[models.Book]{Row: r.Number, Record: b, Values: h.Values(r)}, len(*failures) == before
}

// ParseHKIRow parses an HKI row, appending to failures when it is invalid.
func ParseHKIRow(h Header, r Row, failures *Failures) (Parsed[models.HKI], bool) {
	before := len(*failures)
	rec := models.HKI{
		Title:           requireCell(h, r, "judul", "judul", failures),
		NomorPermohonan: requireCell(h, r, "nomor_permohonan", "nomor permohonan", failures),
		Kategori:        requireCell(h, r, "kategori", "kategori", failures),
		Status:          helpers.EmptyIfDash(h.Get(r, "status")),
		Creators:        helpers.EmptyIfDash(h.Get(r, "penulis")),
	}
	date, err := ParseDate(h.Get(r, "tanggal_permohonan"))
	if err != nil {
		failures.Add(r.Number, "tanggal_permohonan", h.Values(r), "The tanggal permohonan field must be a valid date.")
	}
	rec.TanggalPermohonan = date
	return Parsed[models.HKI]{Row: r.Number, Record: rec, Values: h.Values(r)}, len(*failures) == before
}

// ParseGoogleRow parses a Google Scholar row into a publication with a Google venue.
func ParseGoogleRow(h Header, r Row, failures *Failures) (Parsed[models.Publication], bool) {
	before := len(*failures)
	p := models.Publication{
		Title:    requireCell(h, r, "judul", "judul", failures),
		Year:     requireYear(h, r, "tahun", failures),
		Link:     helpers.EmptyIfDash(h.Get(r, "link")),
		Creators: helpers.EmptyIfDash(h.Get(r, "penulis")),
		Venue: models.GoogleVenue{
			Journal:       requireCell(h, r, "jurnal", "jurnal", failures),
			Accreditation: helpers.DefaultIfDash(h.Get(r, "akreditasi"), models.DefaultAccreditation),
		},
	}
	return Parsed[models.Publication]{Row: r.Number, Record: p, Values: h.Values(r)}, len(*failures) == before
}

// ParseScopusRow parses a Scopus row into a publication with a Scopus venue.
func ParseScopusRow(h Header, r Row, failures *Failures) (Parsed[models.Publication], bool) {
	before := len(*failures)
	p := models.Publication{
		Title:    requireCell(h, r, "judul", "judul", failures),
		Year:     requireYear(h, r, "tahun", failures),
		Link:     helpers.EmptyIfDash(h.Get(r, "link")),
		Creators: helpers.EmptyIfDash(h.Get(r, "penulis")),
		Venue: models.ScopusVenue{
			Identifier:      helpers.EmptyIfDash(h.Get(r, "identifier")),
			Quartile:        helpers.DefaultIfDash(h.Get(r, "kuartil"), models.DefaultAccreditation),
			PublicationName: helpers.EmptyIfDash(h.Get(r, "nama_publikasi")),
		},
	}
	return Parsed[models.Publication]{Row: r.Number, Record: p, Values: h.Values(r)}, len(*failures) == before
}

// GooglePublicationFrom converts a parsed Google row for the google_publications table.
func GooglePublicationFrom(p models.Publication) models.GooglePublication {
	venue, _ := p.Venue.(models.GoogleVenue)
	return models.GooglePublication{
		Title:         p.Title,
		Journal:       venue.Journal,
		Accreditation: venue.Accreditation,
		Year:          p.Year,
		Link:          p.Link,
		Creators:      p.Creators,
	}
}
