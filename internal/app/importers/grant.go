package importers

import (
	"strings"

	"github.com/lppm/research-portal/internal/app/models"
	"github.com/lppm/research-portal/internal/pkg/helpers"
)

// Research and service sheet columns.
const (
	grantColTitle = iota + 1
	grantColNIDNs
	grantColLeader
	grantColSchemeShortName
	grantColSchemeName
	grantColYear
	grantColFunds
	grantColFundingSource
)

// GrantColumns names the research and service sheet columns.
var GrantColumns = []string{"", "title", "nidn", "leader", "scheme_short_name", "scheme_name",
	"proposal_year", "funds_approved", "funding_source"}

// GrantPolicy is the default error policy of research and service imports.
const GrantPolicy = FailFast

// GrantRecord is a parsed research or service row. Authors are looked up by NIDN at
// persist time.
type GrantRecord struct {
	Row    int
	Grant  models.Grant
	NIDNs  []string
	Leader string
}

// SplitNIDNs splits a comma, semicolon or newline separated NIDN cell, dropping blanks
// and duplicates while keeping order.
func SplitNIDNs(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n' || r == '\r'
	})
	seen := make(map[string]bool, len(parts))
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || p == "-" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// ScanNIDNs returns the NIDN list of every row, for the pre-scan that runs before any
// write.
func ScanNIDNs(rows []Row) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = SplitNIDNs(r.Cell(grantColNIDNs))
	}
	return out
}

// ParseGrantRow parses a research or service row.
func ParseGrantRow(r Row) (GrantRecord, error) {
	rec := GrantRecord{
		Row:    r.Number,
		NIDNs:  SplitNIDNs(r.Cell(grantColNIDNs)),
		Leader: helpers.EmptyIfDash(r.Cell(grantColLeader)),
		Grant: models.Grant{
			Title:           r.Cell(grantColTitle),
			SchemeShortName: helpers.EmptyIfDash(r.Cell(grantColSchemeShortName)),
			SchemeName:      helpers.EmptyIfDash(r.Cell(grantColSchemeName)),
			FundingSource:   helpers.EmptyIfDash(r.Cell(grantColFundingSource)),
		},
	}

	if rec.Grant.Title == "" {
		return rec, rowError(r.Number, "title", "title is required")
	}

	year, err := ParseYear(r.Cell(grantColYear))
	if err != nil {
		return rec, rowError(r.Number, "proposal_year", "invalid proposal year: %v", err)
	}
	rec.Grant.ProposalYear = year

	funds, err := helpers.ParseRupiah(r.Cell(grantColFunds))
	if err != nil {
		return rec, rowError(r.Number, "funds_approved", "invalid approved funds %q", r.Cell(grantColFunds))
	}
	rec.Grant.FundsApproved = funds

	return rec, nil
}
