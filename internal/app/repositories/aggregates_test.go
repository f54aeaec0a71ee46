package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchConditionBuildsILikeOverColumns(t *testing.T) {
	cond := searchCondition("  Airlangga ", "title", "creators")
	require.NotNil(t, cond)

	sql, args, err := newBuilder().Select("id").From("books").Where(cond).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM books WHERE (title ILIKE $1 OR creators ILIKE $2)", sql)
	assert.Equal(t, []interface{}{"%Airlangga%", "%Airlangga%"}, args)
}

func TestSearchConditionBlank(t *testing.T) {
	assert.Nil(t, searchCondition("   ", "title"))
	assert.Nil(t, searchCondition("x"))
}

func TestBookSearchColumnsExcludePublisher(t *testing.T) {
	assert.NotContains(t, bookSearchColumns, "penerbit")
	assert.ElementsMatch(t, []string{"title", "creators"}, bookSearchColumns)
}

func TestOutputTablesJoinKeys(t *testing.T) {
	tables := map[string]outputTable{
		"books":               booksTable,
		"hkis":                hkisTable,
		"publications":        publicationsTable,
		"google_publications": googlePublicationsTable,
		"research":            researchTable,
		"services":            servicesTable,
	}
	for name, table := range tables {
		assert.Equal(t, name, table.name)
		assert.NotEmpty(t, table.link.table, name)
		assert.NotEmpty(t, table.link.entityKey, name)
		assert.NotEmpty(t, table.groupColumn, name)
		assert.NotEmpty(t, table.yearColumn, name)
	}
}

func TestGroupedQueryWithoutProgramFilter(t *testing.T) {
	sql, args, err := booksTable.groupedQuery(0).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT t.kategori, COUNT(DISTINCT t.id) FROM books t GROUP BY t.kategori ORDER BY t.kategori", sql)
	assert.Empty(t, args)
}

func TestGroupedQueryFiltersThroughAuthors(t *testing.T) {
	sql, args, err := researchTable.groupedQuery(7).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "JOIN author_research j ON j.research_id = t.id")
	assert.Contains(t, sql, "JOIN authors a ON a.id = j.author_id")
	assert.Contains(t, sql, "WHERE a.study_program_id = $1")
	assert.Equal(t, []interface{}{int64(7)}, args)
}

func TestProgramChartQueryKeepsYearInJoin(t *testing.T) {
	sql, args, err := booksTable.programChartQuery(2023).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "FROM study_programs sp LEFT JOIN authors a ON a.study_program_id = sp.id")
	assert.Contains(t, sql, "LEFT JOIN books t ON t.id = j.book_id AND t.year = $1")
	assert.NotContains(t, sql, "WHERE")
	assert.Equal(t, []interface{}{2023}, args)
}

func TestProgramChartQueryWithoutYear(t *testing.T) {
	sql, args, err := hkisTable.programChartQuery(0).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "LEFT JOIN hkis t ON t.id = j.hki_id GROUP BY")
	assert.Empty(t, args)
}
