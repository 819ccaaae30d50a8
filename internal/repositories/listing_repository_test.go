package repositories

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"

	"tawzif_backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, EscapeLike("100%"))
	assert.Equal(t, `a\_b`, EscapeLike("a_b"))
	assert.Equal(t, `c:\\dir`, EscapeLike(`c:\dir`))
	assert.Equal(t, "مطور", EscapeLike("مطور"))
}

// hasLimit - gorm пишет LIMIT либо литералом, либо параметром
func hasLimit(sql string, vars []interface{}, n int) bool {
	return strings.Contains(sql, "LIMIT "+strconv.Itoa(n)) || slices.Contains(vars, interface{}(n))
}

func TestListingsQuery_SQL(t *testing.T) {
	var out []models.Listing
	stmt := (&ListingRepositoryImpl{}).listingsQuery(dryRunDB(t), ListingCriteria{
		PostType:    models.PostTypeSeekingWorker,
		SearchQuery: "  go_dev ",
		Country:     "Morocco",
		WorkType:    models.WorkTypeRemote,
		Limit:       21,
		Offset:      40,
	}).Find(&out).Statement
	sql := stmt.SQL.String()

	assert.Contains(t, sql, `"listings"."deleted_at" IS NULL`)
	assert.Contains(t, sql, "post_type = ")
	assert.Contains(t, sql, "country = ")
	assert.Contains(t, sql, "work_type = ")
	assert.Contains(t, sql, "title ILIKE")
	assert.Contains(t, sql, "description ILIKE")
	assert.Contains(t, sql, "owner_name ILIKE")
	assert.Regexp(t, regexp.MustCompile(`ORDER BY created_at DESC,\s*id ASC`), sql)

	assert.Contains(t, stmt.Vars, `%go\_dev%`)
	assert.Contains(t, stmt.Vars, models.PostTypeSeekingJob)
	assert.True(t, hasLimit(sql, stmt.Vars, 21), sql)
	assert.Contains(t, sql, "OFFSET")
}

func TestListingsQuery_NoLimitForFetchAll(t *testing.T) {
	var out []models.Listing
	sql := (&ListingRepositoryImpl{}).listingsQuery(dryRunDB(t), ListingCriteria{}).Find(&out).Statement.SQL.String()

	assert.NotContains(t, sql, "LIMIT")
	assert.NotContains(t, sql, "ILIKE")
	assert.Regexp(t, regexp.MustCompile(`ORDER BY created_at DESC,\s*id ASC`), sql)
}

func TestIncrementViewIfAbsent_OncePerViewer(t *testing.T) {
	db := openTestDB(t)
	repo := NewListingRepository()
	listing := createListing(t, db)

	counted, err := repo.IncrementViewIfAbsent(db, listing.ID, "visitor-a")
	require.NoError(t, err)
	assert.True(t, counted)

	counted, err = repo.IncrementViewIfAbsent(db, listing.ID, "visitor-a")
	require.NoError(t, err)
	assert.False(t, counted)

	counted, err = repo.IncrementViewIfAbsent(db, listing.ID, "visitor-b")
	require.NoError(t, err)
	assert.True(t, counted)

	got, err := repo.FindListingByID(db, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Views)
}

func TestIncrementViewIfAbsent_ConcurrentDuplicates(t *testing.T) {
	db := openTestDB(t)
	repo := NewListingRepository()
	listing := createListing(t, db)

	const workers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		counted int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.IncrementViewIfAbsent(db, listing.ID, "same-visitor")
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				counted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, counted)
	got, err := repo.FindListingByID(db, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Views)
}

func TestIncrementViewIfAbsent_MissingListing(t *testing.T) {
	db := openTestDB(t)
	repo := NewListingRepository()
	missing := uuid.NewString()

	counted, err := repo.IncrementViewIfAbsent(db, missing, "visitor-a")
	assert.ErrorIs(t, err, ErrListingNotFound)
	assert.False(t, counted)

	var rows int64
	require.NoError(t, db.Model(&models.ListingView{}).Where("listing_id = ?", missing).Count(&rows).Error)
	assert.Zero(t, rows, "вставка просмотра должна откатиться")

	counted, err = repo.IncrementViewIfAbsent(db, "not-a-uuid", "visitor-a")
	assert.ErrorIs(t, err, ErrListingNotFound)
	assert.False(t, counted)
}

func TestFindListingByID_MalformedIDIsNotFound(t *testing.T) {
	db := openTestDB(t)

	_, err := NewListingRepository().FindListingByID(db, "job-1")
	assert.ErrorIs(t, err, ErrListingNotFound)
}
