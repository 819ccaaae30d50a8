package handlers

import (
	"errors"
	"net/http"
	"testing"

	"tawzif_backend/internal/models"
	"tawzif_backend/internal/services/dto"
	"tawzif_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeListingService struct {
	listings   []models.Listing
	hasMore    bool
	err        error
	lastFilter dto.ListingFilter
	lastActor  dto.Actor
}

func (f *fakeListingService) GetListings(_ *gorm.DB, filter dto.ListingFilter) (*dto.ListingPage, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	return &dto.ListingPage{Listings: f.listings, HasMore: f.hasMore}, nil
}

func (f *fakeListingService) find(id string) (*models.Listing, error) {
	for i := range f.listings {
		if f.listings[i].ID == id {
			l := f.listings[i]
			return &l, nil
		}
	}
	return nil, apperrors.ErrListingNotFound
}

func (f *fakeListingService) GetListing(_ *gorm.DB, id string) (*models.Listing, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.find(id)
}

func (f *fakeListingService) GetListingForEdit(_ *gorm.DB, id string, actor dto.Actor) (*models.Listing, error) {
	f.lastActor = actor
	l, err := f.find(id)
	if err != nil {
		return nil, err
	}
	if !l.IsOwner(actor.UserID) && !actor.IsAdmin() {
		return l, apperrors.ErrNotListingOwner
	}
	return l, nil
}

func (f *fakeListingService) CreateListing(_ *gorm.DB, actor dto.Actor, req *dto.CreateListingRequest) (*models.Listing, error) {
	f.lastActor = actor
	return &models.Listing{ID: "new", PostType: models.PostType(req.PostType), Title: req.Title, OwnerID: actor.UserID}, f.err
}

func (f *fakeListingService) UpdateListing(_ *gorm.DB, id string, actor dto.Actor, req *dto.UpdateListingRequest) (*models.Listing, error) {
	l, err := f.GetListingForEdit(nil, id, actor)
	if err != nil {
		return nil, err
	}
	if req.PostType != nil && models.PostType(*req.PostType) != l.PostType {
		return nil, apperrors.ErrPostTypeImmutable
	}
	return l, nil
}

func (f *fakeListingService) DeleteListing(_ *gorm.DB, id string, actor dto.Actor) error {
	_, err := f.GetListingForEdit(nil, id, actor)
	return err
}

func listingRouter(svc *fakeListingService, userID string) http.Handler {
	h := NewListingHandler(newTestBase(), svc)
	r := newTestRouter(userID, "user")
	r.GET("/api/v1/listings", h.GetListings)
	r.GET("/api/v1/listings/:id", h.GetListing)
	r.GET("/api/v1/listings/:id/edit", h.GetListingForEdit)
	r.POST("/api/v1/listings", h.CreateListing)
	r.PUT("/api/v1/listings/:id", h.UpdateListing)
	r.DELETE("/api/v1/listings/:id", h.DeleteListing)
	return r
}

func sampleListings() []models.Listing {
	return []models.Listing{
		{ID: jobID, PostType: models.PostTypeSeekingWorker, OwnerID: "owner", Title: "Driver"},
		{ID: candID, PostType: models.PostTypeSeekingJob, OwnerID: "owner", Title: "Nurse"},
	}
}

func TestGetListings_PassesFilter(t *testing.T) {
	svc := &fakeListingService{listings: sampleListings()[:1]}
	w := doRequest(listingRouter(svc, ""), http.MethodGet, "/api/v1/listings?post_type=seeking_worker&country=Morocco&work_type=remote", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Morocco", svc.lastFilter.Country)
	assert.Equal(t, "remote", svc.lastFilter.WorkType)
	assert.Equal(t, dto.DefaultPageSize, svc.lastFilter.PageSize)

	body := decodeBody(t, w)
	assert.Len(t, body["listings"], 1)
	assert.Nil(t, body["degraded"])
}

func TestGetListings_InvalidFilter(t *testing.T) {
	w := doRequest(listingRouter(&fakeListingService{}, ""), http.MethodGet, "/api/v1/listings?post_type=spaceship", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, w))
}

func TestGetListings_DegradesWhenDataUnavailable(t *testing.T) {
	svc := &fakeListingService{err: apperrors.ErrDataUnavailable(errors.New("connection refused"))}

	w := doRequest(listingRouter(svc, ""), http.MethodGet, "/api/v1/listings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, []interface{}{}, body["listings"])
	assert.Equal(t, "لا توجد نتائج", body["message"])
	assert.Equal(t, true, body["degraded"])

	w = doRequest(listingRouter(svc, ""), http.MethodGet, "/api/v1/listings", nil, "Accept-Language", "en-US,en;q=0.9")
	assert.Equal(t, "No results found", decodeBody(t, w)["message"])
}

func TestGetListing_NotFound(t *testing.T) {
	w := doRequest(listingRouter(&fakeListingService{}, ""), http.MethodGet, "/api/v1/listings/"+missingID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetListingForEdit_OwnerGetsJSON(t *testing.T) {
	w := doRequest(listingRouter(&fakeListingService{listings: sampleListings()}, "owner"), http.MethodGet, "/api/v1/listings/"+jobID+"/edit", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, jobID, decodeBody(t, w)["id"])
}

func TestGetListingForEdit_NonOwnerRedirected(t *testing.T) {
	svc := &fakeListingService{listings: sampleListings()}

	w := doRequest(listingRouter(svc, "stranger"), http.MethodGet, "/api/v1/listings/"+jobID+"/edit", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/jobs/"+jobID, w.Header().Get("Location"))

	w = doRequest(listingRouter(svc, "stranger"), http.MethodGet, "/api/v1/listings/"+candID+"/edit", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/workers/"+candID, w.Header().Get("Location"))
}

func TestGetListingForEdit_RequiresAuth(t *testing.T) {
	w := doRequest(listingRouter(&fakeListingService{listings: sampleListings()}, ""), http.MethodGet, "/api/v1/listings/"+jobID+"/edit", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateListing_PostTypeImmutable(t *testing.T) {
	w := doRequest(listingRouter(&fakeListingService{listings: sampleListings()}, "owner"),
		http.MethodPut, "/api/v1/listings/"+jobID, map[string]string{"post_type": "seeking_job"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "POST_TYPE_IMMUTABLE", errorCode(t, w))
}

func TestUpdateListing_NonOwnerForbidden(t *testing.T) {
	w := doRequest(listingRouter(&fakeListingService{listings: sampleListings()}, "stranger"),
		http.MethodPut, "/api/v1/listings/"+jobID, map[string]string{"title": "Mine now"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(listingRouter(&fakeListingService{listings: sampleListings()}, "stranger"),
		http.MethodDelete, "/api/v1/listings/"+jobID, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeleteListing_Owner(t *testing.T) {
	w := doRequest(listingRouter(&fakeListingService{listings: sampleListings()}, "owner"),
		http.MethodDelete, "/api/v1/listings/"+jobID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCreateListing(t *testing.T) {
	svc := &fakeListingService{}
	w := doRequest(listingRouter(svc, "owner"), http.MethodPost, "/api/v1/listings", map[string]interface{}{
		"post_type":   "seeking_worker",
		"title":       "Warehouse operator",
		"description": "Night shifts",
		"country":     "Morocco",
		"work_type":   "full_time",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "owner", svc.lastActor.UserID)
	assert.Equal(t, models.UserRoleUser, svc.lastActor.Role)

	w = doRequest(listingRouter(svc, "owner"), http.MethodPost, "/api/v1/listings", map[string]interface{}{"title": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetListings_HasMoreFromService(t *testing.T) {
	svc := &fakeListingService{listings: sampleListings()[:1], hasMore: true}
	w := doRequest(listingRouter(svc, ""), http.MethodGet, "/api/v1/listings?page_size=2", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Len(t, body["listings"], 1)
	assert.Equal(t, true, body["has_more"])
}

func TestListingByMalformedID_NotFound(t *testing.T) {
	svc := &fakeListingService{
		listings: sampleListings(),
		err:      apperrors.ErrDataUnavailable(errors.New("invalid input syntax for type uuid")),
	}
	r := listingRouter(svc, "owner")

	cases := []struct {
		method string
		target string
		body   interface{}
	}{
		{http.MethodGet, "/api/v1/listings/job-1", nil},
		{http.MethodGet, "/api/v1/listings/123", nil},
		{http.MethodGet, "/api/v1/listings/" + jobID + "x/edit", nil},
		{http.MethodPut, "/api/v1/listings/not-a-uuid", map[string]string{"title": "x"}},
		{http.MethodDelete, "/api/v1/listings/not-a-uuid", nil},
	}
	for _, tc := range cases {
		w := doRequest(r, tc.method, tc.target, tc.body)
		assert.Equal(t, http.StatusNotFound, w.Code, tc.method+" "+tc.target)
		assert.Equal(t, "NOT_FOUND", errorCode(t, w), tc.method+" "+tc.target)
	}
	assert.Empty(t, svc.lastActor.UserID)
}
