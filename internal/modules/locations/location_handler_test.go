package locations

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newHandlerFixture(names ...string) (*Handler, *fakeLocationRepo) {
	repo := newFakeLocationRepo(names...)
	return NewHandler(NewService(repo, zap.NewNop())), repo
}

func doJSON(h echo.HandlerFunc, method, target, body, id string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != "" {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	_ = h(c)
	return rec
}

func TestLocationCreate_Returns201(t *testing.T) {
	h, repo := newHandlerFixture()
	rec := doJSON(h.Create, http.MethodPost, "/api/TravelAgency/Location/save", `{"name": "Agra"}`, "")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, repo.locations, 1)
}

func TestLocationCreate_BlankName400(t *testing.T) {
	h, repo := newHandlerFixture()
	rec := doJSON(h.Create, http.MethodPost, "/api/TravelAgency/Location/save", `{"name": "   "}`, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "name: cannot be blank")
	assert.Empty(t, repo.locations)
}

func TestLocationUpdate_Returns201(t *testing.T) {
	h, _ := newHandlerFixture("Agra")
	rec := doJSON(h.Update, http.MethodPut, "/api/TravelAgency/Location/1", `{"name": "Jaipur"}`, "1")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "Jaipur")
}

func TestLocationUpdate_NotFound404(t *testing.T) {
	h, _ := newHandlerFixture()
	rec := doJSON(h.Update, http.MethodPut, "/api/TravelAgency/Location/9", `{"name": "Jaipur"}`, "9")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Location with id 9 not found")
}

func TestLocationDelete_Returns202(t *testing.T) {
	h, repo := newHandlerFixture("Agra")
	rec := doJSON(h.Delete, http.MethodDelete, "/api/TravelAgency/Location/1", "", "1")

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Contains(t, rec.Body.String(), "Deleted")
	assert.Empty(t, repo.locations)
}

func TestLocationGetByID_InvalidID400(t *testing.T) {
	h, _ := newHandlerFixture()
	rec := doJSON(h.GetByID, http.MethodGet, "/api/TravelAgency/Location/abc", "", "abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
