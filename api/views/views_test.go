package views

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/banner-admin/internal/banners"
	"github.com/angelmondragon/banner-admin/pkg/enums"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New()
	require.NoError(t, err)
	return r
}

func sampleBanner(id, order int) banners.Banner {
	return banners.Banner{
		ID:     &id,
		Group:  enums.BannerGroupOne,
		Name:   "Promo",
		Link:   "https://example.com/promo",
		Order:  order,
		Text1:  "Big ",
		Text2:  "summer ",
		Text3:  "sale",
		Date:   "2026-10-14T09:30:00.000Z",
		Image:  banners.Image{URL: "data:image/png;base64,AAAA", FileName: "promo.png"},
		Status: enums.BannerStatusActive,
	}
}

func TestListPageEmpty(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, newRenderer(t).Render(rec, http.StatusOK, PageList, NewListPage(nil)))

	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "No Data")
}

func TestListPageRows(t *testing.T) {
	page := NewListPage([]banners.Banner{sampleBanner(7, 3), sampleBanner(2, 12)})
	require.Len(t, page.Rows, 2)
	assert.Equal(t, 1, page.Rows[0].Index)
	assert.Equal(t, "03", page.Rows[0].Order)
	assert.Equal(t, "12", page.Rows[1].Order)
	assert.Equal(t, "Big summer sale", page.Rows[0].Text)

	rec := httptest.NewRecorder()
	require.NoError(t, newRenderer(t).Render(rec, http.StatusOK, PageList, page))
	body := rec.Body.String()
	assert.NotContains(t, body, "No Data")
	assert.Contains(t, body, `action="/admin/banners/7/edit"`)
	assert.Contains(t, body, `action="/admin/banners/2/delete"`)
	assert.Contains(t, body, `src="data:image/png;base64,AAAA"`)
}

func TestFormPageLabels(t *testing.T) {
	add := NewFormPage(banners.FormState{Data: banners.Banner{Status: enums.BannerStatusActive}})
	assert.Equal(t, "Add", add.SubmitLabel)

	edit := NewFormPage(banners.FormState{Data: sampleBanner(1, 1), Editing: true})
	assert.Equal(t, "Edit", edit.SubmitLabel)
}

func TestFormPageRendersErrorsAndSelection(t *testing.T) {
	b := sampleBanner(4, 2)
	b.Group = enums.BannerGroupTwo
	b.Status = enums.BannerStatusInactive
	state := banners.FormState{
		Data:    b,
		Editing: true,
		Errors:  banners.FieldErrors{"name": "Banner name is required."},
	}

	rec := httptest.NewRecorder()
	require.NoError(t, newRenderer(t).Render(rec, http.StatusUnprocessableEntity, PageForm, NewFormPage(state)))
	body := rec.Body.String()

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, body, "Banner name is required.")
	assert.Contains(t, body, `<option value="Group 2" selected>`)
	assert.Contains(t, body, `value="inactive" checked`)
	assert.Contains(t, body, "Remove Image")
	assert.Contains(t, body, "promo.png")
	assert.True(t, strings.Contains(body, ">Edit</button>"))
}

func TestFormPageWithoutImageHidesRemove(t *testing.T) {
	rec := httptest.NewRecorder()
	state := banners.FormState{Data: banners.Banner{Status: enums.BannerStatusActive}}
	require.NoError(t, newRenderer(t).Render(rec, http.StatusOK, PageForm, NewFormPage(state)))

	body := rec.Body.String()
	assert.NotContains(t, body, "Remove Image")
	assert.Contains(t, body, `value="active" checked`)
	assert.Contains(t, body, ">Add</button>")
}

func TestImageURLFiltersSchemes(t *testing.T) {
	assert.Equal(t, "data:image/gif;base64,R0lG", string(imageURL("data:image/gif;base64,R0lG")))
	assert.Equal(t, "https://cdn.example.com/a.png", string(imageURL("https://cdn.example.com/a.png")))
	assert.Empty(t, string(imageURL("javascript:alert(1)")))
	assert.Empty(t, string(imageURL("")))
}

func TestRenderUnknownPage(t *testing.T) {
	assert.Error(t, newRenderer(t).Render(httptest.NewRecorder(), http.StatusOK, "missing", nil))
}
