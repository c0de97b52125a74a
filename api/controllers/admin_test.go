package controllers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/angelmondragon/banner-admin/api/views"
	"github.com/angelmondragon/banner-admin/internal/banners"
	"github.com/angelmondragon/banner-admin/pkg/enums"
)

const testMaxUpload = 1 << 20

func newRenderer(t *testing.T) *views.Renderer {
	t.Helper()
	view, err := views.New()
	if err != nil {
		t.Fatalf("views: %v", err)
	}
	return view
}

func multipartRequest(t *testing.T, target string, fields map[string]string, fileName string, file []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if fileName != "" {
		part, err := mw.CreateFormFile("image", fileName)
		if err != nil {
			t.Fatalf("create file: %v", err)
		}
		if _, err := part.Write(file); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func validFields() map[string]string {
	return map[string]string{
		"group":  "Group 2",
		"name":   "Winter",
		"link":   "https://example.com/winter",
		"order":  "3",
		"text1":  "x",
		"text2":  "y",
		"text3":  "z",
		"status": "active",
	}
}

func expectRedirect(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != AdminPath {
		t.Fatalf("expected redirect to %s, got %q", AdminPath, loc)
	}
}

func TestAdminScreenRendersCurrentMode(t *testing.T) {
	logg := testLogger()
	view := newRenderer(t)

	t.Run("empty list", func(t *testing.T) {
		rec := httptest.NewRecorder()
		AdminScreen(newTestTable(t), view, logg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "No Data") {
			t.Fatalf("expected empty table message")
		}
	})

	t.Run("form after add", func(t *testing.T) {
		table := newTestTable(t)
		rec := httptest.NewRecorder()
		AdminAdd(table, logg).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/add", nil))
		expectRedirect(t, rec)

		rec = httptest.NewRecorder()
		AdminScreen(table, view, logg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))
		body := rec.Body.String()
		if !strings.Contains(body, `action="/admin/form/submit"`) {
			t.Fatalf("expected the form to render")
		}
		if !strings.Contains(body, ">Add</button>") {
			t.Fatalf("expected Add submit label")
		}
	})
}

func TestAdminEditAndDelete(t *testing.T) {
	logg := testLogger()
	table := newTestTable(t,
		seededBanner(1, 1, enums.BannerStatusActive),
		seededBanner(2, 2, enums.BannerStatusActive),
	)

	rec := httptest.NewRecorder()
	AdminEdit(table, logg).ServeHTTP(rec, withBannerID(httptest.NewRequest(http.MethodPost, "/admin/banners/99/edit", nil), "99"))
	expectRedirect(t, rec)
	if table.Mode() != banners.ModeList {
		t.Fatalf("unknown id must leave the table in list mode")
	}

	rec = httptest.NewRecorder()
	AdminEdit(table, logg).ServeHTTP(rec, withBannerID(httptest.NewRequest(http.MethodPost, "/admin/banners/2/edit", nil), "2"))
	expectRedirect(t, rec)
	state := table.FormState()
	if state == nil || !state.Editing || state.Data.IDValue() != 2 {
		t.Fatalf("expected form editing banner 2, got %+v", state)
	}

	rec = httptest.NewRecorder()
	AdminDelete(table, logg).ServeHTTP(rec, withBannerID(httptest.NewRequest(http.MethodPost, "/admin/banners/1/delete", nil), "1"))
	expectRedirect(t, rec)
	list, _ := table.List(context.Background())
	if len(list) != 1 || list[0].IDValue() != 2 {
		t.Fatalf("expected only banner 2 to remain, got %+v", list)
	}
}

func TestAdminSubmit(t *testing.T) {
	logg := testLogger()
	view := newRenderer(t)

	t.Run("creates with upload", func(t *testing.T) {
		table := newTestTable(t)
		if err := table.Add(context.Background()); err != nil {
			t.Fatalf("add: %v", err)
		}
		rec := httptest.NewRecorder()
		req := multipartRequest(t, "/admin/form/submit", validFields(), "winter.png", pngBytes)
		AdminSubmit(table, view, logg, testMaxUpload).ServeHTTP(rec, req)
		expectRedirect(t, rec)

		if table.Mode() != banners.ModeList {
			t.Fatalf("expected list mode after submit")
		}
		list, _ := table.List(context.Background())
		if len(list) != 1 {
			t.Fatalf("expected one banner, got %d", len(list))
		}
		got := list[0]
		if got.IDValue() != 1 || got.Name != "Winter" || got.Order != 3 {
			t.Fatalf("unexpected banner %+v", got)
		}
		if !strings.HasPrefix(got.Image.URL, "data:image/png;base64,") || got.Image.FileName != "winter.png" {
			t.Fatalf("unexpected image %+v", got.Image)
		}
	})

	t.Run("invalid input re-renders", func(t *testing.T) {
		table := newTestTable(t)
		if err := table.Add(context.Background()); err != nil {
			t.Fatalf("add: %v", err)
		}
		fields := validFields()
		fields["name"] = "   "
		rec := httptest.NewRecorder()
		AdminSubmit(table, view, logg, testMaxUpload).ServeHTTP(rec, multipartRequest(t, "/admin/form/submit", fields, "", nil))

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
		body := rec.Body.String()
		for _, msg := range []string{"Banner name is required.", "Banner image is required."} {
			if !strings.Contains(body, msg) {
				t.Fatalf("expected %q in form", msg)
			}
		}
		if table.Mode() != banners.ModeForm {
			t.Fatalf("form must stay open")
		}
	})

	t.Run("long fields are capped", func(t *testing.T) {
		table := newTestTable(t)
		if err := table.Add(context.Background()); err != nil {
			t.Fatalf("add: %v", err)
		}
		fields := validFields()
		fields["name"] = "  " + strings.Repeat("é", banners.MaxNameLen+20) + "  "
		fields["text1"] = strings.Repeat("ü", banners.MaxTextLen+1)
		rec := httptest.NewRecorder()
		req := multipartRequest(t, "/admin/form/submit", fields, "winter.png", pngBytes)
		AdminSubmit(table, view, logg, testMaxUpload).ServeHTTP(rec, req)
		expectRedirect(t, rec)

		list, _ := table.List(context.Background())
		if len(list) != 1 {
			t.Fatalf("expected one banner, got %d", len(list))
		}
		if got := list[0].Name; got != strings.Repeat("é", banners.MaxNameLen) {
			t.Fatalf("expected name cut to %d runes, got %d bytes", banners.MaxNameLen, len(got))
		}
		if got := list[0].Text1; got != strings.Repeat("ü", banners.MaxTextLen) {
			t.Fatalf("expected text1 cut to %d runes, got %d bytes", banners.MaxTextLen, len(got))
		}
	})

	t.Run("rejected upload keeps typed fields", func(t *testing.T) {
		table := newTestTable(t)
		if err := table.Add(context.Background()); err != nil {
			t.Fatalf("add: %v", err)
		}
		rec := httptest.NewRecorder()
		req := multipartRequest(t, "/admin/form/submit", validFields(), "notes.txt", []byte("plain text"))
		AdminSubmit(table, view, logg, testMaxUpload).ServeHTTP(rec, req)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
		state := table.FormState()
		if state == nil || state.Data.Name != "Winter" {
			t.Fatalf("expected typed fields kept, got %+v", state)
		}
		if _, ok := state.Errors["image"]; !ok {
			t.Fatalf("expected image error, got %+v", state.Errors)
		}
	})

	t.Run("no open form", func(t *testing.T) {
		table := newTestTable(t)
		rec := httptest.NewRecorder()
		AdminSubmit(table, view, logg, testMaxUpload).ServeHTTP(rec, multipartRequest(t, "/admin/form/submit", validFields(), "", nil))
		expectRedirect(t, rec)
		list, _ := table.List(context.Background())
		if len(list) != 0 {
			t.Fatalf("nothing should be stored without an open form")
		}
	})

	t.Run("edit merges into existing", func(t *testing.T) {
		table := newTestTable(t, seededBanner(4, 1, enums.BannerStatusActive))
		if _, err := table.Edit(context.Background(), 4); err != nil {
			t.Fatalf("edit: %v", err)
		}
		rec := httptest.NewRecorder()
		AdminSubmit(table, view, logg, testMaxUpload).ServeHTTP(rec, multipartRequest(t, "/admin/form/submit", validFields(), "", nil))
		expectRedirect(t, rec)

		list, _ := table.List(context.Background())
		if len(list) != 1 || list[0].IDValue() != 4 || list[0].Name != "Winter" {
			t.Fatalf("expected merged banner 4, got %+v", list)
		}
		if list[0].Date != "2026-01-01T00:00:00.000Z" || list[0].Image.FileName != "f.png" {
			t.Fatalf("date and image must be kept, got %+v", list[0])
		}
	})
}

func TestAdminImageActions(t *testing.T) {
	logg := testLogger()
	view := newRenderer(t)
	table := newTestTable(t)
	if err := table.Add(context.Background()); err != nil {
		t.Fatalf("add: %v", err)
	}

	rec := httptest.NewRecorder()
	AdminUploadImage(table, view, logg, testMaxUpload).ServeHTTP(rec, multipartRequest(t, "/admin/form/image", nil, "a.png", pngBytes))
	expectRedirect(t, rec)
	if state := table.FormState(); state == nil || state.Data.Image.FileName != "a.png" {
		t.Fatalf("expected uploaded image, got %+v", state)
	}

	form := url.Values{"name": {"Kept"}, "order": {"2"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/form/image/remove", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	AdminRemoveImage(table, logg).ServeHTTP(rec, req)
	expectRedirect(t, rec)
	state := table.FormState()
	if state == nil || state.Data.Image.URL != "" || state.Data.Name != "Kept" {
		t.Fatalf("expected image removed and fields kept, got %+v", state)
	}

	rec = httptest.NewRecorder()
	AdminCancel(table).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/form/cancel", nil))
	expectRedirect(t, rec)
	if table.Mode() != banners.ModeList {
		t.Fatalf("cancel must close the form")
	}
	list, _ := table.List(context.Background())
	if len(list) != 0 {
		t.Fatalf("cancel must not store anything")
	}
}
