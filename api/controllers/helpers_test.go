package controllers

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/banner-admin/internal/banners"
	"github.com/angelmondragon/banner-admin/pkg/enums"
	"github.com/angelmondragon/banner-admin/pkg/logger"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: "debug", Output: io.Discard})
}

func seededBanner(id, order int, status enums.BannerStatus) banners.Banner {
	return banners.Banner{
		ID:     &id,
		Group:  enums.BannerGroupOne,
		Name:   "Promo",
		Link:   "https://example.com",
		Order:  order,
		Text1:  "a",
		Text2:  "b",
		Text3:  "c",
		Date:   "2026-01-01T00:00:00.000Z",
		Image:  banners.Image{URL: "data:image/png;base64,AAAA", FileName: "f.png"},
		Status: status,
	}
}

func newTestTable(t *testing.T, initial ...banners.Banner) *banners.Table {
	t.Helper()
	table, err := banners.NewTable(banners.TableParams{
		Repo: banners.NewMemoryRepository(initial...),
		Clock: func() time.Time {
			return time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)
		},
	})
	if err != nil {
		t.Fatalf("new table: %v", err)
	}
	return table
}

func withBannerID(req *http.Request, id string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("bannerId", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}
