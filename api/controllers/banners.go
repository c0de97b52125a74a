package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/banner-admin/api/responses"
	"github.com/angelmondragon/banner-admin/api/validators"
	"github.com/angelmondragon/banner-admin/internal/banners"
	"github.com/angelmondragon/banner-admin/pkg/enums"
	pkgerrors "github.com/angelmondragon/banner-admin/pkg/errors"
	"github.com/angelmondragon/banner-admin/pkg/logger"
	"github.com/angelmondragon/banner-admin/pkg/pagination"
	"github.com/angelmondragon/banner-admin/pkg/types"
)

// BannerService is the record-level surface of the banner table.
type BannerService interface {
	List(ctx context.Context) ([]banners.Banner, error)
	Get(ctx context.Context, id int) (banners.Banner, error)
	Create(ctx context.Context, in banners.FormInput) (banners.Banner, error)
	Update(ctx context.Context, id int, patch banners.Patch) (banners.Banner, error)
	Delete(ctx context.Context, id int) (bool, error)
	Feed(ctx context.Context, params pagination.Params) (types.Page[banners.Banner], error)
}

type imagePayload struct {
	URL      string `json:"url" validate:"max=8388608"`
	FileName string `json:"file_name" validate:"max=255"`
}

func (p *imagePayload) toImage() *banners.Image {
	if p == nil {
		return nil
	}
	return &banners.Image{URL: p.URL, FileName: p.FileName}
}

type bannerCreateRequest struct {
	Group  string        `json:"group" validate:"max=32"`
	Name   string        `json:"name" validate:"max=200"`
	Link   string        `json:"link" validate:"max=2048"`
	Order  int           `json:"order"`
	Text1  string        `json:"text1" validate:"max=500"`
	Text2  string        `json:"text2" validate:"max=500"`
	Text3  string        `json:"text3" validate:"max=500"`
	Image  *imagePayload `json:"image"`
	Status string        `json:"status"`
}

func (r bannerCreateRequest) toInput() banners.FormInput {
	return banners.FormInput{
		Group:  enums.BannerGroup(validators.SanitizeString(r.Group, banners.MaxGroupLen)),
		Name:   r.Name,
		Link:   validators.SanitizeString(r.Link, banners.MaxLinkLen),
		Order:  r.Order,
		Text1:  r.Text1,
		Text2:  r.Text2,
		Text3:  r.Text3,
		Status: enums.BannerStatus(validators.SanitizeString(r.Status, banners.MaxStatusLen)),
		Image:  r.Image.toImage(),
	}
}

type bannerPatchRequest struct {
	Group  *string       `json:"group,omitempty" validate:"omitempty,max=32"`
	Name   *string       `json:"name,omitempty" validate:"omitempty,max=200"`
	Link   *string       `json:"link,omitempty" validate:"omitempty,max=2048"`
	Order  *int          `json:"order,omitempty"`
	Text1  *string       `json:"text1,omitempty" validate:"omitempty,max=500"`
	Text2  *string       `json:"text2,omitempty" validate:"omitempty,max=500"`
	Text3  *string       `json:"text3,omitempty" validate:"omitempty,max=500"`
	Image  *imagePayload `json:"image,omitempty"`
	Status *string       `json:"status,omitempty"`
}

func (r bannerPatchRequest) toPatch() banners.Patch {
	patch := banners.Patch{
		Name:  r.Name,
		Link:  r.Link,
		Order: r.Order,
		Text1: r.Text1,
		Text2: r.Text2,
		Text3: r.Text3,
		Image: r.Image.toImage(),
	}
	if r.Group != nil {
		group := enums.BannerGroup(validators.SanitizeString(*r.Group, banners.MaxGroupLen))
		patch.Group = &group
	}
	if r.Status != nil {
		status := enums.BannerStatus(validators.SanitizeString(*r.Status, banners.MaxStatusLen))
		patch.Status = &status
	}
	return patch
}

// BannerList returns every record in insertion order.
func BannerList(svc BannerService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// BannerGet returns a single record.
func BannerGet(svc BannerService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := bannerIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		banner, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(logg.WithBannerID(r.Context(), id), logg, w, err)
			return
		}
		responses.WriteSuccess(w, banner)
	}
}

// BannerCreate validates and appends a new record.
func BannerCreate(svc BannerService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bannerCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		banner, err := svc.Create(r.Context(), req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := logg.WithBannerID(r.Context(), banner.IDValue())
		logg.Info(ctx, "banner created")
		responses.WriteSuccessStatus(w, http.StatusCreated, banner)
	}
}

// BannerUpdate applies a partial update.
func BannerUpdate(svc BannerService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := bannerIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ctx := logg.WithBannerID(r.Context(), id)

		var req bannerPatchRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		patch := req.toPatch()
		if patch.Empty() {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update"))
			return
		}

		banner, err := svc.Update(r.Context(), id, patch)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		logg.Info(ctx, "banner updated")
		responses.WriteSuccess(w, banner)
	}
}

// BannerDelete removes a record. Deleting an unknown id is a 404.
func BannerDelete(svc BannerService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := bannerIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ctx := logg.WithBannerID(r.Context(), id)

		removed, err := svc.Delete(r.Context(), id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if !removed {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "banner not found"))
			return
		}
		logg.Info(ctx, "banner deleted")
		responses.WriteNoContent(w)
	}
}

// PublicBannerFeed pages through active banners, highest order first.
func PublicBannerFeed(svc BannerService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := svc.Feed(r.Context(), pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

func bannerIDParam(r *http.Request) (int, error) {
	return validators.ParsePathInt(chi.URLParam(r, "bannerId"), "bannerId")
}
