package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/angelmondragon/banner-admin/api/responses"
	"github.com/angelmondragon/banner-admin/api/validators"
	"github.com/angelmondragon/banner-admin/api/views"
	"github.com/angelmondragon/banner-admin/internal/banners"
	"github.com/angelmondragon/banner-admin/pkg/enums"
	pkgerrors "github.com/angelmondragon/banner-admin/pkg/errors"
	"github.com/angelmondragon/banner-admin/pkg/logger"
)

// AdminPath is where every admin action redirects once it is done.
const AdminPath = "/admin"

// multipartSlack covers the text fields and boundaries around an upload.
const multipartSlack = 1 << 20

// AdminService is the screen-level surface of the banner table.
type AdminService interface {
	Mode() banners.Mode
	FormState() *banners.FormState
	List(ctx context.Context) ([]banners.Banner, error)
	Add(ctx context.Context) error
	Edit(ctx context.Context, id int) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
	SubmitForm(ctx context.Context, in banners.FormInput) (banners.Banner, error)
	UpdateForm(in banners.FormInput, errs banners.FieldErrors) (banners.FormState, error)
	Cancel()
	AttachImage(img banners.Image) error
	DetachImage() error
}

// Renderer draws an admin page.
type Renderer interface {
	Render(w http.ResponseWriter, status int, page string, data any) error
}

// AdminScreen renders the table or the open form, whichever is current.
func AdminScreen(svc AdminService, view Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc.Mode() == banners.ModeForm {
			if state := svc.FormState(); state != nil {
				renderForm(w, r, view, logg, http.StatusOK, *state)
				return
			}
		}
		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := view.Render(w, http.StatusOK, views.PageList, views.NewListPage(list)); err != nil {
			logg.Error(r.Context(), "render banner list", err)
		}
	}
}

// AdminAdd opens a blank form.
func AdminAdd(svc AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Add(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		redirectToAdmin(w, r)
	}
}

// AdminEdit opens the form on an existing record. Unknown ids leave the
// screen as it was.
func AdminEdit(svc AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := bannerIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ctx := logg.WithBannerID(r.Context(), id)
		opened, err := svc.Edit(r.Context(), id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if !opened {
			logg.Debug(ctx, "edit ignored for unknown banner")
		}
		redirectToAdmin(w, r)
	}
}

// AdminDelete removes a record from the table.
func AdminDelete(svc AdminService, logg *logger.Logger) http.HandlerFunc {
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
		if removed {
			logg.Info(ctx, "banner deleted")
		}
		redirectToAdmin(w, r)
	}
}

// AdminSubmit applies the posted fields, and an uploaded file when present,
// then submits the form. Invalid input re-renders the form with 422.
func AdminSubmit(svc AdminService, view Renderer, logg *logger.Logger, maxUpload int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := parseAdminForm(w, r, maxUpload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		in := formInputFrom(r)

		img, err := uploadedImage(r, maxUpload)
		if err != nil {
			rejectForm(w, r, svc, view, logg, in, err)
			return
		}
		in.Image = img

		stored, err := svc.SubmitForm(r.Context(), in)
		switch {
		case err == nil:
			logg.Info(logg.WithBannerID(r.Context(), stored.IDValue()), "banner submitted")
			redirectToAdmin(w, r)
		case pkgerrors.HasCode(err, pkgerrors.CodeConflict):
			redirectToAdmin(w, r)
		case pkgerrors.HasCode(err, pkgerrors.CodeValidation):
			if state := svc.FormState(); state != nil {
				renderForm(w, r, view, logg, http.StatusUnprocessableEntity, *state)
				return
			}
			redirectToAdmin(w, r)
		default:
			responses.WriteError(r.Context(), logg, w, err)
		}
	}
}

// AdminUploadImage replaces the open form's image with the posted file.
func AdminUploadImage(svc AdminService, view Renderer, logg *logger.Logger, maxUpload int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := parseAdminForm(w, r, maxUpload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		img, err := uploadedImage(r, maxUpload)
		if err == nil && img == nil {
			err = banners.FieldErrors{"image": "Banner image is required."}.Err()
		}
		if err != nil {
			if state := svc.FormState(); state != nil {
				rejectForm(w, r, svc, view, logg, banners.InputFrom(state.Data), err)
				return
			}
			redirectToAdmin(w, r)
			return
		}
		if err := svc.AttachImage(*img); err != nil && !pkgerrors.HasCode(err, pkgerrors.CodeConflict) {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		redirectToAdmin(w, r)
	}
}

// AdminRemoveImage keeps whatever was typed into the form and clears its
// image.
func AdminRemoveImage(svc AdminService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid form body"))
			return
		}
		if len(r.PostForm) > 0 {
			if _, err := svc.UpdateForm(formInputFrom(r), nil); err != nil && !pkgerrors.HasCode(err, pkgerrors.CodeConflict) {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}
		if err := svc.DetachImage(); err != nil && !pkgerrors.HasCode(err, pkgerrors.CodeConflict) {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		redirectToAdmin(w, r)
	}
}

// AdminCancel closes the form without saving.
func AdminCancel(svc AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		svc.Cancel()
		redirectToAdmin(w, r)
	}
}

func rejectForm(w http.ResponseWriter, r *http.Request, svc AdminService, view Renderer, logg *logger.Logger, in banners.FormInput, cause error) {
	errs := banners.FieldErrorsFrom(cause)
	if errs == nil {
		responses.WriteError(r.Context(), logg, w, cause)
		return
	}
	state, err := svc.UpdateForm(in, errs)
	if err != nil {
		if pkgerrors.HasCode(err, pkgerrors.CodeConflict) {
			redirectToAdmin(w, r)
			return
		}
		responses.WriteError(r.Context(), logg, w, err)
		return
	}
	renderForm(w, r, view, logg, http.StatusUnprocessableEntity, state)
}

func renderForm(w http.ResponseWriter, r *http.Request, view Renderer, logg *logger.Logger, status int, state banners.FormState) {
	if err := view.Render(w, status, views.PageForm, views.NewFormPage(state)); err != nil {
		logg.Error(r.Context(), "render banner form", err)
	}
}

func redirectToAdmin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, AdminPath, http.StatusSeeOther)
}

// parseAdminForm accepts multipart and urlencoded bodies alike.
func parseAdminForm(w http.ResponseWriter, r *http.Request, maxUpload int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload+multipartSlack)
	err := r.ParseMultipartForm(maxUpload)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err == nil {
		return nil
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return pkgerrors.Wrap(pkgerrors.CodeTooLarge, err, "request body too large")
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid form body")
}

// uploadedImage returns nil when the request carries no file.
func uploadedImage(r *http.Request, maxUpload int64) (*banners.Image, error) {
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read image upload")
	}
	defer file.Close()
	if header.Filename == "" && header.Size == 0 {
		return nil, nil
	}

	img, err := banners.EncodeImage(header.Filename, file, maxUpload)
	if err != nil {
		return nil, err
	}
	return &img, nil
}

func formInputFrom(r *http.Request) banners.FormInput {
	order, err := strconv.Atoi(strings.TrimSpace(r.FormValue("order")))
	if err != nil {
		order = 0
	}
	return banners.FormInput{
		Group:  enums.BannerGroup(validators.SanitizeString(r.FormValue("group"), banners.MaxGroupLen)),
		Name:   validators.SanitizeString(r.FormValue("name"), banners.MaxNameLen),
		Link:   validators.SanitizeString(r.FormValue("link"), banners.MaxLinkLen),
		Order:  order,
		Text1:  validators.SanitizeString(r.FormValue("text1"), banners.MaxTextLen),
		Text2:  validators.SanitizeString(r.FormValue("text2"), banners.MaxTextLen),
		Text3:  validators.SanitizeString(r.FormValue("text3"), banners.MaxTextLen),
		Status: enums.BannerStatus(validators.SanitizeString(r.FormValue("status"), banners.MaxStatusLen)),
	}
}
