package banners

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/angelmondragon/banner-admin/pkg/enums"
	pkgerrors "github.com/angelmondragon/banner-admin/pkg/errors"
	"github.com/angelmondragon/banner-admin/pkg/metrics"
	"github.com/angelmondragon/banner-admin/pkg/pagination"
	"github.com/angelmondragon/banner-admin/pkg/types"
)

// MetricsRecorder receives table activity.
type MetricsRecorder interface {
	Observe(operation, result string)
	SetRecords(n int)
}

type noopMetrics struct{}

func (noopMetrics) Observe(string, string) {}
func (noopMetrics) SetRecords(int)         {}

// TableParams wires a Table.
type TableParams struct {
	Repo    Repository
	IDs     *IDGenerator
	Clock   func() time.Time
	Metrics MetricsRecorder
}

// Table owns the banner list and the list/form mode of the admin screen.
// Every operation is serialised.
type Table struct {
	mu      sync.Mutex
	repo    Repository
	ids     *IDGenerator
	clock   func() time.Time
	metrics MetricsRecorder

	mode Mode
	form *Form
	// lastID is the highest id this table has issued, seeded or deleted.
	// New ids never go below it, so a freed id is not handed out again.
	lastID int
}

func NewTable(params TableParams) (*Table, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("banner repository required")
	}
	if params.IDs == nil {
		params.IDs = NewIDGenerator(nil)
	}
	if params.Clock == nil {
		params.Clock = time.Now
	}
	if params.Metrics == nil {
		params.Metrics = noopMetrics{}
	}
	return &Table{
		repo:    params.Repo,
		ids:     params.IDs,
		clock:   params.Clock,
		metrics: params.Metrics,
		mode:    ModeList,
	}, nil
}

// Mode returns the current view.
func (t *Table) Mode() Mode {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.mode
}

// FormState snapshots the open form, or returns nil in list mode.
func (t *Table) FormState() *FormState {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.form == nil {
		return nil
	}
	state := t.form.State()
	return &state
}

// List returns every record in insertion order.
func (t *Table) List(ctx context.Context) ([]Banner, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.repo.List(ctx)
}

// Get returns the record with the given id.
func (t *Table) Get(ctx context.Context, id int) (Banner, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	records, err := t.repo.List(ctx)
	if err != nil {
		return Banner{}, err
	}
	idx := indexOf(records, id)
	if idx < 0 {
		return Banner{}, pkgerrors.New(pkgerrors.CodeNotFound, "banner not found")
	}
	return records[idx], nil
}

// Add opens the form on a blank record.
func (t *Table) Add(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	records, err := t.repo.List(ctx)
	if err != nil {
		t.metrics.Observe("add", metrics.ResultError)
		return err
	}
	form, err := NewForm(nil, records, t.ids)
	if err != nil {
		t.metrics.Observe("add", metrics.ResultError)
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "open banner form")
	}
	t.openLocked(form)
	t.metrics.Observe("add", metrics.ResultSuccess)
	return nil
}

// Edit opens the form pre-filled with the matching record. An unknown id is
// a no-op and reports false.
func (t *Table) Edit(ctx context.Context, id int) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	records, err := t.repo.List(ctx)
	if err != nil {
		t.metrics.Observe("edit", metrics.ResultError)
		return false, err
	}
	idx := indexOf(records, id)
	if idx < 0 {
		t.metrics.Observe("edit", metrics.ResultNoop)
		return false, nil
	}
	form, err := NewForm(&records[idx], records, t.ids)
	if err != nil {
		t.metrics.Observe("edit", metrics.ResultError)
		return false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "open banner form")
	}
	t.openLocked(form)
	t.metrics.Observe("edit", metrics.ResultSuccess)
	return true, nil
}

// Delete removes exactly the matching record and reports whether one existed.
func (t *Table) Delete(ctx context.Context, id int) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	removed, err := t.repo.Remove(ctx, id)
	if err != nil {
		t.metrics.Observe("delete", metrics.ResultError)
		return false, err
	}
	if !removed {
		t.metrics.Observe("delete", metrics.ResultNoop)
		return false, nil
	}
	t.lastID = max(t.lastID, id)
	if t.form != nil && t.form.Editing() && t.form.data.IDValue() == id {
		t.closeLocked()
	}
	t.metrics.Observe("delete", metrics.ResultSuccess)
	t.refreshCountLocked(ctx)
	return true, nil
}

// Submit stores a record and returns to list view. A record whose id is
// already listed is merged into that entry; anything else is appended with
// the next sequential id and the current timestamp.
func (t *Table) Submit(ctx context.Context, record Banner) (Banner, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if record.Status == "" {
		record.Status = enums.BannerStatusActive
	}
	if errs := Validate(record); len(errs) > 0 {
		t.metrics.Observe("submit", metrics.ResultInvalid)
		return Banner{}, errs.Err()
	}
	stored, err := t.storeLocked(ctx, record)
	if err != nil {
		return Banner{}, err
	}
	t.closeLocked()
	return stored, nil
}

// SubmitForm applies in to the open form and submits it. Validation failures
// leave the form open with its errors.
func (t *Table) SubmitForm(ctx context.Context, in FormInput) (Banner, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.form == nil {
		return Banner{}, pkgerrors.New(pkgerrors.CodeConflict, "no banner form is open")
	}
	t.form.Apply(in)
	submit := t.storeLocked
	if !t.form.Editing() {
		// a draft id only identifies the open form; it is never merged
		submit = func(ctx context.Context, record Banner) (Banner, error) {
			record.ID = nil
			return t.storeLocked(ctx, record)
		}
	}
	stored, err := t.form.Submit(ctx, submit)
	if err != nil {
		if pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
			t.metrics.Observe("submit", metrics.ResultInvalid)
		}
		return Banner{}, err
	}
	t.closeLocked()
	return stored, nil
}

// UpdateForm applies in to the open form without submitting it. errs replace
// the form's field errors, which lets callers report problems found before
// validation, such as an unreadable upload.
func (t *Table) UpdateForm(in FormInput, errs FieldErrors) (FormState, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.form == nil {
		return FormState{}, pkgerrors.New(pkgerrors.CodeConflict, "no banner form is open")
	}
	t.form.Apply(in)
	t.form.errors = errs
	return t.form.State(), nil
}

// Cancel closes the form without touching the list.
func (t *Table) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closeLocked()
}

// AttachImage replaces the open form's image.
func (t *Table) AttachImage(img Image) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.form == nil {
		return pkgerrors.New(pkgerrors.CodeConflict, "no banner form is open")
	}
	t.form.SetImage(img)
	return nil
}

// DetachImage clears the open form's image.
func (t *Table) DetachImage() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.form == nil {
		return pkgerrors.New(pkgerrors.CodeConflict, "no banner form is open")
	}
	t.form.RemoveImage()
	return nil
}

// Create validates and appends a new record without changing the view.
func (t *Table) Create(ctx context.Context, in FormInput) (Banner, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	records, err := t.repo.List(ctx)
	if err != nil {
		return Banner{}, err
	}
	form, err := NewForm(nil, records, t.ids)
	if err != nil {
		return Banner{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "open banner form")
	}
	form.Apply(in)
	stored, err := form.Submit(ctx, t.storeLocked)
	if pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.metrics.Observe("submit", metrics.ResultInvalid)
	}
	return stored, err
}

// Update applies a partial change to an existing record without changing the
// view. Fields missing from the patch keep their stored values.
func (t *Table) Update(ctx context.Context, id int, patch Patch) (Banner, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	records, err := t.repo.List(ctx)
	if err != nil {
		return Banner{}, err
	}
	idx := indexOf(records, id)
	if idx < 0 {
		return Banner{}, pkgerrors.New(pkgerrors.CodeNotFound, "banner not found")
	}
	form, err := NewForm(&records[idx], records, t.ids)
	if err != nil {
		return Banner{}, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "open banner form")
	}
	in := InputFrom(records[idx])
	patch.applyTo(&in)
	form.Apply(in)
	stored, err := form.Submit(ctx, t.storeLocked)
	if pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.metrics.Observe("submit", metrics.ResultInvalid)
	}
	return stored, err
}

// Feed returns active banners, highest order first, one page at a time.
func (t *Table) Feed(ctx context.Context, params pagination.Params) (types.Page[Banner], error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return types.Page[Banner]{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	limit := pagination.NormalizeLimit(params.Limit)

	records, err := t.List(ctx)
	if err != nil {
		return types.Page[Banner]{}, err
	}
	active := make([]Banner, 0, len(records))
	for _, b := range records {
		if !b.Active() {
			continue
		}
		if cursor != nil && !cursor.After(b.Order, b.IDValue()) {
			continue
		}
		active = append(active, b)
	}
	SortByOrder(active)

	page := types.Page[Banner]{Items: active}
	if len(active) > limit {
		page.Items = active[:limit]
		last := page.Items[limit-1]
		page.Cursor = pagination.EncodeCursor(pagination.Cursor{Order: last.Order, ID: last.IDValue()})
	}
	return page, nil
}

// Seed appends records whose ids are not already present. Records without an
// id get the next sequential one and records without a date get the current
// time. Every record is validated before any is stored. It returns how many
// were added.
func (t *Table) Seed(ctx context.Context, records []Banner) (int, error) {
	prepared := make([]Banner, len(records))
	for i, record := range records {
		record = record.clone()
		if record.Status == "" {
			record.Status = enums.BannerStatusActive
		}
		if errs := Validate(record); len(errs) > 0 {
			return 0, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("seed banner at index %d is invalid", i)).
				WithDetails(map[string]any{"index": i, "fields": errs})
		}
		prepared[i] = record
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	existing, err := t.repo.List(ctx)
	if err != nil {
		return 0, err
	}
	added := 0
	for _, record := range prepared {
		if record.HasID() && indexOf(existing, *record.ID) >= 0 {
			continue
		}
		if record.HasID() {
			t.lastID = max(t.lastID, *record.ID)
		} else {
			record.ID = t.issueIDLocked(existing)
		}
		if record.Date == "" {
			record.Date = t.now()
		}
		if err := t.repo.Insert(ctx, record); err != nil {
			return added, err
		}
		existing = append(existing, record)
		added++
	}
	t.metrics.SetRecords(len(existing))
	return added, nil
}

func (t *Table) storeLocked(ctx context.Context, record Banner) (Banner, error) {
	records, err := t.repo.List(ctx)
	if err != nil {
		t.metrics.Observe("submit", metrics.ResultError)
		return Banner{}, err
	}

	if record.HasID() {
		if idx := indexOf(records, *record.ID); idx >= 0 {
			merged := merge(records[idx], record)
			if err := t.repo.Replace(ctx, merged); err != nil {
				t.metrics.Observe("submit", metrics.ResultError)
				return Banner{}, err
			}
			t.metrics.Observe("submit", metrics.ResultSuccess)
			return merged, nil
		}
	}

	created := record.clone()
	created.ID = t.issueIDLocked(records)
	created.Date = t.now()
	if err := t.repo.Insert(ctx, created); err != nil {
		t.metrics.Observe("submit", metrics.ResultError)
		return Banner{}, err
	}
	t.metrics.Observe("submit", metrics.ResultSuccess)
	t.metrics.SetRecords(len(records) + 1)
	return created, nil
}

// issueIDLocked hands out the next sequential id: len(records)+1, raised to
// stay above every id issued before and bumped past taken ones.
func (t *Table) issueIDLocked(records []Banner) *int {
	id := nextSequentialID(records, t.lastID+1)
	t.lastID = id
	return &id
}

func (t *Table) refreshCountLocked(ctx context.Context) {
	if records, err := t.repo.List(ctx); err == nil {
		t.metrics.SetRecords(len(records))
	}
}

func (t *Table) openLocked(form *Form) {
	t.form = form
	t.mode = ModeForm
}

func (t *Table) closeLocked() {
	t.form = nil
	t.mode = ModeList
}

func (t *Table) now() string {
	return t.clock().UTC().Format(DateLayout)
}
