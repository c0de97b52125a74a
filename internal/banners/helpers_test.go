package banners

import (
	"testing"
	"time"

	"github.com/angelmondragon/banner-admin/pkg/enums"
)

func validInput() FormInput {
	return FormInput{
		Group:  enums.BannerGroupOne,
		Name:   "Promo",
		Link:   "http://x",
		Order:  1,
		Text1:  "a",
		Text2:  "b",
		Text3:  "c",
		Status: enums.BannerStatusActive,
		Image:  &Image{URL: "data:image/png;base64,AAAA", FileName: "f.png"},
	}
}

func validBanner(id int) Banner {
	in := validInput()
	return Banner{
		ID:     &id,
		Group:  in.Group,
		Name:   in.Name,
		Link:   in.Link,
		Order:  in.Order,
		Text1:  in.Text1,
		Text2:  in.Text2,
		Text3:  in.Text3,
		Date:   "2026-01-01T00:00:00.000Z",
		Image:  *in.Image,
		Status: in.Status,
	}
}

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func newTestTable(t *testing.T, initial ...Banner) *Table {
	t.Helper()
	table, err := NewTable(TableParams{
		Repo:  NewMemoryRepository(initial...),
		Clock: fixedClock(time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)),
	})
	if err != nil {
		t.Fatalf("new table: %v", err)
	}
	return table
}

func intPtr(v int) *int { return &v }
