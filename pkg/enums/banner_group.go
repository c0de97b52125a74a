package enums

import "fmt"

// BannerGroup names the slot a banner is rendered into.
type BannerGroup string

const (
	BannerGroupOne BannerGroup = "Group 1"
	BannerGroupTwo BannerGroup = "Group 2"
)

var validBannerGroups = []BannerGroup{
	BannerGroupOne,
	BannerGroupTwo,
}

// BannerGroups returns the selectable groups in display order.
func BannerGroups() []BannerGroup {
	out := make([]BannerGroup, len(validBannerGroups))
	copy(out, validBannerGroups)
	return out
}

// String implements fmt.Stringer.
func (g BannerGroup) String() string {
	return string(g)
}

// IsValid reports whether the value is one of the known groups.
func (g BannerGroup) IsValid() bool {
	for _, candidate := range validBannerGroups {
		if candidate == g {
			return true
		}
	}
	return false
}

// ParseBannerGroup converts raw input into BannerGroup.
func ParseBannerGroup(value string) (BannerGroup, error) {
	for _, candidate := range validBannerGroups {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid banner group %q", value)
}
