package enums

import "fmt"

// BannerStatus toggles whether a banner is served to the public feed.
type BannerStatus string

const (
	BannerStatusActive   BannerStatus = "active"
	BannerStatusInactive BannerStatus = "inactive"
)

var validBannerStatuses = []BannerStatus{
	BannerStatusActive,
	BannerStatusInactive,
}

// String implements fmt.Stringer.
func (s BannerStatus) String() string {
	return string(s)
}

// IsValid reports whether the value matches a known status.
func (s BannerStatus) IsValid() bool {
	for _, candidate := range validBannerStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseBannerStatus converts raw input into BannerStatus. Empty input
// resolves to active.
func ParseBannerStatus(value string) (BannerStatus, error) {
	if value == "" {
		return BannerStatusActive, nil
	}
	for _, candidate := range validBannerStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid banner status %q", value)
}
