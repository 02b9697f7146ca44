package enums

import "fmt"

// PublishStatus tracks whether CMS content is live.
type PublishStatus string

const (
	PublishStatusDraft     PublishStatus = "draft"
	PublishStatusPublished PublishStatus = "published"
)

var validPublishStatuses = []PublishStatus{PublishStatusDraft, PublishStatusPublished}

// String implements fmt.Stringer.
func (p PublishStatus) String() string {
	return string(p)
}

// IsValid reports whether the status is recognized.
func (p PublishStatus) IsValid() bool {
	for _, candidate := range validPublishStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePublishStatus converts a raw string into a PublishStatus.
func ParsePublishStatus(value string) (PublishStatus, error) {
	for _, candidate := range validPublishStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid publish status %q", value)
}
