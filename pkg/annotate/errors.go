package annotate

import (
	"errors"
	"fmt"

	"github.com/ArshadAliFreelance/audio-annotator/pkg/utils"
)

var (
	// ErrUpstreamAuth marks a provider failure caused by missing or rejected
	// credentials.
	ErrUpstreamAuth = errors.New("upstream authentication failed")
	// ErrUpstreamQuota marks a provider failure caused by quota or rate
	// limits.
	ErrUpstreamQuota = errors.New("upstream quota exceeded")
	// ErrUpstreamUnknown marks any other provider failure.
	ErrUpstreamUnknown = errors.New("failed to generate annotations")
)

var (
	authKeywords  = []string{"api key", "unauthorized", "401", "permission", "credential", "authentication"}
	quotaKeywords = []string{"quota", "rate limit", "429", "resource exhausted", "billing"}
)

// ClassifyError maps a provider failure onto one of the upstream sentinels by
// inspecting the error chain text, wrapping the original so its detail stays
// reachable. A nil error stays nil.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}

	for _, keyword := range authKeywords {
		if utils.ContainsErrorSubstringFold(err, keyword) {
			return fmt.Errorf("%w: %w", ErrUpstreamAuth, err)
		}
	}
	for _, keyword := range quotaKeywords {
		if utils.ContainsErrorSubstringFold(err, keyword) {
			return fmt.Errorf("%w: %w", ErrUpstreamQuota, err)
		}
	}
	return fmt.Errorf("%w: %w", ErrUpstreamUnknown, err)
}
