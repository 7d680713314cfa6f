package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistered(t *testing.T) {
	t.Parallel()

	// Verify all metrics are non-nil (registered via promauto on package init).
	assert.NotNil(t, HTTPRequestDuration)
	assert.NotNil(t, HTTPRequestsTotal)
	assert.NotNil(t, TransitionsTotal)
	assert.NotNil(t, TransitionFailuresTotal)
	assert.NotNil(t, RefreshBumpsTotal)
	assert.NotNil(t, ListingRefetchesTotal)
	assert.NotNil(t, MessagesSentTotal)
	assert.NotNil(t, MessageSendFailuresTotal)
	assert.NotNil(t, NotificationFailuresTotal)
}
