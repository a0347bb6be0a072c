package services

import (
	"testing"
	"time"

	"tanzanex-lend/internal/adapters/persistence/models"
	"tanzanex-lend/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

func TestCheckTrial(t *testing.T) {
	start := time.Date(2026, time.August, 1, 9, 0, 0, 0, time.UTC)
	org := &models.Organization{
		SubscriptionStatus: domain.SubscriptionTrial,
		TrialStartDate:     start,
	}

	t.Run("fresh trial has full window", func(t *testing.T) {
		status := Check(org, start.Add(1*time.Hour))
		assert.False(t, status.Locked)
		assert.Equal(t, domain.SubscriptionTrial, status.Status)
		assert.Equal(t, 7, status.TrialDaysLeft)
	})

	t.Run("days left round up", func(t *testing.T) {
		status := Check(org, start.AddDate(0, 0, 5).Add(6*time.Hour))
		assert.False(t, status.Locked)
		assert.Equal(t, 2, status.TrialDaysLeft)
	})

	t.Run("last day still open", func(t *testing.T) {
		status := Check(org, start.AddDate(0, 0, 7).Add(-1*time.Minute))
		assert.False(t, status.Locked)
		assert.Equal(t, 1, status.TrialDaysLeft)
	})

	t.Run("locks after seven days", func(t *testing.T) {
		status := Check(org, start.AddDate(0, 0, 8))
		assert.True(t, status.Locked)
		assert.Equal(t, domain.SubscriptionExpired, status.Status)
		assert.Equal(t, ReasonTrialOver, status.Reason)
	})
}

func TestCheckActive(t *testing.T) {
	now := time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)

	t.Run("open before expiry", func(t *testing.T) {
		expiry := now.AddDate(0, 6, 0)
		org := &models.Organization{
			SubscriptionStatus: domain.SubscriptionActive,
			ExpiryDate:         &expiry,
		}
		status := Check(org, now)
		assert.False(t, status.Locked)
		assert.Equal(t, domain.SubscriptionActive, status.Status)
	})

	t.Run("locks after expiry", func(t *testing.T) {
		expiry := now.AddDate(0, 0, -1)
		org := &models.Organization{
			SubscriptionStatus: domain.SubscriptionActive,
			ExpiryDate:         &expiry,
		}
		status := Check(org, now)
		assert.True(t, status.Locked)
		assert.Equal(t, domain.SubscriptionExpired, status.Status)
		assert.Equal(t, ReasonExpired, status.Reason)
	})

	t.Run("open without expiry date", func(t *testing.T) {
		org := &models.Organization{SubscriptionStatus: domain.SubscriptionActive}
		status := Check(org, now)
		assert.False(t, status.Locked)
	})
}

func TestCheckTerminalStates(t *testing.T) {
	now := time.Now()

	t.Run("suspended", func(t *testing.T) {
		org := &models.Organization{SubscriptionStatus: domain.SubscriptionSuspended}
		status := Check(org, now)
		assert.True(t, status.Locked)
		assert.Equal(t, ReasonSuspended, status.Reason)
	})

	t.Run("archived", func(t *testing.T) {
		org := &models.Organization{SubscriptionStatus: domain.SubscriptionArchived}
		status := Check(org, now)
		assert.True(t, status.Locked)
		assert.Equal(t, ReasonSuspended, status.Reason)
	})

	t.Run("expired", func(t *testing.T) {
		org := &models.Organization{SubscriptionStatus: domain.SubscriptionExpired}
		status := Check(org, now)
		assert.True(t, status.Locked)
		assert.Equal(t, ReasonExpired, status.Reason)
	})

	t.Run("unknown status locks", func(t *testing.T) {
		org := &models.Organization{SubscriptionStatus: "banana"}
		status := Check(org, now)
		assert.True(t, status.Locked)
		assert.Equal(t, ReasonInvalid, status.Reason)
	})
}
