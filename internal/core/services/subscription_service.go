package services

import (
	"context"
	"errors"
	"log"
	"math"
	"time"

	"tanzanex-lend/internal/adapters/persistence/models"
	"tanzanex-lend/internal/adapters/persistence/repositories"
	"tanzanex-lend/internal/core/domain"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// Subscription errors
var ErrOrganizationNotFound = errors.New("organization not found")

// Lock reasons shown to locked-out tenants
const (
	ReasonSuspended = "Account suspended. Contact support."
	ReasonTrialOver = "Your free trial has ended. Please subscribe to continue."
	ReasonExpired   = "Your subscription has expired. Please renew to continue."
	ReasonInvalid   = "Invalid subscription status"
)

// SubscriptionStatus is the gate decision for one organization
type SubscriptionStatus struct {
	Status        string `json:"status"`
	Locked        bool   `json:"locked"`
	Reason        string `json:"reason,omitempty"`
	TrialDaysLeft int    `json:"trial_days_left,omitempty"`
}

// SubscriptionService evaluates and maintains tenant subscription
// state.
type SubscriptionService struct {
	orgRepo repositories.OrganizationRepository
	cron    *cron.Cron
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(orgRepo repositories.OrganizationRepository) *SubscriptionService {
	return &SubscriptionService{orgRepo: orgRepo}
}

// Check evaluates an organization's subscription at a point in
// time. It is pure: persistence of expiry transitions is left to
// the nightly sweep.
func Check(org *models.Organization, now time.Time) SubscriptionStatus {
	switch org.SubscriptionStatus {
	case domain.SubscriptionSuspended, domain.SubscriptionArchived:
		return SubscriptionStatus{
			Status: org.SubscriptionStatus,
			Locked: true,
			Reason: ReasonSuspended,
		}

	case domain.SubscriptionTrial:
		trialEnd := org.TrialStartDate.AddDate(0, 0, domain.TrialDays)
		if now.After(trialEnd) {
			return SubscriptionStatus{
				Status: domain.SubscriptionExpired,
				Locked: true,
				Reason: ReasonTrialOver,
			}
		}
		daysLeft := int(math.Ceil(trialEnd.Sub(now).Hours() / 24))
		return SubscriptionStatus{
			Status:        domain.SubscriptionTrial,
			TrialDaysLeft: daysLeft,
		}

	case domain.SubscriptionActive:
		if org.ExpiryDate != nil && now.After(*org.ExpiryDate) {
			return SubscriptionStatus{
				Status: domain.SubscriptionExpired,
				Locked: true,
				Reason: ReasonExpired,
			}
		}
		return SubscriptionStatus{Status: domain.SubscriptionActive}

	case domain.SubscriptionExpired:
		return SubscriptionStatus{
			Status: domain.SubscriptionExpired,
			Locked: true,
			Reason: ReasonExpired,
		}

	default:
		return SubscriptionStatus{
			Status: org.SubscriptionStatus,
			Locked: true,
			Reason: ReasonInvalid,
		}
	}
}

// Status evaluates the subscription of one organization by ID
func (s *SubscriptionService) Status(ctx context.Context, orgID uint) (*SubscriptionStatus, error) {
	org, err := s.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, err
	}
	status := Check(org, time.Now())
	return &status, nil
}

// StartSweep schedules the nightly job that persists trial and
// subscription expiries. Runs daily at 02:00 server time.
func (s *SubscriptionService) StartSweep() error {
	s.cron = cron.New()
	_, err := s.cron.AddFunc("0 2 * * *", func() {
		if err := s.Sweep(context.Background()); err != nil {
			log.Printf("Subscription sweep failed: %v", err)
		}
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	log.Println("Subscription sweep scheduled (daily 02:00)")
	return nil
}

// StopSweep stops the scheduler and waits for a running sweep
func (s *SubscriptionService) StopSweep() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// Sweep marks organizations whose trial or paid period has lapsed
// as expired.
func (s *SubscriptionService) Sweep(ctx context.Context) error {
	orgs, err := s.orgRepo.ListByStatus(ctx, domain.SubscriptionTrial, domain.SubscriptionActive)
	if err != nil {
		return err
	}

	now := time.Now()
	expired := 0
	for _, org := range orgs {
		status := Check(org, now)
		if !status.Locked {
			continue
		}
		org.SubscriptionStatus = domain.SubscriptionExpired
		if err := s.orgRepo.Update(ctx, org); err != nil {
			log.Printf("Failed to expire organization %d: %v", org.ID, err)
			continue
		}
		expired++
	}

	if expired > 0 {
		log.Printf("Subscription sweep expired %d organization(s)", expired)
	}
	return nil
}
