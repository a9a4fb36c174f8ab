// Package ledger owns the subscription session-count rules: eligibility,
// debit on booking, credit on cancellation, gift issuance and purchase.
// Nothing else writes the sessions_left field.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/fitbook/gym-service/internal/models"
	"github.com/fitbook/gym-service/internal/store"
)

const (
	// GiftType labels the promotional subscription granted on a client's
	// first booking attempt without an eligible subscription.
	GiftType     = "Welcome gift (10 sessions)"
	giftSessions = 10

	// validityDays is the fixed window for both purchased and gifted
	// subscriptions.
	validityDays = 90
)

type Ledger struct {
	store *store.Client
	now   func() time.Time
}

func New(st *store.Client) *Ledger {
	return &Ledger{store: st, now: time.Now}
}

// WithClock overrides the time source; used by tests.
func (l *Ledger) WithClock(now func() time.Time) *Ledger {
	l.now = now
	return l
}

// FindActive returns the client's first eligible subscription in store order,
// or nil. Eligible means unlimited or credits left, and not past its end date.
func (l *Ledger) FindActive(ctx context.Context, clientID string, asOf time.Time) *models.Subscription {
	for _, sub := range l.store.SubscriptionsByClient(ctx, clientID) {
		if Eligible(sub, asOf) {
			return &sub
		}
	}
	return nil
}

// Eligible reports whether a subscription can cover a booking as of the given
// moment. An end date is date-only; it is parsed at midnight UTC and compared
// with >= asOf, so a subscription stops matching once its final day begins.
func Eligible(sub models.Subscription, asOf time.Time) bool {
	if !sub.Unlimited() && sub.SessionsLeft <= 0 {
		return false
	}
	if sub.EndDate == "" {
		return true
	}
	end, err := time.Parse(models.DateLayout, sub.EndDate)
	if err != nil {
		return false
	}
	return !end.Before(asOf)
}

// IssueGift creates the fixed-shape promotional subscription. The caller must
// not proceed to book if the write fails.
func (l *Ledger) IssueGift(ctx context.Context, clientID string) (*models.Subscription, error) {
	total := giftSessions
	sub := models.Subscription{
		ClientID:      clientID,
		Type:          GiftType,
		SessionsTotal: &total,
		SessionsLeft:  giftSessions,
		StartDate:     l.now().Format(models.DateLayout),
		EndDate:       l.now().AddDate(0, 0, validityDays).Format(models.DateLayout),
		Price:         0,
	}

	created, err := l.store.CreateSubscription(ctx, sub)
	if err != nil {
		return nil, fmt.Errorf("issue gift subscription: %w", err)
	}
	return created, nil
}

// Debit consumes one session from the caller-held snapshot. Unlimited
// subscriptions are untouched. The remaining count never goes below zero.
// There is no version check: concurrent debits against the same subscription
// are last-write-wins, a documented limitation of the store model.
func (l *Ledger) Debit(ctx context.Context, sub *models.Subscription) (*models.Subscription, error) {
	if sub.Unlimited() {
		return sub, nil
	}

	left := sub.SessionsLeft - 1
	if left < 0 {
		left = 0
	}
	if err := l.store.UpdateSubscription(ctx, sub.ID, map[string]any{"sessions_left": left}); err != nil {
		return sub, fmt.Errorf("debit subscription %s: %w", sub.ID, err)
	}

	updated := *sub
	updated.SessionsLeft = left
	return &updated, nil
}

// Credit returns one session to the subscription after a cancellation.
// The count is deliberately not clamped to sessions_total; see DESIGN.md.
func (l *Ledger) Credit(ctx context.Context, subscriptionID string) (*models.Subscription, error) {
	sub := l.store.SubscriptionByID(ctx, subscriptionID)
	if sub == nil {
		return nil, fmt.Errorf("credit: subscription %s not found", subscriptionID)
	}
	if sub.Unlimited() {
		return sub, nil
	}

	left := sub.SessionsLeft + 1
	if err := l.store.UpdateSubscription(ctx, sub.ID, map[string]any{"sessions_left": left}); err != nil {
		return sub, fmt.Errorf("credit subscription %s: %w", sub.ID, err)
	}

	sub.SessionsLeft = left
	return sub, nil
}

// Purchase materializes a subscription from a catalog type. Purchases are
// unconditionally additive; no overlap check against existing subscriptions.
func (l *Ledger) Purchase(ctx context.Context, clientID string, st models.SubscriptionType) (*models.Subscription, error) {
	sub := models.Subscription{
		ClientID:      clientID,
		Type:          st.Name,
		SessionsTotal: st.Sessions,
		StartDate:     l.now().Format(models.DateLayout),
		EndDate:       l.now().AddDate(0, 0, validityDays).Format(models.DateLayout),
		Price:         st.Price,
	}
	if st.Sessions != nil {
		sub.SessionsLeft = *st.Sessions
	}

	created, err := l.store.CreateSubscription(ctx, sub)
	if err != nil {
		return nil, fmt.Errorf("purchase subscription: %w", err)
	}
	return created, nil
}
