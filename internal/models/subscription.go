package models

// DateLayout is the store format for date-only fields (start_date, end_date).
const DateLayout = "2006-01-02"

// Subscription is a client's allotment of session credits.
// SessionsTotal == nil means unlimited; SessionsLeft is meaningless then.
type Subscription struct {
	ID            string  `json:"id"`
	ClientID      string  `json:"id_client"`
	Type          string  `json:"type"`
	SessionsTotal *int    `json:"sessions_total"`
	SessionsLeft  int     `json:"sessions_left"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	Price         float64 `json:"price"`
}

// Unlimited reports whether the subscription has no session cap.
func (s Subscription) Unlimited() bool {
	return s.SessionsTotal == nil
}

// SubscriptionType is a catalog offering clients can purchase.
// Sessions == nil means the resulting subscription is unlimited.
type SubscriptionType struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Sessions *int    `json:"sessions"`
	Price    float64 `json:"price"`
}
