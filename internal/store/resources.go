package store

import (
	"context"
	"net/http"
	"net/url"

	"github.com/fitbook/gym-service/internal/models"
)

// Users

func (c *Client) Users(ctx context.Context) []models.User {
	var users []models.User
	c.getJSON(ctx, "/users", nil, &users)
	return users
}

func (c *Client) UsersByRole(ctx context.Context, role models.Role) []models.User {
	var users []models.User
	c.getJSON(ctx, "/users", url.Values{"role": {string(role)}}, &users)
	return users
}

func (c *Client) UserByID(ctx context.Context, id string) *models.User {
	var user *models.User
	c.getJSON(ctx, "/users/"+id, nil, &user)
	return user
}

// FindUser matches plaintext credentials against the user collection.
// Credential storage is the external store's concern, not ours.
func (c *Client) FindUser(ctx context.Context, login, password string) *models.User {
	var users []models.User
	c.getJSON(ctx, "/users", url.Values{"login": {login}, "password": {password}}, &users)
	if len(users) == 0 {
		return nil
	}
	return &users[0]
}

func (c *Client) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	var created models.User
	if err := c.send(ctx, http.MethodPost, "/users", user, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, patch any) error {
	return c.send(ctx, http.MethodPatch, "/users/"+id, patch, nil)
}

// Schedules

func (c *Client) Schedules(ctx context.Context) []models.Session {
	var sessions []models.Session
	c.getJSON(ctx, "/schedules", nil, &sessions)
	return sessions
}

func (c *Client) ScheduleByID(ctx context.Context, id string) *models.Session {
	var session *models.Session
	c.getJSON(ctx, "/schedules/"+id, nil, &session)
	return session
}

func (c *Client) SchedulesByTrainer(ctx context.Context, trainerID string) []models.Session {
	var sessions []models.Session
	c.getJSON(ctx, "/schedules", url.Values{"id_trainer": {trainerID}}, &sessions)
	return sessions
}

func (c *Client) CreateSchedule(ctx context.Context, session models.Session) (*models.Session, error) {
	var created models.Session
	if err := c.send(ctx, http.MethodPost, "/schedules", session, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateSchedule(ctx context.Context, id string, patch any) error {
	return c.send(ctx, http.MethodPatch, "/schedules/"+id, patch, nil)
}

func (c *Client) DeleteSchedule(ctx context.Context, id string) error {
	return c.delete(ctx, "/schedules/"+id)
}

// Bookings

func (c *Client) Bookings(ctx context.Context) []models.Booking {
	var bookings []models.Booking
	c.getJSON(ctx, "/bookings", nil, &bookings)
	return bookings
}

func (c *Client) BookingsByClient(ctx context.Context, clientID string) []models.Booking {
	var bookings []models.Booking
	c.getJSON(ctx, "/bookings", url.Values{"id_client": {clientID}}, &bookings)
	return bookings
}

func (c *Client) BookingsBySchedule(ctx context.Context, scheduleID string) []models.Booking {
	var bookings []models.Booking
	c.getJSON(ctx, "/bookings", url.Values{"id_schedule": {scheduleID}}, &bookings)
	return bookings
}

func (c *Client) BookingsByScheduleAndClient(ctx context.Context, scheduleID, clientID string) []models.Booking {
	var bookings []models.Booking
	c.getJSON(ctx, "/bookings", url.Values{"id_schedule": {scheduleID}, "id_client": {clientID}}, &bookings)
	return bookings
}

func (c *Client) BookingByID(ctx context.Context, id string) *models.Booking {
	var booking *models.Booking
	c.getJSON(ctx, "/bookings/"+id, nil, &booking)
	return booking
}

func (c *Client) CreateBooking(ctx context.Context, booking models.Booking) (*models.Booking, error) {
	var created models.Booking
	if err := c.send(ctx, http.MethodPost, "/bookings", booking, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateBooking(ctx context.Context, id string, patch any) error {
	return c.send(ctx, http.MethodPatch, "/bookings/"+id, patch, nil)
}

func (c *Client) DeleteBooking(ctx context.Context, id string) error {
	return c.delete(ctx, "/bookings/"+id)
}

// Subscriptions (no delete: subscriptions are never removed by this service)

func (c *Client) SubscriptionsByClient(ctx context.Context, clientID string) []models.Subscription {
	var subs []models.Subscription
	c.getJSON(ctx, "/subscriptions", url.Values{"id_client": {clientID}}, &subs)
	return subs
}

func (c *Client) SubscriptionByID(ctx context.Context, id string) *models.Subscription {
	var sub *models.Subscription
	c.getJSON(ctx, "/subscriptions/"+id, nil, &sub)
	return sub
}

func (c *Client) CreateSubscription(ctx context.Context, sub models.Subscription) (*models.Subscription, error) {
	var created models.Subscription
	if err := c.send(ctx, http.MethodPost, "/subscriptions", sub, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateSubscription(ctx context.Context, id string, patch any) error {
	return c.send(ctx, http.MethodPatch, "/subscriptions/"+id, patch, nil)
}

// Subscription types

func (c *Client) SubscriptionTypes(ctx context.Context) []models.SubscriptionType {
	var types []models.SubscriptionType
	c.getJSON(ctx, "/subscription_types", nil, &types)
	return types
}

func (c *Client) CreateSubscriptionType(ctx context.Context, st models.SubscriptionType) (*models.SubscriptionType, error) {
	var created models.SubscriptionType
	if err := c.send(ctx, http.MethodPost, "/subscription_types", st, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateSubscriptionType(ctx context.Context, id string, patch any) error {
	return c.send(ctx, http.MethodPatch, "/subscription_types/"+id, patch, nil)
}

func (c *Client) DeleteSubscriptionType(ctx context.Context, id string) error {
	return c.delete(ctx, "/subscription_types/"+id)
}

// Feedbacks

func (c *Client) FeedbacksByClient(ctx context.Context, clientID string) []models.Feedback {
	var feedbacks []models.Feedback
	c.getJSON(ctx, "/feedbacks", url.Values{"id_client": {clientID}}, &feedbacks)
	return feedbacks
}

func (c *Client) Feedbacks(ctx context.Context) []models.Feedback {
	var feedbacks []models.Feedback
	c.getJSON(ctx, "/feedbacks", nil, &feedbacks)
	return feedbacks
}

func (c *Client) CreateFeedback(ctx context.Context, f models.Feedback) (*models.Feedback, error) {
	var created models.Feedback
	if err := c.send(ctx, http.MethodPost, "/feedbacks", f, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Notifications

func (c *Client) NotificationsByUser(ctx context.Context, userID string) []models.Notification {
	var notifications []models.Notification
	q := url.Values{"recipient_id": {userID}, "_sort": {"date_sent"}, "_order": {"desc"}}
	c.getJSON(ctx, "/notifications", q, &notifications)
	return notifications
}

func (c *Client) CreateNotification(ctx context.Context, n models.Notification) (*models.Notification, error) {
	var created models.Notification
	if err := c.send(ctx, http.MethodPost, "/notifications", n, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string, read bool) error {
	return c.send(ctx, http.MethodPatch, "/notifications/"+id, map[string]any{"read": read}, nil)
}
