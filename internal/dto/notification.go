package dto

import "time"

type NotificationResponse struct {
	ID        int64          `json:"id"`
	From      AuthorResponse `json:"from"`
	To        int64          `json:"to"`
	Kind      string         `json:"kind"`
	Read      bool           `json:"read"`
	CreatedAt time.Time      `json:"createdAt"`
}

type ListNotificationsResponse struct {
	Items []NotificationResponse `json:"items"`
}
