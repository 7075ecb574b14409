package models

import "time"

type TrackingEvent struct {
	Timestamp   time.Time `json:"timestamp"`
	Status      string    `json:"status"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
}

// TrackingRecord is the timeline returned for a tracking number.
type TrackingRecord struct {
	TrackingNumber string            `json:"tracking_number"`
	OrderID        int               `json:"order_id"`
	Status         string            `json:"status"`
	Provider       *ShippingProvider `json:"provider"`
	Events         []TrackingEvent   `json:"events"`
}

type CreateTrackingEventRequest struct {
	TrackingNumber string     `json:"tracking_number" binding:"required"`
	Status         string     `json:"status" binding:"required"`
	Location       string     `json:"location"`
	Description    string     `json:"description"`
	Timestamp      *time.Time `json:"timestamp"`
}
