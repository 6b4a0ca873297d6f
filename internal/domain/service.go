package domain

import "time"

// Service is an offering advertised on the site.
type Service struct {
	ID          string
	Title       string
	Description string
	Image       string // stored relative path
	CreatedAt   time.Time
}

// ServicePatch holds the fields supplied to a service update.
type ServicePatch struct {
	Title       *string
	Description *string
}

// ServiceRepository persists services in insertion order.
type ServiceRepository = Repository[Service]
