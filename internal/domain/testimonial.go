package domain

import "time"

// Testimonial is a quote from a client.
type Testimonial struct {
	ID          string
	Name        string
	Designation string
	Message     string
	CreatedAt   time.Time
}

// TestimonialPatch holds the fields supplied to a testimonial update.
type TestimonialPatch struct {
	Name        *string
	Designation *string
	Message     *string
}

// TestimonialRepository persists testimonials in insertion order.
type TestimonialRepository = Repository[Testimonial]
