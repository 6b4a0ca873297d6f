package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/msomdec/folio-cms/internal/domain"
)

// Documents keep Mongo's generated _id out of the domain; "id" is the public
// identifier and "_id" only provides insertion order.
var insertionOrder = bson.D{{Key: "_id", Value: 1}}

type userDoc struct {
	ID                string     `bson:"id"`
	Name              string     `bson:"name"`
	Mobile            string     `bson:"mobile"`
	Email             *string    `bson:"email,omitempty"`
	PasswordHash      string     `bson:"password"`
	Role              string     `bson:"role"`
	Designation       string     `bson:"designation"`
	Description       *string    `bson:"description,omitempty"`
	Status            bool       `bson:"status"`
	Photo             string     `bson:"photo,omitempty"`
	PasswordUpdatedAt *time.Time `bson:"passwordUpdatedAt,omitempty"`
	CreatedAt         time.Time  `bson:"createdAt"`
	UpdatedAt         time.Time  `bson:"updatedAt"`
}

var userMapping = mapping[domain.User, userDoc]{
	toDoc: func(u *domain.User) userDoc {
		return userDoc{
			ID: u.ID, Name: u.Name, Mobile: u.Mobile, Email: u.Email, PasswordHash: u.PasswordHash,
			Role: u.Role, Designation: u.Designation, Description: u.Description, Status: u.Status,
			Photo: u.Photo, PasswordUpdatedAt: u.PasswordUpdatedAt, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt,
		}
	},
	fromDoc: func(d userDoc) domain.User {
		return domain.User{
			ID: d.ID, Name: d.Name, Mobile: d.Mobile, Email: d.Email, PasswordHash: d.PasswordHash,
			Role: d.Role, Designation: d.Designation, Description: d.Description, Status: d.Status,
			Photo: d.Photo, PasswordUpdatedAt: d.PasswordUpdatedAt, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
		}
	},
	id: func(u *domain.User) string { return u.ID },
	stamp: func(u *domain.User, now time.Time, creating bool) {
		if creating {
			u.CreatedAt = now
		}
		u.UpdatedAt = now
	},
	sort: insertionOrder,
}

// UserRepository implements domain.UserRepository on the users collection.
type UserRepository struct {
	*collection[domain.User, userDoc]
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

type blogDoc struct {
	ID           string    `bson:"id"`
	Title        string    `bson:"title"`
	Description  string    `bson:"description"`
	Image        string    `bson:"image"`
	UploadedDate time.Time `bson:"uploadedDate"`
	AuthorID     string    `bson:"authorId"`
}

var blogMapping = mapping[domain.Blog, blogDoc]{
	toDoc: func(b *domain.Blog) blogDoc {
		return blogDoc{ID: b.ID, Title: b.Title, Description: b.Description, Image: b.Image,
			UploadedDate: b.UploadedDate, AuthorID: b.AuthorID}
	},
	fromDoc: func(d blogDoc) domain.Blog {
		return domain.Blog{ID: d.ID, Title: d.Title, Description: d.Description, Image: d.Image,
			UploadedDate: d.UploadedDate, AuthorID: d.AuthorID}
	},
	id:   func(b *domain.Blog) string { return b.ID },
	sort: bson.D{{Key: "uploadedDate", Value: -1}, {Key: "_id", Value: -1}},
}

type BlogRepository struct {
	*collection[domain.Blog, blogDoc]
}

type serviceDoc struct {
	ID          string    `bson:"id"`
	Title       string    `bson:"title"`
	Description string    `bson:"description"`
	Image       string    `bson:"image"`
	CreatedAt   time.Time `bson:"createdAt"`
}

var serviceMapping = mapping[domain.Service, serviceDoc]{
	toDoc: func(s *domain.Service) serviceDoc {
		return serviceDoc{ID: s.ID, Title: s.Title, Description: s.Description, Image: s.Image, CreatedAt: s.CreatedAt}
	},
	fromDoc: func(d serviceDoc) domain.Service {
		return domain.Service{ID: d.ID, Title: d.Title, Description: d.Description, Image: d.Image, CreatedAt: d.CreatedAt}
	},
	id: func(s *domain.Service) string { return s.ID },
	stamp: func(s *domain.Service, now time.Time, creating bool) {
		if creating {
			s.CreatedAt = now
		}
	},
	sort: insertionOrder,
}

type ServiceRepository struct {
	*collection[domain.Service, serviceDoc]
}

type testimonialDoc struct {
	ID          string    `bson:"id"`
	Name        string    `bson:"name"`
	Designation string    `bson:"designation"`
	Message     string    `bson:"message"`
	CreatedAt   time.Time `bson:"createdAt"`
}

var testimonialMapping = mapping[domain.Testimonial, testimonialDoc]{
	toDoc: func(t *domain.Testimonial) testimonialDoc {
		return testimonialDoc{ID: t.ID, Name: t.Name, Designation: t.Designation, Message: t.Message, CreatedAt: t.CreatedAt}
	},
	fromDoc: func(d testimonialDoc) domain.Testimonial {
		return domain.Testimonial{ID: d.ID, Name: d.Name, Designation: d.Designation, Message: d.Message, CreatedAt: d.CreatedAt}
	},
	id: func(t *domain.Testimonial) string { return t.ID },
	stamp: func(t *domain.Testimonial, now time.Time, creating bool) {
		if creating {
			t.CreatedAt = now
		}
	},
	sort: insertionOrder,
}

type TestimonialRepository struct {
	*collection[domain.Testimonial, testimonialDoc]
}
