package handler

import (
	"fmt"
	"net/http"

	"github.com/msomdec/folio-cms/internal/service"
)

// Services bundles the services the HTTP layer depends on.
type Services struct {
	Auth         *service.AuthService
	Users        *service.UserService
	Blogs        *service.BlogService
	Offerings    *service.OfferingService
	Testimonials *service.TestimonialService
	Images       *service.ImageStore
}

type RouteOptions struct {
	MaxUploadBytes int64
	// LoginLimiter throttles login and verify-login per client IP. Nil
	// disables throttling.
	LoginLimiter *service.TokenBucket
}

// RegisterRoutes sets up all HTTP routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, svc Services, opts RouteOptions) {
	protect := func(h http.HandlerFunc) http.Handler { return RequireAuth(svc.Auth, h) }
	throttle := func(h http.HandlerFunc) http.Handler {
		if opts.LoginLimiter == nil {
			return h
		}
		return RateLimit(opts.LoginLimiter, h)
	}

	mux.HandleFunc("GET /healthz", HandleHealthz)

	images := NewImageHandler(svc.Images)
	mux.HandleFunc("GET /images/{key}", images.HandleServe)

	auth := NewAuthHandler(svc.Auth)
	mux.Handle("POST /api/user/login", throttle(auth.HandleLogin))
	mux.Handle("POST /api/user/verify-login", throttle(auth.HandleVerifyLogin))

	users := newUserHandler(svc.Users, opts.MaxUploadBytes)
	mux.HandleFunc("POST /api/user/add", users.HandleCreate)
	mux.Handle("GET /api/user/get", protect(users.HandleList))
	mux.Handle("GET /api/user/get/{id}", protect(users.HandleGet))
	mux.Handle("PATCH /api/user/update/{id}", protect(users.HandleUpdate))
	mux.Handle("DELETE /api/user/delete/{id}", protect(users.HandleDelete))

	registerContent(mux, "blog", newBlogHandler(svc.Blogs, opts.MaxUploadBytes), protect)
	registerContent(mux, "service", newServiceHandler(svc.Offerings, opts.MaxUploadBytes), protect)
	registerContent(mux, "testimonial", newTestimonialHandler(svc.Testimonials, opts.MaxUploadBytes), protect)

	mux.HandleFunc("/", HandleNotFound)
}

type contentRoutes interface {
	HandleCreate(http.ResponseWriter, *http.Request)
	HandleList(http.ResponseWriter, *http.Request)
	HandleGet(http.ResponseWriter, *http.Request)
	HandleUpdate(http.ResponseWriter, *http.Request)
	HandleDelete(http.ResponseWriter, *http.Request)
}

// registerContent mounts public reads and protected writes for a content type.
func registerContent(mux *http.ServeMux, kind string, h contentRoutes, protect func(http.HandlerFunc) http.Handler) {
	base := "/api/" + kind
	mux.Handle("POST "+base+"/add", protect(h.HandleCreate))
	mux.HandleFunc("GET "+base+"/get", h.HandleList)
	mux.HandleFunc("GET "+base+"/get/{id}", h.HandleGet)
	mux.Handle("PATCH "+base+"/update/{id}", protect(h.HandleUpdate))
	mux.Handle("DELETE "+base+"/delete/{id}", protect(h.HandleDelete))
}

// HandleNotFound answers unmatched routes with a plain-text message.
func HandleNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	fmt.Fprintf(w, "Can't find %s on the server", r.URL.RequestURI())
}
