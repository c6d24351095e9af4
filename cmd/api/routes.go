package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/handler"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/middleware"
)

type handlers struct {
	auth             *handler.AuthHandler
	members          *handler.MemberHandler
	events           *handler.EventHandler
	galleries        *handler.GalleryHandler
	board            *handler.BoardHandler
	highlights       *handler.HighlightHandler
	membershipPlans  *handler.MembershipPlanHandler
	sponsorshipPlans *handler.SponsorshipPlanHandler
	sponsors         *handler.SponsorHandler
	news             *handler.NewsHandler
	dashboard        *handler.DashboardHandler
	payments         *handler.PaymentHandler
	donations        *handler.DonationHandler
}

type guards struct {
	auth    fiber.Handler
	uploads fiber.Handler
}

// planRoutes is the route set shared by membership and sponsorship plans.
type planRoutes interface {
	Create(*fiber.Ctx) error
	All(*fiber.Ctx) error
	Active(*fiber.Ctx) error
	Get(*fiber.Ctx) error
	Update(*fiber.Ctx) error
	Toggle(*fiber.Ctx) error
	Delete(*fiber.Ctx) error
	DeleteAll(*fiber.Ctx) error
}

func registerRoutes(app *fiber.App, h handlers, g guards) {
	api := app.Group("/api")
	admin := []fiber.Handler{g.auth, middleware.Admin()}
	adminUpload := with(admin, g.uploads)
	self := []fiber.Handler{g.auth, middleware.SelfOrAdmin("id")}

	auth := api.Group("/auth/v1")
	auth.Post("/register", h.auth.Register)
	auth.Post("/signin", h.auth.SignIn)
	auth.Post("/google-signin", h.auth.GoogleSignIn)
	auth.Post("/facebook-signin", h.auth.FacebookSignIn)
	auth.Post("/volunteer/register", h.auth.VolunteerRegister)
	auth.Patch("/forgetpassword", h.auth.ForgotPassword)
	auth.Patch("/admin/forgetpassword", h.auth.AdminForgotPassword)
	auth.Patch("/verifyotp", h.auth.VerifyOTP)
	auth.Patch("/changepassword", h.auth.ChangePassword)
	auth.Patch("/updatepassword", g.auth, h.auth.UpdatePassword)
	auth.Get("/profile", g.auth, h.auth.Profile)
	auth.Patch("/members_register_edit/:id", with(self, h.auth.EditProfile)...)
	auth.Get("/members_register_getdata/:id", with(self, h.auth.MemberData)...)
	auth.Get("/admin/profile", with(admin, h.auth.AdminProfile)...)
	auth.Patch("/verify-email-change", with(admin, h.auth.VerifyEmailChange)...)
	auth.Patch("/members_register_confirm/:id", with(admin, h.auth.Confirm)...)
	auth.Get("/all-members", with(admin, h.members.List)...)
	auth.Delete("/delete-members", with(admin, h.members.Delete)...)
	auth.Post("/admin/add-member", with(admin, h.members.Add)...)
	auth.Put("/admin/edit-member/:id", with(admin, h.members.Edit)...)
	auth.Post("/admin/add-volunteer", with(admin, h.members.AddVolunteer)...)
	auth.Put("/admin/edit-volunteer/:id", with(admin, h.members.EditVolunteer)...)
	auth.Get("/admin/volunteers", with(admin, h.members.Volunteers)...)
	auth.Delete("/admin/delete-volunteers", with(admin, h.members.DeleteVolunteers)...)
	auth.Post("/admin/bulk-add-members", with(admin, h.members.BulkMembers)...)
	auth.Post("/admin/bulk-add-volunteers", with(admin, h.members.BulkVolunteers)...)

	events := api.Group("/event/v1")
	events.Get("/events", h.events.List)
	events.Get("/single_event/:id", h.events.Get)
	events.Post("/create_event", with(adminUpload, h.events.Create)...)
	events.Patch("/update_event/:id", with(adminUpload, h.events.Update)...)
	events.Delete("/delete_event/:id", with(admin, h.events.Delete)...)
	events.Delete("/delete_single_gallery/:id/:cloudfileId", with(admin, h.events.DeleteImage)...)
	events.Delete("/delete_all_events", with(admin, h.events.DeleteAll)...)

	gallery := api.Group("/gallery/v1")
	gallery.Get("/all_galleries", h.galleries.List)
	gallery.Get("/single_gallery/:id", h.galleries.Get)
	gallery.Post("/create_gallery", with(adminUpload, h.galleries.Create)...)
	gallery.Patch("/update_gallery/:id", with(adminUpload, h.galleries.Update)...)
	gallery.Delete("/delete_single_gallery/:id/:cloudfileId", with(admin, h.galleries.DeleteImage)...)
	gallery.Delete("/delete_gallery/:id", with(admin, h.galleries.Delete)...)
	gallery.Delete("/delete_galleries", with(admin, h.galleries.DeleteAll)...)

	board := api.Group("/boardmembers/v1")
	board.Get("/boardmemebers", h.board.List)
	board.Get("/single_boardmemeber/:id", h.board.Get)
	board.Post("/create_boardmemeber", with(adminUpload, h.board.Create)...)
	board.Patch("/update_boardmemeber/:id", with(adminUpload, h.board.Update)...)
	board.Delete("/delete_boardmemeber/:id", with(admin, h.board.Delete)...)

	highlights := api.Group("/homepage-highlight/v1")
	highlights.Get("/highlights", h.highlights.List)
	highlights.Get("/highlight/:id", h.highlights.Get)
	highlights.Post("/create_highlight", with(adminUpload, h.highlights.Create)...)
	highlights.Patch("/update_highlight/:id", with(adminUpload, h.highlights.Update)...)
	highlights.Delete("/delete_highlight/:id", with(admin, h.highlights.Delete)...)
	highlights.Delete("/delete_highlights", with(admin, h.highlights.DeleteMany)...)

	for _, p := range []struct {
		prefix string
		plans  planRoutes
	}{
		{"/membership-plan/v1", h.membershipPlans},
		{"/sponsorship-plan/v1", h.sponsorshipPlans},
	} {
		group, plans := api.Group(p.prefix), p.plans
		group.Get("/active-plans", plans.Active)
		group.Get("/plan/:id", plans.Get)
		group.Post("/create", with(admin, plans.Create)...)
		group.Get("/all", with(admin, plans.All)...)
		group.Patch("/update/:id", with(admin, plans.Update)...)
		group.Patch("/toggle-status/:id", with(admin, plans.Toggle)...)
		group.Delete("/delete/:id", with(admin, plans.Delete)...)
		group.Delete("/delete-all", with(admin, plans.DeleteAll)...)
	}

	sponsors := api.Group("/sponsor/v1")
	sponsors.Get("/active-sponsors", h.sponsors.Active)
	sponsors.Get("/sponsor/:id", h.sponsors.Get)
	sponsors.Post("/create", with(adminUpload, h.sponsors.Create)...)
	sponsors.Get("/all", with(admin, h.sponsors.All)...)
	sponsors.Patch("/update/:id", with(adminUpload, h.sponsors.Update)...)
	sponsors.Patch("/toggle-status/:id", with(admin, h.sponsors.Toggle)...)
	sponsors.Delete("/delete/:id", with(admin, h.sponsors.Delete)...)
	sponsors.Delete("/delete-all", with(admin, h.sponsors.DeleteAll)...)

	news := api.Group("/news/v1")
	news.Get("/all", h.news.All)
	news.Post("/create", with(admin, h.news.Create)...)
	news.Put("/edit/:id", with(admin, h.news.Update)...)
	news.Delete("/delete/:id", with(admin, h.news.Delete)...)
	news.Get("/:id", h.news.Get)

	api.Get("/dashboard/v1/data", with(admin, h.dashboard.Dashboard)...)
	api.Get("/home/v1/data", h.dashboard.Home)

	payments := api.Group("/payment/v1")
	payments.Post("/create-order", h.payments.CreateOrder)
	payments.Post("/capture-order", h.payments.CaptureOrder)
	payments.Post("/webhook", h.payments.PayPalWebhook)
	payments.Post("/webhook/stripe", h.payments.StripeWebhook)
	payments.Get("/history", g.auth, h.payments.History)

	donate := api.Group("/donate/v1")
	donate.Post("/create", h.donations.Create)
	donate.Get("/complete-order/:orderId", h.donations.Complete)
	donate.Get("/cancel-order", h.donations.Cancel)
	donate.Get("/all", with(admin, h.donations.All)...)
}

// with returns chain followed by last without touching chain's backing array.
func with(chain []fiber.Handler, last fiber.Handler) []fiber.Handler {
	return append(chain[:len(chain):len(chain)], last)
}
