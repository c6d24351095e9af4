package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/models"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/service"
)

type AuthHandler struct {
	accounts *service.AccountService
}

func NewAuthHandler(accounts *service.AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	account, err := h.accounts.Register(c.UserContext(), req)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{"status": true, "message": "Register Successfully", "memeber": account})
}

func (h *AuthHandler) VolunteerRegister(c *fiber.Ctx) error {
	var req models.VolunteerSignupRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	account, err := h.accounts.VolunteerSignup(c.UserContext(), req)
	if err != nil {
		return respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(account, "Volunteer registered successfully"))
}

func signedIn(c *fiber.Ctx, s *service.Session) error {
	return c.JSON(fiber.Map{
		"status":      true,
		"message":     "successfully login",
		"userid":      s.Account.ID,
		"user":        s.Account.Role(),
		"accesstoken": s.Token,
	})
}

func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	session, err := h.accounts.SignIn(c.UserContext(), req)
	if err != nil {
		return respond(c, err)
	}
	return signedIn(c, session)
}

func (h *AuthHandler) GoogleSignIn(c *fiber.Ctx) error {
	var req models.GoogleSignInRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	session, err := h.accounts.GoogleSignIn(c.UserContext(), req.Token)
	if err != nil {
		return respond(c, err)
	}
	return signedIn(c, session)
}

func (h *AuthHandler) FacebookSignIn(c *fiber.Ctx) error {
	var req models.FacebookSignInRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	session, err := h.accounts.FacebookSignIn(c.UserContext(), req.AccessToken)
	if err != nil {
		return respond(c, err)
	}
	return signedIn(c, session)
}

func (h *AuthHandler) forgotPassword(c *fiber.Ctx, adminOnly bool) error {
	var req models.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := h.accounts.ForgotPassword(c.UserContext(), req.Email, adminOnly); err != nil {
		return respond(c, err)
	}
	return c.JSON(models.MessageResponse("OTP sent to Email"))
}

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error      { return h.forgotPassword(c, false) }
func (h *AuthHandler) AdminForgotPassword(c *fiber.Ctx) error { return h.forgotPassword(c, true) }

func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req models.VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := h.accounts.VerifyOTP(c.UserContext(), req); err != nil {
		return respond(c, err)
	}
	return c.JSON(models.MessageResponse("OTP verified successfully"))
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req models.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := h.accounts.ResetPassword(c.UserContext(), req); err != nil {
		return respond(c, err)
	}
	return c.JSON(models.MessageResponse("password changed successfully"))
}

func (h *AuthHandler) UpdatePassword(c *fiber.Ctx) error {
	var req models.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := h.accounts.UpdatePassword(c.UserContext(), account(c).ID, req); err != nil {
		return respond(c, err)
	}
	return c.JSON(models.MessageResponse("Password updated successfully"))
}

func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	a, err := h.accounts.Profile(c.UserContext(), account(c).ID)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(models.SuccessResponse(a, "Profile Data"))
}

func (h *AuthHandler) AdminProfile(c *fiber.Ctx) error {
	a, err := h.accounts.AdminProfile(c.UserContext(), account(c).ID)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(models.SuccessResponse(a, "Admin profile fetched successfully"))
}

func (h *AuthHandler) MemberData(c *fiber.Ctx) error {
	id, ok := paramID(c, "id", "Invalid member ID")
	if !ok {
		return nil
	}
	a, err := h.accounts.MemberData(c.UserContext(), id)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(models.SuccessResponse(a, "Member Data"))
}

func (h *AuthHandler) EditProfile(c *fiber.Ctx) error {
	id, ok := paramID(c, "id", "Invalid member ID")
	if !ok {
		return nil
	}
	var req models.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	pending, err := h.accounts.UpdateProfile(c.UserContext(), id, req)
	if err != nil {
		return respond(c, err)
	}
	if pending {
		return c.JSON(fiber.Map{
			"status":               true,
			"message":              "Profile updated. OTP sent to new email for verification.",
			"verificationRequired": true,
		})
	}
	return c.JSON(models.MessageResponse("sucessfully updated"))
}

func (h *AuthHandler) VerifyEmailChange(c *fiber.Ctx) error {
	var req models.VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := h.accounts.VerifyEmailChange(c.UserContext(), account(c).ID, req); err != nil {
		return respond(c, err)
	}
	return c.JSON(models.MessageResponse("Email updated successfully"))
}

func (h *AuthHandler) Confirm(c *fiber.Ctx) error {
	id, ok := paramID(c, "id", "Invalid member ID")
	if !ok {
		return nil
	}
	if err := h.accounts.Confirm(c.UserContext(), id); err != nil {
		return respond(c, err)
	}
	return c.JSON(models.MessageResponse("Member Confirmed Successfully"))
}
