package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/models"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/repository"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/service"
)

const msgInvalidPlanID = "Invalid plan ID"

func planFilter(c *fiber.Ctx) repository.PlanFilter {
	f := repository.PlanFilter{
		Page:     queryInt(c, "page"),
		Limit:    queryInt(c, "limit"),
		Duration: c.Query("duration"),
		Year:     queryInt(c, "year"),
	}
	if raw := c.Query("isActive"); raw != "" {
		active, _ := strconv.ParseBool(raw)
		f.IsActive = &active
	}
	return f
}

func toggled(active bool) string {
	if active {
		return "Plan activated successfully"
	}
	return "Plan deactivated successfully"
}

// MembershipPlanHandler serves /api/membership-plan/v1.
type MembershipPlanHandler struct {
	plans *service.PlanService
}

func NewMembershipPlanHandler(plans *service.PlanService) *MembershipPlanHandler {
	return &MembershipPlanHandler{plans: plans}
}

func (h *MembershipPlanHandler) Create(c *fiber.Ctx) error {
	var req models.MembershipPlanRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	plan, err := h.plans.CreateMembershipPlan(c.UserContext(), req)
	if err != nil {
		return respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(plan, "Membership plan created successfully"))
}

func (h *MembershipPlanHandler) All(c *fiber.Ctx) error {
	plans, page, err := h.plans.MembershipPlans(c.UserContext(), planFilter(c))
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(withPage(fiber.Map{"status": true, "plans": plans}, page))
}

func (h *MembershipPlanHandler) Active(c *fiber.Ctx) error {
	plans, err := h.plans.ActiveMembershipPlans(c.UserContext())
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{"status": true, "plans": plans})
}

func (h *MembershipPlanHandler) Get(c *fiber.Ctx) error {
	id, ok := paramID(c, "id", msgInvalidPlanID)
	if !ok {
		return nil
	}
	plan, err := h.plans.MembershipPlan(c.UserContext(), id)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{"status": true, "plan": plan})
}

func (h *MembershipPlanHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id", msgInvalidPlanID)
	if !ok {
		return nil
	}
	var req models.MembershipPlanRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	plan, err := h.plans.UpdateMembershipPlan(c.UserContext(), id, req)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(models.SuccessResponse(plan, "Membership plan updated successfully"))
}

func (h *MembershipPlanHandler) Toggle(c *fiber.Ctx) error {
	id, ok := paramID(c, "id", msgInvalidPlanID)
	if !ok {
		return nil
	}
	plan, err := h.plans.ToggleMembershipPlan(c.UserContext(), id)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(models.SuccessResponse(plan, toggled(plan.IsActive)))
}

func (h *MembershipPlanHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id", msgInvalidPlanID)
	if !ok {
		return nil
	}
	if err := h.plans.DeleteMembershipPlan(c.UserContext(), id); err != nil {
		return respond(c, err)
	}
	return c.JSON(models.MessageResponse("Membership plan deleted successfully"))
}

func (h *MembershipPlanHandler) DeleteAll(c *fiber.Ctx) error {
	if err := h.plans.DeleteAllMembershipPlans(c.UserContext()); err != nil {
		return respond(c, err)
	}
	return c.JSON(models.MessageResponse("All membership plans deleted successfully"))
}

// SponsorshipPlanHandler serves /api/sponsorship-plan/v1.
type SponsorshipPlanHandler struct {
	plans *service.PlanService
}

func NewSponsorshipPlanHandler(plans *service.PlanService) *SponsorshipPlanHandler {
	return &SponsorshipPlanHandler{plans: plans}
}

func (h *SponsorshipPlanHandler) Create(c *fiber.Ctx) error {
	var req models.SponsorshipPlanRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	plan, err := h.plans.CreateSponsorshipPlan(c.UserContext(), req)
	if err != nil {
		return respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(plan, "Sponsorship plan created successfully"))
}

func (h *SponsorshipPlanHandler) All(c *fiber.Ctx) error {
	plans, page, err := h.plans.SponsorshipPlans(c.UserContext(), planFilter(c))
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(withPage(fiber.Map{"status": true, "plans": plans}, page))
}

func (h *SponsorshipPlanHandler) Active(c *fiber.Ctx) error {
	plans, err := h.plans.ActiveSponsorshipPlans(c.UserContext())
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{"status": true, "plans": plans})
}

func (h *SponsorshipPlanHandler) Get(c *fiber.Ctx) error {
	id, ok := paramID(c, "id", msgInvalidPlanID)
	if !ok {
		return nil
	}
	plan, err := h.plans.SponsorshipPlan(c.UserContext(), id)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{"status": true, "plan": plan})
}

func (h *SponsorshipPlanHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id", msgInvalidPlanID)
	if !ok {
		return nil
	}
	var req models.SponsorshipPlanRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	plan, err := h.plans.UpdateSponsorshipPlan(c.UserContext(), id, req)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(models.SuccessResponse(plan, "Sponsorship plan updated successfully"))
}

func (h *SponsorshipPlanHandler) Toggle(c *fiber.Ctx) error {
	id, ok := paramID(c, "id", msgInvalidPlanID)
	if !ok {
		return nil
	}
	plan, err := h.plans.ToggleSponsorshipPlan(c.UserContext(), id)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(models.SuccessResponse(plan, toggled(plan.IsActive)))
}

func (h *SponsorshipPlanHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id", msgInvalidPlanID)
	if !ok {
		return nil
	}
	if err := h.plans.DeleteSponsorshipPlan(c.UserContext(), id); err != nil {
		return respond(c, err)
	}
	return c.JSON(models.MessageResponse("Sponsorship plan deleted successfully"))
}

func (h *SponsorshipPlanHandler) DeleteAll(c *fiber.Ctx) error {
	if err := h.plans.DeleteAllSponsorshipPlans(c.UserContext()); err != nil {
		return respond(c, err)
	}
	return c.JSON(models.MessageResponse("All sponsorship plans deleted successfully"))
}
