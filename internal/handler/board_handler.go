package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/controller"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/models"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/repository"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/service"
)

type BoardRecords = controller.Content[models.BoardMember, *models.BoardMember]

const msgInvalidBoardID = "Invalid Boardmember ID"

type BoardHandler struct {
	content *service.ContentService
	records *BoardRecords
}

func NewBoardHandler(content *service.ContentService, records *BoardRecords) *BoardHandler {
	return &BoardHandler{content: content, records: records}
}

func (h *BoardHandler) List(c *fiber.Ctx) error {
	listing, err := h.content.BoardMembers(c.UserContext(), repository.BoardFilter{
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
		Year:   c.Query("year"),
		Search: c.Query("search"),
	})
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(withPage(fiber.Map{
		"status":     true,
		"years":      listing.Years,
		"bordmember": listing.Members,
	}, listing.Page))
}

func (h *BoardHandler) Get(c *fiber.Ctx) error {
	id, ok := paramID(c, "id", msgInvalidBoardID)
	if !ok {
		return nil
	}
	m, err := h.records.Get(c.UserContext(), id)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{"status": true, "bordmember": m})
}

func (h *BoardHandler) Create(c *fiber.Ctx) error {
	var req models.BoardMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	m, err := h.records.Create(c.UserContext(), service.BoardMemberFields(req), uploads(c))
	if err != nil {
		return respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(m, "Board member created successfully"))
}

func (h *BoardHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id", msgInvalidBoardID)
	if !ok {
		return nil
	}
	var req models.BoardMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	files := uploads(c)
	m, err := h.records.Update(c.UserContext(), id, service.BoardMemberChanges(req), files)
	if err != nil {
		return respond(c, err)
	}
	msg := "Board Member updated successfully (no new file uploaded)"
	if len(files) > 0 {
		msg = "Board Member updated successfully with new file"
	}
	return c.JSON(models.SuccessResponse(m, msg))
}

func (h *BoardHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c, "id", msgInvalidBoardID)
	if !ok {
		return nil
	}
	if err := h.records.Delete(c.UserContext(), id); err != nil {
		return respond(c, err)
	}
	return c.JSON(models.MessageResponse("boardmember deleted successfully"))
}
