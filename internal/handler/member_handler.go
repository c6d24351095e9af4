package handler

import (
	"context"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/models"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/repository"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/internal/service"
	"github.com/rahulchiluka-megaviztech/telugu-association-backend/pkg/spreadsheet"
)

// MemberHandler serves the administrator's member and volunteer routes.
type MemberHandler struct {
	members *service.MemberService
	imports *service.ImportService
}

func NewMemberHandler(members *service.MemberService, imports *service.ImportService) *MemberHandler {
	return &MemberHandler{members: members, imports: imports}
}

func (h *MemberHandler) List(c *fiber.Ctx) error {
	rows, page, err := h.members.ListMembers(c.UserContext(), repository.MemberFilter{
		Page:     queryInt(c, "page"),
		Limit:    queryInt(c, "limit"),
		Duration: c.Query("duration"),
		Search:   c.Query("search"),
	})
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(withPage(fiber.Map{
		"status":  true,
		"message": "Members fetched successfully",
		"data":    rows,
	}, page))
}

func (h *MemberHandler) Delete(c *fiber.Ctx) error {
	var req models.IDsRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	n, err := h.members.DeleteMembers(c.UserContext(), req.IDs)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(models.MessageResponse(fmt.Sprintf("%d member(s) deleted successfully", n)))
}

func (h *MemberHandler) Add(c *fiber.Ctx) error {
	var req models.AdminAddMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	member, err := h.members.AddMember(c.UserContext(), req)
	if err != nil {
		return respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(member, "Member added successfully"))
}

func (h *MemberHandler) Edit(c *fiber.Ctx) error {
	id, ok := paramID(c, "id", "Invalid member ID")
	if !ok {
		return nil
	}
	var req models.AdminEditMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	member, err := h.members.EditMember(c.UserContext(), id, req)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(models.SuccessResponse(member, "Member updated successfully"))
}

func (h *MemberHandler) AddVolunteer(c *fiber.Ctx) error {
	var req models.AdminAddVolunteerRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	v, err := h.members.AddVolunteer(c.UserContext(), req)
	if err != nil {
		return respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(v, "Volunteer added successfully"))
}

func (h *MemberHandler) EditVolunteer(c *fiber.Ctx) error {
	id, ok := paramID(c, "id", "Invalid volunteer ID")
	if !ok {
		return nil
	}
	var req models.AdminEditVolunteerRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	v, err := h.members.EditVolunteer(c.UserContext(), id, req)
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(models.SuccessResponse(v, "Volunteer updated successfully"))
}

func (h *MemberHandler) Volunteers(c *fiber.Ctx) error {
	rows, page, limit, err := h.members.ListVolunteers(c.UserContext(), queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		return respond(c, err)
	}
	return c.JSON(fiber.Map{
		"status":  true,
		"message": "Volunteers fetched successfully",
		"data":    rows,
		"pagination": fiber.Map{
			"total":      page.TotalItems,
			"page":       page.CurrentPage,
			"limit":      limit,
			"totalPages": page.TotalPages,
		},
	})
}

func (h *MemberHandler) DeleteVolunteers(c *fiber.Ctx) error {
	var req models.IDsRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := h.members.DeleteVolunteers(c.UserContext(), req.IDs); err != nil {
		return respond(c, err)
	}
	return c.JSON(models.MessageResponse("Volunteers deleted successfully"))
}

type importFunc func(ctx context.Context, filename string, src io.Reader) (*models.BulkResult, error)

// bulk runs an import over the spreadsheet in the "file" field.
func bulk(c *fiber.Ctx, message string, run importFunc) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(models.ErrorResponse("CSV file is required"))
	}
	if fh.Size > spreadsheet.MaxUploadSize {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(models.ErrorResponse("File too large. Maximum size is 5MB"))
	}
	f, err := fh.Open()
	if err != nil {
		return err
	}
	defer f.Close()

	result, err := run(c.UserContext(), fh.Filename, f)
	if err != nil {
		return respond(c, err)
	}
	body := fiber.Map{"status": true, "message": message, "summary": result.Summary}
	if len(result.Errors) > 0 {
		body["errors"] = result.Errors
	}
	return c.JSON(body)
}

func (h *MemberHandler) BulkMembers(c *fiber.Ctx) error {
	return bulk(c, "Bulk upload completed", h.imports.Members)
}

func (h *MemberHandler) BulkVolunteers(c *fiber.Ctx) error {
	return bulk(c, "Bulk volunteer upload completed", h.imports.Volunteers)
}
