package handlers

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/rotaviagem/backend/internal/dates"
	"github.com/rotaviagem/backend/internal/dto"
	"github.com/rotaviagem/backend/internal/identity"
	"github.com/rotaviagem/backend/internal/services"
	"github.com/rotaviagem/backend/internal/storage"
)

type ReportHandler struct {
	service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

func reportErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrMissingFields),
		errors.Is(err, services.ErrMissingID),
		errors.Is(err, services.ErrNoFiles),
		errors.Is(err, services.ErrLinkedTrip),
		errors.Is(err, dates.ErrInvalidDate),
		errors.Is(err, storage.ErrUpload):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrReportNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// Create accepts a multipart form: text fields plus one or more "files"
// parts. The trip is named in the path; "none" or an empty segment makes an
// unlinked report.
func (h *ReportHandler) Create(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var tripID *uuid.UUID
	if raw := c.Params("tripId"); raw != "" && raw != "none" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid trip ID",
			})
		}
		tripID = &parsed
	}

	req := dto.CreateReportRequest{
		Type:        c.FormValue("type"),
		Date:        c.FormValue("date"),
		Time:        c.FormValue("time"),
		Description: c.FormValue("description"),
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid multipart form",
		})
	}

	var files []services.UploadFile
	for _, header := range form.File["files"] {
		f, err := header.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to read uploaded file",
			})
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Failed to read uploaded file",
			})
		}
		files = append(files, services.UploadFile{Name: header.Filename, Data: data})
	}

	report, err := h.service.Create(c.Context(), userID, tripID, req, files)
	if err != nil {
		return c.Status(reportErrorStatus(err)).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(report)
}

func (h *ReportHandler) List(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	reports, err := h.service.FindAll(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch reports",
		})
	}

	return c.JSON(reports)
}

func (h *ReportHandler) Get(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report ID",
		})
	}

	report, err := h.service.FindByID(reportID, userID)
	if err != nil {
		return c.Status(reportErrorStatus(err)).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.JSON(report)
}

func (h *ReportHandler) Update(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.UpdateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	report, err := h.service.Update(userID, req)
	if err != nil {
		return c.Status(reportErrorStatus(err)).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.JSON(report)
}

func (h *ReportHandler) Delete(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	reportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid report ID",
		})
	}

	if err := h.service.Delete(c.Context(), reportID, userID); err != nil {
		return c.Status(reportErrorStatus(err)).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.JSON(dto.MessageResponse{Message: "Report deleted"})
}

func (h *ReportHandler) DeleteMany(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.DeleteReportsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	result, err := h.service.DeleteMany(c.Context(), req.IDs, userID)
	if err != nil {
		return c.Status(reportErrorStatus(err)).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.JSON(result)
}
