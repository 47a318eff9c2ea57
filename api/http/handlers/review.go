package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/jobreviews/api/http/presenter"
	"github.com/artem13815/jobreviews/pkg/review"
	"github.com/artem13815/jobreviews/pkg/security/jwt"
)

type ReviewHandler struct {
	uc  review.UseCase
	log *slog.Logger
}

func NewReviewHandler(uc review.UseCase, log *slog.Logger) *ReviewHandler {
	return &ReviewHandler{uc: uc, log: log}
}

type listReviewsResponse struct {
	Success     bool            `json:"success"`
	Company     string          `json:"company"`
	ReviewCount int             `json:"reviewCount"`
	Reviews     []review.Review `json:"reviews"`
}

type listErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ListByCompany returns every review for a company, newest first.
// @Summary List company reviews
// @Tags    reviews
// @Produce json
// @Param   companyName path string true "company name, matched ignoring case"
// @Success 200 {object} listReviewsResponse
// @Failure 404 {object} listErrorResponse
// @Failure 500 {object} listErrorResponse
// @Router  /reviews/{companyName} [get]
func (h *ReviewHandler) ListByCompany(c *fiber.Ctx) error {
	company, err := url.PathUnescape(c.Params("companyName"))
	if err != nil {
		company = c.Params("companyName")
	}

	reviews, err := h.uc.ListByCompany(c.UserContext(), company)
	if err != nil {
		if errors.Is(err, review.ErrNotFound) {
			return presenter.JSON(c, http.StatusNotFound, listErrorResponse{Message: "company not found"})
		}
		h.log.ErrorContext(c.UserContext(), "request failed", "op", "list reviews", "company", company, "error", err)
		return presenter.JSON(c, http.StatusInternalServerError, listErrorResponse{Message: "server error"})
	}

	return presenter.JSON(c, http.StatusOK, listReviewsResponse{
		Success:     true,
		Company:     company,
		ReviewCount: len(reviews),
		Reviews:     reviews,
	})
}

type createReviewRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Role        string `json:"role"`
	CreatedAt   string `json:"createdAt"`
}

type createReviewResponse struct {
	Message string        `json:"message"`
	Review  review.Review `json:"review"`
}

// Create stores a review owned by the authenticated user.
// @Summary  Create review
// @Tags     reviews
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    input body createReviewRequest true "review payload"
// @Success  201 {object} createReviewResponse
// @Failure  400 {object} presenter.ErrorResponse
// @Failure  401 {object} presenter.ErrorResponse
// @Failure  403 {object} presenter.ErrorResponse
// @Failure  500 {object} presenter.ErrorResponse
// @Router   /review [post]
func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	id := jwt.IdentityFrom(c)
	if id == nil {
		return presenter.Error(c, http.StatusUnauthorized, review.ErrUnauthorized.Error())
	}

	var req createReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}

	created, err := h.uc.Create(c.UserContext(), id, review.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Company:     req.Company,
		Location:    req.Location,
		Role:        req.Role,
		CreatedAt:   req.CreatedAt,
	})
	if err != nil {
		var verr review.ErrValidation
		switch {
		case errors.As(err, &verr):
			return presenter.Error(c, http.StatusBadRequest, verr.Error())
		case errors.Is(err, review.ErrUnauthorized), errors.Is(err, review.ErrUnknownAuthor):
			return presenter.Error(c, http.StatusUnauthorized, review.ErrUnauthorized.Error())
		default:
			return presenter.Internal(c, h.log, "create review", err)
		}
	}

	return presenter.JSON(c, http.StatusCreated, createReviewResponse{
		Message: "review created successfully",
		Review:  created,
	})
}
