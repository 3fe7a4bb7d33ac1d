package handlers

import (
	"mime/multipart"
	"net/http"

	"recruit-api/internal/services"
	"recruit-api/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const uploadField = "file"

// ProfileHandler serves the candidate profile and file uploads.
type ProfileHandler struct {
	service   services.ProfileService
	validator *validator.Validate
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(service services.ProfileService, validate *validator.Validate) *ProfileHandler {
	return &ProfileHandler{service: service, validator: validate}
}

// GetCandidate godoc
// @Summary      Get my candidate profile
// @Tags         candidates
// @Produce      json
// @Success      200 {object}  models.Candidate
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden"
// @Router       /candidates/me [get]
// @Security     BearerAuth
func (h *ProfileHandler) GetCandidate(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	cand, err := h.service.GetCandidate(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err, "retrieve profile")
		return
	}
	c.JSON(http.StatusOK, cand)
}

// UpdateCandidate godoc
// @Summary      Update my candidate profile
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        profile body      dto.UpdateCandidateRequest true  "Profile fields"
// @Success      200 {object}  models.Candidate
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Router       /candidates/me [put]
// @Security     BearerAuth
func (h *ProfileHandler) UpdateCandidate(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	var req dto.UpdateCandidateRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}
	cand, err := h.service.UpdateCandidate(c.Request.Context(), identity, &req)
	if err != nil {
		respondError(c, err, "update profile")
		return
	}
	c.JSON(http.StatusOK, cand)
}

// UploadCV godoc
// @Summary      Upload my CV
// @Description  Replaces the CV attached to the candidate profile.
// @Tags         candidates
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData  file true  "CV document"
// @Success      200 {object}  models.Candidate
// @Failure      400 {object}  map[string]string "Missing file, unsupported type or too large"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Router       /candidates/me/cv [post]
// @Security     BearerAuth
func (h *ProfileHandler) UploadCV(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	header, file, ok := formFile(c)
	if !ok {
		return
	}
	defer file.Close()

	cand, err := h.service.UploadCV(c.Request.Context(), identity, file, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		respondError(c, err, "upload CV")
		return
	}
	c.JSON(http.StatusOK, cand)
}

// Upload godoc
// @Summary      Upload a document
// @Description  Stores a file and returns its URL, for validation answers or applications.
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData  file true  "Document"
// @Success      201 {object}  dto.UploadResponse
// @Failure      400 {object}  map[string]string "Missing file, unsupported type or too large"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Router       /uploads [post]
// @Security     BearerAuth
func (h *ProfileHandler) Upload(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	header, file, ok := formFile(c)
	if !ok {
		return
	}
	defer file.Close()

	url, err := h.service.Upload(c.Request.Context(), identity, file, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		respondError(c, err, "upload file")
		return
	}
	c.JSON(http.StatusCreated, dto.UploadResponse{URL: url})
}

func formFile(c *gin.Context) (*multipart.FileHeader, multipart.File, bool) {
	header, err := c.FormFile(uploadField)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return nil, nil, false
	}
	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot read uploaded file"})
		return nil, nil, false
	}
	return header, file, true
}
