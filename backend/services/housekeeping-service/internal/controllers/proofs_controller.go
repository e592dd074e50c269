package controllers

import (
	"io"
	"net/http"

	"github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/constants"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/services"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-utils"
)

const proofFormField = "image"

type ProofsController struct {
	proofService *services.ProofImageService
}

func NewProofsController(s *services.ProofImageService) *ProofsController {
	return &ProofsController{proofService: s}
}

// POST /api/v1/proofs (multipart field "image")
func (c *ProofsController) UploadHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, constants.ProofImageMaxBytes+(1<<20))
	if err := r.ParseMultipartForm(constants.ProofImageMaxBytes); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Expected a multipart image upload", nil, err,
		)
		return
	}
	file, _, err := r.FormFile(proofFormField)
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Missing image field", nil, err,
		)
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Failed to read image", nil, err,
		)
		return
	}

	resp, err := c.proofService.Process(r.Context(), raw)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, resp)
}
