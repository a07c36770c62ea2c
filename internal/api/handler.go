package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/guttosm/sharecgt/internal/domain/dto"
	"github.com/guttosm/sharecgt/internal/gains"
	"github.com/guttosm/sharecgt/internal/ingestion"
	"github.com/guttosm/sharecgt/internal/middleware"
	"github.com/guttosm/sharecgt/internal/service"
)

// APIVersion is reported by the version endpoint.
const APIVersion = "1.0"

// filesField is the multipart form field carrying trade files.
const filesField = "files"

// multipartOverhead allows for part headers and boundaries on top of file bytes.
const multipartOverhead = 1 << 20

const invalidContentMessage = "The file content is invalid or cannot be parsed into transactions."

// Handler provides HTTP handlers for the capital gains calculator.
//
// Responsibilities:
//   - Validate uploaded files before anything is parsed
//   - Hand trade files to the calculator service
//   - Translate runs into response DTOs and errors into status codes
type Handler struct {
	svc    service.CalculatorService
	limits ingestion.UploadLimits
}

// NewHandler constructs a new Handler instance.
//
// Parameters:
//   - svc (service.CalculatorService): computes and loads calculation runs.
//   - limits (ingestion.UploadLimits): file count and size bounds for uploads.
func NewHandler(svc service.CalculatorService, limits ingestion.UploadLimits) *Handler {
	return &Handler{svc: svc, limits: limits}
}

// GetVersion godoc
// @Summary      Calculator version
// @Description  Returns the version of the capital gains calculator API
// @Tags         calculators
// @Produce      json
// @Success      200  {object}  dto.VersionResponse
// @Router       /api/v1/calculators/version [get]
func (h *Handler) GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, dto.VersionResponse{Version: APIVersion})
}

// CalculateCapitalGains handles POST /api/v1/calculators/capital-gains.
//
// Form fields:
//   - files (file, required, repeatable): broker trade exports in CSV.
//
// Responses:
//   - 200 OK: per-security gains and losses for every security with a sell.
//   - 400 Bad Request: missing, non-CSV or unparsable files.
//   - 413 Request Entity Too Large: upload body above the configured limits.
//   - 422 Unprocessable Entity: a sell exceeds the shares held.
//   - 500 Internal Server Error: storage failure.
//
// CalculateCapitalGains godoc
// @Summary      Calculate capital gains
// @Description  Matches sells against buys in FIFO order and returns realized gains and losses per security. Gains on lots held more than 365 days are discounted by 50%.
// @Tags         calculators
// @Accept       multipart/form-data
// @Produce      json
// @Param        files  formData  file  true  "Trade files (CSV)"
// @Success      200    {object}  dto.CalculationResponse  "Success"
// @Failure      400    {object}  dto.ErrorResponse        "Bad Request"
// @Failure      413    {object}  dto.ErrorResponse        "Too Large"
// @Failure      422    {object}  dto.ErrorResponse        "Oversell"
// @Failure      500    {object}  dto.ErrorResponse        "Internal Error"
// @Router       /api/v1/calculators/capital-gains [post]
func (h *Handler) CalculateCapitalGains(c *gin.Context) {
	// ─── Bound the request body ───────────────────────────────
	if h.limits.MaxFiles > 0 && h.limits.MaxFileBytes > 0 {
		maxBody := int64(h.limits.MaxFiles)*h.limits.MaxFileBytes + multipartOverhead
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBody)
	}

	// ─── Read and validate the uploaded files ─────────────────
	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			middleware.AbortWithError(c, http.StatusRequestEntityTooLarge, "upload is too large", err)
			return
		}
		middleware.AbortWithError(c, http.StatusBadRequest, "a multipart form with trade files is required", err)
		return
	}

	files := form.File[filesField]
	if err := ingestion.ValidateBatch(len(files), h.limits); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid upload", err)
		return
	}

	sources := make([]ingestion.Source, 0, len(files))
	for _, fh := range files {
		if err := ingestion.ValidateUpload(fh.Filename, fh.Size, fh.Header.Get("Content-Type"), h.limits); err != nil {
			middleware.AbortWithError(c, http.StatusBadRequest, "invalid upload", err)
			return
		}
		sources = append(sources, ingestion.MultipartSource(fh))
	}

	// ─── Calculate ────────────────────────────────────────────
	run, err := h.svc.Calculate(c.Request.Context(), sources)
	if err != nil {
		status, msg := calculationError(err)
		middleware.AbortWithError(c, status, msg, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCalculationResponse(run))
}

// GetCalculation godoc
// @Summary      Get a stored calculation
// @Description  Returns the per-security totals of a previous calculation run
// @Tags         calculators
// @Produce      json
// @Param        id   path      string  true  "Run id (UUID)"
// @Success      200  {object}  dto.CalculationResponse  "Success"
// @Failure      400  {object}  dto.ErrorResponse        "Bad Request"
// @Failure      404  {object}  dto.ErrorResponse        "Not Found"
// @Failure      500  {object}  dto.ErrorResponse        "Internal Error"
// @Router       /api/v1/calculations/{id} [get]
func (h *Handler) GetCalculation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid run id", err)
		return
	}

	run, err := h.svc.GetRun(c.Request.Context(), id)
	switch {
	case errors.Is(err, service.ErrRunNotFound):
		middleware.AbortWithError(c, http.StatusNotFound, "calculation run not found", nil)
		return
	case errors.Is(err, service.ErrPersistenceDisabled):
		middleware.AbortWithError(c, http.StatusServiceUnavailable, "calculation runs are not stored", err)
		return
	case err != nil:
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to load calculation run", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCalculationResponse(run))
}

// calculationError maps a Calculate failure to a status code and client message.
func calculationError(err error) (int, string) {
	var oversell *gains.OversellError
	switch {
	case errors.As(err, &oversell):
		return http.StatusUnprocessableEntity, gains.OversellMessage
	case errors.Is(err, ingestion.ErrInvalidContent):
		return http.StatusBadRequest, invalidContentMessage
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "calculation timed out"
	default:
		return http.StatusInternalServerError, "failed to calculate capital gains"
	}
}
