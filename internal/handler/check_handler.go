package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"checkdesk/internal/csvexport"
	"checkdesk/internal/domain"
	"checkdesk/internal/extract"
	"checkdesk/internal/port"
	"checkdesk/internal/service"
)

const (
	defaultPageSize = 50
	maxPageSize     = 100
)

// CheckHandler handles check upload, browsing, editing, and export endpoints.
type CheckHandler struct {
	checkService service.CheckService
}

// NewCheckHandler creates a new CheckHandler.
func NewCheckHandler(checkService service.CheckService) *CheckHandler {
	return &CheckHandler{checkService: checkService}
}

// Upload handles POST /api/v1/checks
// @Summary Upload a check image
// @Description Upload a scanned check image (JPG or PNG) and run field extraction
// @Tags checks
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Check image (JPG or PNG)"
// @Success 201 {object} APIResponse "Check record created"
// @Failure 400 {object} APIResponse "Missing file or unsupported type"
// @Failure 413 {object} APIResponse "File too large"
// @Failure 422 {object} APIResponse "Extraction or validation failed"
// @Failure 502 {object} APIResponse "Vision model failure"
// @Router /checks [post]
func (h *CheckHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	check, err := h.checkService.Upload(c.Request.Context(), service.CheckUploadInput{
		File:   file,
		Header: header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, check)
}

// List handles GET /api/v1/checks
// @Summary List check records
// @Description List check records with filtering and pagination, newest first
// @Tags checks
// @Produce json
// @Param query query string false "Text search across check number, payor, payee, memo"
// @Param dateFrom query string false "Inclusive lower date bound (YYYY-MM-DD)"
// @Param dateTo query string false "Inclusive upper date bound (YYYY-MM-DD)"
// @Param amountMin query number false "Inclusive lower amount bound"
// @Param amountMax query number false "Inclusive upper amount bound"
// @Param page query int false "Page number (1-based)" default(1)
// @Param pageSize query int false "Page size (max 100)" default(50)
// @Success 200 {object} APIResponse "Paginated check records"
// @Router /checks [get]
func (h *CheckHandler) List(c *gin.Context) {
	filter, ok := parseFilter(c)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)

	checks, total, err := h.checkService.List(c.Request.Context(), filter, (page-1)*pageSize, pageSize)
	if err != nil {
		HandleError(c, err)
		return
	}

	totalPages := (total + pageSize - 1) / pageSize
	RespondPaginated(c, checks, PagMeta{
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	})
}

// GetByID handles GET /api/v1/checks/:id
// @Summary Get a check record
// @Tags checks
// @Produce json
// @Param id path string true "Check ID (UUID)"
// @Success 200 {object} APIResponse "Check record"
// @Failure 404 {object} APIResponse "Check not found"
// @Router /checks/{id} [get]
func (h *CheckHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid check ID")
		return
	}

	check, err := h.checkService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, check)
}

// updateCheckRequest is the JSON body for manual check edits.
type updateCheckRequest struct {
	CheckNumber *string              `json:"check_number"`
	Date        *string              `json:"date"`
	Amount      *float64             `json:"amount"`
	Memo        *string              `json:"memo"`
	Payor       *string              `json:"payor"`
	Payee       *string              `json:"payee"`
	Status      *domain.ReviewStatus `json:"status"`
}

// Update handles PUT /api/v1/checks/:id
// @Summary Edit a check record
// @Description Replace the mutable fields of a check record; an omitted status defaults to parsed
// @Tags checks
// @Accept json
// @Produce json
// @Param id path string true "Check ID (UUID)"
// @Success 200 {object} APIResponse "Updated check record"
// @Failure 404 {object} APIResponse "Check not found"
// @Router /checks/{id} [put]
func (h *CheckHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid check ID")
		return
	}

	var req updateCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}

	check, err := h.checkService.Update(c.Request.Context(), id, service.CheckUpdateInput{
		CheckNumber: req.CheckNumber,
		Date:        req.Date,
		Amount:      req.Amount,
		Memo:        req.Memo,
		Payor:       req.Payor,
		Payee:       req.Payee,
		Status:      req.Status,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, check)
}

// Export handles GET /api/v1/checks/export
// @Summary Export check records
// @Description Export all matching check records as CSV (default) or XLSX
// @Tags checks
// @Produce text/csv
// @Param format query string false "Export format: csv or xlsx" default(csv)
// @Success 200 {string} string "Exported file"
// @Router /checks/export [get]
func (h *CheckHandler) Export(c *gin.Context) {
	filter, ok := parseFilter(c)
	if !ok {
		return
	}

	switch c.DefaultQuery("format", "csv") {
	case "csv":
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Header("Content-Disposition", `attachment; filename="`+csvexport.BuildFilename("csv")+`"`)
		c.Status(http.StatusOK)
		if err := h.checkService.ExportCSV(c.Request.Context(), filter, c.Writer); err != nil {
			_ = c.Error(err)
		}
	case "xlsx":
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", `attachment; filename="`+csvexport.BuildFilename("xlsx")+`"`)
		c.Status(http.StatusOK)
		if err := h.checkService.ExportXLSX(c.Request.Context(), filter, c.Writer); err != nil {
			_ = c.Error(err)
		}
	default:
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "invalid export format; allowed: csv, xlsx")
	}
}

// parseFilter builds an immutable CheckFilter from validated query
// parameters. Returns false if a parameter is malformed (error response
// already written).
func parseFilter(c *gin.Context) (port.CheckFilter, bool) {
	filter := port.CheckFilter{Query: c.Query("query")}

	if raw := c.Query("dateFrom"); raw != "" {
		d, ok := extract.ParseDate(raw)
		if !ok {
			RespondError(c, http.StatusBadRequest, "INVALID_FILTER", "dateFrom is not a parseable date")
			return port.CheckFilter{}, false
		}
		filter.DateFrom = &d
	}
	if raw := c.Query("dateTo"); raw != "" {
		d, ok := extract.ParseDate(raw)
		if !ok {
			RespondError(c, http.StatusBadRequest, "INVALID_FILTER", "dateTo is not a parseable date")
			return port.CheckFilter{}, false
		}
		filter.DateTo = &d
	}
	if raw := c.Query("amountMin"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_FILTER", "amountMin is not a number")
			return port.CheckFilter{}, false
		}
		filter.AmountMin = &v
	}
	if raw := c.Query("amountMax"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_FILTER", "amountMax is not a number")
			return port.CheckFilter{}, false
		}
		filter.AmountMax = &v
	}

	return filter, true
}

// parsePagination clamps page to >= 1 and pageSize to [1,100], default 50.
func parsePagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(defaultPageSize)))
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}
