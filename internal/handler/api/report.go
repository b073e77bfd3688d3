package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/SrRalo/park-pal-reserva-facil/internal/handler/httperr"
	"github.com/SrRalo/park-pal-reserva-facil/internal/handler/middleware"
	"github.com/SrRalo/park-pal-reserva-facil/internal/report"
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reads queries.ReportQueries
}

func NewReportHandler(reads queries.ReportQueries) *ReportHandler {
	return &ReportHandler{reads: reads}
}

// @Summary Income report for the caller's spots
// @Tags reports
// @Security BearerAuth
// @Produce json
// @Param from query string false "Start date (RFC 3339 or YYYY-MM-DD)"
// @Param to query string false "End date (RFC 3339 or YYYY-MM-DD)"
// @Param group_by query string false "day or month"
// @Success 200 {array} queries.IncomeRow
// @Failure 400 {object} map[string]string
// @Router /reports/income [get]
func (h *ReportHandler) Income(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	from, to, groupBy, err := parseIncomeParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, err := h.reads.Income(c.Request.Context(), actor.ID, from, to, groupBy)
	if err != nil {
		if errors.Is(err, queries.ErrInvalidReportRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "End date must not precede start date"})
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, rows)
}

// @Summary Income report as an xlsx download
// @Tags reports
// @Security BearerAuth
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param from query string false "Start date (RFC 3339 or YYYY-MM-DD)"
// @Param to query string false "End date (RFC 3339 or YYYY-MM-DD)"
// @Param group_by query string false "day or month"
// @Success 200 {file} binary
// @Router /reports/income/export [get]
func (h *ReportHandler) IncomeExport(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	from, to, groupBy, err := parseIncomeParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, err := h.reads.Income(c.Request.Context(), actor.ID, from, to, groupBy)
	if err != nil {
		if errors.Is(err, queries.ErrInvalidReportRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "End date must not precede start date"})
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	buf, err := report.BuildIncomeWorkbook(rows, from, to, groupBy)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	fileName := fmt.Sprintf("income_%s_to_%s.xlsx", from.Format("2006-01-02"), to.Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// Defaults to the last 30 days grouped by day.
func parseIncomeParams(c *gin.Context) (from, to time.Time, groupBy queries.GroupBy, err error) {
	now := time.Now().UTC()
	from = now.AddDate(0, 0, -30)
	to = now

	if raw := c.Query("from"); raw != "" {
		from, err = parseDateParam(raw)
		if err != nil {
			return from, to, groupBy, errors.New("invalid from date")
		}
	}
	if raw := c.Query("to"); raw != "" {
		to, err = parseDateParam(raw)
		if err != nil {
			return from, to, groupBy, errors.New("invalid to date")
		}
		// An end date without a time component covers the whole day.
		if to.Hour() == 0 && to.Minute() == 0 && to.Second() == 0 {
			to = to.Add(24*time.Hour - time.Nanosecond)
		}
	}

	groupBy = queries.GroupBy(c.DefaultQuery("group_by", string(queries.GroupByDay)))
	if !groupBy.IsValid() {
		return from, to, groupBy, errors.New("group_by must be day or month")
	}
	return from, to, groupBy, nil
}

func parseDateParam(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
