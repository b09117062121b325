package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	specsheet "github.com/alnah/go-specsheet"
	"github.com/alnah/go-specsheet/internal/catalog"
)

type errorBody struct {
	Error   string              `json:"error"`
	Options map[string][]string `json:"options,omitempty"`
}

// healthz reports liveness. With ?deep=1 it also pings the catalog API.
func (s *Server) healthz(c *gin.Context) {
	if c.Query("deep") == "" {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}
	if err := s.catalog.Ping(c.Request.Context()); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "catalog": "unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "catalog": "ok"})
}

// specSheet streams the PDF for one product. Repeated spec=Name=Value
// query parameters choose the variant.
func (s *Server) specSheet(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	choices, err := catalog.ParseChoices(c.QueryArray("spec"))
	if err != nil {
		s.fail(c, http.StatusBadRequest, OutcomeBadRequest, err, errorBody{Error: err.Error()})
		return
	}

	dto, err := s.catalog.Product(ctx, id)
	if err != nil {
		s.catalogFailure(c, err)
		return
	}

	sel, err := catalog.Select(dto, choices)
	if err != nil {
		body := errorBody{Error: err.Error()}
		if errors.Is(err, catalog.ErrUnavailableSpec) {
			body.Options = catalog.Options(dto)
		}
		s.fail(c, http.StatusBadRequest, OutcomeBadRequest, err, body)
		return
	}

	gen, err := s.pool.Acquire(ctx)
	if err != nil {
		if ctx.Err() != nil {
			s.fail(c, http.StatusServiceUnavailable, OutcomeCancelled, err, errorBody{Error: "request cancelled"})
			return
		}
		s.fail(c, http.StatusServiceUnavailable, OutcomeUnavailable, err, errorBody{Error: "no generator available"})
		return
	}
	defer s.pool.Release(gen)

	start := time.Now()
	res, err := gen.Generate(ctx, specsheet.Input{
		Product:     catalog.ToProduct(dto, s.assetBase),
		Selected:    sel.Specifications,
		ProductCode: sel.FullCode,
		Page:        s.page,
		Footer:      s.footer,
	})
	elapsed := time.Since(start)
	if err != nil {
		outcome := OutcomeFailed
		if errors.Is(err, context.Canceled) {
			outcome = OutcomeCancelled
		}
		s.metrics.ObserveGeneration(outcome, elapsed)
		_ = c.Error(err)
		s.logger.Error("generation failed",
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.String("product_id", id),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, errorBody{Error: "generation failed"})
		return
	}
	s.metrics.ObserveGeneration(OutcomeSuccess, elapsed)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.FileName))
	c.Header("X-Page-Count", strconv.Itoa(res.PageCount))
	c.Data(http.StatusOK, "application/pdf", res.PDF)
}

// catalogFailure maps catalog errors to HTTP statuses.
func (s *Server) catalogFailure(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrEmptyID):
		s.fail(c, http.StatusBadRequest, OutcomeBadRequest, err, errorBody{Error: err.Error()})
	case errors.Is(err, catalog.ErrNotFound):
		s.fail(c, http.StatusNotFound, OutcomeNotFound, err, errorBody{Error: "product not found"})
	case errors.Is(err, context.Canceled):
		s.fail(c, http.StatusServiceUnavailable, OutcomeCancelled, err, errorBody{Error: "request cancelled"})
	default:
		s.fail(c, http.StatusBadGateway, OutcomeUpstream, err, errorBody{Error: "catalog unavailable"})
	}
}

func (s *Server) fail(c *gin.Context, status int, outcome string, err error, body errorBody) {
	s.metrics.ObserveGeneration(outcome, 0)
	_ = c.Error(err)
	c.JSON(status, body)
}
