package reflist

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/murkotick/reflist-service/internal/app/reflist/domain"
	"github.com/murkotick/reflist-service/internal/app/reflist/dto"
	"github.com/murkotick/reflist-service/internal/app/reflist/queries/list_items"
	"github.com/murkotick/reflist-service/internal/app/reflist/usecases/reconcile_list"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Endpoint bundles the command and query side of one list.
type Endpoint struct {
	Reconcile *reconcile_list.Interactor
	List      *list_items.Handler
}

// Handler is a thin HTTP adapter over the per-list use cases.
type Handler struct {
	endpoints map[domain.ListKey]Endpoint
	logger    logrus.FieldLogger
}

func NewHandler(endpoints map[domain.ListKey]Endpoint, logger logrus.FieldLogger) *Handler {
	return &Handler{endpoints: endpoints, logger: logger}
}

type reconcileResponse struct {
	Status string               `json:"status"`
	Report *dto.ReconcileReport `json:"report,omitempty"`
}

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Partial bool   `json:"partial"`
}

type listResponse struct {
	List  string         `json:"list"`
	Title string         `json:"title"`
	Items []*dto.ItemDTO `json:"items"`
}

func (h *Handler) endpoint(c *gin.Context) (domain.ListSpec, Endpoint, bool) {
	spec, err := domain.LookupList(c.Param("list"))
	if err != nil {
		h.fail(c, err, false)
		return domain.ListSpec{}, Endpoint{}, false
	}
	ep, ok := h.endpoints[spec.Key]
	if !ok {
		h.fail(c, domain.ErrUnknownList, false)
		return domain.ListSpec{}, Endpoint{}, false
	}
	return spec, ep, true
}

// Reconcile handles POST /api/admin/settings/:list.
func (h *Handler) Reconcile(c *gin.Context) {
	_, ep, ok := h.endpoint(c)
	if !ok {
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.fail(c, err, false)
		return
	}
	batch, err := reconcile_list.ParseBatch(body)
	if err != nil {
		h.fail(c, err, false)
		return
	}

	res, err := ep.Reconcile.Execute(c.Request.Context(), batch)
	if err != nil {
		h.fail(c, err, res.Partial)
		return
	}
	c.JSON(http.StatusOK, reconcileResponse{Status: statusSuccess, Report: &res.Report})
}

// List handles GET /api/admin/settings/:list.
func (h *Handler) List(c *gin.Context) {
	spec, ep, ok := h.endpoint(c)
	if !ok {
		return
	}
	items, err := ep.List.Execute(c.Request.Context())
	if err != nil {
		h.fail(c, err, false)
		return
	}
	c.JSON(http.StatusOK, listResponse{List: string(spec.Key), Title: spec.Title, Items: items})
}

func (h *Handler) fail(c *gin.Context, err error, partial bool) {
	code := mapError(err)
	if code >= http.StatusInternalServerError {
		h.logger.WithError(err).WithField("path", c.Request.URL.Path).Error("request failed")
	}
	c.JSON(code, errorResponse{
		Status:  statusError,
		Message: errorMessage(code, err, partial),
		Partial: partial,
	})
}
