package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"regnet/internal/registry/models"
	dErrors "regnet/pkg/domain-errors"
	"regnet/pkg/platform/httputil"
	"regnet/pkg/requestcontext"
)

// Service defines the registry operations exposed over HTTP.
type Service interface {
	RequestUser(ctx context.Context, name, email, phone, nationalID string) (*models.UserRequest, error)
	ApproveUser(ctx context.Context, name, nationalID string) (*models.ApprovedUser, error)
	ViewUser(ctx context.Context, name, nationalID string) (*models.ApprovedUser, error)
	RechargeAccount(ctx context.Context, name, nationalID, voucherCode string) (*models.ApprovedUser, error)
	RequestProperty(ctx context.Context, propertyID string, price int64, status, ownerName, ownerNationalID string) (*models.PropertyRequest, error)
	ApproveProperty(ctx context.Context, propertyID string) (*models.ApprovedProperty, error)
	ViewProperty(ctx context.Context, propertyID string) (*models.ApprovedProperty, error)
	UpdateProperty(ctx context.Context, propertyID, ownerName, ownerNationalID, newStatus string) (*models.ApprovedProperty, error)
	PurchaseProperty(ctx context.Context, propertyID, buyerName, buyerNationalID string) (*models.PurchaseResult, error)
}

// Handler wires registry endpoints to the registry service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts registry endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/users/requests", h.HandleRequestUser)
	r.Post("/users/approvals", h.HandleApproveUser)
	r.Post("/users/recharge", h.HandleRecharge)
	r.Get("/users/{name}/{nationalID}", h.HandleViewUser)

	r.Post("/properties/requests", h.HandleRequestProperty)
	r.Get("/properties/{propertyID}", h.HandleViewProperty)
	r.Patch("/properties/{propertyID}", h.HandleUpdateProperty)
	r.Post("/properties/{propertyID}/approve", h.HandleApproveProperty)
	r.Post("/properties/{propertyID}/purchase", h.HandlePurchase)
}

func (h *Handler) HandleRequestUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[UserRequestBody](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	h.respond(w, r, "requestUser", http.StatusCreated, func() (any, error) {
		return h.service.RequestUser(ctx, req.Name, req.Email, req.Phone, req.NationalID)
	})
}

func (h *Handler) HandleApproveUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[UserRef](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	h.respond(w, r, "approveUser", http.StatusCreated, func() (any, error) {
		return h.service.ApproveUser(ctx, req.Name, req.NationalID)
	})
}

func (h *Handler) HandleViewUser(w http.ResponseWriter, r *http.Request) {
	name, nationalID := chi.URLParam(r, "name"), chi.URLParam(r, "nationalID")
	h.respond(w, r, "viewUser", http.StatusOK, func() (any, error) {
		return h.service.ViewUser(r.Context(), name, nationalID)
	})
}

func (h *Handler) HandleRecharge(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[RechargeBody](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	h.respond(w, r, "rechargeAccount", http.StatusOK, func() (any, error) {
		return h.service.RechargeAccount(ctx, req.Name, req.NationalID, req.VoucherCode)
	})
}

func (h *Handler) HandleRequestProperty(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[PropertyRequestBody](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	h.respond(w, r, "requestProperty", http.StatusCreated, func() (any, error) {
		p, err := h.service.RequestProperty(ctx, req.PropertyID, req.Price, req.Status, req.OwnerName, req.OwnerNationalID)
		if err != nil {
			return nil, err
		}
		return fromProperty(models.ApprovedProperty(*p)), nil
	})
}

func (h *Handler) HandleApproveProperty(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "propertyID")
	h.respond(w, r, "approveProperty", http.StatusCreated, func() (any, error) {
		p, err := h.service.ApproveProperty(r.Context(), propertyID)
		if err != nil {
			return nil, err
		}
		return fromProperty(*p), nil
	})
}

func (h *Handler) HandleViewProperty(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "propertyID")
	h.respond(w, r, "viewProperty", http.StatusOK, func() (any, error) {
		p, err := h.service.ViewProperty(r.Context(), propertyID)
		if err != nil {
			return nil, err
		}
		return fromProperty(*p), nil
	})
}

func (h *Handler) HandleUpdateProperty(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[UpdatePropertyBody](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	propertyID := chi.URLParam(r, "propertyID")
	h.respond(w, r, "updateProperty", http.StatusOK, func() (any, error) {
		p, err := h.service.UpdateProperty(ctx, propertyID, req.OwnerName, req.OwnerNationalID, req.Status)
		if err != nil {
			return nil, err
		}
		return fromProperty(*p), nil
	})
}

func (h *Handler) HandlePurchase(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := httputil.DecodeAndPrepare[PurchaseBody](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	propertyID := chi.URLParam(r, "propertyID")
	h.respond(w, r, "purchaseProperty", http.StatusOK, func() (any, error) {
		res, err := h.service.PurchaseProperty(ctx, propertyID, req.BuyerName, req.BuyerNationalID)
		if err != nil {
			return nil, err
		}
		return PurchaseResponse{Seller: res.Seller, Buyer: res.Buyer, Property: fromProperty(res.Property)}, nil
	})
}

// respond runs call, logs its outcome and writes either the result or the
// error envelope.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, op string, status int, call func() (any, error)) {
	ctx := r.Context()
	start := time.Now()
	result, err := call()
	if err != nil {
		level := slog.LevelWarn
		if dErrors.CodeOf(err) == dErrors.CodeInternal || dErrors.CodeOf(err) == dErrors.CodeInternalInconsistency {
			level = slog.LevelError
		}
		h.logger.Log(ctx, level, "registry operation failed",
			"operation", op,
			"code", string(dErrors.CodeOf(err)),
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		httputil.WriteError(w, err)
		return
	}
	h.logger.InfoContext(ctx, "registry operation succeeded",
		"operation", op,
		"request_id", requestcontext.RequestID(ctx),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, status, result)
}
