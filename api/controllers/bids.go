package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/agritrade/agritrade-backend/api/middleware"
	"github.com/agritrade/agritrade-backend/api/responses"
	"github.com/agritrade/agritrade-backend/api/validators"
	"github.com/agritrade/agritrade-backend/internal/bids"
	"github.com/agritrade/agritrade-backend/pkg/enums"
	pkgerrors "github.com/agritrade/agritrade-backend/pkg/errors"
	"github.com/agritrade/agritrade-backend/pkg/logger"
	"github.com/agritrade/agritrade-backend/pkg/pagination"
)

type placeBidRequest struct {
	ProductID        string  `json:"productId" validate:"required,uuid"`
	BuyerType        string  `json:"buyerType" validate:"required,oneof=B2B B2C"`
	AmountCents      int     `json:"amountCents" validate:"required,gt=0"`
	Quantity         int     `json:"quantity" validate:"required,gt=0"`
	Message          *string `json:"message,omitempty"`
	VoiceMessageRef  *string `json:"voiceMessageRef,omitempty"`
	DeliveryLocation *string `json:"deliveryLocation,omitempty"`
}

type updateBidStatusRequest struct {
	Status        string             `json:"status" validate:"required"`
	VendorMessage *string            `json:"vendorMessage,omitempty"`
	CounterOffer  *bids.CounterOffer `json:"counterOffer,omitempty"`
}

// PlaceBid records a buyer's offer on a product. The buyer identity comes
// from the access token.
func PlaceBid(svc bids.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bid service unavailable"))
			return
		}

		buyerID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload placeBidRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := uuid.Parse(payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}
		buyerType, err := enums.ParseBuyerType(strings.TrimSpace(payload.BuyerType))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid buyer type"))
			return
		}

		bid, err := svc.PlaceBid(r.Context(), bids.PlaceBidInput{
			BuyerID:          buyerID,
			ProductID:        productID,
			BuyerType:        buyerType,
			AmountCents:      payload.AmountCents,
			Quantity:         payload.Quantity,
			Message:          payload.Message,
			VoiceMessageRef:  payload.VoiceMessageRef,
			DeliveryLocation: payload.DeliveryLocation,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, bid)
	}
}

// UpdateBidStatus drives a bid through the state machine.
func UpdateBidStatus(svc bids.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bid service unavailable"))
			return
		}

		actorID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		bidID, err := uuid.Parse(chi.URLParam(r, "bidID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid bid id"))
			return
		}

		var payload updateBidStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		newStatus, err := enums.ParseBidStatus(strings.TrimSpace(payload.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		bid, err := svc.UpdateBidStatus(r.Context(), bids.UpdateBidStatusInput{
			ActorID:       actorID,
			ActorRole:     enums.UserRole(middleware.RoleFromContext(r.Context())),
			BidID:         bidID,
			NewStatus:     newStatus,
			VendorMessage: payload.VendorMessage,
			CounterOffer:  payload.CounterOffer,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, bid)
	}
}

// GetBid returns a single bid to its buyer or vendor.
func GetBid(svc bids.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bid service unavailable"))
			return
		}

		caller, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		bidID, err := uuid.Parse(chi.URLParam(r, "bidID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid bid id"))
			return
		}

		bid, err := svc.GetBid(r.Context(), bidID, caller)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, bid)
	}
}

// ListBids queries bids by product, buyer, or vendor.
func ListBids(svc bids.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bid service unavailable"))
			return
		}

		caller, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := bids.ListBidsFilter{}
		if filter.ProductID, err = validators.ParseQueryUUID(r, "productId"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filter.BuyerID, err = validators.ParseQueryUUID(r, "buyerId"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filter.VendorID, err = validators.ParseQueryUUID(r, "vendorId"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseBidStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter"))
				return
			}
			filter.Status = &status
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListBids(r.Context(), bids.ListBidsInput{
			CallerID:   caller,
			Filter:     filter,
			Pagination: pagination.Params{
				Limit:  limit,
				Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
			},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func callerID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return id, nil
}
