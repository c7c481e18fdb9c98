package usecase

import (
	"context"
	"fmt"
	"net/http"

	"app/internal/payment"
	repo "app/internal/repository"
)

type CheckoutUsecase struct {
	orderRepo repo.OrderRepository
	gateway   payment.Gateway
	currency  string
}

// DI
func NewCheckoutUsecase(orderRepo repo.OrderRepository, gateway payment.Gateway, currency string) *CheckoutUsecase {
	return &CheckoutUsecase{
		orderRepo: orderRepo,
		gateway:   gateway,
		currency:  currency,
	}
}

type CheckoutOutput struct {
	OrderID     int64  `json:"order_id"`
	SessionID   string `json:"session_id"`
	RedirectURL string `json:"redirect_url"`
}

// 最新のpending注文を決済セッションへ渡し、リダイレクト先を返す。
// セッション作成に失敗しても注文はpendingのまま残る。
func (u *CheckoutUsecase) StartCheckout(ctx context.Context, userID int64) (CheckoutOutput, error) {
	if userID <= 0 {
		return CheckoutOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	o, err := u.orderRepo.FindLatestPendingByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return CheckoutOutput{}, NewHTTPError(http.StatusNotFound, "no pending order")
	}
	if err != nil {
		return CheckoutOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !o.TotalAmount.IsPositive() {
		return CheckoutOutput{}, NewHTTPError(http.StatusUnprocessableEntity, "order total must be positive")
	}

	s, err := u.gateway.CreateCheckoutSession(ctx, payment.CheckoutInput{
		OrderID:     o.ID,
		Amount:      o.TotalAmount,
		Currency:    u.currency,
		Description: fmt.Sprintf("Order #%d", o.ID),
	})
	if err != nil {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadGateway, "payment provider error")
	}

	return CheckoutOutput{
		OrderID:     o.ID,
		SessionID:   s.ID,
		RedirectURL: s.URL,
	}, nil
}
