package usecase

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"app/internal/domain/model"
	"app/internal/listquery"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

type OrderUsecase struct {
	orderRepo repo.OrderRepository
	txManager repo.TransactionManager
}

// DI
func NewOrderUsecase(orderRepo repo.OrderRepository, txManager repo.TransactionManager) *OrderUsecase {
	return &OrderUsecase{
		orderRepo: orderRepo,
		txManager: txManager,
	}
}

type OrderListOutput struct {
	Items []model.Order `json:"items"`
	Meta  PageMeta      `json:"meta"`
}

func (u *OrderUsecase) ListOrders(ctx context.Context, q listquery.Query) (OrderListOutput, error) {
	items, total, err := u.orderRepo.List(ctx, q)
	if err != nil {
		return OrderListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return OrderListOutput{
		Items: items,
		Meta:  NewPageMeta(total, q),
	}, nil
}

func (u *OrderUsecase) GetOrder(ctx context.Context, orderID int64) (model.Order, error) {
	if orderID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	o, err := u.orderRepo.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return o, nil
}

// 注文フォームの1明細。Priceはクライアントが見ていた単価で、
// サーバー側の現在価格と突き合わせる。
type OrderLineInput struct {
	ProductID int64           `json:"id"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type CreateOrderInput struct {
	Items           []OrderLineInput `json:"order_items"`
	PaymentMethod   string           `json:"payment_method"`
	ShippingMethod  string           `json:"shipping_method"`
	ShippingAddress string           `json:"shipping_address"`
	Notes           string           `json:"notes"`
}

func (u *OrderUsecase) CreateOrder(ctx context.Context, userID int64, in CreateOrderInput) (model.Order, error) {
	if userID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	fields := map[string]string{}

	if len(in.Items) == 0 {
		fields["order_items"] = "must have at least 1 item"
	}
	for i, line := range in.Items {
		if line.ProductID <= 0 {
			fields[fmt.Sprintf("order_items.%d.id", i)] = "is invalid"
		}
		if line.Quantity < 1 {
			fields[fmt.Sprintf("order_items.%d.quantity", i)] = "must be at least 1"
		}
		if line.Price.IsNegative() {
			fields[fmt.Sprintf("order_items.%d.price", i)] = "must be 0 or more"
		}
	}

	paymentMethod := model.PaymentMethodCOD
	if in.PaymentMethod != "" {
		pm := model.PaymentMethod(in.PaymentMethod)
		if !pm.Valid() {
			fields["payment_method"] = "is invalid"
		}
		paymentMethod = pm
	}
	shippingMethod := model.ShippingMethodStandard
	if in.ShippingMethod != "" {
		sm := model.ShippingMethod(in.ShippingMethod)
		if !sm.Valid() {
			fields["shipping_method"] = "is invalid"
		}
		shippingMethod = sm
	}

	if len(fields) > 0 {
		return model.Order{}, NewValidationError(fields)
	}

	var created model.Order

	err := u.txManager.WithinTx(ctx, func(r repo.TxRepos) error {
		// 単価はクライアント申告を信用せず、現在価格で検証してから確定する
		items := make([]model.OrderItem, 0, len(in.Items))
		total := decimal.Zero
		for i, line := range in.Items {
			p, err := r.Products().FindByID(ctx, line.ProductID)
			if err == repo.ErrNotFound {
				fields[fmt.Sprintf("order_items.%d.id", i)] = "does not exist"
				continue
			}
			if err != nil {
				return err
			}
			if !p.Price.Equal(line.Price) {
				fields[fmt.Sprintf("order_items.%d.price", i)] = "does not match the current price"
				continue
			}
			items = append(items, model.OrderItem{
				ProductID: p.ID,
				Quantity:  line.Quantity,
				Price:     p.Price,
			})
			total = total.Add(p.Price.Mul(decimal.NewFromInt(line.Quantity)))
		}
		if len(fields) > 0 {
			return NewValidationError(fields)
		}

		order := model.Order{
			UserID:          userID,
			Status:          model.OrderStatusPending,
			PaymentMethod:   paymentMethod,
			PaymentStatus:   model.PaymentStatusUnpaid,
			ShippingMethod:  shippingMethod,
			TotalAmount:     total,
			DiscountAmount:  decimal.Zero,
			ShippingAddress: strings.TrimSpace(in.ShippingAddress),
			Notes:           strings.TrimSpace(in.Notes),
		}
		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return err
		}
		if err := r.OrderItems().CreateBulk(ctx, orderID, items); err != nil {
			return err
		}

		created, err = r.Orders().FindByID(ctx, orderID)
		return err
	})
	if err != nil {
		if _, ok := AsValidationError(err); ok {
			return model.Order{}, err
		}
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return created, nil
}

// 許可される状態遷移
var allowedOrderTransitions = map[model.OrderStatus][]model.OrderStatus{
	model.OrderStatusPending:    {model.OrderStatusProcessing, model.OrderStatusCancelled},
	model.OrderStatusProcessing: {model.OrderStatusCompleted, model.OrderStatusCancelled},
	model.OrderStatusCompleted:  {},
	model.OrderStatusCancelled:  {},
}

func canTransition(from, to model.OrderStatus) bool {
	for _, s := range allowedOrderTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (u *OrderUsecase) UpdateOrderStatus(ctx context.Context, orderID int64, status string) error {
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid order id")
	}
	next := model.OrderStatus(status)
	if !next.Valid() {
		return NewValidationError(map[string]string{"status": "is invalid"})
	}

	o, err := u.orderRepo.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if !canTransition(o.Status, next) {
		return NewHTTPError(http.StatusConflict,
			fmt.Sprintf("cannot change status from %s to %s", o.Status, next))
	}

	if err := u.orderRepo.UpdateStatus(ctx, orderID, next); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *OrderUsecase) DeleteOrder(ctx context.Context, orderID int64) error {
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	err := u.orderRepo.Delete(ctx, orderID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
