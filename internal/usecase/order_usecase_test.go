package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newOrderUC() (*usecase.OrderUsecase, *OrderRepoMock, *TxReposStub) {
	oRepo := new(OrderRepoMock)
	tx := &TxReposStub{
		orders:     new(OrderRepoMock),
		orderItems: new(OrderItemRepoMock),
		products:   new(ProductRepoMock),
	}
	return usecase.NewOrderUsecase(oRepo, &TxManagerStub{repos: tx}), oRepo, tx
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestOrderUsecase_CreateOrder_Success(t *testing.T) {
	ctx := context.Background()
	uc, _, tx := newOrderUC()

	tx.products.On("FindByID", mock.Anything, int64(1)).Return(model.Product{ID: 1, Price: price("10.99")}, nil)
	tx.products.On("FindByID", mock.Anything, int64(2)).Return(model.Product{ID: 2, Price: price("2.50")}, nil)

	// 合計は検証済み単価から計算される（10.99*2 + 2.50 = 24.48）
	tx.orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.UserID == 7 &&
			o.Status == model.OrderStatusPending &&
			o.PaymentStatus == model.PaymentStatusUnpaid &&
			o.TotalAmount.Equal(price("24.48"))
	})).Return(int64(100), nil)

	tx.orderItems.On("CreateBulk", mock.Anything, int64(100), mock.MatchedBy(func(items []model.OrderItem) bool {
		return len(items) == 2 && items[0].Price.Equal(price("10.99")) && items[0].Quantity == 2
	})).Return(nil)

	tx.orders.On("FindByID", mock.Anything, int64(100)).Return(model.Order{
		ID:          100,
		TotalAmount: price("24.48"),
		OrderItems: []model.OrderItem{
			{ProductID: 1, Quantity: 2, Price: price("10.99")},
			{ProductID: 2, Quantity: 1, Price: price("2.50")},
		},
	}, nil)

	created, err := uc.CreateOrder(ctx, 7, usecase.CreateOrderInput{
		Items: []usecase.OrderLineInput{
			{ProductID: 1, Quantity: 2, Price: price("10.99")},
			{ProductID: 2, Quantity: 1, Price: price("2.50")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(100), created.ID)
	// 明細から計算した合計は保存済みのTotalAmountと一致する
	assert.True(t, created.Total().Equal(created.TotalAmount))
	tx.orders.AssertExpectations(t)
	tx.orderItems.AssertExpectations(t)
}

func TestOrderUsecase_CreateOrder_EmptyItems(t *testing.T) {
	uc, _, _ := newOrderUC()

	_, err := uc.CreateOrder(context.Background(), 7, usecase.CreateOrderInput{})
	assertFieldError(t, err, "order_items")
}

func TestOrderUsecase_CreateOrder_BadQuantity(t *testing.T) {
	uc, _, _ := newOrderUC()

	_, err := uc.CreateOrder(context.Background(), 7, usecase.CreateOrderInput{
		Items: []usecase.OrderLineInput{{ProductID: 1, Quantity: 0, Price: price("10.00")}},
	})
	assertFieldError(t, err, "order_items.0.quantity")
}

func TestOrderUsecase_CreateOrder_UnknownProduct(t *testing.T) {
	uc, _, tx := newOrderUC()
	tx.products.On("FindByID", mock.Anything, int64(99)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.CreateOrder(context.Background(), 7, usecase.CreateOrderInput{
		Items: []usecase.OrderLineInput{{ProductID: 99, Quantity: 1, Price: price("10.00")}},
	})
	assertFieldError(t, err, "order_items.0.id")
}

func TestOrderUsecase_CreateOrder_PriceMismatch(t *testing.T) {
	uc, _, tx := newOrderUC()
	// DB上の現在価格は12.00、クライアントは10.00のまま
	tx.products.On("FindByID", mock.Anything, int64(1)).Return(model.Product{ID: 1, Price: price("12.00")}, nil)

	_, err := uc.CreateOrder(context.Background(), 7, usecase.CreateOrderInput{
		Items: []usecase.OrderLineInput{{ProductID: 1, Quantity: 1, Price: price("10.00")}},
	})
	assertFieldError(t, err, "order_items.0.price")
	// 注文は作られない
	tx.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderUsecase_CreateOrder_BadPaymentMethod(t *testing.T) {
	uc, _, _ := newOrderUC()

	_, err := uc.CreateOrder(context.Background(), 7, usecase.CreateOrderInput{
		Items:         []usecase.OrderLineInput{{ProductID: 1, Quantity: 1, Price: price("10.00")}},
		PaymentMethod: "bitcoin",
	})
	assertFieldError(t, err, "payment_method")
}

// =====================
// Status
// =====================

func TestOrderUsecase_UpdateOrderStatus_AllowedTransition(t *testing.T) {
	uc, oRepo, _ := newOrderUC()
	oRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Order{ID: 1, Status: model.OrderStatusPending}, nil)
	oRepo.On("UpdateStatus", mock.Anything, int64(1), model.OrderStatusProcessing).Return(nil)

	require.NoError(t, uc.UpdateOrderStatus(context.Background(), 1, "processing"))
	oRepo.AssertExpectations(t)
}

func TestOrderUsecase_UpdateOrderStatus_ForbiddenTransition(t *testing.T) {
	uc, oRepo, _ := newOrderUC()
	oRepo.On("FindByID", mock.Anything, int64(1)).Return(model.Order{ID: 1, Status: model.OrderStatusCompleted}, nil)

	err := uc.UpdateOrderStatus(context.Background(), 1, "pending")
	assertHTTPStatus(t, err, http.StatusConflict)
	oRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderUsecase_UpdateOrderStatus_UnknownStatus(t *testing.T) {
	uc, _, _ := newOrderUC()

	err := uc.UpdateOrderStatus(context.Background(), 1, "shipped")
	assertFieldError(t, err, "status")
}

func TestOrderUsecase_GetOrder_NotFound(t *testing.T) {
	uc, oRepo, _ := newOrderUC()
	oRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Order{}, repo.ErrNotFound)

	_, err := uc.GetOrder(context.Background(), 99)
	assertHTTPStatus(t, err, http.StatusNotFound)
}
