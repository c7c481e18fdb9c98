package repository

import (
	"context"

	"app/internal/domain/model"
	"app/internal/listquery"
)

type OrderRepository interface {
	List(ctx context.Context, q listquery.Query) ([]model.Order, int64, error)
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	// checkout用：そのユーザーの最新のpending注文
	FindLatestPendingByUserID(ctx context.Context, userID int64) (model.Order, error)
	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	Delete(ctx context.Context, orderID int64) error
}

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
}
