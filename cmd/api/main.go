package main

import (
	"log"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/infra/storage"
	"app/internal/payment"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	// .envは無くてもよい（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if err := gormDB.AutoMigrate(
		&model.Category{},
		&model.Tag{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		log.Fatal(err)
	}

	//Repository（GORM実装）生成
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	tagRepo := infraRepo.NewTagGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//画像保存先
	images, err := storage.NewLocalImageStore(cfg.ImageDir)
	if err != nil {
		log.Fatal(err)
	}

	//Stripe
	gateway := payment.NewStripeGateway(cfg.StripeSecretKey, cfg.CheckoutSuccessURL, cfg.CheckoutCancelURL)

	//Usecase生成
	catalogUC := usecase.NewCatalogUsecase(productRepo, categoryRepo, tagRepo, images)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo, productRepo, cfg.CategoryCascadeDelete)
	tagUC := usecase.NewTagUsecase(tagRepo)
	orderUC := usecase.NewOrderUsecase(orderRepo, txManager)
	checkoutUC := usecase.NewCheckoutUsecase(orderRepo, gateway, cfg.Currency)

	//Handler生成
	handlers := server.Handlers{
		Product:      handler.NewProductHandler(catalogUC),
		AdminProduct: handler.NewAdminProductHandler(catalogUC),
		Category:     handler.NewCategoryHandler(categoryUC),
		Tag:          handler.NewTagHandler(tagUC),
		Order:        handler.NewOrderHandler(orderUC),
		Checkout:     handler.NewCheckoutHandler(checkoutUC),
	}

	//Server起動
	e := server.New(cfg, handlers)
	if err := server.Start(e, cfg.Port); err != nil {
		log.Fatal(err)
	}
}
