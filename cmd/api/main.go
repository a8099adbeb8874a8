package main

import (
	"context"
	"time"

	"shop/internal/config"
	"shop/internal/domain/model"
	"shop/internal/handler"
	"shop/internal/infra/db"
	infraRepo "shop/internal/infra/repository"
	"shop/internal/infra/storage"
	"shop/internal/server"
	"shop/internal/usecase"
	auth "shop/internal/usecase/auth_usecase"
	"shop/pkg/logging"
	"shop/pkg/metrics"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(userID string, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	// .envはローカル開発用。なければ環境変数だけで動く
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := logging.New(cfg.GoEnv)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		logger.Fatal("db connect failed", zap.Error(err))
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Collection{},
		&model.Product{},
		&model.CartItem{},
		&model.WishlistItem{},
		&model.Order{},
		&model.OrderLine{},
		&model.Media{},
	); err != nil {
		logger.Fatal("auto migrate failed", zap.Error(err))
	}

	// Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	rtRepo := infraRepo.NewRefreshTokenGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	collectionRepo := infraRepo.NewCollectionGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	wishlistRepo := infraRepo.NewWishlistGormRepository(gormDB)
	mediaRepo := infraRepo.NewMediaGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	// usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}

	// bcrypt（会員登録：Hash / ログイン：Verify）
	hasher := auth.NewBcryptPasswordHasher(12)
	verifier := auth.NewBcryptPasswordVerifier()

	// JWT issuer
	issuer := &jwtIssuer{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: 15 * time.Minute,
	}

	// refresh TTL
	refreshTTL := 14 * 24 * time.Hour

	// メトリクス
	m := metrics.NewServerMetrics("api")

	// Usecase生成
	registerUC := auth.NewRegisterUserUsecase(userRepo, hasher, idGen, clock)
	loginUC := auth.NewLoginUsecase(userRepo, rtRepo, verifier, issuer, idGen, clock, refreshTTL)
	refreshUC := auth.NewRefreshUsecase(userRepo, rtRepo, issuer, idGen, clock, refreshTTL)
	logoutUC := auth.NewLogoutUsecase(rtRepo, clock)
	deleteUC := auth.NewDeleteAccountUsecase(userRepo)

	productUC := usecase.NewProductUsecase(productRepo, collectionRepo)
	collectionUC := usecase.NewCollectionUsecase(collectionRepo, productRepo)
	orderUC := usecase.NewOrderUsecase(txManager, productRepo, cartRepo, wishlistRepo, idGen, clock, logger)
	cartUC := usecase.NewCartUsecase(cartRepo, productRepo)
	wishlistUC := usecase.NewWishlistUsecase(wishlistRepo, productRepo)

	// S3はバケット指定があるときだけ有効化
	var mediaUC *usecase.MediaUsecase
	if cfg.S3Bucket != "" {
		s3Storage, err := storage.NewS3Storage(context.Background(), cfg)
		if err != nil {
			logger.Fatal("s3 init failed", zap.Error(err))
		}
		mediaUC = usecase.NewMediaUsecase(mediaRepo, s3Storage, idGen, logger)
	} else {
		logger.Warn("S3_BUCKET not set, media endpoints disabled")
	}

	// Handler生成
	handlers := server.Handlers{
		Auth:       handler.NewAuthHandler(registerUC, loginUC, refreshUC, logoutUC, deleteUC, cfg, refreshTTL),
		Product:    handler.NewProductHandler(productUC),
		Collection: handler.NewCollectionHandler(collectionUC),
		Order:      handler.NewOrderHandler(orderUC, cfg, m),
		Cart:       handler.NewCartHandler(cartUC, cfg),
		Wishlist:   handler.NewWishlistHandler(wishlistUC, cfg),
		Media:      handler.NewMediaHandler(mediaUC, cfg),
		Health:     handler.NewHealthHandler(gormDB),
	}

	// Server起動
	e := server.New(logger, m)
	server.RegisterRoutes(e, handlers)

	addr := cfg.Port
	if addr != "" && addr[0] != ':' {
		addr = ":" + addr
	}

	logger.Info("server starting", zap.String("addr", addr))
	if err := server.Start(e, addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
