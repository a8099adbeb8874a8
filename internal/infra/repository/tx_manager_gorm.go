package repository

import (
	"context"

	repo "shop/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	orders     repo.OrderRepository
	orderLines repo.OrderLineRepository
	carts      repo.CartRepository
	wishlist   repo.WishlistRepository
	products   repo.ProductRepository
}

func (r *txReposGorm) Orders() repo.OrderRepository         { return r.orders }
func (r *txReposGorm) OrderLines() repo.OrderLineRepository { return r.orderLines }
func (r *txReposGorm) Carts() repo.CartRepository           { return r.carts }
func (r *txReposGorm) Wishlist() repo.WishlistRepository    { return r.wishlist }
func (r *txReposGorm) Products() repo.ProductRepository     { return r.products }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			orders:     NewOrderGormRepository(tx),
			orderLines: NewOrderLineGormRepository(tx),
			carts:      NewCartGormRepository(tx),
			wishlist:   NewWishlistGormRepository(tx),
			products:   NewProductGormRepository(tx),
		}
		return fn(r)
	})
}
