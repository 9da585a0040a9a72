package application

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	cartdomain "github.com/Apurer/go-gin-shop-api/internal/domains/cart/domain"
	cartports "github.com/Apurer/go-gin-shop-api/internal/domains/cart/ports"
	catalogports "github.com/Apurer/go-gin-shop-api/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-shop-api/internal/domains/checkout/domain"
	"github.com/Apurer/go-gin-shop-api/internal/domains/checkout/ports"
	conversiondomain "github.com/Apurer/go-gin-shop-api/internal/domains/conversions/domain"
	conversionports "github.com/Apurer/go-gin-shop-api/internal/domains/conversions/ports"
)

// DefaultGoalID is the purchase goal tracked for completed checkouts.
const DefaultGoalID int64 = 406352

// Service prices a cart, reports the purchase and clears the cart in one
// step under the user's cart lock.
type Service struct {
	carts      cartports.Repository
	products   ports.ProductLookup
	dispatcher conversionports.Dispatcher
	goalID     int64
	now        func() time.Time
	logger     *slog.Logger
}

type Option func(*Service)

// WithDispatcher enables conversion reporting.
func WithDispatcher(d conversionports.Dispatcher) Option {
	return func(s *Service) {
		s.dispatcher = d
	}
}

func WithGoalID(goalID int64) Option {
	return func(s *Service) {
		if goalID > 0 {
			s.goalID = goalID
		}
	}
}

// WithClock overrides the time source used for order ids and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewService(carts cartports.Repository, products ports.ProductLookup, opts ...Option) *Service {
	s := &Service{
		carts:    carts,
		products: products,
		goalID:   DefaultGoalID,
		now:      time.Now,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Checkout converts the user's cart into an order. An empty cart fails with
// ErrEmptyCart and is left untouched.
func (s *Service) Checkout(ctx context.Context, userID, visitorCode string) (*domain.Order, error) {
	var order *domain.Order
	_, err := s.carts.Update(ctx, userID, func(cart *cartdomain.Cart) error {
		if cart.IsEmpty() {
			return ErrEmptyCart
		}
		lines, err := s.price(ctx, cart.Items)
		if err != nil {
			return err
		}
		placedAt := s.now()
		order, err = domain.NewOrder(strconv.FormatInt(placedAt.UnixMilli(), 10), cart.UserID, lines, placedAt)
		if err != nil {
			return err
		}
		s.report(ctx, order, visitorCode)
		cart.Clear()
		return nil
	})
	if err != nil {
		return nil, mapError(err)
	}
	return order, nil
}

func (s *Service) price(ctx context.Context, items []cartdomain.LineItem) ([]domain.OrderLine, error) {
	lines := make([]domain.OrderLine, 0, len(items))
	for _, item := range items {
		line := domain.OrderLine{ProductID: item.ProductID, Quantity: item.Quantity, Price: decimal.Zero}
		product, err := s.products.GetProduct(ctx, item.ProductID)
		switch {
		case err == nil:
			line.ProductName = product.Name
			line.Price = product.Price
		case errors.Is(err, catalogports.ErrNotFound):
		default:
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (s *Service) report(ctx context.Context, order *domain.Order, visitorCode string) {
	visitorCode = strings.TrimSpace(visitorCode)
	if s.dispatcher == nil || visitorCode == "" {
		return
	}
	conversion, err := conversiondomain.NewConversion(order.ID, visitorCode, s.goalID, order.Total, order.PlacedAt)
	if err != nil {
		s.logger.WarnContext(ctx, "conversion not reported", slog.String("order.id", order.ID), slog.String("error", err.Error()))
		return
	}
	conversion.UserID = order.UserID
	s.dispatcher.Dispatch(ctx, conversion)
}

var _ ports.Service = (*Service)(nil)
