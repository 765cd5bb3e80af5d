package coupons

import (
	"context"
	"errors"
	"fmt"

	"github.com/salonhub/SalonBookingService/internal/domain"
	couponRepo "github.com/salonhub/SalonBookingService/internal/infra/storage/coupon"
	"github.com/salonhub/SalonBookingService/internal/service/coupons/models"
)

// Service сервис для администрирования промокодов
type Service struct {
	couponRepo CouponRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса промокодов
func NewService(couponRepo CouponRepository, logger Logger) *Service {
	return &Service{
		couponRepo: couponRepo,
		logger:     logger,
	}
}

// Create создает новый промокод салона.
// Код нормализуется; уникальность в рамках салона обеспечивается
// ограничением БД.
func (s *Service) Create(ctx context.Context, req *models.CreateCouponRequest) (*models.CouponResponse, error) {
	s.logger.Info("Create: creating coupon code=%s for salon=%d", req.Code, req.SalonID)

	if err := s.validateCreateRequest(req); err != nil {
		s.logger.Warn("Create: validation failed for salon=%d: %v", req.SalonID, err)
		return nil, err
	}

	coupon, err := s.couponRepo.Create(ctx, req.ToDomainCoupon())
	if err != nil {
		if errors.Is(err, couponRepo.ErrDuplicateCode) {
			s.logger.Warn("Create: coupon code=%s already exists in salon=%d", req.Code, req.SalonID)
			return nil, ErrDuplicateCode
		}
		s.logger.Error("Create: repository error for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created coupon id=%d, code=%s", coupon.ID, coupon.Code)
	return models.FromDomainCoupon(coupon), nil
}

// List получает все промокоды салона
func (s *Service) List(ctx context.Context, salonID int64) (*models.CouponListResponse, error) {
	s.logger.Info("List: fetching coupons for salon=%d", salonID)

	coupons, err := s.couponRepo.ListBySalon(ctx, salonID)
	if err != nil {
		s.logger.Error("List: repository error for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d coupons for salon=%d", len(coupons), salonID)
	return models.FromDomainCouponList(coupons), nil
}

// validateCreateRequest валидирует запрос на создание промокода
func (s *Service) validateCreateRequest(req *models.CreateCouponRequest) error {
	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salonID must be positive", ErrInvalidInput)
	}

	if domain.NormalizeCouponCode(req.Code) == "" {
		return fmt.Errorf("%w: code is required", ErrInvalidInput)
	}

	switch domain.DiscountType(req.DiscountType) {
	case domain.DiscountFixed:
		if req.DiscountValue <= 0 {
			return fmt.Errorf("%w: fixed discount value must be positive", ErrInvalidInput)
		}
	case domain.DiscountPercentage:
		if req.DiscountValue <= 0 || req.DiscountValue > 100 {
			return fmt.Errorf("%w: percentage discount value must be between 1 and 100", ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: discountType must be %q or %q",
			ErrInvalidInput, domain.DiscountFixed, domain.DiscountPercentage)
	}

	if req.MaxUses != nil && *req.MaxUses <= 0 {
		return fmt.Errorf("%w: maxUses must be positive", ErrInvalidInput)
	}

	return nil
}
