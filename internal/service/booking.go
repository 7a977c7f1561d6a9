package service

import (
	"context"
	"strings"
	"time"

	"bomne-rental-backend/internal/apperr"
	"bomne-rental-backend/internal/domain"
	"bomne-rental-backend/internal/inventory"
	"bomne-rental-backend/internal/logger"
	"bomne-rental-backend/internal/metrics"
	"bomne-rental-backend/internal/repository"
	"bomne-rental-backend/internal/utils"
	"bomne-rental-backend/internal/validator"
)

type bookingService struct {
	rentalRepo  repository.RentalRepository
	validate    *validator.Validator
	metrics     *metrics.Metrics
	phoneRegion string
	now         func() time.Time
}

// NewBookingService builds the resolver. now supplies the shop's current time
// and decides the default rental date; nil means time.Now.
func NewBookingService(
	rentalRepo repository.RentalRepository,
	validate *validator.Validator,
	m *metrics.Metrics,
	phoneRegion string,
	now func() time.Time,
) BookingService {
	if now == nil {
		now = time.Now
	}
	return &bookingService{
		rentalRepo:  rentalRepo,
		validate:    validate,
		metrics:     m,
		phoneRegion: phoneRegion,
		now:         now,
	}
}

func (s *bookingService) ResolveBooking(intent domain.BookingIntent, cameras, lenses *inventory.Index, today time.Time) (*domain.Rental, error) {
	name := strings.TrimSpace(intent.CustomerName)
	if name == "" {
		return nil, apperr.MissingRequiredField("customer_name")
	}

	rentalDate, err := resolveRentalDate(intent.RentalDate, today)
	if err != nil {
		return nil, err
	}

	rt := &domain.Rental{
		CustomerName:    name,
		Phone:           utils.NormalizePhone(intent.Phone, s.phoneRegion),
		RentalDate:      rentalDate.String(),
		Duration:        strings.TrimSpace(intent.Duration),
		RentalFee:       0,
		Deposit:         0,
		PaidAmount:      0,
		RemainingAmount: utils.DeriveFinancials(0, 0),
		ReturnCondition: domain.ReturnConditionUnreturned,
	}

	if raw := strings.TrimSpace(intent.ReturnDate); raw != "" {
		returnDate, err := utils.ParseDate(raw)
		if err != nil {
			return nil, apperr.Validation("return_date", err.Error())
		}
		days, err := utils.RentalDays(rentalDate, returnDate)
		if err != nil {
			return nil, apperr.Validation("return_date", err.Error())
		}
		rt.ReturnDate = returnDate.String()
		if rt.Duration == "" {
			rt.Duration = utils.DurationLabel(days)
		}
	}

	rt.CameraID = s.resolveDevice(domain.DeviceKindCamera, cameras, intent.CameraName)
	rt.LensID = s.resolveDevice(domain.DeviceKindLens, lenses, intent.LensName)

	if err := s.validate.Struct(rt); err != nil {
		return nil, err
	}
	return rt, nil
}

func resolveRentalDate(raw string, today time.Time) (utils.Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if today.IsZero() {
			return utils.Date{}, apperr.MissingRequiredField("rental_date")
		}
		return utils.DateOf(today), nil
	}
	d, err := utils.ParseDate(raw)
	if err != nil {
		return utils.Date{}, apperr.Validation("rental_date", err.Error())
	}
	return d, nil
}

// resolveDevice looks name up in idx. A miss leaves the device unspecified.
func (s *bookingService) resolveDevice(kind domain.DeviceKind, idx *inventory.Index, name string) *int32 {
	if strings.TrimSpace(name) == "" {
		return nil
	}
	d, ok := idx.FindByApproxName(name)
	s.metrics.ObserveResolution(string(kind), ok)
	if !ok {
		err := apperr.New(apperr.KindDeviceNotResolved, "no "+string(kind)+" matches "+name)
		logger.Warn("Device not resolved, leaving it unspecified", "kind", kind, "query", name, "error", err)
		return nil
	}
	id := d.ID
	return &id
}

func (s *bookingService) Book(ctx context.Context, intent domain.BookingIntent, g *domain.Grounding) (*domain.Rental, error) {
	logger.EnterMethod("bookingService.Book", "customer", intent.CustomerName)

	var cameras, lenses *inventory.Index
	if g != nil {
		cameras = inventory.NewIndex(g.Cameras)
		lenses = inventory.NewIndex(g.Lenses)
	}

	rt, err := s.ResolveBooking(intent, cameras, lenses, s.now())
	if err != nil {
		s.metrics.ObserveBooking("rejected")
		logger.ExitMethodWithError("bookingService.Book", err, "customer", intent.CustomerName)
		return nil, err
	}

	if err := s.rentalRepo.Create(ctx, rt); err != nil {
		if apperr.GetKind(err) != apperr.KindPersistence {
			err = apperr.Persistence("book", err)
		}
		s.metrics.ObserveBooking("failed")
		logger.ExitMethodWithError("bookingService.Book", err, "customer", rt.CustomerName)
		return nil, err
	}

	s.metrics.ObserveBooking("created")
	logger.ExitMethod("bookingService.Book", "rentalID", rt.ID, "customer", rt.CustomerName)
	return rt, nil
}
