package service

import (
	"context"
	"fmt"
	"strings"

	"bomne-rental-backend/internal/apperr"
	"bomne-rental-backend/internal/domain"
	"bomne-rental-backend/internal/logger"
	"bomne-rental-backend/internal/repository"
	"bomne-rental-backend/internal/utils"
	"bomne-rental-backend/internal/validator"
)

type rentalService struct {
	rentalRepo  repository.RentalRepository
	validate    *validator.Validator
	phoneRegion string
}

func NewRentalService(rentalRepo repository.RentalRepository, validate *validator.Validator, phoneRegion string) RentalService {
	return &rentalService{
		rentalRepo:  rentalRepo,
		validate:    validate,
		phoneRegion: phoneRegion,
	}
}

func (s *rentalService) CreateRental(ctx context.Context, rt *domain.Rental) error {
	logger.EnterMethod("rentalService.CreateRental", "customer", rt.CustomerName)

	rt.ID = 0
	rt.CustomerName = strings.TrimSpace(rt.CustomerName)
	rt.Phone = utils.NormalizePhone(rt.Phone, s.phoneRegion)
	if rt.ReturnCondition == "" {
		rt.ReturnCondition = domain.ReturnConditionUnreturned
	}
	rt.RemainingAmount = utils.DeriveFinancials(rt.RentalFee, rt.PaidAmount)

	if err := s.validate.Struct(rt); err != nil {
		logger.ExitMethodWithError("rentalService.CreateRental", err)
		return err
	}
	if err := s.rentalRepo.Create(ctx, rt); err != nil {
		logger.ExitMethodWithError("rentalService.CreateRental", err, "customer", rt.CustomerName)
		return err
	}

	logger.ExitMethod("rentalService.CreateRental", "rentalID", rt.ID)
	return nil
}

func (s *rentalService) GetRental(ctx context.Context, id int32) (*domain.Rental, error) {
	return s.rentalRepo.GetByID(ctx, id)
}

func (s *rentalService) UpdateRental(ctx context.Context, id int32, patch domain.RentalPatch) (*domain.Rental, error) {
	logger.EnterMethod("rentalService.UpdateRental", "rentalID", id)

	rt, err := s.rentalRepo.GetByID(ctx, id)
	if err != nil {
		logger.ExitMethodWithError("rentalService.UpdateRental", err, "rentalID", id)
		return nil, err
	}

	s.applyPatch(rt, patch)

	if err := s.validate.Struct(rt); err != nil {
		logger.ExitMethodWithError("rentalService.UpdateRental", err, "rentalID", id)
		return nil, err
	}
	if err := s.rentalRepo.Update(ctx, rt); err != nil {
		logger.ExitMethodWithError("rentalService.UpdateRental", err, "rentalID", id)
		return nil, err
	}

	logger.ExitMethod("rentalService.UpdateRental", "rentalID", id, "remaining", rt.RemainingAmount)
	return rt, nil
}

// applyPatch copies the set fields of p onto rt. Fee and paid amount go through
// the ledger helpers so the remaining balance moves with them.
func (s *rentalService) applyPatch(rt *domain.Rental, p domain.RentalPatch) {
	if p.CustomerName != nil {
		rt.CustomerName = strings.TrimSpace(*p.CustomerName)
	}
	if p.Phone != nil {
		rt.Phone = utils.NormalizePhone(*p.Phone, s.phoneRegion)
	}
	if p.RentalDate != nil {
		rt.RentalDate = *p.RentalDate
	}
	if p.PickupTime != nil {
		rt.PickupTime = *p.PickupTime
	}
	if p.ReturnDate != nil {
		rt.ReturnDate = *p.ReturnDate
	}
	if p.ReturnTime != nil {
		rt.ReturnTime = *p.ReturnTime
	}
	if p.Duration != nil {
		rt.Duration = *p.Duration
	}
	if p.Deposit != nil {
		rt.Deposit = *p.Deposit
	}
	if p.RentalFee != nil {
		utils.ApplyRentalFee(rt, *p.RentalFee)
	}
	if p.PaidAmount != nil {
		utils.ApplyPaidAmount(rt, *p.PaidAmount)
	}
	if p.PaymentMethod != nil {
		rt.PaymentMethod = *p.PaymentMethod
	}
	if p.ReturnCondition != nil {
		rt.ReturnCondition = *p.ReturnCondition
	}
	if p.Notes != nil {
		rt.Notes = *p.Notes
	}
	if p.CameraID != nil {
		rt.CameraID = *p.CameraID
		rt.CameraName = ""
	}
	if p.LensID != nil {
		rt.LensID = *p.LensID
		rt.LensName = ""
	}
}

func (s *rentalService) ReturnRental(ctx context.Context, id int32, condition domain.ReturnCondition) (*domain.Rental, error) {
	if !condition.Returned() {
		return nil, apperr.Validation("return_condition", fmt.Sprintf("%q is not a returned condition", condition))
	}
	return s.UpdateRental(ctx, id, domain.RentalPatch{ReturnCondition: &condition})
}

func (s *rentalService) DeleteRental(ctx context.Context, id int32) error {
	logger.Info("Deleting rental", "rentalID", id)
	return s.rentalRepo.Delete(ctx, id)
}

func (s *rentalService) ListRentals(ctx context.Context, filter domain.RentalFilter) ([]domain.Rental, int32, error) {
	if filter.Page > 0 && filter.PageSize <= 0 {
		filter.PageSize = DefaultPageSize
	}
	if filter.RentalDate != "" {
		d, err := utils.ParseDate(filter.RentalDate)
		if err != nil {
			return nil, 0, apperr.Validation("rental_date", err.Error())
		}
		filter.RentalDate = d.String()
	}
	return s.rentalRepo.List(ctx, withPhoneSearch(filter, s.phoneRegion))
}

// withPhoneSearch fills PhoneSearch when the search box holds a phone number,
// so a number typed in local form still finds the normalised stored one.
func withPhoneSearch(f domain.RentalFilter, region string) domain.RentalFilter {
	term := strings.TrimSpace(f.Search)
	f.PhoneSearch = ""
	if term == "" {
		return f
	}
	if e164 := utils.NormalizePhone(term, region); e164 != term {
		f.PhoneSearch = e164
	}
	return f
}
