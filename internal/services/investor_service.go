package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "debentra/internal/errors"
	"debentra/internal/models"
	"debentra/internal/pagination"
)

// investorService handles investor onboarding and read paths. All money
// movement goes through the ledger service.
type investorService struct {
	db *gorm.DB
}

// NewInvestorService creates a new InvestorServicer.
func NewInvestorService(db *gorm.DB) InvestorServicer {
	return &investorService{db: db}
}

// OnboardInvestor creates an investor record. The business key is unique
// case-insensitively: INV001 and inv001 are the same investor.
func (s *investorService) OnboardInvestor(investorID, name, email, phone string) (*models.Investor, error) {
	investorID = strings.TrimSpace(investorID)
	if investorID == "" || name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "investor ID and name are required")
	}

	var count int64
	s.db.Model(&models.Investor{}).
		Where("LOWER(investor_id) = ?", strings.ToLower(investorID)).
		Count(&count)
	if count > 0 {
		return nil, apperrors.ErrDuplicateInvestorID
	}

	investor := &models.Investor{
		InvestorID: investorID,
		Name:       name,
		Email:      strings.ToLower(email),
		Phone:      phone,
		Status:     models.InvestorStatusActive,
		Active:     true,
	}
	if err := s.db.Create(investor).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	investor.SeriesNames = []string{}
	return investor, nil
}

// GetInvestorByID returns an investor with holdings and the derived series
// list. Deleted investors stay readable: their exited holdings are included
// for audit display.
func (s *investorService) GetInvestorByID(id string) (*models.Investor, error) {
	var investor models.Investor
	if err := s.db.First(&investor, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvestorNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	holdingsQuery := s.db
	if investor.Status == models.InvestorStatusDeleted {
		holdingsQuery = s.db.Unscoped()
	}
	if err := holdingsQuery.Where("investor_id = ?", investor.ID).
		Order("created_at").Find(&investor.Holdings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	investor.DeriveSeriesNames()
	return &investor, nil
}

// ListInvestors returns a paginated list of investors with derived series
// lists populated from live holdings.
func (s *investorService) ListInvestors(page pagination.PageRequest) (*pagination.PageResponse[models.Investor], error) {
	page.Defaults()

	var totalItems int64
	if err := s.db.Model(&models.Investor{}).Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var investors []models.Investor
	if err := s.db.Preload("Holdings").Order("created_at").
		Scopes(pagination.Paginate(page)).Find(&investors).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for i := range investors {
		investors[i].DeriveSeriesNames()
	}

	result := pagination.NewPageResponse(investors, page.Page, page.PageSize, totalItems)
	return &result, nil
}
