package marketplace

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/studyforge/core/internal/models"
)

// ErrAlreadyPurchased marks a repeat purchase of the same listing.
var ErrAlreadyPurchased = errors.New("already purchased")

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) ListListings(ctx context.Context) ([]models.ListingModel, error) {
	var listings []models.ListingModel
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&listings).Error
	return listings, err
}

func (s *Service) CreateListing(ctx context.Context, dto CreateListingDTO) (*models.ListingModel, error) {
	listing := models.ListingModel{
		Title:       dto.Title,
		Description: dto.Description,
		Price:       dto.Price,
		Category:    dto.Category,
		Uploader:    dto.Uploader,
		FileURL:     dto.FileURL,
	}
	if err := s.db.WithContext(ctx).Create(&listing).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

// RecordPurchase joins a wallet to a listing, creating the wallet user on
// first contact. A repeat purchase returns ErrAlreadyPurchased.
func (s *Service) RecordPurchase(ctx context.Context, dto PurchaseDTO) error {
	user, err := s.findOrCreateUser(ctx, dto.Address, dto.Name)
	if err != nil {
		return err
	}

	var existing models.PurchaseModel
	err = s.db.WithContext(ctx).
		First(&existing, "user_id = ? AND listing_id = ?", user.ID, dto.ListingID).Error
	if err == nil {
		return ErrAlreadyPurchased
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	purchase := models.PurchaseModel{
		UserID:    user.ID,
		ListingID: dto.ListingID,
	}
	return s.db.WithContext(ctx).Create(&purchase).Error
}

// PurchasedListings returns the listings a wallet has bought. An unknown
// address yields an empty slice.
func (s *Service) PurchasedListings(ctx context.Context, address string) ([]models.ListingModel, error) {
	var user models.WalletUserModel
	err := s.db.WithContext(ctx).First(&user, "address = ?", address).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []models.ListingModel{}, nil
		}
		return nil, err
	}

	var purchases []models.PurchaseModel
	if err := s.db.WithContext(ctx).Find(&purchases, "user_id = ?", user.ID).Error; err != nil {
		return nil, err
	}
	if len(purchases) == 0 {
		return []models.ListingModel{}, nil
	}

	ids := make([]string, len(purchases))
	for i, p := range purchases {
		ids[i] = p.ListingID
	}

	var listings []models.ListingModel
	err = s.db.WithContext(ctx).Find(&listings, "id IN ?", ids).Error
	return listings, err
}

func (s *Service) findOrCreateUser(ctx context.Context, address, name string) (*models.WalletUserModel, error) {
	var user models.WalletUserModel
	err := s.db.WithContext(ctx).First(&user, "address = ?", address).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = models.WalletUserModel{Address: address, Name: name}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		// Lost a race on the unique address index; fetch the winner.
		var existing models.WalletUserModel
		if ferr := s.db.WithContext(ctx).First(&existing, "address = ?", address).Error; ferr == nil {
			return &existing, nil
		}
		return nil, err
	}
	return &user, nil
}
