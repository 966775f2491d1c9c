package models

// ListingModel is a marketplace listing for study materials.
type ListingModel struct {
	Base
	Title       string `json:"title"       gorm:"not null"`
	Description string `json:"description" gorm:"type:text;not null"`
	Price       string `json:"price"       gorm:"size:32;not null"`
	Category    string `json:"category"    gorm:"size:100;not null"`
	Uploader    string `json:"uploader"    gorm:"not null"`
	FileURL     string `json:"file_url"    gorm:"size:1000"`
}

func (ListingModel) TableName() string { return "marketplace_listings" }

// WalletUserModel identifies a marketplace participant by wallet address.
type WalletUserModel struct {
	Base
	Address string `json:"address" gorm:"uniqueIndex;size:255"`
	Name    string `json:"name"`
}

func (WalletUserModel) TableName() string { return "wallet_users" }

// PurchaseModel joins a wallet user to a purchased listing.
type PurchaseModel struct {
	Base
	UserID    string `json:"user_id"    gorm:"index;not null"`
	ListingID string `json:"listing_id" gorm:"index;not null"`
}

func (PurchaseModel) TableName() string { return "purchases" }
