package marketplace

type CreateListingDTO struct {
	Title       string `json:"title"       binding:"required"`
	Description string `json:"description" binding:"required"`
	Price       string `json:"price"       binding:"required"`
	Category    string `json:"category"    binding:"required"`
	Uploader    string `json:"uploader"    binding:"required"`
	FileURL     string `json:"fileUrl"`
}

type PurchaseDTO struct {
	Address   string `json:"address"    binding:"required"`
	ListingID string `json:"listing_id" binding:"required"`
	Name      string `json:"name"`
}
