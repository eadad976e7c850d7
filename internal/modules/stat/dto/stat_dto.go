package dto

type CatalogStats struct {
	TotalUsers      int64 `json:"total_users"`
	TotalBooks      int64 `json:"total_books"`
	TotalCategories int64 `json:"total_categories"`
	WaitingComments int64 `json:"waiting_comments"`
	ShelvedBooks    int64 `json:"shelved_books"`
}
