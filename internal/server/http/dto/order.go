package dto

import "time"

// OrderResponse is the JSON shape of a stored order.
type OrderResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	UDID         string    `json:"udid"`
	ImageURL     string    `json:"image_url"`
	Status       string    `json:"status"`
	DownloadLink string    `json:"download_link"`
	Price        string    `json:"price"`
	CreatedAt    time.Time `json:"created_at"`
}

// PageResponse is one page of a filtered listing.
type PageResponse struct {
	Items    []OrderResponse `json:"items"`
	Total    int             `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

// StatusUpdateRequest carries an admin decision for a pending order.
type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}
