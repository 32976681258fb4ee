package client

import "github.com/Sanidhya49/binsavvy-cli/db"

// LoginResponse is the body of a successful login: the token pair plus the
// full user record.
type LoginResponse struct {
	Access  string  `json:"access"`
	Refresh string  `json:"refresh"`
	User    db.User `json:"user"`
}

// RefreshResponse is the body of a successful token refresh. The refresh
// field is optional; an empty value means the old refresh token stays valid.
type RefreshResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// RegisterRequest is the payload for creating a new account.
type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Address     string `json:"address,omitempty"`
}

// ImageRecord is one uploaded waste image as the server reports it.
type ImageRecord struct {
	ID         string  `json:"id"`
	ImageURL   string  `json:"image_url"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Address    string  `json:"address,omitempty"`
	Status     string  `json:"status"`
	Detections int     `json:"detections"`
	UploadedAt string  `json:"uploaded_at,omitempty"`
}

// Analytics is the aggregated detection summary for administrators.
type Analytics struct {
	TotalImages     int            `json:"total_images"`
	ProcessedImages int            `json:"processed_images"`
	PendingImages   int            `json:"pending_images"`
	TotalDetections int            `json:"total_detections"`
	ByCategory      map[string]int `json:"by_category,omitempty"`
}

// Report is one aggregated area report in the government view.
type Report struct {
	ID         string  `json:"id"`
	Area       string  `json:"area"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	ImageCount int     `json:"image_count"`
	Status     string  `json:"status"`
	ReportedAt string  `json:"reported_at,omitempty"`
}

// HealthStatus is the payload of a service health endpoint.
type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service,omitempty"`
	Message string `json:"message,omitempty"`
}
