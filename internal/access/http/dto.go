package http

// OpenRequest is the payload for an open attempt. The credential travels in
// the Authorization header, not the body.
type OpenRequest struct {
	BookingID string `json:"booking_id" binding:"required,uuid"`
}

// OpenResponse is returned when the open was authorized.
type OpenResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	BookingID string `json:"booking_id"`
}
