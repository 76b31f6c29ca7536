package confirmation

type SendRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Industry string `json:"industry"`
}

type SendResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
