package crm

type createContactRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Industry string `json:"industry"`
	Source   string `json:"source"`
}

type contactResponse struct {
	ID string `json:"id"`
}
