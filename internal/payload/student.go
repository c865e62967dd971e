package payload

type StudentRequest struct {
	FirstName   string `json:"first_name"    validate:"required"`
	LastName    string `json:"last_name"     validate:"required"`
	DateOfBirth string `json:"date_of_birth" validate:"required"`
	Email       string `json:"email"         validate:"required,email"`
	Phone       string `json:"phone"         validate:"required"`
	CollegeName string `json:"college_name"  validate:"required"`
	Degree      string `json:"degree"        validate:"required"`
	Course      string `json:"course"        validate:"required"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Errors []string `json:"errors"`
}

type PageResponse struct {
	Page string `json:"page"`
	User string `json:"user,omitempty"`
}
