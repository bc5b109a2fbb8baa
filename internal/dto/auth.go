package dto

// SignUpRequest is the JSON body for POST /auth/sign-up.
type SignUpRequest struct {
	FullName string `json:"fullname" binding:"required,min=1,max=120"`
	Username string `json:"username" binding:"required,min=1,max=60"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignInRequest is the JSON body for POST /auth/sign-in.
type SignInRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}
