package dto

// SignUpForm represents the registration form submission
type SignUpForm struct {
	Username  string `form:"username" binding:"required"`
	Password  string `form:"password"`
	Confirm   string `form:"confirm"`
	Firstname string `form:"firstname" binding:"required"`
	Lastname  string `form:"lastname" binding:"required"`
}

// LogInForm represents the credential submission
type LogInForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// PostForm represents the post-composition form submission
type PostForm struct {
	Message string `form:"message"`
}

// TrialForm represents the membership-code form submission
type TrialForm struct {
	Trial string `form:"trial"`
}
