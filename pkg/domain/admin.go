package domain

// Admin is a console operator account.
type Admin struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// AdminDraft is the form for a new admin account.
type AdminDraft struct {
	Username string
	Password string
}
