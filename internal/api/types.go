// ABOUTME: Client-side projections of Book Reader backend resources
// ABOUTME: Mirrors the JSON shapes served by the admin REST endpoints

package api

// BookStatus is the moderation state of a book
type BookStatus string

const (
	StatusPending  BookStatus = "pending"
	StatusApproved BookStatus = "approved"
	StatusRejected BookStatus = "rejected"
)

// Role values returned in user records
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Book is a shared book awaiting or past moderation
type Book struct {
	ID             int        `json:"id"`
	Title          string     `json:"title"`
	Author         string     `json:"author"`
	Description    *string    `json:"description"`
	CategoryID     int        `json:"category_id"`
	Category       *Category  `json:"category,omitempty"`
	Pages          int        `json:"pages"`
	FileType       string     `json:"file_type"`
	FilePath       string     `json:"file_path"`
	CoverImage     *string    `json:"cover_image"`
	Status         BookStatus `json:"status"`
	UserID         int        `json:"user_id"`
	SubmittedBy    *User      `json:"submitted_by,omitempty"`
	DownloadsCount int        `json:"downloads_count"`
	CreatedAt      string     `json:"created_at"`
	UpdatedAt      string     `json:"updated_at"`
	DeletedAt      *string    `json:"deleted_at"`
}

// Category groups books; deletion does not cascade (server-enforced)
type Category struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	BooksCount int    `json:"books_count,omitempty"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// User is a read-only view of a platform account
type User struct {
	ID              int     `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	Role            string  `json:"role"`
	EmailVerifiedAt *string `json:"email_verified_at"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

// DashboardStats holds the aggregate counters for the overview screen
type DashboardStats struct {
	TotalUsers      int `json:"total_users"`
	TotalBooks      int `json:"total_books"`
	ApprovedBooks   int `json:"approved_books"`
	PendingBooks    int `json:"pending_books"`
	RejectedBooks   int `json:"rejected_books"`
	TotalCategories int `json:"total_categories"`
}

// LoginResponse is the POST /auth/login payload
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// BookPage is the paginated book list envelope.
// The backend's flat pagination shape is canonical; the alternate
// meta/links shape is not supported.
type BookPage struct {
	Data        []Book `json:"data"`
	CurrentPage int    `json:"current_page"`
	LastPage    int    `json:"last_page"`
	PerPage     int    `json:"per_page"`
	Total       int    `json:"total"`
}

// BookFilters are the optional, additive book list query parameters
type BookFilters struct {
	Status     BookStatus
	CategoryID int
	Search     string
	Page       int
	PerPage    int
}

// BookUpdate carries the editable fields of a book; zero values are omitted
type BookUpdate struct {
	Title       string `json:"title,omitempty"`
	Author      string `json:"author,omitempty"`
	Description string `json:"description,omitempty"`
	CategoryID  int    `json:"category_id,omitempty"`
	Pages       int    `json:"pages,omitempty"`
}
