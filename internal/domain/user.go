package domain

import "context"

// TotalCategoryID marks a monthly row as the month's total budget. Every
// other categoryId references an entry in the user catalog.
const TotalCategoryID int64 = 1

// CategoryBudget is the allocation embedded in a monthly row. Its ID mirrors
// the owning row's ID.
type CategoryBudget struct {
	ID         int64 `json:"id"`
	CategoryID int64 `json:"categoryId"`
	Budget     int64 `json:"budget"`
}

// MonthlyCategory is one row of a user's monthly budget: either the total
// budget for a month (categoryId == TotalCategoryID) or a sub-category
// allocation within it. Month is stored as a date string; only its
// year-month prefix is significant.
type MonthlyCategory struct {
	ID         int64          `json:"id"`
	Month      string         `json:"month"`
	Categories CategoryBudget `json:"categories"`
}

// IsTotal reports whether this row is a month's total-budget row.
func (mc MonthlyCategory) IsTotal() bool {
	return mc.Categories.CategoryID == TotalCategoryID
}

type User struct {
	ID                int64             `json:"id"`
	Fullname          string            `json:"fullname"`
	Email             string            `json:"email"`
	Password          string            `json:"password"`
	Phone             string            `json:"phone"`
	Gender            bool              `json:"gender"`
	Status            bool              `json:"status"`
	MonthlyCategories []MonthlyCategory `json:"monthlyCategories"`
}

// Clone returns a deep copy. Budget mutations work on a copy so a failed
// persistence call leaves the session's user untouched.
func (u *User) Clone() *User {
	clone := *u
	clone.MonthlyCategories = make([]MonthlyCategory, len(u.MonthlyCategories))
	copy(clone.MonthlyCategories, u.MonthlyCategories)
	return &clone
}

type UserRepository interface {
	List(ctx context.Context) ([]*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	Create(ctx context.Context, user *User) (*User, error)
	Replace(ctx context.Context, user *User) (*User, error)
	UpdateStatus(ctx context.Context, id int64, status bool) error
}
