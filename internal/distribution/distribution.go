package distribution

import "time"

// Item is a receipt line item together with the users assigned to share
// its cost. An item assigned to several users is split equally among them.
type Item struct {
	Name  string   `json:"name"`
	Price float64  `json:"price"`
	Users []string `json:"users"`
}

// User identifies one participant in a distribution
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ItemShare is one user's portion of a single item
type ItemShare struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Share float64 `json:"share"`
}

// UserShare holds one user's computed total and the item shares behind it
type UserShare struct {
	UserID   string      `json:"user_id"`
	UserName string      `json:"user_name"`
	Amount   float64     `json:"amount"`
	Items    []ItemShare `json:"items"`
}

// Distribution records how one receipt's items were split among users
type Distribution struct {
	ID          string      `json:"id"`
	ReceiptName string      `json:"receipt_name"`
	TotalAmount float64     `json:"total_amount"`
	Items       []Item      `json:"items"`
	Users       []User      `json:"users"`
	Shares      []UserShare `json:"shares"`
	CreatedAt   time.Time   `json:"created_at"`
}
