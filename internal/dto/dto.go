package dto

import (
	"github.com/shopspring/decimal"

	"electronics-store/internal/model"
)

type RegisterRequest struct {
	Name           string `json:"name"`
	Surname        string `json:"surname"`
	Patronymic     string `json:"patronymic"`
	Login          string `json:"login"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	PasswordRepeat string `json:"password_repeat"`
	Rules          bool   `json:"rules"`
}

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type ProfileUpdateRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Patronymic string `json:"patronymic"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
}

type CartAddRequest struct {
	ProductID uint `json:"product_id"`
	// Delta is added to the current quantity; negative values remove.
	Delta int `json:"delta"`
}

type CartLine struct {
	Product   *model.Product  `json:"product"`
	Quantity  int             `json:"qty"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type CartView struct {
	Items []CartLine      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

type CheckoutRequest struct {
	// Password is re-checked before the order is committed.
	Password string `json:"password"`
}

type CheckoutResult struct {
	OrderID uint            `json:"order_id"`
	Total   decimal.Decimal `json:"total"`
}

type BulkOrdersRequest struct {
	OrderIDs []uint `json:"order_ids"`
	Reason   string `json:"reason"`
}

type ProductRequest struct {
	CategoryID uint            `json:"category_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Year       int             `json:"year"`
	Country    string          `json:"country"`
	Model      string          `json:"model"`
	Stock      *int            `json:"stock"`
	InStock    *bool           `json:"in_stock"`
}

type CategoryRequest struct {
	Name string `json:"name"`
}
