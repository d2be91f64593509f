package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "new"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// CanBeDeleted reports whether a user may still remove the order entirely.
// Only fresh orders qualify; anything past "new" is already in fulfilment.
func (s OrderStatus) CanBeDeleted() bool {
	return s == OrderStatusNew
}

// IsTerminal reports whether cancellation is a no-op for the status.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCancelled || s == OrderStatusDelivered
}

type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Slug string `gorm:"size:50;uniqueIndex;not null" json:"slug"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`

	Products []Product `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
}

type Product struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	CategoryID uint            `gorm:"index;not null" json:"category_id"`
	Name       string          `gorm:"size:200;not null" json:"name"`
	Slug       string          `gorm:"size:220;uniqueIndex;not null" json:"slug"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Year       int             `gorm:"not null" json:"year"`
	Country    string          `gorm:"size:100;not null" json:"country"`
	Model      string          `gorm:"size:100;not null" json:"model"`
	Stock      int             `gorm:"not null;default:0" json:"stock"`
	InStock    bool            `gorm:"not null;default:true" json:"in_stock"`
	CreatedAt  time.Time       `json:"created_at"`

	Category *Category `json:"category,omitempty"`
}

type Order struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	UserID             uint            `gorm:"index;not null" json:"user_id"`
	TotalPrice         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_price"`
	Status             OrderStatus     `gorm:"size:20;index;not null;default:new" json:"status"`
	CancellationReason *string         `gorm:"size:500" json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`

	Items []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

type OrderItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	OrderID   uint `gorm:"index;not null" json:"order_id"`
	ProductID uint `gorm:"index;not null" json:"product_id"`
	Quantity  int  `gorm:"not null" json:"quantity"`
	// Price is a snapshot of the unit price at purchase time. Later price
	// changes on the product never touch it.
	Price decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`

	Product *Product `gorm:"constraint:OnDelete:RESTRICT" json:"product,omitempty"`
}

// LineTotal is the snapshot unit price multiplied by quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Login        string    `gorm:"size:150;uniqueIndex;not null" json:"login"`
	Email        string    `gorm:"size:254;uniqueIndex;not null" json:"email"`
	FirstName    string    `gorm:"size:100;not null" json:"first_name"`
	LastName     string    `gorm:"size:100;not null" json:"last_name"`
	PasswordHash string    `gorm:"size:128;not null" json:"-"`
	IsStaff      bool      `gorm:"not null;default:false" json:"is_staff"`
	CreatedAt    time.Time `json:"created_at"`

	Profile *UserProfile `json:"profile,omitempty"`
}

// UserProfile is created in the same transaction as its User, so every
// account is guaranteed to carry exactly one.
type UserProfile struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	Patronymic *string    `gorm:"size:100" json:"patronymic,omitempty"`
	Phone      *string    `gorm:"size:20" json:"phone,omitempty"`
	BirthDate  *time.Time `json:"birth_date,omitempty"`
	Address    *string    `gorm:"size:500" json:"address,omitempty"`
	Avatar     *string    `gorm:"size:255" json:"avatar,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// UserSession is an append-only audit row for one login. Logout flips
// IsActive, nothing ever deletes these.
type UserSession struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"uniqueIndex:idx_user_session;not null" json:"user_id"`
	SessionKey   string    `gorm:"size:40;uniqueIndex:idx_user_session;not null" json:"session_key"`
	IPAddress    string    `gorm:"size:45;not null" json:"ip_address"`
	UserAgent    string    `gorm:"size:500" json:"user_agent"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `gorm:"autoUpdateTime" json:"last_activity"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
}

// Cart rows are scoped to one login session. The session key is the only
// handle to them: when the session dies the cart is gone with it.
type Cart struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SessionKey string    `gorm:"size:40;uniqueIndex;not null" json:"session_key"`
	UserID     uint      `gorm:"index;not null" json:"user_id"`
	UpdatedAt  time.Time `json:"updated_at"`

	Items []CartItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

type CartItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	CartID    uint `gorm:"uniqueIndex:idx_cart_product;not null" json:"cart_id"`
	ProductID uint `gorm:"uniqueIndex:idx_cart_product;not null" json:"product_id"`
	Quantity  int  `gorm:"not null" json:"quantity"`
}
