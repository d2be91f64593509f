package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"electronics-store/internal/handler"
	"electronics-store/internal/middleware"
	"electronics-store/internal/repository"
	"electronics-store/internal/service"
)

type Server struct {
	echo           *echo.Echo
	sessionSecret  string
	userRepo       repository.UserRepository
	accountHandler *handler.AccountHandler
	catalogHandler *handler.CatalogHandler
	cartHandler    *handler.CartHandler
	orderHandler   *handler.OrderHandler
	adminHandler   *handler.AdminHandler
}

func NewServer(
	sessionSecret string,
	userRepo repository.UserRepository,
	accountService service.AccountService,
	catalogService service.CatalogService,
	cartService service.CartService,
	orderService service.OrderService,
	adminService service.AdminService,
) *Server {
	e := echo.New()

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	s := &Server{
		echo:           e,
		sessionSecret:  sessionSecret,
		userRepo:       userRepo,
		accountHandler: handler.NewAccountHandler(accountService),
		catalogHandler: handler.NewCatalogHandler(catalogService),
		cartHandler:    handler.NewCartHandler(cartService),
		orderHandler:   handler.NewOrderHandler(orderService),
		adminHandler:   handler.NewAdminHandler(adminService, catalogService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// -------- public --------
	api.GET("/categories", s.catalogHandler.ListCategories)
	api.GET("/products", s.catalogHandler.ListProducts)
	api.GET("/products/:slug", s.catalogHandler.GetProduct)
	api.POST("/register", s.accountHandler.Register)
	api.POST("/login", s.accountHandler.Login)

	// -------- session --------
	authed := api.Group("", middleware.RequireSession(s.sessionSecret))
	authed.POST("/logout", s.accountHandler.Logout)
	authed.GET("/profile", s.accountHandler.GetProfile)
	authed.POST("/profile/update", s.accountHandler.UpdateProfile)
	authed.GET("/sessions", s.accountHandler.Sessions)
	authed.GET("/cart", s.cartHandler.View)
	authed.POST("/cart/add", s.cartHandler.Add)
	authed.POST("/checkout", s.orderHandler.Checkout)
	authed.GET("/orders", s.orderHandler.List)
	authed.GET("/orders/:id", s.orderHandler.Get)
	authed.POST("/orders/:id/delete", s.orderHandler.Delete)

	// -------- staff --------
	admin := api.Group("/admin",
		middleware.RequireSession(s.sessionSecret),
		middleware.RequireStaff(s.userRepo),
	)
	admin.POST("/orders/confirm", s.adminHandler.BulkConfirm)
	admin.POST("/orders/cancel", s.adminHandler.BulkCancel)
	admin.POST("/categories", s.adminHandler.CreateCategory)
	admin.DELETE("/categories/:slug", s.adminHandler.DeleteCategory)
	admin.POST("/products", s.adminHandler.CreateProduct)
	admin.PUT("/products/:id", s.adminHandler.UpdateProduct)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
