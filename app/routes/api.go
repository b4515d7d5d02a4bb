package routes

import (
	"github.com/shashiranjanraj/storefront/app/controllers"
	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/notifications"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/middleware"
	"github.com/shashiranjanraj/storefront/pkg/rbac"
	"github.com/shashiranjanraj/storefront/pkg/router"
)

// RegisterAPI wires the HTTP surface: public catalog and auth endpoints,
// authenticated cart/checkout/product management, and the admin area.
func RegisterAPI(r *router.Router) {
	users := repositories.NewUserRepository()
	products := repositories.NewProductRepository()
	images := repositories.NewImageRepository()
	carts := repositories.NewCartRepository()
	items := repositories.NewCartItemRepository()
	archive := repositories.NewDiskArchive()
	atomic := repositories.NewAtomic()

	notifier := notifications.WithRetry(notifications.NewMailNotifier())

	userService := services.NewUserService(users)
	productService := services.NewProductService(products, users, images, archive)
	cartService := services.NewCartService(users, products, carts, items, atomic)
	checkoutService := services.NewCheckoutService(users, carts, notifier, atomic)

	authController := controllers.NewAuthController(userService)
	productController := controllers.NewProductController(productService)
	cartController := controllers.NewCartController(cartService, checkoutService)
	adminController := controllers.NewAdminController(userService, users)

	feedController := controllers.NewFeedController()
	feedController.Start()

	api := r.Group("/api")

	// Public surface.
	api.Post("/register", "auth.register", authController.Register)
	api.Post("/login", "auth.login", authController.Login)
	api.Get("/products", "products.index", productController.List)
	api.Get("/products/{id}", "products.show", productController.Get)
	api.Get("/images/{id}", "images.show", productController.Image)
	api.Get("/receipt", "receipt.show", controllers.NewReceiptController().Show())

	if graphqlController, err := controllers.NewGraphQLController(productService); err != nil {
		logger.Error("routes: graphql schema", "error", err)
	} else {
		api.Get("/graphql", "graphql.query", graphqlController.Query)
		api.Post("/graphql", "", graphqlController.Query)
	}

	// Authenticated surface.
	auth := api.Group("", middleware.AuthMiddleware)
	auth.Post("/products", "products.store", productController.Create)
	auth.Put("/products/{id}", "products.update", productController.Update)
	auth.Delete("/products/{id}", "products.delete", productController.Delete)

	auth.Get("/cart", "cart.show", cartController.View)
	auth.Post("/cart/add/{productId}", "cart.add", cartController.Add)
	auth.Post("/cart/remove/{itemId}", "cart.remove", cartController.Remove)
	auth.Post("/checkout", "cart.checkout", cartController.Checkout)

	// Admin area.
	admin := api.Group("/admin", middleware.AuthMiddleware, rbac.HasRole(models.RoleAdmin))
	admin.Get("/users", "admin.users", adminController.Users)
	admin.Post("/users/{id}/ban", "admin.ban", adminController.Ban)
	admin.Put("/users/{id}/roles", "admin.roles", adminController.ChangeRoles)
	admin.Get("/orders/feed", "admin.orders.feed", feedController.Socket)
	admin.Get("/orders/stream", "admin.orders.stream", feedController.Stream)
}
