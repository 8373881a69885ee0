package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Estoque-api/internal/application/auth"
	"github.com/jhoicas/Estoque-api/internal/application/inventory"
	"github.com/jhoicas/Estoque-api/internal/application/permission"
	"github.com/jhoicas/Estoque-api/internal/application/report"
	"github.com/jhoicas/Estoque-api/internal/application/usecase"
	domperm "github.com/jhoicas/Estoque-api/internal/domain/permission"
	"github.com/jhoicas/Estoque-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	StoreUC          *usecase.StoreUseCase
	ProductUC        *usecase.ProductUseCase
	CategoryUC       *usecase.CategoryUseCase
	SupplierUC       *usecase.SupplierUseCase
	UserUC           *usecase.UserUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	Stock            *inventory.StockUseCase
	Permissions      *permission.UseCase
	Reports          *report.UseCase
	JWTSecret        string
	Log              *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	can := func(action string) fiber.Handler {
		return RequirePermission(action, deps.Permissions, log)
	}

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	userHandler := NewUserHandler(deps.UserUC, deps.Permissions)
	protected.Get("/me", userHandler.Me)
	users := protected.Group("/users")
	users.Get("/", can(domperm.ActionManageUsers), userHandler.List)
	users.Get("/:userId", can(domperm.ActionManageUsers), userHandler.Get)
	// Los roles globales solo los cambia un SUPER_ADMIN: MANAGE_USERS no basta para auto-promoverse.
	users.Put("/:userId/roles", can(domperm.ActionManageUsers), RequireRole(domperm.GlobalRoleSuperAdmin), userHandler.UpdateRoles)
	users.Put("/:userId/status", can(domperm.ActionManageUsers), userHandler.UpdateStatus)

	// Stores
	storeHandler := NewStoreHandler(deps.StoreUC)
	permHandler := NewPermissionHandler(deps.Permissions)
	stores := protected.Group("/stores")
	stores.Get("/", storeHandler.List)
	stores.Post("/", can(domperm.ActionCreateStore), storeHandler.Create)
	stores.Get("/:storeId", can(domperm.ActionReadStore), storeHandler.Get)
	stores.Put("/:storeId", can(domperm.ActionUpdateStore), storeHandler.Update)
	stores.Get("/:storeId/members", can(domperm.ActionManageStoreUsers), permHandler.ListMembers)
	stores.Put("/:storeId/members/:userId", can(domperm.ActionManageStoreUsers), permHandler.AssignRole)
	stores.Delete("/:storeId/members/:userId", can(domperm.ActionManageStoreUsers), permHandler.RemoveMember)

	// Products
	productHandler := NewProductHandler(deps.ProductUC)
	invHandler := NewInventoryHandler(deps.RegisterMovement, deps.Stock)
	products := stores.Group("/:storeId/products")
	products.Post("/", can(domperm.ActionCreateProduct), productHandler.Create)
	products.Get("/", can(domperm.ActionReadProduct), productHandler.List)
	products.Get("/:id", can(domperm.ActionReadProduct), productHandler.GetByID)
	products.Put("/:id", can(domperm.ActionUpdateProduct), productHandler.Update)
	products.Delete("/:id", can(domperm.ActionDeleteProduct), productHandler.Delete)
	products.Get("/:id/stock", can(domperm.ActionReadStock), invHandler.GetStock)

	// Inventory movements y stock
	movements := stores.Group("/:storeId/movements")
	movements.Post("/", can(domperm.ActionCreateMovement), invHandler.RegisterMovement)
	movements.Get("/", can(domperm.ActionReadMovement), invHandler.ListMovements)
	movements.Post("/:id/verify", can(domperm.ActionVerifyMovement), invHandler.VerifyMovement)
	movements.Post("/:id/cancel", can(domperm.ActionCancelMovement), invHandler.CancelMovement)
	stores.Get("/:storeId/stock/low", can(domperm.ActionReadStock), invHandler.GetLowStock)

	reportHandler := NewReportHandler(deps.Reports)
	stores.Get("/:storeId/reports/summary", can(domperm.ActionReadReports), reportHandler.Summary)
	stores.Get("/:storeId/reports/outflows", can(domperm.ActionReadReports), reportHandler.Outflows)

	// Stock de todas las tiendas (solo roles globales o permisos personalizados sin tienda).
	stock := protected.Group("/stock")
	stock.Get("/low", can(domperm.ActionReadStock), invHandler.GetLowStock)
	stock.Get("/products/:id", can(domperm.ActionReadStock), invHandler.GetStock)

	// Categorías y proveedores
	catalog := NewCatalogHandler(deps.CategoryUC, deps.SupplierUC)
	categories := stores.Group("/:storeId/categories")
	categories.Get("/", can(domperm.ActionReadProduct), catalog.ListCategories)
	categories.Get("/:id", can(domperm.ActionReadProduct), catalog.GetCategory)
	categories.Post("/", can(domperm.ActionManageCategories), catalog.CreateCategory)
	categories.Put("/:id", can(domperm.ActionManageCategories), catalog.UpdateCategory)
	categories.Delete("/:id", can(domperm.ActionManageCategories), catalog.DeleteCategory)

	suppliers := stores.Group("/:storeId/suppliers")
	suppliers.Get("/", can(domperm.ActionReadProduct), catalog.ListSuppliers)
	suppliers.Get("/:id", can(domperm.ActionReadProduct), catalog.GetSupplier)
	suppliers.Post("/", can(domperm.ActionManageSuppliers), catalog.CreateSupplier)
	suppliers.Put("/:id", can(domperm.ActionManageSuppliers), catalog.UpdateSupplier)
	suppliers.Delete("/:id", can(domperm.ActionManageSuppliers), catalog.DeactivateSupplier)

	// Permisos: la autorización depende de la tienda del cuerpo, se resuelve en el handler.
	perms := protected.Group("/permissions")
	perms.Get("/catalogue", permHandler.Catalogue)
	perms.Post("/test", permHandler.Test)
	perms.Get("/users/:userId", permHandler.ListGrants)
	perms.Post("/users/:userId", permHandler.Grant)
	perms.Get("/users/:userId/effective", permHandler.Effective)
	perms.Delete("/:permissionId", permHandler.Revoke)
}
