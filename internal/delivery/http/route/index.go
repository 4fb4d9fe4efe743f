package route

import (
	"fmt"
	"net/http"

	httpHandler "catalog/internal/delivery/http/handler"
	"catalog/internal/delivery/http/middleware"
	"catalog/internal/delivery/http/view"
	"catalog/internal/repository"
	service "catalog/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dependencies are the stores and logger the catalog routes are built on.
type Dependencies struct {
	Categories repository.CategoryRepository
	Items      repository.ItemRepository
	Pinger     repository.Pinger
	Logger     *zap.Logger
}

// NewRouter builds a gin engine with middleware, templates and every catalog route.
func NewRouter(deps Dependencies) (*gin.Engine, error) {
	tmpl, err := view.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	app := gin.New()
	app.SetHTMLTemplate(tmpl)
	app.Use(
		middleware.RequestID(),
		middleware.Logger(deps.Logger),
		middleware.Recovery(deps.Logger),
		middleware.ErrorHandler(),
	)

	app.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "error", gin.H{
			"Title":   "Error",
			"Status":  http.StatusNotFound,
			"Message": "Page not found",
		})
	})

	SetupRoute(app, deps)
	return app, nil
}

func SetupRoute(app *gin.Engine, deps Dependencies) {
	// --- 1. SERVICES ---
	categoryService := service.NewCategoryService(deps.Categories, deps.Logger)
	itemService := service.NewItemService(deps.Items, deps.Categories, deps.Logger)
	summaryService := service.NewSummaryService(deps.Categories, deps.Items, deps.Logger)

	// --- 2. HANDLERS ---
	homeHandler := httpHandler.NewHomeHandler(summaryService, deps.Pinger)
	categoryHandler := httpHandler.NewCategoryHandler(categoryService)
	itemHandler := httpHandler.NewItemHandler(itemService)

	// --- 3. ROUTES ---
	app.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/catalog")
	})
	app.GET("/healthz", homeHandler.Health)

	catalog := app.Group("/catalog")
	catalog.GET("", homeHandler.Index)

	// --- Categories ---
	catalog.GET("/categories", categoryHandler.List)
	cat := catalog.Group("/category")
	cat.GET("", categoryHandler.List)
	cat.GET("/create", categoryHandler.CreateForm)
	cat.POST("/create", categoryHandler.Create)
	cat.GET("/:id", categoryHandler.Detail)
	cat.GET("/:id/update", categoryHandler.UpdateForm)
	cat.POST("/:id/update", categoryHandler.Update)
	cat.GET("/:id/delete", categoryHandler.DeleteForm)
	cat.POST("/:id/delete", categoryHandler.Delete)

	// --- Items ---
	catalog.GET("/items", itemHandler.List)
	items := catalog.Group("/item")
	items.GET("", itemHandler.List)
	items.GET("/create", itemHandler.CreateForm)
	items.POST("/create", itemHandler.Create)
	items.GET("/:id", itemHandler.Detail)
	items.GET("/:id/update", itemHandler.UpdateForm)
	items.POST("/:id/update", itemHandler.Update)
	items.GET("/:id/delete", itemHandler.DeleteForm)
	items.POST("/:id/delete", itemHandler.Delete)
}
