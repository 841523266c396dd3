package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cookatlas/backend/internal/service"
)

// CatalogHandler exposes the plain CRUD resources and link tables.
type CatalogHandler struct {
	catalog *service.Catalog
	logger  *zap.Logger
}

func NewCatalogHandler(catalog *service.Catalog, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, logger: logger}
}

func (h *CatalogHandler) RegisterRoutes(router *gin.RouterGroup) {
	registerResource(router.Group("/tags"), h.catalog.Tags, "Tag", h.logger)
	registerResource(router.Group("/ingredients"), h.catalog.Ingredients, "Ingredient", h.logger)
	registerResource(router.Group("/ratings"), h.catalog.Ratings, "Rating", h.logger)
	registerResource(router.Group("/meal-plans"), h.catalog.MealPlans, "Meal plan", h.logger)
	registerResource(router.Group("/shopping-lists"), h.catalog.ShoppingLists, "Shopping list", h.logger)
	registerResource(router.Group("/engagements"), h.catalog.Engagements, "Engagement", h.logger)

	registerLink(router.Group("/recipe-tags"), h.catalog.RecipeTags, "Recipe tag", h.logger)
	registerLink(router.Group("/recipe-ingredients"), h.catalog.RecipeIngredients, "Recipe ingredient", h.logger)
	registerLink(router.Group("/meal-plan-recipes"), h.catalog.MealPlanRecipes, "Meal plan recipe", h.logger)
	registerLink(router.Group("/shopping-list-ingredients"), h.catalog.ShoppingListIngredients, "Shopping list ingredient", h.logger)
}

func registerResource[T any](group *gin.RouterGroup, res *service.Resource[T], name string, logger *zap.Logger) {
	notFound := name + " not found"

	group.GET("", func(c *gin.Context) {
		items, err := res.List(c.Request.Context())
		if err != nil {
			respondError(c, logger, err, notFound, "Failed to fetch "+name)
			return
		}
		c.JSON(http.StatusOK, items)
	})

	group.GET("/:id", func(c *gin.Context) {
		id, ok := pathID(c, "id", notFound)
		if !ok {
			return
		}
		item, err := res.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, logger, err, notFound, "Failed to fetch "+name)
			return
		}
		c.JSON(http.StatusOK, item)
	})

	group.POST("", func(c *gin.Context) {
		item := new(T)
		if !bindJSON(c, item) {
			return
		}
		if err := res.Create(c.Request.Context(), item); err != nil {
			respondError(c, logger, err, notFound, "Failed to create "+name)
			return
		}
		c.JSON(http.StatusCreated, item)
	})

	group.PUT("/:id", func(c *gin.Context) {
		id, ok := pathID(c, "id", notFound)
		if !ok {
			return
		}
		var fields map[string]interface{}
		if !bindJSON(c, &fields) {
			return
		}
		if _, err := res.Update(c.Request.Context(), id, fields); err != nil {
			respondError(c, logger, err, notFound, "Failed to update "+name)
			return
		}
		c.Status(http.StatusNoContent)
	})

	group.DELETE("/:id", func(c *gin.Context) {
		id, ok := pathID(c, "id", notFound)
		if !ok {
			return
		}
		if err := res.Delete(c.Request.Context(), id); err != nil {
			respondError(c, logger, err, notFound, "Failed to delete "+name)
			return
		}
		c.Status(http.StatusNoContent)
	})
}

// registerLink serves a link table under /:left/:right, named after its
// key columns.
func registerLink[T any](group *gin.RouterGroup, link *service.Link[T], name string, logger *zap.Logger) {
	left, right := link.Columns()
	notFound := name + " not found"
	keyPath := "/:" + left + "/:" + right

	keys := func(c *gin.Context) (uint, uint, bool) {
		l, ok := pathID(c, left, notFound)
		if !ok {
			return 0, 0, false
		}
		r, ok := pathID(c, right, notFound)
		return l, r, ok
	}

	group.GET("", func(c *gin.Context) {
		items, err := link.List(c.Request.Context())
		if err != nil {
			respondError(c, logger, err, notFound, "Failed to fetch "+name)
			return
		}
		c.JSON(http.StatusOK, items)
	})

	group.GET(keyPath, func(c *gin.Context) {
		l, r, ok := keys(c)
		if !ok {
			return
		}
		item, err := link.Get(c.Request.Context(), l, r)
		if err != nil {
			respondError(c, logger, err, notFound, "Failed to fetch "+name)
			return
		}
		c.JSON(http.StatusOK, item)
	})

	group.POST("", func(c *gin.Context) {
		var body map[string]uint
		if !bindJSON(c, &body) {
			return
		}
		if body[left] == 0 || body[right] == 0 {
			errorJSON(c, http.StatusBadRequest, left+" and "+right+" are required", nil)
			return
		}
		item, err := link.Create(c.Request.Context(), body[left], body[right])
		if err != nil {
			respondError(c, logger, err, notFound, "Failed to create "+name)
			return
		}
		c.JSON(http.StatusCreated, item)
	})

	group.DELETE(keyPath, func(c *gin.Context) {
		l, r, ok := keys(c)
		if !ok {
			return
		}
		if err := link.Delete(c.Request.Context(), l, r); err != nil {
			respondError(c, logger, err, notFound, "Failed to delete "+name)
			return
		}
		c.Status(http.StatusNoContent)
	})
}
