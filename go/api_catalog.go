package shopserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	cataloghttpmapper "github.com/Apurer/go-gin-shop-api/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/Apurer/go-gin-shop-api/internal/domains/catalog/ports"
)

// CatalogAPI serves read-only product queries.
type CatalogAPI struct {
	service catalogports.Service
}

func NewCatalogAPI(service catalogports.Service) CatalogAPI {
	return CatalogAPI{service: service}
}

// Get /products
// Lists every product in catalog order
func (api *CatalogAPI) ListProducts(c *gin.Context) {
	products, err := api.service.ListProducts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainProducts(products))
}

// Get /products/:id
// Finds a product by id
func (api *CatalogAPI) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	product, err := api.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, catalogports.ErrNotFound) {
			err = &productNotFoundError{id: id, err: err}
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainProduct(product))
}

// Get /categories
// Lists distinct categories in ascending order
func (api *CatalogAPI) ListCategories(c *gin.Context) {
	categories, err := api.service.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	c.JSON(http.StatusOK, categories)
}

// Get /products/category/:category
// Filters products by category, ignoring case
func (api *CatalogAPI) ProductsByCategory(c *gin.Context) {
	products, err := api.service.ProductsByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainProducts(products))
}

// Get /products/search/:query
// Searches name, description and category
func (api *CatalogAPI) SearchProducts(c *gin.Context) {
	products, err := api.service.SearchProducts(c.Request.Context(), c.Param("query"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainProducts(products))
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	value := c.Param(name)
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		respondBadRequest(c, errors.New(name+" must be an integer"))
		return 0, false
	}
	return id, true
}
