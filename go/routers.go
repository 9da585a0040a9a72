// Package shopserver is the HTTP transport of the shop API.
package shopserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the shop routes to an existing engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodPatch:
			router.PATCH(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	return router
}

// DefaultHandleFunc answers routes whose handler is not wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

type ApiHandleFunctions struct {
	// Routes for the DefaultAPI part of the API
	DefaultAPI DefaultAPI
	// Routes for the CatalogAPI part of the API
	CatalogAPI CatalogAPI
	// Routes for the CartAPI part of the API
	CartAPI CartAPI
	// Routes for the CheckoutAPI part of the API
	CheckoutAPI CheckoutAPI
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			"Index",
			http.MethodGet,
			"/",
			handleFunctions.DefaultAPI.Index,
		},
		{
			"Health",
			http.MethodGet,
			"/health",
			handleFunctions.DefaultAPI.Health,
		},
		{
			"ListProducts",
			http.MethodGet,
			"/products",
			handleFunctions.CatalogAPI.ListProducts,
		},
		{
			"GetProduct",
			http.MethodGet,
			"/products/:id",
			handleFunctions.CatalogAPI.GetProduct,
		},
		{
			"ListCategories",
			http.MethodGet,
			"/categories",
			handleFunctions.CatalogAPI.ListCategories,
		},
		{
			"ProductsByCategory",
			http.MethodGet,
			"/products/category/:category",
			handleFunctions.CatalogAPI.ProductsByCategory,
		},
		{
			"SearchProducts",
			http.MethodGet,
			"/products/search/:query",
			handleFunctions.CatalogAPI.SearchProducts,
		},
		{
			"GetCart",
			http.MethodGet,
			"/cart/:userId",
			handleFunctions.CartAPI.GetCart,
		},
		{
			"AddCartItem",
			http.MethodPost,
			"/cart/:userId",
			handleFunctions.CartAPI.AddItem,
		},
		{
			"RemoveCartItem",
			http.MethodDelete,
			"/cart/:userId/:productId",
			handleFunctions.CartAPI.RemoveItem,
		},
		{
			"UpdateCartQuantity",
			http.MethodPut,
			"/cart/:userId/:productId",
			handleFunctions.CartAPI.UpdateQuantity,
		},
		{
			"Checkout",
			http.MethodPost,
			"/checkout/:userId",
			handleFunctions.CheckoutAPI.Checkout,
		},
	}
}
