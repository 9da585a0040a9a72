package shopserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	carthttpmapper "github.com/Apurer/go-gin-shop-api/internal/domains/cart/adapters/http/mapper"
	cartports "github.com/Apurer/go-gin-shop-api/internal/domains/cart/ports"
)

// CartAPI exposes per-user cart mutations. Every endpoint answers with the
// full line item list.
type CartAPI struct {
	service cartports.Service
}

func NewCartAPI(service cartports.Service) CartAPI {
	return CartAPI{service: service}
}

// Get /cart/:userId
// Returns the user's cart
func (api *CartAPI) GetCart(c *gin.Context) {
	cart, err := api.service.GetCart(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, carthttpmapper.FromDomainCart(cart))
}

// Post /cart/:userId
// Adds a product, merging with an existing line
func (api *CartAPI) AddItem(c *gin.Context) {
	var payload carthttpmapper.AddItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBinding(c, err)
		return
	}
	cart, err := api.service.AddItem(c.Request.Context(), c.Param("userId"), *payload.ProductID, payload.QuantityOrDefault())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, carthttpmapper.FromDomainCart(cart))
}

// Delete /cart/:userId/:productId
// Removes a product line
func (api *CartAPI) RemoveItem(c *gin.Context) {
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	cart, err := api.service.RemoveItem(c.Request.Context(), c.Param("userId"), productID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, carthttpmapper.FromDomainCart(cart))
}

// Put /cart/:userId/:productId
// Sets the quantity of an existing line; zero or less removes it
func (api *CartAPI) UpdateQuantity(c *gin.Context) {
	productID, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	var payload carthttpmapper.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBinding(c, err)
		return
	}
	cart, err := api.service.UpdateQuantity(c.Request.Context(), c.Param("userId"), productID, *payload.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, carthttpmapper.FromDomainCart(cart))
}
