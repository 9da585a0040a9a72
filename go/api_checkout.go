package shopserver

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	checkouthttpmapper "github.com/Apurer/go-gin-shop-api/internal/domains/checkout/adapters/http/mapper"
	checkoutports "github.com/Apurer/go-gin-shop-api/internal/domains/checkout/ports"
)

type CheckoutAPI struct {
	service checkoutports.Service
}

func NewCheckoutAPI(service checkoutports.Service) CheckoutAPI {
	return CheckoutAPI{service: service}
}

// Post /checkout/:userId
// Prices the cart, reports the purchase and empties the cart
func (api *CheckoutAPI) Checkout(c *gin.Context) {
	var payload checkouthttpmapper.CheckoutRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&payload); err != nil && !errors.Is(err, io.EOF) {
			respondBinding(c, err)
			return
		}
	}
	visitorCode := strings.TrimSpace(payload.VisitorCode)
	if visitorCode == "" {
		visitorCode = ReturningVisitorCode(c)
	}
	order, err := api.service.Checkout(c.Request.Context(), c.Param("userId"), visitorCode)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, checkouthttpmapper.FromDomainOrder(order))
}
