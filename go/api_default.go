package shopserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// IndexMessage is returned by GET /.
const IndexMessage = "Shopping Backend API"

type DefaultAPI struct {
	serviceName string
}

func NewDefaultAPI(serviceName string) DefaultAPI {
	return DefaultAPI{serviceName: serviceName}
}

// Get /
// API banner
func (api *DefaultAPI) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": IndexMessage})
}

// Get /health
// Liveness probe
func (api *DefaultAPI) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": api.serviceName})
}
