package i

import "github.com/gin-gonic/gin"

type Controller interface {
	RegisterPublic(*gin.RouterGroup)
	RegisterProtected(*gin.RouterGroup)
}

// RootController is implemented by controllers that also serve routes outside
// the versioned base URL.
type RootController interface {
	RegisterRoot(gin.IRoutes)
}
