package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/handlers"
)

type ConvertRoutes struct {
	handler      *handlers.ConvertHandler
	authenticate gin.HandlerFunc
	limit        gin.HandlerFunc
}

func NewConvertRoutes(handler *handlers.ConvertHandler, authenticate, limit gin.HandlerFunc) *ConvertRoutes {
	return &ConvertRoutes{handler: handler, authenticate: authenticate, limit: limit}
}

func (r *ConvertRoutes) RegisterRoutes(router *gin.RouterGroup) {
	convert := router.Group("/convert")
	convert.Use(r.authenticate, r.limit)
	{
		convert.POST("/toER", r.handler.ToER)
		convert.POST("/toSQL", r.handler.ToSQL)
		convert.POST("/foreignKeys", r.handler.ForeignKeys)
		convert.POST("/downloadPDF", r.handler.DownloadPDF)
		convert.POST("/downloadTablePDF", r.handler.DownloadTablePDF)
	}
}
