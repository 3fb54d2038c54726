// Package httpapi is the public, read-only content API: the education
// library, the crisis toolkit, coping strategies, support resources and
// presigned links to audio tracks.
package httpapi

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/hopekeeper/internal/content"
	"github.com/dmitrijs2005/hopekeeper/internal/logging"
)

type AudioLinker interface {
	TrackURL(ctx context.Context, id string) (string, error)
}

func NewRouter(l logging.Logger, catalog *content.Catalog, audio AudioLinker) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))
	r.Use(RequestLogger(l))

	h := &handlers{catalog: catalog, audio: audio, logger: l}

	v1 := r.Group("/api/v1")
	{
		v1.GET("/education", h.listEducation)
		v1.GET("/education/:id", h.getEducation)
		v1.GET("/crisis", h.crisis)
		v1.GET("/coping", h.listCoping)
		v1.GET("/coping/:id", h.getCoping)
		v1.GET("/resources", h.resources)
		v1.GET("/audio/:id", h.audioURL)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	return r
}
