package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handler struct {
	staticsFolder string
	sleep         time.Duration
	gatherer      prometheus.Gatherer
}

func New(staticsFolder string, sleep time.Duration, gatherer prometheus.Gatherer) *Handler {
	return &Handler{
		staticsFolder: staticsFolder,
		sleep:         sleep,
		gatherer:      gatherer,
	}
}

// RegisterHandlers wires every route of h on router.
func RegisterHandlers(router *gin.Engine, h *Handler) {
	router.GET("/", h.GetIndex)
	router.GET("/sleep", h.GetSleep)
	router.GET("/xml", h.GetXML)
	router.GET("/xml_error", h.GetXMLError)
	router.GET("/api", h.GetAPI)
	if h.gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{
			EnableOpenMetrics: true,
		})))
	}
	router.NoRoute(h.NotFound)
}
