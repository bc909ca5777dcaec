// Package proxy forwards public requests to the service that owns them.
package proxy

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Zombiepro89/socialmedia/shared/logger"
	"github.com/Zombiepro89/socialmedia/shared/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// hopHeaders apply to a single connection and are never forwarded.
var hopHeaders = []string{
	"Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Proxy-Connection",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

// stripHopHeaders removes hop-by-hop headers, including any named in
// Connection.
func stripHopHeaders(h http.Header) {
	for _, value := range h.Values("Connection") {
		for _, name := range strings.Split(value, ",") {
			if name = strings.TrimSpace(name); name != "" {
				h.Del(name)
			}
		}
	}
	for _, name := range hopHeaders {
		h.Del(name)
	}
}

// Upstreams are the base URLs of the services behind the gateway.
type Upstreams struct {
	AccountServiceURL string
	MessageServiceURL string
}

type Proxy struct {
	client *http.Client
}

func New(timeout time.Duration) *Proxy {
	return &Proxy{client: &http.Client{Timeout: timeout}}
}

// RegisterRoutes mounts every public route on r, each forwarded to its owner.
func (p *Proxy) RegisterRoutes(r gin.IRouter, up Upstreams) {
	accounts := p.To(up.AccountServiceURL)
	messages := p.To(up.MessageServiceURL)

	// Account routes
	r.POST("/register", accounts)
	r.POST("/login", accounts)

	// Message routes
	r.POST("/messages", messages)
	r.GET("/messages", messages)
	r.GET("/messages/:messageId", messages)
	r.PATCH("/messages/:messageId", messages)
	r.DELETE("/messages/:messageId", messages)
	r.GET("/accounts/:accountId/messages", messages)
}

// To relays the request to serviceURL and copies the response back verbatim.
func (p *Proxy) To(serviceURL string) gin.HandlerFunc {
	serviceURL = strings.TrimSuffix(serviceURL, "/")
	return func(c *gin.Context) {
		// Build target URL
		targetURL := serviceURL + c.Request.URL.Path
		if c.Request.URL.RawQuery != "" {
			targetURL += "?" + c.Request.URL.RawQuery
		}

		var bodyBytes []byte
		if c.Request.Body != nil {
			var err error
			bodyBytes, err = io.ReadAll(c.Request.Body)
			if err != nil {
				middleware.RespondWithError(c, http.StatusBadRequest, "Failed to read request body")
				return
			}
		}

		req, err := http.NewRequestWithContext(c.Request.Context(), c.Request.Method, targetURL, bytes.NewReader(bodyBytes))
		if err != nil {
			middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to create request")
			return
		}

		// Copy headers, including X-Request-ID
		for key, values := range c.Request.Header {
			for _, value := range values {
				req.Header.Add(key, value)
			}
		}
		stripHopHeaders(req.Header)

		resp, err := p.client.Do(req)
		if err != nil {
			logger.Log.Warn("proxy_upstream_failed",
				zap.String("target", targetURL),
				zap.String("request_id", middleware.GetRequestID(c)),
				zap.Error(err),
			)
			middleware.RespondWithError(c, http.StatusBadGateway, "Service unavailable")
			return
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			middleware.RespondWithError(c, http.StatusBadGateway, "Failed to read response")
			return
		}

		stripHopHeaders(resp.Header)

		// Copy response headers; upstream values replace the gateway's own.
		header := c.Writer.Header()
		for key, values := range resp.Header {
			header.Del(key)
			for _, value := range values {
				header.Add(key, value)
			}
		}

		if len(respBody) == 0 {
			c.Status(resp.StatusCode)
			return
		}
		c.Data(resp.StatusCode, resp.Header.Get("Content-Type"), respBody)
	}
}
