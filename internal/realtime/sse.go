package realtime

import (
	"io"

	"github.com/gin-gonic/gin"
)

// GET /rooms/:id/events — server-sent events stream of room notifications.
// Purely advisory: clients re-fetch the room state on every event.
func ServeSSE(broker *Broker) gin.HandlerFunc {
	return func(c *gin.Context) {
		roomID := c.Param("id")
		ch, cancel := broker.Subscribe(roomID)
		defer cancel()

		c.Writer.Header().Set("Cache-Control", "no-cache")
		c.Writer.Header().Set("Connection", "keep-alive")

		c.Stream(func(w io.Writer) bool {
			select {
			case event, ok := <-ch:
				if !ok {
					return false
				}
				c.SSEvent("message", event)
				return true
			case <-c.Request.Context().Done():
				return false
			}
		})
	}
}
