package middleware

import (
	"strconv"

	"github.com/FrijolitoRaza/DIFFYE-ctf-bot/internal/services"

	"github.com/gin-gonic/gin"
)

// Activity stamps every API call into the activity log after the handler
// runs. Handlers that resolved a user id leave it in the context under
// "user_id"; calls without one are recorded unattributed.
func Activity(recorder *services.ActivityRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		var userID int64
		if v, ok := c.Get("user_id"); ok {
			if id, ok := v.(int64); ok {
				userID = id
			}
		}

		recorder.Record(c.Request.Context(), userID, "api:"+c.FullPath(),
			c.Request.Method+" "+strconv.Itoa(c.Writer.Status()))
	}
}
