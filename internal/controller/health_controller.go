package controller

import (
	"context"
	"time"

	"quizhub_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type HealthController struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewHealthController(db *gorm.DB, redisClient *redis.Client) *HealthController {
	return &HealthController{db: db, redis: redisClient}
}

// Check reports liveness of the service and its dependencies.
func (ctl *HealthController) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := gin.H{"status": "ok", "time": time.Now().Format(time.RFC3339)}

	sqlDB, err := ctl.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		status["database"] = "down"
		status["status"] = "degraded"
	} else {
		status["database"] = "up"
	}

	if ctl.redis != nil {
		if err := ctl.redis.Ping(ctx).Err(); err != nil {
			status["redis"] = "down"
			status["status"] = "degraded"
		} else {
			status["redis"] = "up"
		}
	}

	util.Success(c, status)
}
