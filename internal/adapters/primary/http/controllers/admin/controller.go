package admin

import (
	"crypto/subtle"
	"net/http"
	"strconv"

	"log/slog"

	scheduleUsecase "github.com/admin/tg-bots/ruz-bot/internal/usecases/schedule"
	"github.com/gin-gonic/gin"
)

type Config struct {
	// Token секрет для админских ручек, пустой токен отключает роуты
	Token string `envconfig:"TOKEN"`
}

type Controller struct {
	ScheduleService *scheduleUsecase.Service
	Cfg             *Config
	Log             *slog.Logger
}

func New(
	scheduleService *scheduleUsecase.Service,
	cfg *Config,
	log *slog.Logger,
) *Controller {
	return &Controller{
		ScheduleService: scheduleService,
		Cfg:             cfg,
		Log:             log,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	if c.Cfg == nil || c.Cfg.Token == "" {
		c.Log.Warn("admin token is not configured, admin routes disabled")
		return
	}

	admin := router.Group("/admin", c.checkToken)
	{
		admin.POST("/groups/:id/refresh", c.refreshGroup)
	}
}

// checkToken проверяет заголовок X-Admin-Token
func (c *Controller) checkToken(ctx *gin.Context) {
	token := ctx.GetHeader("X-Admin-Token")
	if subtle.ConstantTimeCompare([]byte(token), []byte(c.Cfg.Token)) != 1 {
		ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "forbidden",
		})
		return
	}
	ctx.Next()
}

// RefreshGroupResponse ответ на принудительное обновление группы
type RefreshGroupResponse struct {
	Success      bool   `json:"success"`
	GroupID      int64  `json:"group_id,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// refreshGroup принудительно обновляет кэш расписания одной группы,
// кулдаун не применяется
func (c *Controller) refreshGroup(ctx *gin.Context) {
	groupID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, RefreshGroupResponse{
			Success:      false,
			ErrorMessage: "invalid group id",
		})
		return
	}

	if err := c.ScheduleService.ForceRefreshGroup(ctx.Request.Context(), groupID); err != nil {
		c.Log.Error("failed to refresh group", "error", err, "group_id", groupID)
		ctx.JSON(http.StatusInternalServerError, RefreshGroupResponse{
			Success:      false,
			GroupID:      groupID,
			ErrorMessage: err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, RefreshGroupResponse{
		Success: true,
		GroupID: groupID,
	})
}
