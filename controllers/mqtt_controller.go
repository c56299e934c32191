package controllers

import (
	"net/http"

	"github.com/Hieu-vn/Attendance-tracking-API/models"
	"github.com/Hieu-vn/Attendance-tracking-API/services/container"

	"github.com/gin-gonic/gin"
)

// MQTTController 处理设备推送的识别记录
type MQTTController struct {
	BaseControllerImpl
}

// NewMQTTController 创建一个新的MQTT控制器
func (f *ControllerFactory) NewMQTTController(ctx *gin.Context) *MQTTController {
	return &MQTTController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// HandleMQTTFunc 返回一个处理MQTT事件请求的Gin处理函数
func HandleMQTTFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewMQTTController(ctx)

		switch method {
		case "processEvent":
			controller.ProcessEvent()
		default:
			ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "无效的方法"})
		}
	}
}

// 1. ProcessEvent 处理一条设备识别事件。
// 重复的record_id不会重复入库，直接返回已有记录。
// @Summary      Process Recognition Event
// @Description  Persist one RecPush event forwarded from the MQTT bridge
// @Tags         MQTT
// @Accept       json
// @Produce      json
// @Param        event body models.RecPushMessage true "RecPush message"
// @Success      200  {object}  map[string]interface{}
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /mqtt/process [post]
func (c *MQTTController) ProcessEvent() {
	var msg models.RecPushMessage
	if err := c.Context.ShouldBindJSON(&msg); err != nil {
		c.Context.JSON(http.StatusBadRequest, ErrorResponse{Error: "无效的MQTT数据格式"})
		return
	}

	attendanceService := c.Container.GetAttendanceService()

	record, created, err := attendanceService.ProcessRecPush(&msg)
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	if !created {
		c.Context.JSON(http.StatusOK, gin.H{
			"id":      record.ID,
			"message": "记录已存在，跳过",
		})
		return
	}

	c.Context.JSON(http.StatusCreated, gin.H{
		"id":      record.ID,
		"message": "考勤记录处理成功",
	})
}
