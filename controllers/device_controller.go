package controllers

import (
	"net/http"

	"github.com/Hieu-vn/Attendance-tracking-API/services/container"

	"github.com/gin-gonic/gin"
)

// DeviceController 处理设备相关的请求
type DeviceController struct {
	BaseControllerImpl
}

// NewDeviceController 创建一个新的设备控制器
func (f *ControllerFactory) NewDeviceController(ctx *gin.Context) *DeviceController {
	return &DeviceController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// HandleDeviceFunc 返回一个处理设备请求的Gin处理函数
func HandleDeviceFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewDeviceController(ctx)

		switch method {
		case "getDevices":
			controller.GetDevices()
		default:
			ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "无效的方法"})
		}
	}
}

// 1. GetDevices 获取所有已知设备
// @Summary      Get Devices
// @Description  Get all devices seen by the system ordered by name
// @Tags         Device
// @Accept       json
// @Produce      json
// @Success      200  {array}   models.Device
// @Failure      500  {object}  ErrorResponse
// @Router       /devices [get]
func (c *DeviceController) GetDevices() {
	deviceService := c.Container.GetDeviceService()

	devices, err := deviceService.GetAllDevices()
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	c.Context.JSON(http.StatusOK, devices)
}
