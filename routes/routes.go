package routes

import (
	"time"

	"github.com/Hieu-vn/Attendance-tracking-API/controllers"
	_ "github.com/Hieu-vn/Attendance-tracking-API/docs"
	"github.com/Hieu-vn/Attendance-tracking-API/middleware"
	"github.com/Hieu-vn/Attendance-tracking-API/services/container"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter 初始化并返回配置好的路由。
// 服务容器由调用方注入，启动流程（如批量导入）和路由共用同一组服务。
func SetupRouter(serviceContainer *container.ServiceContainer) *gin.Engine {
	// 初始化 Gin
	r := gin.Default()

	// 添加 CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})
	// 设置正确的Content-Type，确保UTF-8编码
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
		c.Next()
	})
	// 添加 Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册路由
	registerRoutes(r, serviceContainer)
	return r
}

// registerRoutes 配置所有API路由
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// API 路由根路径
	api := r.Group("/api")
	// 健康检查
	healthController := controllers.NewHealthCheckController()
	api.GET("/ping", healthController.Ping)

	registerAttendanceRoutes(api, container)
	registerEmployeeRoutes(api, container)
	registerDeviceRoutes(api, container)
	registerMQTTRoutes(api, container)
}

// registerAttendanceRoutes 注册考勤路由
func registerAttendanceRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	attendance := api.Group("/attendance")
	// 报表查询计算量大，加一层短时缓存
	attendance.GET("/report", middleware.Cache(container.GetRedisService(), time.Minute), controllers.HandleAttendanceFunc(container, "getReport"))
	attendance.GET("", controllers.HandleAttendanceFunc(container, "getAttendance"))
	attendance.GET("/employee/:id", controllers.HandleAttendanceFunc(container, "getAttendanceByEmployee"))
	attendance.GET("/date/:date", controllers.HandleAttendanceFunc(container, "getAttendanceByDate"))
	attendance.GET("/:id", controllers.HandleAttendanceFunc(container, "getAttendanceByID"))
	attendance.POST("/manual", controllers.HandleAttendanceFunc(container, "addManual"))
}

// registerEmployeeRoutes 注册员工路由
func registerEmployeeRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	employees := api.Group("/employees")
	employees.GET("", controllers.HandleEmployeeFunc(container, "getEmployees"))
	employees.GET("/:id", controllers.HandleEmployeeFunc(container, "getEmployee"))
	employees.POST("", controllers.HandleEmployeeFunc(container, "createEmployee"))
	employees.PUT("/:id", controllers.HandleEmployeeFunc(container, "updateEmployee"))
}

// registerDeviceRoutes 注册设备路由
func registerDeviceRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	api.GET("/devices", controllers.HandleDeviceFunc(container, "getDevices"))
}

// registerMQTTRoutes 注册MQTT事件路由
func registerMQTTRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	api.POST("/mqtt/process", controllers.HandleMQTTFunc(container, "processEvent"))
}
