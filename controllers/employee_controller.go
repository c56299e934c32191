package controllers

import (
	"net/http"
	"strconv"

	"github.com/Hieu-vn/Attendance-tracking-API/models"
	"github.com/Hieu-vn/Attendance-tracking-API/services"
	"github.com/Hieu-vn/Attendance-tracking-API/services/container"

	"github.com/gin-gonic/gin"
)

// EmployeeController 处理员工目录相关的请求
type EmployeeController struct {
	BaseControllerImpl
}

// NewEmployeeController 创建一个新的员工控制器
func (f *ControllerFactory) NewEmployeeController(ctx *gin.Context) *EmployeeController {
	return &EmployeeController{
		BaseControllerImpl: BaseControllerImpl{
			Container: f.Container,
			Context:   ctx,
		},
	}
}

// EmployeeRequest 表示创建员工的请求结构
type EmployeeRequest struct {
	Name       string `json:"name" binding:"required" example:"Nguyen Van A"`
	IDCard     string `json:"id_card" binding:"required" example:"1024"`
	PersonID   string `json:"person_id" binding:"required" example:"P1024"`
	Department string `json:"department" example:"Kỹ thuật"`
	Position   string `json:"position" example:"Kỹ sư"`
}

// EmployeeUpdateRequest 表示更新员工的请求结构，只接受白名单字段
type EmployeeUpdateRequest struct {
	Name       *string `json:"name"`
	Department *string `json:"department"`
	Position   *string `json:"position"`
	Active     *bool   `json:"active"`
}

// HandleEmployeeFunc 返回一个处理员工请求的Gin处理函数
func HandleEmployeeFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	factory := NewControllerFactory(container)

	return func(ctx *gin.Context) {
		controller := factory.NewEmployeeController(ctx)

		switch method {
		case "getEmployees":
			controller.GetEmployees()
		case "getEmployee":
			controller.GetEmployee()
		case "createEmployee":
			controller.CreateEmployee()
		case "updateEmployee":
			controller.UpdateEmployee()
		default:
			ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: "无效的方法"})
		}
	}
}

// 1. GetEmployees 获取所有在职员工
// @Summary      Get Employees
// @Description  Get all active employees ordered by name
// @Tags         Employee
// @Accept       json
// @Produce      json
// @Success      200  {array}   models.Employee
// @Failure      500  {object}  ErrorResponse
// @Router       /employees [get]
func (c *EmployeeController) GetEmployees() {
	employeeService := c.Container.GetEmployeeService()

	employees, err := employeeService.GetAllEmployees()
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	c.Context.JSON(http.StatusOK, employees)
}

// 2. GetEmployee 获取单个员工及其最近考勤记录
// @Summary      Get Employee By ID
// @Description  Get one employee with the 10 most recent attendance records
// @Tags         Employee
// @Accept       json
// @Produce      json
// @Param        id path int true "Employee ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /employees/{id} [get]
func (c *EmployeeController) GetEmployee() {
	id, err := strconv.Atoi(c.Context.Param("id"))
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, ErrorResponse{Error: "无效的员工ID"})
		return
	}

	employeeService := c.Container.GetEmployeeService()

	employee, recent, err := employeeService.GetEmployeeByID(uint(id))
	if err != nil {
		respondServiceError(c.Context, err)
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"id":                employee.ID,
		"person_id":         employee.PersonID,
		"id_card":           employee.IDCard,
		"name":              employee.Name,
		"department":        employee.Department,
		"position":          employee.Position,
		"active":            employee.Active,
		"recent_attendance": recent,
	})
}

// 3. CreateEmployee 创建新员工
// @Summary      Create Employee
// @Description  Create a new employee; person_id and id_card must be unique
// @Tags         Employee
// @Accept       json
// @Produce      json
// @Param        employee body EmployeeRequest true "Employee info"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /employees [post]
func (c *EmployeeController) CreateEmployee() {
	var req EmployeeRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		c.Context.JSON(http.StatusBadRequest, ErrorResponse{Error: "缺少必填字段: name, id_card, person_id"})
		return
	}

	employee := &models.Employee{
		Name:       req.Name,
		IDCard:     req.IDCard,
		PersonID:   req.PersonID,
		Department: req.Department,
		Position:   req.Position,
	}

	employeeService := c.Container.GetEmployeeService()
	if err := employeeService.CreateEmployee(employee); err != nil {
		respondServiceError(c.Context, err)
		return
	}

	c.Context.JSON(http.StatusCreated, gin.H{
		"id":      employee.ID,
		"message": "员工创建成功",
	})
}

// 4. UpdateEmployee 更新员工信息
// @Summary      Update Employee
// @Description  Update whitelisted fields (name, department, position, active)
// @Tags         Employee
// @Accept       json
// @Produce      json
// @Param        id path int true "Employee ID"
// @Param        employee body EmployeeUpdateRequest true "Fields to update"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /employees/{id} [put]
func (c *EmployeeController) UpdateEmployee() {
	id, err := strconv.Atoi(c.Context.Param("id"))
	if err != nil {
		c.Context.JSON(http.StatusBadRequest, ErrorResponse{Error: "无效的员工ID"})
		return
	}

	var req EmployeeUpdateRequest
	if err := c.Context.ShouldBindJSON(&req); err != nil {
		c.Context.JSON(http.StatusBadRequest, ErrorResponse{Error: "无效的请求参数"})
		return
	}

	update := &services.EmployeeUpdate{
		Name:       req.Name,
		Department: req.Department,
		Position:   req.Position,
		Active:     req.Active,
	}

	employeeService := c.Container.GetEmployeeService()
	if err := employeeService.UpdateEmployee(uint(id), update); err != nil {
		respondServiceError(c.Context, err)
		return
	}

	c.Context.JSON(http.StatusOK, gin.H{
		"message": "员工更新成功",
	})
}
