// @title           Attendance Tracking API
// @version         1.0
// @description     Face recognition attendance tracking service fed by MQTT access control devices
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support

// @host      localhost:8080
// @BasePath  /api
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Hieu-vn/Attendance-tracking-API/config"
	"github.com/Hieu-vn/Attendance-tracking-API/models"
	"github.com/Hieu-vn/Attendance-tracking-API/routes"
	"github.com/Hieu-vn/Attendance-tracking-API/services"
	"github.com/Hieu-vn/Attendance-tracking-API/services/container"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	// 初始化日志配置
	if err := config.SetupLogger(); err != nil {
		fmt.Printf("初始化日志配置失败: %v\n", err)
		os.Exit(1)
	}

	// 加载.env文件
	if err := godotenv.Load(); err != nil {
		config.Warning("无法加载.env文件: %v", err)
		// 即使加载失败也继续执行，可能环境变量已经通过其他方式设置
	} else {
		config.Info("成功加载.env文件")
	}

	// 获取配置
	cfg := config.GetConfig()

	// 连接数据库
	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("无法连接数据库: %v", err)
	}

	// 根据配置执行不同的数据库操作
	if cfg.DBMigrationMode == "drop" {
		// 删除并重建表
		log.Println("警告: 在drop模式下运行，将删除并重建所有表")
		if err := dropAndRecreateTables(db); err != nil {
			log.Fatalf("删除并重建表失败: %v", err)
		}
	} else {
		// 默认AutoMigrate，只会添加新列和新表，不会删除或修改列
		log.Println("在标准模式下运行，将只添加新列和新表")
		if err := autoMigrate(db); err != nil {
			log.Fatalf("自动迁移失败: %v", err)
		}
	}

	// 初始化Redis和服务容器
	redisService := services.NewRedisService(cfg)
	serviceContainer := container.NewServiceContainer(db, cfg, redisService.Client)

	// 启动时导入历史批量识别记录，文件不存在时跳过
	runStartupImport(serviceContainer, cfg)

	// 初始化路由
	r := routes.SetupRouter(serviceContainer)

	// 启动服务器
	port := cfg.ServerPort
	config.Info("服务器启动在: http://localhost:%s", port)
	if err := r.Run(":" + port); err != nil {
		config.Error("启动服务器失败: %v", err)
		os.Exit(1)
	}
}

// initDB 初始化数据库连接
func initDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.GetDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	fmt.Println("Database connection established")
	return db, nil
}

// autoMigrate 自动迁移所有模型（只添加新列和新表）
func autoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Employee{},
		&models.AttendanceRecord{},
		&models.Device{},
	)

	if err != nil {
		return err
	}

	fmt.Println("Database migration completed")
	return nil
}

// dropAndRecreateTables 删除并重建所有表
func dropAndRecreateTables(db *gorm.DB) error {
	if err := db.Migrator().DropTable(
		&models.AttendanceRecord{},
		&models.Device{},
		&models.Employee{},
	); err != nil {
		return err
	}

	return autoMigrate(db)
}

// runStartupImport 执行启动时的批量导入，导入失败不阻止服务启动
func runStartupImport(serviceContainer *container.ServiceContainer, cfg *config.Config) {
	importService := serviceContainer.GetImportService()

	result, err := importService.ImportFromFile(cfg.ImportFile)
	if err != nil {
		config.Error("批量导入失败: %v", err)
		return
	}
	if result == nil {
		config.Info("未找到批量导入文件 %s，跳过导入", cfg.ImportFile)
		return
	}

	config.Info("批量导入完成: 新建员工%d 跳过员工%d 新增记录%d 跳过记录%d",
		result.EmployeesCreated, result.EmployeesSkipped,
		result.RecordsInserted, result.RecordsSkipped)
}
