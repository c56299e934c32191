package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Hieu-vn/Attendance-tracking-API/config"
	"github.com/Hieu-vn/Attendance-tracking-API/services"

	"github.com/joho/godotenv"
)

// 桥接服务入口：订阅人脸闸机的识别事件主题，备份原始负载并转发给
// API处理端点。与API服务分开部署，互不影响重启。
func main() {
	// 初始化日志配置
	if err := config.SetupLogger(); err != nil {
		fmt.Printf("初始化日志配置失败: %v\n", err)
		os.Exit(1)
	}

	// 加载.env文件
	if err := godotenv.Load(); err != nil {
		config.Warning("无法加载.env文件: %v", err)
	} else {
		config.Info("成功加载.env文件")
	}

	// 获取配置
	cfg := config.GetConfig()

	// 连接MQTT服务器，连接成功后自动订阅识别主题
	recService := services.NewMQTTRecService(cfg)
	if err := recService.Connect(); err != nil {
		log.Fatalf("无法连接MQTT服务器: %v", err)
	}

	config.Info("桥接服务已启动，等待识别事件...")

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	config.Info("收到退出信号，正在断开MQTT连接...")
	recService.Disconnect()
	config.Info("桥接服务已退出")
}
