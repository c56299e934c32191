package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Hieu-vn/Attendance-tracking-API/config"
	"github.com/Hieu-vn/Attendance-tracking-API/models"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

// InterfaceMQTTRecService 定义识别事件桥接服务接口
type InterfaceMQTTRecService interface {
	Connect() error
	Disconnect()
	SubscribeToTopics() error
}

// MQTTRecService 订阅人脸闸机的识别事件主题，把RecPush负载备份成
// JSON文件并转发给API处理端点。转发是至多一次：失败只记日志，不
// 重试，文件备份是带外的恢复手段。
type MQTTRecService struct {
	Config         *config.Config
	Client         mqtt.Client
	HTTPClient     *http.Client
	IsConnected    bool
	connectedMutex sync.RWMutex // 保护IsConnected字段的读写
}

// 识别事件主题模板，deviceID逐个填入
const recTopicTemplate = "mqtt/face/%s/Rec"

// NewMQTTRecService 创建一个新的识别事件桥接服务
func NewMQTTRecService(cfg *config.Config) InterfaceMQTTRecService {
	service := &MQTTRecService{
		Config: cfg,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		IsConnected: false,
	}

	// 设置MQTT客户端
	service.setupMQTTClient()

	return service
}

// setupMQTTClient 设置MQTT客户端
func (s *MQTTRecService) setupMQTTClient() {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(s.Config.MQTTBrokerURL)
	// 使用唯一的客户端ID，避免同一服务多实例冲突
	opts.SetClientID(fmt.Sprintf("%s-%s-%d", s.Config.MQTTClientID, uuid.New().String()[:8], time.Now().UnixNano()))
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(time.Second * 30)
	opts.SetKeepAlive(time.Second * 60)
	opts.SetPingTimeout(time.Second * 10)
	opts.SetCleanSession(true)

	// 添加用户名和密码
	if s.Config.MQTTUsername != "" {
		opts.SetUsername(s.Config.MQTTUsername)
		opts.SetPassword(s.Config.MQTTPassword)
	}

	// 设置连接丢失回调
	opts.SetConnectionLostHandler(func(client mqtt.Client, err error) {
		config.Warning("[MQTT] 连接丢失: %v", err)
		s.connectedMutex.Lock()
		s.IsConnected = false
		s.connectedMutex.Unlock()
	})

	// 设置连接建立回调，重连后重新订阅
	opts.SetOnConnectHandler(func(client mqtt.Client) {
		config.Info("[MQTT] 成功连接到 %s", s.Config.MQTTBrokerURL)
		s.connectedMutex.Lock()
		s.IsConnected = true
		s.connectedMutex.Unlock()

		if err := s.SubscribeToTopics(); err != nil {
			config.Error("[MQTT] 订阅主题失败: %v", err)
		}
	})

	// 设置重连回调
	opts.SetReconnectingHandler(func(client mqtt.Client, opts *mqtt.ClientOptions) {
		config.Info("[MQTT] 正在尝试重连...")
	})

	// 创建客户端
	s.Client = mqtt.NewClient(opts)
}

// Connect 连接到MQTT服务器，带有重试机制
func (s *MQTTRecService) Connect() error {
	config.Info("[MQTT] 正在连接到 %s...", s.Config.MQTTBrokerURL)

	// 如果已连接，直接返回
	s.connectedMutex.RLock()
	isConnected := s.IsConnected && s.Client.IsConnected()
	s.connectedMutex.RUnlock()

	if isConnected {
		return nil
	}

	// 最大重试次数和指数退避策略
	maxRetries := 5
	var err error

	for i := 0; i < maxRetries; i++ {
		token := s.Client.Connect()
		if token.WaitTimeout(5*time.Second) && token.Error() == nil {
			s.connectedMutex.Lock()
			s.IsConnected = true
			s.connectedMutex.Unlock()
			config.Info("[MQTT] 成功连接到 %s", s.Config.MQTTBrokerURL)
			return nil
		}

		err = token.Error()
		backoffTime := time.Duration(1<<uint(i)) * time.Second // 指数退避: 1s, 2s, 4s, 8s, 16s
		config.Warning("[MQTT] 连接尝试 %d/%d 失败: %v, 将在 %v 后重试", i+1, maxRetries, err, backoffTime)
		time.Sleep(backoffTime)
	}

	return fmt.Errorf("[MQTT] 连接失败，已尝试 %d 次: %v", maxRetries, err)
}

// Disconnect 断开与MQTT服务器的连接
func (s *MQTTRecService) Disconnect() {
	if s.Client != nil && s.Client.IsConnected() {
		s.Client.Disconnect(250)
	}
}

// SubscribeToTopics 订阅配置中所有设备的识别事件主题
func (s *MQTTRecService) SubscribeToTopics() error {
	deviceIDs := s.Config.GetMQTTDeviceIDs()
	if len(deviceIDs) == 0 {
		config.Warning("[MQTT] 未配置设备ID，不订阅任何主题")
		return nil
	}

	// QoS 1确保消息至少被传递一次
	qos := byte(1)

	for _, deviceID := range deviceIDs {
		topic := fmt.Sprintf(recTopicTemplate, deviceID)
		if token := s.Client.Subscribe(topic, qos, s.handleRecMessage); token.Wait() && token.Error() != nil {
			return fmt.Errorf("订阅主题失败 [%s]: %v", topic, token.Error())
		}
		config.Info("[MQTT] 已订阅主题: %s", topic)
	}
	return nil
}

// handleRecMessage 处理一条识别事件消息
func (s *MQTTRecService) handleRecMessage(client mqtt.Client, msg mqtt.Message) {
	config.Info("[MQTT] 收到消息: topic=%s", msg.Topic())

	payload := msg.Payload()

	var recMsg models.RecPushMessage
	if err := json.Unmarshal(payload, &recMsg); err != nil {
		config.Error("[MQTT] 解析消息失败: %v", err)
		return
	}

	// 只处理人脸识别事件
	if recMsg.Operator != models.OperatorRecPush {
		config.Warning("[MQTT] 跳过非RecPush消息: operator=%s", recMsg.Operator)
		return
	}

	// 先落盘备份，再转发
	if path, err := s.saveBackup(payload, recMsg.Info); err != nil {
		config.Error("[MQTT] 备份识别事件失败: %v", err)
	} else {
		config.Info("[MQTT] 已备份识别事件: %s", path)
	}

	s.forwardToAPI(payload)
}

// saveBackup 把原始负载备份为JSON文件，文件名取事件时间戳
func (s *MQTTRecService) saveBackup(payload []byte, info json.RawMessage) (string, error) {
	if err := os.MkdirAll(s.Config.DataDir, 0755); err != nil {
		return "", err
	}

	eventInfo := ParseRecEventInfo(info)
	timestamp := eventInfo.Time.String()
	if timestamp == "" {
		timestamp = time.Now().Format("2006-01-02 15:04:05")
	}

	// 时间戳转成可作为文件名的形式
	safeTimestamp := strings.NewReplacer(" ", "_", ":", "-").Replace(timestamp)
	path := filepath.Join(s.Config.DataDir, fmt.Sprintf("Rec_%s.json", safeTimestamp))

	if err := os.WriteFile(path, payload, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// forwardToAPI 把事件转发给处理端点。至多一次投递：失败只记日志，
// 事件不重试。
func (s *MQTTRecService) forwardToAPI(payload []byte) {
	resp, err := s.HTTPClient.Post(s.Config.ProcessAPIURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		config.Error("[MQTT] 转发识别事件失败: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		config.Error("[MQTT] 转发识别事件被拒绝: status=%d", resp.StatusCode)
		return
	}
	config.Info("[MQTT] 识别事件已转发: status=%d", resp.StatusCode)
}
