package services

import (
	"encoding/json"
	"testing"

	"github.com/Hieu-vn/Attendance-tracking-API/models"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRecEvent(t *testing.T) {
	raw := json.RawMessage(`{
		"personId": "7",
		"idCard": 1024,
		"persionName": "张三",
		"RecordID": "rec-001",
		"time": "2024-05-01 08:00:00",
		"VerifyStatus": "1",
		"direction": "in",
		"deviceID": "gate-01",
		"facesluiceName": "东门闸机",
		"OpendoorWay": "1",
		"PushType": "0"
	}`)

	info := ParseRecEventInfo(raw)
	record := NormalizeRecEvent(info, raw)

	assert.Equal(t, "7", record.PersonID)
	assert.Equal(t, "rec-001", record.RecordID)
	assert.Equal(t, "2024-05-01 08:00:00", record.Timestamp)
	assert.Equal(t, "in", record.Direction)
	assert.Equal(t, "1", record.VerifyStatus)
	assert.Equal(t, "东门闸机", record.DeviceName)
	assert.Equal(t, "1", record.OpenDoorWay)
	assert.Equal(t, "0", record.PushType)
	// 原始负载逐字节保留
	assert.Equal(t, string(raw), record.RawData)
}

func TestNormalizeRecEventMissingFields(t *testing.T) {
	raw := json.RawMessage(`{"personId": "7"}`)

	record := NormalizeRecEvent(ParseRecEventInfo(raw), raw)

	assert.Equal(t, "7", record.PersonID)
	assert.Equal(t, "", record.RecordID)
	assert.Equal(t, "", record.Timestamp)
	assert.Equal(t, "", record.Direction)
	assert.Nil(t, record.EmployeeID)
}

func TestNormalizeRecEventMalformedInfo(t *testing.T) {
	// 解析失败不报错，全部字段降级为空
	raw := json.RawMessage(`not-json`)

	record := NormalizeRecEvent(ParseRecEventInfo(raw), raw)

	assert.Equal(t, "", record.PersonID)
	assert.Equal(t, "not-json", record.RawData)
}

func TestNormalizeBatchRecord(t *testing.T) {
	rec := &models.BatchRecord{
		IDCard:         "1024",
		PersonName:     "张三",
		PersonID:       "7",
		RecordID:       "rec-001",
		Time:           "2024-05-01 08:00:00",
		VerifyStatus:   "1",
		Direction:      "in",
		FacesluiceName: "东门闸机",
		PushType:       "0",
		OpendoorWay:    "1",
		MQTT:           json.RawMessage(`{"personId":"7","time":"2024-05-01 08:00:00"}`),
	}

	record := NormalizeBatchRecord(rec)

	assert.Equal(t, "7", record.PersonID)
	assert.Equal(t, "rec-001", record.RecordID)
	assert.Equal(t, "2024-05-01 08:00:00", record.Timestamp)
	assert.Equal(t, "东门闸机", record.DeviceName)
	assert.Equal(t, `{"personId":"7","time":"2024-05-01 08:00:00"}`, record.RawData)
}
