package services

import (
	"encoding/json"

	"github.com/Hieu-vn/Attendance-tracking-API/models"
)

// 记录规范化：把设备上报的松散字段收敛成固定形状的考勤记录。
// 这里的函数都是纯函数，不做任何I/O，也从不失败——缺失或畸形的
// 字段一律降级为空值，由下游自行判断。

// ParseRecEventInfo 解析info负载中可识别的字段。解析失败时返回零值，
// 单个字段的类型问题由FlexString自行降级。
func ParseRecEventInfo(raw json.RawMessage) models.RecEventInfo {
	var info models.RecEventInfo
	_ = json.Unmarshal(raw, &info)
	return info
}

// NormalizeRecEvent 将一条识别事件转换为规范的考勤记录。
// raw为原始info负载，逐字节保留在RawData中供审计。
func NormalizeRecEvent(info models.RecEventInfo, raw json.RawMessage) *models.AttendanceRecord {
	return &models.AttendanceRecord{
		PersonID:     info.PersonID.String(),
		RecordID:     info.RecordID.String(),
		Timestamp:    info.Time.String(),
		Direction:    info.Direction.String(),
		VerifyStatus: info.VerifyStatus.String(),
		DeviceName:   info.FacesluiceName.String(),
		OpenDoorWay:  info.OpendoorWay.String(),
		PushType:     info.PushType.String(),
		RawData:      string(raw),
	}
}

// NormalizeBatchRecord 将批量导出文件中的一行转换为规范的考勤记录。
// 导出行的mqtt字段即当时的原始info负载。
func NormalizeBatchRecord(rec *models.BatchRecord) *models.AttendanceRecord {
	return &models.AttendanceRecord{
		PersonID:     rec.PersonID.String(),
		RecordID:     rec.RecordID.String(),
		Timestamp:    rec.Time.String(),
		Direction:    rec.Direction.String(),
		VerifyStatus: rec.VerifyStatus.String(),
		DeviceName:   rec.FacesluiceName.String(),
		OpenDoorWay:  rec.OpendoorWay.String(),
		PushType:     rec.PushType.String(),
		RawData:      string(rec.MQTT),
	}
}
