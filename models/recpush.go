package models

import (
	"bytes"
	"encoding/json"
)

// OperatorRecPush is the only operator value accepted at the ingestion
// boundary; every other payload is discarded.
const OperatorRecPush = "RecPush"

// FlexString decodes a JSON field that the device firmware emits
// inconsistently as either a string or a number. Numbers keep their
// literal text, anything undecodable degrades to the empty string.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler and never fails
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*f = ""
			return nil
		}
		*f = FlexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexString(n.String())
		return nil
	}

	// 对象/数组等非标量字段降级为空值
	*f = ""
	return nil
}

// MarshalJSON implements json.Marshaler
func (f FlexString) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(f))
}

// String returns the canonical string form
func (f FlexString) String() string {
	return string(f)
}

// RecPushMessage is the envelope published by a face device on
// mqtt/face/<deviceID>/Rec. Info is kept raw so the original payload can
// be persisted byte for byte.
type RecPushMessage struct {
	Operator string          `json:"operator"`
	Info     json.RawMessage `json:"info"`
}

// RecEventInfo carries the recognized fields of the info object. Field
// names follow the device wire format, including its "persionName"
// spelling.
type RecEventInfo struct {
	PersonID       FlexString `json:"personId"`
	IDCard         FlexString `json:"idCard"`
	PersonName     FlexString `json:"persionName"`
	RecordID       FlexString `json:"RecordID"`
	Time           FlexString `json:"time"`
	VerifyStatus   FlexString `json:"VerifyStatus"`
	Direction      FlexString `json:"direction"`
	DeviceID       FlexString `json:"deviceID"`
	FacesluiceName FlexString `json:"facesluiceName"`
	OpendoorWay    FlexString `json:"OpendoorWay"`
	PushType       FlexString `json:"PushType"`
}

// BatchRecord is one row of the consolidated batch export file
// (all_recpush_sorted_by_idcard.json). The mqtt field holds the original
// info object of the event.
type BatchRecord struct {
	IDCard         FlexString      `json:"idCard"`
	PersonName     FlexString      `json:"persionName"`
	PersonID       FlexString      `json:"personId"`
	RecordID       FlexString      `json:"RecordID"`
	Time           FlexString      `json:"time"`
	VerifyStatus   FlexString      `json:"VerifyStatus"`
	Direction      FlexString      `json:"direction"`
	FacesluiceName FlexString      `json:"facesluiceName"`
	PushType       FlexString      `json:"PushType"`
	OpendoorWay    FlexString      `json:"OpendoorWay"`
	MQTT           json.RawMessage `json:"mqtt"`
}
