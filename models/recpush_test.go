package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexStringUnmarshal(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"string", `"1024"`, "1024"},
		{"integer", `1024`, "1024"},
		{"float", `10.5`, "10.5"},
		{"null", `null`, ""},
		{"empty string", `""`, ""},
		{"object degrades", `{"a":1}`, ""},
		{"array degrades", `[1,2]`, ""},
		{"boolean degrades", `true`, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var f FlexString
			err := json.Unmarshal([]byte(tc.input), &f)
			require.NoError(t, err)
			assert.Equal(t, tc.want, f.String())
		})
	}
}

func TestFlexStringInStruct(t *testing.T) {
	// 同一批消息里同一字段可能是字符串也可能是数字
	var info RecEventInfo
	payload := `{"personId": 7, "idCard": "1024", "persionName": "张三", "time": "2024-05-01 08:00:00"}`
	require.NoError(t, json.Unmarshal([]byte(payload), &info))

	assert.Equal(t, "7", info.PersonID.String())
	assert.Equal(t, "1024", info.IDCard.String())
	assert.Equal(t, "张三", info.PersonName.String())
	assert.Equal(t, "2024-05-01 08:00:00", info.Time.String())
	assert.Equal(t, "", info.RecordID.String())
}

func TestRecPushMessageKeepsRawInfo(t *testing.T) {
	raw := `{"operator":"RecPush","info":{"personId":"7","extra":{"nested":true},"time":"2024-05-01 08:00:00"}}`

	var msg RecPushMessage
	require.NoError(t, json.Unmarshal([]byte(raw), &msg))

	assert.Equal(t, OperatorRecPush, msg.Operator)
	// info字段必须逐字节保留，包括未识别的extra字段
	assert.JSONEq(t, `{"personId":"7","extra":{"nested":true},"time":"2024-05-01 08:00:00"}`, string(msg.Info))
}
