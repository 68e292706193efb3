package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// JSONMap アイテムのメタデータ用のJSONカラム型
// スキーマを固定しないキーバリューのマップとして保存する
type JSONMap map[string]interface{}

// Value データベースに保存する値を返す
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan データベースの値を読み込む
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = JSONMap{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("JSONMapに変換できない型です")
	}

	if len(data) == 0 {
		*m = JSONMap{}
		return nil
	}

	return json.Unmarshal(data, m)
}
