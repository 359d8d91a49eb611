package model

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// IDは商品・カテゴリ・レビューの識別子。
// DBやJSONでは数値の場合も文字列の場合もあるので、境界で一度だけ文字列に正規化する。
type ID string

func (id ID) String() string {
	return string(id)
}

func (id ID) IsZero() bool {
	return strings.TrimSpace(string(id)) == ""
}

// "12" と 12 のどちらも受け付ける
func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ParseID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be string or number: %w", err)
	}
	*id = ParseID(n.String())
	return nil
}

func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}

// Scan はDBの値（int/text/uuid）をIDとして読む
func (id *ID) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*id = ""
	case string:
		*id = ParseID(v)
	case []byte:
		*id = ParseID(string(v))
	case int64:
		*id = ID(strconv.FormatInt(v, 10))
	case int32:
		*id = ID(strconv.FormatInt(int64(v), 10))
	case int:
		*id = ID(strconv.Itoa(v))
	case [16]byte:
		*id = ID(fmt.Sprintf("%x-%x-%x-%x-%x", v[0:4], v[4:6], v[6:8], v[8:10], v[10:16]))
	default:
		return fmt.Errorf("unsupported id type %T", src)
	}
	return nil
}

func (id ID) Value() (driver.Value, error) {
	return string(id), nil
}

// ParseID は外から来た値を正規形にする。
// 数値表現は先頭の0や"+"を落として10進数の文字列にそろえる。
func ParseID(raw string) ID {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ID(strconv.FormatInt(n, 10))
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int64(f)) && !strings.ContainsAny(s, "eE") {
		return ID(strconv.FormatInt(int64(f), 10))
	}
	return ID(s)
}
