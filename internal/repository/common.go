package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound 查无记录
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate 唯一约束冲突（用户名 / slug / 关注对）
	ErrDuplicate = errors.New("duplicate record")
)

// translate 把 gorm 错误映射成仓储层哨兵错误
// 依赖 gorm.Config{TranslateError: true}，sqlite 与 postgres 统一成 ErrDuplicatedKey
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
