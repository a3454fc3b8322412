package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// groupCount 分组计数扫描结果
type groupCount struct {
	Name  string
	Total int64
}

// countGroupBy 按列分组计数，返回 列值 -> 数量
func countGroupBy(ctx context.Context, db *gorm.DB, model any, column string) (map[string]int64, error) {
	rows := make([]groupCount, 0)
	err := db.WithContext(ctx).
		Model(model).
		Select(column + " AS name, COUNT(*) AS total").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make(map[string]int64, len(rows))
	for _, row := range rows {
		result[row.Name] = row.Total
	}
	return result, nil
}

// errRollback 事务内目标记录不存在，用于触发回滚
var errRollback = errors.New("target record not found, rollback")
