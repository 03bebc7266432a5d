package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/krishivsaini/BookBazaar/internal/domain/tx"
)

type txKey struct{}

// TxManager 事务管理器
// 1. 通过context传递事务DB，fn内所有仓储操作处于同一事务
// 2. fn返回error时ROLLBACK，返回nil时COMMIT
// 3. 嵌套调用复用外层事务（GORM使用SavePoint）
// 4. tx.AfterCommit注册的回调在最外层COMMIT之后执行
type TxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, commit := tx.Scope(ctx)
	err := conn(ctx, m.db).Transaction(func(db *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, db))
	})
	if err != nil {
		return err
	}
	commit()
	return nil
}

// conn 从context获取事务DB，没有则使用默认DB
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if txDB, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return txDB.WithContext(ctx)
	}
	return db.WithContext(ctx)
}
